package shell

import (
	"strings"

	"github.com/c-bata/go-prompt"
)

var commandSuggestions = []prompt.Suggest{
	{Text: "insert", Description: "insert <type> <timestamp> [payload]"},
	{Text: "query", Description: "query <type> <start> <end>"},
	{Text: "drain", Description: "drain <type> <start> <end>"},
	{Text: "removeall", Description: "removeall <type>"},
	{Text: "types", Description: "list types with event counts"},
	{Text: "count", Description: "count <type>"},
	{Text: "stats", Description: "store counters and latency summary"},
	{Text: "export", Description: "export [type]"},
	{Text: "import", Description: "import <file>"},
	{Text: "help", Description: "show help"},
	{Text: "exit", Description: "leave the shell"},
}

// typeArgCommands take a type label as their first argument.
var typeArgCommands = map[string]bool{
	"insert":    true,
	"query":     true,
	"drain":     true,
	"removeall": true,
	"count":     true,
	"export":    true,
}

// Complete suggests command names, and type labels where a command expects
// one. It matches go-prompt's completer signature.
func (sh *Shell) Complete(d prompt.Document) []prompt.Suggest {
	word := d.GetWordBeforeCursor()
	args := strings.Fields(d.TextBeforeCursor())

	// Still typing the command itself.
	if len(args) == 0 || (len(args) == 1 && word != "") {
		return prompt.FilterHasPrefix(commandSuggestions, word, true)
	}

	if typeArgCommands[strings.ToLower(args[0])] && len(args) <= 2 {
		types := sh.store.Types()
		suggestions := make([]prompt.Suggest, len(types))
		for i, typ := range types {
			suggestions[i] = prompt.Suggest{Text: typ}
		}
		return prompt.FilterHasPrefix(suggestions, word, true)
	}

	return nil
}
