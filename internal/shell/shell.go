// Package shell implements the interactive tickstore shell.
//
// The shell drives a live store with line commands. On a terminal it runs
// an interactive prompt with completion; when stdin is not a terminal it
// reads commands line by line, so the shell stays scriptable.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/c-bata/go-prompt"
	"golang.org/x/term"

	"github.com/tickstore/tickstore/internal/errors"
	"github.com/tickstore/tickstore/internal/logging"
	"github.com/tickstore/tickstore/internal/snapshot"
	"github.com/tickstore/tickstore/internal/stats"
	"github.com/tickstore/tickstore/internal/store"
)

// Shell executes commands against a store.
type Shell struct {
	store    *store.Store
	recorder *stats.Recorder // nil disables latency tracking
	snaps    *snapshot.Manager
	out      io.Writer
	quit     bool
}

// New creates a Shell writing command output to out.
func New(s *store.Store, recorder *stats.Recorder, snaps *snapshot.Manager, out io.Writer) *Shell {
	return &Shell{
		store:    s,
		recorder: recorder,
		snaps:    snaps,
		out:      out,
	}
}

// Run executes commands until exit. Interactive terminals get a prompt
// with completion; piped input runs in plain line-reader mode.
func (sh *Shell) Run() {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		sh.runScript(os.Stdin)
		return
	}

	p := prompt.New(
		sh.Execute,
		sh.Complete,
		prompt.OptionTitle("tickstore"),
		prompt.OptionPrefix("tickstore> "),
		prompt.OptionSetExitCheckerOnInput(func(string, bool) bool { return sh.quit }),
	)
	p.Run()
}

// runScript executes commands from r until EOF or exit.
func (sh *Shell) runScript(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		sh.Execute(scanner.Text())
		if sh.quit {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		logging.Component("shell").Error("read input", "error", err)
	}
}

// Execute runs one command line, printing results and errors to the
// shell's output. It matches go-prompt's executor signature.
func (sh *Shell) Execute(line string) {
	if err := sh.execute(line); err != nil {
		fmt.Fprintf(sh.out, "error: %v\n", err)
	}
}

func (sh *Shell) execute(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}

	cmd, args := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "insert":
		return sh.insert(args)
	case "query":
		return sh.query(args, false)
	case "drain":
		return sh.query(args, true)
	case "removeall":
		return sh.removeAll(args)
	case "types":
		return sh.types()
	case "count":
		return sh.count(args)
	case "stats":
		return sh.stats()
	case "export":
		return sh.export(args)
	case "import":
		return sh.importFile(args)
	case "help":
		return sh.help()
	case "exit", "quit":
		sh.quit = true
		return nil
	default:
		return errors.Wrapf(errors.ErrUnknownCommand, "%q (try help)", cmd)
	}
}

// observe records a latency sample when tracking is enabled.
func (sh *Shell) observe(op string, start time.Time) {
	if sh.recorder != nil {
		sh.recorder.Observe(op, time.Since(start))
	}
}

func (sh *Shell) insert(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errors.Wrap(errors.ErrBadArgument, "usage: insert <type> <timestamp> [payload]")
	}

	ts, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return errors.Wrapf(errors.ErrBadArgument, "timestamp %q", args[1])
	}

	ev := store.Event{Type: args[0], Timestamp: ts}
	if len(args) == 3 {
		ev.Payload = []byte(args[2])
	}

	defer sh.observe("insert", time.Now())
	if err := sh.store.Insert(ev); err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "inserted %q at %d\n", ev.Type, ev.Timestamp)
	return nil
}

// query runs a range query; with drain set it also removes every event it
// visits, exercising remove-while-iterating.
func (sh *Shell) query(args []string, drain bool) error {
	usage := "usage: query <type> <start> <end>"
	if drain {
		usage = "usage: drain <type> <start> <end>"
	}
	if len(args) != 3 {
		return errors.Wrap(errors.ErrBadArgument, usage)
	}

	start, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return errors.Wrapf(errors.ErrBadArgument, "start %q", args[1])
	}
	end, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return errors.Wrapf(errors.ErrBadArgument, "end %q", args[2])
	}

	op := "query"
	if drain {
		op = "drain"
	}
	defer sh.observe(op, time.Now())

	it, err := sh.store.Query(args[0], start, end)
	if err != nil {
		return err
	}
	defer it.Close()

	count := 0
	for it.Next() {
		ev, err := it.Current()
		if err != nil {
			return err
		}
		if drain {
			if err := it.Remove(); err != nil {
				return err
			}
		} else if len(ev.Payload) > 0 {
			fmt.Fprintf(sh.out, "%d\t%s\n", ev.Timestamp, ev.Payload)
		} else {
			fmt.Fprintf(sh.out, "%d\n", ev.Timestamp)
		}
		count++
	}

	if drain {
		fmt.Fprintf(sh.out, "removed %d events\n", count)
	} else {
		fmt.Fprintf(sh.out, "(%d events)\n", count)
	}
	return nil
}

func (sh *Shell) removeAll(args []string) error {
	if len(args) != 1 {
		return errors.Wrap(errors.ErrBadArgument, "usage: removeall <type>")
	}
	sh.store.RemoveAll(args[0])
	fmt.Fprintf(sh.out, "removed all %q events\n", args[0])
	return nil
}

func (sh *Shell) types() error {
	types := sh.store.Types()
	if len(types) == 0 {
		fmt.Fprintln(sh.out, "(no types)")
		return nil
	}
	for _, typ := range types {
		fmt.Fprintf(sh.out, "%s\t%d\n", typ, sh.store.Len(typ))
	}
	return nil
}

func (sh *Shell) count(args []string) error {
	if len(args) != 1 {
		return errors.Wrap(errors.ErrBadArgument, "usage: count <type>")
	}
	fmt.Fprintf(sh.out, "%d\n", sh.store.Len(args[0]))
	return nil
}

func (sh *Shell) stats() error {
	st := sh.store.Stats()
	fmt.Fprintf(sh.out, "inserts=%d rejected=%d queries=%d removealls=%d iter_removals=%d\n",
		st.Inserts, st.Rejected, st.Queries, st.RemoveAlls, st.IterRemovals)

	if sh.recorder == nil {
		return nil
	}
	for _, op := range sh.recorder.Snapshot() {
		fmt.Fprintf(sh.out, "%-8s count=%d min=%v avg=%v p50=%v p95=%v p99=%v max=%v\n",
			op.Op, op.Count, op.Min, op.Avg, op.P50, op.P95, op.P99, op.Max)
	}
	return nil
}

func (sh *Shell) export(args []string) error {
	if sh.snaps == nil {
		return errors.New("snapshots are not configured")
	}

	switch len(args) {
	case 0:
		total, err := sh.snaps.ExportAll(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "exported %d events\n", total)
		return nil
	case 1:
		path, n, err := sh.snaps.Export(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "exported %d events to %s\n", n, path)
		return nil
	default:
		return errors.Wrap(errors.ErrBadArgument, "usage: export [type]")
	}
}

func (sh *Shell) importFile(args []string) error {
	if sh.snaps == nil {
		return errors.New("snapshots are not configured")
	}
	if len(args) != 1 {
		return errors.Wrap(errors.ErrBadArgument, "usage: import <file>")
	}

	n, err := sh.snaps.Import(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "imported %d events\n", n)
	return nil
}

func (sh *Shell) help() error {
	fmt.Fprint(sh.out, `commands:
  insert <type> <timestamp> [payload]  store one event
  query <type> <start> <end>           list events with start <= ts < end
  drain <type> <start> <end>           remove events with start <= ts < end
  removeall <type>                     drop a type and its events
  types                                list types with event counts
  count <type>                         number of events for a type
  stats                                store counters and latency summary
  export [type]                        write snapshot files (all types or one)
  import <file>                        load a snapshot file
  help                                 this text
  exit                                 leave the shell
`)
	return nil
}
