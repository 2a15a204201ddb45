package snapshot

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tickstore/tickstore/internal/logging"
	"github.com/tickstore/tickstore/internal/store"
)

// Options configures a Manager.
type Options struct {
	// Dir is the directory snapshot files are written to.
	Dir string

	// Concurrency bounds how many types export in parallel. Values below
	// one fall back to one.
	Concurrency int
}

// Manager exports store contents to a snapshot directory and imports
// snapshot files back into the store.
type Manager struct {
	store *store.Store
	opts  Options
}

// NewManager creates a Manager exporting from and importing into s.
func NewManager(s *store.Store, opts Options) *Manager {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Manager{store: s, opts: opts}
}

// Export writes all events of typ to <dir>/<type>.parquet and returns the
// file path and the number of events written.
//
// The export reads through one query iterator, so it sees a consistent
// view; the type's lock is held only while collecting, not while writing
// the file.
func (m *Manager) Export(typ string) (string, int, error) {
	events, err := m.collect(typ)
	if err != nil {
		return "", 0, err
	}

	path := filepath.Join(m.opts.Dir, fileName(typ))
	if err := WriteFile(path, events); err != nil {
		return "", 0, fmt.Errorf("export %q: %w", typ, err)
	}
	return path, len(events), nil
}

// collect copies every event of typ out of the store under its lock.
func (m *Manager) collect(typ string) ([]store.Event, error) {
	it, err := m.store.Query(typ, 0, math.MaxInt64)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", typ, err)
	}
	defer it.Close()

	var events []store.Event
	for it.Next() {
		ev, err := it.Current()
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", typ, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// ExportAll exports every type currently in the store, at most
// Options.Concurrency types in parallel. It returns the total number of
// events written and the first error encountered.
func (m *Manager) ExportAll(ctx context.Context) (int, error) {
	log := logging.Component("snapshot")
	types := m.store.Types()

	counts := make([]int, len(types))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.Concurrency)

	for i, typ := range types {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			path, n, err := m.Export(typ)
			if err != nil {
				return err
			}
			counts[i] = n
			log.Info("exported type", "type", typ, "events", n, "path", path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}

// Import inserts every event from the Parquet file at path into the store.
// It returns the number of events inserted; on an insert failure the events
// already inserted stay in the store.
func (m *Manager) Import(path string) (int, error) {
	events, err := ReadFile(path)
	if err != nil {
		return 0, err
	}

	for i, ev := range events {
		if err := m.store.Insert(ev); err != nil {
			return i, fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return len(events), nil
}

// fileName maps a type label to its snapshot file name. Characters that do
// not travel well in file names are replaced; the empty "no type" label
// maps to "untyped".
func fileName(typ string) string {
	if typ == "" {
		typ = "untyped"
	}
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			return '_'
		}
		return r
	}, typ)
	return sanitized + ".parquet"
}
