// Package snapshot exports event sequences to Parquet files and imports
// them back.
//
// Snapshots are explicit, caller-driven exports of the live in-memory
// store; they are not a durability layer. Export reads through the store's
// public query path, so a snapshot of a type is exactly the consistent view
// one iterator sees.
package snapshot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/tickstore/tickstore/internal/store"
)

// EventRow is the Parquet representation of one event.
type EventRow struct {
	Type        string `parquet:"type,zstd"`
	TimestampMs int64  `parquet:"timestamp_ms"`
	Payload     []byte `parquet:"payload,optional,zstd"`
}

// rowFromEvent converts a store event to its Parquet row.
func rowFromEvent(ev store.Event) EventRow {
	return EventRow{
		Type:        ev.Type,
		TimestampMs: ev.Timestamp,
		Payload:     ev.Payload,
	}
}

// eventFromRow converts a Parquet row back to a store event.
func eventFromRow(r EventRow) store.Event {
	return store.Event{
		Type:      r.Type,
		Timestamp: r.TimestampMs,
		Payload:   r.Payload,
	}
}

// WriteFile writes events to a Parquet file at path, creating parent
// directories as needed.
func WriteFile(path string, events []store.Event) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	w := parquet.NewGenericWriter[EventRow](f)

	rows := make([]EventRow, len(events))
	for i, ev := range events {
		rows[i] = rowFromEvent(ev)
	}

	if len(rows) > 0 {
		if _, err := w.Write(rows); err != nil {
			f.Close()
			return fmt.Errorf("write rows: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close writer: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}

// ReadFile reads all events from a Parquet file at path, in file order.
func ReadFile(path string) ([]store.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	r := parquet.NewGenericReader[EventRow](f)
	defer r.Close()

	var events []store.Event
	rows := make([]EventRow, 1024)
	for {
		n, err := r.Read(rows)
		for i := 0; i < n; i++ {
			events = append(events, eventFromRow(rows[i]))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read rows: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return events, nil
}
