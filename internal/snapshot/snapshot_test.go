package snapshot

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/tickstore/tickstore/internal/store"
)

func storeWith(t *testing.T, typ string, timestamps ...int64) *store.Store {
	t.Helper()
	s := store.New()
	for _, ts := range timestamps {
		if err := s.Insert(store.Event{Type: typ, Timestamp: ts}); err != nil {
			t.Fatalf("Insert(%d): %v", ts, err)
		}
	}
	return s
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.parquet")
	events := []store.Event{
		{Type: "a", Timestamp: 1, Payload: []byte("one")},
		{Type: "a", Timestamp: 2},
		{Type: "a", Timestamp: 2, Payload: []byte("dup")},
		{Type: "a", Timestamp: 5},
	}

	if err := WriteFile(path, events); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("ReadFile returned %d events, want %d", len(got), len(events))
	}
	for i, ev := range events {
		if got[i].Type != ev.Type || got[i].Timestamp != ev.Timestamp {
			t.Errorf("row %d = %+v, want %+v", i, got[i], ev)
		}
		if string(got[i].Payload) != string(ev.Payload) {
			t.Errorf("row %d payload = %q, want %q", i, got[i].Payload, ev.Payload)
		}
	}
}

func TestWriteEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	if err := WriteFile(path, nil); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadFile = %v, want empty", got)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := storeWith(t, "a", 3, 1, 2, 2)

	m := NewManager(s, Options{Dir: dir, Concurrency: 2})
	path, n, err := m.Export("a")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if n != 4 {
		t.Errorf("Export wrote %d events, want 4", n)
	}

	// The export must have released the lock.
	if err := s.Insert(store.Event{Type: "a", Timestamp: 9}); err != nil {
		t.Fatalf("Insert after export: %v", err)
	}

	// Import into a fresh store preserves events and order.
	fresh := store.New()
	m2 := NewManager(fresh, Options{Dir: dir, Concurrency: 1})
	imported, err := m2.Import(path)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if imported != 4 {
		t.Errorf("Import inserted %d events, want 4", imported)
	}

	it, err := fresh.Query("a", 0, math.MaxInt64)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	defer it.Close()

	var got []int64
	for it.Next() {
		ev, err := it.Current()
		if err != nil {
			t.Fatalf("Current: %v", err)
		}
		got = append(got, ev.Timestamp)
	}
	want := []int64{1, 2, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("imported sequence = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("imported sequence = %v, want %v", got, want)
		}
	}
}

func TestExportAll(t *testing.T) {
	dir := t.TempDir()
	s := store.New()
	for typ, count := range map[string]int{"a": 3, "b": 5, "c": 1} {
		for i := 0; i < count; i++ {
			if err := s.Insert(store.Event{Type: typ, Timestamp: int64(i)}); err != nil {
				t.Fatalf("Insert: %v", err)
			}
		}
	}

	m := NewManager(s, Options{Dir: dir, Concurrency: 2})
	total, err := m.ExportAll(context.Background())
	if err != nil {
		t.Fatalf("ExportAll: %v", err)
	}
	if total != 9 {
		t.Errorf("ExportAll wrote %d events, want 9", total)
	}

	for _, name := range []string{"a.parquet", "b.parquet", "c.parquet"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected snapshot file %s: %v", name, err)
		}
	}
}

func TestFileName(t *testing.T) {
	cases := []struct {
		typ  string
		want string
	}{
		{"cpu", "cpu.parquet"},
		{"", "untyped.parquet"},
		{"net/if0", "net_if0.parquet"},
		{`a:b*c`, "a_b_c.parquet"},
	}

	for _, tc := range cases {
		if got := fileName(tc.typ); got != tc.want {
			t.Errorf("fileName(%q) = %q, want %q", tc.typ, got, tc.want)
		}
	}
}
