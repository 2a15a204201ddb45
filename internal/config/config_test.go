package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
log:
  level: debug
  json: true
stats:
  enabled: false
snapshot:
  dir: /tmp/snaps
  concurrency: 2
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Log.Level != "debug" || !cfg.Log.JSON {
		t.Errorf("Log = %+v, want debug/json", cfg.Log)
	}
	if cfg.Stats.Enabled {
		t.Error("Stats.Enabled should be false")
	}
	// Unset fields keep their defaults.
	if cfg.Stats.Accuracy != 0.01 {
		t.Errorf("Stats.Accuracy = %g, want default 0.01", cfg.Stats.Accuracy)
	}
	if cfg.Snapshot.Dir != "/tmp/snaps" || cfg.Snapshot.Concurrency != 2 {
		t.Errorf("Snapshot = %+v", cfg.Snapshot)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !os.IsNotExist(err) {
		t.Errorf("Load of absent file = %v, want IsNotExist", err)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load of malformed YAML should fail")
	}
}

func TestValidateReportsAllSections(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Level = "loud"
	cfg.Stats.Accuracy = 3
	cfg.Snapshot.Dir = ""
	cfg.Snapshot.Concurrency = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate should fail")
	}

	// All broken sections show up in the joined error.
	for _, want := range []string{"log:", "stats:", "snapshot:"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}
}
