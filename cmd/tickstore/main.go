// tickstore is an interactive shell over the in-memory event store.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tickstore/tickstore/internal/config"
	"github.com/tickstore/tickstore/internal/logging"
	"github.com/tickstore/tickstore/internal/shell"
	"github.com/tickstore/tickstore/internal/snapshot"
	"github.com/tickstore/tickstore/internal/stats"
	"github.com/tickstore/tickstore/internal/store"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfgPath := flag.String("config", "", "config file path")
	logLevel := flag.String("log-level", "", "log level (overrides config)")
	logJSON := flag.Bool("log-json", false, "JSON log output (overrides config)")
	snapshotDir := flag.String("snapshot-dir", "", "snapshot directory (overrides config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("tickstore %s\n", Version)
		return
	}

	// Load config
	cfg := config.DefaultConfig()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// CLI overrides
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logJSON {
		cfg.Log.JSON = true
	}
	if *snapshotDir != "" {
		cfg.Snapshot.Dir = *snapshotDir
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	logging.Init(level, cfg.Log.JSON)

	log := logging.Component("main")
	log.Debug("starting", "version", Version, "snapshot_dir", cfg.Snapshot.Dir)

	s := store.New()

	var recorder *stats.Recorder
	if cfg.Stats.Enabled {
		recorder = stats.NewRecorder(cfg.Stats.Accuracy)
	}

	snaps := snapshot.NewManager(s, snapshot.Options{
		Dir:         cfg.Snapshot.Dir,
		Concurrency: cfg.Snapshot.Concurrency,
	})

	shell.New(s, recorder, snaps, os.Stdout).Run()
}
