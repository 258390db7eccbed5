// Command lerobot-edge is the CLI entrypoint for the dataset pipeline.
//
// It parses flags, validates configuration, and either runs system
// diagnostics (--check) or the conversion/merge/upload pipeline.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tiiuae/lerobot-edge/internal/archive"
	"github.com/tiiuae/lerobot-edge/internal/check"
	"github.com/tiiuae/lerobot-edge/internal/config"
	"github.com/tiiuae/lerobot-edge/internal/dataset"
	"github.com/tiiuae/lerobot-edge/internal/display"
	"github.com/tiiuae/lerobot-edge/internal/history"
	"github.com/tiiuae/lerobot-edge/internal/lerobot"
	"github.com/tiiuae/lerobot-edge/internal/logging"
	"github.com/tiiuae/lerobot-edge/internal/pipeline"
	"github.com/tiiuae/lerobot-edge/internal/transfer"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output goes
	// through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "lerobot-edge: %v\n", err)
		return 1
	}

	if cfg.ManifestFile != "" {
		names, err := config.LoadManifest(cfg.ManifestFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lerobot-edge: %v\n", err)
			return 1
		}
		cfg.Datasets = names
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "lerobot-edge: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lerobot-edge: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available. All output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	log.Info("=== LeRobot Edge v%s (%s) ===", version, commit)
	log.Info("Base: %s", cfg.BasePath)
	log.Info("Out:  %s", cfg.OutputDir())
	if cfg.DryRun {
		log.Warn("DRY RUN, nothing will be written")
	}
	log.Info("")

	// Fail fast if the python toolchain is unavailable, but only when a
	// selected stage actually needs it. Upload-only runs need no python.
	plan := pipeline.Plan(cfg.StartFrom)
	if !cfg.DryRun && needsToolchain(plan) {
		if err := check.CheckDeps(&cfg); err != nil {
			log.Error("%v", err)
			return 1
		}
	}

	deps := buildDeps(&cfg)

	// The run-history ledger is observational: opening or writing it can
	// fail without affecting the pipeline.
	if !cfg.NoHistory && !cfg.DryRun {
		store, err := history.Open(cfg.HistoryPath())
		if err != nil {
			log.Warn("history ledger unavailable: %v", err)
		} else {
			defer store.Close()
			if err := store.BeginRun(string(cfg.StartFrom), cfg.BasePath, cfg.MergedName); err != nil {
				log.Warn("history ledger: %v", err)
			}
			log.Debug(cfg.Verbose, "run id %s", store.RunID())
			deps.History = store
		}
	}

	// No signal handling: a mid-run interrupt kills the process and leaves
	// partial on-disk state, same as the toolchain itself would.
	rep, runErr := pipeline.Run(context.Background(), &cfg, log, deps)
	if store, ok := deps.History.(*history.Store); ok {
		if err := store.FinishRun(runErr); err != nil {
			log.Warn("history ledger: %v", err)
		}
	}
	if runErr != nil {
		log.Error("%v", runErr)
		return 1
	}
	log.Debug(cfg.Verbose, "ran %d stage(s)", len(rep.Stages))
	return 0
}

// needsToolchain reports whether any planned stage invokes python.
func needsToolchain(plan []pipeline.Stage) bool {
	for _, st := range plan {
		if st == pipeline.Conversion || st == pipeline.Merge {
			return true
		}
	}
	return false
}

// buildDeps wires the production collaborators into the pipeline.
func buildDeps(cfg *config.Config) pipeline.Deps {
	tool := lerobot.New(cfg.PythonBin, cfg.Verbose)
	return pipeline.Deps{
		Converter: tool,
		Merger:    tool,
		Load:      dataset.Load,
		Archive:   archive.Zip,
		LoadSFTP:  config.LoadSFTP,
		Dial: func(scfg config.SFTPConfig) (pipeline.Uploader, error) {
			return transfer.Dial(scfg)
		},
	}
}
