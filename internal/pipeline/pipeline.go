// Package pipeline orchestrates the three-stage dataset run: schema
// conversion, load-and-merge, and archive-and-upload. Stages execute
// strictly in order as a suffix selected by --start-from; they communicate
// only through the on-disk dataset directories. The external collaborators
// (toolchain, loader, transfer) are injected so the control flow is testable
// with fakes.
package pipeline

import (
	"context"
	"fmt"

	"github.com/tiiuae/lerobot-edge/internal/config"
	"github.com/tiiuae/lerobot-edge/internal/dataset"
	"github.com/tiiuae/lerobot-edge/internal/display"
	"github.com/tiiuae/lerobot-edge/internal/logging"
)

// Converter upgrades one dataset's on-disk schema in place.
type Converter interface {
	Convert(ctx context.Context, repoID, root string) error
}

// Merger consolidates the named datasets into one output dataset on disk.
type Merger interface {
	Merge(ctx context.Context, repoIDs []string, outputRepoID, outputDir string) error
}

// LoaderFunc opens a dataset directory and returns its metadata handle.
type LoaderFunc func(name, root string) (*dataset.Dataset, error)

// ArchiveFunc compresses srcDir into destPath and returns the archive size.
type ArchiveFunc func(srcDir, destPath string) (int64, error)

// SFTPLoader resolves upload settings; it must fail with a descriptive
// configuration error before any connection is attempted.
type SFTPLoader func(envFile string) (config.SFTPConfig, error)

// Uploader is a single-use transfer session.
type Uploader interface {
	Upload(localPath, remotePath string) (int64, error)
	Close() error
}

// DialFunc opens an authenticated transfer session.
type DialFunc func(config.SFTPConfig) (Uploader, error)

// Recorder receives run-history events. Implementations must tolerate being
// called once per stage; failures are logged as warnings, never fatal.
type Recorder interface {
	StageStarted(stage string) error
	StageCompleted(stage, detail string) error
}

// Deps bundles the injected collaborators.
type Deps struct {
	Converter Converter
	Merger    Merger
	Load      LoaderFunc
	Archive   ArchiveFunc
	LoadSFTP  SFTPLoader
	Dial      DialFunc
	History   Recorder // Optional; nil disables ledger events.
}

// Report aggregates counters for the final summary and for tests.
type Report struct {
	Stages         []Stage
	Converted      int
	ConvertMissing int
	Loaded         int
	LoadMissing    int
	MergedRoot     string
	MergedEpisodes int
	MergedFrames   int
	ArchiveBytes   int64
	UploadedBytes  int64
	RemotePath     string
}

// Run executes the planned stage suffix sequentially. The first stage error
// aborts the run; partial on-disk state (a converted dataset, a written
// archive) is left as-is, there is no rollback or retry.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, deps Deps) (Report, error) {
	rep := Report{Stages: Plan(cfg.StartFrom)}
	if len(rep.Stages) == 0 {
		return rep, fmt.Errorf("invalid start stage %q", cfg.StartFrom)
	}

	for _, st := range order {
		if !selected(rep.Stages, st) {
			log.Info("Skipping %s stage (--start-from %s)", st, cfg.StartFrom)
			continue
		}

		recordStarted(deps.History, log, st)
		var detail string
		var err error
		switch st {
		case Conversion:
			detail, err = runConversion(ctx, cfg, log, deps, &rep)
		case Merge:
			detail, err = runMerge(ctx, cfg, log, deps, &rep)
		case Upload:
			detail, err = runUpload(cfg, log, deps, &rep)
		}
		if err != nil {
			return rep, fmt.Errorf("%s stage: %w", st, err)
		}
		recordCompleted(deps.History, log, st, detail)
	}

	logSummary(cfg, log, &rep)
	return rep, nil
}

// recordStarted forwards a stage-start event to the ledger, if any.
func recordStarted(h Recorder, log *logging.Logger, st Stage) {
	if h == nil {
		return
	}
	if err := h.StageStarted(string(st)); err != nil {
		log.Warn("history ledger: %v", err)
	}
}

// recordCompleted forwards a stage-completion event to the ledger, if any.
func recordCompleted(h Recorder, log *logging.Logger, st Stage, detail string) {
	if h == nil {
		return
	}
	if err := h.StageCompleted(string(st), detail); err != nil {
		log.Warn("history ledger: %v", err)
	}
}

// logSummary prints the end-of-run totals.
func logSummary(cfg *config.Config, log *logging.Logger, rep *Report) {
	log.Info("==============================")
	if cfg.DryRun {
		log.Info("Dry run complete: %d stage(s) previewed", len(rep.Stages))
		return
	}
	if selected(rep.Stages, Conversion) {
		log.Info("Conversion: %d converted, %d missing", rep.Converted, rep.ConvertMissing)
	}
	if selected(rep.Stages, Merge) {
		log.Info("Merge: %d loaded, %d missing; merged dataset has %d episodes / %d frames",
			rep.Loaded, rep.LoadMissing, rep.MergedEpisodes, rep.MergedFrames)
	}
	log.Success("Upload: %s delivered to %s", display.FormatBytes(rep.UploadedBytes), rep.RemotePath)
}
