package pipeline

import (
	"context"
	"fmt"

	"github.com/tiiuae/lerobot-edge/internal/config"
	"github.com/tiiuae/lerobot-edge/internal/dataset"
	"github.com/tiiuae/lerobot-edge/internal/logging"
)

// runMerge loads every existing source dataset, logging its counters, then
// invokes the merge tool exactly once with the accumulated inputs. The tool
// owns all consistency reconciliation; this driver only accumulates, reports,
// and inspects the result.
func runMerge(ctx context.Context, cfg *config.Config, log *logging.Logger, deps Deps, rep *Report) (string, error) {
	log.Stage("Starting dataset loading and merging stage...")

	var inputs []string
	for _, name := range cfg.Datasets {
		dir := cfg.DatasetDir(name)
		if !dataset.Exists(dir) {
			log.Warn("Dataset directory not found for %s at %s. Skipping.", name, dir)
			rep.LoadMissing++
			continue
		}

		log.Info("Loading dataset: %s from %s", name, dir)
		ds, err := deps.Load(name, dir)
		if err != nil {
			return "", err
		}
		log.Info("Loaded dataset '%s' with %d episodes and %d frames.", ds.Name, ds.Episodes, ds.Frames)
		inputs = append(inputs, name)
		rep.Loaded++
	}

	outputDir := cfg.OutputDir()
	if len(inputs) == 0 {
		// Empty-input merge semantics belong to the toolchain; surface the
		// situation instead of deciding it here.
		log.Warn("No source datasets found under %s; empty-input behavior is up to the merge tool", cfg.BasePath)
	}
	log.Info("Merging %d datasets into %s at %s...", len(inputs), cfg.MergedName, outputDir)

	if cfg.DryRun {
		log.Success("[DRY] Would merge %d datasets into %s", len(inputs), outputDir)
		return fmt.Sprintf("[dry] %d inputs", len(inputs)), nil
	}

	if err := deps.Merger.Merge(ctx, inputs, cfg.MergedName, outputDir); err != nil {
		return "", err
	}

	merged, err := deps.Load(cfg.MergedName, outputDir)
	if err != nil {
		return "", fmt.Errorf("inspect merged dataset: %w", err)
	}
	rep.MergedRoot = merged.Root
	rep.MergedEpisodes = merged.Episodes
	rep.MergedFrames = merged.Frames

	log.Success("Successfully created merged dataset at: %s", merged.Root)
	log.Info("Total episodes in merged dataset: %d", merged.Episodes)
	log.Info("Total frames in merged dataset: %d", merged.Frames)

	return fmt.Sprintf("%d datasets merged (%d episodes, %d frames)",
		rep.Loaded, merged.Episodes, merged.Frames), nil
}
