package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/tiiuae/lerobot-edge/internal/config"
	"github.com/tiiuae/lerobot-edge/internal/dataset"
	"github.com/tiiuae/lerobot-edge/internal/logging"
)

// runConversion upgrades each existing source dataset from schema v2.1 to
// v3.0 in place. A missing dataset directory is a warning, not a fault; the
// loop continues with the remaining datasets. Conversion results are not
// retained; the toolchain mutates the dataset on disk.
func runConversion(ctx context.Context, cfg *config.Config, log *logging.Logger, deps Deps, rep *Report) (string, error) {
	log.Stage("Starting dataset conversion stage...")

	// The toolchain addresses datasets as "<site>/<name>" rooted at the
	// base path's parent, e.g. Manisha-Saleha/move-blue-cup-feb12-v1.1
	// under ~/.cache/huggingface/lerobot.
	site := filepath.Base(cfg.BasePath)
	root := filepath.Dir(cfg.BasePath)

	for _, name := range cfg.Datasets {
		dir := cfg.DatasetDir(name)
		if !dataset.Exists(dir) {
			log.Warn("Dataset directory not found for %s at %s. Skipping conversion.", name, dir)
			rep.ConvertMissing++
			continue
		}

		log.Info("Checking dataset format for: %s at %s", name, dir)
		if cfg.DryRun {
			log.Success("[DRY] Would convert %s/%s", site, name)
			rep.Converted++
			continue
		}
		if err := deps.Converter.Convert(ctx, site+"/"+name, root); err != nil {
			return "", err
		}
		rep.Converted++
	}

	return fmt.Sprintf("%d converted, %d missing", rep.Converted, rep.ConvertMissing), nil
}
