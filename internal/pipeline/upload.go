package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/tiiuae/lerobot-edge/internal/config"
	"github.com/tiiuae/lerobot-edge/internal/display"
	"github.com/tiiuae/lerobot-edge/internal/logging"
)

// runUpload compresses the merged dataset directory and transfers the
// archive in one blocking operation. Both actions are unconditional once the
// stage is selected; any failure is fatal with no retry. Settings are
// resolved from the environment only now, and an incomplete configuration
// fails before any connection is attempted.
func runUpload(cfg *config.Config, log *logging.Logger, deps Deps, rep *Report) (string, error) {
	log.Stage("Starting compression and upload stage...")

	outputDir := cfg.OutputDir()
	zipPath := cfg.ArchivePath()
	log.Info("Compressing merged dataset to: %s...", zipPath)

	if cfg.DryRun {
		log.Success("[DRY] Would compress %s and upload %s", outputDir, filepath.Base(zipPath))
		return "[dry] upload previewed", nil
	}

	size, err := deps.Archive(outputDir, zipPath)
	if err != nil {
		return "", err
	}
	rep.ArchiveBytes = size
	log.Success("Dataset compressed successfully to: %s (%s)", zipPath, display.FormatBytes(size))

	scfg, err := deps.LoadSFTP(cfg.EnvFile)
	if err != nil {
		return "", err
	}

	session, err := deps.Dial(scfg)
	if err != nil {
		return "", err
	}
	defer session.Close()
	log.Info("Connection successfully established.")

	remote := scfg.RemoteFile(filepath.Base(zipPath))
	log.Info("Uploading %s to %s on the SFTP server...", zipPath, remote)

	start := time.Now()
	n, err := session.Upload(zipPath, remote)
	if err != nil {
		return "", err
	}
	rep.UploadedBytes = n
	rep.RemotePath = remote
	log.Success("File uploaded successfully to %s (%s in %s).",
		remote, display.FormatBytes(n), display.FormatDuration(time.Since(start)))

	return fmt.Sprintf("%s uploaded to %s", display.FormatBytes(n), remote), nil
}
