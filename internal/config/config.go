// Package config holds runtime configuration: defaults, CLI flag parsing,
// the dataset manifest, SFTP settings, and validation. Defaults match the
// legacy merge_datasets script for parity.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// --- Enum types for validated string fields ---

// StartStage selects the first pipeline stage to run. Stages always execute
// as a suffix of [conversion, merge, upload].
type StartStage string

const (
	StartConversion StartStage = "conversion" // Run all three stages (default).
	StartMerge      StartStage = "merge"      // Skip conversion; run merge and upload.
	StartUpload     StartStage = "upload"     // Compress and upload only.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultDatasets is the built-in ordered list of source dataset names,
// explicitly excluding "_old" variants. Overridable via --datasets.
var DefaultDatasets = []string{
	"move-blue-cup-feb12-v1.1",
	"move-blue-cup-feb12-v2.1",
	"move-blue-cup-feb12-v2.2",
	"move-green-cup-13feb-v1.1",
	"move-green-cup-13feb-v1.2",
}

// historyFileName is the default run-history ledger filename under BasePath.
const historyFileName = ".pipeline-history.db"

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Pipeline selection.
	StartFrom StartStage

	// Paths and names.
	BasePath   string   // Dataset root; "~" expanded by ParseFlags.
	MergedName string   // Name of the merged output dataset.
	Datasets   []string // Ordered source dataset names.

	// Optional input files.
	ManifestFile string // YAML manifest overriding Datasets.
	EnvFile      string // Explicit dotenv file for SFTP settings.

	// External toolchain.
	PythonBin string // Interpreter used to invoke the lerobot library. Default: "python3".

	// Behavior flags.
	DryRun      bool
	NoHistory   bool   // Disable the run-history ledger.
	HistoryFile string // Ledger path override; default <BasePath>/.pipeline-history.db.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode
	LogFile   string // Optional log file path.
	CheckOnly bool   // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults matching the legacy
// merge_datasets script. Used as the base before [ParseFlags] applies CLI
// overrides.
func DefaultConfig() Config {
	return Config{
		StartFrom:  StartConversion,
		BasePath:   "~/.cache/huggingface/lerobot/Manisha-Saleha",
		MergedName: "test-aloha-dataset-merged",
		Datasets:   append([]string(nil), DefaultDatasets...),
		PythonBin:  "python3",
		ColorMode:  ColorAuto,
	}
}

// Validate checks that enum fields hold valid values and that the paths and
// names the pipeline builds from are non-empty. Malformed paths are not
// rejected here; a missing dataset directory surfaces later as a per-dataset
// warning, not an upfront error.
func (c *Config) Validate() error {
	switch c.StartFrom {
	case StartConversion, StartMerge, StartUpload:
		// valid
	default:
		return errors.New("invalid stage (use 'conversion', 'merge' or 'upload')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.CheckOnly {
		return nil
	}
	if c.BasePath == "" {
		return errors.New("base path must not be empty")
	}
	if c.MergedName == "" {
		return errors.New("merged dataset name must not be empty")
	}
	if strings.ContainsRune(c.MergedName, filepath.Separator) {
		return fmt.Errorf("merged dataset name %q must not contain path separators", c.MergedName)
	}
	if len(c.Datasets) == 0 {
		return errors.New("dataset list must not be empty")
	}
	return nil
}

// OutputDir returns the directory the merged dataset is written to.
func (c *Config) OutputDir() string {
	return filepath.Join(c.BasePath, c.MergedName)
}

// ArchivePath returns the zip path derived from the merged dataset directory:
// the directory path with a ".zip" suffix, directly under BasePath.
func (c *Config) ArchivePath() string {
	return c.OutputDir() + ".zip"
}

// DatasetDir returns the on-disk directory for one source dataset name.
func (c *Config) DatasetDir(name string) string {
	return filepath.Join(c.BasePath, name)
}

// HistoryPath returns the run-history ledger path, defaulting to a hidden
// file under BasePath when no override was given.
func (c *Config) HistoryPath() string {
	if c.HistoryFile != "" {
		return c.HistoryFile
	}
	return filepath.Join(c.BasePath, historyFileName)
}

// ExpandUser replaces a leading "~" or "~/" with the current user's home
// directory. Paths without a tilde are returned unchanged, as are paths for
// other users ("~name/...").
func ExpandUser(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}
