package config

// This file implements CLI flag parsing and help text.
// Boolean negations (e.g. --no-color) are captured separately and applied
// after Parse so Config defaults hold unless the user passes the flag.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag, bad enum value).
// BasePath is tilde-expanded and trailing slashes are stripped.
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("lerobot-edge", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var aux auxFlags

	definePipelineFlags(fs, cfg)
	defineInputFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &aux)
	defineUtilityFlags(fs, &aux)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyAuxFlags(cfg, &aux)

	if aux.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if aux.showVersion {
		fmt.Fprintln(os.Stdout, "lerobot-edge v"+version)
		os.Exit(0)
	}

	if len(fs.Args()) != 0 {
		return fmt.Errorf("unexpected argument %q (the pipeline takes flags only)", fs.Args()[0])
	}

	cfg.BasePath = NormalizeDirArg(ExpandUser(cfg.BasePath))
	return nil
}

// auxFlags holds boolean flags that are applied after Parse: negations of a
// default, or flags that trigger exit (showHelp, showVersion).
type auxFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// definePipelineFlags registers --start-from, --base-path, --merged-name.
func definePipelineFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&startStageValue{&cfg.StartFrom}, "start-from", "Pipeline stage to start from: conversion | merge | upload")
	fs.Var(&startStageValue{&cfg.StartFrom}, "s", "Same as --start-from")
	fs.StringVar(&cfg.BasePath, "base-path", cfg.BasePath, "Base directory where datasets are located")
	fs.StringVar(&cfg.BasePath, "b", cfg.BasePath, "Same as --base-path")
	fs.StringVar(&cfg.MergedName, "merged-name", cfg.MergedName, "Name of the merged dataset repository")
	fs.StringVar(&cfg.MergedName, "n", cfg.MergedName, "Same as --merged-name")
}

// defineInputFlags registers --datasets, --env-file, --python.
func defineInputFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.ManifestFile, "datasets", "", "YAML manifest listing source dataset names (overrides built-in list)")
	fs.StringVar(&cfg.EnvFile, "env-file", "", "Dotenv file with SFTP settings (default: ./.env if present)")
	fs.StringVar(&cfg.PythonBin, "python", cfg.PythonBin, "Python interpreter used for the lerobot toolchain")
}

// defineBehaviorFlags registers --dry-run and the history ledger controls.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview the run plan; do not convert, merge, zip or upload")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&cfg.NoHistory, "no-history", false, "Do not record this run in the history ledger")
	fs.StringVar(&cfg.HistoryFile, "history", "", "Run-history ledger path (default: <base-path>/.pipeline-history.db)")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, aux *auxFlags) {
	fs.BoolVar(&aux.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&aux.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output (including toolchain stderr)")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, aux *auxFlags) {
	fs.BoolVar(&aux.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&aux.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&aux.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&aux.showHelp, "h", false, "Same as --help")
}

// applyAuxFlags copies negation flag values into cfg.
func applyAuxFlags(cfg *Config, aux *auxFlags) {
	if aux.noColor {
		cfg.ColorMode = ColorNever
	} else if aux.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "lerobot-edge v" + version + " — dataset conversion, merge and SFTP upload pipeline"},
		{"", ""},
		{"  lerobot-edge [OPTIONS]", ""},
		{"", ""},
		{"Stages run in order; --start-from picks the suffix to execute:", ""},
		{"  conversion", "convert v2.1 datasets to v3.0, then merge, then upload (default)"},
		{"  merge", "load and merge the datasets, then upload"},
		{"  upload", "compress the merged dataset and upload it"},
		{"", ""},
		{"Pipeline", ""},
		{"  -s, --start-from <stage>", "Stage to start from (default: conversion)"},
		{"  -b, --base-path <dir>", "Dataset root (default: ~/.cache/huggingface/lerobot/Manisha-Saleha)"},
		{"  -n, --merged-name <name>", "Merged dataset name (default: test-aloha-dataset-merged)"},
		{"  --datasets <file>", "YAML manifest with source dataset names"},
		{"  --python <bin>", "Python interpreter for the lerobot toolchain (default: python3)"},
		{"  --env-file <file>", "Dotenv file with SFTP_* settings"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Preview only; no conversion, merge, zip or upload"},
		{"  --history <file>", "Run-history ledger path"},
		{"  --no-history", "Disable the run-history ledger"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (python, lerobot, datasets, SFTP env)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapter so the StartStage enum can be used with flag.Var.

type startStageValue struct{ p *StartStage }

func (v *startStageValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v *startStageValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "conversion":
		*v.p = StartConversion
	case "merge":
		*v.p = StartMerge
	case "upload":
		*v.p = StartUpload
	default:
		return fmt.Errorf("invalid stage %q (use 'conversion', 'merge' or 'upload')", s)
	}
	return nil
}
