// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for the python interpreter and the
// lerobot toolchain.
package check

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/tiiuae/lerobot-edge/internal/config"
	"github.com/tiiuae/lerobot-edge/internal/dataset"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrPythonNotFound = errors.New("python interpreter not found on PATH")
	ErrLerobotMissing = errors.New("lerobot library not importable (try: pip install lerobot)")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: python availability, lerobot
// importability, dataset directory presence, and SFTP environment status.
// Informational only; returns false when a hard prerequisite is missing.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkPython(cfg, log)
	if ok {
		ok = checkLerobot(cfg, log)
	}
	checkDatasets(cfg, log)
	checkSFTPEnv(log)
	return ok
}

// checkPython verifies the interpreter is on PATH and logs its version.
func checkPython(cfg *config.Config, log Logger) bool {
	if _, err := exec.LookPath(cfg.PythonBin); err != nil {
		log.Error("%s not found on PATH", cfg.PythonBin)
		return false
	}
	out, err := exec.Command(cfg.PythonBin, "--version").CombinedOutput()
	if err != nil {
		log.Warn("%s found but --version failed: %v", cfg.PythonBin, err)
		return true
	}
	log.Success("python: %s", strings.TrimSpace(string(out)))
	return true
}

// checkLerobot verifies the lerobot library imports cleanly.
func checkLerobot(cfg *config.Config, log Logger) bool {
	if !runSilent(cfg.PythonBin, "-c", "import lerobot") {
		log.Error("lerobot library not importable with %s", cfg.PythonBin)
		return false
	}
	log.Success("lerobot library importable")
	return true
}

// checkDatasets reports which configured dataset directories are present.
func checkDatasets(cfg *config.Config, log Logger) {
	base := config.ExpandUser(cfg.BasePath)
	if !dataset.Exists(base) {
		log.Warn("Base path does not exist: %s", base)
		return
	}
	log.Info("Base path: %s", base)

	present := 0
	for _, name := range cfg.Datasets {
		if dataset.Exists(cfg.DatasetDir(name)) {
			log.Success("  dataset present: %s", name)
			present++
		} else {
			log.Warn("  dataset missing: %s", name)
		}
	}
	log.Info("%d of %d datasets present", present, len(cfg.Datasets))
}

// checkSFTPEnv reports which SFTP variables are set. The password is only
// reported as set/unset, never echoed.
func checkSFTPEnv(log Logger) {
	log.Info("SFTP environment:")
	vars := []string{
		config.EnvSFTPHostname,
		config.EnvSFTPPort,
		config.EnvSFTPUsername,
		config.EnvSFTPPassword,
		config.EnvSFTPRemotePath,
	}
	for _, v := range vars {
		val, set := os.LookupEnv(v)
		switch {
		case !set || val == "":
			if v == config.EnvSFTPPort {
				log.Info("  %s unset (default 22)", v)
			} else {
				log.Warn("  %s unset", v)
			}
		case v == config.EnvSFTPPassword:
			log.Success("  %s set", v)
		default:
			log.Success("  %s = %s", v, val)
		}
	}
}

// CheckDeps is the pre-pipeline validation run before the conversion or
// merge stage: the interpreter must be on PATH and the lerobot library must
// import. Upload-only runs skip this; they need no python.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.PythonBin); err != nil {
		return ErrPythonNotFound
	}
	if !runSilent(cfg.PythonBin, "-c", "import lerobot") {
		return ErrLerobotMissing
	}
	return nil
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
