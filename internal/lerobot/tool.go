// Package lerobot invokes the external LeRobot python toolchain for dataset
// schema conversion and dataset merging. The toolchain is an opaque
// collaborator: this package builds argument vectors, runs the interpreter,
// and surfaces failures with the captured stderr tail; it knows nothing about
// dataset internals.
package lerobot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// stderrTailLines bounds how much captured toolchain output is attached to a
// failure. Full output is visible live in verbose mode.
const stderrTailLines = 20

// Tool runs the LeRobot toolchain through a python interpreter.
type Tool struct {
	Python  string // Interpreter binary, e.g. "python3".
	Verbose bool   // Tee toolchain stderr to os.Stderr in real time.
}

// New returns a Tool using the given interpreter.
func New(python string, verbose bool) *Tool {
	return &Tool{Python: python, Verbose: verbose}
}

// Convert upgrades the dataset identified by repoID (e.g. "site/name") under
// root from schema v2.1 to v3.0, in place on disk. No result is returned;
// the toolchain mutates the dataset directory.
func (t *Tool) Convert(ctx context.Context, repoID, root string) error {
	if err := t.run(ctx, BuildConvertArgs(repoID, root)); err != nil {
		return fmt.Errorf("convert %s: %w", repoID, err)
	}
	return nil
}

// Merge consolidates the named datasets into outputRepoID at outputDir. The
// toolchain is invoked exactly once with the full input list, even when the
// list is empty; empty-input behavior is the toolchain's to define.
func (t *Tool) Merge(ctx context.Context, repoIDs []string, outputRepoID, outputDir string) error {
	if err := t.run(ctx, BuildMergeArgs(repoIDs, outputRepoID, outputDir)); err != nil {
		return fmt.Errorf("merge into %s: %w", outputRepoID, err)
	}
	return nil
}

// run executes the interpreter with args, blocking until it exits. Stderr is
// captured for error reporting; in verbose mode it is also tee'd to
// os.Stderr in real time.
func (t *Tool) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, t.Python, args...)

	var stderrBuf bytes.Buffer
	if t.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	if err := cmd.Run(); err != nil {
		return commandError(err, stderrBuf.String())
	}
	return nil
}

// commandError wraps a subprocess failure with the stderr tail so the fatal
// log line carries the toolchain's own diagnostics.
func commandError(err error, stderr string) error {
	tail := stderrTail(stderr)
	if tail == "" {
		return err
	}
	return fmt.Errorf("%w\n%s", err, tail)
}

// stderrTail returns the last stderrTailLines lines of captured output.
func stderrTail(stderr string) string {
	s := strings.TrimSpace(stderr)
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > stderrTailLines {
		lines = lines[len(lines)-stderrTailLines:]
	}
	return strings.Join(lines, "\n")
}
