// Package dataset reads LeRobot dataset metadata from disk. A dataset is a
// directory whose meta/info.json carries the schema version and the episode
// and frame totals; this package only reads those counters, it never touches
// the episode data itself.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// infoRelPath is where a LeRobot dataset keeps its metadata, relative to the
// dataset root.
const infoRelPath = "meta/info.json"

// Dataset is a read-only handle on one dataset directory.
type Dataset struct {
	Name            string
	Root            string
	CodebaseVersion string
	Episodes        int
	Frames          int
}

// infoFile mirrors the subset of meta/info.json this tool needs.
type infoFile struct {
	CodebaseVersion string `json:"codebase_version"`
	TotalEpisodes   int    `json:"total_episodes"`
	TotalFrames     int    `json:"total_frames"`
}

// Exists reports whether path is an existing directory.
func Exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// Load opens the dataset rooted at root and returns a handle with its
// counters. The root must contain meta/info.json with non-negative totals.
func Load(name, root string) (*Dataset, error) {
	infoPath := filepath.Join(root, filepath.FromSlash(infoRelPath))
	data, err := os.ReadFile(infoPath)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", name, err)
	}

	var info infoFile
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parse %s: %w", infoPath, err)
	}
	if info.TotalEpisodes < 0 || info.TotalFrames < 0 {
		return nil, fmt.Errorf("dataset %s reports negative totals (%d episodes, %d frames)",
			name, info.TotalEpisodes, info.TotalFrames)
	}

	return &Dataset{
		Name:            name,
		Root:            root,
		CodebaseVersion: info.CodebaseVersion,
		Episodes:        info.TotalEpisodes,
		Frames:          info.TotalFrames,
	}, nil
}
