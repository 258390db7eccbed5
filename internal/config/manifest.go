package config

// This file loads the optional YAML dataset manifest (--datasets). The
// manifest replaces the built-in dataset list so the pipeline can be pointed
// at synthetic or per-site dataset sets without rebuilding.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// manifest mirrors the on-disk YAML shape:
//
//	datasets:
//	  - move-blue-cup-feb12-v1.1
//	  - move-green-cup-13feb-v1.2
type manifest struct {
	Datasets []string `yaml:"datasets"`
}

// LoadManifest reads the YAML manifest at path and returns the ordered
// dataset name list. Names must be non-empty, unique, and free of path
// separators (they are directory names under BasePath, not paths).
func LoadManifest(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse dataset manifest %s: %w", path, err)
	}
	if len(m.Datasets) == 0 {
		return nil, fmt.Errorf("dataset manifest %s lists no datasets", path)
	}

	seen := make(map[string]bool, len(m.Datasets))
	for i, name := range m.Datasets {
		name = strings.TrimSpace(name)
		m.Datasets[i] = name
		if name == "" {
			return nil, fmt.Errorf("dataset manifest %s contains an empty dataset name", path)
		}
		if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
			return nil, fmt.Errorf("dataset name %q must not contain path separators", name)
		}
		if seen[name] {
			return nil, fmt.Errorf("dataset %q listed twice in %s", name, path)
		}
		seen[name] = true
	}
	return m.Datasets, nil
}
