package archive

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/compress/zip"
)

// writeTree creates a small dataset-shaped directory.
func writeTree(t *testing.T, root string) {
	t.Helper()
	dirs := []string{"meta", "data/chunk-000", "videos"}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	files := map[string]string{
		"meta/info.json":               `{"total_episodes": 2, "total_frames": 100}`,
		"data/chunk-000/file-000.data": "episode payload",
		"videos/cam0.mp4":              "not really a video",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, filepath.FromSlash(name)), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func entryNames(t *testing.T, zipPath string) []string {
	t.Helper()
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer r.Close()
	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

func TestZip_ArchivesTree(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "merged")
	writeTree(t, src)
	dest := src + ".zip"

	size, err := Zip(src, dest)
	if err != nil {
		t.Fatalf("Zip: %v", err)
	}
	if size <= 0 {
		t.Errorf("archive size = %d, want > 0", size)
	}

	names := entryNames(t, dest)
	want := []string{
		"data/",
		"data/chunk-000/",
		"data/chunk-000/file-000.data",
		"meta/",
		"meta/info.json",
		"videos/",
		"videos/cam0.mp4",
	}
	if len(names) != len(want) {
		t.Fatalf("entries = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entry[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestZip_RoundTripsContent(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "merged")
	writeTree(t, src)
	dest := src + ".zip"

	if _, err := Zip(src, dest); err != nil {
		t.Fatalf("Zip: %v", err)
	}

	r, err := zip.OpenReader(dest)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	for _, f := range r.File {
		if f.Name != "meta/info.json" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		got, _ := io.ReadAll(rc)
		rc.Close()
		if !bytes.Contains(got, []byte("total_episodes")) {
			t.Errorf("meta/info.json content: %s", got)
		}
		return
	}
	t.Error("meta/info.json not found in archive")
}

func TestZip_OverwritesExisting(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "merged")
	writeTree(t, src)
	dest := src + ".zip"

	if err := os.WriteFile(dest, []byte("stale archive"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Zip(src, dest); err != nil {
		t.Fatalf("Zip: %v", err)
	}
	if _, err := zip.OpenReader(dest); err != nil {
		t.Errorf("overwritten archive is not a valid zip: %v", err)
	}
}

func TestZip_DeterministicForUnchangedTree(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "merged")
	writeTree(t, src)

	first := filepath.Join(base, "first.zip")
	second := filepath.Join(base, "second.zip")
	if _, err := Zip(src, first); err != nil {
		t.Fatal(err)
	}
	if _, err := Zip(src, second); err != nil {
		t.Fatal(err)
	}

	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if !bytes.Equal(a, b) {
		t.Error("re-archiving an unchanged tree should be byte-identical")
	}
}

func TestZip_MissingSourceIsFatal(t *testing.T) {
	base := t.TempDir()
	if _, err := Zip(filepath.Join(base, "nope"), filepath.Join(base, "out.zip")); err == nil {
		t.Error("Zip should fail for a missing source directory")
	}
	if _, err := os.Stat(filepath.Join(base, "out.zip")); err == nil {
		t.Error("no archive should be left behind on failure")
	}
}

func TestZip_SourceMustBeDirectory(t *testing.T) {
	base := t.TempDir()
	file := filepath.Join(base, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Zip(file, filepath.Join(base, "out.zip")); err == nil {
		t.Error("Zip should reject a non-directory source")
	}
}
