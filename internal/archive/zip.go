// Package archive compresses a dataset directory into a single zip file.
// The walk order is lexical and entry metadata comes straight from the
// filesystem, so re-archiving an unchanged directory reproduces the archive
// byte for byte.
package archive

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
)

// Zip archives srcDir recursively into destPath, overwriting any existing
// file at destPath. Entry names are relative to srcDir with forward slashes;
// directory entries are included with a trailing slash. Returns the final
// archive size in bytes.
func Zip(srcDir, destPath string) (int64, error) {
	fi, err := os.Stat(srcDir)
	if err != nil {
		return 0, fmt.Errorf("archive source: %w", err)
	}
	if !fi.IsDir() {
		return 0, fmt.Errorf("archive source %s is not a directory", srcDir)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("create archive: %w", err)
	}

	zw := zip.NewWriter(out)
	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == srcDir {
			return nil
		}
		return addEntry(zw, srcDir, path, d)
	})

	if walkErr != nil {
		zw.Close()
		out.Close()
		os.Remove(destPath)
		return 0, fmt.Errorf("archive %s: %w", srcDir, walkErr)
	}
	if err := zw.Close(); err != nil {
		out.Close()
		os.Remove(destPath)
		return 0, fmt.Errorf("finalize archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("close archive: %w", err)
	}

	info, err := os.Stat(destPath)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// addEntry writes one file or directory entry. Files use deflate;
// directories are stored as bare headers with a trailing slash.
func addEntry(zw *zip.Writer, srcDir, path string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}

	rel, err := filepath.Rel(srcDir, path)
	if err != nil {
		return err
	}
	hdr.Name = filepath.ToSlash(rel)

	if d.IsDir() {
		hdr.Name += "/"
		_, err := zw.CreateHeader(hdr)
		return err
	}

	hdr.Method = zip.Deflate
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
