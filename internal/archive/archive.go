package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// maxEntrySize bounds a single extracted file; larger entries are skipped.
const maxEntrySize = 64 << 20

// Unzip extracts the regular files of zipPath flat into destDir (entry directories are dropped,
// so a later entry with the same base name wins). Hidden files and entries larger than
// maxEntrySize are skipped. destDir is created if needed. Returns the extracted paths, sorted.
func Unzip(zipPath, destDir string) (extracted []string, err error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	defer r.Close()
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	seen := map[string]bool{}
	for _, f := range r.File {
		name := path.Base(strings.ReplaceAll(f.Name, "\\", "/"))
		if f.FileInfo().IsDir() || name == "." || name == "/" || strings.HasPrefix(name, ".") {
			continue
		}
		if f.UncompressedSize64 > maxEntrySize {
			continue
		}
		dest := filepath.Join(destDir, name)
		if err := extract(f, dest); err != nil {
			return nil, fmt.Errorf("unzip %s: %w", f.Name, err)
		}
		if !seen[dest] {
			seen[dest] = true
			extracted = append(extracted, dest)
		}
	}
	sort.Strings(extracted)
	return extracted, nil
}

func extract(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, io.LimitReader(rc, maxEntrySize))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}
