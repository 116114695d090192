package fonts

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Exts are the font file extensions raylib can load.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate font directories relative to the process cwd.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns the font files under dir as slash-separated relative paths, sorted.
// A missing dir yields no fonts and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(out)
	return out, err
}

// Find returns the path of the first font in the first directory that has one, preferring
// "Regular" faces. Empty when no font is found; callers then use raylib's built-in font.
func Find(dirs ...string) string {
	for _, dir := range dirs {
		files, err := ScanDir(dir)
		if err != nil || len(files) == 0 {
			continue
		}
		pick := files[0]
		for _, f := range files {
			if strings.Contains(filepath.Base(f), "Regular") {
				pick = f
				break
			}
		}
		return filepath.Join(dir, filepath.FromSlash(pick))
	}
	return ""
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}
