package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"gopkg.in/yaml.v3"

	"gallery-room/internal/archive"
)

// photoNamespace seeds the deterministic IDs of photos found by scanning a directory,
// so the same file keeps the same ID across reloads.
var photoNamespace = uuid.MustParse("6f1d2c86-3f0a-4d0e-9a52-7b1b8f6c2e41")

// manifest is the YAML form of a gallery:
//
//	title: Summer
//	photos:
//	  - id: p1
//	    url: images/beach.jpg
//	    title: Beach
type manifest struct {
	Title  string  `yaml:"title,omitempty"`
	Photos []Photo `yaml:"photos"`
}

// Load returns the photo list described by source: an http(s) URL serving JSON, a .yaml/.yml
// manifest, a .zip of images, or a directory of images.
func Load(ctx context.Context, source string) ([]Photo, error) {
	switch {
	case source == "":
		return nil, fmt.Errorf("gallery: empty source")
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return Fetch(ctx, source)
	}
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("gallery: %w", err)
	}
	if info.IsDir() {
		return ScanDir(source)
	}
	if strings.EqualFold(filepath.Ext(source), ".zip") {
		return LoadArchive(source, "")
	}
	return LoadManifest(source)
}

// LoadArchive extracts the zip at path into cacheDir and scans the result like a directory.
// An empty cacheDir uses a per-archive directory under the OS temp dir, so reloading the same
// archive overwrites the earlier extraction and photo IDs stay stable.
func LoadArchive(path, cacheDir string) ([]Photo, error) {
	if cacheDir == "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("gallery: %w", err)
		}
		cacheDir = filepath.Join(os.TempDir(), "gallery-room", photoID(abs))
	}
	if _, err := archive.Unzip(path, cacheDir); err != nil {
		return nil, fmt.Errorf("gallery: %w", err)
	}
	return ScanDir(cacheDir)
}

// LoadManifest reads a YAML manifest. Relative photo URLs are resolved against the manifest's directory.
// Entries without a URL are dropped; entries without an ID get one derived from their URL.
func LoadManifest(path string) ([]Photo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gallery: read %s: %w", path, err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("gallery: parse %s: %w", path, err)
	}
	base := filepath.Dir(path)
	photos := make([]Photo, 0, len(m.Photos))
	for _, p := range m.Photos {
		if p.ImageURL == "" {
			continue
		}
		if !isRemote(p.ImageURL) && !filepath.IsAbs(p.ImageURL) {
			p.ImageURL = filepath.Join(base, filepath.FromSlash(p.ImageURL))
		}
		if p.ID == "" {
			p.ID = photoID(p.ImageURL)
		}
		photos = append(photos, p)
	}
	return photos, nil
}

// ScanDir lists the image files in dir (sorted by name, non-recursive). File content is sniffed,
// so extensions don't matter. Titles are file names without extension.
func ScanDir(dir string) ([]Photo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("gallery: read dir %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	photos := make([]Photo, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if !isImageFile(path) {
			continue
		}
		photos = append(photos, Photo{
			ID:       photoID(path),
			ImageURL: path,
			Title:    strings.TrimSuffix(name, filepath.Ext(name)),
		})
	}
	return photos, nil
}

// isImageFile sniffs the file header; 262 bytes is what filetype needs.
func isImageFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	head := make([]byte, 262)
	n, _ := f.Read(head)
	return filetype.IsImage(head[:n])
}

// Fetch GETs a JSON photo list: either a bare array or {"photos": [...]}. Relative image URLs
// are resolved against the request URL.
func Fetch(ctx context.Context, rawURL string) ([]Photo, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("gallery: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gallery: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gallery: %s: HTTP %d", rawURL, resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("gallery: decode %s: %w", rawURL, err)
	}
	var photos []Photo
	if err := json.Unmarshal(raw, &photos); err != nil {
		var wrapped struct {
			Photos []Photo `json:"photos"`
		}
		if err2 := json.Unmarshal(raw, &wrapped); err2 != nil {
			return nil, fmt.Errorf("gallery: decode %s: %w", rawURL, err)
		}
		photos = wrapped.Photos
	}

	base, _ := url.Parse(rawURL)
	out := photos[:0]
	for _, p := range photos {
		if p.ImageURL == "" {
			continue
		}
		if ref, err := url.Parse(p.ImageURL); err == nil && base != nil {
			p.ImageURL = base.ResolveReference(ref).String()
		}
		if p.ID == "" {
			p.ID = photoID(p.ImageURL)
		}
		out = append(out, p)
	}
	return out, nil
}

func photoID(ref string) string {
	return uuid.NewSHA1(photoNamespace, []byte(ref)).String()
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "file://")
}
