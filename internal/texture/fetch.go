package texture

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; rv:109.0) Gecko/20100101 Firefox/115.0"
	// maxImageBytes caps a single download; larger bodies fail the load.
	maxImageBytes = 64 << 20
)

// Source fetches the raw bytes of an image reference.
type Source interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// DefaultSource reads http(s) URLs over the network, file:// URLs and bare paths from disk.
type DefaultSource struct {
	Client *http.Client
}

// Fetch implements Source.
func (s DefaultSource) Fetch(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case ref == "":
		return nil, fmt.Errorf("fetch: empty image reference")
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return s.fetchHTTP(ctx, ref)
	case strings.HasPrefix(ref, "file://"):
		u, err := url.Parse(ref)
		if err != nil {
			return nil, fmt.Errorf("fetch: %w", err)
		}
		return readFile(u.Path)
	}
	return readFile(ref)
}

func (s DefaultSource) fetchHTTP(ctx context.Context, ref string) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: HTTP %d", resp.StatusCode)
	}
	return readLimited(resp.Body)
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer f.Close()
	return readLimited(f)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("fetch: image larger than %d bytes", maxImageBytes)
	}
	return data, nil
}
