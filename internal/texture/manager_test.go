package texture

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// gatedSource serves fixed bytes per ref, holding each fetch until its gate is released.
type gatedSource struct {
	mu    sync.Mutex
	data  map[string][]byte
	gates map[string]chan struct{}
}

func newGatedSource() *gatedSource {
	return &gatedSource{data: map[string][]byte{}, gates: map[string]chan struct{}{}}
}

func (s *gatedSource) add(ref string, data []byte, gated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[ref] = data
	if gated {
		s.gates[ref] = make(chan struct{})
	}
}

func (s *gatedSource) release(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	close(s.gates[ref])
}

func (s *gatedSource) Fetch(ctx context.Context, ref string) ([]byte, error) {
	s.mu.Lock()
	data, ok := s.data[ref]
	gate := s.gates[ref]
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

type countingHandle struct{ released *int }

func (h countingHandle) Release() { *h.released++ }

type countingUploader struct {
	uploads  int
	released int
}

func (u *countingUploader) Upload(image.Image) (Handle, error) {
	u.uploads++
	return countingHandle{released: &u.released}, nil
}

// pumpUntil pumps until want deliveries have happened or the deadline passes.
func pumpUntil(t *testing.T, m *Manager, want int) {
	t.Helper()
	got := 0
	deadline := time.Now().Add(5 * time.Second)
	for got < want {
		got += m.Pump()
		if time.Now().After(deadline) {
			t.Fatalf("delivered %d loads, want %d", got, want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestLoadSuccess(t *testing.T) {
	src := newGatedSource()
	src.add("wide.png", pngBytes(t, 40, 20), false)
	up := &countingUploader{}
	m := NewManager(Options{Source: src, Uploader: up})
	defer m.Close()

	var done []*Resource
	r := m.Load("wide.png", func(r *Resource) { done = append(done, r) })
	assert.Equal(t, Pending, r.State())
	assert.Equal(t, DefaultAspect, r.Aspect())

	pumpUntil(t, m, 1)
	require.Len(t, done, 1)
	assert.Same(t, r, done[0])
	assert.Equal(t, Loaded, r.State())
	assert.InDelta(t, 2.0, r.Aspect(), 1e-6)
	assert.NotNil(t, r.Handle())
	assert.Equal(t, 1, up.uploads)
	assert.Equal(t, Stats{Loaded: 1}, m.Stats())
}

func TestLoadFailureIsLocal(t *testing.T) {
	src := newGatedSource()
	src.add("text.bin", []byte("just some text, definitely not pixels"), false)
	m := NewManager(Options{Source: src})
	defer m.Close()

	missing := m.Load("missing.png", nil)
	garbage := m.Load("text.bin", nil)
	pumpUntil(t, m, 2)

	assert.Equal(t, Failed, missing.State())
	assert.Error(t, missing.Err())
	assert.Equal(t, Failed, garbage.State())
	assert.ErrorIs(t, garbage.Err(), ErrNotImage)
	assert.Equal(t, DefaultAspect, garbage.Aspect())
	assert.Nil(t, garbage.Handle())
	assert.Equal(t, Stats{Failed: 2}, m.Stats())
}

func TestDisposeBeforeLandIgnoresResult(t *testing.T) {
	src := newGatedSource()
	src.add("slow.png", pngBytes(t, 4, 4), true)
	up := &countingUploader{}
	m := NewManager(Options{Source: src, Uploader: up})
	defer m.Close()

	called := false
	r := m.Load("slow.png", func(*Resource) { called = true })
	r.Dispose()
	assert.Equal(t, 0, m.Live())

	src.release("slow.png")
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, m.Pump())
	assert.False(t, called)
	assert.Equal(t, 0, up.uploads, "stale loads are never uploaded")
	assert.Equal(t, Pending, r.State())
}

func TestDisposeReleasesHandleOnce(t *testing.T) {
	src := newGatedSource()
	src.add("a.png", pngBytes(t, 4, 4), false)
	up := &countingUploader{}
	m := NewManager(Options{Source: src, Uploader: up})
	defer m.Close()

	r := m.Load("a.png", nil)
	pumpUntil(t, m, 1)
	r.Dispose()
	r.Dispose()
	assert.Equal(t, 1, up.released)
	assert.True(t, r.Disposed())
	assert.Nil(t, r.Handle())
}

func TestCloseDisposesEverything(t *testing.T) {
	src := newGatedSource()
	src.add("a.png", pngBytes(t, 4, 4), false)
	src.add("b.png", pngBytes(t, 4, 4), true)
	up := &countingUploader{}
	m := NewManager(Options{Source: src, Uploader: up})

	a := m.Load("a.png", nil)
	b := m.Load("b.png", nil)
	pumpUntil(t, m, 1)

	m.Close()
	assert.True(t, a.Disposed())
	assert.True(t, b.Disposed())
	assert.Equal(t, 0, m.Live())
	assert.Equal(t, 1, up.released)

	late := m.Load("a.png", nil)
	assert.Equal(t, Failed, late.State())
}

func TestDecodeDownscalesButKeepsNaturalAspect(t *testing.T) {
	img, aspect, err := Decode(pngBytes(t, 300, 100), 60)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, aspect, 1e-6)
	assert.Equal(t, 60, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())

	img, _, err = Decode(pngBytes(t, 30, 10), 60)
	require.NoError(t, err)
	assert.Equal(t, 30, img.Bounds().Dx())
}

func TestDecodeRejectsNonImages(t *testing.T) {
	zip := []byte{'P', 'K', 0x03, 0x04, 0x14, 0x00, 0x00, 0x00}
	_, _, err := Decode(zip, 0)
	assert.ErrorIs(t, err, ErrNotImage)

	_, _, err = Decode(nil, 0)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestDefaultSource(t *testing.T) {
	body := pngBytes(t, 2, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ok.png" {
			http.NotFound(w, r)
			return
		}
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	var src DefaultSource
	got, err := src.Fetch(context.Background(), srv.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, body, got)

	_, err = src.Fetch(context.Background(), srv.URL+"/missing.png")
	assert.ErrorContains(t, err, "HTTP 404")

	path := filepath.Join(t.TempDir(), "local.png")
	require.NoError(t, os.WriteFile(path, body, 0644))
	got, err = src.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, body, got)
	got, err = src.Fetch(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, body, got)

	_, err = src.Fetch(context.Background(), "")
	assert.Error(t, err)
}
