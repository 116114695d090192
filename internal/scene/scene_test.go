package scene

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery-room/internal/camera"
	"gallery-room/internal/gallery"
	"gallery-room/internal/input"
	"gallery-room/internal/texture"
)

type mapSource map[string][]byte

func (s mapSource) Fetch(_ context.Context, ref string) ([]byte, error) {
	if b, ok := s[ref]; ok {
		return b, nil
	}
	return nil, errors.New("404")
}

func pngOf(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 2))))
	return buf.Bytes()
}

// wallPicker casts every ray from the room's center line straight at the left wall; screen x is
// world z and screen y is world y.
func wallPicker(x, y float32) ([3]float32, [3]float32) {
	return [3]float32{0, y, x}, [3]float32{-1, 0, 0}
}

func photos(prefix string, n int) []gallery.Photo {
	out := make([]gallery.Photo, n)
	for i := range out {
		out[i] = gallery.Photo{ID: fmt.Sprintf("%s%d", prefix, i), ImageURL: fmt.Sprintf("%s%d.png", prefix, i)}
	}
	return out
}

func sourceFor(t *testing.T, lists ...[]gallery.Photo) mapSource {
	src := mapSource{}
	img := pngOf(t)
	for _, l := range lists {
		for _, p := range l {
			src[p.ImageURL] = img
		}
	}
	return src
}

func settle(t *testing.T, s *Scene, m *texture.Manager) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for m.Stats().Pending > 0 {
		s.Update()
		if time.Now().After(deadline) {
			t.Fatal("loads did not settle")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestEmptyGalleryStillHasRoom(t *testing.T) {
	m := texture.NewManager(texture.Options{Source: mapSource{}})
	defer m.Close()
	s := New(input.NewBus(), m, wallPicker, Options{})
	s.SetPhotos(nil)
	s.Update()

	assert.Empty(t, s.Frames())
	assert.Len(t, s.Room().Planes, 6)
	assert.Len(t, s.Room().Points, 3)
	assert.Nil(t, s.FrameAt(0, 2))
}

func TestSetPhotosMountsOneFramePerSlot(t *testing.T) {
	list := photos("a", 12)
	m := texture.NewManager(texture.Options{Source: sourceFor(t, list)})
	defer m.Close()
	s := New(input.NewBus(), m, wallPicker, Options{})
	s.SetPhotos(list)

	require.Len(t, s.Frames(), 12)
	for i, f := range s.Frames() {
		assert.Equal(t, list[i], f.Photo())
	}
	assert.Equal(t, float32(-9.5), s.Frames()[0].Slot().Position[0])
	assert.Equal(t, float32(9.5), s.Frames()[11].Slot().Position[0])
	assert.Equal(t, 12, m.Live())

	settle(t, s, m)
	assert.Equal(t, texture.Stats{Loaded: 12}, m.Stats())
}

func TestSwitchingGalleriesDisposesOldFramesFirst(t *testing.T) {
	first, second := photos("a", 5), photos("b", 3)
	m := texture.NewManager(texture.Options{Source: sourceFor(t, first, second)})
	defer m.Close()
	s := New(input.NewBus(), m, wallPicker, Options{})

	s.SetPhotos(first)
	old := make([]*texture.Resource, 0, 5)
	for _, f := range s.Frames() {
		old = append(old, f.Texture())
	}
	settle(t, s, m)

	s.SetPhotos(second)
	for _, r := range old {
		assert.True(t, r.Disposed())
	}
	assert.Equal(t, 3, m.Live())
	require.Len(t, s.Frames(), 3)

	// the same list again is not a change
	current := s.Frames()[0]
	s.SetPhotos(photos("b", 3))
	assert.Same(t, current, s.Frames()[0])
}

func TestHoverAndClick(t *testing.T) {
	list := photos("a", 2) // one per wall, each centered at z=0
	m := texture.NewManager(texture.Options{Source: sourceFor(t, list)})
	defer m.Close()
	bus := input.NewBus()
	var selected []gallery.Photo
	s := New(bus, m, wallPicker, Options{OnSelect: func(p gallery.Photo) { selected = append(selected, p) }})
	s.SetPhotos(list)
	left := s.Frames()[0]

	bus.Dispatch(input.Event{Kind: input.PointerMove, X: 0, Y: 2})
	s.Update()
	assert.Same(t, left, s.Hovered())
	assert.True(t, left.Hovered())

	bus.Dispatch(input.Event{Kind: input.PointerMove, X: 5, Y: 2})
	s.Update()
	assert.Nil(t, s.Hovered())
	assert.False(t, left.Hovered())

	// click on the frame
	bus.Dispatch(input.Event{Kind: input.PointerDown, X: 0, Y: 2})
	bus.Dispatch(input.Event{Kind: input.PointerUp, X: 0.5, Y: 2})
	assert.Equal(t, []gallery.Photo{list[0]}, selected)

	// a drag that starts on the frame is a look, not a click
	bus.Dispatch(input.Event{Kind: input.PointerDown, X: 0, Y: 2})
	bus.Dispatch(input.Event{Kind: input.PointerUp, X: 0.2, Y: 40})
	// pressing on the wall and releasing on the frame is not a click either
	bus.Dispatch(input.Event{Kind: input.PointerDown, X: 5, Y: 2})
	bus.Dispatch(input.Event{Kind: input.PointerUp, X: 1, Y: 2})
	assert.Len(t, selected, 1)
}

func TestFailedFramesStayInteractive(t *testing.T) {
	list := photos("broken", 1)
	m := texture.NewManager(texture.Options{Source: mapSource{}})
	defer m.Close()
	bus := input.NewBus()
	clicks := 0
	s := New(bus, m, wallPicker, Options{OnSelect: func(gallery.Photo) { clicks++ }})
	s.SetPhotos(list)
	settle(t, s, m)

	f := s.Frames()[0]
	assert.Equal(t, texture.Failed, f.Texture().State())
	assert.True(t, f.Placeholder())

	bus.Dispatch(input.Event{Kind: input.PointerMove, X: 0, Y: 2})
	s.Update()
	assert.True(t, f.Hovered())
	bus.Dispatch(input.Event{Kind: input.PointerDown, X: 0, Y: 2})
	bus.Dispatch(input.Event{Kind: input.PointerUp, X: 0, Y: 2})
	assert.Equal(t, 1, clicks)
}

func TestEnabledGatesCamera(t *testing.T) {
	m := texture.NewManager(texture.Options{Source: mapSource{}})
	defer m.Close()
	bus := input.NewBus()
	s := New(bus, m, nil, Options{})
	base := bus.Count()

	assert.False(t, s.Enabled())
	s.SetEnabled(true)
	assert.True(t, s.Enabled())
	assert.Equal(t, camera.Attached, s.Camera().Mode())
	bus.Dispatch(input.Event{Kind: input.KeyDown, Key: "w"})
	s.Update()
	assert.Less(t, s.Camera().Position()[2], float32(8))

	s.SetEnabled(false)
	assert.Equal(t, base, bus.Count())
	before := s.Camera().State()
	for i := 0; i < 100; i++ {
		bus.Dispatch(input.Event{Kind: input.KeyDown, Key: "s"})
		bus.Dispatch(input.Event{Kind: input.PointerDown, X: 1, Y: 1})
		bus.Dispatch(input.Event{Kind: input.PointerMove, X: float32(i), Y: float32(i)})
		s.Update()
	}
	assert.Equal(t, before, s.Camera().State())
}

func TestCloseReleasesEverything(t *testing.T) {
	list := photos("a", 4)
	m := texture.NewManager(texture.Options{Source: sourceFor(t, list)})
	defer m.Close()
	bus := input.NewBus()
	s := New(bus, m, wallPicker, Options{})
	s.SetPhotos(list)
	s.SetEnabled(true)
	require.Greater(t, bus.Count(), 0)

	s.Close()
	s.Close()
	assert.Equal(t, 0, bus.Count())
	assert.Equal(t, 0, m.Live())
	assert.Empty(t, s.Frames())

	s.SetPhotos(list)
	s.SetEnabled(true)
	s.Update()
	assert.Equal(t, 0, bus.Count())
	assert.Equal(t, 0, m.Live())
}
