package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gallery-room/internal/gallery"
	"gallery-room/internal/input"
	"gallery-room/internal/texture"
)

func TestGateStartsOnIntro(t *testing.T) {
	g := NewGate()
	assert.True(t, g.Intro())
	assert.False(t, g.Enabled())

	g.ToggleFreeze()
	assert.False(t, g.Frozen(), "tab does nothing on the intro screen")

	g.Start()
	assert.True(t, g.Enabled())
}

func TestGateFreezeAndSelection(t *testing.T) {
	g := NewGate()
	g.Start()

	g.ToggleFreeze()
	assert.False(t, g.Enabled())
	g.ToggleFreeze()
	assert.True(t, g.Enabled())

	g.Select(gallery.Photo{ID: "a"})
	g.Select(gallery.Photo{ID: "b"})
	p, ok := g.Selected()
	assert.True(t, ok)
	assert.Equal(t, "b", p.ID)
	assert.False(t, g.Enabled())

	g.CloseSelection()
	_, ok = g.Selected()
	assert.False(t, ok)
	assert.True(t, g.Enabled())
}

func TestGateDrivesScene(t *testing.T) {
	m := texture.NewManager(texture.Options{Source: mapSource{}})
	defer m.Close()
	bus := input.NewBus()
	s := New(bus, m, wallPicker, Options{})
	defer s.Close()
	g := NewGate()
	base := bus.Count()

	s.SetEnabled(g.Enabled())
	assert.False(t, s.Enabled())

	g.Start()
	s.SetEnabled(g.Enabled())
	assert.True(t, s.Enabled())
	assert.Greater(t, bus.Count(), base)
}
