package scene

import "gallery-room/internal/gallery"

// Gate decides whether navigation is enabled from what is shown over the room: the intro screen,
// a user freeze (Tab) or an enlarged photo. The viewer re-evaluates it every frame and passes
// Enabled to Scene.SetEnabled.
type Gate struct {
	intro    bool
	frozen   bool
	selected *gallery.Photo
}

// NewGate starts on the intro screen.
func NewGate() *Gate {
	return &Gate{intro: true}
}

// Start dismisses the intro screen.
func (g *Gate) Start() { g.intro = false }

// ToggleFreeze pauses or resumes navigation. It has no effect on the intro screen.
func (g *Gate) ToggleFreeze() {
	if !g.intro {
		g.frozen = !g.frozen
	}
}

// Select shows p enlarged. Selecting while another photo is shown replaces it.
func (g *Gate) Select(p gallery.Photo) {
	g.selected = &p
}

// CloseSelection hides the enlarged photo, if any.
func (g *Gate) CloseSelection() { g.selected = nil }

// Selected returns the enlarged photo.
func (g *Gate) Selected() (gallery.Photo, bool) {
	if g.selected == nil {
		return gallery.Photo{}, false
	}
	return *g.selected, true
}

func (g *Gate) Intro() bool  { return g.intro }
func (g *Gate) Frozen() bool { return g.frozen }

// Enabled is true only when nothing covers the room.
func (g *Gate) Enabled() bool {
	return !g.intro && !g.frozen && g.selected == nil
}
