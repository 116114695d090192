package frame

import (
	"image/color"

	"github.com/chewxy/math32"

	"gallery-room/internal/gallery"
	"gallery-room/internal/layout"
	"gallery-room/internal/texture"
)

const (
	// Width of every photo; height follows the image aspect ratio.
	Width float32 = 2
	// Border is the margin of the frame around the photo on each side.
	Border float32 = 0.08
)

var (
	BorderColor      = color.RGBA{R: 40, G: 36, B: 32, A: 255}
	HoverColor       = color.RGBA{R: 212, G: 175, B: 55, A: 255}
	PlaceholderColor = color.RGBA{R: 150, G: 150, B: 150, A: 255}
)

// Loader starts a texture load. *texture.Manager implements it.
type Loader interface {
	Load(ref string, onDone func(*texture.Resource)) *texture.Resource
}

// Frame is one photo hanging in a slot. It exclusively owns its texture resource: assigning a new
// photo disposes the old resource before the new load is requested, and Dispose releases the
// current one.
type Frame struct {
	slot     layout.Slot
	photo    gallery.Photo
	tex      *texture.Resource
	loader   Loader
	onSelect func(gallery.Photo)
	hovered  bool
	height   float32
	disposed bool
}

// New hangs photo in slot and starts loading its texture. onSelect (optional) is called on Click.
func New(slot layout.Slot, photo gallery.Photo, loader Loader, onSelect func(gallery.Photo)) *Frame {
	f := &Frame{
		slot:     slot,
		loader:   loader,
		onSelect: onSelect,
		height:   Width / texture.DefaultAspect,
	}
	f.load(photo)
	return f
}

// Assign replaces the frame's photo. Assigning the photo already shown does nothing.
func (f *Frame) Assign(photo gallery.Photo) {
	if f.disposed || photo == f.photo {
		return
	}
	f.load(photo)
}

func (f *Frame) load(photo gallery.Photo) {
	if f.tex != nil {
		f.tex.Dispose()
		f.tex = nil
	}
	f.photo = photo
	f.height = Width / texture.DefaultAspect
	f.tex = f.loader.Load(photo.ImageURL, f.landed)
}

// landed runs on the render thread when this frame's current load completes.
func (f *Frame) landed(r *texture.Resource) {
	if r != f.tex || r.State() != texture.Loaded {
		return
	}
	if a := r.Aspect(); a > 0 && !math32.IsInf(a, 0) && !math32.IsNaN(a) {
		f.height = Width / a
	}
}

// Dispose releases the frame's texture. Further calls are no-ops.
func (f *Frame) Dispose() {
	if f.disposed {
		return
	}
	f.disposed = true
	f.tex.Dispose()
	f.tex = nil
	f.hovered = false
}

// Photo returns the photo the frame shows.
func (f *Frame) Photo() gallery.Photo { return f.photo }

// Slot returns where the frame hangs.
func (f *Frame) Slot() layout.Slot { return f.slot }

// Texture returns the frame's current resource, nil once disposed.
func (f *Frame) Texture() *texture.Resource { return f.tex }

// Hovered reports whether the pointer is over the frame.
func (f *Frame) Hovered() bool { return f.hovered }

// Size returns the photo's width and height in world units (the border is outside this).
func (f *Frame) Size() (w, h float32) { return Width, f.height }

// Placeholder reports whether the neutral fill is drawn instead of the photo.
func (f *Frame) Placeholder() bool {
	return f.tex == nil || f.tex.State() != texture.Loaded
}

// BorderColor returns the border color, highlighted while hovered.
func (f *Frame) BorderColor() color.RGBA {
	if f.hovered {
		return HoverColor
	}
	return BorderColor
}

// PointerEnter marks the frame hovered.
func (f *Frame) PointerEnter() {
	if !f.disposed {
		f.hovered = true
	}
}

// PointerLeave clears the hover mark.
func (f *Frame) PointerLeave() { f.hovered = false }

// Click reports the frame's photo to the selection callback.
func (f *Frame) Click() {
	if f.disposed || f.onSelect == nil {
		return
	}
	f.onSelect(f.photo)
}

// Normal is the direction the frame faces.
func (f *Frame) Normal() [3]float32 {
	s, c := math32.Sincos(f.slot.Rotation)
	return [3]float32{s, 0, c}
}

// Right is the frame's horizontal axis.
func (f *Frame) Right() [3]float32 {
	s, c := math32.Sincos(f.slot.Rotation)
	return [3]float32{c, 0, -s}
}

// Hit intersects a ray with the frame (photo plus border) and returns the distance along dir.
// dir need not be normalized; the distance is in units of dir.
func (f *Frame) Hit(origin, dir [3]float32) (float32, bool) {
	if f.disposed {
		return 0, false
	}
	n := f.Normal()
	denom := dot(dir, n)
	if math32.Abs(denom) < 1e-6 {
		return 0, false
	}
	c := f.slot.Position
	t := dot(sub(c, origin), n) / denom
	if t <= 0 || math32.IsNaN(t) {
		return 0, false
	}
	p := [3]float32{origin[0] + dir[0]*t, origin[1] + dir[1]*t, origin[2] + dir[2]*t}
	d := sub(p, c)
	u := dot(d, f.Right())
	v := d[1]
	w, h := f.Size()
	if math32.Abs(u) > w/2+Border || math32.Abs(v) > h/2+Border {
		return 0, false
	}
	return t, true
}

func dot(a, b [3]float32) float32 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func sub(a, b [3]float32) [3]float32 { return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
