package scene

import (
	"slices"

	"github.com/chewxy/math32"

	"gallery-room/internal/camera"
	"gallery-room/internal/frame"
	"gallery-room/internal/gallery"
	"gallery-room/internal/input"
	"gallery-room/internal/layout"
	"gallery-room/internal/logger"
	"gallery-room/internal/room"
)

// clickSlop is how far (pixels) the pointer may travel between down and up for the pair to count
// as a click rather than a look drag.
const clickSlop = 5

// Textures loads frame textures and delivers finished loads when pumped. *texture.Manager implements it.
type Textures interface {
	frame.Loader
	Pump() int
}

// Picker turns a screen position into a world-space ray (origin, direction) through it.
type Picker func(x, y float32) (origin, dir [3]float32)

// Options configures a Scene. Zero-valued Room and Camera use the standard gallery room.
type Options struct {
	Room     room.Spec
	Camera   camera.Config
	OnSelect func(gallery.Photo)
	Log      *logger.Logger
}

// Scene is a mounted gallery: the static room, one frame per photo and the first-person camera.
// Update runs once per rendered frame on the render thread; everything else must be called from
// that thread too.
type Scene struct {
	room     room.Room
	layout   layout.Config
	photos   []gallery.Photo
	frames   []*frame.Frame
	cam      *camera.Controller
	tex      Textures
	bus      *input.Bus
	pick     Picker
	onSelect func(gallery.Photo)
	log      *logger.Logger
	cancels  []input.Cancel

	pointerX, pointerY float32
	pointerIn          bool
	pressed            bool
	downX, downY       float32
	downFrame          *frame.Frame
	hovered            *frame.Frame
	closed             bool
}

// New mounts an empty gallery. pick may be nil when there is no screen (no hover or clicks).
// The camera starts Detached; call SetEnabled(true) to let the visitor move.
func New(bus *input.Bus, tex Textures, pick Picker, opts Options) *Scene {
	spec := opts.Room
	if spec == (room.Spec{}) {
		spec = room.DefaultSpec()
	}
	camCfg := opts.Camera
	if camCfg == (camera.Config{}) {
		camCfg = camera.DefaultConfig()
	}
	built := room.Build(spec)
	s := &Scene{
		room:     built,
		layout:   layout.ForRoom(built.Spec.Width, built.Spec.Depth),
		cam:      camera.New(bus, camCfg),
		tex:      tex,
		bus:      bus,
		pick:     pick,
		onSelect: opts.OnSelect,
		log:      opts.Log,
	}
	s.cancels = append(s.cancels,
		bus.Listen(input.PointerMove, s.pointerMove),
		bus.Listen(input.PointerDown, s.pointerDown),
		bus.Listen(input.PointerUp, s.pointerUp),
		bus.Listen(input.Blur, s.blur),
	)
	return s
}

// SetPhotos shows photos (in order) on the walls. When the list differs from the current one every
// existing frame is torn down, releasing its texture, before the new frames are created.
func (s *Scene) SetPhotos(photos []gallery.Photo) {
	if s.closed || (s.frames != nil && gallery.Equal(photos, s.photos)) {
		return
	}
	s.unmountFrames()

	s.photos = slices.Clone(photos)
	slots := s.layout.Slots(len(s.photos))
	s.frames = make([]*frame.Frame, 0, len(slots))
	for i, slot := range slots {
		s.frames = append(s.frames, frame.New(slot, s.photos[i], s.tex, s.selected))
	}
	s.log.Infof("scene: mounted %d photos", len(s.frames))
}

func (s *Scene) unmountFrames() {
	for _, f := range s.frames {
		f.Dispose()
	}
	s.frames = nil
	s.hovered = nil
	s.downFrame = nil
}

// SetEnabled turns navigation on or off. While off the camera holds still and ignores input.
func (s *Scene) SetEnabled(enabled bool) {
	if s.closed {
		return
	}
	s.cam.SetEnabled(enabled)
}

// Enabled reports whether navigation is on.
func (s *Scene) Enabled() bool {
	return s.cam.Mode() == camera.Attached
}

// Update runs one frame: hand finished texture loads to their frames, refresh the hovered frame,
// then advance the camera.
func (s *Scene) Update() {
	if s.closed {
		return
	}
	s.tex.Pump()
	s.updateHover()
	s.cam.Tick()
}

func (s *Scene) updateHover() {
	var over *frame.Frame
	if s.pointerIn {
		over = s.FrameAt(s.pointerX, s.pointerY)
	}
	if over == s.hovered {
		return
	}
	if s.hovered != nil {
		s.hovered.PointerLeave()
	}
	if over != nil {
		over.PointerEnter()
	}
	s.hovered = over
}

// FrameAt returns the nearest frame under the screen position, or nil. Only frames are hit-tested;
// the room behind them never receives pointer events.
func (s *Scene) FrameAt(x, y float32) *frame.Frame {
	if s.pick == nil || len(s.frames) == 0 {
		return nil
	}
	origin, dir := s.pick(x, y)
	var best *frame.Frame
	bestT := math32.Inf(1)
	for _, f := range s.frames {
		if t, ok := f.Hit(origin, dir); ok && t < bestT {
			best, bestT = f, t
		}
	}
	return best
}

func (s *Scene) pointerMove(ev input.Event) {
	if !finite(ev.X) || !finite(ev.Y) {
		return
	}
	s.pointerX, s.pointerY, s.pointerIn = ev.X, ev.Y, true
}

func (s *Scene) pointerDown(ev input.Event) {
	if !finite(ev.X) || !finite(ev.Y) {
		return
	}
	s.pointerX, s.pointerY, s.pointerIn = ev.X, ev.Y, true
	s.pressed = true
	s.downX, s.downY = ev.X, ev.Y
	s.downFrame = s.FrameAt(ev.X, ev.Y)
}

func (s *Scene) pointerUp(ev input.Event) {
	down := s.downFrame
	wasPressed := s.pressed
	s.pressed, s.downFrame = false, nil
	if !wasPressed || down == nil || !finite(ev.X) || !finite(ev.Y) {
		return
	}
	if math32.Abs(ev.X-s.downX) > clickSlop || math32.Abs(ev.Y-s.downY) > clickSlop {
		return
	}
	if s.FrameAt(ev.X, ev.Y) == down {
		down.Click()
	}
}

func (s *Scene) blur(input.Event) {
	s.pointerIn = false
	s.pressed, s.downFrame = false, nil
}

func (s *Scene) selected(p gallery.Photo) {
	if s.onSelect != nil {
		s.onSelect(p)
	}
}

// Close unmounts the gallery: the camera detaches, every listener is removed and every frame's
// texture is disposed. The scene is inert afterwards.
func (s *Scene) Close() {
	if s.closed {
		return
	}
	s.cam.Detach()
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
	s.unmountFrames()
	s.closed = true
}

// Room returns the static room geometry.
func (s *Scene) Room() room.Room { return s.room }

// Frames returns the mounted frames in photo order.
func (s *Scene) Frames() []*frame.Frame { return s.frames }

// Camera returns the camera controller.
func (s *Scene) Camera() *camera.Controller { return s.cam }

// Hovered returns the frame under the pointer, or nil.
func (s *Scene) Hovered() *frame.Frame { return s.hovered }

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
