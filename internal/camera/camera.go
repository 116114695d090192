package camera

import (
	"sort"

	"github.com/chewxy/math32"

	"gallery-room/internal/input"
)

// Mode is whether the controller is listening for input.
type Mode int

const (
	// Detached: no listeners registered, Tick does nothing.
	Detached Mode = iota
	// Attached: listeners registered, Tick moves the camera.
	Attached
)

// maxPointerDelta is the largest pointer jump (pixels) treated as a real drag. Bigger jumps
// (pointer warped, window refocused) re-anchor the drag without turning.
const maxPointerDelta = 1000

// Direction is a logical movement direction.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// keyDirections maps key names (as normalized by input.NormalizeKey) to directions.
// z and q cover AZERTY layouts.
var keyDirections = map[string]Direction{
	"w": Forward, "z": Forward, "ArrowUp": Forward,
	"s": Backward, "ArrowDown": Backward,
	"a": Left, "q": Left, "ArrowLeft": Left,
	"d": Right, "ArrowRight": Right,
}

// Config holds the tuning and walkable bounds of a first-person camera.
type Config struct {
	EyeHeight   float32
	Sensitivity float32 // radians per pixel of drag
	Speed       float32 // world units per tick per held direction
	PitchLimit  float32 // |pitch| never exceeds this
	MinX, MaxX  float32
	MinZ, MaxZ  float32
	StartX      float32
	StartZ      float32
	StartYaw    float32
}

// DefaultConfig returns the gallery room's camera: eyes at 1.6, walkable x ∈ [-8,8], z ∈ [-10,10],
// starting near the front wall looking down the room (-Z).
func DefaultConfig() Config {
	return Config{
		EyeHeight:   1.6,
		Sensitivity: 0.005,
		Speed:       0.1,
		PitchLimit:  math32.Pi / 3,
		MinX:        -8,
		MaxX:        8,
		MinZ:        -10,
		MaxZ:        10,
		StartX:      0,
		StartZ:      8,
	}
}

// State is a snapshot of the controller.
type State struct {
	Position [3]float32
	Yaw      float32
	Pitch    float32
	Dragging bool
	Keys     []string // held movement keys, sorted
}

// Controller is a first-person look/move controller. Input arrives through listeners it
// registers on a bus while Attached; Tick applies held movement once per rendered frame.
// The only way into or out of Attached is Attach/Detach (or SetEnabled).
type Controller struct {
	cfg     Config
	bus     *input.Bus
	mode    Mode
	cancels []input.Cancel

	pos      [3]float32
	yaw      float32
	pitch    float32
	dragging bool
	lastX    float32
	lastY    float32
	keys     map[string]bool
}

// New returns a Detached controller at the configured start position.
func New(bus *input.Bus, cfg Config) *Controller {
	def := DefaultConfig()
	if cfg.Sensitivity <= 0 {
		cfg.Sensitivity = def.Sensitivity
	}
	if cfg.Speed <= 0 {
		cfg.Speed = def.Speed
	}
	if cfg.PitchLimit <= 0 {
		cfg.PitchLimit = def.PitchLimit
	}
	if cfg.MinX >= cfg.MaxX {
		cfg.MinX, cfg.MaxX = def.MinX, def.MaxX
	}
	if cfg.MinZ >= cfg.MaxZ {
		cfg.MinZ, cfg.MaxZ = def.MinZ, def.MaxZ
	}
	c := &Controller{
		cfg:  cfg,
		bus:  bus,
		yaw:  cfg.StartYaw,
		keys: make(map[string]bool),
	}
	c.pos = [3]float32{cfg.StartX, cfg.EyeHeight, cfg.StartZ}
	c.clampPosition()
	return c
}

// Mode returns Attached or Detached.
func (c *Controller) Mode() Mode { return c.mode }

// SetEnabled attaches when enabled and detaches otherwise. Repeated calls with the same value are no-ops.
func (c *Controller) SetEnabled(enabled bool) {
	if enabled {
		c.Attach()
	} else {
		c.Detach()
	}
}

// Attach registers the controller's pointer and key listeners.
func (c *Controller) Attach() {
	if c.mode == Attached {
		return
	}
	c.cancels = append(c.cancels,
		c.bus.Listen(input.PointerDown, c.pointerDown),
		c.bus.Listen(input.PointerMove, c.pointerMove),
		c.bus.Listen(input.PointerUp, c.pointerUp),
		c.bus.Listen(input.KeyDown, c.keyDown),
		c.bus.Listen(input.KeyUp, c.keyUp),
		c.bus.Listen(input.Blur, c.blur),
	)
	c.mode = Attached
}

// Detach removes every listener Attach registered and drops held keys and any drag in progress.
// Position and orientation are kept.
func (c *Controller) Detach() {
	if c.mode == Detached {
		return
	}
	for _, cancel := range c.cancels {
		cancel()
	}
	c.cancels = nil
	c.blur(input.Event{})
	c.mode = Detached
}

// Tick advances the camera by one frame: each held direction moves it Speed units along the
// horizontal forward/right axes derived from yaw, then the position is clamped to the walkable
// area at eye height. With no held keys it changes nothing.
func (c *Controller) Tick() {
	if c.mode != Attached || len(c.keys) == 0 {
		return
	}
	var held [4]bool
	for k := range c.keys {
		held[keyDirections[k]] = true
	}
	var fwd, strafe float32
	if held[Forward] {
		fwd++
	}
	if held[Backward] {
		fwd--
	}
	if held[Right] {
		strafe++
	}
	if held[Left] {
		strafe--
	}

	f := c.Forward()
	r := c.right()
	c.pos[0] += (f[0]*fwd + r[0]*strafe) * c.cfg.Speed
	c.pos[2] += (f[2]*fwd + r[2]*strafe) * c.cfg.Speed
	c.clampPosition()
}

// Forward returns the unit horizontal direction the camera faces. Yaw 0 faces -Z.
func (c *Controller) Forward() [3]float32 {
	s, co := math32.Sincos(c.yaw)
	return [3]float32{-s, 0, -co}
}

func (c *Controller) right() [3]float32 {
	s, co := math32.Sincos(c.yaw)
	return [3]float32{co, 0, -s}
}

// LookDirection returns the unit view direction including pitch.
func (c *Controller) LookDirection() [3]float32 {
	s, co := math32.Sincos(c.yaw)
	ps, pc := math32.Sincos(c.pitch)
	return [3]float32{-s * pc, ps, -co * pc}
}

// Position returns the camera position.
func (c *Controller) Position() [3]float32 { return c.pos }

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	keys := make([]string, 0, len(c.keys))
	for k := range c.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return State{
		Position: c.pos,
		Yaw:      c.yaw,
		Pitch:    c.pitch,
		Dragging: c.dragging,
		Keys:     keys,
	}
}

func (c *Controller) clampPosition() {
	c.pos[0] = clamp(c.pos[0], c.cfg.MinX, c.cfg.MaxX)
	c.pos[1] = c.cfg.EyeHeight
	c.pos[2] = clamp(c.pos[2], c.cfg.MinZ, c.cfg.MaxZ)
}

func (c *Controller) pointerDown(ev input.Event) {
	if !finite(ev.X) || !finite(ev.Y) {
		return
	}
	c.dragging = true
	c.lastX, c.lastY = ev.X, ev.Y
}

func (c *Controller) pointerMove(ev input.Event) {
	if !c.dragging || !finite(ev.X) || !finite(ev.Y) {
		return
	}
	dx, dy := ev.X-c.lastX, ev.Y-c.lastY
	c.lastX, c.lastY = ev.X, ev.Y
	if math32.Abs(dx) > maxPointerDelta || math32.Abs(dy) > maxPointerDelta {
		return
	}
	c.yaw -= dx * c.cfg.Sensitivity
	c.pitch = clamp(c.pitch-dy*c.cfg.Sensitivity, -c.cfg.PitchLimit, c.cfg.PitchLimit)
}

func (c *Controller) pointerUp(input.Event) {
	c.dragging = false
}

func (c *Controller) keyDown(ev input.Event) {
	key := input.NormalizeKey(ev.Key)
	if _, ok := keyDirections[key]; ok {
		c.keys[key] = true
	}
}

func (c *Controller) keyUp(ev input.Event) {
	delete(c.keys, input.NormalizeKey(ev.Key))
}

func (c *Controller) blur(input.Event) {
	c.dragging = false
	clear(c.keys)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
