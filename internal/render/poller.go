package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery-room/internal/input"
)

// polledKeys are the keys turned into KeyDown/KeyUp events, with their browser-style names.
var polledKeys = map[int32]string{
	rl.KeyW:     "w",
	rl.KeyZ:     "z",
	rl.KeyS:     "s",
	rl.KeyA:     "a",
	rl.KeyQ:     "q",
	rl.KeyD:     "d",
	rl.KeyUp:    "ArrowUp",
	rl.KeyDown:  "ArrowDown",
	rl.KeyLeft:  "ArrowLeft",
	rl.KeyRight: "ArrowRight",
}

// Poller turns raylib's per-frame input state into bus events.
type Poller struct {
	started bool
	lastX   float32
	lastY   float32
	focused bool
}

// Poll dispatches the events that happened since the previous frame. Call once per frame before
// the scene's Update.
func (p *Poller) Poll(bus *input.Bus) {
	focused := rl.IsWindowFocused()
	if p.started && p.focused && !focused {
		bus.Dispatch(input.Event{Kind: input.Blur})
	}
	p.focused = focused

	pos := rl.GetMousePosition()
	if !p.started || pos.X != p.lastX || pos.Y != p.lastY {
		bus.Dispatch(input.Event{Kind: input.PointerMove, X: pos.X, Y: pos.Y})
		p.lastX, p.lastY = pos.X, pos.Y
	}
	p.started = true

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		bus.Dispatch(input.Event{Kind: input.PointerDown, X: pos.X, Y: pos.Y})
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		bus.Dispatch(input.Event{Kind: input.PointerUp, X: pos.X, Y: pos.Y})
	}

	for key, name := range polledKeys {
		if rl.IsKeyPressed(key) {
			bus.Dispatch(input.Event{Kind: input.KeyDown, Key: name})
		}
		if rl.IsKeyReleased(key) {
			bus.Dispatch(input.Event{Kind: input.KeyUp, Key: name})
		}
	}
}
