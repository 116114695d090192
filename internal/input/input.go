package input

import "strings"

// Kind is the type of an input event.
type Kind int

const (
	PointerDown Kind = iota
	PointerMove
	PointerUp
	KeyDown
	KeyUp
	// Blur is sent when the window loses focus; held keys and drags should be dropped.
	Blur
)

// Event is one pointer or keyboard event. X/Y are screen pixels for pointer events;
// Key is a key name for key events ("w", "ArrowUp", ...).
type Event struct {
	Kind Kind
	X, Y float32
	Key  string
}

// NormalizeKey lower-cases single-character key names so "W" (shift held) and "w" are the same key.
// Named keys such as "ArrowUp" are left as they are.
func NormalizeKey(key string) string {
	if len(key) == 1 {
		return strings.ToLower(key)
	}
	return key
}

// Listener handles one event.
type Listener func(Event)

// Cancel removes the listener it was returned for. Calling it again is a no-op.
type Cancel func()

type registration struct {
	kind Kind
	fn   Listener
}

// Bus routes events to the listeners registered for their kind, in registration order.
// Listeners may register or cancel listeners from inside a dispatch; changes apply to the next event.
type Bus struct {
	regs  map[uint64]registration
	order []uint64
	next  uint64
}

// NewBus returns a bus with no listeners.
func NewBus() *Bus {
	return &Bus{regs: make(map[uint64]registration)}
}

// Listen registers fn for events of kind and returns the function that removes it.
func (b *Bus) Listen(kind Kind, fn Listener) Cancel {
	b.next++
	id := b.next
	b.regs[id] = registration{kind: kind, fn: fn}
	b.order = append(b.order, id)
	return func() {
		if _, ok := b.regs[id]; !ok {
			return
		}
		delete(b.regs, id)
		for i, o := range b.order {
			if o == id {
				b.order = append(b.order[:i:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Dispatch delivers ev to every listener registered for its kind.
func (b *Bus) Dispatch(ev Event) {
	ids := append([]uint64(nil), b.order...)
	for _, id := range ids {
		reg, ok := b.regs[id]
		if !ok || reg.kind != ev.Kind {
			continue
		}
		reg.fn(ev)
	}
}

// Count returns the number of registered listeners.
func (b *Bus) Count() int {
	return len(b.regs)
}
