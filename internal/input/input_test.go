package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListenDispatchCancel(t *testing.T) {
	b := NewBus()
	var got []string
	cancelDown := b.Listen(KeyDown, func(ev Event) { got = append(got, "down:"+ev.Key) })
	b.Listen(KeyUp, func(ev Event) { got = append(got, "up:"+ev.Key) })
	assert.Equal(t, 2, b.Count())

	b.Dispatch(Event{Kind: KeyDown, Key: "w"})
	b.Dispatch(Event{Kind: KeyUp, Key: "w"})
	b.Dispatch(Event{Kind: PointerMove})
	assert.Equal(t, []string{"down:w", "up:w"}, got)

	cancelDown()
	cancelDown()
	assert.Equal(t, 1, b.Count())
	b.Dispatch(Event{Kind: KeyDown, Key: "s"})
	assert.Equal(t, []string{"down:w", "up:w"}, got)
}

func TestCancelDuringDispatch(t *testing.T) {
	b := NewBus()
	calls := 0
	var cancel Cancel
	cancel = b.Listen(PointerDown, func(Event) {
		calls++
		cancel()
	})
	b.Listen(PointerDown, func(Event) { calls++ })

	b.Dispatch(Event{Kind: PointerDown})
	b.Dispatch(Event{Kind: PointerDown})
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, b.Count())
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "w", NormalizeKey("W"))
	assert.Equal(t, "ArrowUp", NormalizeKey("ArrowUp"))
	assert.Equal(t, "", NormalizeKey(""))
}
