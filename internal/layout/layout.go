package layout

import "github.com/chewxy/math32"

// Slot is where one photo frame hangs: which side wall, its center, and the yaw (rotation about Y)
// that turns the frame to face into the room.
type Slot struct {
	Wall     int
	Position [3]float32
	Rotation float32
}

// Config describes the two side walls photos are hung on. WallX is the distance of each wall's
// hanging line from the room center on X; photos are spread along Z over [SpanStart, SpanStart+SpanLength].
type Config struct {
	WallX      float32
	SpanStart  float32
	SpanLength float32
	Height     float32
}

const (
	// wallInset keeps frames just in front of the wall plane so they don't z-fight with it.
	wallInset = 0.5
	// endMargin is left free at each end of a side wall (corners and doorways).
	endMargin = 2
	// hangHeight is the Y of every frame center.
	hangHeight = 2
)

// Default returns the config for the standard 20×22 gallery room: walls at x = ±9.5,
// photos spread over z ∈ [-9, 9] at height 2.
func Default() Config {
	return ForRoom(20, 22)
}

// ForRoom derives a config from room width (X) and depth (Z).
func ForRoom(width, depth float32) Config {
	span := depth - 2*endMargin
	if span < 0 {
		span = 0
	}
	return Config{
		WallX:      width/2 - wallInset,
		SpanStart:  -span / 2,
		SpanLength: span,
		Height:     hangHeight,
	}
}

// Layout returns the slots for photoCount photos in the default room.
func Layout(photoCount int) []Slot {
	return Default().Slots(photoCount)
}

// Slots maps photoCount photos to wall slots, in photo order. The first ceil(n/2) go on wall 0
// (x = -WallX, facing +X), the rest on wall 1 (x = +WallX, facing -X). Each wall's photos are spaced
// evenly, each centered in its share of the span. Negative counts are treated as zero.
func (c Config) Slots(photoCount int) []Slot {
	if photoCount <= 0 {
		return []Slot{}
	}
	first := (photoCount + 1) / 2
	second := photoCount - first

	slots := make([]Slot, 0, photoCount)
	slots = c.appendWall(slots, 0, first)
	slots = c.appendWall(slots, 1, second)
	return slots
}

func (c Config) appendWall(slots []Slot, wall, count int) []Slot {
	if count == 0 {
		return slots
	}
	x, rot := -c.WallX, math32.Pi/2
	if wall == 1 {
		x, rot = c.WallX, -math32.Pi/2
	}
	spacing := c.SpanLength / float32(count)
	for i := 0; i < count; i++ {
		z := c.SpanStart + spacing*float32(i) + spacing/2
		slots = append(slots, Slot{
			Wall:     wall,
			Position: [3]float32{x, c.Height, z},
			Rotation: rot,
		})
	}
	return slots
}
