package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitKeepsAspect(t *testing.T) {
	w, h := fit(3000, 2000, 800, 800)
	assert.InDelta(t, 800, w, 1e-3)
	assert.InDelta(t, 533.333, h, 1e-2)

	w, h = fit(1000, 2000, 800, 600)
	assert.InDelta(t, 300, w, 1e-3)
	assert.InDelta(t, 600, h, 1e-3)
}

func TestIntroLinesMentionCount(t *testing.T) {
	lines := IntroLines(12)
	assert.Equal(t, "12 photos on the walls", lines[0])
	assert.Equal(t, "Press Enter to start", lines[len(lines)-1])
}

func TestPlaneTransformPlacesCenter(t *testing.T) {
	m := planeTransform([3]float32{1, 2, 3}, [2]float32{2, 4}, 0, 0)
	assert.Equal(t, float32(1), m.M12)
	assert.Equal(t, float32(2), m.M13)
	assert.Equal(t, float32(3), m.M14)
	assert.Equal(t, float32(2), m.M0)
	assert.Equal(t, float32(4), m.M10)
}
