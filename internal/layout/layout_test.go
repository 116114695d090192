package layout

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutEmpty(t *testing.T) {
	slots := Layout(0)
	require.NotNil(t, slots)
	assert.Empty(t, slots)
	assert.Empty(t, Layout(-3))
}

func TestLayoutCountsAndOrder(t *testing.T) {
	for n := 0; n <= 40; n++ {
		slots := Layout(n)
		require.Len(t, slots, n, "count %d", n)

		lastZ := map[int]float32{0: -100, 1: -100}
		for i, s := range slots {
			require.Contains(t, []int{0, 1}, s.Wall, "count %d slot %d", n, i)
			assert.Greater(t, s.Position[2], lastZ[s.Wall], "count %d slot %d not ascending", n, i)
			lastZ[s.Wall] = s.Position[2]
			assert.Equal(t, float32(2), s.Position[1])
		}

		var wall0 int
		for _, s := range slots {
			if s.Wall == 0 {
				wall0++
			}
		}
		assert.Equal(t, (n+1)/2, wall0, "count %d", n)
	}
}

func TestLayoutTwelve(t *testing.T) {
	slots := Layout(12)
	require.Len(t, slots, 12)
	for i := 0; i < 6; i++ {
		left := slots[i]
		assert.Equal(t, 0, left.Wall)
		assert.Equal(t, float32(-9.5), left.Position[0])
		assert.InDelta(t, -9+3*float64(i)+1.5, left.Position[2], 1e-5)
		assert.InDelta(t, math32.Pi/2, left.Rotation, 1e-6)

		right := slots[6+i]
		assert.Equal(t, 1, right.Wall)
		assert.Equal(t, float32(9.5), right.Position[0])
		assert.InDelta(t, -9+3*float64(i)+1.5, right.Position[2], 1e-5)
		assert.InDelta(t, -math32.Pi/2, right.Rotation, 1e-6)
	}
}

func TestLayoutOddCountFavoursFirstWall(t *testing.T) {
	slots := Layout(3)
	require.Len(t, slots, 3)
	assert.Equal(t, 0, slots[0].Wall)
	assert.Equal(t, 0, slots[1].Wall)
	assert.Equal(t, 1, slots[2].Wall)
	// single photo on wall 1 is centered
	assert.InDelta(t, 0, slots[2].Position[2], 1e-6)
}

func TestForRoom(t *testing.T) {
	c := ForRoom(20, 22)
	assert.Equal(t, Config{WallX: 9.5, SpanStart: -9, SpanLength: 18, Height: 2}, c)

	narrow := ForRoom(4, 3)
	assert.Equal(t, float32(0), narrow.SpanLength)
	assert.Len(t, narrow.Slots(4), 4)
}
