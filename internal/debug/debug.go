package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery-room/internal/texture"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce allocations.
	updateInterval = 30
)

// StatsFunc reports the texture manager's counters.
type StatsFunc func() texture.Stats

// Debug holds the runtime overlays (FPS, memory, texture loads). All overlays are off by default.
type Debug struct {
	ShowFPS       bool
	ShowMemAlloc  bool
	ShowLoadStats bool
	Stats         StatsFunc
	font          rl.Font // optional; zero texture ID = raylib default
	frameCount    uint32
	lines         []string
	memStats      runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetFont sets the font used for the overlay text.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Lines returns the text the overlay would show this frame, top to bottom.
func (d *Debug) Lines() []string {
	var out []string
	if d.ShowFPS {
		out = append(out, fmt.Sprintf("FPS: %d", rl.GetFPS()))
	}
	if d.ShowMemAlloc {
		runtime.ReadMemStats(&d.memStats)
		out = append(out, fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024)))
	}
	if d.ShowLoadStats && d.Stats != nil {
		out = append(out, FormatStats(d.Stats()))
	}
	return out
}

// FormatStats renders texture counters as one overlay line.
func FormatStats(s texture.Stats) string {
	return fmt.Sprintf("Photos: %d loaded, %d pending, %d failed", s.Loaded, s.Pending, s.Failed)
}

// Draw renders the enabled overlays at the top-right in green. Call last in the draw loop.
func (d *Debug) Draw() {
	d.frameCount++
	if d.frameCount%updateInterval == 0 || d.lines == nil {
		d.lines = d.Lines()
	}
	screenW := float32(rl.GetScreenWidth())
	y := float32(padding)
	for _, text := range d.lines {
		if d.font.Texture.ID != 0 {
			w := rl.MeasureTextEx(d.font, text, fontSize, 1).X
			rl.DrawTextEx(d.font, text, rl.NewVector2(screenW-w-padding, y), fontSize, 1, rl.Green)
		} else {
			w := float32(rl.MeasureText(text, fontSize))
			rl.DrawText(text, int32(screenW-w-padding), int32(y), fontSize, rl.Green)
		}
		y += lineHeight
	}
}
