package render

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery-room/internal/gallery"
)

const (
	titleSize = 40
	textSize  = 20
	// the selected photo fills at most this share of the screen in either direction.
	viewFill = 0.8
)

var (
	backdrop = rl.NewColor(0, 0, 0, 200)
	textTint = rl.NewColor(235, 235, 235, 255)
)

// Overlay draws the 2D screens on top of the room: the intro and the selected-photo view.
type Overlay struct {
	Font rl.Font // zero texture ID = raylib default font
}

// IntroLines is the help text shown until the visitor enters the room.
func IntroLines(photos int) []string {
	return []string{
		fmt.Sprintf("%d photos on the walls", photos),
		"Drag with the mouse to look around",
		"W A S D, Z Q S D or the arrow keys to walk",
		"Click a photo to view it, Tab to pause",
		"Press Enter to start",
	}
}

// DrawIntro dims the screen and shows the title with the controls.
func (o *Overlay) DrawIntro(title string, photos int) {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, int32(w), int32(h), backdrop)
	lines := IntroLines(photos)
	y := h/2 - float32(len(lines)*(textSize+8)+titleSize)/2
	o.centered(title, y, titleSize)
	y += titleSize + 16
	for _, l := range lines {
		o.centered(l, y, textSize)
		y += textSize + 8
	}
}

// DrawPaused is the hint shown while movement is frozen.
func (o *Overlay) DrawPaused() {
	o.centered("Paused (Tab to resume)", 16, textSize)
}

// DrawSelection shows one photo fitted to the screen with its title. An invalid texture (still
// loading or failed) shows the title alone.
func (o *Overlay) DrawSelection(p gallery.Photo, tex rl.Texture2D) {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, int32(w), int32(h), backdrop)

	y := h / 2
	if rl.IsTextureValid(tex) && tex.Width > 0 && tex.Height > 0 {
		dw, dh := fit(float32(tex.Width), float32(tex.Height), w*viewFill, h*viewFill)
		dst := rl.NewRectangle((w-dw)/2, (h-dh)/2, dw, dh)
		src := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
		rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
		y = dst.Y + dst.Height + 12
	}
	title := p.Title
	if title == "" {
		title = p.ID
	}
	o.centered(title, y, textSize)
	o.centered("Esc or right-click to close", h-textSize-16, textSize)
}

// fit scales w×h to the largest size inside maxW×maxH with the same aspect ratio.
func fit(w, h, maxW, maxH float32) (float32, float32) {
	s := maxW / w
	if h*s > maxH {
		s = maxH / h
	}
	return w * s, h * s
}

func (o *Overlay) centered(text string, y float32, size float32) {
	sw := float32(rl.GetScreenWidth())
	if o.Font.Texture.ID != 0 {
		tw := rl.MeasureTextEx(o.Font, text, size, 1).X
		rl.DrawTextEx(o.Font, text, rl.NewVector2((sw-tw)/2, y), size, 1, textTint)
		return
	}
	tw := float32(rl.MeasureText(text, int32(size)))
	rl.DrawText(text, int32((sw-tw)/2), int32(y), int32(size), textTint)
}
