package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the window the gallery runs in. A zero Width or Height opens fullscreen at
// the monitor's resolution.
type Window struct {
	Title  string
	Width  int
	Height int
	FPS    int
}

// Run opens the window and drives the main loop. Each frame it calls update (input, scene
// state), then clears the screen and calls draw. teardown runs after the loop exits while the
// GL context is still alive, so GPU resources can be released before the window closes.
func Run(w Window, update, draw, teardown func()) {
	width, height := int32(w.Width), int32(w.Height)
	flags := uint32(rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	if width <= 0 || height <= 0 {
		flags |= rl.FlagFullscreenMode
	} else {
		flags |= rl.FlagWindowResizable
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(width, height, w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull) // Escape closes the photo view; quit via the window button
	fps := int32(w.FPS)
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(fps)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
	if teardown != nil {
		teardown()
	}
}
