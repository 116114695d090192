package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery-room/internal/config"
	"gallery-room/internal/debug"
	"gallery-room/internal/fonts"
	"gallery-room/internal/gallery"
	"gallery-room/internal/graphics"
	"gallery-room/internal/input"
	"gallery-room/internal/logger"
	"gallery-room/internal/render"
	"gallery-room/internal/room"
	"gallery-room/internal/scene"
	"gallery-room/internal/texture"
)

const title = "Gallery Room"

func main() {
	configPath := flag.String("config", config.ConfigPath, "preferences file")
	source := flag.String("source", "", "photo source: directory, YAML manifest or http(s) URL")
	limit := flag.Int("limit", -1, "maximum photos on the walls (0 = all)")
	noWatch := flag.Bool("no-watch", false, "do not reload the source when it changes")
	logPath := flag.String("log", logger.LogFilePath, "log file")
	flag.Parse()

	log := logger.New(*logPath)
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Warnf("config: %v", err)
	}
	prefs, err := config.Load(*configPath)
	if err != nil {
		log.Warnf("%v", err)
	}
	prefs = prefs.ApplyEnv()
	if *source != "" {
		prefs.Source = *source
	}
	if *limit >= 0 {
		prefs.PhotoLimit = *limit
	}
	if *noWatch {
		prefs.Watch = false
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	photos, err := gallery.Load(ctx, prefs.Source)
	if err != nil {
		log.Warnf("%v", err)
	}
	photos = gallery.Limit(photos, prefs.PhotoLimit)
	log.Infof("gallery: %d photos from %s", len(photos), prefs.Source)

	var updates <-chan []gallery.Photo
	if prefs.Watch {
		if updates, err = gallery.Watch(ctx, prefs.Source, log); err != nil {
			log.Warnf("%v", err)
		}
	}

	v := &viewer{
		log:   log,
		prefs: prefs,
		gate:  scene.NewGate(),
		bus:   input.NewBus(),
		rend:  render.New(),
		dbg:   debug.New(),
	}
	v.tex = texture.NewManager(texture.Options{
		Uploader:      render.Uploader{},
		Log:           log,
		MaxDimension:  prefs.MaxTextureSize,
		MaxConcurrent: prefs.MaxConcurrentLoads,
	})
	v.scn = scene.New(v.bus, v.tex, v.rend.Pick, scene.Options{
		Room:     room.DefaultSpec(),
		Camera:   prefs.Camera(),
		OnSelect: v.gate.Select,
		Log:      log,
	})
	v.scn.SetPhotos(photos)
	v.updates = updates
	v.dbg.ShowFPS = prefs.ShowFPS
	v.dbg.ShowLoadStats = prefs.ShowLoadStats
	v.dbg.Stats = v.tex.Stats

	graphics.Run(graphics.Window{Title: title, Width: prefs.WindowWidth, Height: prefs.WindowHeight},
		v.update, v.draw, v.close)
}

type viewer struct {
	log     *logger.Logger
	prefs   config.Prefs
	gate    *scene.Gate
	bus     *input.Bus
	tex     *texture.Manager
	scn     *scene.Scene
	rend    *render.Renderer
	dbg     *debug.Debug
	poll    render.Poller
	overlay render.Overlay
	updates <-chan []gallery.Photo
	font    rl.Font

	fontTried bool
}

func (v *viewer) update() {
	if !v.fontTried {
		v.loadFont()
	}
	select {
	case photos, ok := <-v.updates:
		if ok {
			v.scn.SetPhotos(gallery.Limit(photos, v.prefs.PhotoLimit))
		} else {
			v.updates = nil
		}
	default:
	}

	switch {
	case v.gate.Intro():
		if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
			v.gate.Start()
		}
	case rl.IsKeyPressed(rl.KeyTab):
		v.gate.ToggleFreeze()
	}
	if _, ok := v.gate.Selected(); ok &&
		(rl.IsKeyPressed(rl.KeyEscape) || rl.IsMouseButtonPressed(rl.MouseButtonRight)) {
		v.gate.CloseSelection()
	}

	v.scn.SetEnabled(v.gate.Enabled())
	// Clicks go to the frames only while nothing covers the room.
	if !v.gate.Intro() {
		if _, ok := v.gate.Selected(); !ok {
			v.poll.Poll(v.bus)
		}
	}
	v.scn.Update()
}

func (v *viewer) draw() {
	v.rend.Draw(v.scn)
	switch {
	case v.gate.Intro():
		v.overlay.DrawIntro(title, len(v.scn.Frames()))
	default:
		if p, ok := v.gate.Selected(); ok {
			v.overlay.DrawSelection(p, v.selectedTexture(p))
		} else if v.gate.Frozen() {
			v.overlay.DrawPaused()
		}
	}
	v.dbg.Draw()
}

func (v *viewer) selectedTexture(p gallery.Photo) rl.Texture2D {
	for _, f := range v.scn.Frames() {
		if f.Photo().ID == p.ID {
			return render.TextureOf(f)
		}
	}
	return rl.Texture2D{}
}

// loadFont runs once the window exists; without a bundled font raylib's default is used.
func (v *viewer) loadFont() {
	v.fontTried = true
	path := fonts.Find(fonts.BaseDirs()...)
	if path == "" {
		return
	}
	f := rl.LoadFont(path)
	if f.Texture.ID == 0 {
		v.log.Warnf("fonts: cannot load %s", path)
		return
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	v.font = f
	v.overlay.Font = f
	v.dbg.SetFont(f)
	v.log.Infof("fonts: using %s", path)
}

// close releases GPU resources while the GL context is still alive.
func (v *viewer) close() {
	v.scn.Close()
	v.tex.Close()
	v.rend.Close()
	if v.font.Texture.ID != 0 {
		rl.UnloadFont(v.font)
	}
	v.log.Infof("gallery: closed")
}
