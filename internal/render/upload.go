package render

import (
	"errors"
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery-room/internal/frame"
	"gallery-room/internal/texture"
)

// Uploader moves decoded photos to the GPU. It implements texture.Uploader and must run on the
// render thread after the window exists (texture.Manager.Pump guarantees both).
type Uploader struct{}

type gpuTexture struct {
	tex rl.Texture2D
}

func (g *gpuTexture) Release() {
	rl.UnloadTexture(g.tex)
}

// Upload implements texture.Uploader.
func (Uploader) Upload(img image.Image) (texture.Handle, error) {
	im := rl.NewImageFromImage(img)
	if im == nil || im.Width <= 0 || im.Height <= 0 {
		return nil, errors.New("upload: empty image")
	}
	tex := rl.LoadTextureFromImage(im)
	rl.UnloadImage(im)
	if !rl.IsTextureValid(tex) {
		return nil, errors.New("upload: texture rejected by GPU")
	}
	rl.GenTextureMipmaps(&tex)
	rl.SetTextureFilter(tex, rl.FilterTrilinear)
	rl.SetTextureWrap(tex, rl.WrapClamp)
	return &gpuTexture{tex: tex}, nil
}

// TextureOf returns the GPU texture of a loaded frame, or a zero texture.
func TextureOf(f *frame.Frame) rl.Texture2D {
	res := f.Texture()
	if res == nil {
		return rl.Texture2D{}
	}
	if g, ok := res.Handle().(*gpuTexture); ok {
		return g.tex
	}
	return rl.Texture2D{}
}
