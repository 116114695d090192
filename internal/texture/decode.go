package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/anthonynsimon/bild/transform"
	"github.com/ftrvxmtrx/tga"
	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

var (
	// ErrNotImage is returned for content that is recognisably something other than a supported image.
	ErrNotImage = errors.New("texture: not an image")
	// ErrEmptyImage is returned for images with a zero width or height.
	ErrEmptyImage = errors.New("texture: empty image")
)

// decoders by sniffed MIME type. TGA has no magic number, so it is tried for unrecognised content.
var decoders = map[string]func(io.Reader) (image.Image, error){
	"image/jpeg": jpeg.Decode,
	"image/png":  png.Decode,
	"image/gif":  gif.Decode,
	"image/webp": webp.Decode,
	"image/bmp":  bmp.Decode,
}

// Decode decodes raw image bytes. The returned aspect ratio is width/height of the natural image;
// the image itself is downscaled (keeping proportions) so neither side exceeds maxDim when maxDim > 0.
func Decode(data []byte, maxDim int) (image.Image, float32, error) {
	kind, _ := filetype.Match(data)
	decode, ok := decoders[kind.MIME.Value]
	if !ok {
		if kind != filetype.Unknown {
			return nil, 0, fmt.Errorf("%w: %s", ErrNotImage, kind.MIME.Value)
		}
		decode = tga.Decode
	}
	img, err := decode(bytes.NewReader(data))
	if err != nil {
		if kind == filetype.Unknown {
			return nil, 0, ErrNotImage
		}
		return nil, 0, fmt.Errorf("texture: decode %s: %w", kind.MIME.Value, err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, 0, ErrEmptyImage
	}
	aspect := float32(w) / float32(h)

	if maxDim > 0 && (w > maxDim || h > maxDim) {
		nw, nh := maxDim, maxDim
		if w >= h {
			nh = max(1, h*maxDim/w)
		} else {
			nw = max(1, w*maxDim/h)
		}
		img = transform.Resize(img, nw, nh, transform.Linear)
	}
	return img, aspect, nil
}
