// Package preview renders and encodes thumbnail images of generated scenes.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"

	"survivor-meshgen/internal/postprocess"
	"survivor-meshgen/internal/raster"
	"survivor-meshgen/internal/scene"
)

// Formats.
const (
	WebP = "webp"
	TGA  = "tga"
	PNG  = "png"
)

var ErrUnsupportedFormat = errors.New("preview: unsupported format")

// Render draws scn at opts.Size*opts.Supersample and filters it down to opts.Size.
func Render(scn *scene.Scene, opts raster.Options) *image.NRGBA {
	img := raster.RenderScene(scn, opts)
	if opts.Supersample > 1 {
		img = postprocess.Downsample(img, img.Bounds().Dx()/opts.Supersample)
	}
	return img
}

// Encode writes img to w. WebP output is lossless.
func Encode(w io.Writer, img image.Image, format string) error {
	var err error
	switch strings.ToLower(format) {
	case WebP:
		err = nativewebp.Encode(w, img, nil)
	case TGA:
		err = tga.Encode(w, img)
	case PNG:
		err = png.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("preview: encode %s: %w", format, err)
	}
	return nil
}

// Save encodes img to path, picking the format from the extension and
// creating parent directories as needed.
func Save(path string, img image.Image) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch format {
	case WebP, TGA, PNG:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: create %s: %w", path, err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("preview: close %s: %w", path, err)
	}
	return nil
}
