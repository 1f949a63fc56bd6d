// Package postprocess finishes rendered previews.
package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample shrinks a supersampled render to targetSize on its longer edge,
// keeping aspect. The Catmull-Rom scaler filters premultiplied colour, so
// transparent background pixels do not bleed dark fringes into silhouettes.
// Images already within targetSize are returned unchanged.
func Downsample(img *image.NRGBA, targetSize int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if targetSize <= 0 || (w <= targetSize && h <= targetSize) {
		return img
	}

	dw, dh := targetSize, targetSize
	if w > h {
		dh = max(1, h*targetSize/w)
	} else if h > w {
		dw = max(1, w*targetSize/h)
	}

	premul := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(premul, premul.Bounds(), img, b, draw.Src, nil)

	out := image.NewNRGBA(premul.Bounds())
	draw.Draw(out, out.Bounds(), premul, image.Point{}, draw.Src)
	return out
}
