package raster

import "math"

// screenVert is a projected vertex: pixel X/Y and view depth.
type screenVert struct{ x, y, z float64 }

// fillTriangle z-buffers one flat-coloured triangle into fb. rgba is the
// already lit and encoded fragment colour.
//
// Hot path: no allocation in the pixel loop.
func fillTriangle(fb *FrameBuffer, a, b, c screenVert, rgba [4]uint8) {
	x0, y0, z0 := a.x, a.y, a.z
	x1, y1, z1 := b.x, b.y, b.z
	x2, y2, z2 := c.x, c.y, c.z

	minX := max(int(math.Min(math.Min(x0, x1), x2)), 0)
	maxX := min(int(math.Max(math.Max(x0, x1), x2))+1, fb.Width-1)
	minY := max(int(math.Min(math.Min(y0, y1), y2)), 0)
	maxY := min(int(math.Max(math.Max(y0, y1), y2))+1, fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		// Sample at pixel centres.
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z

			px := zIdx * 4
			fb.Color[px] = rgba[0]
			fb.Color[px+1] = rgba[1]
			fb.Color[px+2] = rgba[2]
			fb.Color[px+3] = rgba[3]
		}
	}
}
