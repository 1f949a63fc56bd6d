package raster

import (
	"math"

	"survivor-meshgen/internal/mathutil"
)

// camera is an orthographic framing: rotate into view space, centre the
// bounding box and fit its larger screen extent inside a margin.
type camera struct {
	center mathutil.Vec3
	scale  float64
	halfW  float64
	halfH  float64
}

// viewMatrix turns Z-up scene space into Y-up view space, then applies
// yaw about the vertical and pitch about the screen horizontal (degrees).
func viewMatrix(yaw, pitch float64) mathutil.Mat3 {
	return mathutil.Mat3Mul(mathutil.Orbit(yaw, pitch), mathutil.ZUpToYUp)
}

// frame fits view-space points into a w×h target with margin pixels of padding.
func frame(pts []mathutil.Vec3, w, h, margin int) camera {
	lo := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range pts {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}

	span := math.Max(hi[0]-lo[0], hi[1]-lo[1])
	if span < 0.001 {
		span = 0.001
	}
	fit := float64(max(min(w, h)-2*margin, 1))
	return camera{
		center: lo.Add(hi).Scale(0.5),
		scale:  fit / span,
		halfW:  float64(w) / 2,
		halfH:  float64(h) / 2,
	}
}

// project maps a view-space point to pixels. Screen Y grows downward.
func (c camera) project(p mathutil.Vec3) screenVert {
	return screenVert{
		x: (p[0]-c.center[0])*c.scale + c.halfW,
		y: -(p[1]-c.center[1])*c.scale + c.halfH,
		z: p[2],
	}
}
