package raster

import (
	"math"

	"survivor-meshgen/internal/mathutil"
)

// LightConfig is a key/rim/hemisphere rig in view space (Y up, +Z toward
// the camera) with Blinn-Phong highlights and an exposure before tone mapping.
type LightConfig struct {
	LightDir mathutil.Vec3
	RimDir   mathutil.Vec3
	ViewDir  mathutil.Vec3
	HalfMain mathutil.Vec3
	Ambient  float64
	Hemi     float64
	Direct   float64
	Rim      float64
	SpecInt  float64
	SpecPow  float64
	Exposure float64
	InvGamma float64
}

// DefaultLightConfig is a warm key from upper right with a cool rim behind left.
func DefaultLightConfig() LightConfig {
	lightDir := mathutil.Vec3{180, 260, 140}.Normalize()
	rimDir := mathutil.Vec3{-160, 130, -210}.Normalize()
	viewDir := mathutil.Vec3{0, -110, -400}.Normalize()

	return LightConfig{
		LightDir: lightDir,
		RimDir:   rimDir,
		ViewDir:  viewDir,
		HalfMain: lightDir.Sub(viewDir).Normalize(),
		Ambient:  0.35,
		Hemi:     0.40,
		Direct:   1.20,
		Rim:      0.45,
		SpecInt:  0.30,
		SpecPow:  16.0,
		Exposure: 1.0,
		InvGamma: 1.0 / 2.2,
	}
}

// Shade returns the light scalar for a unit face normal in view space.
// Faces are lit from both sides. Rougher surfaces get a weaker highlight.
func (lc *LightConfig) Shade(normal mathutil.Vec3, roughness float64) float64 {
	ndlMain := math.Abs(normal.Dot(lc.LightDir))
	ndlRim := math.Abs(normal.Dot(lc.RimDir))

	hemi := (1.0-math.Abs(normal[1]))*0.5 + 0.5

	ndh := normal.Dot(lc.HalfMain)
	if ndh < 0 {
		ndh = 0
	}
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt * (1 - 0.8*clamp01(roughness))

	return lc.Ambient + hemi*lc.Hemi + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// Encode tone maps a lit linear channel and returns it as an 8-bit sRGB value.
func (lc *LightConfig) Encode(linear, shade float64) uint8 {
	t := ACESTonemap(linear * shade * lc.Exposure)
	return clamp255(math.Pow(t, lc.InvGamma) * 255)
}

// ACESTonemap applies the ACES filmic curve to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
