// Package raster renders scene previews: a z-buffered, flat-shaded
// orthographic rasterizer with a fixed studio light rig and ACES tone mapping.
package raster

import (
	"image"

	"survivor-meshgen/internal/material"
	"survivor-meshgen/internal/mathutil"
	"survivor-meshgen/internal/scene"
	"survivor-meshgen/internal/subsurf"
)

// Options controls framing and resolution.
type Options struct {
	Size        int     // output edge in pixels, before supersampling
	Supersample int     // render at Size*Supersample for later downsampling
	Yaw         float64 // degrees about the vertical
	Pitch       float64 // degrees about the screen horizontal
	// RenderLevels evaluates SUBSURF at render level instead of viewport level.
	RenderLevels bool
}

// DefaultOptions is a 256px three-quarter view, 2x supersampled.
func DefaultOptions() Options {
	return Options{Size: 256, Supersample: 2, Yaw: 24, Pitch: -12}
}

// neutral is used for meshes without a material.
var neutral = material.RGBA{0.35, 0.35, 0.40, 1}

type drawItem struct {
	pts       []mathutil.Vec3 // view space
	tris      [][3]int
	color     material.RGBA
	roughness float64
}

// RenderScene draws every mesh object of scn, modifiers evaluated, into a
// square NRGBA image of Size*Supersample pixels. A scene with nothing to
// draw yields a transparent image.
func RenderScene(scn *scene.Scene, opts Options) *image.NRGBA {
	if opts.Size <= 0 {
		opts.Size = DefaultOptions().Size
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	renderSize := opts.Size * opts.Supersample
	view := viewMatrix(opts.Yaw, opts.Pitch)

	var items []drawItem
	var all []mathutil.Vec3
	for _, obj := range scn.OfKind(scene.KindMesh) {
		m := subsurf.Evaluate(obj, opts.RenderLevels)
		if m == nil || len(m.Faces) == 0 {
			continue
		}
		world := obj.World()
		item := drawItem{
			pts:       make([]mathutil.Vec3, len(m.Verts)),
			tris:      m.Triangles(),
			color:     neutral,
			roughness: 0.5,
		}
		if obj.Material != nil {
			item.color = obj.Material.BaseColor
			item.roughness = float64(obj.Material.Roughness)
		}
		for i, v := range m.Verts {
			item.pts[i] = view.MulVec3(world.MulPoint(v))
		}
		all = append(all, item.pts...)
		items = append(items, item)
	}

	fb := NewFrameBuffer(renderSize, renderSize)
	if len(items) == 0 {
		return fb.Image()
	}

	cam := frame(all, renderSize, renderSize, renderSize/16)
	lc := DefaultLightConfig()

	for _, item := range items {
		alpha := clamp255(float64(item.color[3]) * 255)
		for _, tri := range item.tris {
			a, b, c := item.pts[tri[0]], item.pts[tri[1]], item.pts[tri[2]]
			n := b.Sub(a).Cross(c.Sub(a)).Normalize()
			if n == (mathutil.Vec3{}) {
				continue
			}
			shade := lc.Shade(n, item.roughness)
			rgba := [4]uint8{
				lc.Encode(float64(item.color[0]), shade),
				lc.Encode(float64(item.color[1]), shade),
				lc.Encode(float64(item.color[2]), shade),
				alpha,
			}
			fillTriangle(fb, cam.project(a), cam.project(b), cam.project(c), rgba)
		}
	}

	return fb.Image()
}
