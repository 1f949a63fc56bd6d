package subsurf

import (
	"survivor-meshgen/internal/mesh"
	"survivor-meshgen/internal/scene"
)

// Evaluate returns obj's mesh with its SUBSURF modifier applied: Levels for
// viewport use, RenderLevels when render is set. Objects without a mesh
// return nil; objects without the modifier return their mesh as is.
func Evaluate(obj *scene.Object, render bool) *mesh.Mesh {
	if obj.Mesh == nil {
		return nil
	}
	mod, ok := obj.Subsurf()
	if !ok {
		return obj.Mesh
	}
	levels := mod.Levels
	if render {
		levels = mod.RenderLevels
	}
	if levels <= 0 {
		return obj.Mesh
	}
	out := Subdivide(obj.Mesh, levels)
	out.Name = obj.Mesh.Name
	return out
}
