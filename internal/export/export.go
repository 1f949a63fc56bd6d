// Package export writes scenes to interchange formats: Wavefront OBJ with a
// companion MTL, and glTF 2.0 as JSON (.gltf, embedded buffer) or binary (.glb).
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"survivor-meshgen/internal/mathutil"
	"survivor-meshgen/internal/mesh"
	"survivor-meshgen/internal/scene"
	"survivor-meshgen/internal/subsurf"
)

var (
	ErrUnsupportedFormat = errors.New("export: unsupported format")
	ErrNoMeshes          = errors.New("export: scene has no mesh objects")
)

// Up axes.
const (
	UpY = "y"
	UpZ = "z"
)

// Options controls how a scene is written.
type Options struct {
	// UpAxis is UpY (default; Z-up data is rewritten as (x, z, -y)) or UpZ.
	UpAxis string
	// ApplyModifiers evaluates SUBSURF modifiers into the written geometry.
	ApplyModifiers bool
	// RenderLevels picks the modifier's render level instead of its viewport level.
	RenderLevels bool
}

// Extensions lists the formats Write understands.
var Extensions = []string{"obj", "gltf", "glb"}

// Write exports every object in scn to path, choosing the format by extension.
func Write(path string, scn *scene.Scene, opts Options) error {
	if len(scn.OfKind(scene.KindMesh)) == 0 {
		return ErrNoMeshes
	}
	axis, err := upAxis(opts.UpAxis)
	if err != nil {
		return err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "obj":
		return writeOBJ(path, scn, opts, axis)
	case "gltf":
		return writeGLTF(path, scn, opts, axis, false)
	case "glb":
		return writeGLTF(path, scn, opts, axis, true)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// axisConv is the basis change applied to written data.
type axisConv struct {
	m     mathutil.Mat3
	yUp   bool
	label string
}

func upAxis(s string) (axisConv, error) {
	switch strings.ToLower(s) {
	case "", UpY:
		return axisConv{m: mathutil.ZUpToYUp, yUp: true, label: UpY}, nil
	case UpZ:
		return axisConv{m: mathutil.Mat3Identity(), label: UpZ}, nil
	}
	return axisConv{}, fmt.Errorf("export: unknown up axis %q", s)
}

func (c axisConv) point(v mathutil.Vec3) mathutil.Vec3 { return c.m.MulVec3(v) }

// geometry returns the mesh to write for obj.
func geometry(obj *scene.Object, opts Options) *mesh.Mesh {
	if !opts.ApplyModifiers {
		return obj.Mesh
	}
	return subsurf.Evaluate(obj, opts.RenderLevels)
}
