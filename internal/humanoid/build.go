package humanoid

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"survivor-meshgen/internal/logging"
	"survivor-meshgen/internal/mathutil"
	"survivor-meshgen/internal/mesh"
	"survivor-meshgen/internal/scene"
)

const (
	torsoSegments = 8
	neckSegments  = 6
	headSegments  = 8
	headLatitudes = 6 // latitude steps pole to pole
)

// Neck radii are absolute, independent of height.
const (
	neckBottomWidth = 0.06
	neckBottomDepth = 0.05
	neckTopWidth    = 0.055
	neckTopDepth    = 0.045
)

type generator struct {
	params Params
	ladder Ladder
	frame  Frame
	mesh   *mesh.Mesh
	log    *zap.Logger

	skippedRings int
	skippedFaces int
}

// BuildMesh generates the raw base mesh for p: torso, neck, head, arms and
// legs, with normals made consistent. Nothing is placed in a scene.
func BuildMesh(p Params, log *zap.Logger) (*mesh.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	log = logging.OrNop(log)
	ladder, frame, err := Resolve(p)
	if err != nil {
		return nil, err
	}

	g := &generator{
		params: p,
		ladder: ladder,
		frame:  frame,
		mesh:   mesh.New(p.Name),
		log:    log.With(zap.String("mesh", p.Name)),
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"torso", g.buildTorso},
		{"neck", g.buildNeck},
		{"head", g.buildHead},
		{"arm.L", func() error { return g.buildArm(Left) }},
		{"arm.R", func() error { return g.buildArm(Right) }},
		{"leg.L", func() error { return g.buildLeg(Left) }},
		{"leg.R", func() error { return g.buildLeg(Right) }},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			return g.mesh, fmt.Errorf("humanoid: build %s: %w", s.name, err)
		}
	}

	flipped := mesh.MakeNormalsConsistent(g.mesh)
	stats := g.mesh.Stats()
	g.log.Debug("base mesh generated",
		zap.Int("vertices", stats.Vertices),
		zap.Int("faces", stats.Faces),
		zap.Int("flipped", flipped),
		zap.Int("skipped_rings", g.skippedRings),
		zap.Int("skipped_faces", g.skippedFaces),
	)
	return g.mesh, nil
}

// Build generates the humanoid into scn as a single mesh object.
//
// scn must hold no mesh objects: callers clear it first (scn.ClearKind(scene.KindMesh)).
// Parameters are validated before the scene is touched. On success the object
// carries a SUBSURF modifier when p.Subdivisions > 0 (render levels one higher)
// and its origin sits at the floor point under the body.
func Build(scn *scene.Scene, p Params, log *zap.Logger) (*scene.Object, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if n := len(scn.OfKind(scene.KindMesh)); n > 0 {
		return nil, fmt.Errorf("%w: %d present", ErrSceneNotCleared, n)
	}
	log = logging.OrNop(log)

	m, err := BuildMesh(p, log)
	if err != nil {
		if m == nil {
			return nil, err
		}
		// partial geometry stays in the scene for inspection
		obj := scn.NewMesh(p.Name, m)
		return obj, err
	}

	obj := scn.NewMesh(p.Name, m)
	if p.Subdivisions > 0 {
		obj.Modifiers = append(obj.Modifiers, scene.Modifier{
			Name:         "Subsurf",
			Type:         scene.ModifierSubsurf,
			Levels:       p.Subdivisions,
			RenderLevels: p.Subdivisions + 1,
		})
	}
	scene.SetOrigin(obj, mathutil.Vec3{0, 0, 0})

	log.Info("created humanoid mesh",
		zap.String("name", obj.Name),
		zap.Float64("height_m", p.Height),
		zap.Stringer("gender", p.Gender),
		zap.Int("subdivisions", p.Subdivisions),
	)
	return obj, nil
}

// ring emits an elliptical ring, or reports a skip for a degenerate one.
func (g *generator) ring(center mathutil.Vec3, width, depth float64, segments int) ([]int, bool) {
	pts, ok := mesh.EllipseRing(center, width, depth, segments)
	if !ok {
		g.skippedRings++
		g.log.Debug("degenerate ring skipped",
			zap.Float64("z", center[2]), zap.Float64("width", width), zap.Float64("depth", depth))
		return nil, false
	}
	return g.mesh.AddVertices(pts), true
}

func (g *generator) bridge(rings [][]int) error {
	want := 0
	for i := 0; i+1 < len(rings); i++ {
		want += min(len(rings[i]), len(rings[i+1]))
	}
	added, err := mesh.BridgeChain(g.mesh, rings)
	if err != nil {
		return err
	}
	if skipped := want - added; skipped > 0 {
		g.skippedFaces += skipped
		g.log.Debug("duplicate faces skipped", zap.Int("count", skipped))
	}
	return nil
}

func (g *generator) capRing(ring []int) error {
	added, err := mesh.Cap(g.mesh, ring)
	if err != nil {
		return err
	}
	if !added {
		g.skippedFaces++
	}
	return nil
}

func (g *generator) buildTorso() error {
	l, b := g.ladder, g.frame
	sections := []struct {
		z, width, depth float64
	}{
		{l.Hip, b.HipWidth / 2, b.ChestDepth / 2},
		{l.Waist, b.HipWidth / 2 * 0.9, b.ChestDepth / 2 * 0.85},
		{l.Chest(), b.ShoulderWidth / 2 * 0.9, b.ChestDepth / 2},
		{l.Shoulder, b.ShoulderWidth / 2, b.ChestDepth / 2 * 0.9},
	}

	var rings [][]int
	for _, s := range sections {
		if r, ok := g.ring(mathutil.Vec3{0, 0, s.z}, s.width, s.depth, torsoSegments); ok {
			rings = append(rings, r)
		}
	}
	if err := g.bridge(rings); err != nil {
		return err
	}
	if len(rings) == 0 {
		return nil
	}
	// close the crotch
	return g.capRing(rings[0])
}

func (g *generator) buildNeck() error {
	l := g.ladder
	var rings [][]int
	if r, ok := g.ring(mathutil.Vec3{0, 0, l.Shoulder}, neckBottomWidth, neckBottomDepth, neckSegments); ok {
		rings = append(rings, r)
	}
	if r, ok := g.ring(mathutil.Vec3{0, 0, l.NeckBase}, neckTopWidth, neckTopDepth, neckSegments); ok {
		rings = append(rings, r)
	}
	return g.bridge(rings)
}

// buildHead approximates the skull with latitude rings, crown to chin.
// The polar latitudes have no area and are skipped.
func (g *generator) buildHead() error {
	center, radius := HeadSphere(g.ladder, g.frame)
	var rings [][]int
	for j := 0; j <= headLatitudes; j++ {
		phi := math.Pi * float64(j) / headLatitudes
		r := math.Sin(phi) * radius
		z := center + math.Cos(phi)*radius
		if ring, ok := g.ring(mathutil.Vec3{0, 0, z}, r, r, headSegments); ok {
			rings = append(rings, ring)
		}
	}
	return g.bridge(rings)
}

// HeadSphere returns the head's centre height and radius for a ladder.
func HeadSphere(l Ladder, b Frame) (center, radius float64) {
	half := (l.HeadTop - l.NeckBase) / 2
	return l.NeckBase + half, half * b.HeadScale
}
