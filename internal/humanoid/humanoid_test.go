package humanoid

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survivor-meshgen/internal/mathutil"
	"survivor-meshgen/internal/mesh"
	"survivor-meshgen/internal/scene"
)

const eps = 1e-9

func TestResolveLadderStrictlyIncreasing(t *testing.T) {
	for _, h := range []float64{0.2, 1.0, 1.62, 1.75, 2.1, 40} {
		for _, g := range []Gender{Male, Female} {
			l, _, err := Resolve(Params{Height: h, Gender: g})
			require.NoError(t, err)

			rungs := l.Rungs()
			for i := 1; i < len(rungs); i++ {
				assert.Greater(t, rungs[i], rungs[i-1], "h=%v rung %d", h, i)
			}
			assert.InDelta(t, h*FractionSum, l.HeadTop, eps)
		}
	}
}

func TestResolveMaleScenario(t *testing.T) {
	l, b, err := Resolve(Params{Height: 1.75, Gender: Male, Subdivisions: 1})
	require.NoError(t, err)

	assert.InDelta(t, 1.75, l.HeadTop, 1e-9)
	assert.InDelta(t, 1.0, FractionSum, 1e-12)
	assert.Equal(t, 0.45, b.ShoulderWidth)
	assert.Equal(t, 0.35, b.HipWidth)
	assert.Equal(t, 0.25, b.ChestDepth)
	assert.Equal(t, 1.0, b.HeadScale)

	assert.InDelta(t, 0.0875, l.Ankle, eps)
	assert.InDelta(t, 0.4375, l.Knee, eps)
	assert.InDelta(t, 0.8225, l.Hip, eps)
	assert.InDelta(t, 1.4875, l.Shoulder, eps)
}

func TestResolveFemaleConstants(t *testing.T) {
	_, b, err := Resolve(Params{Height: 1.65, Gender: Female})
	require.NoError(t, err)
	assert.Equal(t, Frame{ShoulderWidth: 0.40, HipWidth: 0.38, ChestDepth: 0.22, HeadScale: 0.95}, b)
}

func TestBuildRejectsInvalidParameters(t *testing.T) {
	base := DefaultParams()
	cases := map[string]func(p *Params){
		"zero height":          func(p *Params) { p.Height = 0 },
		"negative height":      func(p *Params) { p.Height = -1.75 },
		"nan height":           func(p *Params) { p.Height = math.NaN() },
		"infinite height":      func(p *Params) { p.Height = math.Inf(1) },
		"unknown gender":       func(p *Params) { p.Gender = Gender(7) },
		"negative subdivision": func(p *Params) { p.Subdivisions = -1 },
		"blank name":           func(p *Params) { p.Name = "  " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := base
			mutate(&p)
			scn := scene.New()

			obj, err := Build(scn, p, nil)
			require.ErrorIs(t, err, ErrInvalidParameter)
			assert.Nil(t, obj)
			assert.Zero(t, scn.Len(), "scene must be untouched")
		})
	}
}

func TestParseGender(t *testing.T) {
	g, err := ParseGender("Female")
	require.NoError(t, err)
	assert.Equal(t, Female, g)

	_, err = ParseGender("robot")
	assert.ErrorIs(t, err, ErrInvalidParameter)

	var roundTrip Gender
	text, err := Male.MarshalText()
	require.NoError(t, err)
	require.NoError(t, roundTrip.UnmarshalText(text))
	assert.Equal(t, Male, roundTrip)
}

func TestBuildMeshTopology(t *testing.T) {
	m, err := BuildMesh(DefaultParams(), nil)
	require.NoError(t, err)

	// torso 4x8, neck 2x6, head 5x8, arms 2x3x6, legs 2x(3x6+4)
	assert.Equal(t, 164, len(m.Verts))
	// torso 24+cap, neck 6, head 32, arms 2x(12+cap), legs 2x(12+foot)
	assert.Equal(t, mesh.Stats{Vertices: 164, Faces: 115, Quads: 112, NGons: 3}, m.Stats())

	seen := make(map[string]bool)
	for _, f := range m.Faces {
		k := sortedKey(f.V)
		assert.False(t, seen[k], "duplicate face %v", f.V)
		seen[k] = true
	}
}

func TestBuildMeshSkipsCollapsedHeadRings(t *testing.T) {
	// head radius 0.006 m: every latitude is under the ring epsilon
	m, err := BuildMesh(Params{Height: 0.1, Gender: Male, Name: "tiny"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 164-40, len(m.Verts))
	assert.Equal(t, 115-32, len(m.Faces))
}

func TestLimbMirrorSymmetry(t *testing.T) {
	l, b, err := Resolve(DefaultParams())
	require.NoError(t, err)

	check := func(left, right []Joint) {
		require.Len(t, left, len(right))
		for i := range left {
			assert.True(t, left[i].Center.ApproxEqual(right[i].Center.MirrorX(), eps),
				"joint %d: %v vs %v", i, left[i].Center, right[i].Center)
			assert.Equal(t, left[i].Radius, right[i].Radius)
		}
	}
	check(ArmJoints(Left, l, b, 1.75), ArmJoints(Right, l, b, 1.75))
	check(LegJoints(Left, l, b), LegJoints(Right, l, b))

	lf, rf := FootOutline(-0.0875, 0), FootOutline(0.0875, 0)
	for i := range lf {
		assert.True(t, slices.ContainsFunc(rf[:], func(v mathutil.Vec3) bool {
			return v.ApproxEqual(lf[i].MirrorX(), eps)
		}))
	}
}

func TestArmJointsGeometry(t *testing.T) {
	l, b, err := Resolve(DefaultParams())
	require.NoError(t, err)

	j := ArmJoints(Right, l, b, 1.75)
	require.Len(t, j, 3)
	assert.InDelta(t, 0.225, j[0].Center[0], eps)
	assert.InDelta(t, 0.225+0.525*0.9, j[1].Center[0], eps)
	assert.InDelta(t, l.Shoulder-0.525*0.4, j[1].Center[2], eps)
	assert.InDelta(t, 0.04*0.7, j[2].Radius, eps)
}

func TestBuildPlacesObject(t *testing.T) {
	scn := scene.New()
	scn.NewEmpty("Camera_Rig")

	obj, err := Build(scn, DefaultParams(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Humanoid_Base", obj.Name)
	assert.Equal(t, scene.KindMesh, obj.Kind)
	assert.Equal(t, mathutil.Vec3{}, obj.Location)

	mod, ok := obj.Subsurf()
	require.True(t, ok)
	assert.Equal(t, 1, mod.Levels)
	assert.Equal(t, 2, mod.RenderLevels)

	lo, hi, ok := obj.Mesh.Bounds()
	require.True(t, ok)
	assert.InDelta(t, 0, lo[2], eps, "feet rest on the origin plane")

	// the crown pole is skipped; the topmost ring sits at 30° from it
	l, b, err := Resolve(DefaultParams())
	require.NoError(t, err)
	center, radius := HeadSphere(l, b)
	assert.InDelta(t, center+math.Cos(math.Pi/6)*radius, hi[2], 1e-9)
}

func TestBuildWithoutSubdivisionHasNoModifier(t *testing.T) {
	p := DefaultParams()
	p.Subdivisions = 0
	obj, err := Build(scene.New(), p, nil)
	require.NoError(t, err)
	assert.Empty(t, obj.Modifiers)
}

func TestBuildRequiresClearedScene(t *testing.T) {
	scn := scene.New()
	_, err := Build(scn, DefaultParams(), nil)
	require.NoError(t, err)

	_, err = Build(scn, DefaultParams(), nil)
	require.ErrorIs(t, err, ErrSceneNotCleared)
	assert.Equal(t, 1, scn.Len())

	scn.ClearKind(scene.KindMesh)
	_, err = Build(scn, DefaultParams(), nil)
	assert.NoError(t, err)
}

func TestBuildMeshNormalsFaceOutward(t *testing.T) {
	p := DefaultParams()
	m, err := BuildMesh(p, nil)
	require.NoError(t, err)
	l, b, err := Resolve(p)
	require.NoError(t, err)
	center, _ := HeadSphere(l, b)
	headCenter := mathutil.Vec3{0, 0, center}

	checkedHead, checkedCap, checkedSoles := 0, 0, 0
	for i, f := range m.Faces {
		above := true
		for _, v := range f.V {
			if m.Verts[v][2] <= l.NeckBase+1e-9 {
				above = false
			}
		}
		if above {
			n := m.FaceNormal(i)
			assert.Greater(t, n.Dot(m.FaceCenter(i).Sub(headCenter)), 0.0, "head face %d points inward", i)
			checkedHead++
		}
		if len(f.V) == torsoSegments && math.Abs(m.FaceCenter(i)[2]-l.Hip) < eps {
			assert.Less(t, m.FaceNormal(i)[2], 0.0, "hip cap must face down")
			checkedCap++
		}
		onFloor := true
		for _, v := range f.V {
			if math.Abs(m.Verts[v][2]-l.Floor) > eps {
				onFloor = false
			}
		}
		if onFloor {
			assert.Less(t, m.FaceNormal(i)[2], 0.0, "sole %d must face the floor", i)
			checkedSoles++
		}
	}
	assert.Equal(t, 32, checkedHead)
	assert.Equal(t, 1, checkedCap)
	assert.Equal(t, 2, checkedSoles)
}

func sortedKey(v []int) string {
	s := slices.Clone(v)
	slices.Sort(s)
	parts := make([]string, len(s))
	for i, x := range s {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}
