package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survivor-meshgen/internal/mathutil"
)

func TestEllipseRingLiesOnEllipse(t *testing.T) {
	center := mathutil.Vec3{0.3, -0.1, 1.2}
	for _, n := range []int{3, 6, 8, 32} {
		pts, ok := EllipseRing(center, 0.2, 0.125, n)
		require.True(t, ok)
		require.Len(t, pts, n)

		for _, p := range pts {
			x := (p[0] - center[0]) / 0.2
			y := (p[1] - center[1]) / 0.125
			assert.InDelta(t, 1.0, x*x+y*y, 1e-9)
			assert.Equal(t, center[2], p[2])
		}
		// starts at angle 0 and turns counter-clockwise
		assert.InDelta(t, center[0]+0.2, pts[0][0], 1e-12)
		assert.Greater(t, pts[1][1], center[1])
		assert.False(t, pts[0].ApproxEqual(pts[n-1], 1e-9), "closing point must not repeat")
	}
}

func TestEllipseRingDegenerate(t *testing.T) {
	cases := []struct {
		w, d float64
		n    int
	}{
		{0, 0.2, 8},
		{0.2, RingEpsilon, 8},
		{0.005, 0.005, 8},
		{0.2, 0.2, 2},
	}
	for _, c := range cases {
		pts, ok := EllipseRing(mathutil.Vec3{}, c.w, c.d, c.n)
		assert.False(t, ok, "%+v", c)
		assert.Nil(t, pts)
	}
}

func TestAddFaceInsertOrSkip(t *testing.T) {
	m := New("quad")
	idx := m.AddVertices([]mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}})

	added, err := m.AddFace(idx...)
	require.NoError(t, err)
	assert.True(t, added)

	// same corners, any rotation or winding, is the same face
	added, err = m.AddFace(idx[2], idx[1], idx[0], idx[3])
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, m.Faces, 1)
	assert.True(t, m.HasFace(3, 2, 1, 0))
}

func TestAddFaceRejectsMalformed(t *testing.T) {
	m := New("bad")
	m.AddVertices([]mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}})

	for _, corners := range [][]int{{0, 1}, {0, 1, 5}, {0, 1, 1}, {-1, 0, 1}} {
		_, err := m.AddFace(corners...)
		assert.ErrorIs(t, err, ErrBadFace, "%v", corners)
	}
	assert.Empty(t, m.Faces)
}

func ringPair(t *testing.T, m *Mesh, n int) (a, b []int) {
	t.Helper()
	lower, ok := EllipseRing(mathutil.Vec3{0, 0, 0}, 0.2, 0.1, n)
	require.True(t, ok)
	upper, ok := EllipseRing(mathutil.Vec3{0, 0, 0.5}, 0.2, 0.1, n)
	require.True(t, ok)
	return m.AddVertices(lower), m.AddVertices(upper)
}

func TestBridgeFaceCount(t *testing.T) {
	m := New("tube")
	a, b := ringPair(t, m, 8)

	n, err := Bridge(m, a, b)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	for _, f := range m.Faces {
		assert.Len(t, f.V, 4)
	}

	// repeated bridging is idempotent
	n, err = Bridge(m, a, b)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = Bridge(m, b, a)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, m.Faces, 8)
}

func TestBridgeUsesShorterRing(t *testing.T) {
	m := New("taper")
	a := m.AddVertices(mustRing(t, mathutil.Vec3{}, 8))
	b := m.AddVertices(mustRing(t, mathutil.Vec3{0, 0, 1}, 6))

	n, err := Bridge(m, a, b)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	// last quad wraps the short ring only
	last := m.Faces[len(m.Faces)-1].V
	assert.Equal(t, []int{a[5], a[6], b[0], b[5]}, last)
}

func mustRing(t *testing.T, c mathutil.Vec3, n int) []mathutil.Vec3 {
	t.Helper()
	pts, ok := EllipseRing(c, 0.3, 0.3, n)
	require.True(t, ok)
	return pts
}

func TestMakeNormalsConsistentClosedBox(t *testing.T) {
	m := New("box")
	a, b := ringPair(t, m, 4)
	_, err := Bridge(m, a, b)
	require.NoError(t, err)
	// both caps are wound the same way: one of them is inverted
	_, err = Cap(m, a)
	require.NoError(t, err)
	_, err = Cap(m, b)
	require.NoError(t, err)

	// also invert one side wall
	m.Faces[1].V = []int{m.Faces[1].V[3], m.Faces[1].V[2], m.Faces[1].V[1], m.Faces[1].V[0]}

	MakeNormalsConsistent(m)

	center := mathutil.Vec3{0, 0, 0.25}
	for i := range m.Faces {
		d := m.FaceNormal(i).Dot(m.FaceCenter(i).Sub(center))
		assert.Greater(t, d, 0.0, "face %d points inward", i)
	}
}

func TestMakeNormalsConsistentInvertedTube(t *testing.T) {
	m := New("tube")
	a, b := ringPair(t, m, 8)
	// bridging top-to-bottom winds every quad inward
	_, err := Bridge(m, b, a)
	require.NoError(t, err)

	flipped := MakeNormalsConsistent(m)
	assert.Equal(t, 8, flipped)
	for i := range m.Faces {
		n := m.FaceNormal(i)
		c := m.FaceCenter(i)
		assert.Greater(t, n[0]*c[0]+n[1]*c[1], 0.0)
	}
	// keys survive a rewind
	assert.True(t, m.HasFace(m.Faces[0].V...))
}

func TestTrianglesAndStats(t *testing.T) {
	m := New("cap")
	ring := m.AddVertices(mustRing(t, mathutil.Vec3{}, 6))
	_, err := Cap(m, ring)
	require.NoError(t, err)

	assert.Len(t, m.Triangles(), 4)
	assert.Equal(t, Stats{Vertices: 6, Faces: 1, NGons: 1}, m.Stats())

	n := m.FaceNormal(0)
	assert.InDelta(t, 2*hexArea(0.3), n[2], 1e-9)
}

func hexArea(r float64) float64 { return 3 * math.Sqrt(3) / 2 * r * r }

func TestCloneIsDeep(t *testing.T) {
	m := New("src")
	a, b := ringPair(t, m, 4)
	_, err := Bridge(m, a, b)
	require.NoError(t, err)

	c := m.Clone()
	c.Translate(mathutil.Vec3{1, 0, 0})
	c.Faces[0].V[0] = 99

	assert.NotEqual(t, m.Verts[0], c.Verts[0])
	assert.NotEqual(t, 99, m.Faces[0].V[0])
	added, err := c.AddFace(m.Faces[1].V...)
	require.NoError(t, err)
	assert.False(t, added, "clone keeps the face index")
}
