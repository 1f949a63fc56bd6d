package subsurf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survivor-meshgen/internal/mathutil"
	"survivor-meshgen/internal/mesh"
)

func cube(t *testing.T) *mesh.Mesh {
	t.Helper()
	m := mesh.New("cube")
	m.AddVertices([]mathutil.Vec3{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	})
	for _, f := range [][]int{
		{0, 3, 2, 1}, {4, 5, 6, 7},
		{0, 1, 5, 4}, {1, 2, 6, 5},
		{2, 3, 7, 6}, {3, 0, 4, 7},
	} {
		added, err := m.AddFace(f...)
		require.NoError(t, err)
		require.True(t, added)
	}
	return m
}

func TestSubdivideCube(t *testing.T) {
	src := cube(t)
	out := Subdivide(src, 1)

	assert.Equal(t, mesh.Stats{Vertices: 26, Faces: 24, Quads: 24}, out.Stats())
	// corners move inward along the diagonal: (F + 2R + 0P)/3 with n=3
	assert.True(t, out.Verts[0].ApproxEqual(mathutil.Vec3{-5.0 / 9, -5.0 / 9, -5.0 / 9}, 1e-12), "%v", out.Verts[0])
	// source untouched
	assert.Equal(t, 8, len(src.Verts))
}

func TestSubdivideTwoLevels(t *testing.T) {
	out := Subdivide(cube(t), 2)
	assert.Equal(t, 96, len(out.Faces))
	assert.Equal(t, 98, len(out.Verts))
}

func TestSubdivideEmitsEveryChildFace(t *testing.T) {
	tet := mesh.New("tet")
	tet.AddVertices([]mathutil.Vec3{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}})
	for _, f := range [][]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}} {
		_, err := tet.AddFace(f...)
		require.NoError(t, err)
	}
	pts, ok := mesh.EllipseRing(mathutil.Vec3{}, 1, 1, 6)
	require.True(t, ok)
	hex := mesh.New("hex")
	_, err := mesh.Cap(hex, hex.AddVertices(pts))
	require.NoError(t, err)

	for m, want := range map[*mesh.Mesh]int{tet: 12, hex: 6} {
		var out *mesh.Mesh
		require.NotPanics(t, func() { out = Subdivide(m, 1) }, m.Name)
		assert.Len(t, out.Faces, want, m.Name)
	}
}

func TestSubdivideZeroIsClone(t *testing.T) {
	src := cube(t)
	out := Subdivide(src, 0)
	assert.Equal(t, src.Verts, out.Verts)
	assert.NotSame(t, src, out)
}

func TestSubdivideOpenQuadKeepsBoundary(t *testing.T) {
	m := mesh.New("sheet")
	m.AddVertices([]mathutil.Vec3{{0, 0, 0}, {2, 0, 0}, {2, 2, 0}, {0, 2, 0}})
	_, err := m.AddFace(0, 1, 2, 3)
	require.NoError(t, err)

	out := Subdivide(m, 1)
	require.Equal(t, 4, len(out.Faces))
	// crease rule on a lone quad corner: (m1+m2)/4 + P/2
	assert.True(t, out.Verts[0].ApproxEqual(mathutil.Vec3{0.25, 0.25, 0}, 1e-12), "%v", out.Verts[0])
	// boundary edge points are plain midpoints; face point is the centre
	for _, v := range out.Verts {
		assert.Zero(t, v[2])
	}
	assert.True(t, out.Verts[len(out.Verts)-1].ApproxEqual(mathutil.Vec3{1, 1, 0}, 1e-12))
}

func TestSubdivideKeepsWinding(t *testing.T) {
	m := mesh.New("tri")
	m.AddVertices([]mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	_, err := m.AddFace(0, 1, 2)
	require.NoError(t, err)

	out := Subdivide(m, 1)
	require.Len(t, out.Faces, 3)
	for i := range out.Faces {
		assert.Greater(t, out.FaceNormal(i)[2], 0.0)
	}
}
