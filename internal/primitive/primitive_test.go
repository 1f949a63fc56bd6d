package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survivor-meshgen/internal/mathutil"
	"survivor-meshgen/internal/mesh"
)

func assertOutward(t *testing.T, m *mesh.Mesh) {
	t.Helper()
	for i := range m.Faces {
		n := m.FaceNormal(i)
		assert.Greater(t, n.Dot(m.FaceCenter(i)), 0.0, "%s face %d", m.Name, i)
	}
}

func TestUVSphere(t *testing.T) {
	m, err := UVSphere("Head", 16, 8)
	require.NoError(t, err)

	assert.Equal(t, mesh.Stats{Vertices: 16*7 + 2, Faces: 128, Triangles: 32, Quads: 96}, m.Stats())
	for _, v := range m.Verts {
		assert.InDelta(t, 1.0, v.Len(), 1e-9)
	}
	assertOutward(t, m)
}

func TestUVSphereRejectsTooFewSegments(t *testing.T) {
	_, err := UVSphere("bad", 2, 8)
	assert.Error(t, err)
	_, err = UVSphere("bad", 8, 1)
	assert.Error(t, err)
}

func TestCube(t *testing.T) {
	var m *mesh.Mesh
	require.NotPanics(t, func() { m = Cube("Torso") })
	assert.Equal(t, mesh.Stats{Vertices: 8, Faces: 6, Quads: 6}, m.Stats())
	lo, hi, ok := m.Bounds()
	require.True(t, ok)
	assert.Equal(t, mathutil.Vec3{-1, -1, -1}, lo)
	assert.Equal(t, mathutil.Vec3{1, 1, 1}, hi)
	assertOutward(t, m)
}

func TestCylinder(t *testing.T) {
	m, err := Cylinder("Neck", 12)
	require.NoError(t, err)
	assert.Equal(t, mesh.Stats{Vertices: 24, Faces: 14, Quads: 12, NGons: 2}, m.Stats())
	assertOutward(t, m)

	_, err = Cylinder("bad", 2)
	assert.Error(t, err)
}
