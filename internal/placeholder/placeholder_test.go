package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survivor-meshgen/internal/mathutil"
	"survivor-meshgen/internal/scene"
)

func TestBuildAssemblesBody(t *testing.T) {
	scn := scene.New()
	root, err := Build(scn, DefaultParams(), nil)
	require.NoError(t, err)

	assert.Equal(t, "char_player_male", root.Name)
	assert.Equal(t, scene.KindEmpty, root.Kind)

	meshes := scn.OfKind(scene.KindMesh)
	assert.Len(t, meshes, len(Parts))
	assert.Len(t, scn.Children(root), len(Parts))
	for _, obj := range meshes {
		assert.Same(t, root, obj.Parent, obj.Name)
		require.NotNil(t, obj.Material, obj.Name)
	}

	head, ok := scn.Get("Head")
	require.True(t, ok)
	assert.Equal(t, "Skin", head.Material.Name)
	boot, ok := scn.Get("Foot_L")
	require.True(t, ok)
	assert.Equal(t, "Boots", boot.Material.Name)
	assert.Equal(t, [4]float32{0.12, 0.08, 0.05, 1.0}, [4]float32(boot.Material.BaseColor))
}

func TestBuildScalesWithHeight(t *testing.T) {
	scn := scene.New()
	_, err := Build(scn, Params{Height: 3.5, Name: "giant"}, nil)
	require.NoError(t, err)

	head, ok := scn.Get("Head")
	require.True(t, ok)
	assert.True(t, head.Location.ApproxEqual(mathutil.Vec3{0, 0, 3.24}, 1e-9))
	assert.True(t, head.Scale.ApproxEqual(mathutil.Vec3{0.22, 0.26, 0.28}, 1e-9))

	arm, ok := scn.Get("Arm_R_Upper")
	require.True(t, ok)
	assert.Equal(t, mathutil.Vec3{0, -0.2, 0}, arm.Rotation, "rotation is not scaled")
}

func TestBuildSymmetricParts(t *testing.T) {
	byName := make(map[string]Part)
	for _, p := range Parts {
		byName[p.Name] = p
	}
	for _, pair := range [][2]string{
		{"Arm_L_Upper", "Arm_R_Upper"}, {"Arm_L_Lower", "Arm_R_Lower"},
		{"Hand_L", "Hand_R"}, {"Leg_L_Upper", "Leg_R_Upper"},
		{"Leg_L_Lower", "Leg_R_Lower"}, {"Foot_L", "Foot_R"},
	} {
		l, r := byName[pair[0]], byName[pair[1]]
		assert.Equal(t, l.Location.MirrorX(), r.Location, pair[0])
		assert.Equal(t, l.Scale, r.Scale, pair[0])
		assert.Equal(t, l.Rotation.Scale(-1), r.Rotation, pair[0])
	}
}

func TestBuildValidation(t *testing.T) {
	for _, p := range []Params{
		{Height: 0, Name: "x"},
		{Height: -2, Name: "x"},
		{Height: 1.75, Name: ""},
	} {
		scn := scene.New()
		_, err := Build(scn, p, nil)
		assert.ErrorIs(t, err, ErrInvalidParameter, "%+v", p)
		assert.Zero(t, scn.Len())
	}
}

func TestBuildRequiresEmptyScene(t *testing.T) {
	scn := scene.New()
	scn.NewEmpty("Light")
	_, err := Build(scn, DefaultParams(), nil)
	require.ErrorIs(t, err, ErrSceneNotEmpty)
	assert.Equal(t, 1, scn.Len())
}

func TestFeetSitAboveFloor(t *testing.T) {
	scn := scene.New()
	_, err := Build(scn, DefaultParams(), nil)
	require.NoError(t, err)

	for _, name := range []string{"Foot_L", "Foot_R"} {
		foot, ok := scn.Get(name)
		require.True(t, ok)
		w := foot.World()
		for _, vert := range foot.Mesh.Verts {
			assert.GreaterOrEqual(t, w.MulPoint(vert)[2], 0.02-1e-9)
		}
	}
}
