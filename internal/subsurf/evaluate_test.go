package subsurf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"survivor-meshgen/internal/scene"
)

func TestEvaluate(t *testing.T) {
	scn := scene.New()
	obj := scn.NewMesh("Body", cube(t))
	assert.Same(t, obj.Mesh, Evaluate(obj, true), "no modifier")

	obj.Modifiers = append(obj.Modifiers, scene.Modifier{Name: "Subdivision", Type: scene.ModifierSubsurf, Levels: 1, RenderLevels: 2})
	viewport := Evaluate(obj, false)
	render := Evaluate(obj, true)
	assert.Len(t, viewport.Faces, 24)
	assert.Len(t, render.Faces, 96)
	assert.Equal(t, "Body", render.Name)
	assert.Len(t, obj.Mesh.Faces, 6)

	assert.Nil(t, Evaluate(scn.NewEmpty("Root"), false))
}
