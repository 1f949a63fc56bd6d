// Package material describes the flat PBR inputs assigned to scene objects.
package material

// RGBA is a linear colour with alpha in [0,1].
type RGBA [4]float32

// Material is a named metallic-roughness surface with a constant base colour.
type Material struct {
	Name      string
	BaseColor RGBA
	Roughness float32
	Metallic  float32
}

// New returns a non-metallic material.
func New(name string, base RGBA, roughness float32) *Material {
	return &Material{Name: name, BaseColor: base, Roughness: roughness}
}

// Placeholder palette: 1960s work clothes over a skin base.

func Skin() *Material    { return New("Skin", RGBA{0.77, 0.64, 0.52, 1.0}, 0.7) }
func Clothes() *Material { return New("Clothes", RGBA{0.33, 0.29, 0.22, 1.0}, 0.8) }
func Pants() *Material   { return New("Pants", RGBA{0.15, 0.15, 0.18, 1.0}, 0.75) }
func Boots() *Material   { return New("Boots", RGBA{0.12, 0.08, 0.05, 1.0}, 0.6) }
