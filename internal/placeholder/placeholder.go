// Package placeholder assembles the stand-in player character from scaled
// primitives: a 16-part body with skin, clothes, pants and boot materials,
// parented under a single root empty.
package placeholder

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"survivor-meshgen/internal/logging"
	"survivor-meshgen/internal/material"
	"survivor-meshgen/internal/mathutil"
	"survivor-meshgen/internal/mesh"
	"survivor-meshgen/internal/primitive"
	"survivor-meshgen/internal/scene"
)

var (
	// ErrInvalidParameter is returned before anything is added to the scene.
	ErrInvalidParameter = errors.New("placeholder: invalid parameter")

	// ErrSceneNotEmpty is returned when the target scene holds any object.
	ErrSceneNotEmpty = errors.New("placeholder: scene is not empty")
)

// ReferenceHeight is the height the part table is authored at.
const ReferenceHeight = 1.75

// Params configures a placeholder build.
type Params struct {
	Height float64
	Name   string
}

// DefaultParams is the 1.75 m male player.
func DefaultParams() Params {
	return Params{Height: ReferenceHeight, Name: "char_player_male"}
}

// Validate checks height and name.
func (p Params) Validate() error {
	if math.IsNaN(p.Height) || math.IsInf(p.Height, 0) || p.Height <= 0 {
		return fmt.Errorf("%w: height must be a positive number of metres, got %v", ErrInvalidParameter, p.Height)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidParameter)
	}
	return nil
}

type shape int

const (
	sphere shape = iota
	cube
	cylinder
)

type slot int

const (
	skin slot = iota
	clothes
	pants
	boots
)

// Part is one primitive of the body at reference height.
type Part struct {
	Name     string
	shape    shape
	Location mathutil.Vec3
	Scale    mathutil.Vec3
	Rotation mathutil.Vec3
	slot     slot
}

// Parts lists the body at ReferenceHeight, head to feet.
var Parts = []Part{
	{Name: "Head", shape: sphere, Location: v(0, 0, 1.62), Scale: v(0.11, 0.13, 0.14), slot: skin},
	{Name: "Neck", shape: cylinder, Location: v(0, 0, 1.48), Scale: v(0.05, 0.05, 0.06), slot: skin},
	{Name: "Torso", shape: cube, Location: v(0, 0, 1.2), Scale: v(0.22, 0.12, 0.28), slot: clothes},
	{Name: "Hips", shape: cube, Location: v(0, 0, 0.88), Scale: v(0.18, 0.10, 0.10), slot: pants},

	{Name: "Arm_L_Upper", shape: cylinder, Location: v(-0.30, 0, 1.28), Scale: v(0.045, 0.045, 0.15), Rotation: v(0, 0.2, 0), slot: clothes},
	{Name: "Arm_R_Upper", shape: cylinder, Location: v(0.30, 0, 1.28), Scale: v(0.045, 0.045, 0.15), Rotation: v(0, -0.2, 0), slot: clothes},
	// rolled-up sleeves
	{Name: "Arm_L_Lower", shape: cylinder, Location: v(-0.34, 0, 1.02), Scale: v(0.038, 0.038, 0.13), Rotation: v(0, 0.1, 0), slot: skin},
	{Name: "Arm_R_Lower", shape: cylinder, Location: v(0.34, 0, 1.02), Scale: v(0.038, 0.038, 0.13), Rotation: v(0, -0.1, 0), slot: skin},
	{Name: "Hand_L", shape: sphere, Location: v(-0.36, 0, 0.86), Scale: v(0.04, 0.025, 0.05), slot: skin},
	{Name: "Hand_R", shape: sphere, Location: v(0.36, 0, 0.86), Scale: v(0.04, 0.025, 0.05), slot: skin},

	{Name: "Leg_L_Upper", shape: cylinder, Location: v(-0.09, 0, 0.65), Scale: v(0.065, 0.065, 0.18), slot: pants},
	{Name: "Leg_R_Upper", shape: cylinder, Location: v(0.09, 0, 0.65), Scale: v(0.065, 0.065, 0.18), slot: pants},
	{Name: "Leg_L_Lower", shape: cylinder, Location: v(-0.09, 0, 0.32), Scale: v(0.05, 0.05, 0.18), slot: pants},
	{Name: "Leg_R_Lower", shape: cylinder, Location: v(0.09, 0, 0.32), Scale: v(0.05, 0.05, 0.18), slot: pants},
	{Name: "Foot_L", shape: cube, Location: v(-0.09, 0.04, 0.06), Scale: v(0.05, 0.10, 0.04), slot: boots},
	{Name: "Foot_R", shape: cube, Location: v(0.09, 0.04, 0.06), Scale: v(0.05, 0.10, 0.04), slot: boots},
}

func v(x, y, z float64) mathutil.Vec3 { return mathutil.Vec3{x, y, z} }

// Build adds the placeholder to scn, which must be empty, and returns the root.
// Every part is scaled by Height/ReferenceHeight.
func Build(scn *scene.Scene, p Params, log *zap.Logger) (*scene.Object, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if scn.Len() > 0 {
		return nil, fmt.Errorf("%w: %d objects present", ErrSceneNotEmpty, scn.Len())
	}
	log = logging.OrNop(log)

	mats := map[slot]*material.Material{
		skin:    material.Skin(),
		clothes: material.Clothes(),
		pants:   material.Pants(),
		boots:   material.Boots(),
	}
	sf := p.Height / ReferenceHeight

	var parts []*scene.Object
	for _, part := range Parts {
		m, err := part.mesh()
		if err != nil {
			return nil, fmt.Errorf("placeholder: %s: %w", part.Name, err)
		}
		obj := scn.NewMesh(part.Name, m)
		obj.Location = part.Location.Scale(sf)
		obj.Scale = part.Scale.Scale(sf)
		obj.Rotation = part.Rotation
		obj.Material = mats[part.slot]
		parts = append(parts, obj)
	}

	root := scn.NewEmpty(p.Name)
	for _, obj := range parts {
		if err := scene.SetParent(obj, root); err != nil {
			return nil, err
		}
	}

	log.Info("created player placeholder",
		zap.String("name", root.Name),
		zap.Float64("height_m", p.Height),
		zap.Int("parts", len(parts)),
	)
	return root, nil
}

func (p Part) mesh() (*mesh.Mesh, error) {
	switch p.shape {
	case sphere:
		return primitive.UVSphere(p.Name, 16, 8)
	case cylinder:
		return primitive.Cylinder(p.Name, 12)
	default:
		return primitive.Cube(p.Name), nil
	}
}
