package humanoid

import "survivor-meshgen/internal/mathutil"

// Side selects a limb: its value multiplies the lateral (X) axis.
type Side int

const (
	Left  Side = -1
	Right Side = 1
)

const (
	limbSegments = 6

	armRadius       = 0.04
	upperArmFrac    = 0.30 // of total height
	forearmFrac     = 0.25
	elbowDecay      = 0.9
	wristDecay      = 0.7
	legRadius       = 0.07
	kneeDecay       = 0.85
	ankleDecay      = 0.6
	footHalfWidth   = 0.05
	footHeelOffset  = -0.08
	footToesOffset  = 0.12
	shoulderSpreadX = 0.9 // share of the upper arm running outward
	shoulderDropZ   = 0.4
	forearmSpreadX  = 0.8
	forearmDropZ    = 0.3
)

// Joint is one circular limb cross-section.
type Joint struct {
	Center mathutil.Vec3
	Radius float64
}

// ArmJoints returns shoulder, elbow and wrist for side.
func ArmJoints(side Side, l Ladder, b Frame, height float64) []Joint {
	s := float64(side)
	shoulderX := s * b.ShoulderWidth / 2

	upper := upperArmFrac * height
	elbowX := shoulderX + s*upper*shoulderSpreadX
	elbowZ := l.Shoulder - upper*shoulderDropZ

	fore := forearmFrac * height
	wristX := elbowX + s*fore*forearmSpreadX
	wristZ := elbowZ - fore*forearmDropZ

	return []Joint{
		{Center: mathutil.Vec3{shoulderX, 0, l.Shoulder}, Radius: armRadius},
		{Center: mathutil.Vec3{elbowX, 0, elbowZ}, Radius: armRadius * elbowDecay},
		{Center: mathutil.Vec3{wristX, 0, wristZ}, Radius: armRadius * wristDecay},
	}
}

// LegJoints returns hip, knee and ankle for side. The leg drops straight down.
func LegJoints(side Side, l Ladder, b Frame) []Joint {
	x := float64(side) * b.HipWidth / 4
	return []Joint{
		{Center: mathutil.Vec3{x, 0, l.Hip}, Radius: legRadius},
		{Center: mathutil.Vec3{x, 0, l.Knee}, Radius: legRadius * kneeDecay},
		{Center: mathutil.Vec3{x, 0, l.Ankle}, Radius: legRadius * ankleDecay},
	}
}

// FootOutline is the flat sole quad under a leg at x, heel to toe,
// wound clockwise from above so the sole faces the floor.
func FootOutline(x, floor float64) [4]mathutil.Vec3 {
	return [4]mathutil.Vec3{
		{x + footHalfWidth, footHeelOffset, floor},
		{x - footHalfWidth, footHeelOffset, floor},
		{x - footHalfWidth, footToesOffset, floor},
		{x + footHalfWidth, footToesOffset, floor},
	}
}

// buildArm rings each arm joint, bridges them and caps the wrist.
func (g *generator) buildArm(side Side) error {
	rings, err := g.jointRings(ArmJoints(side, g.ladder, g.frame, g.params.Height))
	if err != nil {
		return err
	}
	if len(rings) == 0 {
		return nil
	}
	return g.capRing(rings[len(rings)-1])
}

// buildLeg rings each leg joint, bridges them and adds a flat foot.
func (g *generator) buildLeg(side Side) error {
	joints := LegJoints(side, g.ladder, g.frame)
	if _, err := g.jointRings(joints); err != nil {
		return err
	}
	foot := FootOutline(joints[0].Center[0], g.ladder.Floor)
	idx := g.mesh.AddVertices(foot[:])
	return g.capRing(idx)
}

func (g *generator) jointRings(joints []Joint) ([][]int, error) {
	var rings [][]int
	for _, j := range joints {
		if r, ok := g.ring(j.Center, j.Radius, j.Radius, limbSegments); ok {
			rings = append(rings, r)
		}
	}
	if err := g.bridge(rings); err != nil {
		return nil, err
	}
	return rings, nil
}
