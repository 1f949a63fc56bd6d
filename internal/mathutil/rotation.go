package mathutil

import "math"

// Rotations are right-handed and counter-clockwise, angles in radians.

func RotX(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

func RotY(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

func RotZ(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// EulerXYZ returns Rz @ Ry @ Rx, Blender's XYZ Euler order.
func EulerXYZ(rot Vec3) Mat3 {
	return Mat3Mul(Mat3Mul(RotZ(rot[2]), RotY(rot[1])), RotX(rot[0]))
}

// Orbit is a Y-up turntable camera: yaw about the vertical, then pitch
// about the screen horizontal. Degrees.
func Orbit(yaw, pitch float64) Mat3 {
	return Mat3Mul(RotX(Deg2Rad(pitch)), RotY(Deg2Rad(yaw)))
}

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
