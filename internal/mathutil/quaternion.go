package mathutil

import "math"

// Quat represents a quaternion (x, y, z, w), the glTF component order.
type Quat [4]float64

// EulerToQuat converts Euler XYZ (radians) to a quaternion.
// The result matches EulerXYZ: q = qz * qy * qx.
func EulerToQuat(rx, ry, rz float64) Quat {
	cx, sx := math.Cos(rx*0.5), math.Sin(rx*0.5)
	cy, sy := math.Cos(ry*0.5), math.Sin(ry*0.5)
	cz, sz := math.Cos(rz*0.5), math.Sin(rz*0.5)

	return Quat{
		sx*cy*cz - cx*sy*sz, // x
		cx*sy*cz + sx*cy*sz, // y
		cx*cy*sz - sx*sy*cz, // z
		cx*cy*cz + sx*sy*sz, // w
	}
}

// ZUpToYUp re-expresses a Z-up rotation in the Y-up frame (see the ZUpToYUp matrix).
func (q Quat) ZUpToYUp() Quat {
	return Quat{q[0], q[2], -q[1], q[3]}
}

// Float32 narrows q for glTF node rotations.
func (q Quat) Float32() [4]float32 {
	return [4]float32{float32(q[0]), float32(q[1]), float32(q[2]), float32(q[3])}
}
