package mesh

import (
	"math"

	"survivor-meshgen/internal/mathutil"
)

// RingEpsilon is the smallest radius worth emitting as a ring.
// Below it a cross-section has collapsed (a sphere's pole) and is skipped.
const RingEpsilon = 0.01

// EllipseRing returns segments points on the horizontal ellipse with radii
// width (X) and depth (Y) around center, starting at angle 0 and running
// counter-clockwise. Every point has center's Z. The ring is closed
// implicitly: the last point is adjacent to the first and not repeated.
//
// ok is false when the ring is degenerate (a radius <= RingEpsilon, or fewer
// than 3 segments); callers skip it rather than emit a zero-area ring.
func EllipseRing(center mathutil.Vec3, width, depth float64, segments int) (pts []mathutil.Vec3, ok bool) {
	if segments < 3 || width <= RingEpsilon || depth <= RingEpsilon {
		return nil, false
	}
	pts = make([]mathutil.Vec3, segments)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = mathutil.Vec3{
			center[0] + math.Cos(angle)*width,
			center[1] + math.Sin(angle)*depth,
			center[2],
		}
	}
	return pts, true
}

// Bridge joins two vertex rings with quads: for i in [0, min(|a|,|b|)) it
// adds (a[i], a[i+1], b[i+1], b[i]) with each ring's index wrapped by its own
// length. Faces that already exist are skipped. It returns the number added.
func Bridge(m *Mesh, a, b []int) (int, error) {
	n := min(len(a), len(b))
	added := 0
	for i := 0; i < n; i++ {
		ok, err := m.AddFace(
			a[i%len(a)],
			a[(i+1)%len(a)],
			b[(i+1)%len(b)],
			b[i%len(b)],
		)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}

// BridgeChain bridges each ring in rings to the next one.
func BridgeChain(m *Mesh, rings [][]int) (int, error) {
	total := 0
	for i := 0; i+1 < len(rings); i++ {
		n, err := Bridge(m, rings[i], rings[i+1])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Cap closes a ring with a single n-gon in ring order.
func Cap(m *Mesh, ring []int) (bool, error) {
	return m.AddFace(ring...)
}
