package mesh

import (
	"slices"

	"survivor-meshgen/internal/mathutil"
)

type edgeKey struct{ lo, hi int }

type edgeUse struct {
	face    int
	forward bool // face walks the edge lo -> hi
}

// MakeNormalsConsistent rewinds faces so that neighbours agree and each
// connected piece faces outward. It returns the number of faces flipped.
//
// Within a component, winding is propagated breadth-first across shared
// edges: two consistent faces walk a shared edge in opposite directions.
// The component is then flipped as a whole if its area-weighted normals
// point toward its centroid. Open shells (tubes, caps) are handled the same way.
func MakeNormalsConsistent(m *Mesh) int {
	adj := make(map[edgeKey][]edgeUse)
	for fi, f := range m.Faces {
		for k := range f.V {
			u, w := f.V[k], f.V[(k+1)%len(f.V)]
			if u < w {
				adj[edgeKey{u, w}] = append(adj[edgeKey{u, w}], edgeUse{fi, true})
			} else {
				adj[edgeKey{w, u}] = append(adj[edgeKey{w, u}], edgeUse{fi, false})
			}
		}
	}

	flip := make([]bool, len(m.Faces))
	seen := make([]bool, len(m.Faces))

	for start := range m.Faces {
		if seen[start] {
			continue
		}
		seen[start] = true
		component := []int{start}
		for q := 0; q < len(component); q++ {
			fi := component[q]
			f := m.Faces[fi].V
			for k := range f {
				u, w := f[k], f[(k+1)%len(f)]
				key, fwd := edgeKey{u, w}, true
				if u > w {
					key, fwd = edgeKey{w, u}, false
				}
				walk := fwd != flip[fi]
				for _, use := range adj[key] {
					if seen[use.face] {
						continue
					}
					seen[use.face] = true
					// neighbour must walk the edge opposite to fi
					flip[use.face] = use.forward == walk
					component = append(component, use.face)
				}
			}
		}

		if !m.facesOutward(component, flip) {
			for _, fi := range component {
				flip[fi] = !flip[fi]
			}
		}
	}

	count := 0
	for fi, f := range flip {
		if f {
			slices.Reverse(m.Faces[fi].V)
			count++
		}
	}
	return count
}

func (m *Mesh) facesOutward(component []int, flip []bool) bool {
	centers := make([]mathutil.Vec3, len(component))
	for i, fi := range component {
		centers[i] = m.FaceCenter(fi)
	}
	centroid := mathutil.Centroid(centers)

	score := 0.0
	for i, fi := range component {
		n := m.FaceNormal(fi)
		if flip[fi] {
			n = n.Scale(-1)
		}
		score += n.Dot(centers[i].Sub(centroid))
	}
	return score >= 0
}
