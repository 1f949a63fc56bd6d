// Package subsurf evaluates Catmull-Clark subdivision, the smoothing
// refinement attached to generated meshes as a SUBSURF modifier.
package subsurf

import (
	"fmt"

	"survivor-meshgen/internal/mathutil"
	"survivor-meshgen/internal/mesh"
)

type edgeKey struct{ lo, hi int }

func key(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

type edgeInfo struct {
	index int
	faces []int
}

// Subdivide applies levels rounds of Catmull-Clark and returns a new mesh;
// m is not modified. Level 0 returns a clone. Every output face is a quad.
//
// Boundary edges take their midpoint and boundary vertices use the crease
// rule (1/8, 3/4, 1/8), so open tubes keep their rims. Vertices touched by
// no face are carried over unchanged.
func Subdivide(m *mesh.Mesh, levels int) *mesh.Mesh {
	out := m.Clone()
	for i := 0; i < levels; i++ {
		out = step(out)
	}
	return out
}

func step(m *mesh.Mesh) *mesh.Mesh {
	nv := len(m.Verts)

	facePts := make([]mathutil.Vec3, len(m.Faces))
	for fi := range m.Faces {
		facePts[fi] = m.FaceCenter(fi)
	}

	edges := make(map[edgeKey]*edgeInfo)
	var order []edgeKey
	for fi, f := range m.Faces {
		for k := range f.V {
			ek := key(f.V[k], f.V[(k+1)%len(f.V)])
			e, ok := edges[ek]
			if !ok {
				e = &edgeInfo{index: len(order)}
				edges[ek] = e
				order = append(order, ek)
			}
			e.faces = append(e.faces, fi)
		}
	}

	edgePts := make([]mathutil.Vec3, len(order))
	for i, ek := range order {
		e := edges[ek]
		mid := m.Verts[ek.lo].Add(m.Verts[ek.hi]).Scale(0.5)
		if len(e.faces) == 2 {
			fp := facePts[e.faces[0]].Add(facePts[e.faces[1]]).Scale(0.5)
			edgePts[i] = mid.Add(fp).Scale(0.5)
		} else {
			edgePts[i] = mid
		}
	}

	// per-vertex accumulators
	type acc struct {
		faceSum mathutil.Vec3
		nFaces  int
		edgeSum mathutil.Vec3 // sum of incident edge midpoints
		nEdges  int
		rimSum  mathutil.Vec3 // sum of incident boundary edge midpoints
		nRim    int
	}
	accs := make([]acc, nv)
	for fi, f := range m.Faces {
		for _, v := range f.V {
			accs[v].faceSum = accs[v].faceSum.Add(facePts[fi])
			accs[v].nFaces++
		}
	}
	for _, ek := range order {
		e := edges[ek]
		mid := m.Verts[ek.lo].Add(m.Verts[ek.hi]).Scale(0.5)
		for _, v := range []int{ek.lo, ek.hi} {
			accs[v].edgeSum = accs[v].edgeSum.Add(mid)
			accs[v].nEdges++
			if len(e.faces) != 2 {
				accs[v].rimSum = accs[v].rimSum.Add(mid)
				accs[v].nRim++
			}
		}
	}

	out := mesh.New(m.Name)
	for v := 0; v < nv; v++ {
		p := m.Verts[v]
		a := accs[v]
		switch {
		case a.nFaces == 0:
			out.AddVertex(p)
		case a.nRim == 2:
			// (m1 + m2)/4 + P/2 == (A + B)/8 + 3P/4
			out.AddVertex(a.rimSum.Scale(0.25).Add(p.Scale(0.5)))
		case a.nRim > 0:
			// corner of a non-manifold fan: pin it
			out.AddVertex(p)
		default:
			n := float64(a.nFaces)
			f := a.faceSum.Scale(1 / n)
			r := a.edgeSum.Scale(1 / float64(a.nEdges))
			out.AddVertex(f.Add(r.Scale(2)).Add(p.Scale(n - 3)).Scale(1 / n))
		}
	}
	edgeBase := out.AddVertices(edgePts)
	faceBase := out.AddVertices(facePts)

	for fi, f := range m.Faces {
		n := len(f.V)
		for k := 0; k < n; k++ {
			prev := f.V[(k+n-1)%n]
			cur := f.V[k]
			next := f.V[(k+1)%n]
			// every child quad has its own face point, so none can collide
			added, err := out.AddFace(
				cur,
				edgeBase[edges[key(cur, next)].index],
				faceBase[fi],
				edgeBase[edges[key(prev, cur)].index],
			)
			if err != nil || !added {
				panic(fmt.Sprintf("subsurf: child %d of face %d rejected: %v", k, fi, err))
			}
		}
	}
	return out
}
