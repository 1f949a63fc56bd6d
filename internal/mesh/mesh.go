// Package mesh is the in-memory polygon kernel the generators build into:
// vertex/face storage with insert-or-skip face creation, ring primitives,
// winding repair and origin handling.
package mesh

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"survivor-meshgen/internal/mathutil"
)

// ErrBadFace is returned for faces that can never be valid (too few corners,
// repeated corners or indices outside the vertex array).
var ErrBadFace = errors.New("mesh: bad face")

// Face is an ordered polygon; corners index into Mesh.Verts. Order defines winding.
type Face struct {
	V []int
}

// Mesh holds vertices and polygon faces (triangles, quads and n-gon caps).
type Mesh struct {
	Name  string
	Verts []mathutil.Vec3
	Faces []Face

	// keyed by the sorted corner set, so a face is a duplicate regardless of winding
	index map[string]int
}

// New returns an empty mesh.
func New(name string) *Mesh {
	return &Mesh{Name: name, index: make(map[string]int)}
}

// AddVertex appends p and returns its index.
func (m *Mesh) AddVertex(p mathutil.Vec3) int {
	m.Verts = append(m.Verts, p)
	return len(m.Verts) - 1
}

// AddVertices appends pts in order and returns their indices.
func (m *Mesh) AddVertices(pts []mathutil.Vec3) []int {
	idx := make([]int, len(pts))
	for i, p := range pts {
		idx[i] = m.AddVertex(p)
	}
	return idx
}

// AddFace inserts a face unless one with the same corner set already exists.
// A duplicate is not an error: it returns added=false and leaves the mesh unchanged.
func (m *Mesh) AddFace(corners ...int) (added bool, err error) {
	if len(corners) < 3 {
		return false, fmt.Errorf("%w: %d corners", ErrBadFace, len(corners))
	}
	for i, c := range corners {
		if c < 0 || c >= len(m.Verts) {
			return false, fmt.Errorf("%w: vertex %d out of range [0,%d)", ErrBadFace, c, len(m.Verts))
		}
		for _, d := range corners[:i] {
			if c == d {
				return false, fmt.Errorf("%w: vertex %d repeated", ErrBadFace, c)
			}
		}
	}

	if m.index == nil {
		m.reindex()
	}
	key := faceKey(corners)
	if _, exists := m.index[key]; exists {
		return false, nil
	}
	m.index[key] = len(m.Faces)
	m.Faces = append(m.Faces, Face{V: slices.Clone(corners)})
	return true, nil
}

// HasFace reports whether a face over exactly these corners exists, in any order.
func (m *Mesh) HasFace(corners ...int) bool {
	if m.index == nil {
		m.reindex()
	}
	_, ok := m.index[faceKey(corners)]
	return ok
}

func (m *Mesh) reindex() {
	m.index = make(map[string]int, len(m.Faces))
	for i, f := range m.Faces {
		m.index[faceKey(f.V)] = i
	}
}

func faceKey(corners []int) string {
	s := slices.Clone(corners)
	slices.Sort(s)
	var b strings.Builder
	for i, c := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(c))
	}
	return b.String()
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	c := New(m.Name)
	c.Verts = slices.Clone(m.Verts)
	c.Faces = make([]Face, len(m.Faces))
	for i, f := range m.Faces {
		c.Faces[i] = Face{V: slices.Clone(f.V)}
	}
	c.reindex()
	return c
}

// Translate moves every vertex by d.
func (m *Mesh) Translate(d mathutil.Vec3) {
	for i := range m.Verts {
		m.Verts[i] = m.Verts[i].Add(d)
	}
}

// Bounds returns the axis-aligned bounding box. ok is false for an empty mesh.
func (m *Mesh) Bounds() (lo, hi mathutil.Vec3, ok bool) {
	if len(m.Verts) == 0 {
		return lo, hi, false
	}
	lo = mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Verts {
		lo = lo.Min(v)
		hi = hi.Max(v)
	}
	return lo, hi, true
}

// FaceNormal returns the Newell normal of face i, scaled by twice its area.
func (m *Mesh) FaceNormal(i int) mathutil.Vec3 {
	v := m.Faces[i].V
	var n mathutil.Vec3
	for k := range v {
		a := m.Verts[v[k]]
		b := m.Verts[v[(k+1)%len(v)]]
		n[0] += (a[1] - b[1]) * (a[2] + b[2])
		n[1] += (a[2] - b[2]) * (a[0] + b[0])
		n[2] += (a[0] - b[0]) * (a[1] + b[1])
	}
	return n
}

// FaceCenter returns the centroid of face i's corners.
func (m *Mesh) FaceCenter(i int) mathutil.Vec3 {
	v := m.Faces[i].V
	var c mathutil.Vec3
	for _, idx := range v {
		c = c.Add(m.Verts[idx])
	}
	return c.Scale(1 / float64(len(v)))
}

// Triangles fan-triangulates every face. Caps and quads are convex, so the fan is exact.
func (m *Mesh) Triangles() [][3]int {
	var tris [][3]int
	for _, f := range m.Faces {
		for k := 1; k+1 < len(f.V); k++ {
			tris = append(tris, [3]int{f.V[0], f.V[k], f.V[k+1]})
		}
	}
	return tris
}

// Stats is a vertex/face/triangle tally.
type Stats struct {
	Vertices  int
	Faces     int
	Triangles int
	Quads     int
	NGons     int
}

// Stats counts the mesh's elements by face size.
func (m *Mesh) Stats() Stats {
	s := Stats{Vertices: len(m.Verts), Faces: len(m.Faces)}
	for _, f := range m.Faces {
		switch len(f.V) {
		case 3:
			s.Triangles++
		case 4:
			s.Quads++
		default:
			s.NGons++
		}
	}
	return s
}
