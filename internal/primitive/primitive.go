// Package primitive builds the unit primitives the placeholder character is
// assembled from. Sizes follow the usual DCC defaults: radius 1, edge 2.
package primitive

import (
	"fmt"
	"math"

	"survivor-meshgen/internal/mathutil"
	"survivor-meshgen/internal/mesh"
)

// UVSphere returns a radius-1 sphere with segments meridians and rings
// latitude bands: quads between latitudes and triangle fans at the poles.
func UVSphere(name string, segments, rings int) (*mesh.Mesh, error) {
	if segments < 3 || rings < 2 {
		return nil, fmt.Errorf("primitive: uv sphere needs segments >= 3 and rings >= 2, got %d/%d", segments, rings)
	}
	m := mesh.New(name)
	top := m.AddVertex(mathutil.Vec3{0, 0, 1})

	var lats [][]int
	for i := 1; i < rings; i++ {
		phi := math.Pi * float64(i) / float64(rings)
		r := math.Sin(phi)
		pts, ok := mesh.EllipseRing(mathutil.Vec3{0, 0, math.Cos(phi)}, r, r, segments)
		if !ok {
			return nil, fmt.Errorf("primitive: uv sphere latitude %d collapsed", i)
		}
		lats = append(lats, m.AddVertices(pts))
	}
	bottom := m.AddVertex(mathutil.Vec3{0, 0, -1})

	if err := fan(m, top, lats[0]); err != nil {
		return nil, err
	}
	if _, err := mesh.BridgeChain(m, lats); err != nil {
		return nil, err
	}
	if err := fan(m, bottom, lats[len(lats)-1]); err != nil {
		return nil, err
	}
	mesh.MakeNormalsConsistent(m)
	return m, nil
}

// Cube returns the axis-aligned cube spanning [-1, 1] on every axis.
func Cube(name string) *mesh.Mesh {
	m := mesh.New(name)
	m.AddVertices([]mathutil.Vec3{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	})
	for _, f := range [][]int{
		{0, 3, 2, 1}, {4, 5, 6, 7},
		{0, 1, 5, 4}, {1, 2, 6, 5},
		{2, 3, 7, 6}, {3, 0, 4, 7},
	} {
		if added, err := m.AddFace(f...); err != nil || !added {
			panic(fmt.Sprintf("primitive: cube face %v rejected: %v", f, err))
		}
	}
	return m
}

// Cylinder returns a radius-1, depth-2 cylinder along Z with n-gon caps.
func Cylinder(name string, vertices int) (*mesh.Mesh, error) {
	if vertices < 3 {
		return nil, fmt.Errorf("primitive: cylinder needs >= 3 vertices, got %d", vertices)
	}
	m := mesh.New(name)
	var rings [][]int
	for _, z := range []float64{-1, 1} {
		pts, _ := mesh.EllipseRing(mathutil.Vec3{0, 0, z}, 1, 1, vertices)
		rings = append(rings, m.AddVertices(pts))
	}
	if _, err := mesh.Bridge(m, rings[0], rings[1]); err != nil {
		return nil, err
	}
	for _, r := range rings {
		if _, err := mesh.Cap(m, r); err != nil {
			return nil, err
		}
	}
	mesh.MakeNormalsConsistent(m)
	return m, nil
}

func fan(m *mesh.Mesh, apex int, ring []int) error {
	for i := range ring {
		if _, err := m.AddFace(apex, ring[i], ring[(i+1)%len(ring)]); err != nil {
			return err
		}
	}
	return nil
}
