// Package scene is the object namespace generated meshes are placed into:
// named objects with transforms, parenting, materials and a modifier stack.
//
// Builders never clear a scene themselves. Callers decide what to discard
// (Clear, ClearKind) and builders check their precondition.
package scene

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"survivor-meshgen/internal/material"
	"survivor-meshgen/internal/mathutil"
	"survivor-meshgen/internal/mesh"
)

// Kind is the object type.
type Kind int

const (
	KindMesh Kind = iota
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "MESH"
	case KindEmpty:
		return "EMPTY"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ModifierSubsurf is the Catmull-Clark smoothing modifier type.
const ModifierSubsurf = "SUBSURF"

// Modifier is a deferred evaluation stage on an object.
// Levels applies to the editable control mesh, RenderLevels to final renders.
type Modifier struct {
	Name         string
	Type         string
	Levels       int
	RenderLevels int
}

// Object is a named node in a scene.
type Object struct {
	ID       uuid.UUID
	Name     string
	Kind     Kind
	Mesh     *mesh.Mesh
	Material *material.Material
	Parent   *Object

	Location mathutil.Vec3
	Rotation mathutil.Vec3 // XYZ Euler, radians
	Scale    mathutil.Vec3

	Modifiers []Modifier
}

// Local returns T @ R @ S.
func (o *Object) Local() mathutil.Mat4 {
	return mathutil.ComposeTRS(o.Location, o.Rotation, o.Scale)
}

// World returns the object's transform composed with all its parents.
func (o *Object) World() mathutil.Mat4 {
	w := o.Local()
	for p := o.Parent; p != nil; p = p.Parent {
		w = mathutil.Mat4Mul(p.Local(), w)
	}
	return w
}

// Subsurf returns the first SUBSURF modifier, if any.
func (o *Object) Subsurf() (Modifier, bool) {
	for _, m := range o.Modifiers {
		if m.Type == ModifierSubsurf {
			return m, true
		}
	}
	return Modifier{}, false
}

// Scene owns a flat list of objects with unique names.
type Scene struct {
	objects []*Object
	names   map[string]*Object
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{names: make(map[string]*Object)}
}

// NewMesh links a mesh object with identity transform. The mesh takes the
// object's final name, which may carry a ".001"-style suffix on collision.
func (s *Scene) NewMesh(name string, m *mesh.Mesh) *Object {
	obj := s.link(name, KindMesh)
	obj.Mesh = m
	m.Name = obj.Name
	return obj
}

// NewEmpty links a transform-only object.
func (s *Scene) NewEmpty(name string) *Object {
	return s.link(name, KindEmpty)
}

func (s *Scene) link(name string, kind Kind) *Object {
	obj := &Object{
		ID:    uuid.New(),
		Name:  s.uniqueName(name),
		Kind:  kind,
		Scale: mathutil.Vec3{1, 1, 1},
	}
	s.objects = append(s.objects, obj)
	s.names[obj.Name] = obj
	return obj
}

func (s *Scene) uniqueName(name string) string {
	if _, taken := s.names[name]; !taken {
		return name
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s.%03d", name, i)
		if _, taken := s.names[candidate]; !taken {
			return candidate
		}
	}
}

// Get looks up an object by name.
func (s *Scene) Get(name string) (*Object, bool) {
	o, ok := s.names[name]
	return o, ok
}

// Objects returns objects in creation order.
func (s *Scene) Objects() []*Object {
	return slices.Clone(s.objects)
}

// OfKind returns objects of kind k in creation order.
func (s *Scene) OfKind(k Kind) []*Object {
	var out []*Object
	for _, o := range s.objects {
		if o.Kind == k {
			out = append(out, o)
		}
	}
	return out
}

// Len is the number of objects.
func (s *Scene) Len() int { return len(s.objects) }

// Children returns the direct children of parent in creation order.
func (s *Scene) Children(parent *Object) []*Object {
	var out []*Object
	for _, o := range s.objects {
		if o.Parent == parent {
			out = append(out, o)
		}
	}
	return out
}

// Clear removes every object.
func (s *Scene) Clear() {
	s.objects = nil
	s.names = make(map[string]*Object)
}

// ClearKind removes objects of kind k and returns how many went.
// Survivors parented to a removed object move up to its nearest kept ancestor.
func (s *Scene) ClearKind(k Kind) int {
	removed := make(map[*Object]bool)
	kept := s.objects[:0]
	for _, o := range s.objects {
		if o.Kind == k {
			removed[o] = true
			delete(s.names, o.Name)
			continue
		}
		kept = append(kept, o)
	}
	s.objects = kept
	for _, o := range s.objects {
		for o.Parent != nil && removed[o.Parent] {
			o.Parent = o.Parent.Parent
		}
	}
	return len(removed)
}

// SetParent parents child to parent without changing child's local transform.
func SetParent(child, parent *Object) error {
	for p := parent; p != nil; p = p.Parent {
		if p == child {
			return fmt.Errorf("scene: parenting %s to %s would create a cycle", child.Name, parent.Name)
		}
	}
	child.Parent = parent
	return nil
}

// SetOrigin moves obj's origin to the world-space point p without moving its
// geometry: vertices shift by the opposite amount. Only meaningful for
// unrotated, unscaled objects, which is all the generators produce before
// placement.
func SetOrigin(obj *Object, p mathutil.Vec3) {
	world := obj.World()
	current := world.MulPoint(mathutil.Vec3{})
	delta := p.Sub(current)
	if obj.Mesh != nil {
		obj.Mesh.Translate(delta.Scale(-1))
	}
	obj.Location = obj.Location.Add(delta)
}
