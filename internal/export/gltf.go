package export

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"survivor-meshgen/internal/material"
	"survivor-meshgen/internal/mathutil"
	"survivor-meshgen/internal/mesh"
	"survivor-meshgen/internal/scene"
)

// Generator is stamped into the glTF asset header.
const Generator = "survivor-meshgen"

// writeGLTF writes one node per object, keeping the parent hierarchy and
// local TRS. Mesh data stays in object space; faces are fan-triangulated
// with flat normals, so every triangle owns its three vertices.
func writeGLTF(path string, scn *scene.Scene, opts Options, axis axisConv, binary bool) error {
	doc := gltf.NewDocument()
	doc.Asset.Generator = Generator

	objs := scn.Objects()
	nodeOf := make(map[*scene.Object]uint32, len(objs))
	matOf := make(map[*material.Material]uint32)

	for i, obj := range objs {
		nodeOf[obj] = uint32(i)
		node := &gltf.Node{Name: obj.Name}
		node.Translation, node.Rotation, node.Scale = nodeTRS(obj, axis)

		if obj.Kind == scene.KindMesh {
			if m := geometry(obj, opts); m != nil && len(m.Faces) > 0 {
				prim := writePrimitive(doc, m, axis)
				if obj.Material != nil {
					idx, ok := matOf[obj.Material]
					if !ok {
						idx = uint32(len(doc.Materials))
						doc.Materials = append(doc.Materials, pbr(obj.Material))
						matOf[obj.Material] = idx
					}
					prim.Material = gltf.Index(idx)
				}
				doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: obj.Name, Primitives: []*gltf.Primitive{prim}})
				node.Mesh = gltf.Index(uint32(len(doc.Meshes) - 1))
			}
		}
		doc.Nodes = append(doc.Nodes, node)
	}

	for _, obj := range objs {
		idx := nodeOf[obj]
		if obj.Parent == nil {
			doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, idx)
			continue
		}
		parent := doc.Nodes[nodeOf[obj.Parent]]
		parent.Children = append(parent.Children, idx)
	}

	var err error
	if binary {
		err = gltf.SaveBinary(doc, path)
	} else {
		if len(doc.Buffers) > 0 {
			doc.Buffers[0].EmbeddedResource()
		}
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

// nodeTRS converts obj's local transform. Under a basis change C every local
// matrix becomes C·M·C⁻¹: translation maps like a point, rotation through the
// quaternion component swap and scale swaps its Y and Z factors.
func nodeTRS(obj *scene.Object, axis axisConv) (t [3]float32, r [4]float32, s [3]float32) {
	loc, sc := obj.Location, obj.Scale
	q := mathutil.EulerToQuat(obj.Rotation[0], obj.Rotation[1], obj.Rotation[2])
	if axis.yUp {
		loc = axis.point(loc)
		q = q.ZUpToYUp()
		sc = mathutil.Vec3{sc[0], sc[2], sc[1]}
	}
	return loc.Float32(), q.Float32(), sc.Float32()
}

func writePrimitive(doc *gltf.Document, m *mesh.Mesh, axis axisConv) *gltf.Primitive {
	tris := m.Triangles()
	positions := make([][3]float32, 0, 3*len(tris))
	normals := make([][3]float32, 0, 3*len(tris))
	indices := make([]uint32, 0, 3*len(tris))

	for fi, face := range m.Faces {
		n := axis.point(m.FaceNormal(fi).Normalize()).Float32()
		for k := 1; k+1 < len(face.V); k++ {
			for _, c := range [3]int{face.V[0], face.V[k], face.V[k+1]} {
				indices = append(indices, uint32(len(positions)))
				positions = append(positions, axis.point(m.Verts[c]).Float32())
				normals = append(normals, n)
			}
		}
	}

	return &gltf.Primitive{
		Attributes: map[string]uint32{
			gltf.POSITION: uint32(modeler.WritePosition(doc, positions)),
			gltf.NORMAL:   uint32(modeler.WriteNormal(doc, normals)),
		},
		Indices: gltf.Index(uint32(modeler.WriteIndices(doc, indices))),
	}
}

func pbr(m *material.Material) *gltf.Material {
	base := [4]float32(m.BaseColor)
	mode := gltf.AlphaOpaque
	if base[3] < 1 {
		mode = gltf.AlphaBlend
	}
	return &gltf.Material{
		Name:      m.Name,
		AlphaMode: mode,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &base,
			MetallicFactor:  gltf.Float(m.Metallic),
			RoughnessFactor: gltf.Float(m.Roughness),
		},
	}
}
