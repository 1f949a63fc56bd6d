package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"survivor-meshgen/internal/material"
	"survivor-meshgen/internal/scene"
)

// writeOBJ writes world-space geometry, one "o" block per mesh object, and a
// sibling .mtl when any object carries a material.
func writeOBJ(path string, scn *scene.Scene, opts Options, axis axisConv) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	var mats []*material.Material
	seen := make(map[*material.Material]bool)
	for _, obj := range scn.OfKind(scene.KindMesh) {
		if obj.Material != nil && !seen[obj.Material] {
			seen[obj.Material] = true
			mats = append(mats, obj.Material)
		}
	}

	mtlName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".mtl"
	fmt.Fprintf(w, "# survivor-meshgen, %s-up\n", axis.label)
	if len(mats) > 0 {
		fmt.Fprintf(w, "mtllib %s\n", mtlName)
	}

	base := 1
	for _, obj := range scn.OfKind(scene.KindMesh) {
		m := geometry(obj, opts)
		world := obj.World()
		fmt.Fprintf(w, "o %s\n", obj.Name)
		for _, v := range m.Verts {
			p := axis.point(world.MulPoint(v))
			fmt.Fprintf(w, "v %.6f %.6f %.6f\n", p[0], p[1], p[2])
		}
		if obj.Material != nil {
			fmt.Fprintf(w, "usemtl %s\n", obj.Material.Name)
		}
		w.WriteString("s off\n")
		for _, face := range m.Faces {
			w.WriteString("f")
			for _, idx := range face.V {
				fmt.Fprintf(w, " %d", base+idx)
			}
			w.WriteByte('\n')
		}
		base += len(m.Verts)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}

	if len(mats) == 0 {
		return nil
	}
	return writeMTL(filepath.Join(filepath.Dir(path), mtlName), mats)
}

func writeMTL(path string, mats []*material.Material) error {
	var b strings.Builder
	b.WriteString("# survivor-meshgen\n")
	for _, m := range mats {
		c := m.BaseColor
		rough := float64(m.Roughness)
		fmt.Fprintf(&b, "\nnewmtl %s\n", m.Name)
		fmt.Fprintf(&b, "Kd %.4f %.4f %.4f\n", c[0], c[1], c[2])
		fmt.Fprintf(&b, "d %.4f\n", c[3])
		fmt.Fprintf(&b, "Ns %.4f\n", (1-rough)*(1-rough)*1000)
		fmt.Fprintf(&b, "Pr %.4f\n", rough)
		fmt.Fprintf(&b, "Pm %.4f\n", m.Metallic)
		b.WriteString("illum 2\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
