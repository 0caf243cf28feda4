package kernel

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
)

// Triangles returns the mesh triangles in index order.
func (m *Mesh) Triangles() []*sdf.Triangle3 {
	out := make([]*sdf.Triangle3, 0, m.TriangleCount())
	for t := 0; t < m.TriangleCount(); t++ {
		var tri sdf.Triangle3
		for j := 0; j < 3; j++ {
			tri[j] = m.Vertex(int(m.Indices[3*t+j])).V3()
		}
		out = append(out, &tri)
	}
	return out
}

// SaveSTL writes the triangles of all meshes into one binary STL file.
func SaveSTL(path string, meshes ...*Mesh) error {
	var tris []*sdf.Triangle3
	for _, m := range meshes {
		tris = append(tris, m.Triangles()...)
	}
	if err := render.SaveSTL(path, tris); err != nil {
		return fmt.Errorf("kernel: save stl %s: %w", path, err)
	}
	return nil
}
