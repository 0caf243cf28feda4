// Package kernel holds the flat triangle mesh produced by tessellation.
package kernel

import (
	"math"

	"github.com/chazu/cadkit/pkg/geom"
)

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // layer the triangles came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// AddTriangle appends the triangle abc with its own three vertices and the
// face normal (b-a)x(c-a). A degenerate triangle gets a zero normal.
func (m *Mesh) AddTriangle(a, b, c geom.Vector3D) {
	n := b.Sub(a).Cross(c.Sub(a))
	if l := n.Length(); l > 0 {
		n = n.Div(l)
	} else {
		n = geom.Zero
	}

	base := uint32(m.VertexCount())
	for i, p := range []geom.Vector3D{a, b, c} {
		m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
		m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		m.Indices = append(m.Indices, base+uint32(i))
	}
}

// Vertex returns vertex i.
func (m *Mesh) Vertex(i int) geom.Vector3D {
	return geom.NewVector3D(float64(m.Vertices[3*i]), float64(m.Vertices[3*i+1]), float64(m.Vertices[3*i+2]))
}

// BoundingBox returns the axis-aligned bounds of the vertices. An empty mesh
// has zero bounds.
func (m *Mesh) BoundingBox() (min, max geom.Vector3D) {
	if m.IsEmpty() {
		return geom.Zero, geom.Zero
	}
	min = geom.NewVector3D(math.Inf(1), math.Inf(1), math.Inf(1))
	max = geom.NewVector3D(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		min = geom.NewVector3D(math.Min(min.X, v.X), math.Min(min.Y, v.Y), math.Min(min.Z, v.Z))
		max = geom.NewVector3D(math.Max(max.X, v.X), math.Max(max.Y, v.Y), math.Max(max.Z, v.Z))
	}
	return min, max
}
