package drawing

import (
	"strconv"
	"strings"

	"github.com/chazu/cadkit/pkg/geom"
)

// Star returns three axis-aligned lines of length l crossing at center.
func Star(center geom.Vector3D, l float64) []*Line {
	h := l / 2
	out := make([]*Line, 0, 3)
	for _, axis := range []geom.Vector3D{geom.XAxis, geom.YAxis, geom.ZAxis} {
		d := axis.Scale(h)
		out = append(out, NewLine(center.Sub(d), center.Add(d)))
	}
	return out
}

// Cube is Cuboid with equal sides.
func Cube(center geom.Vector3D, l float64) []*Face3d {
	return Cuboid(center, geom.NewVector3D(l, l, l))
}

// Cuboid returns the six quad faces of the box centered at center, in order
// front, back, left, right, bottom, top.
func Cuboid(center, size geom.Vector3D) []*Face3d {
	corner := center.Sub(size.Div(2))

	// m[x][y][z] is the corner selected by 0/1 on each axis.
	var m [2][2][2]geom.Vector3D
	for xi := 0; xi < 2; xi++ {
		for yi := 0; yi < 2; yi++ {
			for zi := 0; zi < 2; zi++ {
				m[xi][yi][zi] = corner.Add(size.Scalar(float64(xi), float64(yi), float64(zi)))
			}
		}
	}

	return []*Face3d{
		NewFace3d(m[0][0][0], m[1][0][0], m[1][0][1], m[0][0][1]), // front
		NewFace3d(m[0][1][0], m[0][1][1], m[1][1][1], m[1][1][0]), // back
		NewFace3d(m[0][0][0], m[0][0][1], m[0][1][1], m[0][1][0]), // left
		NewFace3d(m[1][0][0], m[1][1][0], m[1][1][1], m[1][0][1]), // right
		NewFace3d(m[0][0][0], m[0][1][0], m[1][1][0], m[1][0][0]), // bottom
		NewFace3d(m[0][0][1], m[1][0][1], m[1][1][1], m[0][1][1]), // top
	}
}

// DrawStar adds a Star to c.
func DrawStar(c Container, center geom.Vector3D, l float64, layer *Layer) []*Line {
	lines := Star(center, l)
	for _, e := range lines {
		AddEntity(c, e, layer)
	}
	return lines
}

// DrawCube adds a Cube to c.
func DrawCube(c Container, center geom.Vector3D, l float64, layer *Layer) []*Face3d {
	return DrawCuboid(c, center, geom.NewVector3D(l, l, l), layer)
}

// DrawCuboid adds a Cuboid to c.
func DrawCuboid(c Container, center, size geom.Vector3D, layer *Layer) []*Face3d {
	faces := Cuboid(center, size)
	for _, e := range faces {
		AddEntity(c, e, layer)
	}
	return faces
}

// CadScript renders the face as a FACE command line,
// "FACE x,y,z x,y,z x,y,z[ x,y,z]\n".
func (e *Face3d) CadScript() string {
	var b strings.Builder
	b.WriteString("FACE")
	for _, p := range e.Corners() {
		b.WriteByte(' ')
		b.WriteString(scriptFloat(p.X))
		b.WriteByte(',')
		b.WriteString(scriptFloat(p.Y))
		b.WriteByte(',')
		b.WriteString(scriptFloat(p.Z))
	}
	b.WriteByte('\n')
	return b.String()
}

func scriptFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
