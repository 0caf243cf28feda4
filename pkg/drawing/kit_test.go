package drawing_test

import (
	"testing"

	"github.com/chazu/cadkit/pkg/drawing"
	"github.com/chazu/cadkit/pkg/geom"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func TestStar(t *testing.T) {
	c := geom.NewVector3D(1, 2, 3)
	lines := drawing.Star(c, 4)
	require.Len(t, lines, 3)

	for i, l := range lines {
		seg := l.Line3D()
		require.InDelta(t, 4, seg.Length(), tol, "line %d", i)
		require.True(t, seg.SegmentContainsPoint(tol, c), "line %d misses center", i)
	}
	require.Equal(t, geom.NewVector3D(-1, 2, 3), lines[0].Start)
	require.Equal(t, geom.NewVector3D(1, 2, 5), lines[2].End)
}

func TestCuboid(t *testing.T) {
	faces := drawing.Cuboid(geom.NewVector3D(1, 1, 1), geom.NewVector3D(2, 4, 6))
	require.Len(t, faces, 6)

	front, top := faces[0], faces[5]
	require.Equal(t, geom.NewVector3D(0, -1, -2), front.First)
	require.Equal(t, geom.NewVector3D(2, -1, -2), front.Second)
	require.Equal(t, geom.NewVector3D(0, -1, 4), top.First)
	require.Equal(t, geom.NewVector3D(0, 3, 4), top.Fourth)

	for _, f := range faces {
		require.True(t, f.HasFourth)
	}
}

func TestDrawCubeAddsToContainer(t *testing.T) {
	doc := drawing.New()
	layer := doc.Layer("solids")

	faces := drawing.DrawCube(doc, geom.Zero, 2, layer)
	require.Len(t, faces, 6)
	require.Len(t, doc.Faces(), 6)
	require.Same(t, layer, doc.Faces()[3].Layer())

	b := drawing.NewBlock("marker")
	drawing.DrawStar(b, geom.Zero, 1, nil)
	require.Len(t, b.Entities, 3)
}

func TestCadScript(t *testing.T) {
	tri := drawing.NewFace3d(geom.Zero, geom.NewVector3D(1, 0, 0), geom.NewVector3D(0, 0.5, -2))
	require.Equal(t, "FACE 0,0,0 1,0,0 0,0.5,-2\n", tri.CadScript())

	quad := drawing.Cube(geom.Zero, 2)[0]
	require.Equal(t, "FACE -1,-1,-1 1,-1,-1 1,-1,1 -1,-1,1\n", quad.CadScript())
}

func TestPolylineMidPoint(t *testing.T) {
	tests := []struct {
		name   string
		pl     *drawing.Polyline
		want   geom.Vector3D
		wantOK bool
	}{
		{
			name:   "single segment",
			pl:     drawing.NewPolyline(false, geom.Zero, geom.NewVector3D(4, 0, 0)),
			want:   geom.NewVector3D(2, 0, 0),
			wantOK: true,
		},
		{
			name: "L shape",
			pl: drawing.NewPolyline(false,
				geom.Zero, geom.NewVector3D(3, 0, 0), geom.NewVector3D(3, 5, 0)),
			want:   geom.NewVector3D(3, 1, 0),
			wantOK: true,
		},
		{
			name: "closed square",
			pl: drawing.NewPolyline(true,
				geom.Zero, geom.NewVector3D(1, 0, 0), geom.NewVector3D(1, 1, 0), geom.NewVector3D(0, 1, 0)),
			want:   geom.NewVector3D(1, 1, 0),
			wantOK: true,
		},
		{
			name: "single vertex",
			pl:   drawing.NewPolyline(false, geom.Zero),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.pl.MidPoint()
			require.Equal(t, tt.wantOK, ok)
			if ok {
				require.True(t, got.EqualsTol(tol, tt.want), "got %s", got)
			}
		})
	}
}

func TestLwPolylineCoords(t *testing.T) {
	lw := drawing.NewLwPolyline(false,
		drawing.LwPolylineVertex{X: 1, Y: 2},
		drawing.LwPolylineVertex{X: 3, Y: 4},
	)
	lw.Elevation = 5

	pts := lw.Vector3DCoords()
	require.Equal(t, geom.NewVector3D(1, 2, 5), pts[0])

	lw.Normal = geom.NewVector3D(0, 0, -1)
	pts = lw.Vector3DCoords()
	require.True(t, pts[1].EqualsTol(tol, geom.NewVector3D(-3, 4, -5)), "got %s", pts[1])
}

func TestSegmentsAndLength(t *testing.T) {
	pts := []geom.Vector3D{geom.Zero, geom.NewVector3D(3, 4, 0), geom.NewVector3D(3, 4, 2)}
	require.Len(t, drawing.Segments(pts), 2)
	require.InDelta(t, 7, drawing.PolylineLength(pts), tol)
	require.Nil(t, drawing.Segments(pts[:1]))
}
