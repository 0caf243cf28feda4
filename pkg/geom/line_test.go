package geom_test

import (
	"testing"

	"github.com/chazu/cadkit/pkg/geom"
	"github.com/stretchr/testify/require"
)

func v(x, y, z float64) geom.Vector3D { return geom.NewVector3D(x, y, z) }

func TestIntersect(t *testing.T) {
	tests := []struct {
		name   string
		a, b   geom.Line3D
		want   geom.Vector3D
		wantOK bool
	}{
		{
			name:   "crossing in XY",
			a:      geom.NewLine3D(v(0, 0, 0), v(1, 0, 0)),
			b:      geom.NewLine3D(v(0, 1, 0), v(0, -1, 0)),
			want:   v(0, 0, 0),
			wantOK: true,
		},
		{
			name:   "XY degenerate falls through to XZ",
			a:      geom.XAxisLine,
			b:      geom.NewLine3DPointVector(v(0, 0, 1), v(0, 0, -1)),
			want:   v(0, 0, 0),
			wantOK: true,
		},
		{
			name:   "off-origin crossing",
			a:      geom.NewLine3D(v(1, 1, 2), v(3, 3, 2)),
			b:      geom.NewLine3D(v(1, 3, 2), v(3, 1, 2)),
			want:   v(2, 2, 2),
			wantOK: true,
		},
		{
			name: "parallel",
			a:    geom.NewLine3DPointVector(v(0, 0, 0), v(1, 0, 0)),
			b:    geom.NewLine3DPointVector(v(0, 1, 0), v(1, 0, 0)),
		},
		{
			name: "skew",
			a:    geom.XAxisLine,
			b:    geom.NewLine3DPointVector(v(0, 1, 1), v(0, -1, 0)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(tol, tt.b)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.True(t, got.EqualsTol(tol, tt.want), "got %s", got)
			}
		})
	}
}

func TestSegmentContainsPoint(t *testing.T) {
	l := geom.NewLine3D(v(0, 0, 0), v(1, 0, 0))

	require.True(t, l.SegmentContainsPoint(tol, l.From))
	require.True(t, l.SegmentContainsPoint(tol, l.To()))
	require.True(t, l.SegmentContainsXYZ(tol, 0.5, 0, 0))
	require.False(t, l.SegmentContainsPoint(tol, v(2, 0, 0)))
	require.False(t, l.SegmentContainsPoint(tol, v(-0.1, 0, 0)))

	// The infinite line still contains the point beyond To.
	require.True(t, l.LineContainsPoint(tol, v(2, 0, 0), false))
	require.True(t, l.LineContainsXYZ(tol, -3, 0, 0, false))
	require.False(t, l.LineContainsPoint(tol, v(0.5, 0.1, 0), false))
}

func TestLineContainsPointAxisSelection(t *testing.T) {
	// V.X is zero, so s is solved on Y and checked on all axes.
	l := geom.NewLine3D(v(1, 0, 0), v(1, 2, 2))

	require.True(t, l.LineContainsPoint(tol, v(1, 1, 1), true))
	require.False(t, l.LineContainsPoint(tol, v(1, 1, 0), true))
}

func TestLineContainsPointDegenerate(t *testing.T) {
	l := geom.NewLine3DPointVector(v(1, 2, 3), geom.Zero)

	require.True(t, l.LineContainsPoint(tol, v(1, 2, 3), false))
	require.True(t, l.SegmentContainsPoint(tol, v(1, 2, 3)))
	require.False(t, l.LineContainsPoint(tol, v(1, 2, 4), false))
}

func TestColinear(t *testing.T) {
	a := geom.NewLine3D(v(0, 0, 0), v(1, 0, 0))
	b := geom.NewLine3D(v(2, 0, 0), v(5, 0, 0))
	c := geom.NewLine3D(v(0, 1, 0), v(1, 1, 0))

	require.True(t, a.Colinear(tol, a))
	require.True(t, a.Colinear(tol, b))
	require.True(t, b.Colinear(tol, a))
	require.False(t, a.Colinear(tol, c))
}

func TestPerpendicular(t *testing.T) {
	_, ok := geom.XAxisLine.Perpendicular(tol, v(0.5, 0, 0))
	require.False(t, ok)

	p, ok := geom.XAxisLine.Perpendicular(tol, v(0, 1, 0))
	require.True(t, ok)
	require.True(t, p.From.EqualsTol(tol, v(0, 1, 0)))
	require.True(t, p.To().EqualsTol(tol, geom.Zero))
}

func TestLineBasics(t *testing.T) {
	l := geom.NewLine3D(v(1, 1, 1), v(4, 5, 1))

	require.InDelta(t, 5.0, l.Length(), tol)
	require.Equal(t, v(4, 5, 1), l.To())
	require.Equal(t, "(1,1,1)-(4,5,1)", l.String())
	require.Equal(t, geom.ZAxis, geom.ZAxisLine.V)
}
