package geom_test

import (
	"math"
	"testing"

	"github.com/chazu/cadkit/pkg/geom"
	"github.com/stretchr/testify/require"
)

func TestArbitraryAxis(t *testing.T) {
	tests := []struct {
		name   string
		normal geom.Vector3D
		wantX  geom.Vector3D
	}{
		{"world z", geom.ZAxis, geom.XAxis},
		{"scaled world z", v(0, 0, 5), geom.XAxis},
		{"negative z", v(0, 0, -1), v(-1, 0, 0)},
		{"world x", geom.XAxis, geom.YAxis},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := geom.NewCoordinateSystem3D(geom.Zero, tt.normal)
			require.True(t, cs.BaseX.EqualsTol(tol, tt.wantX), "BaseX = %s", cs.BaseX)
			require.True(t, cs.BaseZ.EqualsTol(tol, tt.normal.Normalized()))
			require.InDelta(t, 0, cs.BaseX.Dot(cs.BaseY), tol)
			require.InDelta(t, 1, cs.Basis().Determinant(), tol)
		})
	}
}

func TestZeroNormalFallsBackToWorld(t *testing.T) {
	cs := geom.NewCoordinateSystem3D(geom.Zero, geom.Zero)
	require.True(t, cs.Basis().EqualsTol(tol, geom.WCS.Basis()))
}

func TestToWCSAndBack(t *testing.T) {
	cs := geom.NewCoordinateSystem3D(v(10, -2, 3), v(1, 1, 1))
	p := v(1, 2, 3)

	w := cs.ToWCS(p)
	require.True(t, cs.ToUCS(w).EqualsTol(tol, p))
	require.True(t, cs.ToWCS(geom.Zero).EqualsTol(tol, cs.Origin))
}

func TestRotate(t *testing.T) {
	cs := geom.NewCoordinateSystem3D(v(5, 0, 0), geom.ZAxis).Rotate(geom.ZAxis, math.Pi/2)

	require.True(t, cs.BaseX.EqualsTol(tol, geom.YAxis), "BaseX = %s", cs.BaseX)
	require.True(t, cs.BaseY.EqualsTol(tol, geom.XAxis.Neg()), "BaseY = %s", cs.BaseY)
	require.True(t, cs.BaseZ.EqualsTol(tol, geom.ZAxis))
	require.True(t, cs.ToWCS(v(1, 0, 0)).EqualsTol(tol, v(5, 1, 0)))
}

func TestObjectToWorld(t *testing.T) {
	require.True(t, geom.ObjectToWorld(geom.ZAxis, v(1, 2, 3)).EqualsTol(tol, v(1, 2, 3)))

	// Normal -Z mirrors X.
	require.True(t, geom.ObjectToWorld(v(0, 0, -1), v(1, 2, 3)).EqualsTol(tol, v(-1, 2, -3)))
}
