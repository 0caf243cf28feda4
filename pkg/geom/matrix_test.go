package geom_test

import (
	"math"
	"testing"

	"github.com/chazu/cadkit/pkg/geom"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

// nonSingular is a handful of matrices with non-zero determinant.
var nonSingular = []struct {
	name string
	m    geom.Matrix3D
}{
	{"identity", geom.Identity3D()},
	{"diagonal", geom.NewMatrix3D(2, 0, 0, 0, 3, 0, 0, 0, 4)},
	{"dense", geom.NewMatrix3D(2, -1, 0, -1, 2, -1, 0, -1, 2)},
	{"asymmetric", geom.NewMatrix3D(1, 2, 3, 0, 1, 4, 5, 6, 0)},
	{"rotation", geom.FromVectorsAsRows(geom.YAxis, geom.XAxis.Neg(), geom.ZAxis)},
}

func TestNewMatrix3DShortTerms(t *testing.T) {
	m := geom.NewMatrix3D(1, 2, 3, 4)
	require.Equal(t, 1.0, m.At(0, 0))
	require.Equal(t, 4.0, m.At(1, 0))
	require.Equal(t, 0.0, m.At(1, 1))
	require.Equal(t, 0.0, m.At(2, 2))
}

func TestFromVectors(t *testing.T) {
	a := geom.NewVector3D(1, 2, 3)
	b := geom.NewVector3D(4, 5, 6)
	c := geom.NewVector3D(7, 8, 9)

	rows := geom.FromVectorsAsRows(a, b, c)
	cols := geom.FromVectorsAsColumns(a, b, c)

	require.Equal(t, b, rows.Row(1))
	require.Equal(t, b, cols.Column(1))
	require.True(t, rows.Transpose().EqualsTol(0, cols))
}

func TestWithRowLeavesReceiver(t *testing.T) {
	m := geom.Identity3D()
	n := m.WithRow(geom.NewVector3D(9, 9, 9), 0)

	require.Equal(t, 1.0, m.At(0, 0))
	require.Equal(t, 9.0, n.At(0, 2))
}

func TestDeterminant(t *testing.T) {
	tests := []struct {
		name string
		m    geom.Matrix3D
		want float64
	}{
		{"identity", geom.Identity3D(), 1},
		{"diagonal", geom.NewMatrix3D(2, 0, 0, 0, 3, 0, 0, 0, 4), 24},
		{"asymmetric", geom.NewMatrix3D(1, 2, 3, 0, 1, 4, 5, 6, 0), 1},
		{"singular", geom.NewMatrix3D(1, 2, 3, 4, 5, 6, 7, 8, 9), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, tt.m.Determinant(), tol)
		})
	}
}

func TestDeterminantTransposeInvariant(t *testing.T) {
	for _, tt := range nonSingular {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.m.Determinant(), tt.m.Transpose().Determinant(), tol)
		})
	}
}

func TestMinorAndCofactor(t *testing.T) {
	m := geom.NewMatrix3D(1, 2, 3, 0, 1, 4, 5, 6, 0)

	minor := m.Minor()
	require.True(t, minor.EqualsTol(tol, geom.NewMatrix3D(
		-24, -20, -5,
		-18, -15, -4,
		5, 4, 1,
	)), "minor = %s", minor)

	cof := m.Cofactor()
	require.True(t, cof.EqualsTol(tol, geom.NewMatrix3D(
		-24, 20, -5,
		18, -15, 4,
		5, -4, 1,
	)), "cofactor = %s", cof)

	// Row-major alternation coincides with the checkerboard for 3x3.
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			want := math.Pow(-1, float64(r+c)) * minor.At(r, c)
			require.InDelta(t, want, cof.At(r, c), tol)
		}
	}
}

func TestAdjointAndInverse(t *testing.T) {
	m := geom.NewMatrix3D(1, 2, 3, 0, 1, 4, 5, 6, 0)

	require.True(t, m.Adjoint().EqualsTol(tol, m.Cofactor().Transpose()))
	require.True(t, m.Inverse().EqualsTol(tol, m.Adjoint().DivScalar(m.Determinant())))
	require.True(t, m.Inverse().EqualsTol(tol, geom.NewMatrix3D(
		-24, 18, 5,
		20, -15, -4,
		-5, 4, 1,
	)))
}

func TestInverseKnown(t *testing.T) {
	require.True(t, geom.Identity3D().Inverse().EqualsTol(tol, geom.Identity3D()))

	d := geom.NewMatrix3D(2, 0, 0, 0, 3, 0, 0, 0, 4)
	want := geom.NewMatrix3D(0.5, 0, 0, 0, 1.0/3, 0, 0, 0, 0.25)
	require.True(t, d.Inverse().EqualsTol(tol, want), "got %s", d.Inverse())
}

func TestInverseRoundTrip(t *testing.T) {
	for _, tt := range nonSingular {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Mul(tt.m.Inverse())
			require.True(t, got.EqualsTol(tol, geom.Identity3D()), "M*M^-1 = %s", got)
		})
	}
}

func TestInverseSingularIsSilent(t *testing.T) {
	m := geom.NewMatrix3D(1, 2, 3, 4, 5, 6, 7, 8, 9)
	require.False(t, m.Inverse().IsFinite())

	_, err := m.InverseTol(tol)
	require.ErrorIs(t, err, geom.ErrSingular)

	_, err = m.SolveTol(tol, 1, 2, 3)
	require.ErrorIs(t, err, geom.ErrSingular)
}

func TestSolve(t *testing.T) {
	m := geom.NewMatrix3D(2, -1, 0, -1, 2, -1, 0, -1, 2)
	x := geom.NewVector3D(1, 2, 3)
	b := m.MulVector(x)

	require.True(t, m.Solve(b.X, b.Y, b.Z).EqualsTol(tol, x))

	got, err := m.SolveTol(tol, b.X, b.Y, b.Z)
	require.NoError(t, err)
	require.True(t, got.EqualsTol(tol, x))
}

func TestOperandOrder(t *testing.T) {
	m := geom.NewMatrix3D(1, 2, 3, 4, 5, 6, 7, 8, 9)
	v := geom.NewVector3D(1, 0, 0)

	// M·v picks the first column, vᵀ·M the first row.
	require.Equal(t, geom.NewVector3D(1, 4, 7), m.MulVector(v))
	require.Equal(t, geom.NewVector3D(1, 2, 3), geom.VectorMul(v, m))

	require.True(t, m.Scale(2).EqualsTol(0, geom.ScaleMatrix(2, m)))
	require.Equal(t, 0.5, m.DivScalar(2).At(0, 0))
	require.Equal(t, 2.0, geom.ScalarDiv(2, m).At(0, 0))
	require.Equal(t, 0.25, geom.ScalarDiv(2, m).At(2, 1))
}

func TestAddSubNeg(t *testing.T) {
	m := geom.NewMatrix3D(1, 2, 3, 4, 5, 6, 7, 8, 9)

	require.True(t, m.Add(m.Neg()).EqualsTol(0, geom.Matrix3D{}))
	require.True(t, m.Sub(m).EqualsTol(0, geom.Matrix3D{}))
	require.True(t, m.Add(m).EqualsTol(0, m.Scale(2)))
}

func TestMatrixString(t *testing.T) {
	require.Equal(t, "[1,0,0;0,1,0;0,0,1]", geom.Identity3D().String())
}
