package geom

import (
	"fmt"
	"math"
	"strings"
)

// Matrix3D is an immutable 3x3 matrix stored row-major. The zero value is the
// zero matrix.
type Matrix3D struct {
	m [3][3]float64
}

// NewMatrix3D fills a matrix row-major from terms. Missing terms stay zero;
// extra terms are ignored.
func NewMatrix3D(terms ...float64) Matrix3D {
	var r Matrix3D
	for i, t := range terms {
		if i >= 9 {
			break
		}
		r.m[i/3][i%3] = t
	}
	return r
}

// Identity3D returns the 3x3 identity matrix.
func Identity3D() Matrix3D {
	return NewMatrix3D(
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	)
}

// FromVectorsAsRows builds a matrix whose rows are v1, v2, v3.
func FromVectorsAsRows(v1, v2, v3 Vector3D) Matrix3D {
	return Matrix3D{}.WithRow(v1, 0).WithRow(v2, 1).WithRow(v3, 2)
}

// FromVectorsAsColumns builds a matrix whose columns are v1, v2, v3.
func FromVectorsAsColumns(v1, v2, v3 Vector3D) Matrix3D {
	return Matrix3D{}.WithColumn(v1, 0).WithColumn(v2, 1).WithColumn(v3, 2)
}

// WithRow returns a copy of m with row i replaced by v.
func (m Matrix3D) WithRow(v Vector3D, i int) Matrix3D {
	m.m[i] = [3]float64{v.X, v.Y, v.Z}
	return m
}

// WithColumn returns a copy of m with column i replaced by v.
func (m Matrix3D) WithColumn(v Vector3D, i int) Matrix3D {
	m.m[0][i] = v.X
	m.m[1][i] = v.Y
	m.m[2][i] = v.Z
	return m
}

// At returns the entry at row r, column c.
func (m Matrix3D) At(r, c int) float64 {
	return m.m[r][c]
}

func (m Matrix3D) Row(i int) Vector3D {
	return Vector3D{m.m[i][0], m.m[i][1], m.m[i][2]}
}

func (m Matrix3D) Column(i int) Vector3D {
	return Vector3D{m.m[0][i], m.m[1][i], m.m[2][i]}
}

// ---------------------------------------------------------------------------
// Algebra
// ---------------------------------------------------------------------------

func (m Matrix3D) Transpose() Matrix3D {
	var r Matrix3D
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.m[j][i] = m.m[i][j]
		}
	}
	return r
}

// Determinant expands along the first row.
func (m Matrix3D) Determinant() float64 {
	d := m.m
	return d[0][0]*(d[1][1]*d[2][2]-d[1][2]*d[2][1]) -
		d[0][1]*(d[1][0]*d[2][2]-d[1][2]*d[2][0]) +
		d[0][2]*(d[1][0]*d[2][1]-d[1][1]*d[2][0])
}

// Minor returns the matrix of 2x2 minors: entry (r,c) is the determinant of
// the submatrix left after deleting row r and column c.
func (m Matrix3D) Minor() Matrix3D {
	d := m.m
	var r Matrix3D
	r.m[0][0] = d[1][1]*d[2][2] - d[1][2]*d[2][1]
	r.m[0][1] = d[1][0]*d[2][2] - d[1][2]*d[2][0]
	r.m[0][2] = d[1][0]*d[2][1] - d[1][1]*d[2][0]

	r.m[1][0] = d[0][1]*d[2][2] - d[0][2]*d[2][1]
	r.m[1][1] = d[0][0]*d[2][2] - d[0][2]*d[2][0]
	r.m[1][2] = d[0][0]*d[2][1] - d[0][1]*d[2][0]

	r.m[2][0] = d[0][1]*d[1][2] - d[0][2]*d[1][1]
	r.m[2][1] = d[0][0]*d[1][2] - d[0][2]*d[1][0]
	r.m[2][2] = d[0][0]*d[1][1] - d[0][1]*d[1][0]
	return r
}

// Cofactor applies an alternating sign to Minor, starting at + for (0,0) and
// flipping after every cell in row-major order. For an odd dimension this is
// the (-1)^(r+c) checkerboard.
func (m Matrix3D) Cofactor() Matrix3D {
	r := m.Minor()
	sign := 1.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.m[i][j] *= sign
			sign = -sign
		}
	}
	return r
}

// Adjoint is the transposed cofactor matrix.
func (m Matrix3D) Adjoint() Matrix3D {
	return m.Cofactor().Transpose()
}

// Inverse returns Adjoint / Determinant. A singular matrix yields Inf/NaN
// entries; use InverseTol for a checked variant.
func (m Matrix3D) Inverse() Matrix3D {
	return m.Adjoint().DivScalar(m.Determinant())
}

// InverseTol is Inverse guarded by |det| > tol. It returns ErrSingular
// otherwise.
func (m Matrix3D) InverseTol(tol float64) (Matrix3D, error) {
	det := m.Determinant()
	if isZeroTol(tol, det) {
		return Matrix3D{}, fmt.Errorf("geom: inverse: det=%g: %w", det, ErrSingular)
	}
	return m.Adjoint().DivScalar(det), nil
}

// Solve returns x with M·x = (a,b,c). Like Inverse it does not check for a
// singular matrix.
func (m Matrix3D) Solve(a, b, c float64) Vector3D {
	return m.Inverse().MulVector(Vector3D{a, b, c})
}

// SolveTol is Solve guarded by InverseTol.
func (m Matrix3D) SolveTol(tol, a, b, c float64) (Vector3D, error) {
	inv, err := m.InverseTol(tol)
	if err != nil {
		return Vector3D{}, err
	}
	return inv.MulVector(Vector3D{a, b, c}), nil
}

// ---------------------------------------------------------------------------
// Operators
// ---------------------------------------------------------------------------

func (m Matrix3D) apply(f func(float64) float64) Matrix3D {
	var r Matrix3D
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.m[i][j] = f(m.m[i][j])
		}
	}
	return r
}

func (m Matrix3D) Add(o Matrix3D) Matrix3D {
	var r Matrix3D
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.m[i][j] = m.m[i][j] + o.m[i][j]
		}
	}
	return r
}

func (m Matrix3D) Sub(o Matrix3D) Matrix3D {
	return m.Add(o.Neg())
}

func (m Matrix3D) Neg() Matrix3D {
	return m.apply(func(x float64) float64 { return -x })
}

// Scale returns M*s.
func (m Matrix3D) Scale(s float64) Matrix3D {
	return m.apply(func(x float64) float64 { return x * s })
}

// ScaleMatrix returns s*M.
func ScaleMatrix(s float64, m Matrix3D) Matrix3D {
	return m.apply(func(x float64) float64 { return s * x })
}

// DivScalar returns M/s.
func (m Matrix3D) DivScalar(s float64) Matrix3D {
	return m.apply(func(x float64) float64 { return x / s })
}

// ScalarDiv returns s/M taken elementwise.
func ScalarDiv(s float64, m Matrix3D) Matrix3D {
	return m.apply(func(x float64) float64 { return s / x })
}

// MulVector returns M·v: each result component is a row of M dotted with v.
func (m Matrix3D) MulVector(v Vector3D) Vector3D {
	return Vector3D{m.Row(0).Dot(v), m.Row(1).Dot(v), m.Row(2).Dot(v)}
}

// VectorMul returns vᵀ·M: each result component is v dotted with a column.
func VectorMul(v Vector3D, m Matrix3D) Vector3D {
	return Vector3D{v.Dot(m.Column(0)), v.Dot(m.Column(1)), v.Dot(m.Column(2))}
}

// Mul returns the matrix product M·o.
func (m Matrix3D) Mul(o Matrix3D) Matrix3D {
	var r Matrix3D
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.m[i][j] = m.Row(i).Dot(o.Column(j))
		}
	}
	return r
}

// EqualsTol compares all nine entries.
func (m Matrix3D) EqualsTol(tol float64, o Matrix3D) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !EqualsTol(tol, m.m[i][j], o.m[i][j]) {
				return false
			}
		}
	}
	return true
}

// IsFinite reports whether no entry is Inf or NaN.
func (m Matrix3D) IsFinite() bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			x := m.m[i][j]
			if math.IsInf(x, 0) || math.IsNaN(x) {
				return false
			}
		}
	}
	return true
}

// String renders rows separated by ";", e.g. "[1,0,0;0,1,0;0,0,1]".
func (m Matrix3D) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < 3; i++ {
		if i > 0 {
			b.WriteByte(';')
		}
		for j := 0; j < 3; j++ {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(formatFloat(m.m[i][j]))
		}
	}
	b.WriteByte(']')
	return b.String()
}
