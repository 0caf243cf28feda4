package geom

import "math"

// NormalizedLengthTolerance is the tolerance to use when comparing
// normalized vectors or quantities derived from them. It is never applied
// implicitly.
const NormalizedLengthTolerance = 1e-4

// EqualsTol reports whether |a-b| <= tol. The bound is inclusive.
func EqualsTol(tol, a, b float64) bool {
	return math.Abs(a-b) <= tol
}

// isZeroTol reports whether v is zero within tol.
func isZeroTol(tol, v float64) bool {
	return EqualsTol(tol, v, 0)
}
