package geom

// Line3D is an infinite line or a segment anchored at From with direction V.
// The segment end is To() = From + V. A zero V is accepted; operations on it
// degrade to comparisons against From.
type Line3D struct {
	From Vector3D
	V    Vector3D
}

// NewLine3D builds a line through from and to.
func NewLine3D(from, to Vector3D) Line3D {
	return Line3D{From: from, V: to.Sub(from)}
}

// NewLine3DPointVector builds a line from an anchor and an explicit direction.
func NewLine3DPointVector(from, v Vector3D) Line3D {
	return Line3D{From: from, V: v}
}

var (
	XAxisLine = NewLine3D(Zero, XAxis)
	YAxisLine = NewLine3D(Zero, YAxis)
	ZAxisLine = NewLine3D(Zero, ZAxis)
)

func (l Line3D) To() Vector3D {
	return l.From.Add(l.V)
}

// Length is the segment length |V|.
func (l Line3D) Length() float64 {
	return l.V.Length()
}

// LineContainsPoint reports whether p = From + s*V for some s. s is solved on
// the first axis where V is not zero within tol (X, then Y, then Z) and the
// candidate is then checked on all three axes. In segment mode s must also
// lie in [0,1].
func (l Line3D) LineContainsPoint(tol float64, p Vector3D, segmentMode bool) bool {
	s := 0.0
	switch {
	case !isZeroTol(tol, l.V.X):
		s = (p.X - l.From.X) / l.V.X
	case !isZeroTol(tol, l.V.Y):
		s = (p.Y - l.From.Y) / l.V.Y
	case !isZeroTol(tol, l.V.Z):
		s = (p.Z - l.From.Z) / l.V.Z
	}

	if segmentMode && (s < 0 || s > 1) {
		return false
	}

	return p.EqualsTol(tol, l.From.Add(l.V.Scale(s)))
}

func (l Line3D) LineContainsXYZ(tol, x, y, z float64, segmentMode bool) bool {
	return l.LineContainsPoint(tol, Vector3D{x, y, z}, segmentMode)
}

// SegmentContainsPoint is LineContainsPoint restricted to From..To, ends
// included.
func (l Line3D) SegmentContainsPoint(tol float64, p Vector3D) bool {
	return l.LineContainsPoint(tol, p, true)
}

func (l Line3D) SegmentContainsXYZ(tol, x, y, z float64) bool {
	return l.LineContainsPoint(tol, Vector3D{x, y, z}, true)
}

// intersectPlanes lists the projection planes tried by Intersect, in order.
var intersectPlanes = [3][2]int{
	{0, 1}, // XY
	{0, 2}, // XZ
	{1, 2}, // YZ
}

// Intersect returns the point shared by both infinite lines. Each projection
// plane (XY, XZ, YZ) is tried in turn: a plane whose 2x2 system has a zero
// denominator is skipped, otherwise the candidate is verified on all three
// axes. The first verified candidate wins; false means the lines do not meet.
func (l Line3D) Intersect(tol float64, other Line3D) (Vector3D, bool) {
	for _, pl := range intersectPlanes {
		a, b := pl[0], pl[1]

		f1a, f1b := l.From.Component(a), l.From.Component(b)
		v1a, v1b := l.V.Component(a), l.V.Component(b)
		f2a, f2b := other.From.Component(a), other.From.Component(b)
		v2a, v2b := other.V.Component(a), other.V.Component(b)

		denom := v1b*v2a - v1a*v2b
		if isZeroTol(tol, denom) {
			continue
		}

		alpha := -(f1b*v2a - f2b*v2a - f1a*v2b + f2a*v2b) / denom
		beta := -(f1b*v1a - f2b*v1a - f1a*v1b + f2a*v1b) / denom

		i := l.From.Add(l.V.Scale(alpha))
		if i.EqualsTol(tol, other.From.Add(other.V.Scale(beta))) {
			return i, true
		}
	}
	return Vector3D{}, false
}

// Perpendicular returns the segment from p to p projected onto V. It reports
// false when p already lies on the line.
func (l Line3D) Perpendicular(tol float64, p Vector3D) (Line3D, bool) {
	if l.LineContainsPoint(tol, p, false) {
		return Line3D{}, false
	}
	return NewLine3D(p, p.Project(l.V)), true
}

// Colinear reports whether the infinite line l contains both ends of other.
func (l Line3D) Colinear(tol float64, other Line3D) bool {
	return l.LineContainsPoint(tol, other.From, false) &&
		l.LineContainsPoint(tol, other.To(), false)
}

// String renders the segment as "from-to".
func (l Line3D) String() string {
	return l.From.String() + "-" + l.To().String()
}
