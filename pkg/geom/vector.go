package geom

import (
	"math"
	"strconv"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vector3D is an immutable 3-component vector. It is used both as a point
// and as a direction.
type Vector3D struct {
	X, Y, Z float64
}

var (
	Zero  = Vector3D{}
	XAxis = Vector3D{X: 1}
	YAxis = Vector3D{Y: 1}
	ZAxis = Vector3D{Z: 1}
)

// NewVector3D is shorthand for Vector3D{x, y, z}.
func NewVector3D(x, y, z float64) Vector3D {
	return Vector3D{X: x, Y: y, Z: z}
}

// FromV3 converts an sdfx vector.
func FromV3(v v3.Vec) Vector3D {
	return Vector3D{X: v.X, Y: v.Y, Z: v.Z}
}

// V3 converts to an sdfx vector.
func (v Vector3D) V3() v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// Component returns X, Y or Z for i = 0, 1, 2. It panics on any other index.
func (v Vector3D) Component(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic("geom: vector component index out of range: " + strconv.Itoa(i))
}

func (v Vector3D) Add(o Vector3D) Vector3D {
	return Vector3D{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3D) Sub(o Vector3D) Vector3D {
	return Vector3D{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector3D) Neg() Vector3D {
	return Vector3D{-v.X, -v.Y, -v.Z}
}

// Scale returns v * s.
func (v Vector3D) Scale(s float64) Vector3D {
	return Vector3D{v.X * s, v.Y * s, v.Z * s}
}

// Div returns v / s. Division by zero yields Inf/NaN components.
func (v Vector3D) Div(s float64) Vector3D {
	return Vector3D{v.X / s, v.Y / s, v.Z / s}
}

func (v Vector3D) Dot(o Vector3D) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector3D) Cross(o Vector3D) Vector3D {
	return Vector3D{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3D) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns the unit vector with the direction of v. A zero-length
// vector produces NaN components; callers must guard.
func (v Vector3D) Normalized() Vector3D {
	return v.Div(v.Length())
}

// Distance returns the euclidean distance between two points.
func (v Vector3D) Distance(o Vector3D) float64 {
	return v.Sub(o).Length()
}

// Project returns the vector projection of v onto the direction onto,
// i.e. onto * (v·onto / onto·onto). The result is parallel to onto, not a
// rescaled v; Line3D.Perpendicular depends on this.
func (v Vector3D) Project(onto Vector3D) Vector3D {
	return onto.Scale(v.Dot(onto) / onto.Dot(onto))
}

// Scalar multiplies each component by its own factor. With 0/1 selectors it
// picks per-axis between the origin and v, which is how cuboid corners are
// enumerated.
func (v Vector3D) Scalar(xs, ys, zs float64) Vector3D {
	return Vector3D{v.X * xs, v.Y * ys, v.Z * zs}
}

// ScaleAbout scales v relative to center by per-axis factors.
func (v Vector3D) ScaleAbout(center, factors Vector3D) Vector3D {
	d := v.Sub(center)
	return center.Add(d.Scalar(factors.X, factors.Y, factors.Z))
}

// EqualsTol reports whether every component of v is within tol of o.
func (v Vector3D) EqualsTol(tol float64, o Vector3D) bool {
	return EqualsTol(tol, v.X, o.X) && EqualsTol(tol, v.Y, o.Y) && EqualsTol(tol, v.Z, o.Z)
}

// EqualsTolXYZ is EqualsTol against loose coordinates.
func (v Vector3D) EqualsTolXYZ(tol, x, y, z float64) bool {
	return v.EqualsTol(tol, Vector3D{x, y, z})
}

// String formats v as "(x,y,z)" independent of locale.
func (v Vector3D) String() string {
	return "(" + formatFloat(v.X) + "," + formatFloat(v.Y) + "," + formatFloat(v.Z) + ")"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
