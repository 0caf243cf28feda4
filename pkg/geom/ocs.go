package geom

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
)

// arbitraryAxisThreshold is the DXF arbitrary axis cutoff: a normal whose X and
// Y parts are both below it is treated as "close to world Z".
const arbitraryAxisThreshold = 1.0 / 64.0

// CoordinateSystem3D is an object coordinate system: an origin plus an
// orthonormal basis expressed in world coordinates.
type CoordinateSystem3D struct {
	Origin              Vector3D
	BaseX, BaseY, BaseZ Vector3D
}

// WCS is the world coordinate system.
var WCS = CoordinateSystem3D{Origin: Zero, BaseX: XAxis, BaseY: YAxis, BaseZ: ZAxis}

// NewCoordinateSystem3D builds the frame anchored at origin whose Z axis is
// normal, choosing X with the DXF arbitrary axis algorithm. A zero normal
// falls back to world Z.
func NewCoordinateSystem3D(origin, normal Vector3D) CoordinateSystem3D {
	if normal.Length() == 0 {
		normal = ZAxis
	}
	n := normal.Normalized()

	var ax Vector3D
	if math.Abs(n.X) < arbitraryAxisThreshold && math.Abs(n.Y) < arbitraryAxisThreshold {
		ax = YAxis.Cross(n)
	} else {
		ax = ZAxis.Cross(n)
	}
	ax = ax.Normalized()
	ay := n.Cross(ax).Normalized()

	return CoordinateSystem3D{Origin: origin, BaseX: ax, BaseY: ay, BaseZ: n}
}

// Rotate turns the basis around axis by angle radians. The origin stays put.
func (cs CoordinateSystem3D) Rotate(axis Vector3D, angle float64) CoordinateSystem3D {
	if angle == 0 {
		return cs
	}
	m := sdf.Rotate3d(axis.Normalized().V3(), angle)
	return CoordinateSystem3D{
		Origin: cs.Origin,
		BaseX:  FromV3(m.MulPosition(cs.BaseX.V3())),
		BaseY:  FromV3(m.MulPosition(cs.BaseY.V3())),
		BaseZ:  FromV3(m.MulPosition(cs.BaseZ.V3())),
	}
}

// Basis returns the matrix whose rows are BaseX, BaseY, BaseZ.
func (cs CoordinateSystem3D) Basis() Matrix3D {
	return FromVectorsAsRows(cs.BaseX, cs.BaseY, cs.BaseZ)
}

// ToWCS maps a point given in this frame to world coordinates.
func (cs CoordinateSystem3D) ToWCS(p Vector3D) Vector3D {
	return cs.Origin.Add(VectorMul(p, cs.Basis()))
}

// ToUCS maps a world point into this frame.
func (cs CoordinateSystem3D) ToUCS(p Vector3D) Vector3D {
	return cs.Basis().MulVector(p.Sub(cs.Origin))
}

// ObjectToWorld lifts an object-space point of an entity with the given
// extrusion normal into world space.
func ObjectToWorld(normal, p Vector3D) Vector3D {
	return NewCoordinateSystem3D(Zero, normal).ToWCS(p)
}
