package drawing

import "github.com/chazu/cadkit/pkg/geom"

// Vector3DCoords returns a copy of the vertexes.
func (e *Polyline) Vector3DCoords() []geom.Vector3D {
	out := make([]geom.Vector3D, len(e.Vertexes))
	copy(out, e.Vertexes)
	return out
}

// Vector3DCoords lifts each (x, y, elevation) vertex from the object
// coordinate system of Normal into world space.
func (e *LwPolyline) Vector3DCoords() []geom.Vector3D {
	normal := e.Normal
	if normal == geom.Zero {
		normal = geom.ZAxis
	}
	ocs := geom.NewCoordinateSystem3D(geom.Zero, normal)

	out := make([]geom.Vector3D, len(e.Vertexes))
	for i, vx := range e.Vertexes {
		out[i] = ocs.ToWCS(geom.NewVector3D(vx.X, vx.Y, e.Elevation))
	}
	return out
}

// Segments joins consecutive points into segments.
func Segments(pts []geom.Vector3D) []geom.Line3D {
	if len(pts) < 2 {
		return nil
	}
	out := make([]geom.Line3D, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		out = append(out, geom.NewLine3D(pts[i-1], pts[i]))
	}
	return out
}

// PolylineLength is the total length of the open path through pts.
func PolylineLength(pts []geom.Vector3D) float64 {
	total := 0.0
	for _, s := range Segments(pts) {
		total += s.Length()
	}
	return total
}

// path returns the vertexes with the first repeated at the end when closed.
func (e *Polyline) path() []geom.Vector3D {
	pts := e.Vector3DCoords()
	if e.Closed && len(pts) > 2 {
		pts = append(pts, pts[0])
	}
	return pts
}

// Segments returns the polyline's segments, including the closing one.
func (e *Polyline) Segments() []geom.Line3D {
	return Segments(e.path())
}

// Length is the total path length, including the closing segment.
func (e *Polyline) Length() float64 {
	return PolylineLength(e.path())
}

// MidPoint walks the path to half its length. It reports false for fewer
// than two vertexes.
func (e *Polyline) MidPoint() (geom.Vector3D, bool) {
	segs := e.Segments()
	if len(segs) == 0 {
		return geom.Vector3D{}, false
	}

	half := e.Length() / 2
	walked := 0.0
	for _, s := range segs {
		l := s.Length()
		if l > 0 && walked+l >= half {
			return s.From.Add(s.V.Scale((half - walked) / l)), true
		}
		walked += l
	}
	// Zero-length path.
	return segs[0].From, true
}
