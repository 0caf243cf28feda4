// Package transform applies a point transform to drawing entities and whole
// documents, producing new entities. Sources, including shared blocks, are
// never modified.
package transform

import (
	"math"

	"github.com/chazu/cadkit/pkg/drawing"
	"github.com/chazu/cadkit/pkg/geom"
)

// Entity clones e and rewrites its coordinates through fn.
//
// origin, when non-nil, is fn's image of the world origin. It is subtracted
// from a circle's transformed center and radius vector so that translation
// in fn does not leak into the radius. Hatches are not supported and yield a
// *NotImplementedError.
func Entity(e drawing.Entity, fn Func, origin *geom.Vector3D) (drawing.Entity, error) {
	o := geom.Zero
	if origin != nil {
		o = *origin
	}

	switch x := e.(type) {
	case *drawing.Point:
		c := x.Clone().(*drawing.Point)
		c.Position = fn(x.Position)
		return c, nil

	case *drawing.Line:
		c := x.Clone().(*drawing.Line)
		c.Start = fn(x.Start)
		c.End = fn(x.End)
		return c, nil

	case *drawing.Text:
		c := x.Clone().(*drawing.Text)
		c.Position = fn(x.Position)
		return c, nil

	case *drawing.MText:
		c := x.Clone().(*drawing.MText)
		c.Position = fn(x.Position)
		return c, nil

	case *drawing.Insert:
		c := x.Clone().(*drawing.Insert)
		c.Position = fn(x.Position)
		return c, nil

	case *drawing.Circle:
		c := x.Clone().(*drawing.Circle)
		c.Center = fn(x.Center).Sub(o)
		c.Radius = fn(geom.NewVector3D(x.Radius, 0, 0)).Sub(o).Length()
		return c, nil

	case *drawing.LwPolyline:
		c := x.Clone().(*drawing.LwPolyline)
		c.Normal = lwNormal(x.Normal, fn)
		ocs := geom.NewCoordinateSystem3D(geom.Zero, c.Normal)
		for i, p := range x.Vector3DCoords() {
			u := ocs.ToUCS(fn(p))
			c.Vertexes[i].X = u.X
			c.Vertexes[i].Y = u.Y
			c.Elevation = u.Z
		}
		return c, nil

	case *drawing.Polyline:
		c := x.Clone().(*drawing.Polyline)
		for i, p := range x.Vertexes {
			c.Vertexes[i] = fn(p)
		}
		return c, nil

	case *drawing.Face3d:
		c := x.Clone().(*drawing.Face3d)
		c.First = fn(x.First)
		c.Second = fn(x.Second)
		c.Third = fn(x.Third)
		if x.HasFourth {
			c.Fourth = fn(x.Fourth)
		}
		return c, nil
	}

	return nil, &NotImplementedError{Kind: e.Kind()}
}

// lwNormal maps an lwpolyline normal through fn as a direction. The source
// normal is kept when fn leaves its direction unchanged or collapses it.
func lwNormal(normal geom.Vector3D, fn Func) geom.Vector3D {
	if normal == geom.Zero {
		normal = geom.ZAxis
	}
	n := fn(normal).Sub(fn(geom.Zero))
	l := n.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return normal
	}
	n = n.Div(l)
	if n.EqualsTol(geom.NormalizedLengthTolerance, normal.Normalized()) {
		return normal
	}
	return n
}
