package transform

import "github.com/chazu/cadkit/pkg/geom"

// Func maps a point to its transformed position. It must be pure.
type Func func(geom.Vector3D) geom.Vector3D

// Identity returns p unchanged.
func Identity(p geom.Vector3D) geom.Vector3D { return p }

// ToWCS maps points given in ocs to world coordinates.
func ToWCS(ocs geom.CoordinateSystem3D) Func {
	return ocs.ToWCS
}

// ToUCS maps world points into ocs.
func ToUCS(ocs geom.CoordinateSystem3D) Func {
	return ocs.ToUCS
}

// Translate moves points by v.
func Translate(v geom.Vector3D) Func {
	return func(p geom.Vector3D) geom.Vector3D { return p.Add(v) }
}

// ScaleAbout scales points about center by per-axis factors.
func ScaleAbout(center, factors geom.Vector3D) Func {
	return func(p geom.Vector3D) geom.Vector3D { return p.ScaleAbout(center, factors) }
}

// Compose applies fns left to right: Compose(f, g)(p) == g(f(p)).
func Compose(fns ...Func) Func {
	return func(p geom.Vector3D) geom.Vector3D {
		for _, fn := range fns {
			p = fn(p)
		}
		return p
	}
}
