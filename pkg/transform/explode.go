package transform

import (
	"fmt"
	"math"

	"github.com/chazu/cadkit/pkg/drawing"
	"github.com/chazu/cadkit/pkg/geom"
)

// InsertOCS is the frame an insert places its block in: anchored at the
// insert position, Z along the insert normal, rotated by the insert rotation.
func InsertOCS(ins *drawing.Insert) geom.CoordinateSystem3D {
	normal := ins.Normal
	if normal == geom.Zero {
		normal = geom.ZAxis
	}
	return geom.NewCoordinateSystem3D(ins.Position, normal).
		Rotate(normal, ins.Rotation*math.Pi/180)
}

// Explode returns world-space copies of the circles in ins's block. Other
// entity kinds are skipped and the insert scale is ignored.
//
// TODO: apply ins.Scale and explode the remaining kinds; Flatten covers both.
func Explode(ins *drawing.Insert) []drawing.Entity {
	if ins.Block == nil {
		return nil
	}

	ocs := InsertOCS(ins)
	origin := ocs.ToWCS(geom.Zero)
	fn := ToWCS(ocs)

	var out []drawing.Entity
	for _, e := range ins.Block.Entities {
		if _, ok := e.(*drawing.Circle); !ok {
			continue
		}
		t, err := Entity(e, fn, &origin)
		if err != nil {
			continue
		}
		c := t.(*drawing.Circle)
		c.Center = c.Center.Add(ins.Position)
		out = append(out, c)
	}
	return out
}

// maxFlattenDepth bounds insert nesting in Flatten.
const maxFlattenDepth = 64

// Flatten returns the document with every insert replaced by world-space
// copies of its block's children. Top-level entities other than inserts are
// cloned unchanged. Nested inserts are expanded recursively, insert scale is
// applied relative to the block origin, and hatches inside blocks are
// dropped.
func Flatten(doc *drawing.Document) ([]drawing.Entity, error) {
	var out []drawing.Entity
	for _, e := range doc.Entities() {
		if ins, ok := e.(*drawing.Insert); ok {
			flat, err := flattenInsert(ins, Identity, nil)
			if err != nil {
				return nil, err
			}
			out = append(out, flat...)
			continue
		}
		out = append(out, e.Clone())
	}
	return out, nil
}

// placement maps block-local points of ins into its parent's space.
func placement(ins *drawing.Insert) Func {
	ocs := InsertOCS(ins)
	origin := ins.Block.Origin
	scale := ins.Scale
	return func(p geom.Vector3D) geom.Vector3D {
		return ocs.ToWCS(p.Sub(origin).Scalar(scale.X, scale.Y, scale.Z))
	}
}

func flattenInsert(ins *drawing.Insert, parent Func, path []string) ([]drawing.Entity, error) {
	if ins.Block == nil {
		return nil, fmt.Errorf("transform: flatten: insert %s: %w", ins.Handle(), ErrDanglingInsert)
	}
	for _, name := range path {
		if name == ins.Block.Name {
			return nil, fmt.Errorf("transform: flatten: block %q: %w", name, ErrBlockCycle)
		}
	}
	if len(path) >= maxFlattenDepth {
		return nil, fmt.Errorf("transform: flatten: nesting deeper than %d: %w", maxFlattenDepth, ErrBlockCycle)
	}
	path = append(path, ins.Block.Name)

	fn := Compose(placement(ins), parent)
	origin := fn(geom.Zero)

	var out []drawing.Entity
	for _, e := range ins.Block.Entities {
		switch x := e.(type) {
		case *drawing.Hatch:
			continue
		case *drawing.Insert:
			nested, err := flattenInsert(x, fn, path)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
		case *drawing.Circle:
			t, err := Entity(x, fn, &origin)
			if err != nil {
				return nil, err
			}
			c := t.(*drawing.Circle)
			c.Center = c.Center.Add(origin)
			if n := fn(x.Normal).Sub(origin); n.Length() > 0 {
				c.Normal = n.Normalized()
			}
			out = append(out, c)
		default:
			t, err := Entity(x, fn, nil)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
	}
	return out, nil
}
