// Package tessellate walks a drawing document and produces triangle meshes
// from its 3D faces. One mesh is produced per layer.
package tessellate

import (
	"errors"
	"fmt"

	"github.com/chazu/cadkit/pkg/drawing"
	"github.com/chazu/cadkit/pkg/geom"
	"github.com/chazu/cadkit/pkg/kernel"
	"github.com/chazu/cadkit/pkg/transform"
	"github.com/deadsy/sdfx/sdf"
)

// ErrBlockCycle is returned when inserts nest a block inside itself.
var ErrBlockCycle = errors.New("tessellate: block cycle")

// MaxDepth bounds insert nesting.
const MaxDepth = 64

// defaultLayer collects entities without a layer.
const defaultLayer = "0"

// transformStack accumulates insert placements during block traversal.
// The top is the full block-to-world matrix.
type transformStack struct {
	frames []sdf.M44
	blocks []string
}

func newTransformStack() *transformStack {
	return &transformStack{frames: []sdf.M44{sdf.Identity3d()}}
}

func (ts *transformStack) top() sdf.M44 {
	return ts.frames[len(ts.frames)-1]
}

// push enters the block of ins, composing its placement with the current
// frame.
func (ts *transformStack) push(ins *drawing.Insert) error {
	name := ins.Block.Name
	for _, b := range ts.blocks {
		if b == name {
			return fmt.Errorf("tessellate: block %q: %w", name, ErrBlockCycle)
		}
	}
	if len(ts.blocks) >= MaxDepth {
		return fmt.Errorf("tessellate: nesting deeper than %d: %w", MaxDepth, ErrBlockCycle)
	}
	ts.frames = append(ts.frames, ts.top().Mul(placement(ins)))
	ts.blocks = append(ts.blocks, name)
	return nil
}

func (ts *transformStack) pop() {
	ts.frames = ts.frames[:len(ts.frames)-1]
	ts.blocks = ts.blocks[:len(ts.blocks)-1]
}

func (ts *transformStack) apply(p geom.Vector3D) geom.Vector3D {
	return geom.FromV3(ts.top().MulPosition(p.V3()))
}

// placement is translate * rotate * scale * (minus block origin): block-local
// points into the insert's parent space. The rotation takes world axes onto
// the insert's object coordinate system, rotated by the insert angle.
func placement(ins *drawing.Insert) sdf.M44 {
	ocs := transform.InsertOCS(ins)
	return sdf.Translate3d(ocs.Origin.V3()).
		Mul(basisRotation(ocs)).
		Mul(sdf.Scale3d(ins.Scale.V3())).
		Mul(sdf.Translate3d(ins.Block.Origin.Neg().V3()))
}

// basisRotation returns the rotation whose columns are the axes of cs.
func basisRotation(cs geom.CoordinateSystem3D) sdf.M44 {
	x, y, z := cs.BaseX, cs.BaseY, cs.BaseZ
	return sdf.NewM44([16]float64{
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		0, 0, 0, 1,
	})
}

// meshSet keeps one mesh per layer in first-seen order.
type meshSet struct {
	byLayer map[string]*kernel.Mesh
	order   []string
}

func (s *meshSet) mesh(layer string) *kernel.Mesh {
	if m, ok := s.byLayer[layer]; ok {
		return m
	}
	m := &kernel.Mesh{PartName: layer}
	s.byLayer[layer] = m
	s.order = append(s.order, layer)
	return m
}

func (s *meshSet) list() []*kernel.Mesh {
	out := make([]*kernel.Mesh, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byLayer[name])
	}
	return out
}

// Tessellate walks the document and produces one triangle mesh per layer
// holding 3D faces, directly or through inserts. Quads are split along the
// first-third diagonal. Entities inside a block that sit on layer "0" or no
// layer take the layer of their insert. The document is never mutated.
func Tessellate(doc *drawing.Document) ([]*kernel.Mesh, error) {
	if doc == nil {
		return nil, nil
	}

	set := &meshSet{byLayer: make(map[string]*kernel.Mesh)}
	ts := newTransformStack()

	for _, e := range doc.Entities() {
		if err := walkEntity(set, ts, e, defaultLayer); err != nil {
			return nil, err
		}
	}
	return set.list(), nil
}

// walkEntity emits triangles for faces and recurses into inserts.
func walkEntity(set *meshSet, ts *transformStack, e drawing.Entity, inherited string) error {
	layer := layerName(e, inherited)

	switch x := e.(type) {
	case *drawing.Face3d:
		addFace(set.mesh(layer), ts, x)
		return nil

	case *drawing.Insert:
		if x.Block == nil {
			return fmt.Errorf("tessellate: insert %s references no block", x.Handle())
		}
		if err := ts.push(x); err != nil {
			return err
		}
		defer ts.pop()
		for _, child := range x.Block.Entities {
			if err := walkEntity(set, ts, child, layer); err != nil {
				return err
			}
		}
		return nil

	default:
		// Curves, text and points have no surface.
		return nil
	}
}

func layerName(e drawing.Entity, inherited string) string {
	l := e.Layer()
	if l == nil || l.Name == "" || l.Name == defaultLayer {
		return inherited
	}
	return l.Name
}

func addFace(m *kernel.Mesh, ts *transformStack, f *drawing.Face3d) {
	a, b, c := ts.apply(f.First), ts.apply(f.Second), ts.apply(f.Third)
	m.AddTriangle(a, b, c)
	if f.HasFourth {
		m.AddTriangle(a, c, ts.apply(f.Fourth))
	}
}
