package transform

import (
	"fmt"
	"iter"

	"github.com/chazu/cadkit/pkg/drawing"
	"github.com/chazu/cadkit/pkg/geom"
)

// Document lazily transforms every top-level entity of doc through fn.
//
// Entities come out in order points, lines, lwpolylines, polylines, circles,
// texts, mtexts, faces, then inserts. Each distinct block (by name) reached
// from an insert is cloned once per call, hatches are dropped from the clone,
// and its children are transformed with origin = fn(Zero). Each insert is
// cloned, rebound to its block's clone and placed at fn(position).
//
// The sequence stops after the first error, which is yielded once with a nil
// entity. A top-level hatch is such an error.
func Document(doc *drawing.Document, fn Func) iter.Seq2[drawing.Entity, error] {
	return func(yield func(drawing.Entity, error) bool) {
		emit := func(e drawing.Entity) bool {
			out, err := Entity(e, fn, nil)
			if err != nil {
				yield(nil, err)
				return false
			}
			return yield(out, nil)
		}

		for _, e := range doc.Points() {
			if !emit(e) {
				return
			}
		}
		for _, e := range doc.Lines() {
			if !emit(e) {
				return
			}
		}
		for _, e := range doc.LwPolylines() {
			if !emit(e) {
				return
			}
		}
		for _, e := range doc.Polylines() {
			if !emit(e) {
				return
			}
		}
		for _, e := range doc.Circles() {
			if !emit(e) {
				return
			}
		}
		for _, e := range doc.Texts() {
			if !emit(e) {
				return
			}
		}
		for _, e := range doc.MTexts() {
			if !emit(e) {
				return
			}
		}
		for _, e := range doc.Faces() {
			if !emit(e) {
				return
			}
		}
		for _, e := range doc.Hatches() {
			if !emit(e) {
				return
			}
		}

		if len(doc.Inserts()) == 0 {
			return
		}

		r := &blockResolver{fn: fn, origin: fn(geom.Zero), clones: make(map[string]*drawing.Block)}
		for _, ins := range doc.Inserts() {
			if ins.Block == nil {
				yield(nil, fmt.Errorf("transform: insert %s: %w", ins.Handle(), ErrDanglingInsert))
				return
			}
			if _, err := r.resolve(ins.Block); err != nil {
				yield(nil, err)
				return
			}
		}

		for _, ins := range doc.Inserts() {
			c := ins.Clone().(*drawing.Insert)
			c.Block = r.clones[ins.Block.Name]
			c.Position = fn(ins.Position)
			if !yield(c, nil) {
				return
			}
		}
	}
}

// blockResolver clones and transforms each distinct block once.
type blockResolver struct {
	fn       Func
	origin   geom.Vector3D
	clones   map[string]*drawing.Block
	visiting map[string]bool
}

func (r *blockResolver) resolve(b *drawing.Block) (*drawing.Block, error) {
	if c, ok := r.clones[b.Name]; ok {
		return c, nil
	}
	if r.visiting[b.Name] {
		return nil, fmt.Errorf("transform: block %q: %w", b.Name, ErrBlockCycle)
	}
	if r.visiting == nil {
		r.visiting = make(map[string]bool)
	}
	r.visiting[b.Name] = true
	defer delete(r.visiting, b.Name)

	c := b.CloneEmpty()
	for _, child := range b.Entities {
		if child.Kind() == drawing.KindHatch {
			continue
		}
		out, err := Entity(child, r.fn, &r.origin)
		if err != nil {
			return nil, fmt.Errorf("transform: block %q: %w", b.Name, err)
		}
		if ins, ok := out.(*drawing.Insert); ok {
			if ins.Block == nil {
				return nil, fmt.Errorf("transform: block %q: insert %s: %w", b.Name, ins.Handle(), ErrDanglingInsert)
			}
			nested, err := r.resolve(ins.Block)
			if err != nil {
				return nil, err
			}
			ins.Block = nested
		}
		c.Entities = append(c.Entities, out)
	}

	r.clones[b.Name] = c
	return c, nil
}

// Collect drains seq into a slice, stopping at the first error.
func Collect(seq iter.Seq2[drawing.Entity, error]) ([]drawing.Entity, error) {
	var out []drawing.Entity
	for e, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// ToDocument drains seq into a fresh document. Blocks referenced by inserts,
// including nested ones, are registered. A non-nil layer overrides each
// entity's layer.
func ToDocument(seq iter.Seq2[drawing.Entity, error], layer *drawing.Layer) (*drawing.Document, error) {
	doc := drawing.New()
	for e, err := range seq {
		if err != nil {
			return nil, err
		}
		if ins, ok := e.(*drawing.Insert); ok {
			if err := registerBlocks(doc, ins.Block); err != nil {
				return nil, err
			}
		}
		doc.AddEntity(e, layer)
	}
	return doc, nil
}

func registerBlocks(doc *drawing.Document, b *drawing.Block) error {
	if b == nil {
		return nil
	}
	if reg, ok := doc.Block(b.Name); ok && reg == b {
		return nil
	}
	if err := doc.AddBlock(b); err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	for _, ins := range b.Inserts() {
		if err := registerBlocks(doc, ins.Block); err != nil {
			return err
		}
	}
	return nil
}
