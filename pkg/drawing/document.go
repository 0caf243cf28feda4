package drawing

import (
	"errors"
	"fmt"
)

// ErrDuplicateBlock is returned by AddBlock when a different block with the
// same name is already registered.
var ErrDuplicateBlock = errors.New("drawing: duplicate block name")

// Container is anything entities can be added to: a Document or a Block.
type Container interface {
	Add(e Entity)
}

var (
	_ Container = (*Document)(nil)
	_ Container = (*Block)(nil)
)

// Document owns ordered per-variant entity collections, the block registry
// and the layer table.
type Document struct {
	points      []*Point
	lines       []*Line
	circles     []*Circle
	texts       []*Text
	mtexts      []*MText
	inserts     []*Insert
	lwpolylines []*LwPolyline
	polylines   []*Polyline
	faces       []*Face3d
	hatches     []*Hatch

	blocks     map[string]*Block
	blockOrder []string

	layers     map[string]*Layer
	layerOrder []string
}

// New returns an empty document with layer "0".
func New() *Document {
	d := &Document{
		blocks: make(map[string]*Block),
		layers: make(map[string]*Layer),
	}
	d.AddLayer(NewLayer("0"))
	return d
}

// ---------------------------------------------------------------------------
// Entities
// ---------------------------------------------------------------------------

// Add appends e to the collection for its variant.
func (d *Document) Add(e Entity) {
	if h, ok := e.(handled); ok {
		h.ensureHandle()
	}
	if l := e.Layer(); l != nil {
		d.AddLayer(l)
	}

	switch x := e.(type) {
	case *Point:
		d.points = append(d.points, x)
	case *Line:
		d.lines = append(d.lines, x)
	case *Circle:
		d.circles = append(d.circles, x)
	case *Text:
		d.texts = append(d.texts, x)
	case *MText:
		d.mtexts = append(d.mtexts, x)
	case *Insert:
		d.inserts = append(d.inserts, x)
	case *LwPolyline:
		d.lwpolylines = append(d.lwpolylines, x)
	case *Polyline:
		d.polylines = append(d.polylines, x)
	case *Face3d:
		d.faces = append(d.faces, x)
	case *Hatch:
		d.hatches = append(d.hatches, x)
	}
}

// AddEntity sets e's layer when layer is non-nil, adds it and returns it.
func (d *Document) AddEntity(e Entity, layer *Layer) Entity {
	return AddEntity(d, e, layer)
}

// AddEntities adds every entity of es with AddEntity.
func (d *Document) AddEntities(es []Entity, layer *Layer) {
	for _, e := range es {
		AddEntity(d, e, layer)
	}
}

func (d *Document) Points() []*Point           { return d.points }
func (d *Document) Lines() []*Line             { return d.lines }
func (d *Document) Circles() []*Circle         { return d.circles }
func (d *Document) Texts() []*Text             { return d.texts }
func (d *Document) MTexts() []*MText           { return d.mtexts }
func (d *Document) Inserts() []*Insert         { return d.inserts }
func (d *Document) LwPolylines() []*LwPolyline { return d.lwpolylines }
func (d *Document) Polylines() []*Polyline     { return d.polylines }
func (d *Document) Faces() []*Face3d           { return d.faces }
func (d *Document) Hatches() []*Hatch          { return d.hatches }

// Entities returns every top-level entity in variant order: points, lines,
// lwpolylines, polylines, circles, texts, mtexts, faces, hatches, inserts.
func (d *Document) Entities() []Entity {
	out := make([]Entity, 0, d.Len())
	out = appendAll(out, d.points)
	out = appendAll(out, d.lines)
	out = appendAll(out, d.lwpolylines)
	out = appendAll(out, d.polylines)
	out = appendAll(out, d.circles)
	out = appendAll(out, d.texts)
	out = appendAll(out, d.mtexts)
	out = appendAll(out, d.faces)
	out = appendAll(out, d.hatches)
	out = appendAll(out, d.inserts)
	return out
}

func appendAll[E Entity](dst []Entity, src []E) []Entity {
	for _, e := range src {
		dst = append(dst, e)
	}
	return dst
}

// Len is the number of top-level entities.
func (d *Document) Len() int {
	return len(d.points) + len(d.lines) + len(d.circles) + len(d.texts) +
		len(d.mtexts) + len(d.inserts) + len(d.lwpolylines) + len(d.polylines) +
		len(d.faces) + len(d.hatches)
}

// CountByKind tallies top-level entities per variant.
func (d *Document) CountByKind() map[EntityKind]int {
	counts := make(map[EntityKind]int)
	for _, e := range d.Entities() {
		counts[e.Kind()]++
	}
	return counts
}

// ---------------------------------------------------------------------------
// Blocks
// ---------------------------------------------------------------------------

// AddBlock registers b under its name. Registering the same block twice is a
// no-op; a different block with a taken name is an error.
func (d *Document) AddBlock(b *Block) error {
	if b.Name == "" {
		return fmt.Errorf("drawing: add block: empty name")
	}
	if existing, ok := d.blocks[b.Name]; ok {
		if existing == b {
			return nil
		}
		return fmt.Errorf("drawing: add block %q: %w", b.Name, ErrDuplicateBlock)
	}
	d.blocks[b.Name] = b
	d.blockOrder = append(d.blockOrder, b.Name)
	return nil
}

// Block looks up a registered block by name.
func (d *Document) Block(name string) (*Block, bool) {
	b, ok := d.blocks[name]
	return b, ok
}

// Blocks returns registered blocks in registration order.
func (d *Document) Blocks() []*Block {
	out := make([]*Block, 0, len(d.blockOrder))
	for _, name := range d.blockOrder {
		out = append(out, d.blocks[name])
	}
	return out
}

// ---------------------------------------------------------------------------
// Layers
// ---------------------------------------------------------------------------

// AddLayer registers l unless a layer with that name exists, and returns the
// registered layer.
func (d *Document) AddLayer(l *Layer) *Layer {
	if existing, ok := d.layers[l.Name]; ok {
		return existing
	}
	d.layers[l.Name] = l
	d.layerOrder = append(d.layerOrder, l.Name)
	return l
}

// Layer returns the named layer, creating it if needed.
func (d *Document) Layer(name string) *Layer {
	if l, ok := d.layers[name]; ok {
		return l
	}
	return d.AddLayer(NewLayer(name))
}

// Layers returns layers in registration order.
func (d *Document) Layers() []*Layer {
	out := make([]*Layer, 0, len(d.layerOrder))
	for _, name := range d.layerOrder {
		out = append(out, d.layers[name])
	}
	return out
}

// ---------------------------------------------------------------------------
// Container helpers
// ---------------------------------------------------------------------------

// AddEntity sets e's layer when layer is non-nil, adds e to c and returns it.
func AddEntity(c Container, e Entity, layer *Layer) Entity {
	if layer != nil {
		e.SetLayer(layer)
	}
	c.Add(e)
	return e
}

// SetLayer assigns layer to every entity and returns the same slice.
func SetLayer[E Entity](es []E, layer *Layer) []E {
	for _, e := range es {
		e.SetLayer(layer)
	}
	return es
}
