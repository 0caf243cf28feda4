package drawing

import "github.com/chazu/cadkit/pkg/geom"

// Layer groups entities for display and export.
type Layer struct {
	Name  string
	Color int // ACI color number, 0 = by block
}

// NewLayer returns a layer with the default white color.
func NewLayer(name string) *Layer {
	return &Layer{Name: name, Color: 7}
}

// Block is a named, ordered set of entities that Inserts place. Blocks are
// shared between inserts and are never rewritten by transforms; transforms
// work on clones.
type Block struct {
	Name     string
	Origin   geom.Vector3D
	Entities []Entity
}

func NewBlock(name string) *Block {
	return &Block{Name: name}
}

// Add appends e, making Block a Container.
func (b *Block) Add(e Entity) {
	if h, ok := e.(handled); ok {
		h.ensureHandle()
	}
	b.Entities = append(b.Entities, e)
}

// CloneEmpty copies name and origin with no children.
func (b *Block) CloneEmpty() *Block {
	return &Block{Name: b.Name, Origin: b.Origin}
}

// Clone deep-copies the block. Nested inserts still reference the original
// child blocks.
func (b *Block) Clone() *Block {
	c := b.CloneEmpty()
	c.Entities = make([]Entity, 0, len(b.Entities))
	for _, e := range b.Entities {
		c.Entities = append(c.Entities, e.Clone())
	}
	return c
}

// Inserts returns the direct child inserts.
func (b *Block) Inserts() []*Insert {
	var out []*Insert
	for _, e := range b.Entities {
		if ins, ok := e.(*Insert); ok {
			out = append(out, ins)
		}
	}
	return out
}
