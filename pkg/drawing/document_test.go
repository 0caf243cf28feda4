package drawing

import (
	"errors"
	"testing"

	"github.com/chazu/cadkit/pkg/geom"
)

func TestEntityKindString(t *testing.T) {
	tests := []struct {
		kind EntityKind
		want string
	}{
		{KindPoint, "point"},
		{KindLwPolyline, "lwpolyline"},
		{KindFace3d, "3dface"},
		{KindHatch, "hatch"},
		{EntityKind(99), "EntityKind(99)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("EntityKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	layer := NewLayer("walls")
	pl := NewPolyline(false, geom.NewVector3D(0, 0, 0), geom.NewVector3D(1, 0, 0))
	pl.SetLayer(layer)

	c := pl.Clone().(*Polyline)
	c.Vertexes[0] = geom.NewVector3D(9, 9, 9)

	if pl.Vertexes[0] != geom.Zero {
		t.Errorf("clone shares vertex storage with original")
	}
	if c.Handle() == pl.Handle() || c.Handle() == "" {
		t.Errorf("clone handle %q should be fresh (original %q)", c.Handle(), pl.Handle())
	}
	if c.Layer() != layer {
		t.Errorf("clone should keep the layer pointer")
	}
}

func TestInsertCloneSharesBlock(t *testing.T) {
	b := NewBlock("bolt")
	ins := NewInsert(b, geom.NewVector3D(1, 2, 3))

	c := ins.Clone().(*Insert)
	if c.Block != b {
		t.Errorf("insert clone should reference the same block")
	}
	if c.Scale != geom.NewVector3D(1, 1, 1) || c.Normal != geom.ZAxis {
		t.Errorf("insert defaults lost on clone: scale %s normal %s", c.Scale, c.Normal)
	}
}

func TestBlockClone(t *testing.T) {
	b := NewBlock("b")
	b.Origin = geom.NewVector3D(1, 1, 1)
	b.Add(NewCircle(geom.Zero, 5))

	empty := b.CloneEmpty()
	if empty.Name != "b" || empty.Origin != b.Origin || len(empty.Entities) != 0 {
		t.Errorf("CloneEmpty = %+v", empty)
	}

	full := b.Clone()
	full.Entities[0].(*Circle).Radius = 1
	if b.Entities[0].(*Circle).Radius != 5 {
		t.Errorf("Block.Clone shares children with the original")
	}
}

func TestDocumentOrderAndCounts(t *testing.T) {
	d := New()
	layer := d.Layer("geo")

	d.AddEntity(NewCircle(geom.Zero, 1), layer)
	d.AddEntity(NewPoint(geom.Zero), nil)
	d.AddEntities([]Entity{
		NewLine(geom.Zero, geom.XAxis),
		NewText("hi", geom.Zero, 2.5),
	}, layer)

	if d.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", d.Len())
	}

	want := []EntityKind{KindPoint, KindLine, KindCircle, KindText}
	got := d.Entities()
	for i, k := range want {
		if got[i].Kind() != k {
			t.Errorf("Entities()[%d] = %s, want %s", i, got[i].Kind(), k)
		}
	}

	if d.Lines()[0].Layer() != layer {
		t.Errorf("AddEntities did not set layer")
	}
	if d.Points()[0].Layer() != nil {
		t.Errorf("nil layer should leave entity layerless")
	}
	if n := d.CountByKind()[KindCircle]; n != 1 {
		t.Errorf("CountByKind()[circle] = %d, want 1", n)
	}
}

func TestStructLiteralGetsHandle(t *testing.T) {
	d := New()
	p := &Point{Position: geom.XAxis}
	d.Add(p)
	if p.Handle() == "" {
		t.Errorf("Add should assign a handle to a literal entity")
	}
}

func TestLayers(t *testing.T) {
	d := New()
	a := d.Layer("a")
	if d.Layer("a") != a {
		t.Errorf("Layer should return the existing layer")
	}

	// Entities bring their layer into the table.
	d.Add(AddEntity(NewBlock("tmp"), NewPoint(geom.Zero), NewLayer("b")))
	names := []string{}
	for _, l := range d.Layers() {
		names = append(names, l.Name)
	}
	if len(names) != 3 || names[0] != "0" || names[1] != "a" || names[2] != "b" {
		t.Errorf("Layers() = %v, want [0 a b]", names)
	}
}

func TestAddBlock(t *testing.T) {
	d := New()
	b := NewBlock("door")

	if err := d.AddBlock(b); err != nil {
		t.Fatalf("AddBlock: %v", err)
	}
	if err := d.AddBlock(b); err != nil {
		t.Errorf("re-adding the same block should be a no-op, got %v", err)
	}
	err := d.AddBlock(NewBlock("door"))
	if !errors.Is(err, ErrDuplicateBlock) {
		t.Errorf("AddBlock(duplicate) = %v, want ErrDuplicateBlock", err)
	}
	if err := d.AddBlock(NewBlock("")); err == nil {
		t.Errorf("AddBlock(empty name) should fail")
	}

	if got, ok := d.Block("door"); !ok || got != b {
		t.Errorf("Block(door) = %v, %v", got, ok)
	}
	if len(d.Blocks()) != 1 {
		t.Errorf("Blocks() len = %d, want 1", len(d.Blocks()))
	}
}

func TestSetLayer(t *testing.T) {
	l := NewLayer("x")
	lines := SetLayer(Star(geom.Zero, 2), l)
	for _, e := range lines {
		if e.Layer() != l {
			t.Errorf("SetLayer missed %s", e.Handle())
		}
	}
}
