// Package drawing is the in-memory CAD document model: a closed set of entity
// variants, named blocks they can be instanced from, layers, and the Document
// aggregate that owns them.
package drawing

import (
	"fmt"
	"slices"

	"github.com/chazu/cadkit/pkg/geom"
	"github.com/google/uuid"
)

// EntityKind identifies an entity variant.
type EntityKind int

const (
	KindPoint EntityKind = iota
	KindLine
	KindCircle
	KindText
	KindMText
	KindInsert
	KindLwPolyline
	KindPolyline
	KindFace3d
	KindHatch
)

func (k EntityKind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindText:
		return "text"
	case KindMText:
		return "mtext"
	case KindInsert:
		return "insert"
	case KindLwPolyline:
		return "lwpolyline"
	case KindPolyline:
		return "polyline"
	case KindFace3d:
		return "3dface"
	case KindHatch:
		return "hatch"
	default:
		return fmt.Sprintf("EntityKind(%d)", int(k))
	}
}

// Entity is implemented only by the variant types in this package. Use a
// type switch to dispatch on the concrete variant.
type Entity interface {
	Kind() EntityKind
	// Handle is a unique id assigned at construction and on Clone.
	Handle() string
	Layer() *Layer
	SetLayer(l *Layer)
	// Clone deep-copies the entity's own data. Layer and block pointers are
	// shared with the original; the clone gets a fresh handle.
	Clone() Entity

	entity()
}

// Compile-time interface checks.
var (
	_ Entity = (*Point)(nil)
	_ Entity = (*Line)(nil)
	_ Entity = (*Circle)(nil)
	_ Entity = (*Text)(nil)
	_ Entity = (*MText)(nil)
	_ Entity = (*Insert)(nil)
	_ Entity = (*LwPolyline)(nil)
	_ Entity = (*Polyline)(nil)
	_ Entity = (*Face3d)(nil)
	_ Entity = (*Hatch)(nil)
)

// common carries the handle and layer shared by every variant.
type common struct {
	handle string
	layer  *Layer
}

func newCommon() common {
	return common{handle: uuid.NewString()}
}

func (c *common) Handle() string    { return c.handle }
func (c *common) Layer() *Layer     { return c.layer }
func (c *common) SetLayer(l *Layer) { c.layer = l }
func (c *common) entity()           {}

// ensureHandle gives entities built as struct literals a handle.
func (c *common) ensureHandle() {
	if c.handle == "" {
		c.handle = uuid.NewString()
	}
}

// fresh is a copy with a new handle and the same layer.
func (c common) fresh() common {
	return common{handle: uuid.NewString(), layer: c.layer}
}

// handled is satisfied by every variant through common.
type handled interface{ ensureHandle() }

// ---------------------------------------------------------------------------
// Variants
// ---------------------------------------------------------------------------

type Point struct {
	common
	Position geom.Vector3D
}

func NewPoint(p geom.Vector3D) *Point {
	return &Point{common: newCommon(), Position: p}
}

func (*Point) Kind() EntityKind { return KindPoint }

func (e *Point) Clone() Entity {
	c := *e
	c.common = e.fresh()
	return &c
}

type Line struct {
	common
	Start, End geom.Vector3D
}

func NewLine(start, end geom.Vector3D) *Line {
	return &Line{common: newCommon(), Start: start, End: end}
}

func (*Line) Kind() EntityKind { return KindLine }

func (e *Line) Clone() Entity {
	c := *e
	c.common = e.fresh()
	return &c
}

// Line3D returns the segment Start..End.
func (e *Line) Line3D() geom.Line3D {
	return geom.NewLine3D(e.Start, e.End)
}

// Circle lies in the plane through Center perpendicular to Normal. A zero
// Normal means world Z.
type Circle struct {
	common
	Center geom.Vector3D
	Radius float64
	Normal geom.Vector3D
}

func NewCircle(center geom.Vector3D, radius float64) *Circle {
	return &Circle{common: newCommon(), Center: center, Radius: radius, Normal: geom.ZAxis}
}

func (*Circle) Kind() EntityKind { return KindCircle }

func (e *Circle) Clone() Entity {
	c := *e
	c.common = e.fresh()
	return &c
}

type Text struct {
	common
	Value    string
	Position geom.Vector3D
	Height   float64
	Rotation float64 // degrees
}

func NewText(value string, pos geom.Vector3D, height float64) *Text {
	return &Text{common: newCommon(), Value: value, Position: pos, Height: height}
}

func (*Text) Kind() EntityKind { return KindText }

func (e *Text) Clone() Entity {
	c := *e
	c.common = e.fresh()
	return &c
}

type MText struct {
	common
	Value    string
	Position geom.Vector3D
	Height   float64
	Width    float64 // reference rectangle width, 0 = unbounded
}

func NewMText(value string, pos geom.Vector3D, height float64) *MText {
	return &MText{common: newCommon(), Value: value, Position: pos, Height: height}
}

func (*MText) Kind() EntityKind { return KindMText }

func (e *MText) Clone() Entity {
	c := *e
	c.common = e.fresh()
	return &c
}

// Insert places a Block. The block is referenced, not owned: many inserts may
// share one block.
type Insert struct {
	common
	Block    *Block
	Position geom.Vector3D
	Normal   geom.Vector3D
	Rotation float64 // degrees around Normal
	Scale    geom.Vector3D
}

func NewInsert(b *Block, pos geom.Vector3D) *Insert {
	return &Insert{
		common:   newCommon(),
		Block:    b,
		Position: pos,
		Normal:   geom.ZAxis,
		Scale:    geom.NewVector3D(1, 1, 1),
	}
}

func (*Insert) Kind() EntityKind { return KindInsert }

func (e *Insert) Clone() Entity {
	c := *e
	c.common = e.fresh()
	return &c
}

// BlockName returns the referenced block's name, or "" for a dangling insert.
func (e *Insert) BlockName() string {
	if e.Block == nil {
		return ""
	}
	return e.Block.Name
}

// LwPolylineVertex is a 2D vertex in the polyline's object coordinate system.
type LwPolylineVertex struct {
	X, Y  float64
	Bulge float64
}

// LwPolyline is a planar polyline: 2D vertexes at height Elevation in the
// object coordinate system defined by Normal.
type LwPolyline struct {
	common
	Vertexes  []LwPolylineVertex
	Normal    geom.Vector3D
	Elevation float64
	Closed    bool
}

func NewLwPolyline(closed bool, vertexes ...LwPolylineVertex) *LwPolyline {
	return &LwPolyline{
		common:   newCommon(),
		Vertexes: vertexes,
		Normal:   geom.ZAxis,
		Closed:   closed,
	}
}

func (*LwPolyline) Kind() EntityKind { return KindLwPolyline }

func (e *LwPolyline) Clone() Entity {
	c := *e
	c.common = e.fresh()
	c.Vertexes = slices.Clone(e.Vertexes)
	return &c
}

// Polyline is a 3D polyline with world-space vertexes.
type Polyline struct {
	common
	Vertexes []geom.Vector3D
	Closed   bool
}

func NewPolyline(closed bool, vertexes ...geom.Vector3D) *Polyline {
	return &Polyline{common: newCommon(), Vertexes: vertexes, Closed: closed}
}

func (*Polyline) Kind() EntityKind { return KindPolyline }

func (e *Polyline) Clone() Entity {
	c := *e
	c.common = e.fresh()
	c.Vertexes = slices.Clone(e.Vertexes)
	return &c
}

// Face3d is a triangle, or a quad when HasFourth is set.
type Face3d struct {
	common
	First, Second, Third, Fourth geom.Vector3D
	HasFourth                    bool
}

// NewFace3d builds a face from 3 or 4 corners. Extra corners are ignored.
func NewFace3d(corners ...geom.Vector3D) *Face3d {
	f := &Face3d{common: newCommon()}
	for i, c := range corners {
		switch i {
		case 0:
			f.First = c
		case 1:
			f.Second = c
		case 2:
			f.Third = c
		case 3:
			f.Fourth = c
			f.HasFourth = true
		}
	}
	return f
}

func (*Face3d) Kind() EntityKind { return KindFace3d }

func (e *Face3d) Clone() Entity {
	c := *e
	c.common = e.fresh()
	return &c
}

// Corners returns the 3 or 4 corners in order.
func (e *Face3d) Corners() []geom.Vector3D {
	if e.HasFourth {
		return []geom.Vector3D{e.First, e.Second, e.Third, e.Fourth}
	}
	return []geom.Vector3D{e.First, e.Second, e.Third}
}

// Hatch is carried through the model but no transform supports it.
type Hatch struct {
	common
	Boundary []geom.Vector3D
	Pattern  string
}

func NewHatch(pattern string, boundary ...geom.Vector3D) *Hatch {
	return &Hatch{common: newCommon(), Pattern: pattern, Boundary: boundary}
}

func (*Hatch) Kind() EntityKind { return KindHatch }

func (e *Hatch) Clone() Entity {
	c := *e
	c.common = e.fresh()
	c.Boundary = slices.Clone(e.Boundary)
	return &c
}
