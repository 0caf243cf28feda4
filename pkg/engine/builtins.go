package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/cadkit/pkg/drawing"
	"github.com/chazu/cadkit/pkg/geom"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a geom.Vector3D.
type sexpVec3 struct {
	vec geom.Vector3D
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpVec2 wraps a lightweight polyline vertex.
type sexpVec2 struct {
	vtx drawing.LwPolylineVertex
}

func (v *sexpVec2) SexpString(ps *zygo.PrintState) string {
	if v.vtx.Bulge != 0 {
		return fmt.Sprintf("(vec2 %g %g :bulge %g)", v.vtx.X, v.vtx.Y, v.vtx.Bulge)
	}
	return fmt.Sprintf("(vec2 %g %g)", v.vtx.X, v.vtx.Y)
}
func (v *sexpVec2) Type() *zygo.RegisteredType { return nil }

// sexpLayer wraps a layer registered in the document.
type sexpLayer struct {
	layer *drawing.Layer
}

func (l *sexpLayer) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(layer %q :color %d)", l.layer.Name, l.layer.Color)
}
func (l *sexpLayer) Type() *zygo.RegisteredType { return nil }

// sexpEntity wraps one entity produced by a drawing builtin.
type sexpEntity struct {
	e drawing.Entity
}

func (s *sexpEntity) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %s)", s.e.Kind(), shortHandle(s.e.Handle()))
}
func (s *sexpEntity) Type() *zygo.RegisteredType { return nil }

// sexpEntities wraps the group of entities produced by kit builtins such as
// star and cube.
type sexpEntities struct {
	kind string
	es   []drawing.Entity
}

func (s *sexpEntities) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %d entities)", s.kind, len(s.es))
}
func (s *sexpEntities) Type() *zygo.RegisteredType { return nil }

// sexpBlock wraps a block defined with defblock.
type sexpBlock struct {
	block *drawing.Block
}

func (b *sexpBlock) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(block %q %d entities)", b.block.Name, len(b.block.Entities))
}
func (b *sexpBlock) Type() *zygo.RegisteredType { return nil }

func shortHandle(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			i++
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
		} else {
			// Trailing keyword with no value is a flag.
			result.kw[name] = zygo.SexpNull
			i++
		}
	}
	return result
}

// float returns keyword key as a number, or def when absent.
func (a kwArgs) float(key string, def float64) (float64, error) {
	v, ok := a.kw[key]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

// vec3 returns keyword key as a vector, or def when absent.
func (a kwArgs) vec3(key string, def geom.Vector3D) (geom.Vector3D, error) {
	v, ok := a.kw[key]
	if !ok {
		return def, nil
	}
	vec, err := toVec3(v)
	if err != nil {
		return geom.Vector3D{}, fmt.Errorf("%s: %w", key, err)
	}
	return vec, nil
}

// flag reports keyword key as a boolean. A bare trailing keyword is true.
func (a kwArgs) flag(key string) (bool, error) {
	v, ok := a.kw[key]
	if !ok {
		return false, nil
	}
	if v == zygo.SexpNull {
		return true, nil
	}
	b, err := toBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a boolean from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected boolean, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a Vector3D from a sexpVec3.
func toVec3(s zygo.Sexp) (geom.Vector3D, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return geom.Vector3D{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toScale accepts a vec3 or a single number for uniform scale.
func toScale(s zygo.Sexp) (geom.Vector3D, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	f, err := toFloat64(s)
	if err != nil {
		return geom.Vector3D{}, fmt.Errorf("expected vec3 or number: %w", err)
	}
	return geom.NewVector3D(f, f, f), nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// expand flattens lists, arrays and entity groups so builtins can take
// vertexes and children either inline or collected.
func expand(args []zygo.Sexp) ([]zygo.Sexp, error) {
	var out []zygo.Sexp
	for _, a := range args {
		switch v := a.(type) {
		case *zygo.SexpPair, *zygo.SexpArray:
			items, err := sexpListToSlice(v)
			if err != nil {
				return nil, err
			}
			nested, err := expand(items)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
		case *sexpEntities:
			for _, e := range v.es {
				out = append(out, &sexpEntity{e: e})
			}
		default:
			out = append(out, a)
		}
	}
	return out, nil
}

func toVec3s(args []zygo.Sexp) ([]geom.Vector3D, error) {
	items, err := expand(args)
	if err != nil {
		return nil, err
	}
	out := make([]geom.Vector3D, 0, len(items))
	for i, item := range items {
		v, err := toVec3(item)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Document builder
// ---------------------------------------------------------------------------

// builder collects the entities a script creates. Entities start out
// pending; defblock claims the ones it receives, and whatever is unclaimed
// when the script ends lands at the top level of the document.
type builder struct {
	doc     *drawing.Document
	pending []drawing.Entity
	claimed map[drawing.Entity]string
}

func newBuilder() *builder {
	return &builder{
		doc:     drawing.New(),
		claimed: make(map[drawing.Entity]string),
	}
}

// emit records e as created by the script and wraps it for return.
func (b *builder) emit(e drawing.Entity) *sexpEntity {
	b.pending = append(b.pending, e)
	return &sexpEntity{e: e}
}

// emitAll records a kit group.
func (b *builder) emitAll(kind string, es []drawing.Entity) *sexpEntities {
	b.pending = append(b.pending, es...)
	return &sexpEntities{kind: kind, es: es}
}

// claim moves e into block. An entity belongs to at most one block.
func (b *builder) claim(e drawing.Entity, block *drawing.Block) error {
	if owner, ok := b.claimed[e]; ok {
		return fmt.Errorf("%s %s already belongs to block %q", e.Kind(), shortHandle(e.Handle()), owner)
	}
	b.claimed[e] = block.Name
	block.Add(e)
	return nil
}

// layer resolves a :layer argument: a layer value or a layer name.
func (b *builder) layer(s zygo.Sexp) (*drawing.Layer, error) {
	if l, ok := s.(*sexpLayer); ok {
		return l.layer, nil
	}
	name, err := toString(s)
	if err != nil {
		return nil, fmt.Errorf("expected layer or layer name: %w", err)
	}
	return b.doc.Layer(name), nil
}

// applyLayer sets the :layer keyword, when given, on every entity.
func (b *builder) applyLayer(pa kwArgs, es ...drawing.Entity) error {
	v, ok := pa.kw["layer"]
	if !ok {
		return nil
	}
	l, err := b.layer(v)
	if err != nil {
		return fmt.Errorf("layer: %w", err)
	}
	for _, e := range es {
		e.SetLayer(l)
	}
	return nil
}

// finish adds every unclaimed entity to the document in creation order.
func (b *builder) finish() *drawing.Document {
	for _, e := range b.pending {
		if _, ok := b.claimed[e]; ok {
			continue
		}
		b.doc.Add(e)
	}
	b.pending = nil
	return b.doc
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builtinFunc is the zygomys native function signature.
type builtinFunc = func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// registerBuiltins installs the drawing builtins into a zygomys environment.
// The builtins populate b during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *builder) {
	for name, fn := range map[string]builtinFunc{
		"vec3":       builtinVec3,
		"vec2":       builtinVec2,
		"layer":      b.builtinLayer,
		"point":      b.builtinPoint,
		"line":       b.builtinLine,
		"circle":     b.builtinCircle,
		"text":       b.builtinText,
		"mtext":      b.builtinMText,
		"lwpolyline": b.builtinLwPolyline,
		"polyline":   b.builtinPolyline,
		"face":       b.builtinFace,
		"hatch":      b.builtinHatch,
		"star":       b.builtinStar,
		"cube":       b.builtinCube,
		"cuboid":     b.builtinCuboid,
		"defblock":   b.builtinDefBlock,
		"insert":     b.builtinInsert,
	} {
		env.AddFunction(name, fn)
	}
}

// (vec3 1 2 3)
func builtinVec3(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 3 {
		return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
	}
	var c [3]float64
	for i, axis := range []string{"x", "y", "z"} {
		f, err := toFloat64(args[i])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: %s: %w", axis, err)
		}
		c[i] = f
	}
	return &sexpVec3{vec: geom.NewVector3D(c[0], c[1], c[2])}, nil
}

// (vec2 1 2 :bulge 0.5)
func builtinVec2(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	if len(pa.positional) != 2 {
		return zygo.SexpNull, fmt.Errorf("vec2 requires exactly 2 coordinates, got %d", len(pa.positional))
	}
	x, err := toFloat64(pa.positional[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("vec2: x: %w", err)
	}
	y, err := toFloat64(pa.positional[1])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("vec2: y: %w", err)
	}
	bulge, err := pa.float("bulge", 0)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("vec2: %w", err)
	}
	return &sexpVec2{vtx: drawing.LwPolylineVertex{X: x, Y: y, Bulge: bulge}}, nil
}

// (layer "walls" :color 3)
func (b *builder) builtinLayer(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	if len(pa.positional) != 1 {
		return zygo.SexpNull, fmt.Errorf("layer requires a name")
	}
	layerName, err := toString(pa.positional[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("layer: name: %w", err)
	}
	l := b.doc.Layer(layerName)
	if _, ok := pa.kw["color"]; ok {
		c, err := pa.float("color", 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("layer: %w", err)
		}
		l.Color = int(c)
	}
	return &sexpLayer{layer: l}, nil
}

// (point (vec3 0 0 0) :layer "marks")
func (b *builder) builtinPoint(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	if len(pa.positional) != 1 {
		return zygo.SexpNull, fmt.Errorf("point requires a position")
	}
	p, err := toVec3(pa.positional[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("point: %w", err)
	}
	e := drawing.NewPoint(p)
	if err := b.applyLayer(pa, e); err != nil {
		return zygo.SexpNull, fmt.Errorf("point: %w", err)
	}
	return b.emit(e), nil
}

// (line (vec3 0 0 0) (vec3 1 0 0))
func (b *builder) builtinLine(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	if len(pa.positional) != 2 {
		return zygo.SexpNull, fmt.Errorf("line requires a start and an end point")
	}
	start, err := toVec3(pa.positional[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("line: start: %w", err)
	}
	end, err := toVec3(pa.positional[1])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("line: end: %w", err)
	}
	e := drawing.NewLine(start, end)
	if err := b.applyLayer(pa, e); err != nil {
		return zygo.SexpNull, fmt.Errorf("line: %w", err)
	}
	return b.emit(e), nil
}

// (circle (vec3 0 0 0) 5 :normal (vec3 0 0 1))
func (b *builder) builtinCircle(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	if len(pa.positional) != 2 {
		return zygo.SexpNull, fmt.Errorf("circle requires a center and a radius")
	}
	center, err := toVec3(pa.positional[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("circle: center: %w", err)
	}
	r, err := toFloat64(pa.positional[1])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("circle: radius: %w", err)
	}
	e := drawing.NewCircle(center, r)
	if e.Normal, err = pa.vec3("normal", e.Normal); err != nil {
		return zygo.SexpNull, fmt.Errorf("circle: %w", err)
	}
	if err := b.applyLayer(pa, e); err != nil {
		return zygo.SexpNull, fmt.Errorf("circle: %w", err)
	}
	return b.emit(e), nil
}

// textArgs reads the shared (text|mtext "value" position :height h) shape.
func textArgs(pa kwArgs) (string, geom.Vector3D, float64, error) {
	if len(pa.positional) != 2 {
		return "", geom.Vector3D{}, 0, fmt.Errorf("requires a value and a position")
	}
	value, err := toString(pa.positional[0])
	if err != nil {
		return "", geom.Vector3D{}, 0, fmt.Errorf("value: %w", err)
	}
	pos, err := toVec3(pa.positional[1])
	if err != nil {
		return "", geom.Vector3D{}, 0, fmt.Errorf("position: %w", err)
	}
	h, err := pa.float("height", 1)
	if err != nil {
		return "", geom.Vector3D{}, 0, err
	}
	return value, pos, h, nil
}

// (text "A-1" (vec3 0 0 0) :height 2.5 :rotation 90)
func (b *builder) builtinText(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	value, pos, h, err := textArgs(pa)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("text: %w", err)
	}
	e := drawing.NewText(value, pos, h)
	if e.Rotation, err = pa.float("rotation", 0); err != nil {
		return zygo.SexpNull, fmt.Errorf("text: %w", err)
	}
	if err := b.applyLayer(pa, e); err != nil {
		return zygo.SexpNull, fmt.Errorf("text: %w", err)
	}
	return b.emit(e), nil
}

// (mtext "notes" (vec3 0 0 0) :height 2.5 :width 40)
func (b *builder) builtinMText(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	value, pos, h, err := textArgs(pa)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("mtext: %w", err)
	}
	e := drawing.NewMText(value, pos, h)
	if e.Width, err = pa.float("width", 0); err != nil {
		return zygo.SexpNull, fmt.Errorf("mtext: %w", err)
	}
	if err := b.applyLayer(pa, e); err != nil {
		return zygo.SexpNull, fmt.Errorf("mtext: %w", err)
	}
	return b.emit(e), nil
}

// (lwpolyline (vec2 0 0) (vec2 10 0) :closed true :elevation 5 :normal n)
func (b *builder) builtinLwPolyline(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	items, err := expand(pa.positional)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("lwpolyline: %w", err)
	}
	verts := make([]drawing.LwPolylineVertex, 0, len(items))
	for i, item := range items {
		v, ok := item.(*sexpVec2)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("lwpolyline: vertex %d: expected vec2, got %T (%s)", i, item, item.SexpString(nil))
		}
		verts = append(verts, v.vtx)
	}
	closed, err := pa.flag("closed")
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("lwpolyline: %w", err)
	}
	e := drawing.NewLwPolyline(closed, verts...)
	if e.Elevation, err = pa.float("elevation", 0); err != nil {
		return zygo.SexpNull, fmt.Errorf("lwpolyline: %w", err)
	}
	if e.Normal, err = pa.vec3("normal", e.Normal); err != nil {
		return zygo.SexpNull, fmt.Errorf("lwpolyline: %w", err)
	}
	if err := b.applyLayer(pa, e); err != nil {
		return zygo.SexpNull, fmt.Errorf("lwpolyline: %w", err)
	}
	return b.emit(e), nil
}

// (polyline (vec3 0 0 0) (vec3 1 1 1) :closed true)
func (b *builder) builtinPolyline(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	verts, err := toVec3s(pa.positional)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("polyline: %w", err)
	}
	closed, err := pa.flag("closed")
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("polyline: %w", err)
	}
	e := drawing.NewPolyline(closed, verts...)
	if err := b.applyLayer(pa, e); err != nil {
		return zygo.SexpNull, fmt.Errorf("polyline: %w", err)
	}
	return b.emit(e), nil
}

// (face a b c) or (face a b c d)
func (b *builder) builtinFace(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	corners, err := toVec3s(pa.positional)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("face: %w", err)
	}
	if len(corners) != 3 && len(corners) != 4 {
		return zygo.SexpNull, fmt.Errorf("face requires 3 or 4 corners, got %d", len(corners))
	}
	e := drawing.NewFace3d(corners...)
	if err := b.applyLayer(pa, e); err != nil {
		return zygo.SexpNull, fmt.Errorf("face: %w", err)
	}
	return b.emit(e), nil
}

// (hatch "ANSI31" (vec3 0 0 0) (vec3 1 0 0) (vec3 1 1 0))
func (b *builder) builtinHatch(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	if len(pa.positional) < 1 {
		return zygo.SexpNull, fmt.Errorf("hatch requires a pattern name")
	}
	pattern, err := toString(pa.positional[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("hatch: pattern: %w", err)
	}
	boundary, err := toVec3s(pa.positional[1:])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("hatch: %w", err)
	}
	e := drawing.NewHatch(pattern, boundary...)
	if err := b.applyLayer(pa, e); err != nil {
		return zygo.SexpNull, fmt.Errorf("hatch: %w", err)
	}
	return b.emit(e), nil
}

// centerAndSize reads the (kit center size) shape shared by star and cube.
func centerAndSize(pa kwArgs) (geom.Vector3D, float64, error) {
	if len(pa.positional) != 2 {
		return geom.Vector3D{}, 0, fmt.Errorf("requires a center and a size")
	}
	c, err := toVec3(pa.positional[0])
	if err != nil {
		return geom.Vector3D{}, 0, fmt.Errorf("center: %w", err)
	}
	l, err := toFloat64(pa.positional[1])
	if err != nil {
		return geom.Vector3D{}, 0, fmt.Errorf("size: %w", err)
	}
	return c, l, nil
}

func asEntities[E drawing.Entity](es []E) []drawing.Entity {
	out := make([]drawing.Entity, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}

// (star (vec3 0 0 0) 10)
func (b *builder) builtinStar(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	c, l, err := centerAndSize(pa)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("star: %w", err)
	}
	es := asEntities(drawing.Star(c, l))
	if err := b.applyLayer(pa, es...); err != nil {
		return zygo.SexpNull, fmt.Errorf("star: %w", err)
	}
	return b.emitAll("star", es), nil
}

// (cube (vec3 0 0 0) 10)
func (b *builder) builtinCube(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	c, l, err := centerAndSize(pa)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("cube: %w", err)
	}
	es := asEntities(drawing.Cube(c, l))
	if err := b.applyLayer(pa, es...); err != nil {
		return zygo.SexpNull, fmt.Errorf("cube: %w", err)
	}
	return b.emitAll("cube", es), nil
}

// (cuboid (vec3 0 0 0) (vec3 10 20 30))
func (b *builder) builtinCuboid(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	if len(pa.positional) != 2 {
		return zygo.SexpNull, fmt.Errorf("cuboid requires a center and a size vector")
	}
	c, err := toVec3(pa.positional[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("cuboid: center: %w", err)
	}
	size, err := toVec3(pa.positional[1])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("cuboid: size: %w", err)
	}
	es := asEntities(drawing.Cuboid(c, size))
	if err := b.applyLayer(pa, es...); err != nil {
		return zygo.SexpNull, fmt.Errorf("cuboid: %w", err)
	}
	return b.emitAll("cuboid", es), nil
}

// (defblock "bolt" :origin (vec3 0 0 0) (circle ...) (line ...))
func (b *builder) builtinDefBlock(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	if len(pa.positional) < 1 {
		return zygo.SexpNull, fmt.Errorf("defblock requires a name")
	}
	blockName, err := toString(pa.positional[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("defblock: name: %w", err)
	}
	if _, exists := b.doc.Block(blockName); exists {
		return zygo.SexpNull, fmt.Errorf("defblock: block %q is already defined", blockName)
	}

	block := drawing.NewBlock(blockName)
	if block.Origin, err = pa.vec3("origin", geom.Zero); err != nil {
		return zygo.SexpNull, fmt.Errorf("defblock: %w", err)
	}

	children, err := expand(pa.positional[1:])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("defblock: %w", err)
	}
	for i, child := range children {
		ent, ok := child.(*sexpEntity)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("defblock: child %d: expected entity, got %T (%s)",
				i, child, child.SexpString(nil))
		}
		if err := b.claim(ent.e, block); err != nil {
			return zygo.SexpNull, fmt.Errorf("defblock: %w", err)
		}
	}

	if err := b.doc.AddBlock(block); err != nil {
		return zygo.SexpNull, fmt.Errorf("defblock: %w", err)
	}
	return &sexpBlock{block: block}, nil
}

// (insert "bolt" :at (vec3 10 0 0) :rotation 90 :normal (vec3 0 0 1) :scale 2)
func (b *builder) builtinInsert(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	if len(pa.positional) != 1 {
		return zygo.SexpNull, fmt.Errorf("insert requires a block name")
	}

	var block *drawing.Block
	switch v := pa.positional[0].(type) {
	case *sexpBlock:
		block = v.block
	default:
		blockName, err := toString(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("insert: block: %w", err)
		}
		found, ok := b.doc.Block(blockName)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("insert: no block named %q", blockName)
		}
		block = found
	}

	at, err := pa.vec3("at", geom.Zero)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("insert: %w", err)
	}
	e := drawing.NewInsert(block, at)
	if e.Rotation, err = pa.float("rotation", 0); err != nil {
		return zygo.SexpNull, fmt.Errorf("insert: %w", err)
	}
	if e.Normal, err = pa.vec3("normal", e.Normal); err != nil {
		return zygo.SexpNull, fmt.Errorf("insert: %w", err)
	}
	if v, ok := pa.kw["scale"]; ok {
		if e.Scale, err = toScale(v); err != nil {
			return zygo.SexpNull, fmt.Errorf("insert: scale: %w", err)
		}
	}
	if err := b.applyLayer(pa, e); err != nil {
		return zygo.SexpNull, fmt.Errorf("insert: %w", err)
	}
	return b.emit(e), nil
}
