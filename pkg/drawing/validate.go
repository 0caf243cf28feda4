package drawing

import "fmt"

// ValidationSeverity indicates whether a finding makes the document unusable
// for transforms and export, or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks transform/export
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Handle   string // offending entity, empty for block-level findings
	Block    string // enclosing block, empty at top level
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	where := ""
	if e.Block != "" {
		where = fmt.Sprintf(" block %q", e.Block)
	}
	if e.Handle != "" {
		where += " entity " + shortHandle(e.Handle)
	}
	if where == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s]%s: %s", e.Severity, where, e.Message)
}

func shortHandle(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}

// HasErrors reports whether any finding has error severity.
func HasErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate runs structural checks over the document and every registered
// block. An empty result means the document is valid. It never mutates doc.
func Validate(doc *Document) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateBlockCycles(doc)...)
	errs = append(errs, validateEntities(doc, "", doc.Entities())...)
	for _, b := range doc.Blocks() {
		errs = append(errs, validateEntities(doc, b.Name, b.Entities)...)
	}
	return errs
}

// validateBlockCycles finds blocks that (transitively) insert themselves,
// using DFS with 3-color marking. White = unvisited, gray = on the current
// path, black = fully explored. Reaching a gray block closes a cycle.
func validateBlockCycles(doc *Document) []ValidationError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[*Block]int)
	var errs []ValidationError

	var visit func(b *Block) bool
	visit = func(b *Block) bool {
		switch color[b] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				Block:    b.Name,
				Message:  fmt.Sprintf("cycle detected: block %q inserts itself", b.Name),
				Severity: SeverityError,
			})
			return true
		}

		color[b] = gray
		for _, ins := range b.Inserts() {
			if ins.Block == nil {
				continue // reported by validateEntities
			}
			if visit(ins.Block) {
				return true
			}
		}
		color[b] = black
		return false
	}

	roots := doc.Blocks()
	for _, ins := range doc.Inserts() {
		if ins.Block != nil {
			roots = append(roots, ins.Block)
		}
	}
	for _, b := range roots {
		if color[b] == white && visit(b) {
			// One cycle error is sufficient.
			break
		}
	}
	return errs
}

// validateEntities checks per-entity invariants for one container.
func validateEntities(doc *Document, block string, es []Entity) []ValidationError {
	var errs []ValidationError
	add := func(e Entity, sev ValidationSeverity, format string, args ...any) {
		errs = append(errs, ValidationError{
			Handle:   e.Handle(),
			Block:    block,
			Message:  fmt.Sprintf(format, args...),
			Severity: sev,
		})
	}

	for _, e := range es {
		switch x := e.(type) {
		case *Insert:
			if x.Block == nil {
				add(x, SeverityError, "insert references no block")
				continue
			}
			if reg, ok := doc.Block(x.Block.Name); !ok || reg != x.Block {
				add(x, SeverityError, "insert block %q is not registered", x.Block.Name)
			}
			if x.Scale.X == 0 || x.Scale.Y == 0 || x.Scale.Z == 0 {
				add(x, SeverityWarning, "insert scale %s has a zero factor", x.Scale)
			}
		case *Circle:
			if x.Radius <= 0 {
				add(x, SeverityError, "circle radius %g is not positive", x.Radius)
			}
		case *Line:
			if x.Start == x.End {
				add(x, SeverityWarning, "line has zero length")
			}
		case *LwPolyline:
			if len(x.Vertexes) < 2 {
				add(x, SeverityError, "lwpolyline has %d vertexes, need at least 2", len(x.Vertexes))
			}
		case *Polyline:
			if len(x.Vertexes) < 2 {
				add(x, SeverityError, "polyline has %d vertexes, need at least 2", len(x.Vertexes))
			}
		case *Hatch:
			if block != "" {
				add(x, SeverityWarning, "hatch inside a block is dropped by transforms")
			}
		}
	}
	return errs
}
