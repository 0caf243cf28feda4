package drawing

import (
	"strings"
	"testing"

	"github.com/chazu/cadkit/pkg/geom"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// buildValidDoc creates a document with one registered block holding a circle
// and two inserts of it.
func buildValidDoc() *Document {
	d := New()
	b := NewBlock("hole")
	b.Add(NewCircle(geom.Zero, 5))
	if err := d.AddBlock(b); err != nil {
		panic(err)
	}
	d.Add(NewInsert(b, geom.NewVector3D(10, 0, 0)))
	d.Add(NewInsert(b, geom.NewVector3D(20, 0, 0)))
	d.Add(NewLine(geom.Zero, geom.XAxis))
	return d
}

// hasError returns true if errs contains at least one error-severity finding
// whose message contains substr.
func hasError(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if e.Severity == SeverityError && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestValidateValidDoc(t *testing.T) {
	errs := Validate(buildValidDoc())
	if len(errs) != 0 {
		t.Errorf("expected no findings, got %v", errs)
	}
}

func TestValidateDanglingInsert(t *testing.T) {
	d := New()
	d.Add(&Insert{Position: geom.Zero, Scale: geom.NewVector3D(1, 1, 1)})

	errs := Validate(d)
	if !hasError(errs, "references no block") {
		t.Errorf("expected dangling insert error, got %v", errs)
	}
}

func TestValidateUnregisteredBlock(t *testing.T) {
	d := New()
	d.Add(NewInsert(NewBlock("ghost"), geom.Zero))

	if !hasError(Validate(d), `"ghost" is not registered`) {
		t.Errorf("expected unregistered block error")
	}
}

func TestValidateCycle(t *testing.T) {
	d := New()
	a := NewBlock("a")
	b := NewBlock("b")
	a.Add(NewInsert(b, geom.Zero))
	b.Add(NewInsert(a, geom.Zero))
	_ = d.AddBlock(a)
	_ = d.AddBlock(b)

	errs := Validate(d)
	if !hasError(errs, "cycle detected") {
		t.Errorf("expected cycle error, got %v", errs)
	}
	if !HasErrors(errs) {
		t.Errorf("HasErrors should be true")
	}
}

func TestValidateSelfInsert(t *testing.T) {
	d := New()
	a := NewBlock("a")
	a.Add(NewInsert(a, geom.Zero))
	_ = d.AddBlock(a)

	if !hasError(Validate(d), "cycle detected") {
		t.Errorf("expected cycle error for self-insert")
	}
}

func TestValidateEntityChecks(t *testing.T) {
	tests := []struct {
		name    string
		entity  Entity
		substr  string
		isError bool
	}{
		{"zero radius", NewCircle(geom.Zero, 0), "radius", true},
		{"short lwpolyline", NewLwPolyline(false, LwPolylineVertex{}), "lwpolyline has 1", true},
		{"short polyline", NewPolyline(false), "polyline has 0", true},
		{"zero line", NewLine(geom.XAxis, geom.XAxis), "zero length", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			d.Add(tt.entity)
			errs := Validate(d)
			if len(errs) != 1 {
				t.Fatalf("expected 1 finding, got %v", errs)
			}
			if !strings.Contains(errs[0].Message, tt.substr) {
				t.Errorf("message %q does not mention %q", errs[0].Message, tt.substr)
			}
			if (errs[0].Severity == SeverityError) != tt.isError {
				t.Errorf("severity = %s", errs[0].Severity)
			}
			if errs[0].Handle != tt.entity.Handle() {
				t.Errorf("finding not attributed to the entity")
			}
		})
	}
}

func TestValidateChecksBlockChildren(t *testing.T) {
	d := buildValidDoc()
	b, _ := d.Block("hole")
	b.Add(NewCircle(geom.Zero, -1))
	b.Add(NewHatch("SOLID"))

	errs := Validate(d)
	if !hasError(errs, "radius") {
		t.Errorf("expected radius error inside block")
	}
	for _, e := range errs {
		if e.Block != "hole" {
			t.Errorf("finding %v should name block hole", e)
		}
	}
	if !strings.Contains(errs[0].Error(), `block "hole"`) {
		t.Errorf("Error() = %q", errs[0].Error())
	}
}
