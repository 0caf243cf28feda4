// Package dxfio reads and writes drawing documents as DXF files through
// github.com/yofu/dxf.
//
// The writer covers the entity kinds yofu/dxf has primitives for: points,
// lines, circles, single-line text, lightweight polylines, polylines and 3D
// faces. Inserts, multi-line text and hatches are skipped and counted in the
// SaveReport; flatten inserts with transform.Flatten first when block
// content must reach the file.
package dxfio

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/chazu/cadkit/pkg/drawing"
	"github.com/chazu/cadkit/pkg/geom"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	dxfdrawing "github.com/yofu/dxf/drawing"
)

// defaultLayer exists in every new yofu drawing.
const defaultLayer = "0"

// SaveReport summarises what Save wrote.
type SaveReport struct {
	Written int
	Skipped map[drawing.EntityKind]int
}

// SkippedTotal is the number of entities left out of the file.
func (r SaveReport) SkippedTotal() int {
	n := 0
	for _, c := range r.Skipped {
		n += c
	}
	return n
}

// Save writes the top-level entities of doc to path. A nil logger uses
// log.Default().
func Save(doc *drawing.Document, path string, logger *log.Logger) (SaveReport, error) {
	if logger == nil {
		logger = log.Default()
	}
	report := SaveReport{Skipped: make(map[drawing.EntityKind]int)}

	d := dxf.NewDrawing()
	for _, l := range doc.Layers() {
		if l.Name == defaultLayer {
			continue
		}
		if _, err := d.AddLayer(l.Name, color.ColorNumber(l.Color), dxf.DefaultLineType, false); err != nil {
			return report, fmt.Errorf("dxfio: add layer %q: %w", l.Name, err)
		}
	}

	for _, e := range doc.Entities() {
		if err := d.ChangeLayer(layerOf(e)); err != nil {
			return report, fmt.Errorf("dxfio: entity %s: %w", e.Handle(), err)
		}
		ok, err := writeEntity(d, e)
		if err != nil {
			return report, fmt.Errorf("dxfio: write %s %s: %w", e.Kind(), e.Handle(), err)
		}
		if !ok {
			report.Skipped[e.Kind()]++
			continue
		}
		report.Written++
	}

	if err := d.SaveAs(path); err != nil {
		return report, fmt.Errorf("dxfio: save %s: %w", path, err)
	}

	for _, k := range sortedKinds(report.Skipped) {
		logger.Debug("skipped entities without a DXF writer", "kind", k, "count", report.Skipped[k])
	}
	logger.Debug("wrote dxf", "path", path, "entities", report.Written)
	return report, nil
}

func layerOf(e drawing.Entity) string {
	if l := e.Layer(); l != nil && l.Name != "" {
		return l.Name
	}
	return defaultLayer
}

// writeEntity adds e to d and reports whether its kind is supported.
func writeEntity(d *dxfdrawing.Drawing, e drawing.Entity) (bool, error) {
	var err error
	switch x := e.(type) {
	case *drawing.Point:
		_, err = d.Point(x.Position.X, x.Position.Y, x.Position.Z)
	case *drawing.Line:
		_, err = d.Line(x.Start.X, x.Start.Y, x.Start.Z, x.End.X, x.End.Y, x.End.Z)
	case *drawing.Circle:
		_, err = d.Circle(x.Center.X, x.Center.Y, x.Center.Z, x.Radius)
	case *drawing.Text:
		t, terr := d.Text(x.Value, x.Position.X, x.Position.Y, x.Position.Z, x.Height)
		if terr == nil {
			t.Rotation = x.Rotation
		}
		err = terr
	case *drawing.LwPolyline:
		if x.Elevation != 0 || (x.Normal != geom.ZAxis && x.Normal != geom.Zero) {
			// Out of the XY plane: write the lifted world points instead.
			_, err = d.Polyline(x.Closed, coordList(x.Vector3DCoords())...)
			break
		}
		verts := make([][]float64, len(x.Vertexes))
		for i, vtx := range x.Vertexes {
			verts[i] = []float64{vtx.X, vtx.Y}
		}
		_, err = d.LwPolyline(x.Closed, verts...)
	case *drawing.Polyline:
		_, err = d.Polyline(x.Closed, coordList(x.Vertexes)...)
	case *drawing.Face3d:
		fourth := x.Third
		if x.HasFourth {
			fourth = x.Fourth
		}
		_, err = d.ThreeDFace([][]float64{coords(x.First), coords(x.Second), coords(x.Third), coords(fourth)})
	default:
		return false, nil
	}
	return true, err
}

func coords(p geom.Vector3D) []float64 {
	return []float64{p.X, p.Y, p.Z}
}

func coordList(ps []geom.Vector3D) [][]float64 {
	out := make([][]float64, len(ps))
	for i, p := range ps {
		out[i] = coords(p)
	}
	return out
}

func sortedKinds(m map[drawing.EntityKind]int) []drawing.EntityKind {
	out := make([]drawing.EntityKind, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
