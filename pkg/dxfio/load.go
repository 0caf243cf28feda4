package dxfio

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/chazu/cadkit/pkg/drawing"
	"github.com/chazu/cadkit/pkg/geom"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
	"github.com/yofu/dxf/table"
)

// layered is the part of a yofu entity that knows its layer.
type layered interface {
	Layer() *table.Layer
}

// Load reads the points, lines, circles, text, lightweight polylines and 3D
// faces of the DXF file at path into a new document. Other entities are
// skipped. A nil logger uses log.Default().
func Load(path string, logger *log.Logger) (*drawing.Document, error) {
	if logger == nil {
		logger = log.Default()
	}

	d, err := dxf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dxfio: open %s: %w", path, err)
	}

	doc := drawing.New()
	skipped := 0
	for _, de := range d.Entities() {
		e := convert(de)
		if e == nil {
			skipped++
			logger.Debug("skipped dxf entity", "type", fmt.Sprintf("%T", de))
			continue
		}
		if l, ok := de.(layered); ok && l.Layer() != nil {
			e.SetLayer(doc.Layer(l.Layer().Name()))
		}
		doc.Add(e)
	}

	logger.Debug("read dxf", "path", path, "entities", doc.Len(), "skipped", skipped)
	return doc, nil
}

// convert maps one yofu entity onto the drawing model, or returns nil.
func convert(de entity.Entity) drawing.Entity {
	switch x := de.(type) {
	case *entity.Point:
		return drawing.NewPoint(point(x.Coord))
	case *entity.Line:
		return drawing.NewLine(point(x.Start), point(x.End))
	case *entity.Circle:
		return drawing.NewCircle(point(x.Center), x.Radius)
	case *entity.Text:
		t := drawing.NewText(x.Value, point(x.Coord1), x.Height)
		t.Rotation = x.Rotation
		return t
	case *entity.LwPolyline:
		verts := make([]drawing.LwPolylineVertex, len(x.Vertices))
		for i, p := range x.Vertices {
			if len(p) >= 2 {
				verts[i] = drawing.LwPolylineVertex{X: p[0], Y: p[1]}
			}
		}
		return drawing.NewLwPolyline(x.Closed, verts...)
	case *entity.ThreeDFace:
		corners := make([]geom.Vector3D, 0, 4)
		for _, p := range x.Points {
			corners = append(corners, point(p))
		}
		// A repeated last corner marks a triangle.
		if len(corners) == 4 && corners[3] == corners[2] {
			corners = corners[:3]
		}
		if len(corners) < 3 {
			return nil
		}
		return drawing.NewFace3d(corners...)
	}
	return nil
}

// point reads up to three coordinates; missing ones are zero.
func point(c []float64) geom.Vector3D {
	var xyz [3]float64
	copy(xyz[:], c)
	return geom.NewVector3D(xyz[0], xyz[1], xyz[2])
}
