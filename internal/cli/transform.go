package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/cadkit/pkg/drawing"
	"github.com/chazu/cadkit/pkg/geom"
	"github.com/chazu/cadkit/pkg/transform"
)

// transformOptions holds the transform command flags.
type transformOptions struct {
	output      string
	translate   []float64
	scale       []float64
	scaleCenter []float64
	origin      []float64
	normal      []float64
	flatten     bool
}

func newTransformCmd() *cobra.Command {
	var opts transformOptions

	cmd := &cobra.Command{
		Use:   "transform <input>",
		Short: "Transform a drawing and write it as DXF",
		Long: `Transform reads a DXF file or evaluates a drawing script, maps every
entity through scale, object coordinate system and translation (in that
order), and writes the result as DXF.

Points given with --origin/--normal are taken as object coordinates of that
frame and mapped to world coordinates.`,
		Example: `  cadkit transform part.cad -o part.dxf --translate 10,0,0
  cadkit transform in.dxf -o out.dxf --normal 0,1,0 --flatten`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output DXF file (required)")
	cmd.Flags().Float64SliceVar(&opts.translate, "translate", nil, "translation x,y,z")
	cmd.Flags().Float64SliceVar(&opts.scale, "scale", nil, "scale factors x,y,z")
	cmd.Flags().Float64SliceVar(&opts.scaleCenter, "scale-center", nil, "scale center x,y,z")
	cmd.Flags().Float64SliceVar(&opts.origin, "origin", nil, "object coordinate system origin x,y,z")
	cmd.Flags().Float64SliceVar(&opts.normal, "normal", nil, "object coordinate system normal x,y,z")
	cmd.Flags().BoolVar(&opts.flatten, "flatten", false, "replace inserts with their block content")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runTransform(cmd *cobra.Command, input string, opts transformOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)
	prog := newProgress(logger)

	fn, err := opts.pointFunc(cfg)
	if err != nil {
		return err
	}

	doc, err := loadDocument(ctx, input)
	if err != nil {
		return err
	}

	var layer *drawing.Layer
	if cfg.Output.Layer != "" {
		layer = drawing.NewLayer(cfg.Output.Layer)
	}
	var result *drawing.Document
	if opts.flatten {
		result, err = flattenDocument(doc, fn, layer)
	} else {
		result, err = transform.ToDocument(transform.Document(doc, fn), layer)
	}
	if err != nil {
		return fmt.Errorf("transform %s: %w", input, err)
	}
	prog.done(fmt.Sprintf("Transformed %d entities", result.Len()))

	return saveDocument(ctx, result, opts.output)
}

// pointFunc composes the point mapping selected by the flags.
func (o transformOptions) pointFunc(cfg *Config) (transform.Func, error) {
	translate, err := vectorFlag("translate", o.translate, geom.Zero)
	if err != nil {
		return nil, err
	}
	scale, err := vectorFlag("scale", o.scale, geom.NewVector3D(1, 1, 1))
	if err != nil {
		return nil, err
	}
	center, err := vectorFlag("scale-center", o.scaleCenter, geom.Zero)
	if err != nil {
		return nil, err
	}
	origin, err := vectorFlag("origin", o.origin, geom.Zero)
	if err != nil {
		return nil, err
	}
	normal, err := vectorFlag("normal", o.normal, geom.ZAxis)
	if err != nil {
		return nil, err
	}
	if normal.Length() == 0 {
		return nil, fmt.Errorf("--normal must not be the zero vector")
	}

	fns := []transform.Func{transform.ScaleAbout(center, scale)}
	if !isWorldFrame(cfg, origin, normal) {
		fns = append(fns, transform.ToWCS(geom.NewCoordinateSystem3D(origin, normal)))
	}
	fns = append(fns, transform.Translate(translate))
	return transform.Compose(fns...), nil
}

// isWorldFrame reports whether origin and normal describe the world
// coordinate system within the configured tolerances.
func isWorldFrame(cfg *Config, origin, normal geom.Vector3D) bool {
	return origin.EqualsTol(cfg.Tolerance.Length, geom.Zero) &&
		normal.Normalized().EqualsTol(cfg.Tolerance.Normalized, geom.ZAxis)
}

// vectorFlag turns an x,y,z flag value into a vector. An unset flag yields def.
func vectorFlag(name string, vals []float64, def geom.Vector3D) (geom.Vector3D, error) {
	switch len(vals) {
	case 0:
		return def, nil
	case 3:
		return geom.NewVector3D(vals[0], vals[1], vals[2]), nil
	default:
		return geom.Zero, fmt.Errorf("--%s needs 3 components x,y,z, got %d", name, len(vals))
	}
}

// flattenDocument replaces every insert of doc with world-space copies of
// its block content, then maps the flat entities through fn. A non-nil layer
// overrides each entity's layer.
func flattenDocument(doc *drawing.Document, fn transform.Func, layer *drawing.Layer) (*drawing.Document, error) {
	es, err := transform.Flatten(doc)
	if err != nil {
		return nil, err
	}
	flat := drawing.New()
	for _, e := range es {
		mapped, err := mapWorldEntity(e, fn)
		if err != nil {
			return nil, err
		}
		flat.AddEntity(mapped, layer)
	}
	return flat, nil
}

// mapWorldEntity transforms a world-space entity. Circles are mapped with
// the image of the origin removed from the radius, then placed at fn(center).
func mapWorldEntity(e drawing.Entity, fn transform.Func) (drawing.Entity, error) {
	c, ok := e.(*drawing.Circle)
	if !ok {
		return transform.Entity(e, fn, nil)
	}
	origin := fn(geom.Zero)
	out, err := transform.Entity(c, fn, &origin)
	if err != nil {
		return nil, err
	}
	out.(*drawing.Circle).Center = fn(c.Center)
	return out, nil
}
