package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/cadkit/pkg/drawing"
	"github.com/chazu/cadkit/pkg/transform"
)

func newExplodeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "explode <input>",
		Short: "Place the circles of every insert in world coordinates",
		Long: `Explode resolves each top-level insert of the drawing and emits world-space
copies of the circles in its block. Other block content and insert scale
are ignored; use "transform --flatten" for a full expansion.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := loadDocument(ctx, args[0])
			if err != nil {
				return err
			}

			exploded := explodeInserts(doc, configFromContext(ctx).Output.Layer)
			printInfo("Exploded %s inserts into %s circles",
				StyleNumber.Render(fmt.Sprint(len(doc.Inserts()))),
				StyleNumber.Render(fmt.Sprint(exploded.Len())))

			if output == "" {
				for _, c := range exploded.Circles() {
					printDetail("circle %s r=%g", c.Center, c.Radius)
				}
				return nil
			}
			return saveDocument(ctx, exploded, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the circles to this DXF file")
	return cmd
}

// explodeInserts collects Explode output for every top-level insert. The
// circles take the insert's layer unless layerName is set.
func explodeInserts(doc *drawing.Document, layerName string) *drawing.Document {
	out := drawing.New()
	var override *drawing.Layer
	if layerName != "" {
		override = out.Layer(layerName)
	}
	for _, ins := range doc.Inserts() {
		layer := override
		if layer == nil {
			layer = ins.Layer()
		}
		out.AddEntities(transform.Explode(ins), layer)
	}
	return out
}
