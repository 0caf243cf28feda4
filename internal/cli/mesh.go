package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/cadkit/pkg/kernel"
	"github.com/chazu/cadkit/pkg/tessellate"
)

func newMeshCmd() *cobra.Command {
	var output, stl string

	cmd := &cobra.Command{
		Use:   "mesh <input>",
		Short: "Tessellate the 3D faces of a drawing into JSON meshes",
		Long: `Mesh triangulates every 3D face of the drawing, resolving nested inserts,
and writes one mesh per layer as JSON. Without --output the JSON goes to
standard output. --stl additionally writes all triangles as one STL file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			doc, err := loadDocument(ctx, args[0])
			if err != nil {
				return err
			}
			meshes, err := tessellate.Tessellate(doc)
			if err != nil {
				return fmt.Errorf("tessellate %s: %w", args[0], err)
			}
			if meshes == nil {
				meshes = []*kernel.Mesh{}
			}
			prog.done(fmt.Sprintf("Tessellated %d triangles in %d meshes", triangleCount(meshes), len(meshes)))

			if stl != "" {
				if err := kernel.SaveSTL(stl, meshes...); err != nil {
					return err
				}
				logger.Info("wrote stl", "path", stl, "triangles", triangleCount(meshes))
			}

			data, err := json.MarshalIndent(meshes, "", "  ")
			if err != nil {
				return fmt.Errorf("encode meshes: %w", err)
			}
			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write meshes: %w", err)
			}
			printSuccess("Wrote %d meshes", len(meshes))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to this file")
	cmd.Flags().StringVar(&stl, "stl", "", "also write an STL file")
	return cmd
}

func triangleCount(meshes []*kernel.Mesh) int {
	n := 0
	for _, m := range meshes {
		n += m.TriangleCount()
	}
	return n
}
