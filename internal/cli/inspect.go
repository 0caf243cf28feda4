package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/chazu/cadkit/pkg/drawing"
	"github.com/chazu/cadkit/pkg/engine"
)

// inspection is what inspect reports about one drawing.
type inspection struct {
	doc        *drawing.Document
	errors     []string
	warnings   []string
	shortLines int
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <input>",
		Short: "Summarise a drawing and report validation issues",
		Long: `Inspect counts the entities of a drawing by kind, lists its layers and
blocks, and runs the structural checks. Lines shorter than the length
tolerance are counted separately. The command fails when any check reports
an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := inspect(ctx, args[0])
			if err != nil {
				return err
			}
			printInspection(args[0], res)
			if n := len(res.errors); n > 0 {
				return fmt.Errorf("%s: %d validation errors", args[0], n)
			}
			return nil
		},
	}
}

// inspect loads path and collects its summary. Scripts are checked by the
// engine so that evaluation errors are reported alongside validation.
func inspect(ctx context.Context, path string) (inspection, error) {
	var res inspection
	if isDXF(path) {
		doc, err := loadDocument(ctx, path)
		if err != nil {
			return res, err
		}
		res.doc = doc
		for _, issue := range drawing.Validate(doc) {
			if issue.Severity == drawing.SeverityError {
				res.errors = append(res.errors, issue.Error())
			} else {
				res.warnings = append(res.warnings, issue.Error())
			}
		}
	} else {
		src, err := os.ReadFile(path)
		if err != nil {
			return res, fmt.Errorf("read script: %w", err)
		}
		checked, err := engine.NewEngine(engine.WithLogger(loggerFromContext(ctx))).Check(string(src))
		if err != nil {
			return res, fmt.Errorf("evaluate %s: %w", path, err)
		}
		res.doc = checked.Document
		for _, e := range checked.Errors {
			res.errors = append(res.errors, e.Error())
		}
		for _, w := range checked.Warnings {
			res.warnings = append(res.warnings, w.Message)
		}
	}

	if res.doc != nil {
		tol := configFromContext(ctx).Tolerance.Length
		for _, l := range res.doc.Lines() {
			if l.Start.Distance(l.End) <= tol {
				res.shortLines++
			}
		}
	}
	return res, nil
}

func printInspection(path string, res inspection) {
	printTitle(path)
	if res.doc != nil {
		counts := res.doc.CountByKind()
		kinds := make([]drawing.EntityKind, 0, len(counts))
		for k := range counts {
			kinds = append(kinds, k)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

		printKeyValue("entities", StyleNumber.Render(fmt.Sprint(res.doc.Len())))
		for _, k := range kinds {
			printDetail("%-12s %d", k, counts[k])
		}
		printKeyValue("layers", fmt.Sprint(len(res.doc.Layers())))
		for _, l := range res.doc.Layers() {
			printDetail("%s", l.Name)
		}
		printKeyValue("blocks", fmt.Sprint(len(res.doc.Blocks())))
		for _, b := range res.doc.Blocks() {
			printDetail("%s (%d entities)", b.Name, len(b.Entities))
		}
		if res.shortLines > 0 {
			printWarning("%d lines are shorter than the length tolerance", res.shortLines)
		}
	}

	for _, w := range res.warnings {
		printWarning("%s", w)
	}
	for _, e := range res.errors {
		printError("%s", e)
	}
	if len(res.errors) == 0 {
		printSuccess("No validation errors")
	}
}
