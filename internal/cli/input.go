package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/cadkit/pkg/drawing"
	"github.com/chazu/cadkit/pkg/dxfio"
	"github.com/chazu/cadkit/pkg/engine"
)

// isDXF reports whether path names a DXF file. Everything else is read as a
// drawing script.
func isDXF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".dxf")
}

// loadDocument reads path as DXF or evaluates it as a script. Script errors
// are joined into a single error.
func loadDocument(ctx context.Context, path string) (*drawing.Document, error) {
	logger := loggerFromContext(ctx)
	if isDXF(path) {
		return dxfio.Load(path, logger)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	doc, evalErrs, err := engine.NewEngine(engine.WithLogger(logger)).Evaluate(string(src))
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		return nil, fmt.Errorf("evaluate %s: %w", path, joinEvalErrors(evalErrs))
	}
	return doc, nil
}

func joinEvalErrors(evalErrs []engine.EvalError) error {
	errs := make([]error, len(evalErrs))
	for i, e := range evalErrs {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// saveDocument writes doc as DXF and reports what was left out.
func saveDocument(ctx context.Context, doc *drawing.Document, path string) error {
	report, err := dxfio.Save(doc, path, loggerFromContext(ctx))
	if err != nil {
		return err
	}
	printSuccess("Wrote %s entities", StyleNumber.Render(fmt.Sprint(report.Written)))
	printFile(path)
	if n := report.SkippedTotal(); n > 0 {
		printWarning("%d entities have no DXF form and were skipped (use --flatten for inserts)", n)
	}
	return nil
}
