// Package engine provides the Lisp evaluation engine for cadkit drawings.
// It wraps zygomys in a sandboxed environment and produces a
// drawing.Document from user source code.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/chazu/cadkit/pkg/drawing"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalWarning is a structural issue in an evaluated document that does not
// stop it from being used.
type EvalWarning struct {
	Handle  string
	Block   string
	Message string
}

// EvalResult bundles the full output of Check.
type EvalResult struct {
	Document *drawing.Document
	Errors   []EvalError
	Warnings []EvalWarning
}

// Engine wraps the zygomys interpreter for drawing scripts.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	logger     *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes engine debug output to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: log.Default()}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	return e
}

// Evaluate takes Lisp source code and produces a new Document.
// Each call creates a fresh zygomys sandbox for deterministic evaluation.
//
// Return semantics:
//   - On success: returns document + nil errors + nil error
//   - On parse/eval failure: returns nil document + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*drawing.Document, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		doc, evalErrs, err := e.evaluate(source)
		ch <- evalResult{doc: doc, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// Check evaluates source and validates the resulting document. Validation
// errors are reported as EvalErrors without position, warnings as
// EvalWarnings. The document is returned even when validation fails.
func (e *Engine) Check(source string) (EvalResult, error) {
	doc, evalErrs, err := e.Evaluate(source)
	if err != nil {
		return EvalResult{}, err
	}
	res := EvalResult{Document: doc, Errors: evalErrs}
	if doc == nil {
		return res, nil
	}
	for _, issue := range drawing.Validate(doc) {
		if issue.Severity == drawing.SeverityError {
			res.Errors = append(res.Errors, EvalError{Message: issue.Error()})
			continue
		}
		res.Warnings = append(res.Warnings, EvalWarning{
			Handle:  issue.Handle,
			Block:   issue.Block,
			Message: issue.Message,
		})
	}
	return res, nil
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*drawing.Document, []EvalError, error) {
	// Empty source is a valid program that produces an empty document.
	if strings.TrimSpace(source) == "" {
		return drawing.New(), nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	b := newBuilder()
	registerBuiltins(env, b)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	_, err = env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	doc := b.finish()
	e.logger.Debug("evaluated script",
		"entities", doc.Len(),
		"blocks", len(doc.Blocks()),
		"layers", len(doc.Layers()))
	return doc, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
