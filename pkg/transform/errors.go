package transform

import (
	"errors"
	"fmt"

	"github.com/chazu/cadkit/pkg/drawing"
)

var (
	// ErrNotImplemented is wrapped by NotImplementedError.
	ErrNotImplemented = errors.New("transform: not implemented")
	// ErrDanglingInsert is returned for an insert without a block.
	ErrDanglingInsert = errors.New("transform: insert references no block")
	// ErrBlockCycle is returned when a block transitively inserts itself.
	ErrBlockCycle = errors.New("transform: block cycle")
)

// NotImplementedError names the entity variant no transform exists for.
type NotImplementedError struct {
	Kind drawing.EntityKind
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("transform: %s: not implemented", e.Kind)
}

func (e *NotImplementedError) Unwrap() error {
	return ErrNotImplemented
}
