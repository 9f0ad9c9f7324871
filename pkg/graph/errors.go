package graph

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errors
var (
	ErrMissingNode = errors.New("missing node")
	ErrMissingEdge = errors.New("missing edge")
	ErrBadEncoding = errors.New("bad graph encoding")
	ErrBadEdgeData = errors.New("bad edge data")
)

// MissingNodeError reports a lookup or mutation that referenced a node slot
// that does not exist or has been removed.
type MissingNodeError struct {
	Index NodeIndex
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("missing node %d", int(e.Index))
}

func (e *MissingNodeError) Unwrap() error { return ErrMissingNode }

// MissingEdgeError reports a lookup or mutation that referenced an edge slot
// that does not exist or has been removed.
type MissingEdgeError struct {
	Index EdgeIndex
}

func (e *MissingEdgeError) Error() string {
	return fmt.Sprintf("missing edge %d", int(e.Index))
}

func (e *MissingEdgeError) Unwrap() error { return ErrMissingEdge }
