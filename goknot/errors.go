package goknot

import "errors"

// Errors
var (
	ErrMissingRepresentation = errors.New("knot has no usable representation")
	ErrMalformedDiagram      = errors.New("malformed planar diagram")
	ErrInvalidArc            = errors.New("invalid arc label")
	ErrIndexOutOfRange       = errors.New("index out of range")
	ErrComplexityLimit       = errors.New("crossing count exceeds bracket ceiling")
	ErrUnmarshal             = errors.New("unmarshal failed")
	ErrBadCatalogParam       = errors.New("bad catalog param")
	ErrUnknownKnot           = errors.New("unknown knot name")
	ErrBadExpr               = errors.New("bad knot expression")
	ErrNilKnot               = errors.New("nil knot")
)
