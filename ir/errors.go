package ir

import "errors"

// Error kinds reported by the packages of this module. Callers test for them
// with errors.Is; the wrapping error carries the details.
var (
	// the input graph or arguments have a shape that is not supported
	ErrInvalidArgument = errors.New("invalid argument")
	// the call does not match the function signature (e.g. result span vs void return)
	ErrFailedPrecondition = errors.New("failed precondition")
	// the graph and its metadata disagree with each other
	ErrInternal = errors.New("internal")
)
