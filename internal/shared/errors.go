package shared

import "errors"

// Engine error kinds. Callers match these with errors.Is; the "you may not
// do this yet" case is never an error but a false from a predicate.
var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrNotFound             = errors.New("not found")
	ErrInvalidState         = errors.New("invalid state")
	ErrInvalidIndex         = errors.New("invalid index")
	ErrInsufficientCards    = errors.New("insufficient cards")
)
