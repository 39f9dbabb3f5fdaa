package life

import "errors"

// Domain errors for simulation configuration.
var (
	// ErrShapeMismatch indicates a rule matrix whose side does not match
	// the live type count.
	ErrShapeMismatch = errors.New("life: rule matrix shape mismatch")

	// ErrParameterBounds indicates a spec field outside its valid range.
	ErrParameterBounds = errors.New("life: parameter out of valid bounds")
)
