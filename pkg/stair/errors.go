package stair

import "errors"

var (
	// ErrNoWalkpath is returned when nothing of the walkpath is left after
	// the front reserve and the overlap.
	ErrNoWalkpath = errors.New("walkpath is too short for any step")

	// ErrNoBaseStep is returned when the first step line cannot be placed
	// on both strings. No other geometry can be derived without it.
	ErrNoBaseStep = errors.New("base step does not cross both strings")

	// ErrBadDimensions is returned when the height or the walkpath length
	// given to the optimizer is not positive.
	ErrBadDimensions = errors.New("stair height and walkpath length must be positive")
)
