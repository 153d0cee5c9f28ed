package lua

import "errors"

var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrInvalidCondition is returned for conditions that do not compile.
	ErrInvalidCondition = errors.New("invalid lua condition")

	// ErrConditionFailed is returned when a condition raises an error or
	// runs past the timeout.
	ErrConditionFailed = errors.New("lua condition failed")
)
