package command

import "errors"

// Registry construction errors.
var (
	// ErrDuplicateCommand indicates two commands share a name.
	ErrDuplicateCommand = errors.New("duplicate command name")

	// ErrDuplicatePattern indicates two commands claim the same identifier.
	ErrDuplicatePattern = errors.New("duplicate command pattern")

	// ErrInvalidPattern indicates a pattern that cannot be tokenized.
	ErrInvalidPattern = errors.New("invalid command pattern")
)

// ErrInvalidColor indicates a color spec ParseColor cannot read.
var ErrInvalidColor = errors.New("invalid color")
