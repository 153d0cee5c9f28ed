package keymap

import "errors"

var (
	// ErrEmptyCommand indicates a binding without a command.
	ErrEmptyCommand = errors.New("empty command")

	// ErrInvalidWrap indicates an unknown wrap mode.
	ErrInvalidWrap = errors.New("invalid wrap mode")

	// ErrNilKeymap is returned when registering a nil keymap.
	ErrNilKeymap = errors.New("nil keymap")

	// ErrUnknownCondition indicates a condition name the evaluator does not
	// know.
	ErrUnknownCondition = errors.New("unknown condition")

	// ErrInvalidCondition indicates a malformed condition expression.
	ErrInvalidCondition = errors.New("invalid condition")

	// ErrUnsupportedFormat indicates a keymap file extension other than
	// .yaml, .yml or .json.
	ErrUnsupportedFormat = errors.New("unsupported keymap format")
)
