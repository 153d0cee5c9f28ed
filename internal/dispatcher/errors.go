package dispatcher

import "errors"

var (
	// ErrUnknownCommand indicates a keymap binding names neither a
	// registered command nor a valid command identifier. Such bindings are
	// logged and skipped.
	ErrUnknownCommand = errors.New("dispatcher: unknown command")

	// ErrPanic indicates a command panicked while executing.
	ErrPanic = errors.New("dispatcher: command panic")
)
