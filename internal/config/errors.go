package config

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound indicates an explicitly requested config file is
	// missing.
	ErrFileNotFound = errors.New("config file not found")

	// ErrInvalidConfig wraps decoding and validation failures.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError describes an invalid setting.
type ValidationError struct {
	// Path is the setting path, e.g. "editor.history_limit".
	Path    string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Is matches ErrInvalidConfig.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}
