package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a file that decodes but does not describe a
// usable configuration, or that does not decode at all.
var ErrInvalidConfig = errors.New("config: invalid config")

// ErrUnknownCircuit indicates a lookup of a circuit name the file does not define.
var ErrUnknownCircuit = errors.New("config: unknown circuit")

// Error carries the failing operation and file alongside the cause.
type Error struct {
	Op   string // "config.load", "config.map", "config.apply"
	Path string // source file, empty for in-memory input
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func invalidField(path, field, msg string) error {
	return &Error{
		Op:   "config.map",
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, ErrInvalidConfig),
	}
}
