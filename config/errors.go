package config

import (
	"errors"
	"fmt"
)

// Error categories. Every hard parse error unwraps to one of these so callers
// can classify failures with errors.Is while the error text stays exactly what
// should be shown to the user.
var (
	// ErrCommandInvalid is returned when the command or command role does
	// not exist.
	ErrCommandInvalid = errors.New("invalid command")
	// ErrCommandRequired is returned when arguments were given but no
	// command was.
	ErrCommandRequired = errors.New("command required")
	// ErrOptionInvalid is returned when an option does not exist, cannot be
	// used the way it was given, or conflicts with another occurrence.
	ErrOptionInvalid = errors.New("invalid option")
	// ErrOptionInvalidValue is returned when an option value cannot be
	// parsed or fails a constraint.
	ErrOptionInvalidValue = errors.New("invalid option value")
	// ErrOptionRequired is returned when a required option did not resolve.
	ErrOptionRequired = errors.New("required option missing")
	// ErrParamInvalid is returned when the command does not allow
	// parameters.
	ErrParamInvalid = errors.New("invalid parameter")
)

type parseError struct {
	category error
	message  string
}

func (e *parseError) Error() string {
	return e.message
}

func (e *parseError) Unwrap() error {
	return e.category
}

func errf(category error, format string, args ...any) error {
	return &parseError{category: category, message: fmt.Sprintf(format, args...)}
}
