package config

import (
	"errors"
	"fmt"
)

// ErrInvalidValue reports a configuration value outside its allowed set.
var ErrInvalidValue = errors.New("invalid config value")

// ParseError wraps a TOML syntax error with the file it came from.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
