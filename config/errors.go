package config

import "errors"

var (
	// ErrInvalid is returned by Validate for an invalid configuration.
	ErrInvalid = errors.New("config: invalid configuration")

	// ErrBadValue is returned for a value that is neither a number nor a
	// recognised text.
	ErrBadValue = errors.New("config: invalid value")
)
