package models

import "errors"

var (
	// ErrUnknownModel is returned by Select for a name outside the catalogue.
	ErrUnknownModel = errors.New("models: unknown model")

	// ErrUnknownParameter is returned for a parameter name that is not one of
	// the model-free parameters.
	ErrUnknownParameter = errors.New("models: unsupported parameter")

	// ErrInvalidEquation is returned for an equation outside mf_orig, mf_ext, mf_ext2.
	ErrInvalidEquation = errors.New("models: invalid model-free equation type")

	// ErrDuplicateParameter is returned when a parameter appears twice.
	ErrDuplicateParameter = errors.New("models: duplicated parameter")

	// ErrInvalidCombination is returned when parameters are inconsistent with
	// each other or with the equation.
	ErrInvalidCombination = errors.New("models: invalid combination of parameters")
)
