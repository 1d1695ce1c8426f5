package minimise

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/modelfree/models"
)

var (
	// ErrNoModel indicates a selected spin without a model-free model.
	ErrNoModel = errors.New("minimise: spin has no model")

	// ErrNoNucleus indicates a selected spin whose heteronucleus or proton
	// type is unset.
	ErrNoNucleus = errors.New("minimise: spin nucleus type not set")

	// ErrMissingValue indicates a fixed parameter (r, CSA) without a value.
	ErrMissingValue = errors.New("minimise: parameter value not set")

	// ErrNoTensor indicates a run that needs a diffusion tensor without one.
	ErrNoTensor = errors.New("minimise: diffusion tensor not set")

	// ErrNoVector indicates a spin without a bond vector under a
	// non-spherical tensor.
	ErrNoVector = errors.New("minimise: bond vector not set")

	// ErrLocalTmMismatch indicates a mixture of local_tm and non-local_tm
	// models among selected spins.
	ErrLocalTmMismatch = errors.New("minimise: all spins must either use local_tm or not")

	// ErrAllFixed indicates nothing to optimise.
	ErrAllFixed = errors.New("minimise: all parameters are fixed")

	// ErrInvalidError indicates a relaxation error that is zero or negative.
	ErrInvalidError = errors.New("minimise: relaxation error must be > 0")

	// ErrNonFiniteCost indicates an optimised χ² that is NaN or infinite.
	ErrNonFiniteCost = errors.New("minimise: chi-squared is not finite")

	// ErrDimension indicates a parameter vector of the wrong length.
	ErrDimension = errors.New("minimise: parameter vector length mismatch")

	// ErrSpinRequired indicates a per-spin operation called without a spin.
	ErrSpinRequired = errors.New("minimise: spin required for this model type")

	// ErrNoData indicates a spin without relaxation data.
	ErrNoData = errors.New("minimise: spin has no relaxation data")
)

// MissingValueError names the spin and parameter lacking a value.
type MissingValueError struct {
	Spin  string
	Param models.ParamName
}

// Error implements error.
func (e *MissingValueError) Error() string {
	return fmt.Sprintf("minimise: spin %q: value of %s not set", e.Spin, e.Param)
}

// Unwrap returns ErrMissingValue.
func (e *MissingValueError) Unwrap() error { return ErrMissingValue }
