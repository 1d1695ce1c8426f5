package diffusion

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrUnknownShape is returned for an unrecognised shape name.
	ErrUnknownShape = errors.New("diffusion: unknown tensor shape")

	// ErrParamCount is returned when a parameter slice does not match the shape.
	ErrParamCount = errors.New("diffusion: wrong number of tensor parameters")

	// ErrZeroVector is returned when a bond vector has zero length.
	ErrZeroVector = errors.New("diffusion: zero length bond vector")
)

// Huge is the sentinel used in place of 1/0.
const Huge = 1e99

// Shape is the closed set of diffusion tensor shapes.
type Shape int

const (
	// Sphere is isotropic diffusion.
	Sphere Shape = iota
	// Spheroid is axially symmetric diffusion.
	Spheroid
	// Ellipsoid is fully anisotropic diffusion.
	Ellipsoid
)

// String implements fmt.Stringer.
func (s Shape) String() string {
	switch s {
	case Sphere:
		return "sphere"
	case Spheroid:
		return "spheroid"
	case Ellipsoid:
		return "ellipsoid"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape converts "sphere", "spheroid" or "ellipsoid" into a Shape.
func ParseShape(s string) (Shape, error) {
	switch s {
	case "sphere":
		return Sphere, nil
	case "spheroid":
		return Spheroid, nil
	case "ellipsoid":
		return Ellipsoid, nil
	}

	return 0, fmt.Errorf("ParseShape(%q): %w", s, ErrUnknownShape)
}

// Param names a tensor parameter.
type Param string

// Tensor parameter names.
const (
	Tm    Param = "tm"
	Da    Param = "Da"
	Dr    Param = "Dr"
	Theta Param = "theta"
	Phi   Param = "phi"
	Alpha Param = "alpha"
	Beta  Param = "beta"
	Gamma Param = "gamma"
)

var shapeParams = map[Shape][]Param{
	Sphere:    {Tm},
	Spheroid:  {Tm, Da, Theta, Phi},
	Ellipsoid: {Tm, Da, Dr, Alpha, Beta, Gamma},
}

// Params returns the ordered parameter names for the shape. The order is the
// layout used in parameter vectors.
func (s Shape) Params() []Param {
	p := shapeParams[s]
	out := make([]Param, len(p))
	copy(out, p)

	return out
}

// NumParams returns 1, 4 or 6.
func (s Shape) NumParams() int { return len(shapeParams[s]) }

// Components returns the number of spectral density terms (1, 3 or 5).
func (s Shape) Components() int {
	switch s {
	case Spheroid:
		return 3
	case Ellipsoid:
		return 5
	default:
		return 1
	}
}

// IsAngle reports whether p is an orientation angle.
func (p Param) IsAngle() bool {
	switch p {
	case Theta, Phi, Alpha, Beta, Gamma:
		return true
	}

	return false
}

// SpheroidType refines a spheroid into prolate (Da ≥ 0) or oblate (Da ≤ 0).
type SpheroidType int

const (
	// Unspecified leaves the sign of Da free.
	Unspecified SpheroidType = iota
	// Prolate forces Da ≥ 0.
	Prolate
	// Oblate forces Da ≤ 0.
	Oblate
)

// String implements fmt.Stringer.
func (t SpheroidType) String() string {
	switch t {
	case Prolate:
		return "prolate"
	case Oblate:
		return "oblate"
	default:
		return ""
	}
}

// ParseSpheroidType accepts "", "prolate" or "oblate".
func ParseSpheroidType(s string) (SpheroidType, error) {
	switch s {
	case "":
		return Unspecified, nil
	case "prolate":
		return Prolate, nil
	case "oblate":
		return Oblate, nil
	}

	return 0, fmt.Errorf("ParseSpheroidType(%q): %w", s, ErrUnknownShape)
}
