package diffusion

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// inv returns 1/v, or Huge when v is zero.
func inv(v float64) float64 {
	if v == 0 {
		return Huge
	}

	return 1 / v
}

// Unit normalises v. A zero vector yields ErrZeroVector.
func Unit(v r3.Vec) (r3.Vec, error) {
	if r3.Norm(v) == 0 {
		return r3.Vec{}, ErrZeroVector
	}

	return r3.Unit(v), nil
}

// ParallelAxis returns the unit vector along Dpar of a spheroid:
// (sinθ·cosφ, sinθ·sinφ, cosθ).
func ParallelAxis(theta, phi float64) r3.Vec {
	st, ct := math.Sincos(theta)
	sp, cp := math.Sincos(phi)

	return r3.Vec{X: st * cp, Y: st * sp, Z: ct}
}

// Frame returns the rotation whose rows are the ellipsoid axes Dx, Dy, Dz for
// the Euler angles (alpha, beta, gamma).
func Frame(alpha, beta, gamma float64) *mat.Dense {
	sa, ca := math.Sincos(alpha)
	sb, cb := math.Sincos(beta)
	sg, cg := math.Sincos(gamma)

	return mat.NewDense(3, 3, []float64{
		-sa*sg + ca*cb*cg, -sa*cg - ca*cb*sg, ca * sb, // Dx
		ca*sg + sa*cb*cg, ca*cg - sa*cb*sg, sa * sb, // Dy
		-sb * cg, sb * sg, cb, // Dz
	})
}

// DirectionCosines projects the unit bond vector onto the ellipsoid frame.
func DirectionCosines(alpha, beta, gamma float64, unit r3.Vec) (dx, dy, dz float64) {
	var d mat.VecDense
	d.MulVec(Frame(alpha, beta, gamma), mat.NewVecDense(3, []float64{unit.X, unit.Y, unit.Z}))

	return d.AtVec(0), d.AtVec(1), d.AtVec(2)
}

// Components returns the weights cᵢ and correlation times τᵢ of the
// spectral density terms for the given shape and parameters (in the order of
// Shape.Params). unit is the unit bond vector; it is ignored for a sphere.
//
// Complexity: O(1).
func Components(shape Shape, params []float64, unit r3.Vec) (ci, ti []float64, err error) {
	if len(params) != shape.NumParams() {
		return nil, nil, fmt.Errorf("Components(%s): got %d params: %w", shape, len(params), ErrParamCount)
	}

	switch shape {
	case Sphere:
		return []float64{1}, []float64{params[0]}, nil

	case Spheroid:
		var (
			invTm = inv(params[0])
			da    = params[1]
			dz    = r3.Dot(unit, ParallelAxis(params[2], params[3]))
			dz2   = dz * dz
		)
		ci = []float64{
			0.25 * (3*dz2 - 1) * (3*dz2 - 1),
			3 * dz2 * (1 - dz2),
			0.75 * (dz2 - 1) * (dz2 - 1),
		}
		ti = []float64{
			inv(invTm - 2*da),
			inv(invTm - da),
			inv(invTm + 2*da),
		}

		return ci, ti, nil

	case Ellipsoid:
		var (
			invTm      = inv(params[0])
			da, dr     = params[1], params[2]
			dx, dy, dz = DirectionCosines(params[3], params[4], params[5], unit)
			R          = math.Sqrt(1 + 3*dr*dr)
			p3, m3     = 1 + 3*dr, 1 - 3*dr
			dx2        = dx * dx
			dy2        = dy * dy
			dz2        = dz * dz
			ex         = dx2*dx2 + 2*dy2*dz2
			ey         = dy2*dy2 + 2*dx2*dz2
			ez         = dz2*dz2 + 2*dx2*dy2
			d          = 3*(dx2*dx2+dy2*dy2+dz2*dz2) - 1
			e          = (p3*ex + m3*ey - 2*ez) / R
		)
		ci = []float64{
			0.25 * (d - e),
			3 * dy2 * dz2,
			3 * dx2 * dz2,
			3 * dx2 * dy2,
			0.25 * (d + e),
		}
		ti = []float64{
			inv(invTm - 2*da*R),
			inv(invTm - da*p3),
			inv(invTm - da*m3),
			inv(invTm + 2*da),
			inv(invTm + 2*da*R),
		}

		return ci, ti, nil
	}

	return nil, nil, fmt.Errorf("Components: %w", ErrUnknownShape)
}

// Rates converts the reduced parameterisation into diffusion rates.
// Sphere: {Diso}. Spheroid: {Dpar, Dper}. Ellipsoid: {Dx, Dy, Dz}.
func Rates(shape Shape, params []float64) ([]float64, error) {
	if len(params) != shape.NumParams() {
		return nil, fmt.Errorf("Rates(%s): got %d params: %w", shape, len(params), ErrParamCount)
	}
	diso := inv(6 * params[0])
	switch shape {
	case Sphere:
		return []float64{diso}, nil
	case Spheroid:
		da := params[1]
		return []float64{diso + 2.0/3.0*da, diso - da/3.0}, nil
	case Ellipsoid:
		da, dr := params[1], params[2]
		return []float64{
			diso - da/3.0*(1+3*dr),
			diso - da/3.0*(1-3*dr),
			diso + 2.0/3.0*da,
		}, nil
	}

	return nil, fmt.Errorf("Rates: %w", ErrUnknownShape)
}
