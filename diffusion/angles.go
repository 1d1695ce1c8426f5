package diffusion

import "math"

// WrapAngle shifts a by multiples of (upper − lower) until it lies in
// [lower, upper].
func WrapAngle(a, lower, upper float64) float64 {
	width := upper - lower
	if width <= 0 || math.IsNaN(a) || math.IsInf(a, 0) {
		return a
	}
	for a > upper {
		a -= width
	}
	for a < lower {
		a += width
	}

	return a
}

// FoldSpheroid wraps theta and phi into [0, 2π] and removes the glide
// reflection symmetry so that phi ends in [0, π).
func FoldSpheroid(theta, phi float64) (float64, float64) {
	theta = WrapAngle(theta, 0, 2*math.Pi)
	phi = WrapAngle(phi, 0, 2*math.Pi)
	if phi >= math.Pi {
		theta = math.Pi - theta
		phi -= math.Pi
	}

	return theta, phi
}

// FoldSpheroidSim folds simulated angles into a window of ±π/2 around the
// point estimates (theta, phi).
func FoldSpheroidSim(theta, phi, thetaSim, phiSim float64) (float64, float64) {
	thetaSim = WrapAngle(thetaSim, theta-math.Pi, theta+math.Pi)
	phiSim = WrapAngle(phiSim, phi-math.Pi, phi+math.Pi)
	switch {
	case phiSim >= phi+math.Pi/2:
		thetaSim = math.Pi - thetaSim
		phiSim -= math.Pi
	case phiSim <= phi-math.Pi/2:
		thetaSim = math.Pi - thetaSim
		phiSim += math.Pi
	}

	return thetaSim, phiSim
}

// FoldEllipsoid wraps the Euler angles into [0, 2π] and removes the
// symmetries of the ellipsoid so that every angle ends in [0, π).
func FoldEllipsoid(alpha, beta, gamma float64) (float64, float64, float64) {
	alpha = WrapAngle(alpha, 0, 2*math.Pi)
	beta = WrapAngle(beta, 0, 2*math.Pi)
	gamma = WrapAngle(gamma, 0, 2*math.Pi)

	if alpha >= math.Pi {
		alpha -= math.Pi
	}
	if beta >= math.Pi {
		alpha = math.Pi - alpha
		beta -= math.Pi
	}
	if gamma >= math.Pi {
		alpha = math.Pi - alpha
		beta = math.Pi - beta
		gamma -= math.Pi
	}

	return alpha, beta, gamma
}

// FoldEllipsoidSim folds simulated Euler angles into a window of ±π/2 around
// the point estimates.
func FoldEllipsoidSim(alpha, beta, gamma, aSim, bSim, gSim float64) (float64, float64, float64) {
	aSim = WrapAngle(aSim, alpha-math.Pi, alpha+math.Pi)
	bSim = WrapAngle(bSim, beta-math.Pi, beta+math.Pi)
	gSim = WrapAngle(gSim, gamma-math.Pi, gamma+math.Pi)

	switch {
	case aSim >= alpha+math.Pi/2:
		aSim -= math.Pi
	case aSim <= alpha-math.Pi/2:
		aSim += math.Pi
	}
	switch {
	case bSim >= beta+math.Pi/2:
		aSim = math.Pi - aSim
		bSim -= math.Pi
	case bSim <= beta-math.Pi/2:
		aSim = math.Pi - aSim
		bSim += math.Pi
	}
	switch {
	case gSim >= gamma+math.Pi/2:
		aSim = math.Pi - aSim
		bSim = math.Pi - bSim
		gSim -= math.Pi
	case gSim <= gamma-math.Pi/2:
		aSim = math.Pi - aSim
		bSim = math.Pi - bSim
		gSim += math.Pi
	}

	return aSim, bSim, gSim
}
