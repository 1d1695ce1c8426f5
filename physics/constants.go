package physics

import (
	"errors"
	"fmt"
	"math"
)

const (
	// Planck is Planck's constant in J·s.
	Planck = 6.62606876e-34

	// HBar is the reduced Planck constant h/2π.
	HBar = Planck / (2 * math.Pi)

	// Mu0 is the permeability of free space in T·m·A⁻¹.
	Mu0 = 4 * math.Pi * 1e-7

	// NHBondLength is the standard N-H bond length in metres.
	NHBondLength = 1.02e-10

	// NCSA is the standard 15N chemical shift anisotropy (unitless ppm ratio).
	NCSA = -172e-6
)

// ErrUnknownNucleus is returned for an unrecognised nucleus name.
var ErrUnknownNucleus = errors.New("physics: unknown nucleus")

// gyro maps nucleus names onto gyromagnetic ratios.
var gyro = map[string]float64{
	"1H":  26.7522212e7,
	"2H":  4.1066e7,
	"13C": 6.728e7,
	"15N": -2.7126e7,
	"17O": -3.628e7,
	"31P": 10.841e7,
}

// Gyro returns the gyromagnetic ratio of nucleus.
// Complexity: O(1).
func Gyro(nucleus string) (float64, error) {
	g, ok := gyro[nucleus]
	if !ok {
		return 0, fmt.Errorf("Gyro(%q): %w", nucleus, ErrUnknownNucleus)
	}

	return g, nil
}

// Angular converts a spectrometer proton frequency in Hz into the angular
// frequency 2π·frq.
func Angular(frq float64) float64 {
	return 2 * math.Pi * frq
}

// DipoleFixed returns the field-independent part of the dipolar constant,
// ((μ0/4π)·ħ·γH·γX)².
func DipoleFixed(gh, gx float64) float64 {
	v := (Mu0 / (4 * math.Pi)) * HBar * gh * gx

	return v * v
}
