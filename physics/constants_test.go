package physics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/modelfree/physics"
)

func TestGyro_KnownNuclei(t *testing.T) {
	g, err := physics.Gyro("1H")
	require.NoError(t, err)
	assert.InDelta(t, 26.7522212e7, g, 1)

	g, err = physics.Gyro("15N")
	require.NoError(t, err)
	assert.Less(t, g, 0.0, "15N has a negative gyromagnetic ratio")
}

func TestGyro_Unknown(t *testing.T) {
	_, err := physics.Gyro("99X")
	assert.ErrorIs(t, err, physics.ErrUnknownNucleus)
}

func TestDipoleFixed_NH(t *testing.T) {
	gh, _ := physics.Gyro("1H")
	gx, _ := physics.Gyro("15N")
	d := physics.DipoleFixed(gh, gx)
	// 0.25·d·r⁻⁶ for the standard N-H bond is ~1.3e9 s⁻².
	dip := 0.25 * d * math.Pow(physics.NHBondLength, -6)
	assert.InEpsilon(t, 1.3e9, dip, 0.05)
}

func TestAngular(t *testing.T) {
	assert.InDelta(t, 2*math.Pi*600e6, physics.Angular(600e6), 1e-3)
}
