package mf

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/modelfree/diffusion"
	"github.com/katalvlaran/modelfree/models"
	"github.com/katalvlaran/modelfree/pipe"
)

// OverflowCost replaces an infinite χ².
const OverflowCost = 1e200

// Setup parameterises a Func.
//
// Vector layout: when DiffInVector the tensor parameters come first (ordered
// as Shape.Params()); then, when SpinsInVector, the Params of every spin in
// order. Values not read from the vector come from Diff and SpinData.Values.
type Setup struct {
	Shape         diffusion.Shape
	Diff          []float64 // tensor values when not optimised
	DiffInVector  bool
	SpinsInVector bool
	Spins         []SpinData
	Scale         []float64 // diagonal scaling; nil means identity
}

// SpinData is the per-spin part of a Setup.
type SpinData struct {
	Equation models.Equation
	Params   []models.ParamName
	Values   map[models.ParamName]float64 // fixed values (r, CSA, and all params when not in the vector)
	Vector   r3.Vec                       // unit bond vector
	Gh, Gx   float64                      // proton and heteronucleus gyromagnetic ratios

	Frq   []float64     // distinct proton frequencies in Hz
	Types []pipe.RiType // per datum
	Remap []int         // per datum: index into Frq
	NoeR1 []int         // per datum: index of the R1 datum at the same frequency, or -1
	Obs   []float64     // per datum: observed value
	Err   []float64     // per datum: error
}

// NumParams returns the expected length of the parameter vector.
func (s Setup) NumParams() int {
	n := 0
	if s.DiffInVector {
		n += s.Shape.NumParams()
	}
	if s.SpinsInVector {
		for _, sp := range s.Spins {
			n += len(sp.Params)
		}
	}

	return n
}
