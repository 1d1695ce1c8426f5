package mf

import (
	"math"

	"github.com/katalvlaran/modelfree/diffusion"
	"github.com/katalvlaran/modelfree/physics"
	"github.com/katalvlaran/modelfree/pipe"
)

// HugeNOE is returned for an NOE whose R1 evaluates to zero.
const HugeNOE = 1e99

// field holds the relaxation rates of one spin at one proton frequency.
type field struct {
	r1, r2, sigma float64
}

// interaction bundles the interaction constants of one spin.
type interaction struct {
	r, csa, rex float64
}

// rates evaluates R1, R2 and σNOE at every frequency of d.
//
// The heteronuclear frequency is signed: ωX = ωH·γX/γH, so for 15N the
// difference frequency ωH−ωX exceeds ωH.
func rates(d *SpinData, tr terms, in interaction, ci, ti []float64) []field {
	dip := physics.DipoleFixed(d.Gh, d.Gx)
	if in.r == 0 {
		dip = diffusion.Huge
	} else {
		dip *= 0.25 * math.Pow(in.r, -6)
	}

	out := make([]field, len(d.Frq))
	for j, frq := range d.Frq {
		var (
			wH = physics.Angular(frq)
			wX = wH * d.Gx / d.Gh

			j0    = tr.spectral(0, ci, ti)
			jX    = tr.spectral(wX*wX, ci, ti)
			jDiff = tr.spectral((wH-wX)*(wH-wX), ci, ti)
			jH    = tr.spectral(wH*wH, ci, ti)
			jSum  = tr.spectral((wH+wX)*(wH+wX), ci, ti)

			csa = wX * wX / 3 * in.csa * in.csa
			rex = in.rex * wH * wH
		)
		out[j] = field{
			r1:    dip*(jDiff+3*jX+6*jSum) + csa*jX,
			r2:    dip/2*(4*j0+jDiff+3*jX+6*jH+6*jSum) + csa/6*(4*j0+3*jX) + rex,
			sigma: dip * (6*jSum - jDiff),
		}
	}

	return out
}

// predict maps the per-frequency rates onto the spin's data points.
func predict(d *SpinData, f []field, dst []float64) []float64 {
	dst = dst[:0]
	for i, typ := range d.Types {
		fi := f[d.Remap[i]]
		switch typ {
		case pipe.R1:
			dst = append(dst, fi.r1)
		case pipe.R2:
			dst = append(dst, fi.r2)
		case pipe.NOE:
			r1 := fi.r1
			if k := d.NoeR1[i]; k >= 0 {
				r1 = f[d.Remap[k]].r1
			}
			if r1 == 0 {
				dst = append(dst, HugeNOE)
				continue
			}
			dst = append(dst, 1+(d.Gh/d.Gx)*fi.sigma/r1)
		}
	}

	return dst
}
