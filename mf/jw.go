package mf

import "github.com/katalvlaran/modelfree/models"

// terms holds the amplitudes and internal correlation times of one spectral
// density. J(ω) = 2/5 Σₖ cₖ [a0·L(τₖ) + a1·L(τₖ'(t1)) + a2·L(τₖ'(t2))]
// with L(τ) = τ/(1+ω²τ²) and τ' = τ·t/(τ+t).
type terms struct {
	a0     float64
	a1, t1 float64
	a2, t2 float64
}

// lorentz returns τ/(1+ω²τ²).
func lorentz(w2, tau float64) float64 { return tau / (1 + w2*tau*tau) }

// effective returns the combined correlation time τ·t/(τ+t).
func effective(tau, t float64) float64 {
	if tau+t == 0 {
		return 0
	}

	return tau * t / (tau + t)
}

// spectral evaluates J(ω) for ω² = w2 over the diffusion components.
func (tr terms) spectral(w2 float64, ci, ti []float64) float64 {
	var sum float64
	for k, c := range ci {
		tau := ti[k]
		v := tr.a0 * lorentz(w2, tau)
		if tr.a1 != 0 {
			v += tr.a1 * lorentz(w2, effective(tau, tr.t1))
		}
		if tr.a2 != 0 {
			v += tr.a2 * lorentz(w2, effective(tau, tr.t2))
		}
		sum += c * v
	}

	return 0.4 * sum
}

// buildTerms derives the spectral density amplitudes from the parameter
// values of one spin. has reports which parameters belong to the model.
//
// Missing order parameters default as follows: S2 = S2f·S2s under mf_ext2,
// otherwise S2 = 1; a missing S2f is S2/S2s when S2s is available, else 1.
func buildTerms(eq models.Equation, has func(models.ParamName) bool, val func(models.ParamName) float64) terms {
	var (
		s2  = 1.0
		s2f = 1.0
	)
	switch {
	case has(models.S2):
		s2 = val(models.S2)
	case has(models.S2f) && has(models.S2s):
		s2 = val(models.S2f) * val(models.S2s)
	case has(models.S2f):
		s2 = val(models.S2f)
	}

	if eq == models.Orig {
		tr := terms{a0: s2}
		if has(models.Te) {
			tr.a1, tr.t1 = 1-s2, val(models.Te)
		}

		return tr
	}

	switch {
	case has(models.S2f):
		s2f = val(models.S2f)
	case has(models.S2s) && val(models.S2s) != 0:
		s2f = s2 / val(models.S2s)
	}

	tr := terms{a0: s2}
	if has(models.Tf) {
		tr.a1, tr.t1 = 1-s2f, val(models.Tf)
	}
	if has(models.Ts) {
		tr.a2, tr.t2 = s2f-s2, val(models.Ts)
	}

	return tr
}
