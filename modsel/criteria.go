package modsel

import (
	"fmt"
	"math"
	"strings"
)

// Method is a model selection technique.
type Method string

const (
	AICMethod  Method = "AIC"
	AICcMethod Method = "AICc"
	BICMethod  Method = "BIC"
	CVMethod   Method = "CV"
)

// ParseMethod accepts the method names case-insensitively.
func ParseMethod(s string) (Method, error) {
	for _, m := range []Method{AICMethod, AICcMethod, BICMethod, CVMethod} {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}

	return "", fmt.Errorf("ParseMethod(%q): %w", s, ErrUnknownMethod)
}

// AIC is Akaike's Information Criterion, χ² + 2k.
func AIC(chi2 float64, k, n int) float64 {
	return chi2 + 2*float64(k)
}

// AICc is the small sample corrected AIC. For k > 0 and n = k + 1 it is
// +Inf.
func AICc(chi2 float64, k, n int) float64 {
	kf := float64(k)

	return chi2 + 2*kf + 2*kf*(kf+1)/float64(n-k-1)
}

// BIC is the Bayesian (Schwarz) Information Criterion, χ² + k·ln n.
func BIC(chi2 float64, k, n int) float64 {
	return chi2 + float64(k)*math.Log(float64(n))
}

// Formula returns the scoring function of an information criterion.
// CV has no closed formula and is rejected.
func Formula(m Method) (func(chi2 float64, k, n int) float64, error) {
	switch m {
	case AICMethod:
		return AIC, nil
	case AICcMethod:
		return AICc, nil
	case BICMethod:
		return BIC, nil
	}

	return nil, fmt.Errorf("Formula(%q): %w", m, ErrUnknownMethod)
}
