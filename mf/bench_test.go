package mf_test

import (
	"testing"

	"github.com/katalvlaran/modelfree/mf"
	"github.com/katalvlaran/modelfree/models"
)

func BenchmarkCost(b *testing.B) {
	f, err := mf.New(sphereSetup(spin(models.Ext, []models.ParamName{models.S2f, models.S2, models.Ts}, nil), true))
	if err != nil {
		b.Fatal(err)
	}
	x := []float64{0.9, 0.8, 2e-9}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Cost(x)
	}
}

func BenchmarkGradient(b *testing.B) {
	f, err := mf.New(sphereSetup(spin(models.Ext, []models.ParamName{models.S2f, models.S2, models.Ts}, nil), true))
	if err != nil {
		b.Fatal(err)
	}
	x := []float64{0.9, 0.8, 2e-9}
	g := make([]float64, 3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Gradient(g, x)
	}
}
