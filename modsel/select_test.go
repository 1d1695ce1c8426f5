package modsel

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/katalvlaran/modelfree/diffusion"
	"github.com/katalvlaran/modelfree/models"
	"github.com/katalvlaran/modelfree/pipe"
)

// fitted returns a pipe of spins a and b fitted with model, six data points
// each, the given per-spin χ² and a spherical tensor (free when global).
func fitted(name, model string, global bool, chi2 ...float64) *pipe.Pipe {
	p := pipe.New(name)
	tn, err := pipe.NewTensor(diffusion.Sphere, 10e-9)
	Expect(err).NotTo(HaveOccurred())
	tn.Fixed = !global
	p.Tensor = tn

	m, err := models.Select(model)
	Expect(err).NotTo(HaveOccurred())
	for i, id := range []string{"a", "b"} {
		s := pipe.NewSpin(id)
		s.SetModel(m)
		for k := range 6 {
			s.SetData(fmt.Sprintf("ri%d", k), 1, 0.1)
		}
		if i < len(chi2) {
			s.Stats = pipe.Stats{Chi2: chi2[i], Set: true}
		}
		Expect(p.AddSpin(s)).To(Succeed())
	}

	return p
}

var _ = Describe("Select", func() {
	var (
		st  *pipe.Store
		ctx context.Context
	)

	BeforeEach(func() {
		st = pipe.NewStore()
		ctx = context.Background()
	})

	add := func(ps ...*pipe.Pipe) {
		for _, p := range ps {
			Expect(st.Add(p)).To(Succeed())
		}
	}

	Context("with per-spin candidates", func() {
		It("should pick the lowest AIC for every spin", func() {
			add(fitted("m1", "m1", false, 10, 4), fitted("m2", "m2", false, 7, 3))

			choices, err := Select(ctx, st, AICMethod, "final", nil, DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(choices).To(HaveLen(2))
			Expect(choices[0]).To(Equal(Choice{Instance: 0, Spin: "a", Pipe: "m2", Criterion: 11}))
			Expect(choices[1]).To(Equal(Choice{Instance: 1, Spin: "b", Pipe: "m1", Criterion: 6}))

			final, err := st.Get("final")
			Expect(err).NotTo(HaveOccurred())
			Expect(final.Spins[0].Model).To(Equal("m2"))
			Expect(final.Spins[1].Model).To(Equal("m1"))
		})

		It("should keep the earliest candidate on a tie", func() {
			add(fitted("m1", "m1", false, 10, 10), fitted("m2", "m2", false, 8, 8))

			choices, err := Select(ctx, st, AICMethod, "final", []string{"m2", "m1"}, DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(choices[0].Pipe).To(Equal("m2"))

			st2 := pipe.NewStore()
			Expect(st2.Add(fitted("m1", "m1", false, 10, 10))).To(Succeed())
			Expect(st2.Add(fitted("m2", "m2", false, 8, 8))).To(Succeed())
			choices, err = Select(ctx, st2, AICMethod, "final", []string{"m1", "m2"}, DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(choices[0].Pipe).To(Equal("m1"))
		})

		It("should skip candidates without statistics", func() {
			add(fitted("m1", "m1", false), fitted("m2", "m2", false, 50, 50))

			choices, err := Select(ctx, st, BICMethod, "final", nil, DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(choices[0].Pipe).To(Equal("m2"))
		})

		It("should skip deselected spins", func() {
			m1 := fitted("m1", "m1", false, 1, 1)
			m1.Spins[1].Select = false
			add(m1, fitted("m2", "m2", false, 10, 10))

			choices, err := Select(ctx, st, AICcMethod, "final", nil, DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(choices[0].Pipe).To(Equal("m1"))
			Expect(choices[1].Pipe).To(Equal("m2"))
		})
	})

	Context("with a global candidate", func() {
		It("should score every candidate globally", func() {
			local := fitted("local", "m1", false, 10, 4)
			glob := fitted("global", "m1", true)
			glob.Stats = pipe.Stats{Chi2: 11, Set: true}
			add(local, glob)

			choices, err := Select(ctx, st, AICMethod, "final", nil, DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(choices).To(Equal([]Choice{{Instance: 0, Pipe: "global", Criterion: 17, Global: true}}))

			final, err := st.Get("final")
			Expect(err).NotTo(HaveOccurred())
			Expect(final.Spins).To(HaveLen(2))
			Expect(final.Stats.Chi2).To(Equal(11.0))
		})
	})

	Context("with invalid input", func() {
		It("should reject an unknown method", func() {
			add(fitted("m1", "m1", false, 1, 1))
			_, err := Select(ctx, st, Method("DIC"), "final", nil, DefaultOptions())
			Expect(err).To(MatchError(ErrUnknownMethod))
		})

		It("should reject an empty candidate list", func() {
			_, err := Select(ctx, st, AICMethod, "final", nil, DefaultOptions())
			Expect(err).To(MatchError(ErrNoCandidates))
		})

		It("should reject different spin sequences", func() {
			other := fitted("m2", "m2", false, 1, 1)
			other.Spins[1].ID = "c"
			add(fitted("m1", "m1", false, 1, 1), other)
			_, err := Select(ctx, st, AICMethod, "final", nil, DefaultOptions())
			Expect(err).To(MatchError(ErrDiffSequence))
		})
	})
})

var _ = Describe("ModelStatistics", func() {
	It("should count spin parameters and data", func() {
		p := fitted("m2", "m2", false, 7, 3)
		st, ok, err := ModelStatistics(p, p.Spins[0], false)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(st).To(Equal(Statistics{K: 2, N: 6, Chi2: 7}))
	})

	It("should sum spin chi2 for a global view of per-spin fits", func() {
		p := fitted("m2", "m2", false, 7, 3)
		st, ok, err := ModelStatistics(p, nil, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(st).To(Equal(Statistics{K: 4, N: 12, Chi2: 10}))
	})

	It("should include the tensor for global fits", func() {
		p := fitted("all", "m2", true)
		p.Stats = pipe.Stats{Chi2: 5, Set: true}
		st, ok, err := ModelStatistics(p, nil, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(st).To(Equal(Statistics{K: 5, N: 12, Chi2: 5}))
	})

	It("should require a spin for local statistics", func() {
		_, _, err := ModelStatistics(fitted("x", "m1", false), nil, false)
		Expect(err).To(HaveOccurred())
	})
})
