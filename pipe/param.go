package pipe

// Param is one optimisable quantity: the point estimate, its Monte Carlo
// replicates and the error estimate.
type Param struct {
	Value float64   // point estimate
	Sim   []float64 // simulation replicates, nil when simulations are off
	Err   float64   // error from Monte Carlo or covariance analysis
}

// clone returns a deep copy.
func (p *Param) clone() *Param {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Sim != nil {
		cp.Sim = append([]float64(nil), p.Sim...)
	}

	return &cp
}

// Get returns the replicate at sim, or the point estimate when sim < 0 or
// no replicate exists at sim.
func (p *Param) Get(sim int) float64 {
	if sim < 0 || sim >= len(p.Sim) {
		return p.Value
	}

	return p.Sim[sim]
}

// Put stores v in the replicate at sim, or in the point estimate when sim < 0.
// The replicate slice grows as needed.
func (p *Param) Put(sim int, v float64) {
	if sim < 0 {
		p.Value = v
		return
	}
	for len(p.Sim) <= sim {
		p.Sim = append(p.Sim, 0)
	}
	p.Sim[sim] = v
}

// Stats are the minimisation statistics of one instance.
type Stats struct {
	Chi2    float64
	Iter    int
	FCount  int
	GCount  int
	HCount  int
	Warning string
	Set     bool // false until a calculation or minimisation recorded values
}
