package scaling

import "math"

// Model evaluates the loss surface for a fixed set of coefficients.
type Model struct {
	p Params
}

// New creates a model with the given params.
// Fields > 0 in p override defaults; zero or negative fields are treated as
// "unset". A nil p yields the default coefficients.
func New(p *Params) *Model {
	base := DefaultParams()

	if p == nil {
		return &Model{p: base}
	}

	merged := base

	if p.L0 > 0 {
		merged.L0 = p.L0
	}
	if p.Nc > 0 {
		merged.Nc = p.Nc
	}
	if p.Dc > 0 {
		merged.Dc = p.Dc
	}
	if p.AlphaN > 0 {
		merged.AlphaN = p.AlphaN
	}
	if p.AlphaD > 0 {
		merged.AlphaD = p.AlphaD
	}

	return &Model{p: merged}
}

// Params returns a copy of the coefficients in use.
func (m *Model) Params() Params { return m.p }

// DataTokens returns D under the C = 6ND constraint.
func DataTokens(n, c float64) float64 {
	return c / (6 * n)
}

// Loss returns the predicted loss for n parameters trained with c FLOPs.
// n and c must be > 0; otherwise the result is Inf or NaN.
func (m *Model) Loss(n, c float64) float64 {
	d := DataTokens(n, c)
	return m.p.L0 + math.Pow(m.p.Nc/n, m.p.AlphaN) + math.Pow(m.p.Dc/d, m.p.AlphaD)
}

// Evaluate runs the model on a single (n, c) pair.
func (m *Model) Evaluate(n, c float64) Sample {
	return Sample{N: n, C: c, D: DataTokens(n, c), L: m.Loss(n, c)}
}

// OptimalCompute returns the compute budget at which n is the loss-minimizing
// model size, and the loss reached there.
//
// Setting dL/dN = 0 at fixed C with D = C/(6N) gives
//
//	C = 6 * Dc * (AlphaD/AlphaN)^(1/AlphaD) * (N/Nc)^(AlphaN/AlphaD) * N
func (m *Model) OptimalCompute(n float64) (c, l float64) {
	p := m.p
	c = 6 * p.Dc *
		math.Pow(p.AlphaD/p.AlphaN, 1/p.AlphaD) *
		math.Pow(n/p.Nc, p.AlphaN/p.AlphaD) *
		n
	return c, m.Loss(n, c)
}

// InfiniteComputeLoss is the D→∞ limit of Loss: only the model-size term
// remains.
func (m *Model) InfiniteComputeLoss(n float64) float64 {
	return m.p.L0 + math.Pow(m.p.Nc/n, m.p.AlphaN)
}
