package scaling

// Params holds the power-law coefficients.
//
//	L(N, D) = L0 + (Nc/N)^AlphaN + (Dc/D)^AlphaD
//
// Units:
//   - L0: irreducible loss (nats/token)
//   - Nc: parameters
//   - Dc: tokens
//   - AlphaN/AlphaD: dimensionless exponents
type Params struct {
	L0     float64 `yaml:"l_0" json:"l_0"`
	Nc     float64 `yaml:"n_c" json:"n_c"`
	Dc     float64 `yaml:"d_c" json:"d_c"`
	AlphaN float64 `yaml:"alpha_n" json:"alpha_n"`
	AlphaD float64 `yaml:"alpha_d" json:"alpha_d"`
}

// DefaultParams returns the coefficients the frontier chart is drawn with.
func DefaultParams() Params {
	return Params{
		L0:     1.69,    // irreducible loss
		Nc:     4.714e7, // params
		Dc:     2.158e9, // tokens
		AlphaN: 0.34,
		AlphaD: 0.28,
	}
}

// Sample is one evaluated (N, C) point of the model.
type Sample struct {
	N float64 // parameters
	C float64 // FLOPs
	D float64 // tokens, C/(6N)
	L float64 // loss
}

// Point is one entry of a generated curve.
type Point struct {
	N float64 `json:"n"`
	C float64 `json:"c,omitempty"`
	L float64 `json:"loss"`
}

// Curve is an ordered (by N) sequence of points.
type Curve struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// XYs returns the (N, L) pairs of the curve.
func (c Curve) XYs() (xs, ys []float64) {
	xs = make([]float64, len(c.Points))
	ys = make([]float64, len(c.Points))
	for i, p := range c.Points {
		xs[i], ys[i] = p.N, p.L
	}
	return xs, ys
}
