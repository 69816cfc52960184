package scaling

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ja7ad/frontier/pkg/util"
)

// Default sweep over model sizes.
const (
	SweepMin   = 1e8
	SweepMax   = 1e13
	SweepCount = 1000
)

// Curve names.
const (
	ComputeOptimalName  = "Compute-Optimal Frontier"
	InfiniteComputeName = "Infinite Compute"
)

// Sweep returns n log-spaced, strictly increasing values from lo to hi
// inclusive.
func Sweep(lo, hi float64, n int) ([]float64, error) {
	if n < 2 || !util.AllFinite(lo, hi) || lo <= 0 || hi <= lo {
		return nil, fmt.Errorf("%w: [%v, %v] n=%d", ErrBadSweep, lo, hi, n)
	}
	ns := floats.LogSpan(make([]float64, n), lo, hi)
	// exp(log(x)) can drift by an ulp; pin the endpoints.
	ns[0], ns[n-1] = lo, hi
	// too many points over too narrow a range collapse onto equal floats
	if !util.IsStrictlyIncreasing(ns) {
		return nil, fmt.Errorf("%w: [%v, %v] n=%d not strictly increasing", ErrBadSweep, lo, hi, n)
	}
	return ns, nil
}

// DefaultSweep is Sweep(SweepMin, SweepMax, SweepCount).
func DefaultSweep() []float64 {
	ns, err := Sweep(SweepMin, SweepMax, SweepCount)
	if err != nil {
		panic(err)
	}
	return ns
}

// ComputeOptimalFrontier evaluates OptimalCompute at every n.
func (m *Model) ComputeOptimalFrontier(ns []float64) Curve {
	pts := make([]Point, len(ns))
	for i, n := range ns {
		c, l := m.OptimalCompute(n)
		pts[i] = Point{N: n, C: c, L: l}
	}
	return Curve{Name: ComputeOptimalName, Points: pts}
}

// InfiniteComputeFrontier evaluates InfiniteComputeLoss at every n.
func (m *Model) InfiniteComputeFrontier(ns []float64) Curve {
	pts := make([]Point, len(ns))
	for i, n := range ns {
		pts[i] = Point{N: n, L: m.InfiniteComputeLoss(n)}
	}
	return Curve{Name: InfiniteComputeName, Points: pts}
}

// Bands holds the five horizontal boundaries of the four shaded regions,
// bottom to top:
//
//	Edges[0] = yMin
//	Edges[1] = compute-optimal loss at the large reference size
//	Edges[2] = infinite-compute loss at the small reference size
//	Edges[3] = compute-optimal loss at the small reference size
//	Edges[4] = yMax
type Bands struct {
	Edges [5]float64
}

// Span returns the lower and upper boundary of band i (0..3), clipped to
// [Edges[0], Edges[4]]. A band that falls entirely outside the limits has
// lo == hi.
func (b Bands) Span(i int) (lo, hi float64) {
	return b.clip(b.Edges[i]), b.clip(b.Edges[i+1])
}

// Empty reports whether band i has no visible height.
func (b Bands) Empty(i int) bool {
	lo, hi := b.Span(i)
	return hi <= lo
}

func (b Bands) clip(y float64) float64 {
	return math.Min(math.Max(y, b.Edges[0]), b.Edges[4])
}

// Bands computes the shaded-band boundaries for reference model sizes small
// and large. Interior edges outside [yMin, yMax] are clipped by Span; it
// returns ErrBandOrder only when the three interior edges are out of order.
func (m *Model) Bands(small, large, yMin, yMax float64) (Bands, error) {
	_, lLargeOpt := m.OptimalCompute(large)
	_, lSmallOpt := m.OptimalCompute(small)
	lSmallInf := m.InfiniteComputeLoss(small)

	b := Bands{Edges: [5]float64{yMin, lLargeOpt, lSmallInf, lSmallOpt, yMax}}
	if !util.IsNonDecreasing(b.Edges[1:4]) {
		return b, fmt.Errorf("%w: %v", ErrBandOrder, b.Edges)
	}
	return b, nil
}
