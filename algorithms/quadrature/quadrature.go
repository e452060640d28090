// Package quadrature provides the trapezoidal integration primitives used to
// reduce spectral energy densities to moments and band-limited integrals.
// All routines operate on arbitrary, possibly non-uniform sample axes.
package quadrature

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/interp"
)

// Trapezoid integrates y over the ascending axis x using the trapezoidal rule.
func Trapezoid(x, y []float64) (float64, error) {
	if err := checkAxis(x, y); err != nil {
		return 0, err
	}
	if !sort.Float64sAreSorted(x) {
		return 0, fmt.Errorf("quadrature: axis is not ascending")
	}
	return integrate.Trapezoidal(x, y), nil
}

// SignedTrapezoid integrates y over x without any ordering requirement on x.
// A descending axis yields the negated integral, which callers integrating
// over a descending direction axis must correct once with math.Abs.
func SignedTrapezoid(x, y []float64) (float64, error) {
	if err := checkAxis(x, y); err != nil {
		return 0, err
	}
	var sum float64
	for i := 1; i < len(x); i++ {
		sum += 0.5 * (x[i] - x[i-1]) * (y[i] + y[i-1])
	}
	return sum, nil
}

// CumulativeTrapezoid returns the running trapezoidal integral of y over x,
// starting at 0 at the first sample. The result has the same length as x.
func CumulativeTrapezoid(x, y []float64) ([]float64, error) {
	if err := checkAxis(x, y); err != nil {
		return nil, err
	}
	cum := make([]float64, len(x))
	for i := 1; i < len(x); i++ {
		cum[i] = cum[i-1] + 0.5*(x[i]-x[i-1])*(y[i]+y[i-1])
	}
	return cum, nil
}

// BandIntegral integrates y over the sub-interval [lo, hi] of the ascending
// axis x. It interpolates the cumulative trapezoidal integral linearly at the
// band edges, so the result is independent of how many samples of x fall
// inside the band. Edges outside the axis range clamp to the axis endpoints;
// (0, +Inf) reduces exactly to the full trapezoidal integral.
func BandIntegral(x, y []float64, lo, hi float64) (float64, error) {
	if lo == 0 && math.IsInf(hi, 1) {
		return Trapezoid(x, y)
	}

	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return 0, fmt.Errorf("quadrature: axis is not strictly ascending at index %d", i)
		}
	}

	cum, err := CumulativeTrapezoid(x, y)
	if err != nil {
		return 0, err
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(x, cum); err != nil {
		return 0, fmt.Errorf("quadrature: fitting cumulative integral: %w", err)
	}

	// PiecewiseLinear predicts the endpoint values outside the fitted
	// range, so +Inf and sub-zero edges clamp rather than extrapolate.
	return pl.Predict(clampEdge(x, hi)) - pl.Predict(clampEdge(x, lo)), nil
}

// Moment integrates y weighted by x^order over the ascending axis x.
// Order 0 is the plain trapezoidal integral.
func Moment(x, y []float64, order int) (float64, error) {
	if order == 0 {
		return Trapezoid(x, y)
	}
	if err := checkAxis(x, y); err != nil {
		return 0, err
	}
	weighted := make([]float64, len(y))
	for i, v := range y {
		weighted[i] = v * math.Pow(x[i], float64(order))
	}
	return Trapezoid(x, weighted)
}

func clampEdge(x []float64, v float64) float64 {
	if v < x[0] {
		return x[0]
	}
	if v > x[len(x)-1] {
		return x[len(x)-1]
	}
	return v
}

func checkAxis(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("quadrature: axis length %d does not match values length %d", len(x), len(y))
	}
	if len(x) < 2 {
		return fmt.Errorf("quadrature: need at least 2 samples, got %d", len(x))
	}
	return nil
}
