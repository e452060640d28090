// Package spreading computes normalized directional distributions for wave
// energy from a cosine-power model. The kernel is normalized so that its
// integral over the direction axis it is later integrated against equals 1.
package spreading

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/coastalgo/oceanwaves/algorithms/quadrature"
	"github.com/coastalgo/oceanwaves/logging"
)

const (
	// underflowGuard bounds cos^ms away from zero inside the kernel support.
	underflowGuard = 1e-10

	// integralTolerance is the allowed deviation of the kernel integral
	// from unity before the direction axis is reported as under-sampled.
	integralTolerance = 1e-4
)

// Weights returns the cosine-power directional distribution evaluated at each
// sample direction:
//
//	w_i = A1 * max(cos(dir_i - peakDir)^ms, 1e-10)   where cos(...) > 0
//	w_i = 0                                          elsewhere
//
// with A1 = 2^ms * Γ(ms/2+1)^2 / (π * Γ(ms+1)). The units tag applies to both
// dirs and peakDir; any tag with prefix "deg" (degrees_north, degrees_true)
// selects degrees, prefix "rad" selects radians, anything else is an error.
// For a degree axis the weights carry an extra π/180 so that their integral
// over that axis is 1.
//
// The direction axis may be ascending or descending. If the kernel integral
// deviates from 1 by more than 1e-4 the axis is under-sampled for this ms;
// that is reported as a warning diagnostic, never as an error.
func Weights(dirs []float64, peakDir, ms float64, units string) ([]float64, error) {
	if len(dirs) == 0 {
		return nil, fmt.Errorf("spreading: empty direction axis")
	}
	if ms <= 0 {
		return nil, fmt.Errorf("spreading: spreading exponent must be positive, got %g", ms)
	}

	degrees := false
	rad := make([]float64, len(dirs))
	peak := peakDir
	switch {
	case strings.HasPrefix(units, "deg"):
		degrees = true
		for i, d := range dirs {
			rad[i] = d * math.Pi / 180
		}
		peak = peakDir * math.Pi / 180
	case strings.HasPrefix(units, "rad"):
		copy(rad, dirs)
	default:
		return nil, fmt.Errorf("spreading: unknown direction units %q", units)
	}

	a1 := math.Pow(2, ms) * math.Gamma(ms/2+1) * math.Gamma(ms/2+1) /
		(math.Pi * math.Gamma(ms+1))

	weights := make([]float64, len(dirs))
	for i := range rad {
		c := math.Cos(rad[i] - peak)
		if c > 0 {
			weights[i] = a1 * math.Max(math.Pow(c, ms), underflowGuard)
		}
	}
	if degrees {
		floats.Scale(math.Pi/180, weights)
	}

	checkSampling(dirs, weights, ms)

	return weights, nil
}

// checkSampling integrates the kernel over its own axis and warns when the
// result is not unity within tolerance. The integral is taken in the units of
// the supplied axis; its absolute value is compared so a descending axis does
// not trip the check.
func checkSampling(dirs, weights []float64, ms float64) {
	if len(dirs) < 2 {
		return
	}
	integral, err := quadrature.SignedTrapezoid(dirs, weights)
	if err != nil {
		return
	}
	if math.Abs(math.Abs(integral)-1) >= integralTolerance {
		logging.Warn("directional spreading integral deviates from unity", logging.Fields{
			"ms":       ms,
			"integral": integral,
			"samples":  len(dirs),
		})
	}
}
