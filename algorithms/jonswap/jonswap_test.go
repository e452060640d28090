package jonswap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 3.3, opts.Gamma)
	assert.Equal(t, Yamaguchi, opts.Method)
	assert.True(t, opts.Normalize)
	assert.Equal(t, 0.07, opts.SA)
	assert.Equal(t, 0.09, opts.SB)
}

func TestGenerateNormalizedRoundTrip(t *testing.T) {
	f := linspace(0.03, 0.3, 100)

	for _, hm0 := range []float64{0.5, 1.5, 4.2} {
		energy, err := Generate(f, hm0, 8.0, DefaultOptions())
		require.NoError(t, err)
		require.Len(t, energy, len(f))

		m0 := integrate.Trapezoidal(f, energy)
		assert.InDelta(t, hm0, 4*math.Sqrt(m0), 1e-9)
	}
}

func TestGeneratePeakNearInverseTp(t *testing.T) {
	f := linspace(0.03, 0.3, 100)
	tp := 8.0

	energy, err := Generate(f, 1.5, tp, DefaultOptions())
	require.NoError(t, err)

	binWidth := f[1] - f[0]
	assert.InDelta(t, 1/tp, f[floats.MaxIdx(energy)], binWidth)
}

func TestGenerateAlphaMethodsDiffer(t *testing.T) {
	f := linspace(0.03, 0.3, 50)
	opts := DefaultOptions()
	opts.Normalize = false

	opts.Method = Yamaguchi
	yamaguchi, err := Generate(f, 2.0, 6.0, opts)
	require.NoError(t, err)

	opts.Method = Goda
	goda, err := Generate(f, 2.0, 6.0, opts)
	require.NoError(t, err)

	// Both fits scale the same shape, so they differ by a constant factor.
	ratio := yamaguchi[0] / goda[0]
	assert.Greater(t, math.Abs(ratio-1), 1e-6)
	for i := range f {
		assert.InDelta(t, ratio, yamaguchi[i]/goda[i], 1e-9)
	}
}

func TestGenerateNonNegativeFinite(t *testing.T) {
	f := linspace(0.01, 1.0, 200)

	energy, err := Generate(f, 2.5, 10.0, DefaultOptions())
	require.NoError(t, err)

	for i, e := range energy {
		assert.False(t, math.IsNaN(e) || math.IsInf(e, 0), "energy[%d]", i)
		assert.GreaterOrEqual(t, e, 0.0)
	}
}

func TestGenerateInvalidInputs(t *testing.T) {
	f := linspace(0.03, 0.3, 10)

	cases := []struct {
		name string
		f    []float64
		hm0  float64
		tp   float64
		opts Options
	}{
		{"empty frequency axis", nil, 1, 5, DefaultOptions()},
		{"single frequency", []float64{0.1}, 1, 5, DefaultOptions()},
		{"zero frequency", []float64{0, 0.1, 0.2}, 1, 5, DefaultOptions()},
		{"negative frequency", []float64{-0.1, 0.1, 0.2}, 1, 5, DefaultOptions()},
		{"descending frequencies", []float64{0.3, 0.2, 0.1}, 1, 5, DefaultOptions()},
		{"duplicate frequencies", []float64{0.1, 0.1, 0.2}, 1, 5, DefaultOptions()},
		{"zero Hm0", f, 0, 5, DefaultOptions()},
		{"negative Tp", f, 1, -2, DefaultOptions()},
		{"zero gamma", f, 1, 5, Options{Gamma: 0, Normalize: true, SA: 0.07, SB: 0.09}},
		{"zero spectral width", f, 1, 5, Options{Gamma: 3.3, Normalize: true, SA: 0, SB: 0.09}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Generate(tc.f, tc.hm0, tc.tp, tc.opts)
			assert.Error(t, err)
		})
	}
}

func TestMethodString(t *testing.T) {
	assert.Equal(t, "Yamaguchi", Yamaguchi.String())
	assert.Equal(t, "Goda", Goda.String())
}
