package random

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/pkg/errors"
)

// Sampler is a seeded random stream whose draws are rounded to a fixed precision.
type Sampler struct {
	rng        *rand.Rand
	seed       int64
	seeded     bool
	precision  int
	maxRetries int
	// attempts holds the number of draws used by the last ArrayInterval call.
	attempts int
}

// New creates a sampler. Without WithSeed the stream is seeded from the
// runtime source and is not reproducible.
func New(opts ...SamplerOption) *Sampler {
	s := &Sampler{
		precision:  DefaultPrecision,
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seeded {
		s.rng = rand.New(rand.NewPCG(uint64(s.seed), 0)) //nolint:gosec
	} else {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec
	}
	if s.maxRetries <= 0 {
		s.maxRetries = 1
	}

	return s
}

// Seed returns the seed and whether one was given.
func (s *Sampler) Seed() (int64, bool) {
	return s.seed, s.seeded
}

// Precision returns the rounding precision in decimals.
func (s *Sampler) Precision() int {
	return s.precision
}

// Attempts returns how many draws the last ArrayInterval call needed.
func (s *Sampler) Attempts() int {
	return s.attempts
}

// Round rounds v to the sampler precision.
func (s *Sampler) Round(v float64) float64 {
	return Round(v, s.precision)
}

// Round rounds v to precision decimals, half away from zero.
func Round(v float64, precision int) float64 {
	if precision < 0 {
		return v
	}
	p := math.Pow10(precision)

	return math.Round(v*p) / p
}

// Uniform draws one rounded value in [low, high).
func (s *Sampler) Uniform(low, high float64) float64 {
	return s.Round(low + s.rng.Float64()*(high-low))
}

// Uniforms draws n rounded values in [low, high).
func (s *Sampler) Uniforms(low, high float64, n int) []float64 {
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Uniform(low, high)
	}

	return out
}

// Int draws a uniform value in [low, high) and truncates it.
func (s *Sampler) Int(low, high int) int {
	return int(s.Uniform(float64(low), float64(high)))
}

// Choice returns a uniformly chosen index in [0, n).
func (s *Sampler) Choice(n int) int {
	if n <= 1 {
		return 0
	}

	return s.rng.IntN(n)
}

// Bool returns a fair coin flip.
func (s *Sampler) Bool() bool {
	return s.rng.IntN(2) == 1
}

// Sign returns -1 or 1 with equal probability.
func (s *Sampler) Sign() int {
	if s.Bool() {
		return 1
	}

	return -1
}

// Array draws n values in [low, high), optionally sorted, and wraps them with
// the sentinel values given as options.
func (s *Sampler) Array(low, high float64, n int, sorted bool, opts ...ArrayOption) ([]float64, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "array size %d", n)
	}
	cfg := arrayConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	arr := s.Uniforms(low, high, n)
	if sorted {
		sort.Float64s(arr)
	}
	if cfg.prepend != nil {
		arr = append([]float64{*cfg.prepend}, arr...)
	}
	if cfg.append != nil {
		arr = append(arr, *cfg.append)
	}
	for i := range arr {
		arr[i] = s.Round(arr[i])
	}

	return arr, nil
}

// ArrayInterval draws a sorted array whose adjacent differences, sentinels
// included, are all at least minSpacing. The whole array is redrawn until the
// constraint holds or the retry budget is spent.
func (s *Sampler) ArrayInterval(low, high float64, n int, minSpacing float64, opts ...ArrayOption) ([]float64, error) {
	if n > 1 && high-low < float64(n-1)*minSpacing {
		return nil, errors.Wrapf(ErrConstraintUnsatisfiable,
			"%d values in [%g, %g) cannot be %g apart", n, low, high, minSpacing)
	}

	for s.attempts = 1; s.attempts <= s.maxRetries; s.attempts++ {
		arr, err := s.Array(low, high, n, true, opts...)
		if err != nil {
			return nil, err
		}
		if MinDiff(arr) >= minSpacing {
			return arr, nil
		}
	}

	return nil, errors.Wrapf(ErrConstraintUnsatisfiable,
		"%d values in [%g, %g) with spacing %g after %d attempts", n, low, high, minSpacing, s.maxRetries)
}

// Perturb returns a copy of arr with uniform noise in [-maxPert, maxPert]
// added to every element. fixTop and fixBottom keep the first and last
// elements unchanged.
func (s *Sampler) Perturb(arr []float64, maxPert float64, fixTop, fixBottom bool) []float64 {
	out := make([]float64, len(arr))
	for i, v := range arr {
		out[i] = s.Round(v + s.Uniform(-maxPert, maxPert))
	}
	if len(arr) == 0 {
		return out
	}
	if fixTop {
		out[0] = arr[0]
	}
	if fixBottom {
		out[len(out)-1] = arr[len(arr)-1]
	}

	return out
}

// MinDiff returns the smallest difference between adjacent elements, or +Inf
// when arr has fewer than two elements.
func MinDiff(arr []float64) float64 {
	minDiff := math.Inf(1)
	for i := 1; i < len(arr); i++ {
		if d := arr[i] - arr[i-1]; d < minDiff {
			minDiff = d
		}
	}

	return minDiff
}
