package random_test

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-velgen/pkg/pipeline/random"
)

func TestSeededStreamsAreReproducible(t *testing.T) {
	t.Parallel()

	s1 := random.New(random.WithSeed(42))
	s2 := random.New(random.WithSeed(42))
	assert.Equal(t, s1.Uniforms(0, 10, 20), s2.Uniforms(0, 10, 20))

	seed, ok := s1.Seed()
	assert.True(t, ok)
	assert.Equal(t, int64(42), seed)
}

func TestUniformRoundsAndStaysInRange(t *testing.T) {
	t.Parallel()

	s := random.New(random.WithSeed(1), random.WithPrecision(2))
	for _, v := range s.Uniforms(-3, 5, 500) {
		assert.GreaterOrEqual(t, v, -3.0)
		assert.LessOrEqual(t, v, 5.0)
		assert.InDelta(t, v, math.Round(v*100)/100, 1e-12)
	}
}

func TestRound(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		in        float64
		precision int
		want      float64
	}{
		"four decimals": {in: 1.234567, precision: 4, want: 1.2346},
		"zero":          {in: 2.5, precision: 0, want: 3},
		"negative":      {in: -1.25, precision: 1, want: -1.3},
		"disabled":      {in: 1.23456, precision: -1, want: 1.23456},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tc.want, random.Round(tc.in, tc.precision), 1e-12)
		})
	}
}

func TestArraySortedWithSentinels(t *testing.T) {
	t.Parallel()

	s := random.New(random.WithSeed(7))
	arr, err := s.Array(10, 90, 5, true, random.Prepend(0), random.Append(100))
	require.NoError(t, err)
	require.Len(t, arr, 7)
	assert.Equal(t, 0.0, arr[0])
	assert.Equal(t, 100.0, arr[6])
	assert.True(t, sort.Float64sAreSorted(arr))
}

func TestArrayNegativeSize(t *testing.T) {
	t.Parallel()

	_, err := random.New().Array(0, 1, -1, true)
	require.ErrorIs(t, err, random.ErrInvalidSize)
}

func TestArrayIntervalSatisfiesSpacing(t *testing.T) {
	t.Parallel()

	driver := random.New(random.WithSeed(2024))
	for i := 0; i < 200; i++ {
		low := driver.Uniform(0, 50)
		high := low + driver.Uniform(20, 100)
		n := 1 + driver.Choice(6)
		// at most half of the evenly spread spacing keeps the rejection rate low
		spacing := driver.Uniform(0, (high-low)/float64(2*(n+1)))

		s := random.New(random.WithSeed(int64(i)))
		arr, err := s.ArrayInterval(low, high, n, spacing, random.Prepend(low-spacing), random.Append(high+spacing))
		require.NoError(t, err)
		require.Len(t, arr, n+2)
		assert.GreaterOrEqual(t, random.MinDiff(arr), spacing)
		assert.GreaterOrEqual(t, s.Attempts(), 1)
	}
}

func TestArrayIntervalUnsatisfiable(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		low, high, spacing float64
		n                  int
	}{
		"interval too short":  {low: 0, high: 10, spacing: 5, n: 5},
		"sentinels too close": {low: 0, high: 100, spacing: 200, n: 1},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := random.New(random.WithSeed(3), random.WithMaxRetries(50))
			_, err := s.ArrayInterval(tc.low, tc.high, tc.n, tc.spacing, random.Prepend(tc.low), random.Append(tc.high))
			require.ErrorIs(t, err, random.ErrConstraintUnsatisfiable)
		})
	}
}

func TestPerturb(t *testing.T) {
	t.Parallel()

	s := random.New(random.WithSeed(9))
	in := []float64{1.5, 2, 2.5, 3}
	out := s.Perturb(in, 0.1, true, true)

	assert.Equal(t, []float64{1.5, 2, 2.5, 3}, in, "input must not be modified")
	assert.Equal(t, in[0], out[0])
	assert.Equal(t, in[3], out[3])
	for i := range in {
		assert.InDelta(t, in[i], out[i], 0.1+1e-6)
	}
}

func TestIntAndChoice(t *testing.T) {
	t.Parallel()

	s := random.New(random.WithSeed(11))
	for i := 0; i < 100; i++ {
		v := s.Int(5, 15)
		assert.GreaterOrEqual(t, v, 5)
		assert.LessOrEqual(t, v, 15)

		c := s.Choice(3)
		assert.GreaterOrEqual(t, c, 0)
		assert.Less(t, c, 3)

		sign := s.Sign()
		assert.Contains(t, []int{-1, 1}, sign)
	}
	assert.Equal(t, 0, s.Choice(1))
}

func TestMinDiff(t *testing.T) {
	t.Parallel()

	assert.True(t, math.IsInf(random.MinDiff([]float64{1}), 1))
	assert.InDelta(t, -2.0, random.MinDiff([]float64{0, 5, 3, 10}), 1e-12)
}
