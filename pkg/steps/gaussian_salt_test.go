package steps_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-velgen/pkg/pipeline/model"
	"github.com/askiada/go-velgen/pkg/steps"
)

func TestAdjustInterface(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		rows     [][]int
		minSpace float64
		ny       int
		want     [][]int
	}{
		"lift by deficit and margin": {
			rows:     [][]int{{0, 0, 0}, {5, 5, 5}, {4, 6, 8}, {10, 10, 10}},
			minSpace: 1,
			ny:       10,
			want:     [][]int{{0, 0, 0}, {3, 3, 3}, {4, 6, 8}, {10, 10, 10}},
		},
		"cascade upwards": {
			rows:     [][]int{{0, 0}, {3, 3}, {4, 4}, {4, 4}, {10, 10}},
			minSpace: 2,
			ny:       10,
			want:     [][]int{{0, 0}, {0, 0}, {2, 2}, {4, 4}, {10, 10}},
		},
		"surface never moves": {
			rows:     [][]int{{0, 0}, {0, 1}, {10, 10}},
			minSpace: 2,
			ny:       10,
			want:     [][]int{{0, 0}, {0, 1}, {10, 10}},
		},
		"row pushed below the model": {
			rows:     [][]int{{0, 0}, {4, 4}, {11, 9}, {10, 10}},
			minSpace: 1,
			ny:       10,
			want:     [][]int{{0, 0}, {4, 4}, {9, 7}, {10, 10}},
		},
		"fractional spacing rounds the margin up": {
			rows:     [][]int{{0, 0}, {5, 5}, {5, 7}, {10, 10}},
			minSpace: 1.28,
			ny:       10,
			want:     [][]int{{0, 0}, {3, 3}, {5, 7}, {10, 10}},
		},
		"fractional spacing on crossing rows": {
			rows:     [][]int{{0, 0}, {6, 6}, {5, 7}, {10, 10}},
			minSpace: 1.28,
			ny:       10,
			want:     [][]int{{0, 0}, {3, 3}, {5, 7}, {10, 10}},
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			steps.AdjustInterface(tt.rows, tt.minSpace, tt.ny)
			assert.Equal(t, tt.want, tt.rows)
			assert.True(t, model.IsMonotonic(tt.rows))
		})
	}
}

func TestPinchOut(t *testing.T) {
	t.Parallel()

	rows := [][]int{{0, 0}, {6, -2}, {5, 5}, {10, 10}}
	steps.PinchOut(rows, 10)
	assert.Equal(t, [][]int{{0, 0}, {5, 0}, {5, 5}, {10, 10}}, rows)
}

func TestSaltCurve(t *testing.T) {
	t.Parallel()

	curve := steps.SaltCurve(40, 10, 5, 11, 100)
	require.Len(t, curve, 11)
	assert.InDelta(t, 38, curve[5], 1e-12)
	assert.InDelta(t, curve[0], curve[10], 1e-12)
	assert.InDelta(t, 40*math.Exp(-25.0/200)-2, curve[0], 1e-12)
}

func TestGaussianSaltPreserve(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 20; seed++ {
		m := newModel(t, 200, 100, linspace(1.5, 3.5, 20))
		_, err := steps.NewDippingLayer(steps.WithSeed(seed), steps.WithMinSplit(0.01)).Generate(m)
		require.NoError(t, err)
		_, err = steps.NewGaussianSalt(steps.WithSeed(seed), steps.WithPenetrate(false)).Generate(m)
		require.NoError(t, err)
		requireInterfaceInvariants(t, m)

		rows := m.Interface()
		for i := 1; i < len(rows)-1; i++ {
			top := rows[i][0]
			for _, v := range rows[i] {
				top = min(top, v)
			}
			if top == 0 {
				// pinned to the surface, spacing cannot be restored above it
				continue
			}
			assert.GreaterOrEqual(t, model.MinGap(rows[i], rows[i+1]), 1, "seed %d rows %d-%d", seed, i, i+1)
		}

		saltTop, ok := model.LastOf[[]float64](m.History(), model.KeyGaussianSaltTop)
		require.True(t, ok)
		crest := 0
		for x := range saltTop {
			if saltTop[x] < saltTop[crest] {
				crest = x
			}
		}
		assert.Equal(t, 4.5, m.Velocity().At(crest, 99))
		assert.Equal(t, 4.5, m.Velocity().At(crest, int(saltTop[crest])))
	}
}

func TestGaussianSaltPreserveFractionalSpacing(t *testing.T) {
	t.Parallel()

	const ny = 128
	minSpace := 0.01 * ny
	for seed := int64(0); seed < 20; seed++ {
		m := newModel(t, 200, ny, linspace(1.5, 3.5, 20))
		_, err := steps.NewDippingLayer(steps.WithSeed(seed), steps.WithMinSplit(0.01)).Generate(m)
		require.NoError(t, err)
		_, err = steps.NewGaussianSalt(steps.WithSeed(seed), steps.WithPenetrate(false)).Generate(m)
		require.NoError(t, err)
		requireInterfaceInvariants(t, m)

		rows := m.Interface()
		for i := 1; i < len(rows)-1; i++ {
			top := rows[i][0]
			for _, v := range rows[i] {
				top = min(top, v)
			}
			if top == 0 {
				continue
			}
			gap := model.MinGap(rows[i], rows[i+1])
			assert.GreaterOrEqual(t, float64(gap), minSpace, "seed %d rows %d-%d", seed, i, i+1)
		}
	}
}

func TestGaussianSaltPenetrate(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 20; seed++ {
		m := newModel(t, 120, 80, linspace(1.5, 3.5, 12))
		_, err := steps.NewFlatLayer(steps.WithSeed(seed), steps.WithMinSplit(0.02)).Generate(m)
		require.NoError(t, err)
		_, err = steps.NewGaussianSalt(steps.WithSeed(seed), steps.WithPenetrate(true)).Generate(m)
		require.NoError(t, err)
		requireInterfaceInvariants(t, m)
	}
}

func TestGaussianSaltKeepsEarlierSalts(t *testing.T) {
	t.Parallel()

	m := newModel(t, 200, 100, []float64{1.5, 2, 2.5, 3})
	_, err := steps.NewFlatLayer(steps.WithDepths([]float64{0, 20, 40, 60, 100})).Generate(m)
	require.NoError(t, err)

	first := steps.NewGaussianSalt(steps.WithCenter(30), steps.WithWidth(10), steps.WithHeight(40),
		steps.WithPenetrate(false))
	second := steps.NewGaussianSalt(steps.WithCenter(170), steps.WithWidth(10), steps.WithHeight(40),
		steps.WithPenetrate(false), steps.WithVSalt(5))
	_, err = first.Generate(m)
	require.NoError(t, err)
	_, err = second.Generate(m)
	require.NoError(t, err)

	assert.Equal(t, 2, m.History().Len(model.KeyGaussianSaltTop))
	assert.Equal(t, []any{4.5, 5.0}, m.History().All(model.KeyGaussianVSalt))
	assert.Equal(t, 4.5, m.Velocity().At(30, 99))
	assert.Equal(t, 5.0, m.Velocity().At(170, 99))
	assert.NotEqual(t, 4.5, m.Velocity().At(100, 99))
	assert.NotEqual(t, 5.0, m.Velocity().At(100, 99))
}

func TestGaussianSaltNeedsLayers(t *testing.T) {
	t.Parallel()

	m := newModel(t, 20, 20, []float64{1.5, 2})
	_, err := steps.NewGaussianSalt().Generate(m)
	require.ErrorIs(t, err, model.ErrNoInterface)
}
