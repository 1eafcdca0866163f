package steps_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-velgen/pkg/pipeline"
	"github.com/askiada/go-velgen/pkg/pipeline/model"
	"github.com/askiada/go-velgen/pkg/steps"
)

func TestFlatFoldFaultPipeline(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 10; seed++ {
		pipe, err := pipeline.New([]pipeline.Step{
			steps.NewFlatLayer(steps.WithSeed(seed)),
			steps.NewCosineFold(steps.WithSeed(seed), steps.WithUniform(false)),
			steps.NewLinearFault(steps.WithSeed(seed), steps.WithNFaults(2)),
		})
		require.NoError(t, err)
		m := newModel(t, 128, 100, []float64{1.5, 2.0, 2.5, 3.0, 3.5, 4.0}, model.WithSeed(seed))

		vel, err := pipe.Generate(context.Background(), m, true)
		require.NoError(t, err)
		r, c := vel.Dims()
		assert.Equal(t, 128, r)
		assert.Equal(t, 100, c)
		requireFinite(t, vel)
		assert.GreaterOrEqual(t, mat.Min(vel), 1.5-0.1-1e-9)
		assert.LessOrEqual(t, mat.Max(vel), 4.0+0.1+1e-9)
		requireInterfaceInvariants(t, m)
		assert.Equal(t, 1, m.History().Len(model.KeyFaultTop))
	}
}

func TestDipSaltWaterPipeline(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 10; seed++ {
		pipe, err := pipeline.New([]pipeline.Step{
			steps.NewDippingLayer(steps.WithSeed(seed), steps.WithYRange(0.1, 0.9), steps.WithMinSplit(0.01)),
			steps.NewGaussianSalt(steps.WithSeed(seed), steps.WithPenetrate(false)),
			steps.NewLinearWaterLayer(steps.WithSeed(seed), steps.WithYRange(0.1, 0.2)),
		})
		require.NoError(t, err)
		m := newModel(t, 200, 100, linspace(1.5, 3.5, 20), model.WithSeed(seed))

		vel, err := pipe.Generate(context.Background(), m, true)
		require.NoError(t, err)
		requireInterfaceInvariants(t, m)

		waterBottom, ok := model.LastOf[[]int](m.History(), model.KeyWaterBottom)
		require.True(t, ok)
		salt := 0
		for x := 0; x < 200; x++ {
			for y := 0; y < 100; y++ {
				v := vel.At(x, y)
				if y < waterBottom[x] {
					require.Equal(t, 1.5, v, "(%d, %d) is above the sea bottom", x, y)
				}
				if v == 4.5 {
					salt++
				}
			}
		}
		assert.Positive(t, salt)
	}
}

func TestEllipticAfterGaussianPipeline(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New([]pipeline.Step{
		steps.NewFlatLayer(steps.WithDepths([]float64{0, 8, 30, 50, 70, 100})),
		steps.NewGaussianSalt(steps.WithSeed(11)),
		steps.NewEllipticSalt(steps.WithSeed(12)),
	})
	require.NoError(t, err)
	m := newModel(t, 150, 100, []float64{1.5, 2, 2.5, 3, 3.5})

	_, err = pipe.Generate(context.Background(), m, true)
	require.NoError(t, err)

	saltTop, ok := model.LastOf[[]float64](m.History(), model.KeyGaussianSaltTop)
	require.True(t, ok)
	center, ok := model.LastOf[[]float64](m.History(), model.KeyEllipticCenter)
	require.True(t, ok)

	crest := 0
	for x := range saltTop {
		if saltTop[x] < saltTop[crest] {
			crest = x
		}
	}
	assert.Equal(t, float64(crest), center[0])
	assert.Equal(t, saltTop[crest], center[1])
}

func TestPipelineRerunClearsHistory(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New([]pipeline.Step{
		steps.NewFlatLayer(steps.WithSeed(1)),
		steps.NewGaussianSalt(steps.WithSeed(1)),
	})
	require.NoError(t, err)
	m := newModel(t, 50, 50, []float64{1.5, 2, 2.5})

	_, err = pipe.Generate(context.Background(), m, true)
	require.NoError(t, err)
	_, err = pipe.Generate(context.Background(), m, true)
	require.NoError(t, err)
	assert.Equal(t, 1, m.History().Len(model.KeyGaussianSaltTop))

	_, err = pipe.Generate(context.Background(), m, false)
	require.NoError(t, err)
	assert.Equal(t, 2, m.History().Len(model.KeyGaussianSaltTop))
}
