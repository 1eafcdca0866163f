package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-velgen/internal/config"
	"github.com/askiada/go-velgen/pkg/presets"
)

const foldRecipe = `
name: fold
shape: [40, 20]
velseed: [1.5, 2.5, 3.5]
steps:
  - type: flat_layer
  - type: cosine_fold
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Load()
	cfg.Output.Dir = t.TempDir()
	cfg.Run.NX, cfg.Run.NY = 60, 40
	cfg.Run.VelSeed = []float64{1.5, 2.5, 3.5}
	cfg.Run.Count = 2
	cfg.Run.Concurrency = 2
	cfg.Run.Seed = 11

	return cfg
}

func TestBuilder(t *testing.T) {
	t.Run("preset", func(t *testing.T) {
		run := testConfig(t).Run
		run.Preset = "fault"

		build, source, err := builder(run, nil)
		require.NoError(t, err)
		assert.Equal(t, "preset fault", source)

		pipe, m, err := build(0)
		require.NoError(t, err)
		assert.Nil(t, m)
		require.NotNil(t, pipe.Model())
		assert.Equal(t, 3, pipe.Model().NLayers())
	})

	t.Run("gulf ignores velseed", func(t *testing.T) {
		run := testConfig(t).Run
		run.Preset = "gulf"

		build, _, err := builder(run, nil)
		require.NoError(t, err)
		pipe, _, err := build(1)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, pipe.Model().NLayers(), 10)
	})

	t.Run("recipe", func(t *testing.T) {
		run := testConfig(t).Run
		run.Recipe = filepath.Join(t.TempDir(), "fold.yaml")
		require.NoError(t, os.WriteFile(run.Recipe, []byte(foldRecipe), 0o600))

		build, source, err := builder(run, nil)
		require.NoError(t, err)
		assert.Equal(t, "recipe fold", source)

		pipe, m, err := build(0)
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Len(t, pipe.Steps(), 2)
	})

	t.Run("unknown preset", func(t *testing.T) {
		run := testConfig(t).Run
		run.Preset = "volcano"

		_, _, err := builder(run, nil)
		require.ErrorIs(t, err, presets.ErrUnknownPreset)
	})

	t.Run("missing recipe", func(t *testing.T) {
		run := testConfig(t).Run
		run.Recipe = filepath.Join(t.TempDir(), "missing.yaml")

		_, _, err := builder(run, nil)
		require.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.Run.Preset = "gaussian"
	cfg.Output.PNG = true
	cfg.Output.DOT = true

	err := run(context.Background(), cfg, log.New(io.Discard))
	require.NoError(t, err)

	for _, pattern := range []string{"model_*.bin", "model_*.yaml", "model_*.png"} {
		matches, err := filepath.Glob(filepath.Join(cfg.Output.Dir, pattern))
		require.NoError(t, err)
		assert.Len(t, matches, 2, pattern)
	}
	assert.FileExists(t, filepath.Join(cfg.Output.Dir, "pipeline.dot"))
}
