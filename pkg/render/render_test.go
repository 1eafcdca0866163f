package render_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/askiada/go-velgen/pkg/pipeline/model"
	"github.com/askiada/go-velgen/pkg/render"
	"github.com/askiada/go-velgen/pkg/steps"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func layeredModel(t *testing.T, velseed []float64) *model.Model {
	t.Helper()
	m, err := model.New(20, 10, velseed, model.WithMaxPerturbation(0))
	require.NoError(t, err)
	_, err = steps.NewFlatLayer(steps.WithSeed(1)).Generate(m)
	require.NoError(t, err)

	return m
}

func TestWritePNG(t *testing.T) {
	tcs := map[string][]float64{
		"layers":   {1.5, 2.5, 3.5},
		"constant": {2.0, 2.0},
	}
	for name, velseed := range tcs {
		t.Run(name, func(t *testing.T) {
			m := layeredModel(t, velseed)
			buf := &bytes.Buffer{}
			err := render.WritePNG(buf, m, render.WithInterfaces(true), render.WithSize(4*vg.Inch, 2*vg.Inch))
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}
}

func TestPlot(t *testing.T) {
	m := layeredModel(t, []float64{1.5, 2.5, 3.5})

	p, err := render.Plot(m, render.WithTitle("flat"), render.WithInterfaces(true))
	require.NoError(t, err)
	assert.Equal(t, "flat", p.Title.Text)
	assert.Equal(t, "depth (samples)", p.Y.Label.Text)
}

func TestRenderErrors(t *testing.T) {
	require.ErrorIs(t, render.WritePNG(&bytes.Buffer{}, nil), render.ErrEmptyModel)
	require.ErrorIs(t, render.WriteHTML(&bytes.Buffer{}, nil), render.ErrEmptyModel)

	m, err := model.New(4, 4, []float64{1.5})
	require.NoError(t, err)
	require.ErrorIs(t, render.WriteHTML(&bytes.Buffer{}, m), model.ErrNoInterface)
}

func TestWriteHTML(t *testing.T) {
	m := layeredModel(t, []float64{1.5, 2.5, 3.5})

	full := &bytes.Buffer{}
	require.NoError(t, render.WriteHTML(full, m, render.WithTitle("flat model")))
	page := full.String()
	assert.Contains(t, page, "flat model")
	assert.Contains(t, page, "heatmap")
	assert.Contains(t, page, "nx=20 ny=10 layers=3")

	strided := &bytes.Buffer{}
	require.NoError(t, render.WriteHTML(strided, m, render.WithStride(2)))
	assert.Less(t, strided.Len(), full.Len())
}

func TestSaveFiles(t *testing.T) {
	m := layeredModel(t, []float64{1.5, 2.5})
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "img", "model.png")
	require.NoError(t, render.SavePNG(pngPath, m))
	raw, err := os.ReadFile(pngPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, pngMagic))

	htmlPath := filepath.Join(dir, "model.html")
	require.NoError(t, render.SaveHTML(htmlPath, m))
	raw, err = os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<html")
}
