package steps_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-velgen/pkg/pipeline/model"
)

func newModel(t *testing.T, nx, ny int, velseed []float64, opts ...model.ModelOption) *model.Model {
	t.Helper()
	m, err := model.New(nx, ny, velseed, opts...)
	require.NoError(t, err)

	return m
}

func requireInterfaceInvariants(t *testing.T, m *model.Model) {
	t.Helper()
	_, ny := m.Shape()
	rows := m.Interface()
	require.Len(t, rows, m.NLayers()+1)
	require.True(t, model.Boundaries(rows, ny), "first row must be 0 and last row ny")
	require.True(t, model.IsMonotonic(rows), "interfaces must not cross")
}

func valueSet(vel *mat.Dense) map[float64]struct{} {
	nx, ny := vel.Dims()
	set := make(map[float64]struct{})
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			set[vel.At(x, y)] = struct{}{}
		}
	}

	return set
}

func requireFinite(t *testing.T, vel *mat.Dense) {
	t.Helper()
	nx, ny := vel.Dims()
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			v := vel.At(x, y)
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "cell (%d, %d) is %v", x, y, v)
		}
	}
}

func linspace(start, stop float64, n int) []float64 {
	return model.Linspace(start, stop, n)
}
