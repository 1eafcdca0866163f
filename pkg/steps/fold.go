package steps

import (
	"math"

	"github.com/pkg/errors"

	"github.com/askiada/go-velgen/pkg/pipeline"
	"github.com/askiada/go-velgen/pkg/pipeline/model"
	"github.com/askiada/go-velgen/pkg/pipeline/random"
)

// CosineFold bends interfaces with a cosine wave.
type CosineFold struct {
	random  *random.Sampler
	amax    float64
	hmax    float64
	uniform bool
	first   int
}

// NewCosineFold creates a folding step. It reads WithMaxAmplitude (default
// 0.05), WithMaxFrequency (default 0.05), WithUniform (default true) and
// WithFirst (default 1).
func NewCosineFold(opts ...Option) *CosineFold {
	o := newOptions(opts)

	return &CosineFold{
		random:  o.sampler(),
		amax:    valueOr(o.maxAmplitude, 0.05),
		hmax:    valueOr(o.maxFrequency, 0.05),
		uniform: valueOr(o.uniform, true),
		first:   max(valueOr(o.first, 1), 1),
	}
}

func (*CosineFold) Name() string {
	return "cosine_fold"
}

// shape draws one fold. The phase follows a sorted random ramp so the wave
// stays smooth across x.
func (s *CosineFold) shape(nx, ny int) ([]int, error) {
	a := s.random.Uniform(1, s.amax*float64(ny))
	h := s.random.Uniform(1, s.hmax*float64(nx))
	ramp, err := s.random.Array(0, 1, nx, true)
	if err != nil {
		return nil, err
	}

	fold := make([]int, nx)
	for x, r := range ramp {
		fold[x] = int(s.random.Round(a * math.Cos(h*math.Pi*r)))
	}

	return fold, nil
}

func (s *CosineFold) Generate(m *model.Model) (*model.Model, error) {
	if !m.HasInterface() {
		return nil, errors.Wrap(model.ErrNoInterface, "nothing to fold")
	}
	nx, ny := m.Shape()
	rows := m.CloneInterface()

	fold, err := s.shape(nx, ny)
	if err != nil {
		return nil, errors.Wrap(err, "unable to draw fold")
	}
	applied := make([][]int, 0, m.NLayers())
	for i := s.first; i < m.NLayers(); i++ {
		for x := range rows[i] {
			rows[i][x] += fold[x]
		}
		applied = append(applied, fold)
		if !s.uniform {
			fold, err = s.shape(nx, ny)
			if err != nil {
				return nil, errors.Wrap(err, "unable to draw fold")
			}
		}
	}
	RepairCrossings(rows, ny)

	err = m.SetInterface(rows)
	if err != nil {
		return nil, err
	}
	m.History().Record(model.KeyFoldShape, applied)

	return m, nil
}

// RepairCrossings makes rows monotonic with depth. Interior rows are clamped
// at 0, then walked from the bottom up: a row that dips below the row under
// it at any column is lifted whole by the worst deficit, keeping its wave
// shape. The first and last rows are left untouched and the rest are kept
// inside [0, ny].
func RepairCrossings(rows [][]int, ny int) {
	last := len(rows) - 1
	model.ClampRows(rows, 1, last, 0, math.MaxInt)
	for i := last - 1; i >= 1; i-- {
		if gap := model.MinGap(rows[i], rows[i+1]); gap < 0 {
			model.ShiftRow(rows[i], gap)
		}
	}
	model.ClampRows(rows, 1, last, 0, ny)
}

var _ pipeline.Step = (*CosineFold)(nil)
