package steps

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-velgen/pkg/pipeline"
	"github.com/askiada/go-velgen/pkg/pipeline/model"
	"github.com/askiada/go-velgen/pkg/pipeline/random"
)

// LinearWaterLayer overwrites the top of the velocity field with water down
// to a straight sea bottom.
type LinearWaterLayer struct {
	random   *random.Sampler
	yRange   [2]float64
	vWater   float64
	boundary *[2]float64
}

// NewLinearWaterLayer creates a water step. It reads WithYRange (default 0.1
// to 0.4), WithVWater (default 1.5) and WithBoundary.
func NewLinearWaterLayer(opts ...Option) *LinearWaterLayer {
	o := newOptions(opts)

	return &LinearWaterLayer{
		random:   o.sampler(),
		yRange:   valueOr(o.yRange, [2]float64{0.1, 0.4}),
		vWater:   valueOr(o.vWater, 1.5),
		boundary: o.boundary,
	}
}

func (*LinearWaterLayer) Name() string {
	return "linear_water_layer"
}

func (s *LinearWaterLayer) Generate(m *model.Model) (*model.Model, error) {
	nx, ny := m.Shape()

	var left, right float64
	if s.boundary != nil {
		left, right = s.boundary[0], s.boundary[1]
	} else {
		lo, hi := float64(ny)*s.yRange[0], float64(ny)*s.yRange[1]
		left = s.random.Uniform(lo, hi)
		right = s.random.Uniform(lo, hi)
	}
	waterBottom := model.LinspaceInt(left, right, nx)

	vel, err := m.Generate(false)
	if err != nil {
		return nil, errors.Wrap(err, "unable to materialize velocity")
	}
	for ix, bottom := range waterBottom {
		col := vel.RawRowView(ix)
		for iy := 0; iy < min(bottom, ny); iy++ {
			col[iy] = s.vWater
		}
	}
	err = m.SetVelocity(vel)
	if err != nil {
		return nil, err
	}
	m.History().Record(model.KeyWaterBottom, waterBottom)

	return m, nil
}

var _ pipeline.Step = (*LinearWaterLayer)(nil)
