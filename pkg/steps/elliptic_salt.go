package steps

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/askiada/go-velgen/pkg/pipeline"
	"github.com/askiada/go-velgen/pkg/pipeline/model"
	"github.com/askiada/go-velgen/pkg/pipeline/random"
)

// EllipticSalt paints an elliptic salt body into the filled velocity field.
// Run after a GaussianSalt it sits on the crest of the last gaussian body.
type EllipticSalt struct {
	random   *random.Sampler
	vSalt    float64
	center   *[2]float64
	axes     *[2]float64
	x0Range  [2]float64
	y0Range  [2]float64
	aRange   [2]float64
	bRange   [2]float64
	vaRange  [2]float64
	vbRange  [2]float64
	vertical *bool
}

// NewEllipticSalt creates an elliptic salt step. It reads WithVSalt (default
// 4.5), WithCenterAt, WithAxes, WithX0Range (default 0.1 to 0.9),
// WithY0Range (default 0.4 to 0.9), WithWidthRange (default 0.3 to 0.5),
// WithHeightRange (default 0.08 to 0.2), WithVWidthRange (default 0.1 to
// 0.2), WithVHeightRange (default 0.25 to 0.5) and WithVertical. Width and
// height ranges are full sizes; the semi-axes are drawn from half of them.
func NewEllipticSalt(opts ...Option) *EllipticSalt {
	o := newOptions(opts)

	return &EllipticSalt{
		random:   o.sampler(),
		vSalt:    valueOr(o.vSalt, 4.5),
		center:   o.centerAt,
		axes:     o.axes,
		x0Range:  valueOr(o.x0Range, [2]float64{0.1, 0.9}),
		y0Range:  valueOr(o.y0Range, [2]float64{0.4, 0.9}),
		aRange:   half(valueOr(o.widthRange, [2]float64{0.3, 0.5})),
		bRange:   half(valueOr(o.heightRange, [2]float64{0.08, 0.2})),
		vaRange:  half(valueOr(o.vWidthRange, [2]float64{0.1, 0.2})),
		vbRange:  half(valueOr(o.vHeightRange, [2]float64{0.25, 0.5})),
		vertical: o.vertical,
	}
}

func half(r [2]float64) [2]float64 {
	return [2]float64{r[0] / 2, r[1] / 2}
}

func (*EllipticSalt) Name() string {
	return "elliptic_salt"
}

// centre picks the ellipse centre. A recorded gaussian salt wins over a
// random draw and forces a horizontal ellipse.
func (s *EllipticSalt) centre(m *model.Model) (x0, y0 float64, vertical *bool) {
	if s.center != nil {
		return s.center[0], s.center[1], s.vertical
	}
	if saltTop, ok := model.LastOf[[]float64](m.History(), model.KeyGaussianSaltTop); ok && len(saltTop) > 0 {
		x0, y0 = crest(saltTop)

		return x0, y0, ptr(false)
	}
	nx, ny := m.Shape()
	x0 = s.random.Uniform(s.x0Range[0], s.x0Range[1]) * float64(nx)
	y0 = s.random.Uniform(s.y0Range[0], s.y0Range[1]) * float64(ny)

	return x0, y0, s.vertical
}

// crest returns the column and depth of the shallowest point of a salt top.
func crest(saltTop []float64) (x0, y0 float64) {
	idx := floats.MinIdx(saltTop)

	return float64(idx), saltTop[idx]
}

func (s *EllipticSalt) Generate(m *model.Model) (*model.Model, error) {
	if !m.HasInterface() {
		return nil, errors.Wrap(model.ErrNoInterface, "salt needs layers")
	}
	nx, ny := m.Shape()

	x0, y0, vertical := s.centre(m)
	if vertical == nil {
		vertical = ptr(s.random.Bool())
	}
	aRange, bRange := s.aRange, s.bRange
	if *vertical {
		aRange, bRange = s.vaRange, s.vbRange
	}
	var a, b float64
	if s.axes != nil {
		a, b = s.axes[0], s.axes[1]
	} else {
		a = s.random.Uniform(aRange[0], aRange[1]) * float64(nx)
		b = s.random.Uniform(bRange[0], bRange[1]) * float64(ny)
	}

	// keep the body below the shallowest point of the first interface
	if first := m.Interface()[1]; len(first) > 0 {
		depths := make([]float64, len(first))
		for i, v := range first {
			depths[i] = float64(v)
		}
		if top := floats.Min(depths); y0-b < top {
			y0 += top - (y0 - b)
		}
	}

	vel, err := m.Generate(false)
	if err != nil {
		return nil, errors.Wrap(err, "unable to materialize velocity")
	}
	for ix := 0; ix < nx; ix++ {
		col := vel.RawRowView(ix)
		dx := (float64(ix) - x0) / a
		for iy := 0; iy < ny; iy++ {
			dy := (float64(iy) - y0) / b
			if dx*dx+dy*dy <= 1 {
				col[iy] = s.vSalt
			}
		}
	}
	err = m.SetVelocity(vel)
	if err != nil {
		return nil, err
	}
	m.History().Record(model.KeyEllipticCenter, []float64{x0, y0})
	m.History().Record(model.KeyEllipticAxes, []float64{a, b})
	m.History().Record(model.KeyEllipticVSalt, s.vSalt)

	return m, nil
}

var _ pipeline.Step = (*EllipticSalt)(nil)
