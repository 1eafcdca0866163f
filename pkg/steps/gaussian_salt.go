package steps

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-velgen/pkg/pipeline"
	"github.com/askiada/go-velgen/pkg/pipeline/model"
	"github.com/askiada/go-velgen/pkg/pipeline/random"
)

// saltDownshift sinks the gaussian curve so its flanks end below the model.
const saltDownshift = 0.02

// GaussianSalt raises a salt dome with a gaussian top from the bottom of the
// model. Interfaces above the dome are pushed up before the field is filled.
type GaussianSalt struct {
	random      *random.Sampler
	vSalt       float64
	x0          *float64
	height      *float64
	width       *float64
	effSpace    float64
	minSpace    float64
	x0Range     [2]float64
	heightRange [2]float64
	widthRange  [2]float64
	penetrate   *bool
}

// NewGaussianSalt creates a gaussian salt step. It reads WithVSalt (default
// 4.5), WithCenter, WithHeight, WithWidth, WithEffSpace (default 0.02),
// WithMinSpace (default 0.01), WithX0Range (default 0.2 to 0.8),
// WithHeightRange (default 0.2 to 0.6), WithWidthRange (default 0.1 to 0.2)
// and WithPenetrate.
func NewGaussianSalt(opts ...Option) *GaussianSalt {
	o := newOptions(opts)

	return &GaussianSalt{
		random:      o.sampler(),
		vSalt:       valueOr(o.vSalt, 4.5),
		x0:          o.center,
		height:      o.height,
		width:       o.width,
		effSpace:    valueOr(o.effSpace, 0.02),
		minSpace:    valueOr(o.minSpace, 0.01),
		x0Range:     valueOr(o.x0Range, [2]float64{0.2, 0.8}),
		heightRange: valueOr(o.heightRange, [2]float64{0.2, 0.6}),
		widthRange:  valueOr(o.widthRange, [2]float64{0.1, 0.2}),
		penetrate:   o.penetrate,
	}
}

func (*GaussianSalt) Name() string {
	return "gaussian_salt"
}

// SaltCurve samples A·exp(-(x-x0)²/2σ²) minus the downshift at every column.
func SaltCurve(amplitude, sigma, x0 float64, nx, ny int) []float64 {
	curve := make([]float64, nx)
	d := 2 * sigma * sigma
	for x := range curve {
		dx := float64(x) - x0
		curve[x] = amplitude*math.Exp(-dx*dx/d) - saltDownshift*float64(ny)
	}

	return curve
}

func (s *GaussianSalt) draw(nx, ny int) (x0, height, width float64) {
	x0 = drawOr(s.random, s.x0, s.x0Range, nx)
	height = drawOr(s.random, s.height, s.heightRange, ny)
	width = drawOr(s.random, s.width, s.widthRange, nx)

	return x0, height, width
}

// drawOr returns the fixed value when set, else a fraction of n drawn in
// fracRange.
func drawOr(rnd *random.Sampler, fixed *float64, fracRange [2]float64, n int) float64 {
	if fixed != nil {
		return *fixed
	}

	return rnd.Uniform(fracRange[0], fracRange[1]) * float64(n)
}

// pushInterfaces lifts every interior row whose clearance above the salt top
// is below effSpace with a wider, scaled copy of the salt curve.
func (s *GaussianSalt) pushInterfaces(rows [][]int, saltTop []float64, x0, width float64, penetrate bool, ny int) {
	nx := len(saltTop)
	n := len(rows)
	effSpace := s.effSpace * float64(ny)
	minSpace := s.minSpace * float64(ny)

	for i := 1; i < n-1; i++ {
		clearance := math.Inf(1)
		for x, top := range saltTop {
			clearance = math.Min(clearance, top-float64(rows[i][x]))
		}
		if clearance >= effSpace {
			continue
		}
		height := math.Abs(clearance) + minSpace
		if penetrate {
			height = math.Abs(clearance) * float64(i) / float64(n)
		}
		scale := 1 + float64(n-i)/float64(n)
		push := SaltCurve(height, width*scale, x0, nx, ny)
		for x := range rows[i] {
			rows[i][x] -= int(push[x])
		}
	}
}

func (s *GaussianSalt) Generate(m *model.Model) (*model.Model, error) {
	if !m.HasInterface() {
		return nil, errors.Wrap(model.ErrNoInterface, "salt needs layers")
	}
	nx, ny := m.Shape()

	x0, height, width := s.draw(nx, ny)
	curve := SaltCurve(height, width, x0, nx, ny)
	saltTop := make([]float64, nx)
	for x, c := range curve {
		saltTop[x] = float64(ny) - c
	}

	penetrate := s.random.Bool()
	if s.penetrate != nil {
		penetrate = *s.penetrate
	}

	rows := m.CloneInterface()
	s.pushInterfaces(rows, saltTop, x0, width, penetrate, ny)
	if penetrate {
		PinchOut(rows, ny)
	} else {
		AdjustInterface(rows, s.minSpace*float64(ny), ny)
	}

	err := m.SetInterface(rows)
	if err != nil {
		return nil, err
	}
	vel, err := m.Generate(true)
	if err != nil {
		return nil, errors.Wrap(err, "unable to refill velocity")
	}
	m.History().Record(model.KeyGaussianSaltTop, saltTop)
	m.History().Record(model.KeyGaussianVSalt, s.vSalt)

	// refilling erased earlier salts, so every recorded salt is drawn again
	tops := model.AllOf[[]float64](m.History(), model.KeyGaussianSaltTop)
	vsalts := model.AllOf[float64](m.History(), model.KeyGaussianVSalt)
	for i := range min(len(tops), len(vsalts)) {
		fillBelow(vel, tops[i], vsalts[i])
	}

	err = m.SetVelocity(vel)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func fillBelow(vel *mat.Dense, saltTop []float64, vsalt float64) {
	_, ny := vel.Dims()
	for ix, top := range saltTop {
		col := vel.RawRowView(ix)
		for iy := max(int(top), 0); iy < ny; iy++ {
			col[iy] = vsalt
		}
	}
}

// AdjustInterface restores a minimum spacing between interior rows from the
// bottom up. A row closer than minSpace to the row below at any column is
// lifted whole by the deficit plus minSpace rounded up to whole samples,
// which can cascade upwards.
// The first and last rows never move and interior rows stay inside [0, ny].
func AdjustInterface(rows [][]int, minSpace float64, ny int) {
	last := len(rows) - 1
	margin := int(math.Ceil(minSpace))
	for i := last; i >= 2; i-- {
		dmin := model.MinGap(rows[i-1], rows[i])
		if float64(dmin) < minSpace {
			model.ShiftRow(rows[i-1], -(abs(dmin) + margin))
		}
	}
	model.ClampRows(rows, 1, last, 0, ny)
}

// PinchOut clamps interior rows into [0, ny] and, from the bottom up, lets a
// row that crosses the one below it follow that row, so crossed layers thin
// out to zero thickness.
func PinchOut(rows [][]int, ny int) {
	last := len(rows) - 1
	model.ClampRows(rows, 1, last, 0, ny)
	for i := last - 1; i >= 1; i-- {
		for x := range rows[i] {
			rows[i][x] = min(rows[i][x], rows[i+1][x])
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

var _ pipeline.Step = (*GaussianSalt)(nil)
