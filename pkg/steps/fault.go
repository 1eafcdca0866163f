package steps

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-velgen/pkg/pipeline"
	"github.com/askiada/go-velgen/pkg/pipeline/model"
	"github.com/askiada/go-velgen/pkg/pipeline/random"
)

// LinearFault offsets the velocity field across straight fault planes.
type LinearFault struct {
	random      *random.Sampler
	nFaults     *int
	maxNFaults  int
	vShift      *int
	pads        [2]float64
	vShiftRange [2]float64
}

// NewLinearFault creates a faulting step. It reads WithNFaults,
// WithMaxNFaults (default 3), WithVShift, WithPads (default 0.1 each side)
// and WithVShiftRange (default 0.05 to 0.15).
func NewLinearFault(opts ...Option) *LinearFault {
	o := newOptions(opts)

	return &LinearFault{
		random:      o.sampler(),
		nFaults:     o.nFaults,
		maxNFaults:  max(valueOr(o.maxNFaults, 3), 1),
		vShift:      o.vShift,
		pads:        valueOr(o.pads, [2]float64{0.1, 0.1}),
		vShiftRange: valueOr(o.vShiftRange, [2]float64{0.05, 0.15}),
	}
}

func (*LinearFault) Name() string {
	return "linear_fault"
}

func (s *LinearFault) traces(n, nx int) (tops, bottoms []int, err error) {
	lo, hi := s.pads[0], 1-s.pads[1]
	top, err := s.random.Array(lo, hi, n, true)
	if err != nil {
		return nil, nil, err
	}
	bottom, err := s.random.Array(lo, hi, n, true)
	if err != nil {
		return nil, nil, err
	}
	tops, bottoms = make([]int, n), make([]int, n)
	for i := range top {
		tops[i] = int(top[i] * float64(nx))
		bottoms[i] = int(bottom[i] * float64(nx))
	}

	return tops, bottoms, nil
}

func (s *LinearFault) shifts(n, ny int) []int {
	shifts := make([]int, n)
	if s.vShift != nil {
		for i := range shifts {
			shifts[i] = *s.vShift
		}

		return shifts
	}
	lo := int(float64(ny) * s.vShiftRange[0])
	hi := int(float64(ny) * s.vShiftRange[1])
	sign := s.random.Sign()
	for i := range shifts {
		shifts[i] = s.random.Int(lo, hi) * sign
	}

	return shifts
}

func (s *LinearFault) Generate(m *model.Model) (*model.Model, error) {
	nx, ny := m.Shape()

	var n int
	if s.nFaults != nil {
		n = *s.nFaults
	} else {
		n = 1 + s.random.Choice(s.maxNFaults)
	}
	tops, bottoms, err := s.traces(n, nx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to draw fault traces")
	}
	shifts := s.shifts(n, ny)

	vel, err := m.Generate(false)
	if err != nil {
		return nil, errors.Wrap(err, "unable to materialize velocity")
	}
	// the last drawn fault is cut first, so earlier faults cross it
	for i := n - 1; i >= 0; i-- {
		Displace(vel, tops[i], bottoms[i], shifts[i])
	}
	err = m.SetVelocity(vel)
	if err != nil {
		return nil, err
	}
	m.History().Record(model.KeyFaultTop, tops)
	m.History().Record(model.KeyFaultBottom, bottoms)
	m.History().Record(model.KeyFaultShift, shifts)

	return m, nil
}

// Displace moves the block left of the trace running from column top at the
// surface to column bottom at depth ny. The block is shifted down by vshift
// rows and sideways along the trace slope. Cells read from outside the grid
// take the nearest edge value, so every output value already existed in vel.
func Displace(vel *mat.Dense, top, bottom, vshift int) {
	nx, ny := vel.Dims()
	faultLine := model.LinspaceInt(float64(top), float64(bottom), ny)
	hshift := int(math.Abs(float64(top-bottom)) / float64(ny) * float64(vshift))

	src := mat.DenseCopyOf(vel)
	for iy := 0; iy < ny; iy++ {
		sy := clamp(iy-vshift, 0, ny-1)
		for ix := 0; ix < min(faultLine[iy], nx); ix++ {
			vel.Set(ix, iy, src.At(clamp(ix-hshift, 0, nx-1), sy))
		}
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

var _ pipeline.Step = (*LinearFault)(nil)
