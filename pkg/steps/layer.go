package steps

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-velgen/pkg/pipeline"
	"github.com/askiada/go-velgen/pkg/pipeline/model"
	"github.com/askiada/go-velgen/pkg/pipeline/random"
)

// FlatLayer lays horizontal interfaces at random depths.
type FlatLayer struct {
	random   *random.Sampler
	yRange   [2]float64
	minSplit float64
	depths   []float64
}

// NewFlatLayer creates a flat layering step. It reads WithYRange (default
// 0.1 to 0.9), WithMinSplit (default 0.05) and WithDepths.
func NewFlatLayer(opts ...Option) *FlatLayer {
	o := newOptions(opts)

	return &FlatLayer{
		random:   o.sampler(),
		yRange:   valueOr(o.yRange, [2]float64{0.1, 0.9}),
		minSplit: valueOr(o.minSplit, 0.05),
		depths:   o.depths,
	}
}

func (*FlatLayer) Name() string {
	return "flat_layer"
}

func (s *FlatLayer) Generate(m *model.Model) (*model.Model, error) {
	nx, _ := m.Shape()

	depths := s.depths
	if depths == nil {
		var err error
		depths, err = drawDepths(s.random, m, s.yRange, s.minSplit)
		if err != nil {
			return nil, errors.Wrap(err, "unable to draw flat depths")
		}
	}
	if len(depths) != m.NLayers()+1 {
		return nil, errors.Wrapf(model.ErrShapeMismatch, "expected %d depths, got %d", m.NLayers()+1, len(depths))
	}

	rows := make([][]int, len(depths))
	for i, d := range depths {
		rows[i] = make([]int, nx)
		for x := range rows[i] {
			rows[i][x] = int(d)
		}
	}
	err := m.SetInterface(rows)
	if err != nil {
		return nil, err
	}
	m.History().Record(model.KeyFlatDepth, depths)

	return m, nil
}

// DippingLayer lays planar interfaces tilted between a left and a right
// depth.
type DippingLayer struct {
	random      *random.Sampler
	yRange      [2]float64
	minSplit    float64
	left, right []float64
}

// NewDippingLayer creates a dipping layering step. It reads WithYRange
// (default 0.1 to 0.9), WithMinSplit (default 0.05) and WithEdges.
func NewDippingLayer(opts ...Option) *DippingLayer {
	o := newOptions(opts)

	return &DippingLayer{
		random:   o.sampler(),
		yRange:   valueOr(o.yRange, [2]float64{0.1, 0.9}),
		minSplit: valueOr(o.minSplit, 0.05),
		left:     o.left,
		right:    o.right,
	}
}

func (*DippingLayer) Name() string {
	return "dipping_layer"
}

func (s *DippingLayer) Generate(m *model.Model) (*model.Model, error) {
	nx, _ := m.Shape()

	left, right := s.left, s.right
	var err error
	if left == nil {
		left, err = drawDepths(s.random, m, s.yRange, s.minSplit)
		if err != nil {
			return nil, errors.Wrap(err, "unable to draw left depths")
		}
	}
	if right == nil {
		right, err = drawDepths(s.random, m, s.yRange, s.minSplit)
		if err != nil {
			return nil, errors.Wrap(err, "unable to draw right depths")
		}
	}
	if len(left) != m.NLayers()+1 || len(right) != len(left) {
		return nil, errors.Wrapf(model.ErrShapeMismatch,
			"expected %d edge depths, got %d left and %d right", m.NLayers()+1, len(left), len(right))
	}

	rows := make([][]int, len(left))
	for i := range left {
		rows[i] = model.LinspaceInt(left[i], right[i], nx)
	}
	err = m.SetInterface(rows)
	if err != nil {
		return nil, err
	}
	m.History().Record(model.KeyDipLeft, left)
	m.History().Record(model.KeyDipRight, right)

	return m, nil
}

// drawDepths draws nlayers-1 interior depths in the yRange band at least
// minSplit apart, bounded by 0 and ny.
func drawDepths(rnd *random.Sampler, m *model.Model, yRange [2]float64, minSplit float64) ([]float64, error) {
	_, ny := m.Shape()
	lo := float64(int(float64(ny) * yRange[0]))
	hi := float64(int(float64(ny) * yRange[1]))
	split := float64(int(float64(ny) * minSplit))

	return rnd.ArrayInterval(lo, hi, m.NLayers()-1, split, random.Prepend(0), random.Append(float64(ny)))
}

var (
	_ pipeline.Step = (*FlatLayer)(nil)
	_ pipeline.Step = (*DippingLayer)(nil)
)
