package steps

import "github.com/askiada/go-velgen/pkg/pipeline/random"

// Option configures a step. Options a step does not use are ignored, so the
// same option (WithYRange, WithVSalt...) can be shared between steps that
// read it.
type Option func(o *options)

type options struct {
	samplerOpts []random.SamplerOption

	yRange   *[2]float64
	minSplit *float64
	depths   []float64
	left     []float64
	right    []float64

	maxAmplitude *float64
	maxFrequency *float64
	uniform      *bool
	first        *int

	nFaults     *int
	maxNFaults  *int
	vShift      *int
	pads        *[2]float64
	vShiftRange *[2]float64

	vWater   *float64
	boundary *[2]float64

	vSalt        *float64
	center       *float64
	height       *float64
	width        *float64
	effSpace     *float64
	minSpace     *float64
	penetrate    *bool
	x0Range      *[2]float64
	y0Range      *[2]float64
	heightRange  *[2]float64
	widthRange   *[2]float64
	vHeightRange *[2]float64
	vWidthRange  *[2]float64
	centerAt     *[2]float64
	axes         *[2]float64
	vertical     *bool
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

func (o *options) sampler() *random.Sampler {
	return random.New(o.samplerOpts...)
}

func valueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}

	return *v
}

func ptr[T any](v T) *T {
	return &v
}

// WithSeed seeds the step random stream.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.samplerOpts = append(o.samplerOpts, random.WithSeed(seed))
	}
}

// WithPrecision sets the rounding precision of the step random stream.
func WithPrecision(precision int) Option {
	return func(o *options) {
		o.samplerOpts = append(o.samplerOpts, random.WithPrecision(precision))
	}
}

// WithMaxRetries bounds constrained sampling in layering steps.
func WithMaxRetries(retries int) Option {
	return func(o *options) {
		o.samplerOpts = append(o.samplerOpts, random.WithMaxRetries(retries))
	}
}

// WithYRange sets the vertical band, as fractions of ny, in which interfaces
// or the water bottom are drawn.
func WithYRange(lo, hi float64) Option {
	return func(o *options) {
		o.yRange = &[2]float64{lo, hi}
	}
}

// WithMinSplit sets the minimum layer thickness as a fraction of ny.
func WithMinSplit(minSplit float64) Option {
	return func(o *options) {
		o.minSplit = ptr(minSplit)
	}
}

// WithDepths fixes the flat interface depths, surface and bottom included.
func WithDepths(depths []float64) Option {
	return func(o *options) {
		o.depths = append([]float64(nil), depths...)
	}
}

// WithEdges fixes the interface depths at the left and right edges of a
// dipping model, surface and bottom included.
func WithEdges(left, right []float64) Option {
	return func(o *options) {
		o.left = append([]float64(nil), left...)
		o.right = append([]float64(nil), right...)
	}
}

// WithMaxAmplitude bounds the fold amplitude as a fraction of ny.
func WithMaxAmplitude(amax float64) Option {
	return func(o *options) {
		o.maxAmplitude = ptr(amax)
	}
}

// WithMaxFrequency bounds the fold frequency as a fraction of nx.
func WithMaxFrequency(hmax float64) Option {
	return func(o *options) {
		o.maxFrequency = ptr(hmax)
	}
}

// WithUniform reuses one fold shape for every interface when set and draws
// one per interface otherwise.
func WithUniform(uniform bool) Option {
	return func(o *options) {
		o.uniform = ptr(uniform)
	}
}

// WithFirst sets the first folded interface.
func WithFirst(first int) Option {
	return func(o *options) {
		o.first = ptr(first)
	}
}

// WithNFaults fixes the number of faults.
func WithNFaults(n int) Option {
	return func(o *options) {
		o.nFaults = ptr(n)
	}
}

// WithMaxNFaults bounds the drawn number of faults.
func WithMaxNFaults(n int) Option {
	return func(o *options) {
		o.maxNFaults = ptr(n)
	}
}

// WithVShift fixes the vertical throw of every fault, in samples.
func WithVShift(shift int) Option {
	return func(o *options) {
		o.vShift = ptr(shift)
	}
}

// WithPads keeps fault traces away from the left and right edges, as
// fractions of nx.
func WithPads(left, right float64) Option {
	return func(o *options) {
		o.pads = &[2]float64{left, right}
	}
}

// WithVShiftRange sets the fault throw magnitude range as fractions of ny.
func WithVShiftRange(lo, hi float64) Option {
	return func(o *options) {
		o.vShiftRange = &[2]float64{lo, hi}
	}
}

// WithVWater sets the water velocity.
func WithVWater(v float64) Option {
	return func(o *options) {
		o.vWater = ptr(v)
	}
}

// WithBoundary fixes the water bottom depth at the left and right edges, in
// samples.
func WithBoundary(left, right float64) Option {
	return func(o *options) {
		o.boundary = &[2]float64{left, right}
	}
}

// WithVSalt sets the salt velocity.
func WithVSalt(v float64) Option {
	return func(o *options) {
		o.vSalt = ptr(v)
	}
}

// WithCenter fixes the horizontal centre of a gaussian salt, in samples.
func WithCenter(x0 float64) Option {
	return func(o *options) {
		o.center = ptr(x0)
	}
}

// WithHeight fixes the height of a gaussian salt, in samples.
func WithHeight(height float64) Option {
	return func(o *options) {
		o.height = ptr(height)
	}
}

// WithWidth fixes the width of a gaussian salt, in samples.
func WithWidth(width float64) Option {
	return func(o *options) {
		o.width = ptr(width)
	}
}

// WithEffSpace sets the clearance, as a fraction of ny, below which an
// interface is pushed by the salt.
func WithEffSpace(effSpace float64) Option {
	return func(o *options) {
		o.effSpace = ptr(effSpace)
	}
}

// WithMinSpace sets the minimum interface spacing kept around a salt, as a
// fraction of ny.
func WithMinSpace(minSpace float64) Option {
	return func(o *options) {
		o.minSpace = ptr(minSpace)
	}
}

// WithPenetrate lets the salt cross interfaces when set. When the option is
// omitted the mode is drawn on every run.
func WithPenetrate(penetrate bool) Option {
	return func(o *options) {
		o.penetrate = ptr(penetrate)
	}
}

// WithX0Range sets the horizontal centre range as fractions of nx.
func WithX0Range(lo, hi float64) Option {
	return func(o *options) {
		o.x0Range = &[2]float64{lo, hi}
	}
}

// WithY0Range sets the vertical centre range as fractions of ny.
func WithY0Range(lo, hi float64) Option {
	return func(o *options) {
		o.y0Range = &[2]float64{lo, hi}
	}
}

// WithHeightRange sets the salt height range as fractions of ny.
func WithHeightRange(lo, hi float64) Option {
	return func(o *options) {
		o.heightRange = &[2]float64{lo, hi}
	}
}

// WithWidthRange sets the salt width range as fractions of nx.
func WithWidthRange(lo, hi float64) Option {
	return func(o *options) {
		o.widthRange = &[2]float64{lo, hi}
	}
}

// WithVHeightRange sets the height range of vertical ellipses.
func WithVHeightRange(lo, hi float64) Option {
	return func(o *options) {
		o.vHeightRange = &[2]float64{lo, hi}
	}
}

// WithVWidthRange sets the width range of vertical ellipses.
func WithVWidthRange(lo, hi float64) Option {
	return func(o *options) {
		o.vWidthRange = &[2]float64{lo, hi}
	}
}

// WithCenterAt fixes the ellipse centre, in samples.
func WithCenterAt(x0, y0 float64) Option {
	return func(o *options) {
		o.centerAt = &[2]float64{x0, y0}
	}
}

// WithAxes fixes the ellipse semi-axes, in samples.
func WithAxes(a, b float64) Option {
	return func(o *options) {
		o.axes = &[2]float64{a, b}
	}
}

// WithVertical picks the vertical or horizontal axis ranges of an ellipse.
func WithVertical(vertical bool) Option {
	return func(o *options) {
		o.vertical = ptr(vertical)
	}
}
