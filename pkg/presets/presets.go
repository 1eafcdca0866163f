// Package presets assembles ready-made pipelines for common geologic
// settings. Every preset returns a pipeline bound to a fresh model, so
// Generate can be called without passing one.
package presets

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/askiada/go-velgen/pkg/pipeline"
	"github.com/askiada/go-velgen/pkg/pipeline/model"
	"github.com/askiada/go-velgen/pkg/pipeline/random"
	"github.com/askiada/go-velgen/pkg/steps"
)

var ErrUnknownPreset = errors.New("presets: unknown preset")

// Preset builds a pipeline for an nx by ny model. velseed may be nil for
// presets that draw their own layer velocities.
type Preset func(nx, ny int, velseed []float64, opts ...Option) (*pipeline.Pipeline, error)

type options struct {
	seed      int64
	seeded    bool
	hooks     []model.PipelineHook
	vSalt     *float64
	maxFaults int
	nSalts    int
	dz        float64
	v0        float64
	vWater    float64
	nLayers   int
	k         *float64
}

type Option func(o *options)

// WithSeed makes the preset reproducible. The model gets seed and the step
// at position i gets seed+i+1.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithHooks registers pipeline hooks.
func WithHooks(hooks ...model.PipelineHook) Option {
	return func(o *options) {
		o.hooks = append(o.hooks, hooks...)
	}
}

// WithVSalt sets the salt velocity of salt presets.
func WithVSalt(v float64) Option {
	return func(o *options) {
		o.vSalt = &v
	}
}

// WithMaxFaults bounds the number of faults of the fault preset.
func WithMaxFaults(n int) Option {
	return func(o *options) {
		o.maxFaults = n
	}
}

// WithNSalts sets how many elliptic bodies the elliptic preset inserts.
func WithNSalts(n int) Option {
	return func(o *options) {
		o.nSalts = n
	}
}

// WithDz sets the vertical sample interval, in km, of the Gulf of Mexico
// preset.
func WithDz(dz float64) Option {
	return func(o *options) {
		o.dz = dz
	}
}

// WithGradient fixes the velocity gradient of the Gulf of Mexico preset:
// the surface velocity v0, the number of layers and the gradient k in 1/s.
// Zero values keep the random draws.
func WithGradient(v0 float64, nLayers int, k float64) Option {
	return func(o *options) {
		o.v0 = v0
		o.nLayers = nLayers
		if k != 0 {
			o.k = &k
		}
	}
}

// WithVWater sets the water velocity of the Gulf of Mexico preset.
func WithVWater(v float64) Option {
	return func(o *options) {
		o.vWater = v
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		maxFaults: 2,
		nSalts:    2,
		dz:        0.01,
		v0:        1.5,
		vWater:    1.5,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

func (o *options) random() *random.Sampler {
	if o.seeded {
		return random.New(random.WithSeed(o.seed))
	}

	return random.New()
}

func (o *options) vsalt() float64 {
	if o.vSalt != nil {
		return *o.vSalt
	}

	return 4.5
}

// chain numbers steps so each one gets its own derived seed.
type chain struct {
	o     *options
	steps []pipeline.Step
}

func (c *chain) add(newStep func(...steps.Option) pipeline.Step, opts ...steps.Option) *chain {
	if c.o.seeded {
		opts = append(opts, steps.WithSeed(c.o.seed+int64(len(c.steps))+1))
	}
	c.steps = append(c.steps, newStep(opts...))

	return c
}

func (c *chain) build(nx, ny int, velseed []float64) (*pipeline.Pipeline, error) {
	modelOpts := []model.ModelOption{}
	if c.o.seeded {
		modelOpts = append(modelOpts, model.WithSeed(c.o.seed))
	}
	m, err := model.New(nx, ny, velseed, modelOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create model")
	}

	return pipeline.New(c.steps, pipeline.PipelineModel(m), pipeline.PipelineHooks(c.o.hooks...))
}

func flatLayer(o ...steps.Option) pipeline.Step    { return steps.NewFlatLayer(o...) }
func dippingLayer(o ...steps.Option) pipeline.Step { return steps.NewDippingLayer(o...) }
func cosineFold(o ...steps.Option) pipeline.Step   { return steps.NewCosineFold(o...) }
func linearFault(o ...steps.Option) pipeline.Step  { return steps.NewLinearFault(o...) }
func waterLayer(o ...steps.Option) pipeline.Step   { return steps.NewLinearWaterLayer(o...) }
func gaussianSalt(o ...steps.Option) pipeline.Step { return steps.NewGaussianSalt(o...) }
func ellipticSalt(o ...steps.Option) pipeline.Step { return steps.NewEllipticSalt(o...) }

// Flat lays flat layers.
func Flat(nx, ny int, velseed []float64, opts ...Option) (*pipeline.Pipeline, error) {
	c := &chain{o: newOptions(opts)}

	return c.add(flatLayer).build(nx, ny, velseed)
}

// Dip lays dipping layers.
func Dip(nx, ny int, velseed []float64, opts ...Option) (*pipeline.Pipeline, error) {
	c := &chain{o: newOptions(opts)}

	return c.add(dippingLayer).build(nx, ny, velseed)
}

// CosineFold folds flat layers.
func CosineFold(nx, ny int, velseed []float64, opts ...Option) (*pipeline.Pipeline, error) {
	c := &chain{o: newOptions(opts)}

	return c.add(flatLayer).add(cosineFold).build(nx, ny, velseed)
}

// LinearFault folds flat layers and cuts them with up to WithMaxFaults
// faults (default 2).
func LinearFault(nx, ny int, velseed []float64, opts ...Option) (*pipeline.Pipeline, error) {
	c := &chain{o: newOptions(opts)}

	return c.add(flatLayer).add(cosineFold).
		add(linearFault, steps.WithMaxNFaults(c.o.maxFaults)).
		build(nx, ny, velseed)
}

// GaussianSalt folds flat layers and raises a gaussian salt dome.
func GaussianSalt(nx, ny int, velseed []float64, opts ...Option) (*pipeline.Pipeline, error) {
	c := &chain{o: newOptions(opts)}

	return c.add(flatLayer).add(cosineFold).
		add(gaussianSalt, steps.WithVSalt(c.o.vsalt())).
		build(nx, ny, velseed)
}

// EllipticSalt folds flat layers and inserts WithNSalts elliptic bodies
// (default 2).
func EllipticSalt(nx, ny int, velseed []float64, opts ...Option) (*pipeline.Pipeline, error) {
	c := &chain{o: newOptions(opts)}
	c.add(flatLayer).add(cosineFold)
	for i := 0; i < c.o.nSalts; i++ {
		c.add(ellipticSalt, steps.WithVSalt(c.o.vsalt()))
	}

	return c.build(nx, ny, velseed)
}

// GaussianElliptic folds flat layers, raises a gaussian dome and caps it with
// an elliptic body.
func GaussianElliptic(nx, ny int, velseed []float64, opts ...Option) (*pipeline.Pipeline, error) {
	c := &chain{o: newOptions(opts)}

	return c.add(flatLayer).add(cosineFold).
		add(gaussianSalt, steps.WithVSalt(c.o.vsalt())).
		add(ellipticSalt, steps.WithVSalt(c.o.vsalt())).
		build(nx, ny, velseed)
}

// GulfOfMexico builds a dipping, compacting sediment column with one of five
// salt scenarios under a water layer. Without velseed, the layer velocities
// grow linearly with depth from v0 with a gradient k drawn in [0.38, 0.42)
// over a number of layers drawn in [10, 25).
func GulfOfMexico(nx, ny int, velseed []float64, opts ...Option) (*pipeline.Pipeline, error) {
	o := newOptions(opts)
	rnd := o.random()

	if velseed == nil {
		k := rnd.Uniform(0.38, 0.42)
		if o.k != nil {
			k = *o.k
		}
		nLayers := rnd.Int(10, 25)
		if o.nLayers > 0 {
			nLayers = o.nLayers
		}
		zmax := float64(ny) * o.dz
		velseed = model.Linspace(o.v0, o.v0+k*zmax, nLayers)
	}
	vsalt := rnd.Uniform(4.5, 5.0)
	if o.vSalt != nil {
		vsalt = *o.vSalt
	}

	narrowGaussian := func(c *chain) {
		c.add(gaussianSalt, steps.WithVSalt(vsalt), steps.WithWidthRange(0.05, 0.1), steps.WithHeightRange(0.4, 0.6))
	}
	ellipse := func(c *chain) {
		c.add(ellipticSalt, steps.WithVSalt(vsalt))
	}
	scenarios := [][]func(c *chain){
		{narrowGaussian},
		{narrowGaussian, narrowGaussian},
		{ellipse},
		{ellipse, ellipse},
		{narrowGaussian, ellipse},
	}
	scenario := scenarios[rnd.Choice(len(scenarios))]

	c := &chain{o: o}
	c.add(dippingLayer, steps.WithYRange(0.1, 0.9), steps.WithMinSplit(0.01))
	for _, addSalt := range scenario {
		addSalt(c)
	}
	c.add(waterLayer, steps.WithVWater(o.vWater), steps.WithYRange(0.1, 0.2))

	return c.build(nx, ny, velseed)
}

var registry = map[string]Preset{
	"flat":              Flat,
	"dip":               Dip,
	"fold":              CosineFold,
	"fault":             LinearFault,
	"gaussian":          GaussianSalt,
	"elliptic":          EllipticSalt,
	"gaussian_elliptic": GaussianElliptic,
	"gulf":              GulfOfMexico,
}

// Lookup returns the preset registered under name.
func Lookup(name string) (Preset, error) {
	p, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPreset, "%q, expected one of %v", name, Names())
	}

	return p, nil
}

// Names lists the registered presets in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
