package model

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-velgen/pkg/pipeline/random"
)

// VelocityType tells how a layer velocity varies with depth.
type VelocityType string

const (
	// Constant layers carry a single velocity.
	Constant VelocityType = "constant"
	// Linear layers carry a top and a bottom velocity interpolated with depth.
	Linear VelocityType = "linear"
)

// DefaultMaxPerturbation is the default amplitude of the noise added to
// layer velocities on every fill.
const DefaultMaxPerturbation = 0.1

// LayerVelocity is the base velocity of one layer.
type LayerVelocity struct {
	Top    float64
	Bottom float64
}

// Model is the geologic state threaded through a pipeline. It is not safe
// for concurrent use: a pipeline run owns it until the run returns.
type Model struct {
	nx, ny   int
	velType  VelocityType
	velSeed  []LayerVelocity
	maxPert  float64
	random   *random.Sampler
	iface    [][]int
	velocity *mat.Dense
	filled   bool
	history  *History
}

type modelConfig struct {
	maxPert     float64
	samplerOpts []random.SamplerOption
}

// ModelOption configures a Model.
type ModelOption func(c *modelConfig)

// WithMaxPerturbation sets the velocity noise amplitude applied on each fill.
func WithMaxPerturbation(maxPert float64) ModelOption {
	return func(c *modelConfig) {
		c.maxPert = maxPert
	}
}

// WithSeed seeds the model's own random stream.
func WithSeed(seed int64) ModelOption {
	return func(c *modelConfig) {
		c.samplerOpts = append(c.samplerOpts, random.WithSeed(seed))
	}
}

// WithPrecision sets the rounding precision of the model's random stream.
func WithPrecision(precision int) ModelOption {
	return func(c *modelConfig) {
		c.samplerOpts = append(c.samplerOpts, random.WithPrecision(precision))
	}
}

// New creates a model of constant-velocity layers.
func New(nx, ny int, velseed []float64, opts ...ModelOption) (*Model, error) {
	layers := make([]LayerVelocity, len(velseed))
	for i, v := range velseed {
		layers[i] = LayerVelocity{Top: v, Bottom: v}
	}

	return newModel(nx, ny, Constant, layers, opts...)
}

// NewLinear creates a model of layers with a linear vertical velocity
// gradient, each given as a (top, bottom) pair.
func NewLinear(nx, ny int, velseed [][2]float64, opts ...ModelOption) (*Model, error) {
	layers := make([]LayerVelocity, len(velseed))
	for i, v := range velseed {
		layers[i] = LayerVelocity{Top: v[0], Bottom: v[1]}
	}

	return newModel(nx, ny, Linear, layers, opts...)
}

func newModel(nx, ny int, velType VelocityType, layers []LayerVelocity, opts ...ModelOption) (*Model, error) {
	if nx <= 0 || ny <= 0 {
		return nil, errors.Wrapf(ErrInvalidShape, "got (%d, %d)", nx, ny)
	}
	if len(layers) == 0 {
		return nil, ErrEmptyVelSeed
	}
	cfg := modelConfig{maxPert: DefaultMaxPerturbation}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Model{
		nx:       nx,
		ny:       ny,
		velType:  velType,
		velSeed:  layers,
		maxPert:  cfg.maxPert,
		random:   random.New(cfg.samplerOpts...),
		velocity: mat.NewDense(nx, ny, nil),
		history:  NewHistory(),
	}, nil
}

// Shape returns the number of horizontal and vertical samples.
func (m *Model) Shape() (nx, ny int) {
	return m.nx, m.ny
}

// NLayers returns the number of layers.
func (m *Model) NLayers() int {
	return len(m.velSeed)
}

// VelType returns the velocity type of the layers.
func (m *Model) VelType() VelocityType {
	return m.velType
}

// VelSeed returns a copy of the base layer velocities.
func (m *Model) VelSeed() []LayerVelocity {
	out := make([]LayerVelocity, len(m.velSeed))
	copy(out, m.velSeed)

	return out
}

// MaxPerturbation returns the velocity noise amplitude.
func (m *Model) MaxPerturbation() float64 {
	return m.maxPert
}

// Interface returns the interface rows. Row i holds the top depth of layer i
// at every column. The returned rows are the model's own storage.
func (m *Model) Interface() [][]int {
	return m.iface
}

// CloneInterface returns a deep copy of the interface rows.
func (m *Model) CloneInterface() [][]int {
	return CloneRows(m.iface)
}

// HasInterface reports whether a layering step has run.
func (m *Model) HasInterface() bool {
	return m.iface != nil
}

// SetInterface replaces the interface rows. rows must have NLayers()+1 rows
// of nx columns each.
func (m *Model) SetInterface(rows [][]int) error {
	if len(rows) != m.NLayers()+1 {
		return errors.Wrapf(ErrShapeMismatch, "interface: expected (%d, %d), got %d rows", m.NLayers()+1, m.nx, len(rows))
	}
	for i, row := range rows {
		if len(row) != m.nx {
			return errors.Wrapf(ErrShapeMismatch, "interface row %d: expected %d columns, got %d", i, m.nx, len(row))
		}
	}
	m.iface = rows

	return nil
}

// Velocity returns the velocity field without materializing it.
func (m *Model) Velocity() *mat.Dense {
	return m.velocity
}

// SetVelocity replaces the velocity field and marks the model as filled.
func (m *Model) SetVelocity(vel *mat.Dense) error {
	if vel == nil {
		return errors.Wrap(ErrShapeMismatch, "velocity is nil")
	}
	r, c := vel.Dims()
	if r != m.nx || c != m.ny {
		return errors.Wrapf(ErrShapeMismatch, "velocity: expected (%d, %d), got (%d, %d)", m.nx, m.ny, r, c)
	}
	m.velocity = vel
	m.filled = true

	return nil
}

// Filled reports whether the velocity field is materialized.
func (m *Model) Filled() bool {
	return m.filled
}

// History returns the provenance log.
func (m *Model) History() *History {
	return m.history
}

// ClearHistory resets the provenance log and the filled flag. The grid and
// velseed are kept.
func (m *Model) ClearHistory() {
	m.history = NewHistory()
	m.filled = false
}

// Generate materializes the velocity field from the interfaces if it is not
// filled yet, or unconditionally when force is set.
func (m *Model) Generate(force bool) (*mat.Dense, error) {
	if force {
		m.filled = false
	}
	if m.filled {
		return m.velocity, nil
	}
	if m.iface == nil {
		return nil, ErrNoInterface
	}

	m.fill(m.perturbedVelSeed())

	return m.velocity, nil
}

func (m *Model) perturbedVelSeed() []LayerVelocity {
	tops := make([]float64, len(m.velSeed))
	bottoms := make([]float64, len(m.velSeed))
	for i, v := range m.velSeed {
		tops[i], bottoms[i] = v.Top, v.Bottom
	}
	tops = m.random.Perturb(tops, m.maxPert, true, false)
	if m.velType == Linear {
		bottoms = m.random.Perturb(bottoms, m.maxPert, true, false)
	} else {
		bottoms = tops
	}

	out := make([]LayerVelocity, len(m.velSeed))
	for i := range out {
		out[i] = LayerVelocity{Top: tops[i], Bottom: bottoms[i]}
	}

	return out
}

// CloneRows deep-copies a set of interface rows.
func CloneRows(rows [][]int) [][]int {
	if rows == nil {
		return nil
	}
	out := make([][]int, len(rows))
	for i, row := range rows {
		out[i] = append([]int(nil), row...)
	}

	return out
}
