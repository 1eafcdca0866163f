package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-velgen/pkg/pipeline"
	"github.com/askiada/go-velgen/pkg/pipeline/model"
	"github.com/askiada/go-velgen/pkg/steps"
)

var (
	ErrUnknownStep   = errors.New("config: unknown step type")
	ErrInvalidRecipe = errors.New("config: invalid recipe")
)

const maxRecipeSize = 1 * 1024 * 1024

// Recipe describes a model and the steps applied to it. Step parameters are
// pointers or nil slices so that omitted fields keep the step defaults.
type Recipe struct {
	Name            string       `yaml:"name,omitempty"`
	Shape           []int        `yaml:"shape"`
	VelSeed         []float64    `yaml:"velseed,omitempty"`
	VelSeedLinear   [][]float64  `yaml:"velseed_linear,omitempty"`
	MaxPerturbation *float64     `yaml:"max_perturbation,omitempty"`
	Precision       *int         `yaml:"precision,omitempty"`
	Steps           []StepConfig `yaml:"steps"`
}

// StepConfig holds the parameters of one step. Type selects the step; the
// other fields map to the step options of the same name.
type StepConfig struct {
	Type string `yaml:"type"`
	Seed *int64 `yaml:"seed,omitempty"`

	YRange   []float64 `yaml:"y_range,omitempty"`
	MinSplit *float64  `yaml:"min_split,omitempty"`
	Depths   []float64 `yaml:"depths,omitempty"`
	Left     []float64 `yaml:"left,omitempty"`
	Right    []float64 `yaml:"right,omitempty"`

	MaxAmplitude *float64 `yaml:"amax,omitempty"`
	MaxFrequency *float64 `yaml:"hmax,omitempty"`
	Uniform      *bool    `yaml:"uniform,omitempty"`
	First        *int     `yaml:"first,omitempty"`

	NFaults     *int      `yaml:"nfaults,omitempty"`
	MaxNFaults  *int      `yaml:"max_nfaults,omitempty"`
	VShift      *int      `yaml:"vshift,omitempty"`
	Pads        []float64 `yaml:"pads,omitempty"`
	VShiftRange []float64 `yaml:"vshift_range,omitempty"`

	VWater   *float64  `yaml:"vwater,omitempty"`
	Boundary []float64 `yaml:"boundary,omitempty"`

	VSalt        *float64  `yaml:"vsalt,omitempty"`
	X0           *float64  `yaml:"x0,omitempty"`
	Height       *float64  `yaml:"height,omitempty"`
	Width        *float64  `yaml:"width,omitempty"`
	EffSpace     *float64  `yaml:"eff_space,omitempty"`
	MinSpace     *float64  `yaml:"min_space,omitempty"`
	Penetrate    *bool     `yaml:"penetrate,omitempty"`
	X0Range      []float64 `yaml:"x0_range,omitempty"`
	Y0Range      []float64 `yaml:"y0_range,omitempty"`
	HeightRange  []float64 `yaml:"height_range,omitempty"`
	WidthRange   []float64 `yaml:"width_range,omitempty"`
	VHeightRange []float64 `yaml:"vheight_range,omitempty"`
	VWidthRange  []float64 `yaml:"vwidth_range,omitempty"`
	Center       []float64 `yaml:"center,omitempty"`
	Axes         []float64 `yaml:"axes,omitempty"`
	Vertical     *bool     `yaml:"vertical,omitempty"`
}

// LoadRecipe reads and validates a YAML recipe file.
func LoadRecipe(path string) (*Recipe, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return nil, errors.Wrapf(ErrInvalidRecipe, "file must have a .yaml or .yml extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat recipe")
	}
	if fileInfo.Size() > maxRecipeSize {
		return nil, errors.Wrapf(ErrInvalidRecipe, "file too large: %d bytes (max %d)", fileInfo.Size(), maxRecipeSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read recipe")
	}

	return ParseRecipe(data)
}

// ParseRecipe decodes and validates a YAML recipe.
func ParseRecipe(data []byte) (*Recipe, error) {
	r := &Recipe{}
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, errors.Wrap(err, "failed to parse recipe YAML")
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate checks the recipe without building it.
func (r *Recipe) Validate() error {
	if len(r.Shape) != 2 {
		return errors.Wrapf(ErrInvalidRecipe, "shape must have 2 values, got %d", len(r.Shape))
	}
	if (len(r.VelSeed) == 0) == (len(r.VelSeedLinear) == 0) {
		return errors.Wrap(ErrInvalidRecipe, "exactly one of velseed and velseed_linear must be set")
	}
	for i, v := range r.VelSeedLinear {
		if len(v) != 2 {
			return errors.Wrapf(ErrInvalidRecipe, "velseed_linear[%d] must have 2 values, got %d", i, len(v))
		}
	}
	for i, sc := range r.Steps {
		if _, err := sc.Options(); err != nil {
			return errors.Wrapf(err, "step %d (%s)", i, sc.Type)
		}
		if _, ok := stepBuilders[sc.Type]; !ok {
			return errors.Wrapf(ErrUnknownStep, "step %d: %q", i, sc.Type)
		}
	}

	return nil
}

// Model creates the recipe model. seed is used when seeded is set.
func (r *Recipe) Model(seed int64, seeded bool) (*model.Model, error) {
	opts := []model.ModelOption{}
	if r.MaxPerturbation != nil {
		opts = append(opts, model.WithMaxPerturbation(*r.MaxPerturbation))
	}
	if r.Precision != nil {
		opts = append(opts, model.WithPrecision(*r.Precision))
	}
	if seeded {
		opts = append(opts, model.WithSeed(seed))
	}

	if len(r.VelSeedLinear) > 0 {
		velseed := make([][2]float64, len(r.VelSeedLinear))
		for i, v := range r.VelSeedLinear {
			velseed[i] = [2]float64{v[0], v[1]}
		}

		return model.NewLinear(r.Shape[0], r.Shape[1], velseed, opts...)
	}

	return model.New(r.Shape[0], r.Shape[1], r.VelSeed, opts...)
}

// BuildSteps creates the recipe steps. When seeded is set, a step without its
// own seed gets seed+i+1, i being its position.
func (r *Recipe) BuildSteps(seed int64, seeded bool) ([]pipeline.Step, error) {
	out := make([]pipeline.Step, 0, len(r.Steps))
	for i, sc := range r.Steps {
		opts, err := sc.Options()
		if err != nil {
			return nil, errors.Wrapf(err, "step %d (%s)", i, sc.Type)
		}
		if sc.Seed == nil && seeded {
			opts = append(opts, steps.WithSeed(seed+int64(i)+1))
		}
		newStep, ok := stepBuilders[sc.Type]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownStep, "step %d: %q", i, sc.Type)
		}
		out = append(out, newStep(opts...))
	}

	return out, nil
}

// Build creates a fresh pipeline and model for one realization.
func (r *Recipe) Build(seed int64, seeded bool, opts ...pipeline.PipelineOption) (*pipeline.Pipeline, *model.Model, error) {
	m, err := r.Model(seed, seeded)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to create model")
	}
	stps, err := r.BuildSteps(seed, seeded)
	if err != nil {
		return nil, nil, err
	}
	pipe, err := pipeline.New(stps, opts...)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to create pipeline")
	}

	return pipe, m, nil
}

var stepBuilders = map[string]func(...steps.Option) pipeline.Step{
	"flat_layer":         func(o ...steps.Option) pipeline.Step { return steps.NewFlatLayer(o...) },
	"dipping_layer":      func(o ...steps.Option) pipeline.Step { return steps.NewDippingLayer(o...) },
	"cosine_fold":        func(o ...steps.Option) pipeline.Step { return steps.NewCosineFold(o...) },
	"linear_fault":       func(o ...steps.Option) pipeline.Step { return steps.NewLinearFault(o...) },
	"linear_water_layer": func(o ...steps.Option) pipeline.Step { return steps.NewLinearWaterLayer(o...) },
	"gaussian_salt":      func(o ...steps.Option) pipeline.Step { return steps.NewGaussianSalt(o...) },
	"elliptic_salt":      func(o ...steps.Option) pipeline.Step { return steps.NewEllipticSalt(o...) },
}

// Options converts the configured parameters to step options.
func (sc StepConfig) Options() ([]steps.Option, error) {
	opts := []steps.Option{}
	add := func(opt steps.Option) {
		opts = append(opts, opt)
	}
	pairs := []struct {
		name string
		val  []float64
		opt  func(a, b float64) steps.Option
	}{
		{"y_range", sc.YRange, steps.WithYRange},
		{"pads", sc.Pads, steps.WithPads},
		{"vshift_range", sc.VShiftRange, steps.WithVShiftRange},
		{"boundary", sc.Boundary, steps.WithBoundary},
		{"x0_range", sc.X0Range, steps.WithX0Range},
		{"y0_range", sc.Y0Range, steps.WithY0Range},
		{"height_range", sc.HeightRange, steps.WithHeightRange},
		{"width_range", sc.WidthRange, steps.WithWidthRange},
		{"vheight_range", sc.VHeightRange, steps.WithVHeightRange},
		{"vwidth_range", sc.VWidthRange, steps.WithVWidthRange},
		{"center", sc.Center, steps.WithCenterAt},
		{"axes", sc.Axes, steps.WithAxes},
	}
	for _, p := range pairs {
		if p.val == nil {
			continue
		}
		if len(p.val) != 2 {
			return nil, errors.Wrapf(ErrInvalidRecipe, "%s must have 2 values, got %d", p.name, len(p.val))
		}
		add(p.opt(p.val[0], p.val[1]))
	}
	if (sc.Left == nil) != (sc.Right == nil) {
		return nil, errors.Wrap(ErrInvalidRecipe, "left and right must be set together")
	}
	if sc.Left != nil {
		add(steps.WithEdges(sc.Left, sc.Right))
	}
	if sc.Depths != nil {
		add(steps.WithDepths(sc.Depths))
	}

	if sc.Seed != nil {
		add(steps.WithSeed(*sc.Seed))
	}
	if sc.MinSplit != nil {
		add(steps.WithMinSplit(*sc.MinSplit))
	}
	if sc.MaxAmplitude != nil {
		add(steps.WithMaxAmplitude(*sc.MaxAmplitude))
	}
	if sc.MaxFrequency != nil {
		add(steps.WithMaxFrequency(*sc.MaxFrequency))
	}
	if sc.Uniform != nil {
		add(steps.WithUniform(*sc.Uniform))
	}
	if sc.First != nil {
		add(steps.WithFirst(*sc.First))
	}
	if sc.NFaults != nil {
		add(steps.WithNFaults(*sc.NFaults))
	}
	if sc.MaxNFaults != nil {
		add(steps.WithMaxNFaults(*sc.MaxNFaults))
	}
	if sc.VShift != nil {
		add(steps.WithVShift(*sc.VShift))
	}
	if sc.VWater != nil {
		add(steps.WithVWater(*sc.VWater))
	}
	if sc.VSalt != nil {
		add(steps.WithVSalt(*sc.VSalt))
	}
	if sc.X0 != nil {
		add(steps.WithCenter(*sc.X0))
	}
	if sc.Height != nil {
		add(steps.WithHeight(*sc.Height))
	}
	if sc.Width != nil {
		add(steps.WithWidth(*sc.Width))
	}
	if sc.EffSpace != nil {
		add(steps.WithEffSpace(*sc.EffSpace))
	}
	if sc.MinSpace != nil {
		add(steps.WithMinSpace(*sc.MinSpace))
	}
	if sc.Penetrate != nil {
		add(steps.WithPenetrate(*sc.Penetrate))
	}
	if sc.Vertical != nil {
		add(steps.WithVertical(*sc.Vertical))
	}

	return opts, nil
}
