package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-velgen/pkg/pipeline/model"
)

// Pipeline is an ordered list of steps.
type Pipeline struct {
	model *model.Model
	steps []Step
	infos []*model.StepInfo
	hooks []model.PipelineHook
}

// New creates a new pipeline.
func New(steps []Step, opts ...PipelineOption) (*Pipeline, error) {
	pipe := &Pipeline{
		steps: steps,
		infos: make([]*model.StepInfo, len(steps)),
	}

	for _, opt := range opts {
		opt(pipe)
	}

	for i, step := range steps {
		if step == nil {
			return nil, errors.Wrapf(ErrNilStep, "step %d", i)
		}
		pipe.infos[i] = &model.StepInfo{
			Type:  model.NormalStepType,
			Name:  fmt.Sprintf("%d %s", i, step.Name()),
			Index: i,
		}
	}

	for _, hook := range pipe.hooks {
		err := hook.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline hook")
		}
	}

	err := pipe.prepareSteps()
	if err != nil {
		return nil, err
	}

	return pipe, nil
}

func (p *Pipeline) prepareSteps() error {
	parent := model.StartStep
	for _, info := range append(append([]*model.StepInfo{}, p.infos...), model.EndStep) {
		for _, hook := range p.hooks {
			err := hook.PrepareStep(parent, info)
			if err != nil {
				return errors.Wrapf(err, "unable to prepare step %s", info.Name)
			}
		}
		parent = info
	}

	return nil
}

// Steps returns the descriptors of the pipeline steps.
func (p *Pipeline) Steps() []*model.StepInfo {
	return p.infos
}

// Model returns the bound model, if any.
func (p *Pipeline) Model() *model.Model {
	return p.model
}

// Generate runs every step against m, or against the bound model when m is
// nil, and returns the materialized velocity field. With clear set the
// model's history is reset first.
func (p *Pipeline) Generate(ctx context.Context, m *model.Model, clear bool) (*mat.Dense, error) {
	start := time.Now()

	if m == nil {
		m = p.model
	}
	if m == nil {
		return nil, ErrMissingModel
	}
	if clear {
		m.ClearHistory()
	}

	for i, step := range p.steps {
		info := p.infos[i]
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "before %s", info.Name)
		}

		startFn := time.Now()
		out, err := step.Generate(m)
		if err != nil {
			return nil, &StepError{Index: i, Name: step.Name(), Err: err}
		}
		if out != nil {
			m = out
		}
		endFn := time.Since(startFn)

		for _, hook := range p.hooks {
			err := hook.OnStepOutput(info, m, endFn)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to run hook after %s", info.Name)
			}
		}
	}

	vel, err := m.Generate(false)
	if err != nil {
		return nil, errors.Wrap(err, "unable to materialize velocity")
	}

	err = p.finishRun(time.Since(start))
	if err != nil {
		return nil, err
	}

	return vel, nil
}

func (p *Pipeline) finishRun(total time.Duration) error {
	for _, hook := range p.hooks {
		err := hook.Finish(total)
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline hook")
		}
	}

	return nil
}
