package pipeline

import "github.com/askiada/go-velgen/pkg/pipeline/model"

type PipelineOption func(p *Pipeline)

// PipelineModel binds a model used when Generate is called without one.
func PipelineModel(m *model.Model) PipelineOption {
	return func(p *Pipeline) {
		p.model = m
	}
}

// PipelineHooks registers hooks observing every run.
func PipelineHooks(hooks ...model.PipelineHook) PipelineOption {
	return func(p *Pipeline) {
		p.hooks = append(p.hooks, hooks...)
	}
}
