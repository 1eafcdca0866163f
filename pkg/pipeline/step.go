package pipeline

import "github.com/askiada/go-velgen/pkg/pipeline/model"

// Step is one transform of the geologic model. Generate mutates m and returns
// it, or a model sharing the same backing state.
type Step interface {
	Name() string
	Generate(m *model.Model) (*model.Model, error)
}

// StepFunc adapts a function to the Step interface.
type StepFunc struct {
	Fn    func(m *model.Model) (*model.Model, error)
	Label string
}

func (s StepFunc) Name() string {
	return s.Label
}

func (s StepFunc) Generate(m *model.Model) (*model.Model, error) {
	return s.Fn(m)
}
