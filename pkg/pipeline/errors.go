package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrPipelineMustBeSet = errors.New("pipeline: pipeline must be set")
	ErrMissingModel      = errors.New("pipeline: a model is required")
	ErrNilStep           = errors.New("pipeline: step must be set")
	ErrBatchTotal        = errors.New("pipeline: total must be greater than 0")
	ErrBuildMustSet      = errors.New("pipeline: build function must be set")
)

// StepError reports which step of a run failed.
type StepError struct {
	Err   error
	Name  string
	Index int
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
