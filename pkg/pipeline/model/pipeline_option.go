package model

import "time"

// PipelineHook defines the interface for pipeline options that observe a run.
type PipelineHook interface {
	// New initialises the hook when the pipeline is created.
	New() error
	// PrepareStep runs once per step when the pipeline is created.
	PrepareStep(parentStep, step *StepInfo) error
	// OnStepOutput runs every time a step returns the model.
	OnStepOutput(step *StepInfo, m *Model, computationDuration time.Duration) error
	// Finish runs after the velocity field of a run is materialized.
	Finish(totalDuration time.Duration) error
}
