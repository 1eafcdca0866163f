// Package logger provides a pipeline hook that reports step progress through
// a structured logger.
package logger

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/askiada/go-velgen/pkg/pipeline/model"
)

type pipelineLogger struct {
	logger *log.Logger
}

func (pl *pipelineLogger) New() error {
	pl.logger.Debug("pipeline created")

	return nil
}

func (pl *pipelineLogger) PrepareStep(parentStep, step *model.StepInfo) error {
	pl.logger.Debug("step prepared", "parent", parentStep.Name, "step", step.Name)

	return nil
}

func (pl *pipelineLogger) OnStepOutput(step *model.StepInfo, m *model.Model, computationDuration time.Duration) error {
	nx, ny := m.Shape()
	pl.logger.Debug("step done",
		"step", step.Name,
		"duration", computationDuration,
		"nx", nx,
		"ny", ny,
		"filled", m.Filled(),
	)

	return nil
}

func (pl *pipelineLogger) Finish(totalDuration time.Duration) error {
	pl.logger.Info("velocity model generated", "duration", totalDuration)

	return nil
}

// PipelineLogger logs every step at debug level and every finished run at
// info level.
func PipelineLogger(logger *log.Logger) model.PipelineHook {
	if logger == nil {
		logger = log.Default()
	}

	return &pipelineLogger{logger: logger.With("component", "pipeline")}
}
