package measure

import (
	"time"

	"github.com/askiada/go-velgen/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
}

func (pm *pipelineMeasure) New() error {
	pm.AddMetric(model.StartStep.Name)
	pm.AddMetric(model.EndStep.Name)

	return nil
}

func (pm *pipelineMeasure) PrepareStep(_, step *model.StepInfo) error {
	pm.AddMetric(step.Name)

	return nil
}

func (pm *pipelineMeasure) OnStepOutput(step *model.StepInfo, _ *model.Model, computationDuration time.Duration) error {
	pm.AddMetric(step.Name).AddDuration(computationDuration)

	return nil
}

func (pm *pipelineMeasure) Finish(totalDuration time.Duration) error {
	end := pm.AddMetric(model.EndStep.Name)
	end.AddDuration(totalDuration)
	end.SetTotalDuration(totalDuration)

	return nil
}

// PipelineMeasure records the duration of every step into measure.
func PipelineMeasure(measure Measure) model.PipelineHook {
	return &pipelineMeasure{measure}
}
