package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-velgen/pkg/pipeline/measure"
	"github.com/askiada/go-velgen/pkg/pipeline/model"
)

type pipelineDrawer struct {
	Drawer
	m measure.Measure
}

func (pd *pipelineDrawer) New() error {
	err := pd.AddStep(model.StartStep.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add start step to drawer")
	}
	err = pd.AddStep(model.EndStep.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add end step to drawer")
	}

	return nil
}

func (pd *pipelineDrawer) PrepareStep(parentStep, step *model.StepInfo) error {
	err := pd.AddStep(step.Name)
	if err != nil {
		return err
	}
	err = pd.AddLink(parentStep.Name, step.Name)
	if err != nil {
		return err
	}

	return nil
}

func (pd *pipelineDrawer) OnStepOutput(*model.StepInfo, *model.Model, time.Duration) error {
	return nil
}

func (pd *pipelineDrawer) Finish(totalDuration time.Duration) error {
	err := pd.SetTotalTime(model.EndStep.Name, totalDuration)
	if err != nil {
		return errors.Wrap(err, "unable to set total time")
	}
	if pd.m != nil {
		err = pd.AddMeasure(pd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err = pd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

// PipelineDrawer draws the step chain when a run finishes. measure may be nil.
func PipelineDrawer(drawer Drawer, measure measure.Measure) model.PipelineHook {
	return &pipelineDrawer{drawer, measure}
}
