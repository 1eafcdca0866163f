package pipeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-velgen/pkg/pipeline"
	"github.com/askiada/go-velgen/pkg/pipeline/model"
)

func newModel(t *testing.T) *model.Model {
	t.Helper()
	m, err := model.New(4, 6, []float64{1.5, 2.5}, model.WithMaxPerturbation(0))
	require.NoError(t, err)

	return m
}

// layerStep lays a flat interface at depth 3.
func layerStep() pipeline.Step {
	return pipeline.StepFunc{
		Label: "layer",
		Fn: func(m *model.Model) (*model.Model, error) {
			nx, ny := m.Shape()
			rows := make([][]int, 3)
			for i, d := range []int{0, 3, ny} {
				rows[i] = make([]int, nx)
				for x := range rows[i] {
					rows[i][x] = d
				}
			}
			m.History().Record(model.KeyFlatDepth, []float64{0, 3, float64(ny)})

			return m, m.SetInterface(rows)
		},
	}
}

func failingStep(err error) pipeline.Step {
	return pipeline.StepFunc{
		Label: "broken",
		Fn: func(*model.Model) (*model.Model, error) {
			return nil, err
		},
	}
}

type hookEvent struct {
	name string
	step string
}

// recordingHook remembers every call it receives.
type recordingHook struct {
	events []hookEvent
	total  time.Duration
	err    error
}

func (h *recordingHook) New() error {
	h.events = append(h.events, hookEvent{name: "new"})

	return nil
}

func (h *recordingHook) PrepareStep(parent, step *model.StepInfo) error {
	h.events = append(h.events, hookEvent{name: "prepare", step: parent.Name + ">" + step.Name})

	return nil
}

func (h *recordingHook) OnStepOutput(step *model.StepInfo, _ *model.Model, _ time.Duration) error {
	h.events = append(h.events, hookEvent{name: "output", step: step.Name})

	return h.err
}

func (h *recordingHook) Finish(total time.Duration) error {
	h.events = append(h.events, hookEvent{name: "finish"})
	h.total = total

	return nil
}
