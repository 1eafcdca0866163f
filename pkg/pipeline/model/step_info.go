package model

type stepType string

const (
	StartStepType  stepType = "start"
	NormalStepType stepType = "step"
	EndStepType    stepType = "end"
)

// StepInfo describes one step of a pipeline.
type StepInfo struct {
	Type  stepType
	Name  string
	Index int
}

var (
	StartStep = &StepInfo{Type: StartStepType, Name: "start", Index: -1}
	EndStep   = &StepInfo{Type: EndStepType, Name: "end", Index: -1}
)
