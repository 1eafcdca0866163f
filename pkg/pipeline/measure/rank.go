package measure

import (
	"sort"
	"time"

	"github.com/askiada/go-velgen/pkg/pipeline/model"
)

// StepTime is the average duration of one step.
type StepTime struct {
	Name  string
	AVG   time.Duration
	Count int64
}

// Slowest returns the n steps with the highest average duration, slowest
// first. The start and end markers are left out. n <= 0 returns every step.
func Slowest(msr Measure, n int) []StepTime {
	out := []StepTime{}
	for name, mt := range msr.AllMetrics() {
		if name == model.StartStep.Name || name == model.EndStep.Name || mt.Count() == 0 {
			continue
		}
		out = append(out, StepTime{Name: name, AVG: mt.AVGDuration(), Count: mt.Count()})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].AVG == out[j].AVG {
			return out[i].Name < out[j].Name
		}
		return out[i].AVG > out[j].AVG
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}

	return out
}
