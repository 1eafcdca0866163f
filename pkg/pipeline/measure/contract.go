package measure

import "time"

// Measure collects one metric per pipeline step.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric accumulates the durations of one step.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AVGDuration() time.Duration
	Count() int64
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
}
