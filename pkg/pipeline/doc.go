// Package pipeline runs an ordered list of generation steps against one
// geologic model and materializes its velocity field.
//
// Each step receives the model, mutates it and hands it back; the pipeline
// threads the model through the steps left to right and finally fills the
// velocity field if no step already did. A run is synchronous: steps never
// execute concurrently against the same model.
//
// The pipeline stops on the first step error. The returned *StepError names
// the failing step and unwraps to the underlying sentinel, so callers can match
// it with errors.Is.
//
// Hooks (see model.PipelineHook) observe a run without taking part in it. The
// measure, drawer and logger sub-packages provide hooks for per-step timing, a
// DOT graph of the step chain and structured logs.
//
// GenerateBatch produces many independent realizations concurrently, each with
// its own pipeline and model.
package pipeline
