// Package model provides the data structures shared by the pipeline and its steps.
// It defines the geologic model every step mutates, the provenance history the
// steps record into, the step descriptors and the hook interface pipeline
// options implement.
package model
