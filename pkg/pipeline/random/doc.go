// Package random provides the seeded, rounding random source used by every
// generation step.
//
// A Sampler owns a single stream and is not safe for concurrent use. Steps
// construct their own Sampler so two steps never share a stream; identical
// seeds given to identical steps in identical order reproduce a model.
package random
