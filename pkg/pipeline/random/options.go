package random

// DefaultPrecision is the number of decimals every draw is rounded to.
const DefaultPrecision = 4

// DefaultMaxRetries bounds the rejection loop of ArrayInterval.
const DefaultMaxRetries = 10000

type SamplerOption func(s *Sampler)

// WithSeed makes the stream deterministic.
func WithSeed(seed int64) SamplerOption {
	return func(s *Sampler) {
		s.seed = seed
		s.seeded = true
	}
}

// WithPrecision sets the rounding precision in decimals.
func WithPrecision(precision int) SamplerOption {
	return func(s *Sampler) {
		s.precision = precision
	}
}

// WithMaxRetries sets how many whole-array redraws ArrayInterval may attempt.
func WithMaxRetries(retries int) SamplerOption {
	return func(s *Sampler) {
		s.maxRetries = retries
	}
}

type arrayConfig struct {
	prepend, append *float64
}

// ArrayOption adds a sentinel value around a sampled array.
type ArrayOption func(c *arrayConfig)

// Prepend inserts v before the first sampled value.
func Prepend(v float64) ArrayOption {
	return func(c *arrayConfig) {
		c.prepend = &v
	}
}

// Append adds v after the last sampled value.
func Append(v float64) ArrayOption {
	return func(c *arrayConfig) {
		c.append = &v
	}
}
