package config

import (
	"flag"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Config holds the settings of a velgen run. Load reads them from the
// environment; Bind lets command-line flags override them.
type Config struct {
	Output  OutputConfig
	Run     RunConfig
	Logging LoggingConfig
}

type OutputConfig struct {
	Dir  string
	PNG  bool
	HTML bool
	DOT  bool
}

type RunConfig struct {
	Recipe      string
	Preset      string
	Count       int
	Concurrency int
	Seed        int64

	// Preset parameters.
	NX      int
	NY      int
	VelSeed []float64
	Dz      float64
	VSalt   float64
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Seeded reports whether a base seed was given. Seed 0 means unseeded.
func (c RunConfig) Seeded() bool {
	return c.Seed != 0
}

func Load() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:  getEnvStr("VELGEN_OUT_DIR", "out"),
			PNG:  getEnvBool("VELGEN_PNG", false),
			HTML: getEnvBool("VELGEN_HTML", false),
			DOT:  getEnvBool("VELGEN_DOT", false),
		},
		Run: RunConfig{
			Preset:      getEnvStr("VELGEN_PRESET", "flat"),
			Count:       getEnvInt("VELGEN_COUNT", 1),
			Concurrency: getEnvInt("VELGEN_CONCURRENCY", runtime.NumCPU()),
			Seed:        getEnvInt64("VELGEN_SEED", 0),
			NX:          getEnvInt("VELGEN_NX", 256),
			NY:          getEnvInt("VELGEN_NY", 128),
			VelSeed:     getEnvFloats("VELGEN_VELSEED", []float64{1.5, 2.0, 2.5, 3.0, 3.5, 4.0}),
			Dz:          getEnvFloat("VELGEN_DZ", 0.01),
			VSalt:       getEnvFloat("VELGEN_VSALT", 0),
		},
		Logging: LoggingConfig{
			Level:  getEnvStr("LOG_LEVEL", "info"),
			Format: getEnvStr("LOG_FORMAT", "text"),
		},
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Run.Recipe, "recipe", c.Run.Recipe, "YAML recipe describing the model and its steps")
	fs.StringVar(&c.Run.Preset, "preset", c.Run.Preset, "preset pipeline used when no recipe is given")
	fs.IntVar(&c.Run.Count, "n", c.Run.Count, "number of realizations")
	fs.IntVar(&c.Run.Concurrency, "concurrency", c.Run.Concurrency, "realizations generated at the same time")
	fs.Int64Var(&c.Run.Seed, "seed", c.Run.Seed, "base seed, 0 draws a random one per step")
	fs.IntVar(&c.Run.NX, "nx", c.Run.NX, "horizontal samples of preset models")
	fs.IntVar(&c.Run.NY, "ny", c.Run.NY, "vertical samples of preset models")
	fs.Func("velseed", "comma separated layer velocities of preset models", func(value string) error {
		vals, err := parseFloats(value)
		if err != nil {
			return err
		}
		c.Run.VelSeed = vals
		return nil
	})
	fs.Float64Var(&c.Run.Dz, "dz", c.Run.Dz, "vertical sample interval in km of the gulf preset")
	fs.Float64Var(&c.Run.VSalt, "vsalt", c.Run.VSalt, "salt velocity of salt presets, 0 keeps the preset default")
	fs.StringVar(&c.Output.Dir, "out", c.Output.Dir, "output directory")
	fs.BoolVar(&c.Output.PNG, "png", c.Output.PNG, "write a PNG heatmap per realization")
	fs.BoolVar(&c.Output.HTML, "html", c.Output.HTML, "write an HTML heatmap per realization")
	fs.BoolVar(&c.Output.DOT, "dot", c.Output.DOT, "write the step graph as a DOT file")
	fs.StringVar(&c.Logging.Level, "log-level", c.Logging.Level, "debug, info, warn or error")
	fs.StringVar(&c.Logging.Format, "log-format", c.Logging.Format, "text, json or logfmt")
}

func getEnvStr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvFloats(key string, defaultValue []float64) []float64 {
	if value := os.Getenv(key); value != "" {
		if floatValues, err := parseFloats(value); err == nil {
			return floatValues
		}
	}
	return defaultValue
}

func parseFloats(value string) ([]float64, error) {
	parts := strings.Split(value, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid velocity %q", part)
		}
		out = append(out, v)
	}
	return out, nil
}
