package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/askiada/go-velgen/internal/config"
	"github.com/askiada/go-velgen/internal/logging"
	"github.com/askiada/go-velgen/pkg/export"
	"github.com/askiada/go-velgen/pkg/pipeline"
	"github.com/askiada/go-velgen/pkg/pipeline/drawer"
	"github.com/askiada/go-velgen/pkg/pipeline/logger"
	"github.com/askiada/go-velgen/pkg/pipeline/measure"
	"github.com/askiada/go-velgen/pkg/pipeline/model"
	"github.com/askiada/go-velgen/pkg/presets"
	"github.com/askiada/go-velgen/pkg/render"
)

// realizationSeedStride separates the seeds of consecutive realizations so
// their per-step seeds never overlap.
const realizationSeedStride = 1000

func main() {
	cfg := config.Load()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	lgr := logging.New(os.Stderr, cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lgr); err != nil {
		lgr.Fatal("velocity generation failed", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, lgr *log.Logger) error {
	start := time.Now()
	msr := measure.NewDefaultMeasure()
	hooks := []model.PipelineHook{
		measure.PipelineMeasure(msr),
		logger.PipelineLogger(lgr),
	}
	if cfg.Output.DOT {
		dotPath := filepath.Join(cfg.Output.Dir, "pipeline.dot")
		if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
			return errors.Wrap(err, "unable to create output directory")
		}
		hooks = append(hooks, drawer.PipelineDrawer(drawer.NewDOTDrawer(dotPath), msr))
	}

	build, source, err := builder(cfg.Run, hooks)
	if err != nil {
		return err
	}
	lgr.Info("generating velocity models",
		"source", source,
		"count", cfg.Run.Count,
		"concurrency", cfg.Run.Concurrency,
		"seeded", cfg.Run.Seeded(),
		"out", cfg.Output.Dir,
	)

	err = pipeline.GenerateBatch(ctx, cfg.Run.Count, cfg.Run.Concurrency, build, sink(cfg.Output, lgr))
	if err != nil {
		return err
	}

	for _, st := range measure.Slowest(msr, 3) {
		lgr.Info("step timing", "step", st.Name, "avg", st.AVG, "runs", st.Count)
	}
	lgr.Info("done", "count", cfg.Run.Count, "elapsed", time.Since(start).Round(time.Millisecond))

	return nil
}

// builder returns the build function of every realization, from a recipe
// file when one is given and from a preset otherwise.
func builder(run config.RunConfig, hooks []model.PipelineHook) (pipeline.BuildFunc, string, error) {
	seedOf := func(idx int) int64 {
		return run.Seed + int64(idx)*realizationSeedStride
	}

	if run.Recipe != "" {
		recipe, err := config.LoadRecipe(run.Recipe)
		if err != nil {
			return nil, "", err
		}

		return func(idx int) (*pipeline.Pipeline, *model.Model, error) {
			return recipe.Build(seedOf(idx), run.Seeded(), pipeline.PipelineHooks(hooks...))
		}, "recipe " + recipe.Name, nil
	}

	preset, err := presets.Lookup(run.Preset)
	if err != nil {
		return nil, "", err
	}
	velseed := run.VelSeed
	if run.Preset == "gulf" {
		// the gulf preset draws its own compaction trend
		velseed = nil
	}

	return func(idx int) (*pipeline.Pipeline, *model.Model, error) {
		opts := []presets.Option{presets.WithHooks(hooks...), presets.WithDz(run.Dz)}
		if run.Seeded() {
			opts = append(opts, presets.WithSeed(seedOf(idx)))
		}
		if run.VSalt > 0 {
			opts = append(opts, presets.WithVSalt(run.VSalt))
		}
		pipe, err := preset(run.NX, run.NY, velseed, opts...)

		return pipe, nil, err
	}, "preset " + run.Preset, nil
}

func sink(out config.OutputConfig, lgr *log.Logger) pipeline.SinkFunc {
	return func(_ context.Context, r pipeline.Realization) error {
		base := filepath.Join(out.Dir, fmt.Sprintf("model_%04d_%s", r.Index, r.ID[:8]))

		if err := export.WriteRawFile(base+".bin", r.Velocity); err != nil {
			return err
		}
		if err := export.WriteHistoryFile(base+".yaml", r.Model.History()); err != nil {
			return err
		}
		if out.PNG {
			if err := render.SavePNG(base+".png", r.Model, render.WithInterfaces(true), render.WithTitle(fmt.Sprintf("model %d", r.Index))); err != nil {
				return err
			}
		}
		if out.HTML {
			if err := render.SaveHTML(base+".html", r.Model); err != nil {
				return err
			}
		}

		nx, ny := r.Model.Shape()
		lgr.Info("model written", "index", r.Index, "id", r.ID, "path", base+".bin", "nx", nx, "ny", ny)

		return nil
	}
}
