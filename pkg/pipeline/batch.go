package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-velgen/pkg/pipeline/model"
)

// Realization is one generated model of a batch.
type Realization struct {
	Model    *model.Model
	Velocity *mat.Dense
	ID       string
	Index    int
}

// BuildFunc returns the pipeline and model of realization idx. Steps and
// models must not be shared between realizations.
type BuildFunc func(idx int) (*Pipeline, *model.Model, error)

// SinkFunc consumes a realization. It is called concurrently.
type SinkFunc func(ctx context.Context, r Realization) error

// GenerateBatch generates total realizations, at most concurrent at a time.
// It stops on the first error.
func GenerateBatch(ctx context.Context, total, concurrent int, build BuildFunc, sink SinkFunc) error {
	if total <= 0 {
		return ErrBatchTotal
	}
	if build == nil {
		return ErrBuildMustSet
	}
	if concurrent <= 0 {
		concurrent = 1
	}

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(concurrent)
	// each realization stops as soon as another one fails
	for idx := 0; idx < total; idx++ {
		localIdx := idx
		errGrp.Go(func() error {
			if err := dCtx.Err(); err != nil {
				return errors.Wrapf(err, "realization %d", localIdx)
			}
			return generateOne(dCtx, localIdx, build, sink)
		})
	}

	return errGrp.Wait()
}

func generateOne(ctx context.Context, idx int, build BuildFunc, sink SinkFunc) error {
	pipe, m, err := build(idx)
	if err != nil {
		return errors.Wrapf(err, "realization %d: unable to build pipeline", idx)
	}
	if pipe == nil {
		return errors.Wrapf(ErrPipelineMustBeSet, "realization %d", idx)
	}

	vel, err := pipe.Generate(ctx, m, true)
	if err != nil {
		return errors.Wrapf(err, "realization %d", idx)
	}
	if sink == nil {
		return nil
	}
	if m == nil {
		m = pipe.Model()
	}

	err = sink(ctx, Realization{
		ID:       uuid.NewString(),
		Index:    idx,
		Model:    m,
		Velocity: vel,
	})
	if err != nil {
		return errors.Wrapf(err, "realization %d: sink", idx)
	}

	return nil
}
