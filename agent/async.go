package agent

import (
	"context"
	"errors"
	"runtime"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"connect6/searcher"
)

// PolicyFactory builds a fresh policy for game id. Policies are never shared
// between games.
type PolicyFactory func(id int) searcher.Policy

type AsyncOption func(a *AsyncAgent)

// WithWorkers bounds the number of games played at once.
func WithWorkers(workers int) AsyncOption {
	return func(a *AsyncAgent) {
		if workers > 0 {
			a.workers = workers
		}
	}
}

// AsyncAgent plays independent games concurrently on a bounded pool.
type AsyncAgent struct {
	factory PolicyFactory
	workers int
}

func NewAsync(factory PolicyFactory, options ...AsyncOption) *AsyncAgent {
	a := &AsyncAgent{
		factory: factory,
		workers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

type outcome struct {
	id     int
	result PlayResult
	err    error
}

// Run plays n games and waits for all of them. It returns the results of
// the games that finished, in completion order, and the joined errors of the
// games that failed.
func (a *AsyncAgent) Run(ctx context.Context, n int) ([]PlayResult, error) {
	outcomes := make(chan outcome, n)

	var g errgroup.Group
	g.SetLimit(a.workers)
	for id := 0; id < n; id++ {
		g.Go(func() error {
			outcomes <- a.play(ctx, id)
			return nil
		})
	}

	results := make([]PlayResult, 0, n)
	var errs []error
	for i := 0; i < n; i++ {
		out := <-outcomes
		if out.err != nil {
			errs = append(errs, pkgerrors.Wrapf(out.err, "game %d", out.id))
			continue
		}
		results = append(results, out.result)
	}
	// Failures travel through outcomes, tasks always return nil.
	g.Wait()

	return results, errors.Join(errs...)
}

func (a *AsyncAgent) play(ctx context.Context, id int) outcome {
	if err := ctx.Err(); err != nil {
		return outcome{id: id, err: err}
	}

	start := time.Now()
	result, err := New(a.factory(id)).Play(ctx)
	if err != nil {
		log.Warn().Err(err).Int("game", id).Msg("game failed")
		return outcome{id: id, err: err}
	}

	log.Debug().
		Int("game", id).
		Stringer("winner", result.Winner).
		Int("moves", len(result.Path)).
		Dur("elapsed", time.Since(start)).
		Msg("game completed")
	return outcome{id: id, result: result}
}
