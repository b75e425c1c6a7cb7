package searcher

import (
	"golang.org/x/exp/rand"

	"connect6/experiments/metrics"
	"connect6/game"
)

// Policy chooses the next stone for the player to move. It returns false
// when there is nothing left to play.
type Policy interface {
	Next(g *game.Game) (pos game.Position, ok bool, err error)
}

// Reporter is implemented by policies that collect search metrics.
type Reporter interface {
	LastSearch() metrics.SearchMetric
}

type Option func(o *options)

type options struct {
	param      HyperParameter
	evaluator  Evaluator
	seed       uint64
	iterations int
	cSquared   float64
	metrics    bool
}

func defaultOptions() options {
	return options{
		param:      DefaultHyperParameter(),
		seed:       1,
		iterations: 50,
		cSquared:   CSquared,
	}
}

func WithHyperParameter(param HyperParameter) Option {
	return func(o *options) {
		o.param = param
	}
}

func WithEvaluator(evaluator Evaluator) Option {
	return func(o *options) {
		if evaluator != nil {
			o.evaluator = evaluator
		}
	}
}

// WithSeed seeds the noise, rollouts and sampling of a policy.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithIterations sets the number of UCT iterations per move.
func WithIterations(iterations int) Option {
	return func(o *options) {
		if iterations > 0 {
			o.iterations = iterations
		}
	}
}

// WithExploration sets the squared UCT exploration constant.
func WithExploration(cSquared float64) Option {
	return func(o *options) {
		if cSquared > 0 {
			o.cSquared = cSquared
		}
	}
}

func WithMetrics() Option {
	return func(o *options) {
		o.metrics = true
	}
}

func (o options) collector() metrics.Collector {
	if o.metrics {
		return metrics.NewCollector()
	}
	return metrics.NewDummyCollector()
}

func (o options) rng() *rand.Rand {
	return rand.New(rand.NewSource(o.seed))
}

// child links a tree node to the node reached by playing pos.
type child struct {
	pos  game.Position
	hash game.BoardHash
}
