package searcher

import (
	"golang.org/x/exp/rand"

	"connect6/experiments/metrics"
	"connect6/game"
)

// RandomPolicy plays a uniformly random empty cell.
type RandomPolicy struct {
	rng *rand.Rand
}

func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPolicy) Next(g *game.Game) (game.Position, bool, error) {
	board := g.Board()
	possible := game.Empty(&board)
	if len(possible) == 0 {
		return game.Position{}, false, nil
	}
	return possible[p.rng.Intn(len(possible))], true, nil
}

// MultiPolicy delegates to one policy per colour.
type MultiPolicy struct {
	black Policy
	white Policy
	last  Policy
}

func NewMultiPolicy(black, white Policy) *MultiPolicy {
	return &MultiPolicy{black: black, white: white}
}

func (p *MultiPolicy) Next(g *game.Game) (game.Position, bool, error) {
	switch g.Turn() {
	case game.Black:
		p.last = p.black
	case game.White:
		p.last = p.white
	default:
		panic("multi policy: no policy for player none")
	}
	return p.last.Next(g)
}

// LastSearch reports the metrics of the policy that made the last move, if
// it collects any.
func (p *MultiPolicy) LastSearch() metrics.SearchMetric {
	if reporter, ok := p.last.(Reporter); ok {
		return reporter.LastSearch()
	}
	return metrics.SearchMetric{}
}
