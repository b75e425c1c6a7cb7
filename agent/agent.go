package agent

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"connect6/experiments/metrics"
	"connect6/game"
	"connect6/searcher"
)

// Agent plays one game from the empty board with a single policy.
type Agent struct {
	policy searcher.Policy
	game   *game.Game
}

func New(policy searcher.Policy) *Agent {
	return &Agent{
		policy: policy,
		game:   game.NewGame(),
	}
}

// Play asks the policy for moves until someone wins or the policy has
// nothing left to play.
func (a *Agent) Play(ctx context.Context) (PlayResult, error) {
	result := PlayResult{}
	result.Metric.StartTime = time.Now()
	reporter, reports := a.policy.(searcher.Reporter)

	for {
		if err := ctx.Err(); err != nil {
			return PlayResult{}, errors.Wrap(err, "agent: play")
		}

		turn, board := a.game.Turn(), a.game.Board()
		pos, ok, err := a.policy.Next(a.game)
		if err != nil {
			return PlayResult{}, errors.Wrap(err, "agent: play")
		}
		if !ok {
			break
		}
		result.Path = append(result.Path, Path{Turn: turn, Board: board, Pos: pos})

		set, err := a.game.SetPosition(pos)
		if err != nil {
			return PlayResult{}, errors.Wrap(err, "agent: play")
		}
		log.Debug().
			Stringer("player", set.Player).
			Int("row", pos.Row).
			Int("col", pos.Col).
			Int("remain", set.Remain).
			Msg("agent: stone placed")

		if reports {
			result.Moves = append(result.Moves, metrics.MoveMetric{
				Step:         len(result.Path),
				Player:       int(turn),
				Row:          pos.Row,
				Col:          pos.Col,
				SearchMetric: reporter.LastSearch(),
			})
		}

		if winner := a.game.IsGameEnd(); winner != game.None {
			result.Winner = winner
			break
		}
	}

	result.Metric.EndTime = time.Now()
	result.Metric.Duration = result.Metric.EndTime.Sub(result.Metric.StartTime)
	result.Metric.Winner = int(result.Winner)
	result.Metric.TotalMoves = len(result.Path)
	return result, nil
}
