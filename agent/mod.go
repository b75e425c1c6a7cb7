package agent

import (
	"connect6/experiments/metrics"
	"connect6/game"
)

// Path is one move of a played game: the mover, the board before the move
// and the stone placed.
type Path struct {
	Turn  game.Player
	Board game.Board
	Pos   game.Position
}

// PlayResult is a finished game. Winner is None when the policy ran out of
// moves before anyone completed six.
type PlayResult struct {
	Winner game.Player
	Path   []Path
	Metric metrics.GameMetric
	Moves  []metrics.MoveMetric // empty unless the policy reports search metrics
}
