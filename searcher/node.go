package searcher

import (
	"math"

	"connect6/game"
)

// node is an AlphaZero tree node. Values are kept in White's frame:
// positive favours White, negative favours Black.
type node struct {
	turn     game.Player // player to move
	visit    int
	qSum     float64
	q        float64
	prior    float64 // policy probability of the move leading here
	stones   int
	children []child // row-major by move
}

func newNode(sim *Simulate, stones int) *node {
	return &node{
		turn:   sim.Turn(),
		stones: stones,
	}
}

func (n *node) update(value float64) {
	n.visit++
	n.qSum += value
	n.q = n.qSum / float64(n.visit)
}

// unary turns a White-frame value into the frame of the player to move.
func (n *node) unary(q float64) float64 {
	return n.turn.Sign() * q
}

// exploration is the PUCT bonus of a child visited visit times among
// siblings visited visitSum times in total.
func exploration(prior float64, visit, visitSum int) float64 {
	return prior * math.Sqrt(float64(visitSum-visit)) / (1 + float64(visit))
}
