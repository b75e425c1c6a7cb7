package searcher

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"connect6/experiments/metrics"
	"connect6/game"
)

type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}

// rolloutNode is a pure MCTS node. Rewards are kept from the view of the
// player who placed the last stone, which is a function of the stone count.
type rolloutNode struct {
	mover    game.Player
	visit    int
	rewards  float64
	stones   int
	untried  []game.Position
	children []child
}

// UCT is a pure Monte Carlo tree search: UCB1 selection, one random
// expansion and a uniformly random rollout per iteration.
type UCT struct {
	iterations int
	cSquared   float64
	rng        *rand.Rand
	table      map[game.BoardHash]*rolloutNode
	metrics    metrics.Collector
	last       metrics.SearchMetric
}

func NewUCT(options ...Option) *UCT {
	o := defaultOptions()
	for _, option := range options {
		option(&o)
	}
	return &UCT{
		iterations: o.iterations,
		cSquared:   o.cSquared,
		rng:        o.rng(),
		table:      make(map[game.BoardHash]*rolloutNode),
		metrics:    o.collector(),
	}
}

func (u *UCT) LastSearch() metrics.SearchMetric {
	return u.last
}

func newRolloutNode(sim *Simulate, stones int) *rolloutNode {
	mover := game.None
	if stones > 0 {
		mover, _ = game.TurnAt(stones - 1)
	}
	return &rolloutNode{
		mover:   mover,
		stones:  stones,
		untried: sim.Possible(),
	}
}

func (u *UCT) Next(g *game.Game) (game.Position, bool, error) {
	if g.IsGameEnd() != game.None {
		return game.Position{}, false, nil
	}
	sim := FromGame(g)
	possible := sim.Possible()
	if len(possible) == 0 {
		return game.Position{}, false, nil
	}

	u.metrics.Start(u.iterations)
	board := sim.Board()
	rootHash := game.Hash(&board)
	root, ok := u.table[rootHash]
	if !ok {
		root = newRolloutNode(sim, game.Stones(&board))
		u.table[rootHash] = root
	}
	u.metrics.SetTreeReset(!ok)

	for i := 0; i < u.iterations; i++ {
		u.simulate(sim, root)
		u.metrics.AddEpisode()
	}

	pos := u.findMax(root)
	if pos == nil {
		pos = &possible[u.rng.Intn(len(possible))]
	}
	u.prune(root, rootHash)
	u.metrics.SetTreeSize(len(u.table))
	u.last = u.metrics.Complete()

	log.Debug().Int("stones", root.stones).Int("visits", root.visit).Msgf("uct selected (%d, %d)", pos.Row, pos.Col)
	return *pos, true, nil
}

func (u *UCT) lookup(hash game.BoardHash) *rolloutNode {
	n, ok := u.table[hash]
	if !ok {
		panic(fmt.Sprintf("uct: child %x missing from table", hash))
	}
	return n
}

func (u *UCT) simulate(root *Simulate, rootNode *rolloutNode) {
	path := []*rolloutNode{rootNode}
	cursor := root
	var cursors []*Simulate
	defer func() {
		for i := len(cursors) - 1; i >= 0; i-- {
			cursors[i].Release()
		}
	}()

	// Selection
	current := rootNode
	for len(current.untried) == 0 && len(current.children) > 0 && cursor.SearchWinner() == game.None {
		next := u.selects(current)
		cursor = cursor.Simulate(next.pos.Row, next.pos.Col)
		cursors = append(cursors, cursor)
		current = u.lookup(next.hash)
		path = append(path, current)
	}

	// Expansion
	if cursor.SearchWinner() == game.None && len(current.untried) > 0 {
		i := u.rng.Intn(len(current.untried))
		pos := current.untried[i]
		current.untried = append(current.untried[:i], current.untried[i+1:]...)

		cursor = cursor.Simulate(pos.Row, pos.Col)
		cursors = append(cursors, cursor)
		board := cursor.Board()
		hash := game.Hash(&board)
		next, ok := u.table[hash]
		if !ok {
			next = newRolloutNode(cursor, current.stones+1)
			u.table[hash] = next
		}
		current.children = append(current.children, child{pos: pos, hash: hash})
		path = append(path, next)
	}

	winner := u.rollout(cursor)
	for _, n := range path {
		n.visit++
		switch winner {
		case game.None:
		case n.mover:
			n.rewards += WIN
		default:
			n.rewards += LOSS
		}
	}
}

func (u *UCT) selects(n *rolloutNode) child {
	policy := newUCT(u.cSquared, float64(n.visit))
	best, bestScore := 0, math.Inf(-1)
	for i, c := range n.children {
		cn := u.lookup(c.hash)
		score := math.Inf(1)
		if cn.visit > 0 {
			score = policy.evaluate(cn.rewards, float64(cn.visit))
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return n.children[best]
}

// rollout plays uniformly random stones on a private copy until the game is
// decided or the board is full.
func (u *UCT) rollout(sim *Simulate) game.Player {
	if winner := sim.SearchWinner(); winner != game.None {
		u.metrics.AddTerminal()
		return winner
	}
	playout := sim.DeepClone()
	possible := playout.Possible()
	u.rng.Shuffle(len(possible), func(i, j int) {
		possible[i], possible[j] = possible[j], possible[i]
	})
	for _, pos := range possible {
		playout.SimulateIn(pos.Row, pos.Col)
		if winner := playout.SearchWinner(); winner != game.None {
			return winner
		}
	}
	return game.None
}

// findMax returns the most visited root move, or nil before any expansion.
func (u *UCT) findMax(root *rolloutNode) *game.Position {
	var best *game.Position
	maxVisit := -1
	for i, c := range root.children {
		visit := u.lookup(c.hash).visit
		if visit > maxVisit || (visit == maxVisit && c.pos.Index() < best.Index()) {
			maxVisit = visit
			best = &root.children[i].pos
		}
	}
	return best
}

func (u *UCT) prune(root *rolloutNode, rootHash game.BoardHash) {
	for hash, n := range u.table {
		if n.stones < root.stones || (n.stones == root.stones && hash != rootHash) {
			delete(u.table, hash)
		}
	}
}
