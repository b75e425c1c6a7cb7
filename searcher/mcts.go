package searcher

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"

	"connect6/experiments/metrics"
	"connect6/game"
)

// AlphaZero is a PUCT tree search guided by an Evaluator. The tree is a
// transposition table keyed by board hash and is reused across moves.
type AlphaZero struct {
	param     HyperParameter
	evaluator Evaluator
	rng       *rand.Rand
	table     map[game.BoardHash]*node
	metrics   metrics.Collector
	last      metrics.SearchMetric
	noise     []float64 // root noise of the current move
}

// NewAlphaZero panics on invalid hyperparameters. Without WithEvaluator it
// plays with a RandomEvaluator.
func NewAlphaZero(options ...Option) *AlphaZero {
	o := defaultOptions()
	for _, option := range options {
		option(&o)
	}
	if err := o.param.Validate(); err != nil {
		panic(err.Error())
	}
	if o.evaluator == nil {
		o.evaluator = NewRandomEvaluator(o.seed)
	}
	return &AlphaZero{
		param:     o.param,
		evaluator: o.evaluator,
		rng:       o.rng(),
		table:     make(map[game.BoardHash]*node),
		metrics:   o.collector(),
	}
}

func (a *AlphaZero) LastSearch() metrics.SearchMetric {
	return a.last
}

// Next runs NumSimulation simulations from the game state and returns the
// chosen move.
func (a *AlphaZero) Next(g *game.Game) (game.Position, bool, error) {
	if g.IsGameEnd() != game.None {
		return game.Position{}, false, nil
	}
	sim := FromGame(g)
	if len(sim.Possible()) == 0 {
		return game.Position{}, false, nil
	}

	a.metrics.Start(a.param.NumSimulation)
	root, rootHash := a.init(sim)
	a.noise = nil

	for i := 0; i < a.param.NumSimulation; i++ {
		if err := a.search(sim, root); err != nil {
			return game.Position{}, false, err
		}
		a.metrics.AddEpisode()
	}

	pos, ok := a.policy(root)
	a.prune(root, rootHash, pos)
	a.metrics.SetTreeSize(len(a.table))
	a.last = a.metrics.Complete()

	log.Debug().
		Int("stones", root.stones).
		Int("visits", root.visit).
		Int("table", len(a.table)).
		Msgf("alphazero selected (%d, %d)", pos.Row, pos.Col)
	return pos, ok, nil
}

// init finds or creates the root entry for the cursor's board.
func (a *AlphaZero) init(sim *Simulate) (*node, game.BoardHash) {
	board := sim.Board()
	hash := game.Hash(&board)
	root, ok := a.table[hash]
	if !ok {
		root = newNode(sim, game.Stones(&board))
		a.table[hash] = root
	}
	a.metrics.SetTreeReset(!ok)
	return root, hash
}

func (a *AlphaZero) lookup(hash game.BoardHash) *node {
	n, ok := a.table[hash]
	if !ok {
		panic(fmt.Sprintf("alphazero: child %x missing from table", hash))
	}
	return n
}

// search runs one simulation: selection down to a leaf, terminal check or
// expansion, then backup along the path.
func (a *AlphaZero) search(root *Simulate, rootNode *node) error {
	path := []*node{rootNode}
	cursor := root
	var cursors []*Simulate
	defer func() {
		for i := len(cursors) - 1; i >= 0; i-- {
			cursors[i].Release()
		}
	}()

	current := rootNode
	for len(current.children) > 0 {
		next := a.selects(current, current == rootNode)
		cursor = cursor.Simulate(next.pos.Row, next.pos.Col)
		cursors = append(cursors, cursor)
		current = a.lookup(next.hash)
		path = append(path, current)
	}

	var value float64
	if winner := cursor.SearchWinner(); winner != game.None {
		value = winner.Sign()
		a.metrics.AddTerminal()
	} else if current.stones >= game.Capacity {
		value = 0
		a.metrics.AddTerminal()
	} else {
		var err error
		value, err = a.expand(cursor, current)
		if err != nil {
			return err
		}
	}

	for _, n := range path {
		n.update(value)
	}
	return nil
}

// selects picks the child of n maximising q from the mover's view plus the
// PUCT exploration bonus. Ties go to the lowest row-major index.
func (a *AlphaZero) selects(n *node, isRoot bool) child {
	if len(n.children) == 1 {
		return n.children[0]
	}

	var noise []float64
	if a.param.Epsilon > 0 {
		switch {
		case a.param.NoisePerSelection:
			noise = a.sampleNoise(len(n.children))
		case isRoot:
			if len(a.noise) != len(n.children) {
				a.noise = a.sampleNoise(len(n.children))
			}
			noise = a.noise
		}
	}

	nodes := make([]*node, len(n.children))
	visitSum := 0
	for i, c := range n.children {
		nodes[i] = a.lookup(c.hash)
		visitSum += nodes[i].visit
	}

	best, bestScore := 0, math.Inf(-1)
	for i, cn := range nodes {
		prior := cn.prior
		if noise != nil {
			prior = (1-a.param.Epsilon)*prior + a.param.Epsilon*noise[i]
		}
		score := n.unary(cn.q) + a.param.CPuct*exploration(prior, cn.visit, visitSum)
		if math.IsNaN(score) {
			panic(fmt.Sprintf("alphazero: NaN score for child %v", n.children[i].pos))
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return n.children[best]
}

func (a *AlphaZero) sampleNoise(n int) []float64 {
	alpha := make([]float64, n)
	for i := range alpha {
		alpha[i] = a.param.DirichletAlpha
	}
	noise := distmv.NewDirichlet(alpha, a.rng).Rand(nil)
	for _, x := range noise {
		// Gamma draws may all underflow for tiny alpha.
		if math.IsNaN(x) {
			for i := range noise {
				noise[i] = 1 / float64(n)
			}
			break
		}
	}
	return noise
}

// expand evaluates the leaf and links one child per legal move. It returns
// the leaf value in White's frame.
func (a *AlphaZero) expand(cursor *Simulate, leaf *node) (float64, error) {
	board := cursor.Board()
	value, probs, err := evaluateSymmetric(a.evaluator, cursor.Turn(), &board)
	if err != nil {
		return 0, err
	}
	value *= cursor.Turn().Sign()

	possible := cursor.Possible()
	leaf.children = make([]child, 0, len(possible))
	for _, pos := range possible {
		next := cursor.Simulate(pos.Row, pos.Col)
		childBoard := next.Board()
		hash := game.Hash(&childBoard)

		cn, ok := a.table[hash]
		if !ok {
			cn = newNode(next, leaf.stones+1)
			a.table[hash] = cn
		}
		cn.prior = probs[pos.Row][pos.Col]
		leaf.children = append(leaf.children, child{pos: pos, hash: hash})
		next.Release()
	}
	return value, nil
}

// policy picks the move to play from the root statistics.
func (a *AlphaZero) policy(root *node) (game.Position, bool) {
	if len(root.children) == 0 {
		return game.Position{}, false
	}
	visits := make([]float64, len(root.children))
	visitSum := 0.0
	for i, c := range root.children {
		visits[i] = float64(a.lookup(c.hash).visit)
		visitSum += visits[i]
	}

	if a.param.Temperature > 0 && visitSum > 0 {
		probs := adjustTemperature(visits, a.param.Temperature)
		return root.children[sample(probs, a.rng)].pos, true
	}

	best, bestScore := 0, math.Inf(-1)
	for i, visit := range visits {
		score := visit / (visitSum - visit + 1)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return root.children[best].pos, true
}

// prune keeps the root, its children and everything reachable from the
// child at chosen. Siblings of that child lose their subtrees, which no later
// root can reach.
func (a *AlphaZero) prune(root *node, rootHash game.BoardHash, chosen game.Position) {
	keep := map[game.BoardHash]struct{}{rootHash: {}}
	var stack []game.BoardHash
	for _, c := range root.children {
		keep[c.hash] = struct{}{}
		if c.pos == chosen {
			stack = append(stack, c.hash)
		} else {
			a.lookup(c.hash).children = nil
		}
	}

	for len(stack) > 0 {
		hash := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range a.lookup(hash).children {
			if _, ok := keep[c.hash]; !ok {
				keep[c.hash] = struct{}{}
				stack = append(stack, c.hash)
			}
		}
	}

	for hash := range a.table {
		if _, ok := keep[hash]; !ok {
			delete(a.table, hash)
		}
	}
}

func adjustTemperature(visits []float64, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]float64, len(visits))
	for i, visit := range visits {
		adjusted[i] = math.Pow(visit, exponent)
		sum += adjusted[i]
	}
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}

func sample(probs []float64, rng *rand.Rand) int {
	sampled := rng.Float64()
	cumulative := 0.0
	for i, prob := range probs {
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return len(probs) - 1
}
