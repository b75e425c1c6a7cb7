package searcher

import (
	"math"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"connect6/game"
)

var ErrEvaluatorUnavailable = errors.New("evaluator unavailable")

// Evaluator estimates boards for the AlphaZero search. For every board it
// returns a value in [-1, 1] from the perspective of turn and a move
// distribution over the cells.
type Evaluator interface {
	Evaluate(turn game.Player, boards []game.Board) (values []float64, policies []game.Probs, err error)
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(turn game.Player, boards []game.Board) ([]float64, []game.Probs, error)

func (f EvaluatorFunc) Evaluate(turn game.Player, boards []game.Board) ([]float64, []game.Probs, error) {
	return f(turn, boards)
}

// RandomEvaluator returns uniform random values and move probabilities.
type RandomEvaluator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomEvaluator(seed uint64) *RandomEvaluator {
	return &RandomEvaluator{rng: rand.New(rand.NewSource(seed))}
}

func (e *RandomEvaluator) Evaluate(turn game.Player, boards []game.Board) ([]float64, []game.Probs, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	values := make([]float64, len(boards))
	policies := make([]game.Probs, len(boards))
	for i := range boards {
		values[i] = 2*e.rng.Float64() - 1
		for row := range policies[i] {
			for col := range policies[i][row] {
				policies[i][row][col] = e.rng.Float64()
			}
		}
	}
	return values, policies, nil
}

// evaluateSymmetric asks the evaluator about the eight symmetries of board
// and folds the answers back: the mean value and the mean policy, zeroed on
// occupied cells.
func evaluateSymmetric(e Evaluator, turn game.Player, board *game.Board) (float64, game.Probs, error) {
	boards := Augment8(*board)
	values, policies, err := e.Evaluate(turn, boards[:])
	if errors.Is(err, ErrEvaluatorUnavailable) {
		return 0, game.Probs{}, err
	}
	if err != nil {
		return 0, game.Probs{}, errors.Wrap(ErrEvaluatorUnavailable, err.Error())
	}
	if len(values) != len(boards) || len(policies) != len(boards) {
		return 0, game.Probs{}, errors.Wrapf(ErrEvaluatorUnavailable,
			"expected %d values and policies, got %d and %d", len(boards), len(values), len(policies))
	}

	value := 0.0
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, game.Probs{}, errors.Wrapf(ErrEvaluatorUnavailable, "value %v", v)
		}
		value += v
	}
	value /= float64(len(values))

	for i := range policies {
		for row := range policies[i] {
			for col, p := range policies[i][row] {
				if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
					return 0, game.Probs{}, errors.Wrapf(ErrEvaluatorUnavailable, "policy %d has %v at (%d, %d)", i, p, row, col)
				}
			}
		}
	}

	var folded [8]game.Probs
	copy(folded[:], policies)
	probs := Recover8(folded)
	for row := range probs {
		for col := range probs[row] {
			if board[row][col] != game.None {
				probs[row][col] = 0
			}
		}
	}
	return value, probs, nil
}
