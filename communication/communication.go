package communication

import (
	"github.com/pkg/errors"

	"connect6/game"
)

// EvaluatePath is the route of the evaluator service.
const EvaluatePath = "/evaluate"

var ErrMalformed = errors.New("malformed evaluator payload")

// EvaluateRequest carries boards flattened row-major with -1 for Black,
// 0 for empty and 1 for White.
type EvaluateRequest struct {
	Turn   int     `json:"turn"`
	Boards [][]int `json:"boards"`
}

// EvaluateResponse carries one value and one row-major policy per board.
type EvaluateResponse struct {
	Values   []float64   `json:"values"`
	Policies [][]float64 `json:"policies"`
	Error    string      `json:"error,omitempty"`
}

func EncodeBoards(boards []game.Board) [][]int {
	encoded := make([][]int, len(boards))
	for i, board := range boards {
		cells := make([]int, 0, game.Capacity)
		for row := range board {
			for col := range board[row] {
				cells = append(cells, int(board[row][col]))
			}
		}
		encoded[i] = cells
	}
	return encoded
}

func DecodeBoards(encoded [][]int) ([]game.Board, error) {
	boards := make([]game.Board, len(encoded))
	for i, cells := range encoded {
		if len(cells) != game.Capacity {
			return nil, errors.Wrapf(ErrMalformed, "board %d has %d cells", i, len(cells))
		}
		for j, cell := range cells {
			player := game.PlayerFrom(cell)
			if player == game.None && cell != 0 {
				return nil, errors.Wrapf(ErrMalformed, "board %d cell %d is %d", i, j, cell)
			}
			pos := game.PositionAt(j)
			boards[i][pos.Row][pos.Col] = player
		}
	}
	return boards, nil
}

func EncodePolicies(policies []game.Probs) [][]float64 {
	encoded := make([][]float64, len(policies))
	for i, probs := range policies {
		cells := make([]float64, 0, game.Capacity)
		for row := range probs {
			cells = append(cells, probs[row][:]...)
		}
		encoded[i] = cells
	}
	return encoded
}

func DecodePolicies(encoded [][]float64) ([]game.Probs, error) {
	policies := make([]game.Probs, len(encoded))
	for i, cells := range encoded {
		if len(cells) != game.Capacity {
			return nil, errors.Wrapf(ErrMalformed, "policy %d has %d cells", i, len(cells))
		}
		for j, p := range cells {
			pos := game.PositionAt(j)
			policies[i][pos.Row][pos.Col] = p
		}
	}
	return policies, nil
}
