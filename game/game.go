package game

import (
	"github.com/pkg/errors"
)

var (
	ErrOutOfBounds  = errors.New("position out of bounds")
	ErrCellOccupied = errors.New("cell already occupied")
)

// SetResult describes a single placement: who moved, how many placements
// were left in that turn after this one, and where the stone went.
type SetResult struct {
	Player   Player
	Remain   int
	Position Position
}

// Game is the live Connect6 state machine. It is mutated only by Set.
type Game struct {
	turn   Player
	remain int
	board  Board
}

// NewGame returns an empty board with Black to place a single stone.
func NewGame() *Game {
	return &Game{
		turn:   Black,
		remain: 1,
	}
}

// Set places a stone of the current player at (row, col).
func (g *Game) Set(row, col int) (SetResult, error) {
	if !InBounds(row, col) {
		return SetResult{}, errors.Wrapf(ErrOutOfBounds, "game: set (%d, %d)", row, col)
	}
	if g.board[row][col] != None {
		return SetResult{}, errors.Wrapf(ErrCellOccupied, "game: set (%d, %d)", row, col)
	}
	g.board[row][col] = g.turn

	g.remain--
	result := SetResult{
		Player:   g.turn,
		Remain:   g.remain,
		Position: Position{Row: row, Col: col},
	}

	if g.remain <= 0 {
		g.remain = 2
		g.turn = g.turn.Switch()
	}
	return result, nil
}

// SetPosition is Set for a Position value.
func (g *Game) SetPosition(pos Position) (SetResult, error) {
	return g.Set(pos.Row, pos.Col)
}

// Board returns a copy of the board.
func (g *Game) Board() Board {
	return g.board
}

func (g *Game) Turn() Player {
	return g.turn
}

func (g *Game) Remain() int {
	return g.remain
}

// IsGameEnd returns the winner, or None while the game is ongoing.
func (g *Game) IsGameEnd() Player {
	return Search(&g.board)
}
