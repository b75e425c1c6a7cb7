package game

import (
	"github.com/OneOfOne/xxhash"
)

const (
	Size     = 15
	Capacity = Size * Size
)

// Board is the Connect6 grid, indexed [row][col].
type Board [Size][Size]Player

// Probs is a probability (or any per-cell value) grid aligned with Board.
type Probs [Size][Size]float64

// BoardHash is the transposition key of a board.
type BoardHash uint64

type Position struct {
	Row int
	Col int
}

// Index returns the row-major index of the position.
func (p Position) Index() int {
	return p.Row*Size + p.Col
}

// PositionAt is the inverse of Position.Index.
func PositionAt(index int) Position {
	return Position{Row: index / Size, Col: index % Size}
}

// InBounds reports whether both coordinates are on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// Stones counts the non-empty cells of the board.
func Stones(board *Board) int {
	count := 0
	for row := range board {
		for col := range board[row] {
			if board[row][col] != None {
				count++
			}
		}
	}
	return count
}

// Empty returns every empty cell in row-major order.
func Empty(board *Board) []Position {
	positions := make([]Position, 0, Capacity)
	for row := range board {
		for col := range board[row] {
			if board[row][col] == None {
				positions = append(positions, Position{Row: row, Col: col})
			}
		}
	}
	return positions
}

// Hash returns the 64-bit xxhash of the board cells.
func Hash(board *Board) BoardHash {
	var buf [Capacity]byte
	for row := range board {
		for col := range board[row] {
			// -1, 0, 1 -> 0, 1, 2
			buf[row*Size+col] = byte(board[row][col] + 1)
		}
	}
	return BoardHash(xxhash.Checksum64(buf[:]))
}

// TurnAt returns the player to move and its remaining placements on a board
// holding the given number of stones. Black opens with a single stone, then
// both players alternate with two.
func TurnAt(stones int) (turn Player, remain int) {
	if stones <= 0 {
		return Black, 1
	}
	k := stones - 1
	remain = 2 - k%2
	if (k/2)%2 == 0 {
		return White, remain
	}
	return Black, remain
}
