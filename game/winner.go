package game

const winLength = 6

// cumulative holds run lengths ending at a cell, one per scan direction.
type cumulative struct {
	right     int
	down      int
	rightDown int
	leftDown  int
}

// block is a pair of rows swapped on every board row, so the scan only ever
// keeps the previous and the current row. Columns are shifted by one so the
// neighbours of the edge columns are always zero.
type block struct {
	flag int
	mem  [2][Size + 2]cumulative
}

func (b *block) prev() *[Size + 2]cumulative {
	return &b.mem[b.flag]
}

func (b *block) now() *[Size + 2]cumulative {
	return &b.mem[1-b.flag]
}

// nextRow makes the current row the previous one and clears the new current row.
func (b *block) nextRow() {
	b.flag = 1 - b.flag
	now := b.now()
	for i := range now {
		now[i] = cumulative{}
	}
}

// place extends all four runs into col (one-indexed) and reports whether any
// of them reached six.
func (b *block) place(col int) bool {
	prev, now := b.prev(), b.now()
	cell := cumulative{
		right:     now[col-1].right + 1,
		down:      prev[col].down + 1,
		rightDown: prev[col-1].rightDown + 1,
		leftDown:  prev[col+1].leftDown + 1,
	}
	now[col] = cell
	return cell.right >= winLength || cell.down >= winLength ||
		cell.rightDown >= winLength || cell.leftDown >= winLength
}

// Search scans the board once from the top-left corner and returns the colour
// owning a run of six stones in any direction, or None.
func Search(board *Board) Player {
	var black, white block

	for row := 0; row < Size; row++ {
		black.nextRow()
		white.nextRow()

		for col := 0; col < Size; col++ {
			switch board[row][col] {
			case Black:
				if black.place(col + 1) {
					return Black
				}
			case White:
				if white.place(col + 1) {
					return White
				}
			}
		}
	}
	return None
}
