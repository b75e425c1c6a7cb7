package searcher

import (
	"fmt"
	"slices"

	"connect6/game"
	"connect6/utils"
)

// shared is the board state every cursor of one simulation points at.
type shared struct {
	board    game.Board
	possible []game.Position // row-major
	depth    int             // depth of the deepest live cursor
}

func newShared(board *game.Board) *shared {
	return &shared{
		board:    *board,
		possible: game.Empty(board),
	}
}

func (n *shared) place(pos game.Position, turn game.Player) {
	possible, ok := utils.Remove(n.possible, pos)
	if !ok {
		panic(fmt.Sprintf("simulate: position %v is not available", pos))
	}
	n.possible = possible
	n.board[pos.Row][pos.Col] = turn
}

func (n *shared) clear(pos game.Position) {
	n.board[pos.Row][pos.Col] = game.None
	i, found := slices.BinarySearchFunc(n.possible, pos, func(a, b game.Position) int {
		return a.Index() - b.Index()
	})
	if found {
		panic(fmt.Sprintf("simulate: position %v is already available", pos))
	}
	n.possible = utils.Insert(n.possible, i, pos)
}

// Simulate is a cursor over a board shared with every cursor derived from it.
//
// Simulate(row, col) returns a child cursor whose stone is written into the
// shared board, so only the deepest live cursor sees a consistent state and
// only it may move. Release undoes the child's stone. SimulateIn and
// RollbackIn mutate the cursor itself for tight loops.
type Simulate struct {
	turn     game.Player
	remain   int
	pos      game.Position
	placed   bool
	released bool
	depth    int
	node     *shared
}

// NewSimulate returns a cursor over an empty board with Black to move.
func NewSimulate() *Simulate {
	var board game.Board
	return &Simulate{
		turn:   game.Black,
		remain: 1,
		node:   newShared(&board),
	}
}

// FromGame returns a root cursor over a copy of the game state.
func FromGame(g *game.Game) *Simulate {
	board := g.Board()
	return &Simulate{
		turn:   g.Turn(),
		remain: g.Remain(),
		node:   newShared(&board),
	}
}

// DeepClone copies the current board into a fresh root cursor with its own
// shared state.
func (s *Simulate) DeepClone() *Simulate {
	return &Simulate{
		turn:   s.turn,
		remain: s.remain,
		node:   newShared(&s.node.board),
	}
}

func (s *Simulate) Turn() game.Player {
	return s.turn
}

func (s *Simulate) Remain() int {
	return s.remain
}

// Pos returns the stone this cursor placed, if any.
func (s *Simulate) Pos() (game.Position, bool) {
	return s.pos, s.placed
}

// Board returns a copy of the shared board.
func (s *Simulate) Board() game.Board {
	return s.node.board
}

// Possible returns a copy of the empty cells in row-major order.
func (s *Simulate) Possible() []game.Position {
	return slices.Clone(s.node.possible)
}

func (s *Simulate) SearchWinner() game.Player {
	return game.Search(&s.node.board)
}

// Validate reports whether (row, col) is on the board and empty.
func (s *Simulate) Validate(row, col int) bool {
	return game.InBounds(row, col) && s.node.board[row][col] == game.None
}

// NextTurn returns the player to move after one more stone.
func (s *Simulate) NextTurn() game.Player {
	if s.remain <= 1 {
		return s.turn.Switch()
	}
	return s.turn
}

func (s *Simulate) mustBeDeepest(op string) {
	if s.released || s.depth != s.node.depth {
		panic(fmt.Sprintf("simulate: %s on cursor at depth %d, deepest live cursor is at %d", op, s.depth, s.node.depth))
	}
}

// Simulate places a stone of the current player at (row, col) and returns
// the cursor for the resulting state.
func (s *Simulate) Simulate(row, col int) *Simulate {
	s.mustBeDeepest("simulate")
	if !s.Validate(row, col) {
		panic(fmt.Sprintf("simulate: invalid position (%d, %d)", row, col))
	}
	pos := game.Position{Row: row, Col: col}
	s.node.place(pos, s.turn)
	s.node.depth++

	turn, remain := s.turn, 1
	if s.remain <= 1 {
		turn, remain = s.turn.Switch(), 2
	}
	return &Simulate{
		turn:   turn,
		remain: remain,
		pos:    pos,
		placed: true,
		depth:  s.node.depth,
		node:   s.node,
	}
}

// Release removes the stone placed by this cursor. Releasing a root cursor
// or releasing twice does nothing.
func (s *Simulate) Release() {
	if !s.placed || s.released {
		return
	}
	s.mustBeDeepest("release")
	s.node.clear(s.pos)
	s.node.depth--
	s.released = true
}

// SimulateIn places a stone at (row, col) in place, advancing the turn like
// game.Game.Set.
func (s *Simulate) SimulateIn(row, col int) {
	s.mustBeDeepest("simulate in place")
	if !s.Validate(row, col) {
		panic(fmt.Sprintf("simulate: invalid position (%d, %d)", row, col))
	}
	s.node.place(game.Position{Row: row, Col: col}, s.turn)

	s.remain--
	if s.remain <= 0 {
		s.remain = 2
		s.turn = s.turn.Switch()
	}
}

// RollbackIn undoes SimulateIn(row, col).
func (s *Simulate) RollbackIn(row, col int) {
	s.mustBeDeepest("rollback in place")
	if !game.InBounds(row, col) || s.node.board[row][col] == game.None {
		panic(fmt.Sprintf("simulate: nothing to roll back at (%d, %d)", row, col))
	}
	s.node.clear(game.Position{Row: row, Col: col})

	s.remain++
	if s.remain > 2 {
		s.remain = 1
		s.turn = s.turn.Switch()
	}
}
