package game

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	g := NewGame()

	require.Equal(t, Black, g.Turn(), "Black should open the game")
	require.Equal(t, 1, g.Remain(), "The opening move should place a single stone")
	require.Equal(t, Board{}, g.Board(), "Board should start empty")
	require.Equal(t, None, g.IsGameEnd(), "Empty board should have no winner")
}

func TestGameSet(t *testing.T) {
	t.Run("placing the opening stone", func(t *testing.T) {
		g := NewGame()

		got, err := g.Set(0, 0)

		require.NoError(t, err)
		require.Equal(t, SetResult{Player: Black, Remain: 0, Position: Position{0, 0}}, got,
			"Result should report the mover and the placements left in its turn")
		require.Equal(t, White, g.Turn(), "Turn should switch after the single opening stone")
		require.Equal(t, 2, g.Remain(), "White should place two stones")
		require.Equal(t, Black, g.Board()[0][0], "Stone should be written to the board")
	})

	t.Run("rejecting occupied cells repeatedly", func(t *testing.T) {
		g := NewGame()
		_, err := g.Set(7, 7)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err = g.Set(7, 7)
			require.True(t, errors.Is(err, ErrCellOccupied), "Occupied cell should always be rejected")
		}
		require.Equal(t, White, g.Turn(), "Rejected moves should not change the turn")
		require.Equal(t, 2, g.Remain(), "Rejected moves should not consume placements")
	})

	t.Run("rejecting positions off the board", func(t *testing.T) {
		g := NewGame()

		for _, pos := range []Position{{Size, 0}, {0, Size}, {Size, Size}, {-1, 3}, {3, -1}} {
			_, err := g.Set(pos.Row, pos.Col)
			require.True(t, errors.Is(err, ErrOutOfBounds), "Position %v should be out of bounds", pos)
		}
		require.Equal(t, Board{}, g.Board(), "Rejected moves should not touch the board")
	})

	t.Run("alternating remain sequence", func(t *testing.T) {
		g := NewGame()
		turns := []Player{}
		remains := []int{}
		for i := 0; i < 9; i++ {
			turns = append(turns, g.Turn())
			remains = append(remains, g.Remain())
			_, err := g.Set(i, i)
			require.NoError(t, err)
		}

		require.Equal(t, []int{1, 2, 1, 2, 1, 2, 1, 2, 1}, remains, "Remain should be 1 then alternate 2, 1")
		require.Equal(t,
			[]Player{Black, White, White, Black, Black, White, White, Black, Black},
			turns, "Turn should switch after the opening stone and then every two stones")
	})
}

func TestGameTrace(t *testing.T) {
	// White completes a horizontal six on the top row.
	moves := []Position{
		{0, 0},
		{0, 1}, {0, 2},
		{1, 0}, {2, 0},
		{0, 3}, {0, 4},
		{3, 0}, {4, 0},
		{0, 5}, {0, 6},
	}
	expected := []SetResult{
		{Black, 0, Position{0, 0}},
		{White, 1, Position{0, 1}}, {White, 0, Position{0, 2}},
		{Black, 1, Position{1, 0}}, {Black, 0, Position{2, 0}},
		{White, 1, Position{0, 3}}, {White, 0, Position{0, 4}},
		{Black, 1, Position{3, 0}}, {Black, 0, Position{4, 0}},
		{White, 1, Position{0, 5}}, {White, 0, Position{0, 6}},
	}

	g := NewGame()
	for i, move := range moves {
		require.Equal(t, None, g.IsGameEnd(), "Game should be ongoing before move %d", i)
		got, err := g.SetPosition(move)
		require.NoError(t, err)
		require.Equal(t, expected[i], got, "Move %d should match the fixture", i)

		turn, remain := TurnAt(i + 1)
		require.Equal(t, turn, g.Turn(), "TurnAt should agree with the game after %d stones", i+1)
		require.Equal(t, remain, g.Remain(), "TurnAt should agree with the game after %d stones", i+1)
	}
	require.Equal(t, White, g.IsGameEnd(), "White should win with six on the top row")
}

func TestPlayer(t *testing.T) {
	require.Equal(t, White, Black.Switch())
	require.Equal(t, Black, White.Switch())
	require.Equal(t, None, None.Switch())
	require.Equal(t, -1.0, Black.Sign())
	require.Equal(t, 1.0, White.Sign())
	require.Equal(t, Black, PlayerFrom(-1))
	require.Equal(t, None, PlayerFrom(7))
}

func TestHash(t *testing.T) {
	var a, b Board
	require.Equal(t, Hash(&a), Hash(&b), "Equal boards should hash equally")

	a[3][4] = Black
	b[3][4] = White
	require.NotEqual(t, Hash(&a), Hash(&b), "Stone colour should change the hash")

	b[3][4] = Black
	require.Equal(t, Hash(&a), Hash(&b))
	require.Equal(t, 1, Stones(&a))
	require.Len(t, Empty(&a), Capacity-1)
}
