package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"connect6/game"
)

func TestNewUCT(t *testing.T) {
	t.Run("panics with zero parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			newUCT(2.0, 0)
		}, "Should panic when N is 0")
	})
}

func TestUCTEvaluate(t *testing.T) {
	t.Run("computing UCT value", func(t *testing.T) {
		policy := newUCT(2.0, 100)
		got := policy.evaluate(5.0, 10)

		expected := 5.0/10 + math.Sqrt(2.0*math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute q/n + sqrt(c^2*ln(N)/n)")
	})

	t.Run("panics with zero child visits", func(t *testing.T) {
		policy := newUCT(2.0, 100)

		require.Panics(t, func() {
			policy.evaluate(5.0, 0)
		}, "Should panic when n is 0")
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		policy1 := newUCT(2.0, 100)
		policy2 := newUCT(2.0, 1000)

		require.Greater(t, policy2.evaluate(5.0, 10), policy1.evaluate(5.0, 10),
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		policy := newUCT(2.0, 100)

		require.Greater(t, policy.evaluate(5.0, 10), policy.evaluate(5.0, 20),
			"More child visits should decrease exploration term")
	})

	t.Run("exploitation term increases with rewards", func(t *testing.T) {
		policy := newUCT(2.0, 100)

		require.Greater(t, policy.evaluate(10.0, 10), policy.evaluate(5.0, 10),
			"More rewards should increase exploitation term")
	})
}

func TestUCTNext(t *testing.T) {
	t.Run("plays a legal move", func(t *testing.T) {
		g := game.NewGame()
		u := NewUCT(WithIterations(20), WithSeed(3), WithMetrics())

		pos, ok, err := u.Next(g)

		require.NoError(t, err)
		require.True(t, ok)
		require.True(t, game.InBounds(pos.Row, pos.Col))
		require.Equal(t, 20, u.LastSearch().Episodes, "Should run every iteration")
		require.True(t, u.LastSearch().IsTreeReset, "First search should start a new tree")
	})

	t.Run("completes a winning line", func(t *testing.T) {
		g := fiveForWhite(t)
		u := NewUCT(WithIterations(2000), WithExploration(0.5), WithSeed(7))

		pos, ok, err := u.Next(g)

		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, game.Position{Row: 0, Col: 5}, pos, "Should play the only winning cell")
	})

	t.Run("nothing to play on a decided board", func(t *testing.T) {
		g := fiveForWhite(t)
		_, err := g.Set(0, 5)
		require.NoError(t, err)

		_, ok, err := NewUCT().Next(g)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("reuses the subtree of the played move", func(t *testing.T) {
		g := game.NewGame()
		u := NewUCT(WithIterations(30), WithSeed(1), WithMetrics())

		pos, _, err := u.Next(g)
		require.NoError(t, err)
		_, err = g.SetPosition(pos)
		require.NoError(t, err)

		_, _, err = u.Next(g)
		require.NoError(t, err)
		require.False(t, u.LastSearch().IsTreeReset, "Expanded child should be found in the table")
		for _, n := range u.table {
			require.GreaterOrEqual(t, n.stones, 1, "Nodes above the root should be pruned")
		}
	})
}

// fiveForWhite returns a game where White holds (0,0) to (0,4) and has one
// stone left to place. Only (0,5) completes six.
func fiveForWhite(t *testing.T) *game.Game {
	t.Helper()
	g := game.NewGame()
	moves := []game.Position{
		{Row: 14, Col: 14},
		{Row: 0, Col: 0}, {Row: 0, Col: 1},
		{Row: 14, Col: 12}, {Row: 14, Col: 10},
		{Row: 0, Col: 2}, {Row: 0, Col: 3},
		{Row: 14, Col: 8}, {Row: 14, Col: 6},
		{Row: 0, Col: 4},
	}
	for _, move := range moves {
		_, err := g.SetPosition(move)
		require.NoError(t, err)
	}
	require.Equal(t, game.White, g.Turn())
	require.Equal(t, 1, g.Remain())
	return g
}
