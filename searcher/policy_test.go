package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"connect6/experiments/metrics"
	"connect6/game"
)

type turnRecorder struct {
	turns  []game.Player
	metric metrics.SearchMetric
}

func (r *turnRecorder) Next(g *game.Game) (game.Position, bool, error) {
	r.turns = append(r.turns, g.Turn())
	board := g.Board()
	return game.Empty(&board)[0], true, nil
}

func (r *turnRecorder) LastSearch() metrics.SearchMetric {
	return r.metric
}

func TestRandomPolicy(t *testing.T) {
	t.Run("plays empty cells", func(t *testing.T) {
		p := NewRandomPolicy(1)
		g := game.NewGame()
		for i := 0; i < 20; i++ {
			pos, ok, err := p.Next(g)
			require.NoError(t, err)
			require.True(t, ok)
			_, err = g.SetPosition(pos)
			require.NoError(t, err, "Random policy should only pick empty cells")
		}
	})

	t.Run("is reproducible with a seed", func(t *testing.T) {
		a, _, _ := NewRandomPolicy(9).Next(game.NewGame())
		b, _, _ := NewRandomPolicy(9).Next(game.NewGame())
		require.Equal(t, a, b)
	})
}

func TestMultiPolicy(t *testing.T) {
	black := &turnRecorder{metric: metrics.SearchMetric{Episodes: 1}}
	white := &turnRecorder{metric: metrics.SearchMetric{Episodes: 2}}
	p := NewMultiPolicy(black, white)
	g := game.NewGame()

	for i := 0; i < 5; i++ {
		pos, ok, err := p.Next(g)
		require.NoError(t, err)
		require.True(t, ok)
		turn := g.Turn()
		_, err = g.SetPosition(pos)
		require.NoError(t, err)

		expected := 1
		if turn == game.White {
			expected = 2
		}
		require.Equal(t, expected, p.LastSearch().Episodes, "Metrics should come from the policy that moved")
	}

	require.Equal(t, []game.Player{game.Black, game.Black, game.Black}, black.turns)
	require.Equal(t, []game.Player{game.White, game.White}, white.turns)

	silent := NewMultiPolicy(NewRandomPolicy(1), NewRandomPolicy(2))
	_, _, err := silent.Next(game.NewGame())
	require.NoError(t, err)
	require.Equal(t, metrics.SearchMetric{}, silent.LastSearch())
}
