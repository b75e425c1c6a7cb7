package agent

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"connect6/game"
	"connect6/searcher"
)

func TestAsyncAgentRun(t *testing.T) {
	t.Run("returns one result per game", func(t *testing.T) {
		const n = 8
		async := NewAsync(func(id int) searcher.Policy {
			return searcher.NewRandomPolicy(uint64(id + 1))
		}, WithWorkers(3))

		results, err := async.Run(context.Background(), n)

		require.NoError(t, err)
		require.Len(t, results, n, "Should collect exactly one result per game")
		for _, result := range results {
			require.NotEmpty(t, result.Path)
			if result.Winner != game.None {
				require.Equal(t, result.Winner, result.Path[len(result.Path)-1].Turn,
					"The last mover should be the winner")
			}
		}
	})

	t.Run("runs alphazero games", func(t *testing.T) {
		param := searcher.LightWeight()
		async := NewAsync(func(id int) searcher.Policy {
			return searcher.NewAlphaZero(
				searcher.WithHyperParameter(param),
				searcher.WithSeed(uint64(id)),
				searcher.WithMetrics(),
			)
		}, WithWorkers(2))

		results, err := async.Run(context.Background(), 2)

		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, result := range results {
			require.Len(t, result.Moves, len(result.Path), "AlphaZero should report every move")
		}
	})

	t.Run("reports failed games alongside results", func(t *testing.T) {
		failure := errors.New("policy failed")
		async := NewAsync(func(id int) searcher.Policy {
			if id%2 == 1 {
				return &scriptedPolicy{err: failure}
			}
			return &scriptedPolicy{moves: whiteWins}
		}, WithWorkers(2))

		results, err := async.Run(context.Background(), 6)

		require.Len(t, results, 3, "Successful games should still be returned")
		require.True(t, errors.Is(err, failure))
		for _, result := range results {
			require.Equal(t, game.White, result.Winner)
		}
	})

	t.Run("builds one policy per game", func(t *testing.T) {
		const n = 7
		var mu sync.Mutex
		calls := map[int]int{}
		policies := map[*scriptedPolicy]bool{}
		async := NewAsync(func(id int) searcher.Policy {
			policy := &scriptedPolicy{moves: whiteWins}
			mu.Lock()
			defer mu.Unlock()
			calls[id]++
			policies[policy] = true
			return policy
		}, WithWorkers(3))

		results, err := async.Run(context.Background(), n)

		require.NoError(t, err)
		require.Len(t, results, n)
		require.Len(t, calls, n, "Every game should get its own id")
		for id := 0; id < n; id++ {
			require.Equal(t, 1, calls[id], "Game %d should build exactly one policy", id)
		}
		require.Len(t, policies, n, "Policies should never be shared between games")
	})

	t.Run("cancelled before start", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		async := NewAsync(func(id int) searcher.Policy {
			return &scriptedPolicy{moves: whiteWins}
		})

		results, err := async.Run(ctx, 4)

		require.Empty(t, results)
		require.True(t, errors.Is(err, context.Canceled))
	})
}
