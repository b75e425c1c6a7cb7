package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"connect6/game"
)

func indexedProbs() game.Probs {
	var probs game.Probs
	for row := range probs {
		for col := range probs[row] {
			probs[row][col] = float64(row*game.Size + col)
		}
	}
	return probs
}

func TestRotateFlip(t *testing.T) {
	probs := indexedProbs()

	t.Run("rotations are inverses", func(t *testing.T) {
		require.Equal(t, probs, rotateRight(rotateLeft(probs)))
		require.Equal(t, probs, rotateLeft(rotateRight(probs)))
	})

	t.Run("four rotations are the identity", func(t *testing.T) {
		got := probs
		for i := 0; i < 4; i++ {
			got = rotateLeft(got)
		}
		require.Equal(t, probs, got)
	})

	t.Run("half turn is both flips", func(t *testing.T) {
		require.Equal(t, rotateLeft(rotateLeft(probs)), flipHorizontal(flipVertical(probs)))
	})

	t.Run("rotate left moves the top-right corner to the top-left", func(t *testing.T) {
		got := rotateLeft(probs)
		require.Equal(t, probs[0][game.Size-1], got[0][0])
		require.Equal(t, probs[0][0], got[game.Size-1][0])
	})

	t.Run("flips do not mutate the input", func(t *testing.T) {
		_ = flipVertical(probs)
		_ = flipHorizontal(probs)
		require.Equal(t, indexedProbs(), probs)
	})
}

func TestAugment8(t *testing.T) {
	var board game.Board
	board[0][1] = game.Black
	board[2][0] = game.White

	boards := Augment8(board)

	seen := map[game.Board]bool{}
	for _, b := range boards {
		require.Equal(t, 2, game.Stones(&b), "Symmetries should keep every stone")
		seen[b] = true
	}
	require.Len(t, seen, 8, "An asymmetric board should have eight distinct symmetries")
	require.True(t, seen[board], "The identity should be among the symmetries")
}

func TestRecover8(t *testing.T) {
	t.Run("recovers probabilities laid out like the boards", func(t *testing.T) {
		probs := indexedProbs()
		// Transform the probabilities exactly like Augment8 transforms a board.
		var augmented [8]game.Probs
		current := probs
		for i := 0; i < 4; i++ {
			current = rotateLeft(current)
			augmented[2*i] = current
			augmented[2*i+1] = flipVertical(current)
		}

		require.Equal(t, probs, Recover8(augmented))
	})

	t.Run("averages the eight answers", func(t *testing.T) {
		var augmented [8]game.Probs
		augmented[0][3][3] = 8
		got := Recover8(augmented)

		total := 0.0
		for row := range got {
			for col := range got[row] {
				total += got[row][col]
			}
		}
		require.InDelta(t, 1.0, total, 1e-9)
	})
}
