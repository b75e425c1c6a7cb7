package searcher

import "connect6/game"

// grid is any square board-shaped array.
type grid[E any] interface {
	~[game.Size][game.Size]E
}

func rotateLeft[G grid[E], E any](g G) G {
	var out G
	for i := 0; i < game.Size; i++ {
		for j := 0; j < game.Size; j++ {
			out[game.Size-j-1][i] = g[i][j]
		}
	}
	return out
}

func rotateRight[G grid[E], E any](g G) G {
	var out G
	for i := 0; i < game.Size; i++ {
		for j := 0; j < game.Size; j++ {
			out[j][game.Size-i-1] = g[i][j]
		}
	}
	return out
}

// flipVertical mirrors across the vertical axis.
func flipVertical[G grid[E], E any](g G) G {
	for i := range g {
		for j := 0; j < game.Size/2; j++ {
			g[i][j], g[i][game.Size-j-1] = g[i][game.Size-j-1], g[i][j]
		}
	}
	return g
}

// flipHorizontal mirrors across the horizontal axis.
func flipHorizontal[G grid[E], E any](g G) G {
	for i := 0; i < game.Size/2; i++ {
		g[i], g[game.Size-i-1] = g[game.Size-i-1], g[i]
	}
	return g
}

// Augment8 returns the eight symmetries of the board: rotated left one to
// four times, each followed by its vertical mirror.
func Augment8(board game.Board) [8]game.Board {
	var out [8]game.Board
	for i := 0; i < 4; i++ {
		board = rotateLeft(board)
		out[2*i] = board
		out[2*i+1] = flipVertical(board)
	}
	return out
}

// Recover8 maps probabilities laid out like Augment8 back onto the original
// board and averages them.
func Recover8(probs [8]game.Probs) game.Probs {
	var total game.Probs
	for i := 0; i < 4; i++ {
		rotated := probs[2*i]
		flipped := flipVertical(probs[2*i+1])
		for k := 0; k <= i; k++ {
			rotated = rotateRight(rotated)
			flipped = rotateRight(flipped)
		}
		for row := range total {
			for col := range total[row] {
				total[row][col] += rotated[row][col] + flipped[row][col]
			}
		}
	}
	for row := range total {
		for col := range total[row] {
			total[row][col] /= 8
		}
	}
	return total
}
