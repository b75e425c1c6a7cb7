package game

// Player is the colour of a stone. Its numeric value doubles as a sign:
// positive values favour White, negative values favour Black.
type Player int8

const (
	Black Player = -1
	None  Player = 0
	White Player = 1
)

// Switch returns the opponent, None stays None.
func (p Player) Switch() Player {
	switch p {
	case Black:
		return White
	case White:
		return Black
	default:
		return None
	}
}

// Sign returns the player as a float multiplier.
func (p Player) Sign() float64 {
	return float64(p)
}

func (p Player) String() string {
	switch p {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "none"
	}
}

// PlayerFrom maps -1 and 1 to Black and White, anything else to None.
func PlayerFrom(n int) Player {
	switch n {
	case -1:
		return Black
	case 1:
		return White
	default:
		return None
	}
}
