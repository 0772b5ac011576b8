package board

import "fmt"

// Player is one of the two sides. Red always moves first.
type Player int8

const (
	// NoPlayer marks an empty cell.
	NoPlayer Player = -1
	Red      Player = 0
	Yellow   Player = 1
)

func (p Player) Opposite() Player {
	return 1 - p
}

func (p Player) Char() byte {
	switch p {
	case Red:
		return 'R'
	case Yellow:
		return 'Y'
	}
	return '.'
}

func (p Player) String() string {
	switch p {
	case Red:
		return "Red"
	case Yellow:
		return "Yellow"
	}
	return "None"
}

// PlayerFromInt converts a host-supplied integer into a Player.
func PlayerFromInt(i int) (Player, error) {
	switch i {
	case int(Red):
		return Red, nil
	case int(Yellow):
		return Yellow, nil
	}
	return NoPlayer, fmt.Errorf("invalid player value %d", i)
}

// Position is a cell on the board. Row 0 is the bottom row.
type Position struct {
	Col uint8
	Row uint8
}

func NewPosition(col, row int) Position {
	return Position{Col: uint8(col), Row: uint8(row)}
}

func (p Position) IsValid(width, height uint8) bool {
	return p.Col < width && p.Row < height
}

// Index is the bit index of p on a board of the given width.
func (p Position) Index(width uint8) int {
	return int(p.Row)*int(width) + int(p.Col)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Col, p.Row)
}
