package game

import "github.com/domino14/connect4/board"

// Outcome is the result of a game, or NoOutcome while it is in progress.
type Outcome uint8

const (
	NoOutcome Outcome = iota
	RedWin
	YellowWin
	Draw
)

func winFor(p board.Player) Outcome {
	if p == board.Red {
		return RedWin
	}
	return YellowWin
}

// Winner returns the winning player, or NoPlayer for a draw or an
// unfinished game.
func (o Outcome) Winner() board.Player {
	switch o {
	case RedWin:
		return board.Red
	case YellowWin:
		return board.Yellow
	}
	return board.NoPlayer
}

func (o Outcome) IsDraw() bool {
	return o == Draw
}

// EncodeWinnerAbsolute is +1 for a Red win, -1 for a Yellow win and 0
// otherwise.
func (o Outcome) EncodeWinnerAbsolute() float32 {
	switch o {
	case RedWin:
		return 1
	case YellowWin:
		return -1
	}
	return 0
}

// EncodeWinnerFromPerspective is +1 if p won, -1 if p lost and 0 otherwise.
func (o Outcome) EncodeWinnerFromPerspective(p board.Player) float32 {
	w := o.Winner()
	switch {
	case w == board.NoPlayer:
		return 0
	case w == p:
		return 1
	}
	return -1
}

func (o Outcome) String() string {
	switch o {
	case RedWin:
		return "RedWin"
	case YellowWin:
		return "YellowWin"
	case Draw:
		return "Draw"
	}
	return "NoOutcome"
}
