package game

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/domino14/connect4/bitboard"
	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/move"
)

const (
	// HistoryLength is the number of positions encoded, the current one
	// included.
	HistoryLength  = 8
	PiecePlanes    = 2
	ConstantPlanes = 1

	TotalInputPlanes = HistoryLength*PiecePlanes + ConstantPlanes
)

// Planes is a flattened (NumPlanes, Height, Width) float32 tensor.
type Planes struct {
	Data      []float32
	NumPlanes int
	Height    int
	Width     int
}

// PlaneBufferSize is the length of the Data slice for a board.
func PlaneBufferSize(width, height int) int {
	return TotalInputPlanes * width * height
}

// EncodeGamePlanes encodes the game from the point of view of the player
// to move. See EncodeGamePlanesInto.
func EncodeGamePlanes[W bitboard.Words](g *Game[W]) Planes {
	data := make([]float32, PlaneBufferSize(g.Width(), g.Height()))
	EncodeGamePlanesInto(g, data)
	return Planes{
		Data:      data,
		NumPlanes: TotalInputPlanes,
		Height:    g.Height(),
		Width:     g.Width(),
	}
}

// EncodeGamePlanesInto fills dst, which must hold PlaneBufferSize values.
// Plane pair t holds the mover's and the opponent's stones t plies ago;
// pairs older than the game stay zero. The last plane is all ones when Red
// is to move.
//
// The history is walked by undoing moves, so g is mutated during the call.
// The undone stones are then put back directly rather than replayed, which
// restores g exactly even when SetPiece left stones that ignore gravity.
func EncodeGamePlanesInto[W bitboard.Words](g *Game[W], dst []float32) {
	area := g.Width() * g.Height()
	if len(dst) < TotalInputPlanes*area {
		panic("game: plane buffer too small")
	}
	dst = dst[:TotalInputPlanes*area]
	clear(dst)

	perspective := g.turn
	over, outcome := g.over, g.outcome
	opponent := perspective.Opposite()
	fillPair := func(t int) {
		own := dst[(2*t)*area : (2*t+1)*area]
		opp := dst[(2*t+1)*area : (2*t+2)*area]
		for idx := range g.board.Stones(perspective).Ones() {
			own[idx] = 1
		}
		for idx := range g.board.Stones(opponent).Ones() {
			opp[idx] = 1
		}
	}

	fillPair(0)
	steps := min(HistoryLength-1, len(g.history))
	var (
		undone [HistoryLength - 1]move.Move
		movers [HistoryLength - 1]board.Player
	)
	for t := 1; t <= steps; t++ {
		undone[t-1] = g.history[len(g.history)-1]
		g.UnmakeMove()
		movers[t-1] = g.turn
		fillPair(t)
	}
	for t := steps - 1; t >= 0; t-- {
		g.board.SetPiece(undone[t].Position(), movers[t])
		g.history = append(g.history, undone[t])
	}
	g.turn, g.over, g.outcome = perspective, over, outcome

	if perspective == board.Red {
		last := dst[(TotalInputPlanes-1)*area:]
		for i := range last {
			last[i] = 1
		}
	}
}

// EncodeMove maps a move to its action index, which is the column.
func EncodeMove(m move.Move) int {
	return int(m.Col)
}

// DecodeMove turns an action index into the move that would be played in
// g. ok is false if the action is off the board or the column is full.
func DecodeMove[W bitboard.Words](action int, g *Game[W]) (move.Move, bool) {
	if action < 0 || action >= g.Width() {
		return move.Move{}, false
	}
	h := g.ColumnHeight(action)
	if h >= g.Height() {
		return move.Move{}, false
	}
	return move.NewMove(action, h), true
}

// BinaryWriteMLVector writes vec as little-endian float32s.
func BinaryWriteMLVector(w io.Writer, vec []float32) error {
	buf := make([]byte, 4*len(vec))
	for i, f := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	_, err := w.Write(buf)
	return err
}
