// Package game implements the Connect-Four state machine on top of a
// board and its geometry, plus the neural-network input encoder.
package game

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	"github.com/domino14/connect4/bitboard"
	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/move"
)

// Game is a single game in progress or finished. It is not safe for
// concurrent use; give each goroutine its own Copy.
type Game[W bitboard.Words] struct {
	board   board.Board[W]
	geo     *bitboard.Geometry[W]
	turn    board.Player
	over    bool
	outcome Outcome
	history []move.Move
}

// New creates an empty game. It panics if the dimensions are out of range
// or do not match W.
func New[W bitboard.Words](width, height int) *Game[W] {
	geo := bitboard.NewGeometry[W](width, height)
	return &Game[W]{
		board:   board.NewBoard[W](width, height),
		geo:     geo,
		turn:    board.Red,
		history: make([]move.Move, 0, width*height),
	}
}

func (g *Game[W]) Width() int {
	return int(g.geo.Width)
}

func (g *Game[W]) Height() int {
	return int(g.geo.Height)
}

func (g *Game[W]) GetPiece(pos board.Position) board.Player {
	return g.board.GetPiece(pos)
}

// SetPiece edits the board directly, bypassing gravity, turn order and
// history. It is meant for setting up test positions.
func (g *Game[W]) SetPiece(pos board.Position, p board.Player) {
	g.board.SetPiece(pos, p)
}

func (g *Game[W]) Board() *board.Board[W] {
	return &g.board
}

func (g *Game[W]) Geometry() *bitboard.Geometry[W] {
	return g.geo
}

// Turn is the player to move. After the game ends it is the player who
// would have moved next.
func (g *Game[W]) Turn() board.Player {
	return g.turn
}

func (g *Game[W]) IsOver() bool {
	return g.over
}

func (g *Game[W]) Outcome() Outcome {
	return g.outcome
}

// History returns the moves made so far. The slice is owned by the game
// and must not be modified.
func (g *Game[W]) History() []move.Move {
	return g.history
}

func (g *Game[W]) IsColumnFull(col int) bool {
	return g.board.IsColumnFull(uint8(col), g.geo)
}

func (g *Game[W]) ColumnHeight(col int) int {
	return int(g.board.ColumnHeight(uint8(col), g.geo))
}

// LegalMoves returns one move per non-full column, with Row set to where
// the piece would land. It is empty once the game is over.
func (g *Game[W]) LegalMoves() []move.Move {
	return g.AppendLegalMoves(make([]move.Move, 0, g.geo.Width))
}

// AppendLegalMoves appends the legal moves to dst and returns it.
func (g *Game[W]) AppendLegalMoves(dst []move.Move) []move.Move {
	if g.over {
		return dst
	}
	occ := g.board.Occupied()
	for col := uint8(0); col < g.geo.Width; col++ {
		h := occ.And(g.geo.ColumnMasks[col]).Count()
		if h < int(g.geo.Height) {
			dst = append(dst, move.Move{Col: col, Row: uint8(h)})
		}
	}
	return dst
}

// IsLegalMove checks the column is on the board and not full, and that
// m.Row matches the column height.
func (g *Game[W]) IsLegalMove(m move.Move) bool {
	if g.over || m.Col >= g.geo.Width {
		return false
	}
	h := g.board.ColumnHeight(m.Col, g.geo)
	return h < g.geo.Height && h == m.Row
}

// MakeMove plays m for the player to move. It returns false, leaving the
// game untouched, if the move is not legal.
func (g *Game[W]) MakeMove(m move.Move) bool {
	if !g.IsLegalMove(m) {
		log.Debug().Uint8("col", m.Col).Uint8("row", m.Row).Msg("rejected-illegal-move")
		return false
	}
	row, ok := g.board.DropPiece(m.Col, g.turn, g.geo)
	if !ok {
		return false
	}
	g.history = append(g.history, move.Move{Col: m.Col, Row: row})
	if g.board.CheckWin(g.turn, g.geo) {
		g.over = true
		g.outcome = winFor(g.turn)
	} else if g.board.IsBoardFull(g.geo) {
		g.over = true
		g.outcome = Draw
	}
	g.turn = g.turn.Opposite()
	return true
}

// UnmakeMove takes back the last move. It returns false if there is
// nothing to undo.
func (g *Game[W]) UnmakeMove() bool {
	n := len(g.history)
	if n == 0 {
		return false
	}
	last := g.history[n-1]
	g.history = g.history[:n-1]
	g.board.SetPiece(last.Position(), board.NoPlayer)
	g.over = false
	g.outcome = NoOutcome
	g.turn = g.turn.Opposite()
	return true
}

// Copy returns an independent game. The geometry is immutable and shared.
func (g *Game[W]) Copy() *Game[W] {
	cp := *g
	cp.history = make([]move.Move, len(g.history), cap(g.history))
	copy(cp.history, g.history)
	return &cp
}

// Hash fingerprints the pieces and the side to move.
func (g *Game[W]) Hash() uint64 {
	var buf [2*bitboard.MaxWords*8 + 1]byte
	b := g.board.AppendBytes(buf[:0])
	b = append(b, byte(g.turn))
	return xxhash.Sum64(b)
}

// WinningCells returns the cells of the winner's four-in-a-row lines, or
// nil if nobody has won.
func (g *Game[W]) WinningCells() []board.Position {
	w := g.outcome.Winner()
	if w == board.NoPlayer {
		return nil
	}
	var out []board.Position
	width := int(g.geo.Width)
	for idx := range g.geo.WinningCells(g.board.Stones(w)).Ones() {
		out = append(out, board.NewPosition(idx%width, idx/width))
	}
	return out
}

// AppendStateBytes appends a serialization of the board, turn and
// history, suitable for comparing two games for exact equality.
func (g *Game[W]) AppendStateBytes(dst []byte) []byte {
	dst = g.board.AppendBytes(dst)
	dst = append(dst, byte(g.turn), byte(g.outcome))
	if g.over {
		dst = append(dst, 1)
	} else {
		dst = append(dst, 0)
	}
	dst = binary.LittleEndian.AppendUint16(dst, uint16(len(g.history)))
	return append(dst, move.EncodeMoves(g.history)...)
}

func (g *Game[W]) String() string {
	var sb strings.Builder
	sb.WriteString(g.board.ToDisplayText())
	if g.over {
		fmt.Fprintf(&sb, "Game over: %s\n", g.outcome)
	} else {
		fmt.Fprintf(&sb, "%s to move\n", g.turn)
	}
	return sb.String()
}
