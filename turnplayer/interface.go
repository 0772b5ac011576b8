package turnplayer

import (
	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/game"
	"github.com/domino14/connect4/move"
)

// TurnPlayer is a game whose board size was chosen at runtime. It hides
// the word count of the underlying bitboards behind one handle.
type TurnPlayer interface {
	Width() int
	Height() int
	Turn() board.Player
	IsOver() bool
	Outcome() game.Outcome
	History() []move.Move
	GetPiece(pos board.Position) board.Player
	SetPiece(pos board.Position, p board.Player)
	IsColumnFull(col int) bool
	ColumnHeight(col int) int

	LegalMoves() []move.Move
	IsLegalMove(m move.Move) bool
	MakeMove(m move.Move) bool
	UnmakeMove() bool

	// LegalActionIndices lists the legal actions as column indices.
	LegalActionIndices() []int
	// ApplyAction decodes and plays an action. It returns false if the
	// action is not playable.
	ApplyAction(action int) bool
	DecodeAction(action int) (move.Move, bool)
	ActionSize() int
	BoardShape() (height, width int)
	InputPlaneCount() int

	RewardAbsolute() float32
	RewardFromPerspective(p board.Player) float32

	EncodeGamePlanes() game.Planes
	EncodeGamePlanesInto(dst []float32)

	Name() string
	Hash() uint64
	WinningCells() []board.Position
	AppendStateBytes(dst []byte) []byte
	Copy() TurnPlayer
	String() string
}
