// Package board holds the piece placement for a game: one bitboard per
// player plus the board dimensions. Geometric questions (gravity, wins) are
// answered with the help of a bitboard.Geometry passed in by the caller.
package board

import (
	"strconv"
	"strings"

	"github.com/domino14/connect4/bitboard"
)

const (
	StandardCols = 7
	StandardRows = 6
)

// Board is two disjoint bit-sets over the same cells. Width and height are
// stored alongside them so a Board can exist without a Geometry; callers
// must pair it with a Geometry of the same dimensions.
type Board[W bitboard.Words] struct {
	red    bitboard.Bitboard[W]
	yellow bitboard.Bitboard[W]
	width  uint8
	height uint8
}

func NewBoard[W bitboard.Words](width, height int) Board[W] {
	return Board[W]{width: uint8(width), height: uint8(height)}
}

func (b *Board[W]) Width() uint8 {
	return b.width
}

func (b *Board[W]) Height() uint8 {
	return b.height
}

// GetPiece returns the owner of pos, or NoPlayer if the cell is empty or
// off the board.
func (b *Board[W]) GetPiece(pos Position) Player {
	if !pos.IsValid(b.width, b.height) {
		return NoPlayer
	}
	idx := pos.Index(b.width)
	if b.red.Get(idx) {
		return Red
	}
	if b.yellow.Get(idx) {
		return Yellow
	}
	return NoPlayer
}

// SetPiece places p at pos without regard for gravity; NoPlayer empties
// the cell. Positions off the board are ignored.
func (b *Board[W]) SetPiece(pos Position, p Player) {
	if !pos.IsValid(b.width, b.height) {
		return
	}
	idx := pos.Index(b.width)
	b.red.Clear(idx)
	b.yellow.Clear(idx)
	switch p {
	case Red:
		b.red.Set(idx)
	case Yellow:
		b.yellow.Set(idx)
	}
}

func (b *Board[W]) Clear() {
	b.red = bitboard.Bitboard[W]{}
	b.yellow = bitboard.Bitboard[W]{}
}

// Stones returns the cells owned by p.
func (b *Board[W]) Stones(p Player) bitboard.Bitboard[W] {
	if p == Red {
		return b.red
	}
	return b.yellow
}

func (b *Board[W]) Occupied() bitboard.Bitboard[W] {
	return b.red.Or(b.yellow)
}

// setBit marks idx for p. The cell must be empty.
func (b *Board[W]) setBit(idx int, p Player) {
	if p == Red {
		b.red.Set(idx)
	} else {
		b.yellow.Set(idx)
	}
}

// DropPiece lets a piece for p fall into col and returns the row it
// landed on. ok is false, and nothing changes, if col is off the board or
// already full.
func (b *Board[W]) DropPiece(col uint8, p Player, geo *bitboard.Geometry[W]) (row uint8, ok bool) {
	if col >= b.width {
		return 0, false
	}
	free := geo.ColumnMasks[col].AndNot(b.Occupied())
	idx, ok := free.LowestBitIndex()
	if !ok {
		return 0, false
	}
	b.setBit(idx, p)
	return uint8(idx / int(b.width)), true
}

// ColumnHeight is the number of pieces in col.
func (b *Board[W]) ColumnHeight(col uint8, geo *bitboard.Geometry[W]) uint8 {
	if col >= b.width {
		return 0
	}
	return uint8(b.Occupied().And(geo.ColumnMasks[col]).Count())
}

// IsColumnFull is true if the top cell of col is taken. Columns off the
// board count as full.
func (b *Board[W]) IsColumnFull(col uint8, geo *bitboard.Geometry[W]) bool {
	if col >= b.width {
		return true
	}
	top := (int(b.height)-1)*int(b.width) + int(col)
	return b.Occupied().Get(top)
}

func (b *Board[W]) IsBoardFull(geo *bitboard.Geometry[W]) bool {
	return b.Occupied().And(geo.TopRowMask).Equal(geo.TopRowMask)
}

// CheckWin reports whether p has four in a row.
func (b *Board[W]) CheckWin(p Player, geo *bitboard.Geometry[W]) bool {
	return geo.HasFourInARow(b.Stones(p))
}

// ToDisplayText draws the board top row first, e.g.
//
//	|.|.|.|
//	|R|Y|.|
//	 0 1 2
func (b *Board[W]) ToDisplayText() string {
	var sb strings.Builder
	for row := int(b.height) - 1; row >= 0; row-- {
		sb.WriteByte('|')
		for col := 0; col < int(b.width); col++ {
			sb.WriteByte(b.GetPiece(NewPosition(col, row)).Char())
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte(' ')
	for col := 0; col < int(b.width); col++ {
		sb.WriteString(strconv.Itoa(col))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')
	return sb.String()
}

func (b Board[W]) String() string {
	return b.ToDisplayText()
}

// AppendBytes appends the red then yellow words, little-endian.
func (b *Board[W]) AppendBytes(dst []byte) []byte {
	dst = b.red.AppendBytes(dst)
	return b.yellow.AppendBytes(dst)
}
