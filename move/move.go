// Package move defines a single Connect-Four move and a compact binary
// record for move lists.
package move

import (
	"errors"
	"fmt"

	"github.com/domino14/connect4/board"
)

var ErrOddLength = errors.New("move record has odd length")

// Move is a piece landing at (Col, Row). Row is filled in by the game when
// the move is made; a move built from a host action only carries a valid
// row once it has been decoded against a position.
type Move struct {
	Col uint8
	Row uint8
}

func NewMove(col, row int) Move {
	return Move{Col: uint8(col), Row: uint8(row)}
}

func (m Move) Position() board.Position {
	return board.Position{Col: m.Col, Row: m.Row}
}

func (m Move) String() string {
	return fmt.Sprintf("col %d", m.Col)
}

// ShortDescription includes the landing row, e.g. "3@0".
func (m Move) ShortDescription() string {
	return fmt.Sprintf("%d@%d", m.Col, m.Row)
}

// EncodeMoves writes two bytes (col, row) per move.
func EncodeMoves(moves []Move) []byte {
	out := make([]byte, 0, 2*len(moves))
	for _, m := range moves {
		out = append(out, m.Col, m.Row)
	}
	return out
}

// DecodeMoves is the inverse of EncodeMoves.
func DecodeMoves(bts []byte) ([]Move, error) {
	if len(bts)%2 != 0 {
		return nil, fmt.Errorf("decoding %d bytes: %w", len(bts), ErrOddLength)
	}
	moves := make([]Move, len(bts)/2)
	for i := range moves {
		moves[i] = Move{Col: bts[2*i], Row: bts[2*i+1]}
	}
	return moves, nil
}
