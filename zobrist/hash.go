package zobrist

import (
	"iter"

	"lukechampine.com/frand"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/move"
)

const bignum = 1<<63 - 2

// Zobrist generates incremental position keys.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	yellowToMove uint64

	posTable [][2]uint64
	width    int
}

// Initialize fills the tables from the global frand generator.
func (z *Zobrist) Initialize(width, height int) {
	z.initialize(width, height, frand.Uint64n)
}

// InitializeWithRNG fills the tables from rng, so two Zobrists built
// from the same seed produce the same keys.
func (z *Zobrist) InitializeWithRNG(width, height int, rng *frand.RNG) {
	z.initialize(width, height, rng.Uint64n)
}

func (z *Zobrist) initialize(width, height int, next func(uint64) uint64) {
	z.width = width
	z.posTable = make([][2]uint64, width*height)
	for i := range z.posTable {
		for p := 0; p < 2; p++ {
			z.posTable[i][p] = next(bignum) + 1
		}
	}
	z.yellowToMove = next(bignum) + 1
}

// Hash computes the key from scratch. red and yellow yield the occupied
// cell indices of each player, e.g. Bitboard.Ones().
func (z *Zobrist) Hash(red, yellow iter.Seq[int], yellowToMove bool) uint64 {
	key := uint64(0)
	for idx := range red {
		key ^= z.posTable[idx][board.Red]
	}
	for idx := range yellow {
		key ^= z.posTable[idx][board.Yellow]
	}
	if yellowToMove {
		key ^= z.yellowToMove
	}
	return key
}

// AddMove updates key for p playing m. Applying the same move again
// removes it, so this is also how a move is taken back.
func (z *Zobrist) AddMove(key uint64, m move.Move, p board.Player) uint64 {
	key ^= z.posTable[m.Position().Index(uint8(z.width))][p]
	key ^= z.yellowToMove
	return key
}
