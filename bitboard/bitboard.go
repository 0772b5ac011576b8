// Package bitboard implements the fixed-width bit-sets that back every
// board, and the per-geometry masks used to reason about them.
//
// A board of width*height cells is laid out row-major, index = row*width+col,
// with row 0 at the bottom. The word count of the backing array is
// ceil(width*height/64); see NWForBoard.
package bitboard

import (
	"encoding/binary"
	"fmt"
	"iter"
	"math/bits"
)

// MaxWords is the word count needed for the largest supported board (32x32).
const MaxWords = 16

// Words is the set of backing arrays a Bitboard can be instantiated with.
type Words interface {
	[1]uint64 | [2]uint64 | [3]uint64 | [4]uint64 |
		[5]uint64 | [6]uint64 | [7]uint64 | [8]uint64 |
		[9]uint64 | [10]uint64 | [11]uint64 | [12]uint64 |
		[13]uint64 | [14]uint64 | [15]uint64 | [16]uint64
}

// NWForBoard returns the number of 64-bit words needed for a board of
// the given dimensions.
func NWForBoard(width, height int) int {
	return (width*height + 63) / 64
}

// Bitboard is a fixed-size bit vector over the words of W. It is a value
// type; all operations that produce a new set return a copy.
type Bitboard[W Words] struct {
	words W
}

// Empty returns a Bitboard with no bits set.
func Empty[W Words]() Bitboard[W] {
	return Bitboard[W]{}
}

// Single returns a Bitboard with only bit i set.
func Single[W Words](i int) Bitboard[W] {
	var b Bitboard[W]
	b.Set(i)
	return b
}

// FromWords builds a Bitboard from raw words.
func FromWords[W Words](w W) Bitboard[W] {
	return Bitboard[W]{words: w}
}

// Words returns a copy of the raw words.
func (b Bitboard[W]) Words() W {
	return b.words
}

// NumWords is the word count of this instantiation.
func (b Bitboard[W]) NumWords() int {
	return len(b.words)
}

// Capacity is the number of addressable bits.
func (b Bitboard[W]) Capacity() int {
	return len(b.words) * 64
}

// Get reports whether bit i is set. i must be less than Capacity.
func (b Bitboard[W]) Get(i int) bool {
	return (b.words[i>>6]>>(uint(i)&63))&1 != 0
}

// Set sets bit i. i must be less than Capacity.
func (b *Bitboard[W]) Set(i int) {
	b.words[i>>6] |= 1 << (uint(i) & 63)
}

// Clear clears bit i. i must be less than Capacity.
func (b *Bitboard[W]) Clear(i int) {
	b.words[i>>6] &^= 1 << (uint(i) & 63)
}

func (b Bitboard[W]) IsEmpty() bool {
	for i := 0; i < len(b.words); i++ {
		if b.words[i] != 0 {
			return false
		}
	}
	return true
}

func (b Bitboard[W]) IsNonZero() bool {
	return !b.IsEmpty()
}

// Count is the population count across all words.
func (b Bitboard[W]) Count() int {
	n := 0
	for i := 0; i < len(b.words); i++ {
		n += bits.OnesCount64(b.words[i])
	}
	return n
}

// LowestBitIndex returns the index of the least significant set bit.
// ok is false if the set is empty.
func (b Bitboard[W]) LowestBitIndex() (idx int, ok bool) {
	for i := 0; i < len(b.words); i++ {
		if w := b.words[i]; w != 0 {
			return i*64 + bits.TrailingZeros64(w), true
		}
	}
	return 0, false
}

// ShiftLeft shifts every bit toward higher indices by n, treating the
// words as one big unsigned integer. Bits pushed past the top are lost.
func (b Bitboard[W]) ShiftLeft(n int) Bitboard[W] {
	if n < 0 {
		panic(fmt.Sprintf("bitboard: negative shift %d", n))
	}
	nw := len(b.words)
	if n == 0 {
		return b
	}
	if n >= nw*64 {
		return Bitboard[W]{}
	}
	ws, bs := n>>6, uint(n&63)
	var out W
	for i := nw - 1; i >= ws; i-- {
		out[i] = b.words[i-ws] << bs
		if bs != 0 && i > ws {
			out[i] |= b.words[i-ws-1] >> (64 - bs)
		}
	}
	return Bitboard[W]{words: out}
}

// ShiftRight shifts every bit toward lower indices by n. Bits pushed
// below index 0 are lost.
func (b Bitboard[W]) ShiftRight(n int) Bitboard[W] {
	if n < 0 {
		panic(fmt.Sprintf("bitboard: negative shift %d", n))
	}
	nw := len(b.words)
	if n == 0 {
		return b
	}
	if n >= nw*64 {
		return Bitboard[W]{}
	}
	ws, bs := n>>6, uint(n&63)
	var out W
	for i := 0; i < nw-ws; i++ {
		out[i] = b.words[i+ws] >> bs
		if bs != 0 && i+ws+1 < nw {
			out[i] |= b.words[i+ws+1] << (64 - bs)
		}
	}
	return Bitboard[W]{words: out}
}

func (b Bitboard[W]) And(o Bitboard[W]) Bitboard[W] {
	for i := 0; i < len(b.words); i++ {
		b.words[i] &= o.words[i]
	}
	return b
}

func (b Bitboard[W]) Or(o Bitboard[W]) Bitboard[W] {
	for i := 0; i < len(b.words); i++ {
		b.words[i] |= o.words[i]
	}
	return b
}

// AndNot returns b & ^o.
func (b Bitboard[W]) AndNot(o Bitboard[W]) Bitboard[W] {
	for i := 0; i < len(b.words); i++ {
		b.words[i] &^= o.words[i]
	}
	return b
}

// Not flips every bit in the full capacity, including bits beyond the
// board area. Mask the result if only board cells matter.
func (b Bitboard[W]) Not() Bitboard[W] {
	for i := 0; i < len(b.words); i++ {
		b.words[i] = ^b.words[i]
	}
	return b
}

func (b *Bitboard[W]) AndAssign(o Bitboard[W]) {
	for i := 0; i < len(b.words); i++ {
		b.words[i] &= o.words[i]
	}
}

func (b *Bitboard[W]) OrAssign(o Bitboard[W]) {
	for i := 0; i < len(b.words); i++ {
		b.words[i] |= o.words[i]
	}
}

func (b Bitboard[W]) Equal(o Bitboard[W]) bool {
	for i := 0; i < len(b.words); i++ {
		if b.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

// Ones returns an ascending sequence of the indices of the set bits. Each
// call starts over from a fresh copy of b, and the cost is proportional to
// the number of set bits.
func (b Bitboard[W]) Ones() iter.Seq[int] {
	return func(yield func(int) bool) {
		words := b.words
		for wi := 0; wi < len(words); wi++ {
			w := words[wi]
			for w != 0 {
				if !yield(wi*64 + bits.TrailingZeros64(w)) {
					return
				}
				w &= w - 1
			}
		}
	}
}

// AppendBytes appends the words to dst in little-endian order.
func (b Bitboard[W]) AppendBytes(dst []byte) []byte {
	for i := 0; i < len(b.words); i++ {
		dst = binary.LittleEndian.AppendUint64(dst, b.words[i])
	}
	return dst
}

func (b Bitboard[W]) String() string {
	idxs := make([]int, 0, b.Count())
	for i := range b.Ones() {
		idxs = append(idxs, i)
	}
	return fmt.Sprint(idxs)
}
