package zobrist

import (
	"testing"

	"github.com/matryer/is"
	"lukechampine.com/frand"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/game"
)

func fullHash(z *Zobrist, g *game.Game[[1]uint64]) uint64 {
	b := g.Board()
	return z.Hash(b.Stones(board.Red).Ones(), b.Stones(board.Yellow).Ones(), g.Turn() == board.Yellow)
}

func TestHashAfterMakingPlay(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(7, 6)
	g := game.New[[1]uint64](7, 6)

	h := fullHash(z, g)
	is.Equal(h, uint64(0))
	for _, col := range []int{3, 3, 4, 2, 5, 0} {
		m, ok := game.DecodeMove(col, g)
		is.True(ok)
		mover := g.Turn()
		is.True(g.MakeMove(m))
		h = z.AddMove(h, m, mover)
		is.Equal(h, fullHash(z, g))
	}
}

func TestPlayAndUnplay(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(9, 9)
	g := game.New[[2]uint64](9, 9)

	var keys []uint64
	h := uint64(0)
	for _, col := range []int{8, 0, 8, 1, 4} {
		keys = append(keys, h)
		m, ok := game.DecodeMove(col, g)
		is.True(ok)
		h = z.AddMove(h, m, g.Turn())
		g.MakeMove(m)
	}
	// unplay in reverse order
	hist := g.History()
	for i := len(hist) - 1; i >= 0; i-- {
		is.True(h != keys[i])
		mover := board.Red
		if i%2 == 1 {
			mover = board.Yellow
		}
		h = z.AddMove(h, hist[i], mover)
		is.Equal(h, keys[i])
	}
}

func TestTranspositionsCollide(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(7, 6)

	hashOf := func(cols ...int) uint64 {
		g := game.New[[1]uint64](7, 6)
		h := uint64(0)
		for _, c := range cols {
			m, _ := game.DecodeMove(c, g)
			h = z.AddMove(h, m, g.Turn())
			g.MakeMove(m)
		}
		return h
	}
	is.Equal(hashOf(0, 1, 2, 3), hashOf(2, 3, 0, 1))
	is.True(hashOf(0, 1, 2, 3) != hashOf(1, 0, 2, 3))
}

func TestSeededTablesMatch(t *testing.T) {
	is := is.New(t)
	seed := make([]byte, 32)
	seed[0] = 7
	z1, z2 := &Zobrist{}, &Zobrist{}
	z1.InitializeWithRNG(7, 6, frand.NewCustom(seed, 1024, 12))
	z2.InitializeWithRNG(7, 6, frand.NewCustom(seed, 1024, 12))
	is.Equal(z1.posTable, z2.posTable)
	is.Equal(z1.yellowToMove, z2.yellowToMove)
	for _, row := range z1.posTable {
		is.True(row[0] != 0)
		is.True(row[1] != 0)
	}
}
