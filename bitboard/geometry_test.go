package bitboard

import (
	"testing"

	"github.com/matryer/is"
)

// cells builds a bitboard from (col, row) pairs on a board of width w.
func cells[W Words](w int, coords ...[2]int) Bitboard[W] {
	var b Bitboard[W]
	for _, c := range coords {
		b.Set(c[1]*w + c[0])
	}
	return b
}

func TestGeometry7x6(t *testing.T) {
	is := is.New(t)
	g := NewGeometry[[1]uint64](7, 6)
	is.Equal(g.Area, uint16(42))
	is.Equal(g.BoardMask.Count(), 42)
	for col := 0; col < 7; col++ {
		is.Equal(g.ColumnMasks[col].Count(), 6)
		is.True(g.ColumnMasks[col].Get(col))
		is.True(g.ColumnMasks[col].Get(5*7 + col))
	}
	for col := 7; col < MaxDimension; col++ {
		is.True(g.ColumnMasks[col].IsEmpty())
	}
	is.Equal(g.TopRowMask.Count(), 7)
	is.Equal(g.BottomRowMask.Count(), 7)
	is.True(g.BottomRowMask.Get(0))
	is.True(g.TopRowMask.Get(41))
	is.Equal(g.NotCol0.Count(), 36)
	is.Equal(g.NotColLast.Count(), 36)
	is.True(!g.NotCol0.Get(7))
	is.True(!g.NotColLast.Get(13))
}

func TestGeometryMultiWord(t *testing.T) {
	is := is.New(t)
	g := NewGeometry[[16]uint64](32, 32)
	is.Equal(g.BoardMask.Count(), 1024)
	is.Equal(g.ColumnMasks[31].Count(), 32)
	is.True(g.TopRowMask.Get(1023))

	g9 := NewGeometry[[2]uint64](9, 9)
	is.Equal(g9.BoardMask.Count(), 81)
	is.True(!g9.BoardMask.Get(81))
}

func TestGeometryWordMismatchPanics(t *testing.T) {
	is := is.New(t)
	defer func() {
		is.True(recover() != nil)
	}()
	NewGeometry[[1]uint64](9, 9)
}

func TestGeometryDimensionPanics(t *testing.T) {
	is := is.New(t)
	defer func() {
		is.True(recover() != nil)
	}()
	NewGeometry[[1]uint64](1, 6)
}

func TestHasFourHorizontal(t *testing.T) {
	is := is.New(t)
	g := NewGeometry[[1]uint64](7, 6)
	is.True(g.HasFourInARow(cells[[1]uint64](7, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0})))
	is.True(g.HasFourInARow(cells[[1]uint64](7, [2]int{3, 5}, [2]int{4, 5}, [2]int{5, 5}, [2]int{6, 5})))
	is.True(!g.HasFourInARow(cells[[1]uint64](7, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0})))
	is.True(!g.HasFourInARow(cells[[1]uint64](7, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{4, 0})))
}

func TestHasFourVertical(t *testing.T) {
	is := is.New(t)
	g := NewGeometry[[1]uint64](7, 6)
	is.True(g.HasFourInARow(cells[[1]uint64](7, [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3})))
	is.True(g.HasFourInARow(cells[[1]uint64](7, [2]int{6, 2}, [2]int{6, 3}, [2]int{6, 4}, [2]int{6, 5})))
	is.True(!g.HasFourInARow(cells[[1]uint64](7, [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2})))
}

func TestHasFourDiagonals(t *testing.T) {
	is := is.New(t)
	g := NewGeometry[[1]uint64](7, 6)
	asc := cells[[1]uint64](7, [2]int{0, 0}, [2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3})
	is.True(g.HasFourInARow(asc))
	desc := cells[[1]uint64](7, [2]int{3, 0}, [2]int{2, 1}, [2]int{1, 2}, [2]int{0, 3})
	is.True(g.HasFourInARow(desc))
	desc = cells[[1]uint64](7, [2]int{6, 2}, [2]int{5, 3}, [2]int{4, 4}, [2]int{3, 5})
	is.True(g.HasFourInARow(desc))
}

func TestNoWraparound(t *testing.T) {
	is := is.New(t)
	g := NewGeometry[[1]uint64](7, 6)

	// end of row 0 and start of row 1 are adjacent in bit index only
	horiz := cells[[1]uint64](7, [2]int{5, 0}, [2]int{6, 0}, [2]int{0, 1}, [2]int{1, 1})
	is.True(!g.HasFourInARow(horiz))
	horiz = cells[[1]uint64](7, [2]int{6, 0}, [2]int{0, 1}, [2]int{1, 1}, [2]int{2, 1})
	is.True(!g.HasFourInARow(horiz))

	asc := cells[[1]uint64](7, [2]int{5, 0}, [2]int{6, 1}, [2]int{0, 2}, [2]int{1, 3})
	is.True(!g.HasFourInARow(asc))

	desc := cells[[1]uint64](7, [2]int{1, 0}, [2]int{0, 1}, [2]int{6, 1}, [2]int{5, 2})
	is.True(!g.HasFourInARow(desc))
	desc = cells[[1]uint64](7, [2]int{1, 0}, [2]int{0, 1}, [2]int{6, 2}, [2]int{5, 3})
	is.True(!g.HasFourInARow(desc))
}

func TestHasFourAcrossWords(t *testing.T) {
	is := is.New(t)
	// 19x19: rows 3 and 4 straddle the first word boundary
	g := NewGeometry[[6]uint64](19, 19)
	vert := cells[[6]uint64](19, [2]int{7, 2}, [2]int{7, 3}, [2]int{7, 4}, [2]int{7, 5})
	is.True(g.HasFourInARow(vert))
	horiz := cells[[6]uint64](19, [2]int{16, 18}, [2]int{17, 18}, [2]int{18, 18}, [2]int{15, 18})
	is.True(g.HasFourInARow(horiz))
	wrap := cells[[6]uint64](19, [2]int{17, 3}, [2]int{18, 3}, [2]int{0, 4}, [2]int{1, 4})
	is.True(!g.HasFourInARow(wrap))
}

func TestSmallBoardsNeverWinHorizontally(t *testing.T) {
	is := is.New(t)
	g := NewGeometry[[1]uint64](3, 3)
	is.True(!g.HasFourInARow(g.BoardMask))
	g2 := NewGeometry[[1]uint64](2, 8)
	is.True(g2.HasFourInARow(g2.ColumnMasks[1]))
	is.True(!g2.HasFourInARow(g2.BottomRowMask.Or(g2.TopRowMask)))
}

func TestNeighbors(t *testing.T) {
	is := is.New(t)
	g := NewGeometry[[1]uint64](7, 6)

	// corner (0,0): right and up only
	n := g.Neighbors(cells[[1]uint64](7, [2]int{0, 0}))
	is.Equal(n.Count(), 2)
	is.True(n.Get(1))
	is.True(n.Get(7))

	// last column must not leak into the next row
	n = g.Neighbors(cells[[1]uint64](7, [2]int{6, 0}))
	is.Equal(n.Count(), 2)
	is.True(n.Get(5))
	is.True(n.Get(13))
	is.True(!n.Get(7))

	// interior
	n = g.Neighbors(cells[[1]uint64](7, [2]int{3, 2}))
	is.Equal(n.Count(), 4)

	// top-right corner stays on the board
	n = g.Neighbors(cells[[1]uint64](7, [2]int{6, 5}))
	is.Equal(n.Count(), 2)
	is.True(n.AndNot(g.BoardMask).IsEmpty())
}

func TestFloodFill(t *testing.T) {
	is := is.New(t)
	g := NewGeometry[[1]uint64](7, 6)

	// an L-shaped region plus a separate island
	region := cells[[1]uint64](7,
		[2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{2, 1}, [2]int{2, 2},
		[2]int{5, 5}, [2]int{6, 5})
	filled := g.FloodFill(cells[[1]uint64](7, [2]int{0, 0}), region)
	is.Equal(filled.Count(), 5)
	is.True(!filled.Get(5*7 + 5))

	island := g.FloodFill(cells[[1]uint64](7, [2]int{6, 5}), region)
	is.Equal(island.Count(), 2)

	// the seed is clipped to the mask
	is.True(g.FloodFill(cells[[1]uint64](7, [2]int{4, 4}), region).IsEmpty())

	// wrapped bits are not connected
	wrap := cells[[1]uint64](7, [2]int{6, 0}, [2]int{0, 1})
	is.Equal(g.FloodFill(cells[[1]uint64](7, [2]int{6, 0}), wrap).Count(), 1)

	// whole board from one seed
	is.True(g.FloodFill(cells[[1]uint64](7, [2]int{3, 3}), g.BoardMask).Equal(g.BoardMask))
}

func TestFloodFillMultiWord(t *testing.T) {
	is := is.New(t)
	g := NewGeometry[[16]uint64](32, 32)
	filled := g.FloodFill(Single[[16]uint64](0), g.ColumnMasks[0])
	is.Equal(filled.Count(), 32)
}

func TestWinningCells(t *testing.T) {
	is := is.New(t)
	g := NewGeometry[[1]uint64](7, 6)

	line := cells[[1]uint64](7, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0}, [2]int{4, 0}, [2]int{5, 0})
	noise := cells[[1]uint64](7, [2]int{0, 3}, [2]int{6, 4})
	got := g.WinningCells(line.Or(noise))
	is.True(got.Equal(line))

	diag := cells[[1]uint64](7, [2]int{6, 0}, [2]int{5, 1}, [2]int{4, 2}, [2]int{3, 3})
	is.True(g.WinningCells(diag).Equal(diag))

	wrap := cells[[1]uint64](7, [2]int{5, 0}, [2]int{6, 0}, [2]int{0, 1}, [2]int{1, 1})
	is.True(g.WinningCells(wrap).IsEmpty())
}
