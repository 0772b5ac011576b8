package bitboard

import "fmt"

const (
	MinDimension = 2
	MaxDimension = 32
)

// Geometry holds the masks precomputed for one board size. It is built
// once per game and never mutated afterwards, so it can be shared freely.
type Geometry[W Words] struct {
	Width  uint8
	Height uint8
	Area   uint16

	// BoardMask has a bit for every valid cell (indices 0..Area).
	BoardMask Bitboard[W]
	// NotCol0 is BoardMask minus column 0. Apply it after any shift whose
	// horizontal component is +1 column, to drop bits that wrapped from the
	// last column into the next row.
	NotCol0 Bitboard[W]
	// NotColLast is BoardMask minus the last column, for shifts whose
	// horizontal component is -1 column.
	NotColLast Bitboard[W]

	// ColumnMasks has every row of a column set. Entries at or past Width
	// are empty.
	ColumnMasks   [MaxDimension]Bitboard[W]
	TopRowMask    Bitboard[W]
	BottomRowMask Bitboard[W]
}

// NewGeometry builds the masks for a width x height board. It panics if
// either dimension is outside [MinDimension, MaxDimension] or if W does not
// have exactly NWForBoard(width, height) words.
func NewGeometry[W Words](width, height int) *Geometry[W] {
	if width < MinDimension || width > MaxDimension ||
		height < MinDimension || height > MaxDimension {
		panic(fmt.Sprintf("bitboard: unsupported board %dx%d", width, height))
	}
	var probe Bitboard[W]
	if need := NWForBoard(width, height); probe.NumWords() != need {
		panic(fmt.Sprintf("bitboard: %d words does not match board %dx%d (need %d)",
			probe.NumWords(), width, height, need))
	}
	area := width * height
	g := &Geometry[W]{
		Width:  uint8(width),
		Height: uint8(height),
		Area:   uint16(area),
	}
	for i := 0; i < area; i++ {
		g.BoardMask.Set(i)
	}
	g.NotCol0 = g.BoardMask
	g.NotColLast = g.BoardMask
	for row := 0; row < height; row++ {
		g.NotCol0.Clear(row * width)
		g.NotColLast.Clear(row*width + width - 1)
	}
	for col := 0; col < width; col++ {
		for row := 0; row < height; row++ {
			g.ColumnMasks[col].Set(row*width + col)
		}
		g.BottomRowMask.Set(col)
		g.TopRowMask.Set((height-1)*width + col)
	}
	return g
}

// Neighbors returns the orthogonal (4-connected) neighbors of every bit in
// bb, restricted to the board.
func (g *Geometry[W]) Neighbors(bb Bitboard[W]) Bitboard[W] {
	w := int(g.Width)
	right := bb.ShiftLeft(1).And(g.NotCol0)
	left := bb.ShiftRight(1).And(g.NotColLast)
	up := bb.ShiftLeft(w)
	down := bb.ShiftRight(w)
	return right.Or(left).Or(up).Or(down).And(g.BoardMask)
}

// FloodFill returns the 4-connected component of seed within mask.
func (g *Geometry[W]) FloodFill(seed, mask Bitboard[W]) Bitboard[W] {
	filled := seed.And(mask)
	for {
		expanded := filled.Or(g.Neighbors(filled)).And(mask)
		if expanded.Equal(filled) {
			return filled
		}
		filled = expanded
	}
}

// chainEnds returns the cells that end a run of four along the direction
// given by shift (in bit indices) and the boundary mask for that direction.
// A nil guard means the direction has no horizontal component.
func (g *Geometry[W]) chainEnds(bb Bitboard[W], shift int, guard *Bitboard[W]) Bitboard[W] {
	run := bb
	s := bb
	for range 3 {
		s = s.ShiftLeft(shift)
		if guard != nil {
			s = s.And(*guard)
		}
		run = run.And(s)
	}
	return run
}

// HasFourInARow reports whether bb contains four consecutive cells
// horizontally, vertically or along either diagonal.
func (g *Geometry[W]) HasFourInARow(bb Bitboard[W]) bool {
	w := int(g.Width)

	// Horizontal: col c -> c+1. Bits leaving the last column land in
	// column 0 of the next row.
	s1 := bb.ShiftLeft(1).And(g.NotCol0)
	h := bb.And(s1)
	s2 := s1.ShiftLeft(1).And(g.NotCol0)
	h = h.And(s2)
	s3 := s2.ShiftLeft(1).And(g.NotCol0)
	if h.And(s3).IsNonZero() {
		return true
	}

	// Vertical: a whole row, nothing can wrap.
	s1 = bb.ShiftLeft(w)
	v := bb.And(s1)
	s2 = s1.ShiftLeft(w)
	v = v.And(s2)
	s3 = s2.ShiftLeft(w)
	if v.And(s3).IsNonZero() {
		return true
	}

	// Ascending diagonal: (r, c) -> (r+1, c+1).
	s1 = bb.ShiftLeft(w + 1).And(g.NotCol0)
	d := bb.And(s1)
	s2 = s1.ShiftLeft(w + 1).And(g.NotCol0)
	d = d.And(s2)
	s3 = s2.ShiftLeft(w + 1).And(g.NotCol0)
	if d.And(s3).IsNonZero() {
		return true
	}

	// Descending diagonal: (r, c) -> (r+1, c-1). Column 0 wraps to the last
	// column of the same row.
	s1 = bb.ShiftLeft(w - 1).And(g.NotColLast)
	d = bb.And(s1)
	s2 = s1.ShiftLeft(w - 1).And(g.NotColLast)
	d = d.And(s2)
	s3 = s2.ShiftLeft(w - 1).And(g.NotColLast)
	return d.And(s3).IsNonZero()
}

// WinningCells returns every cell of bb that is part of at least one run of
// four. It is empty exactly when HasFourInARow is false.
func (g *Geometry[W]) WinningCells(bb Bitboard[W]) Bitboard[W] {
	w := int(g.Width)
	var cells Bitboard[W]
	dirs := [4]struct {
		shift int
		guard *Bitboard[W]
	}{
		{1, &g.NotCol0},
		{w, nil},
		{w + 1, &g.NotCol0},
		{w - 1, &g.NotColLast},
	}
	for _, dir := range dirs {
		ends := g.chainEnds(bb, dir.shift, dir.guard)
		// Every end is a valid cell whose three predecessors along the
		// direction are in bb, so walking back needs no masking.
		for k := 0; k < 4; k++ {
			cells.OrAssign(ends.ShiftRight(k * dir.shift))
		}
	}
	return cells
}
