package automatic

import (
	"gorgonia.org/tensor"

	"github.com/domino14/connect4/game"
)

// PlanesTensor wraps encoded planes in a dense (planes, height, width)
// tensor that shares p.Data.
func PlanesTensor(p game.Planes) *tensor.Dense {
	return tensor.New(tensor.WithShape(p.NumPlanes, p.Height, p.Width),
		tensor.WithBacking(p.Data))
}

// RowTensor is the input part of row i of a game, shaped like
// PlanesTensor. It shares the row, so it is only valid until the rows are
// released.
func (res *GameResult) RowTensor(i int) *tensor.Dense {
	w, h := res.Record.Width, res.Record.Height
	return PlanesTensor(game.Planes{
		Data:      res.Rows[i][:game.PlaneBufferSize(w, h)],
		NumPlanes: game.TotalInputPlanes,
		Height:    h,
		Width:     w,
	})
}
