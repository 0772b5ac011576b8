package turnplayer

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/connect4/bitboard"
	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/config"
)

// The host accepts a narrower range than the engine; boards smaller than
// 4x4 cannot hold a line of four in every direction.
const (
	MinHostDimension = 4
	MaxHostDimension = bitboard.MaxDimension
)

var ErrInvalidDimensions = errors.New("invalid board dimensions")

type GameOptions struct {
	Width  int
	Height int
}

func (opts *GameOptions) SetDefaults(cfg *config.Config) {
	if opts.Width == 0 {
		opts.Width = cfg.GetInt(config.ConfigBoardWidth)
		log.Debug().Int("width", opts.Width).Msg("using default board width")
	}
	if opts.Height == 0 {
		opts.Height = cfg.GetInt(config.ConfigBoardHeight)
		log.Debug().Int("height", opts.Height).Msg("using default board height")
	}
}

func (opts *GameOptions) Validate() error {
	if opts.Width < MinHostDimension || opts.Width > MaxHostDimension ||
		opts.Height < MinHostDimension || opts.Height > MaxHostDimension {
		return fmt.Errorf("%dx%d outside [%d, %d]: %w", opts.Width, opts.Height,
			MinHostDimension, MaxHostDimension, ErrInvalidDimensions)
	}
	return nil
}

// Standard returns an empty 7x6 game.
func Standard() TurnPlayer {
	return newBase[[1]uint64](board.StandardCols, board.StandardRows)
}

func NewTurnPlayerFromOptions(opts *GameOptions) (TurnPlayer, error) {
	return NewTurnPlayer(opts.Width, opts.Height)
}

// NewTurnPlayer creates an empty game of the given size, choosing the
// bitboard word count from the board area.
func NewTurnPlayer(width, height int) (TurnPlayer, error) {
	opts := &GameOptions{Width: width, Height: height}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	switch bitboard.NWForBoard(width, height) {
	case 1:
		return newBase[[1]uint64](width, height), nil
	case 2:
		return newBase[[2]uint64](width, height), nil
	case 3:
		return newBase[[3]uint64](width, height), nil
	case 4:
		return newBase[[4]uint64](width, height), nil
	case 5:
		return newBase[[5]uint64](width, height), nil
	case 6:
		return newBase[[6]uint64](width, height), nil
	case 7:
		return newBase[[7]uint64](width, height), nil
	case 8:
		return newBase[[8]uint64](width, height), nil
	case 9:
		return newBase[[9]uint64](width, height), nil
	case 10:
		return newBase[[10]uint64](width, height), nil
	case 11:
		return newBase[[11]uint64](width, height), nil
	case 12:
		return newBase[[12]uint64](width, height), nil
	case 13:
		return newBase[[13]uint64](width, height), nil
	case 14:
		return newBase[[14]uint64](width, height), nil
	case 15:
		return newBase[[15]uint64](width, height), nil
	case 16:
		return newBase[[16]uint64](width, height), nil
	}
	return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidDimensions)
}
