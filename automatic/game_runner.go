// Package automatic generates self-play games and the training rows
// derived from them.
package automatic

import (
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/game"
	"github.com/domino14/connect4/gamestore"
	"github.com/domino14/connect4/stats"
	"github.com/domino14/connect4/turnplayer"
	"github.com/domino14/connect4/zobrist"
)

// RowLength is the number of float32s in one training row: the encoded
// planes followed by the action taken and the final value.
func RowLength(width, height int) int {
	return game.PlaneBufferSize(width, height) + 2
}

// maxTrackedPositions caps the zobrist keys one runner remembers.
const maxTrackedPositions = 1 << 20

// GameRunner plays one game at a time on a fixed board size. A runner is
// owned by a single worker.
type GameRunner struct {
	width, height int
	rowLen        int
	zobrist       *zobrist.Zobrist
	rowPool       *sync.Pool

	seen       map[uint64]struct{}
	maxSeen    int
	seenCapped bool
	lengths    stats.Statistic
}

// GameResult is a finished game and its rows. Rows come from the runner's
// pool and should be handed back with ReleaseRows once written.
type GameResult struct {
	Record *gamestore.GameRecord
	Rows   [][]float32
	Length int
}

// NewGameRunner creates a runner. z is read-only and may be shared
// between runners.
func NewGameRunner(width, height int, z *zobrist.Zobrist) *GameRunner {
	rowLen := RowLength(width, height)
	return &GameRunner{
		width:   width,
		height:  height,
		rowLen:  rowLen,
		zobrist: z,
		rowPool: &sync.Pool{
			New: func() any {
				v := make([]float32, rowLen)
				return &v
			},
		},
		seen:    make(map[uint64]struct{}),
		maxSeen: maxTrackedPositions,
	}
}

// PlayGame plays a game of uniformly random legal moves. The same seed
// always produces the same game.
func (r *GameRunner) PlayGame(seed [32]byte) (*GameResult, error) {
	tp, err := turnplayer.NewTurnPlayer(r.width, r.height)
	if err != nil {
		return nil, err
	}
	rng := frand.NewCustom(seed[:], 1024, 12)
	planes := game.PlaneBufferSize(r.width, r.height)

	var rows [][]float32
	key := uint64(0)
	r.track(key)
	for !tp.IsOver() {
		legal := tp.LegalMoves()
		m := legal[rng.Intn(len(legal))]

		vecPtr := r.rowPool.Get().(*[]float32)
		row := *vecPtr
		tp.EncodeGamePlanesInto(row[:planes])
		row[planes] = float32(game.EncodeMove(m))
		rows = append(rows, row)

		mover := tp.Turn()
		if !tp.MakeMove(m) {
			return nil, fmt.Errorf("legal move %s rejected in %s", m.ShortDescription(), tp.Name())
		}
		key = r.zobrist.AddMove(key, m, mover)
		r.track(key)
	}

	// Value targets are from the point of view of the player to move at
	// each row; red moves on even plies.
	outcome := tp.Outcome()
	for i, row := range rows {
		mover := board.Red
		if i%2 == 1 {
			mover = board.Yellow
		}
		row[planes+1] = outcome.EncodeWinnerFromPerspective(mover)
	}

	r.lengths.Push(float64(len(rows)))
	rec := gamestore.NewRecord(tp, base64.RawURLEncoding.EncodeToString(seed[:]))
	log.Debug().Str("outcome", outcome.String()).Int("plies", len(rows)).Msg("game-finished")
	return &GameResult{Record: rec, Rows: rows, Length: len(rows)}, nil
}

// ReleaseRows returns the rows of res to the pool.
func (r *GameRunner) ReleaseRows(res *GameResult) {
	for _, row := range res.Rows {
		r.rowPool.Put(&row)
	}
	res.Rows = nil
}

// Lengths is the running statistic of game lengths in plies.
func (r *GameRunner) Lengths() *stats.Statistic {
	return &r.lengths
}

func (r *GameRunner) track(key uint64) {
	if _, ok := r.seen[key]; ok {
		return
	}
	if len(r.seen) >= r.maxSeen {
		r.seenCapped = true
		return
	}
	r.seen[key] = struct{}{}
}

// Seen returns the zobrist keys of the positions this runner has reached,
// the empty board included. Once maxTrackedPositions keys are held, new
// keys are dropped and SeenCapped reports true.
func (r *GameRunner) Seen() map[uint64]struct{} {
	return r.seen
}

func (r *GameRunner) SeenCapped() bool {
	return r.seenCapped
}
