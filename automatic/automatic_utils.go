package automatic

// Self-play data collection: many random games in parallel, streamed out
// as training rows.

import (
	"bufio"
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/connect4/config"
	"github.com/domino14/connect4/game"
	"github.com/domino14/connect4/gamestore"
	"github.com/domino14/connect4/turnplayer"
	"github.com/domino14/connect4/zobrist"
)

var (
	SelfPlayCounter *expvar.Int
	RowsEmitted     *expvar.Int
	IsPlaying       *expvar.Int
)

func init() {
	SelfPlayCounter = expvar.NewInt("selfPlayCounter")
	RowsEmitted = expvar.NewInt("rowsEmitted")
	IsPlaying = expvar.NewInt("isPlaying")
}

const (
	bufSize    = 1 << 20
	flushEvery = 1000
)

type job struct {
	idx  int
	seed [32]byte
}

type workerResult struct {
	res    *GameResult
	runner *GameRunner
}

// StartSelfPlayGames plays the configured number of games across the
// configured number of workers. Training rows are written to out (if not
// nil) and finished games saved to store (if not nil). Cancelling ctx
// stops queueing new games; games already started are finished and
// counted.
func StartSelfPlayGames(ctx context.Context, cfg *config.Config, out io.Writer,
	store *gamestore.Store) (*RunSummary, error) {

	if IsPlaying.Value() > 0 {
		return nil, errors.New("games are already being played, please wait till complete")
	}

	opts := &turnplayer.GameOptions{}
	opts.SetDefaults(cfg)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var seeds [][32]byte
	var err error
	if path := cfg.GetString(config.ConfigSeedsFile); path != "" {
		seeds, err = LoadSeeds(path)
		log.Info().Str("path", path).Int("seeds", len(seeds)).Msg("loaded seeds")
	} else {
		seeds, err = GenerateSeeds(cfg.GetInt(config.ConfigSelfplayGames))
	}
	if err != nil {
		return nil, err
	}

	threads := cfg.GetInt(config.ConfigSelfplayThreads)
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	threads = min(threads, max(len(seeds), 1))
	log.Info().Int("games", len(seeds)).Int("threads", threads).
		Int("width", opts.Width).Int("height", opts.Height).Msg("starting self-play")

	z := &zobrist.Zobrist{}
	z.Initialize(opts.Width, opts.Height)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	SelfPlayCounter.Set(0)
	RowsEmitted.Set(0)
	jobs := make(chan job, 100)
	results := make(chan workerResult, threads*2)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i, seed := range seeds {
			select {
			case jobs <- job{idx: i, seed: seed}:
			case <-gctx.Done():
				log.Info().Int("queued", i).Msg("got stop signal, exiting soon...")
				return nil
			}
			if (i+1)%10000 == 0 {
				log.Info().Msgf("Queued %v jobs", i+1)
			}
		}
		log.Debug().Msg("finished queueing all jobs")
		return nil
	})

	runners := make([]*GameRunner, threads)
	var workers sync.WaitGroup
	for t := 0; t < threads; t++ {
		runners[t] = NewGameRunner(opts.Width, opts.Height, z)
		workers.Add(1)
		g.Go(func() error {
			defer workers.Done()
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			return playJobs(gctx, runners[t], jobs, results)
		})
	}
	go func() {
		workers.Wait()
		close(results)
	}()

	summary := newSummaryBuilder(opts.Width, opts.Height)
	var bw *bufio.Writer
	if out != nil {
		bw = bufio.NewWriterSize(out, bufSize)
	}
	// Games that finish after a stop signal are still saved.
	saveCtx := context.WithoutCancel(ctx)
	var writeErr error
	for wr := range results {
		if writeErr == nil {
			writeErr = emitGame(saveCtx, bw, store, wr.res)
			if writeErr != nil {
				log.Err(writeErr).Msg("error writing game; canceling")
				cancel()
			}
		}
		summary.add(wr.res)
		wr.runner.ReleaseRows(wr.res)
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if writeErr != nil {
		return nil, writeErr
	}
	if bw != nil {
		if err := bw.Flush(); err != nil {
			return nil, err
		}
	}
	for _, r := range runners {
		summary.addRunner(r)
	}
	log.Info().Int("games", summary.games).Int64("rows", RowsEmitted.Value()).Msg("all games finished")
	return summary.build(), nil
}

// playJobs plays queued games until jobs is closed or ctx is done. A game
// already being played is finished and sent.
func playJobs(ctx context.Context, r *GameRunner, jobs <-chan job, results chan<- workerResult) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		var j job
		var ok bool
		select {
		case j, ok = <-jobs:
			if !ok {
				return nil
			}
		case <-ctx.Done():
			return nil
		}
		res, err := r.PlayGame(j.seed)
		if err != nil {
			return fmt.Errorf("game %d: %w", j.idx, err)
		}
		results <- workerResult{res: res, runner: r}
		SelfPlayCounter.Add(1)
	}
}

func emitGame(ctx context.Context, bw *bufio.Writer, store *gamestore.Store, res *GameResult) error {
	if bw != nil {
		for _, row := range res.Rows {
			if err := game.BinaryWriteMLVector(bw, row); err != nil {
				return err
			}
			RowsEmitted.Add(1)
			if RowsEmitted.Value()%flushEvery == 0 {
				if err := bw.Flush(); err != nil {
					return err
				}
			}
		}
	}
	if store != nil {
		if err := store.SaveGame(ctx, res.Record); err != nil {
			return err
		}
	}
	return nil
}
