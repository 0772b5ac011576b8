package automatic

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/domino14/connect4/config"
	"github.com/domino14/connect4/game"
	"github.com/domino14/connect4/gamestore"
)

func testConfig(games, threads int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigSelfplayGames, games)
	cfg.Set(config.ConfigSelfplayThreads, threads)
	return cfg
}

func TestStartSelfPlayGames(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	store, err := gamestore.Open(ctx, filepath.Join(t.TempDir(), "games.db"))
	is.NoErr(err)
	defer store.Close()

	var out bytes.Buffer
	summary, err := StartSelfPlayGames(ctx, testConfig(40, 3), &out, store)
	is.NoErr(err)

	is.Equal(summary.Games, 40)
	is.Equal(summary.Board, "7x6")
	is.Equal(summary.RedWins+summary.YellowWins+summary.Draws, 40)
	is.Equal(out.Len(), summary.Rows*RowLength(7, 6)*4)
	is.Equal(out.Len()%(RowLength(7, 6)*4), 0)
	is.Equal(SelfPlayCounter.Value(), int64(40))
	is.Equal(RowsEmitted.Value(), int64(summary.Rows))
	is.Equal(IsPlaying.Value(), int64(0))

	is.True(summary.MinLength >= 7)
	is.True(summary.MaxLength <= 42)
	is.True(summary.MeanLength >= float64(summary.MinLength))
	is.True(summary.RedWinRateLow <= summary.RedWinRate)
	is.True(summary.RedWinRate <= summary.RedWinRateHigh)
	is.True(summary.DistinctPositions > 40)

	counts, err := store.CountByOutcome(ctx)
	is.NoErr(err)
	is.Equal(counts[game.RedWin], summary.RedWins)
	is.Equal(counts[game.YellowWin], summary.YellowWins)
	is.Equal(counts[game.Draw], summary.Draws)
}

func TestSelfPlayFromSeedsIsReproducible(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	seeds, err := GenerateSeeds(12)
	is.NoErr(err)
	path := filepath.Join(t.TempDir(), "seeds.txt")
	is.NoErr(SaveSeeds(seeds, path))

	run := func(threads int) (*RunSummary, []byte) {
		cfg := testConfig(0, threads)
		cfg.Set(config.ConfigSeedsFile, path)
		cfg.Set(config.ConfigBoardWidth, 5)
		cfg.Set(config.ConfigBoardHeight, 4)
		var out bytes.Buffer
		s, err := StartSelfPlayGames(ctx, cfg, &out, nil)
		is.NoErr(err)
		return s, out.Bytes()
	}
	s1, out1 := run(1)
	s2, out2 := run(4)
	is.Equal(s1.Games, 12)
	is.Equal(s1.Board, "5x4")
	is.Equal(s1.RedWins, s2.RedWins)
	is.Equal(s1.Draws, s2.Draws)
	is.Equal(s1.Rows, s2.Rows)
	is.Equal(s1.DistinctPositions, s2.DistinctPositions)
	// workers finish in any order, so only the total output size is fixed
	is.Equal(len(out1), len(out2))
}

func TestSelfPlayRejectsBadBoard(t *testing.T) {
	cfg := testConfig(1, 1)
	cfg.Set(config.ConfigBoardWidth, 3)
	_, err := StartSelfPlayGames(context.Background(), cfg, nil, nil)
	assert.Error(t, err)
}

func TestSelfPlayCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary, err := StartSelfPlayGames(ctx, testConfig(5000, 2), nil, nil)
	is.NoErr(err)
	is.True(summary.Games < 5000)
}

func TestSummaryOutput(t *testing.T) {
	is := is.New(t)
	summary, err := StartSelfPlayGames(context.Background(), testConfig(25, 2), nil, nil)
	is.NoErr(err)

	bts, err := summary.YAML()
	is.NoErr(err)
	var back map[string]any
	is.NoErr(yaml.Unmarshal(bts, &back))
	is.Equal(back["games"], 25)
	is.Equal(back["board"], "7x6")
	is.True(!strings.Contains(string(bts), "lengths"))
	is.Equal(summary.InputShape, []int{17, 6, 7})
	is.True(!summary.DistinctCapped)
	is.True(strings.Contains(string(bts), "input_shape: [17, 6, 7]"))

	hist, err := summary.LengthHistogram()
	is.NoErr(err)
	is.True(len(hist) > 0)

	empty := &RunSummary{}
	hist, err = empty.LengthHistogram()
	is.NoErr(err)
	is.Equal(hist, "")
}

func TestSeedsRoundTrip(t *testing.T) {
	is := is.New(t)
	seeds, err := GenerateSeeds(5)
	is.NoErr(err)
	is.True(seeds[0] != seeds[1])

	var buf bytes.Buffer
	is.NoErr(WriteSeeds(&buf, seeds))
	is.True(strings.HasPrefix(buf.String(), "#"))
	back, err := ReadSeeds(&buf)
	is.NoErr(err)
	is.Equal(back, seeds)
}

func TestReadSeedsErrors(t *testing.T) {
	is := is.New(t)
	// padded encodings and blank lines are fine
	padded := strings.Repeat("A", 43) + "=\n\n"
	seeds, err := ReadSeeds(strings.NewReader(padded))
	is.NoErr(err)
	is.Equal(len(seeds), 1)

	_, err = ReadSeeds(strings.NewReader("AAAA\n"))
	is.True(err != nil)
	_, err = ReadSeeds(strings.NewReader("!!!\n"))
	is.True(err != nil)

	_, err = LoadSeeds(filepath.Join(t.TempDir(), "missing.txt"))
	is.True(errors.Is(err, fs.ErrNotExist))
}

func TestPlayJobsStopsWhenCancelled(t *testing.T) {
	is := is.New(t)
	r := newRunner(7, 6)
	jobs := make(chan job, 10)
	for i := range 10 {
		jobs <- job{idx: i, seed: [32]byte{byte(i)}}
	}
	results := make(chan workerResult, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	is.NoErr(playJobs(ctx, r, jobs, results))
	is.Equal(len(results), 0)
	is.Equal(len(jobs), 10)

	close(jobs)
	is.NoErr(playJobs(context.Background(), r, jobs, results))
	is.Equal(len(results), 10)
}
