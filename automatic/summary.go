package automatic

import (
	"bytes"
	"fmt"

	"github.com/aybabtme/uniplot/histogram"
	"gopkg.in/yaml.v3"

	"github.com/domino14/connect4/game"
	"github.com/domino14/connect4/stats"
)

const (
	histogramBins  = 15
	histogramWidth = 50
	winRateCI      = 95
)

// RunSummary describes a finished self-play run.
type RunSummary struct {
	Board             string  `yaml:"board"`
	Games             int     `yaml:"games"`
	RedWins           int     `yaml:"red_wins"`
	YellowWins        int     `yaml:"yellow_wins"`
	Draws             int     `yaml:"draws"`
	RedWinRate        float64 `yaml:"red_win_rate"`
	RedWinRateLow     float64 `yaml:"red_win_rate_low"`
	RedWinRateHigh    float64 `yaml:"red_win_rate_high"`
	MeanLength        float64 `yaml:"mean_length"`
	StdevLength       float64 `yaml:"stdev_length"`
	MinLength         int     `yaml:"min_length"`
	MaxLength         int     `yaml:"max_length"`
	Rows              int     `yaml:"rows"`
	DistinctPositions int     `yaml:"distinct_positions"`
	// DistinctCapped is set when a worker hit its position-tracking cap,
	// making DistinctPositions a lower bound.
	DistinctCapped bool  `yaml:"distinct_positions_capped"`
	InputShape     []int `yaml:"input_shape,flow"`

	lengths []float64
}

func (s *RunSummary) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// LengthHistogram draws the distribution of game lengths in plies.
func (s *RunSummary) LengthHistogram() (string, error) {
	if len(s.lengths) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	hist := histogram.Hist(histogramBins, s.lengths)
	if err := histogram.Fprint(&buf, hist, histogram.Linear(histogramWidth)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type summaryBuilder struct {
	width, height int
	games         int
	rows          int
	outcomes      map[game.Outcome]int
	lengths       stats.Statistic
	allLengths    []float64
	seen          map[uint64]struct{}
	capped        bool
	inputShape    []int
}

func newSummaryBuilder(width, height int) *summaryBuilder {
	return &summaryBuilder{
		width:    width,
		height:   height,
		outcomes: map[game.Outcome]int{},
		seen:     map[uint64]struct{}{},
	}
}

func (b *summaryBuilder) add(res *GameResult) {
	b.games++
	b.rows += len(res.Rows)
	b.outcomes[res.Record.Outcome]++
	b.allLengths = append(b.allLengths, float64(res.Length))
	if b.inputShape == nil && len(res.Rows) > 0 {
		b.inputShape = append([]int(nil), res.RowTensor(0).Shape()...)
	}
}

// addRunner folds in what a worker tracked across all of its games.
func (b *summaryBuilder) addRunner(r *GameRunner) {
	b.lengths.Merge(&r.lengths)
	for k := range r.seen {
		b.seen[k] = struct{}{}
	}
	b.capped = b.capped || r.SeenCapped()
}

func (b *summaryBuilder) build() *RunSummary {
	p, lo95, hi95 := stats.ProportionInterval(b.outcomes[game.RedWin], b.games, winRateCI)
	s := &RunSummary{
		Board:             fmt.Sprintf("%dx%d", b.width, b.height),
		Games:             b.games,
		RedWins:           b.outcomes[game.RedWin],
		YellowWins:        b.outcomes[game.YellowWin],
		Draws:             b.outcomes[game.Draw],
		RedWinRate:        p,
		RedWinRateLow:     lo95,
		RedWinRateHigh:    hi95,
		MeanLength:        b.lengths.Mean(),
		StdevLength:       b.lengths.Stdev(),
		Rows:              b.rows,
		DistinctPositions: len(b.seen),
		DistinctCapped:    b.capped,
		InputShape:        b.inputShape,
		lengths:           b.allLengths,
	}
	if b.lengths.Iterations() > 0 {
		s.MinLength = int(b.lengths.Min())
		s.MaxLength = int(b.lengths.Max())
	}
	return s
}
