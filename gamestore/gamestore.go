// Package gamestore keeps finished games in a SQLite database so a run's
// games can be inspected or replayed later.
package gamestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/domino14/connect4/game"
	"github.com/domino14/connect4/move"
	"github.com/domino14/connect4/turnplayer"
)

var (
	ErrNotFound       = errors.New("game not found")
	ErrReplayMismatch = errors.New("replayed game does not match record")
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY,
	width      INTEGER NOT NULL,
	height     INTEGER NOT NULL,
	moves      BLOB NOT NULL,
	outcome    INTEGER NOT NULL,
	seed       TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS games_outcome_idx ON games (outcome);
`

// GameRecord is one finished game.
type GameRecord struct {
	ID        string
	Width     int
	Height    int
	Moves     []move.Move
	Outcome   game.Outcome
	Seed      string
	CreatedAt time.Time
}

// NewRecord captures the current state of tp. The ID is left empty and
// assigned on save.
func NewRecord(tp turnplayer.TurnPlayer, seed string) *GameRecord {
	hist := tp.History()
	moves := make([]move.Move, len(hist))
	copy(moves, hist)
	return &GameRecord{
		Width:   tp.Width(),
		Height:  tp.Height(),
		Moves:   moves,
		Outcome: tp.Outcome(),
		Seed:    seed,
	}
}

// Replay plays the recorded moves on a fresh board and checks that the
// result matches the recorded outcome.
func (r *GameRecord) Replay() (turnplayer.TurnPlayer, error) {
	tp, err := turnplayer.NewTurnPlayer(r.Width, r.Height)
	if err != nil {
		return nil, err
	}
	for i, m := range r.Moves {
		if !tp.MakeMove(m) {
			return nil, fmt.Errorf("game %s move %d (%s): %w", r.ID, i, m.ShortDescription(), ErrReplayMismatch)
		}
	}
	if tp.Outcome() != r.Outcome {
		return nil, fmt.Errorf("game %s: replayed outcome %s, recorded %s: %w",
			r.ID, tp.Outcome(), r.Outcome, ErrReplayMismatch)
	}
	return tp, nil
}

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	log.Debug().Str("path", path).Msg("opened-gamestore")
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveGame inserts rec, assigning an ID and timestamp if they are unset.
func (s *Store) SaveGame(ctx context.Context, rec *GameRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (id, width, height, moves, outcome, seed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Width, rec.Height, move.EncodeMoves(rec.Moves),
		int(rec.Outcome), rec.Seed, rec.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving game %s: %w", rec.ID, err)
	}
	log.Debug().Str("id", rec.ID).Str("outcome", rec.Outcome.String()).
		Int("moves", len(rec.Moves)).Msg("saved-game")
	return nil
}

func (s *Store) LoadGame(ctx context.Context, id string) (*GameRecord, error) {
	var (
		rec     GameRecord
		blob    []byte
		outcome int
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, width, height, moves, outcome, seed, created_at FROM games WHERE id = ?`, id).
		Scan(&rec.ID, &rec.Width, &rec.Height, &blob, &outcome, &rec.Seed, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading game %s: %w", id, err)
	}
	rec.Moves, err = move.DecodeMoves(blob)
	if err != nil {
		return nil, fmt.Errorf("loading game %s: %w", id, err)
	}
	rec.Outcome = game.Outcome(outcome)
	rec.CreatedAt = time.Unix(0, created)
	return &rec, nil
}

// CountByOutcome returns how many stored games ended each way.
func (s *Store) CountByOutcome(ctx context.Context) (map[game.Outcome]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT outcome, COUNT(*) FROM games GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("counting games: %w", err)
	}
	defer rows.Close()
	counts := map[game.Outcome]int{}
	for rows.Next() {
		var outcome, n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("counting games: %w", err)
		}
		counts[game.Outcome(outcome)] = n
	}
	return counts, rows.Err()
}
