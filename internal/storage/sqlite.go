// Package storage provides the in-memory run ledger.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Nothing is written to disk: the ledger lives exactly as long as its Store.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// memoryDSN opens a private in-memory database.
const memoryDSN = ":memory:"

// Store records finished runs for the lifetime of the process.
// It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// RunEntry is a single finished run.
type RunEntry struct {
	ID        int64
	RunID     string
	Player    string
	Score     int
	Ticks     int
	CreatedAt time.Time
}

// RunStats aggregates the ledger.
type RunStats struct {
	Runs       int
	Players    int
	HighScore  int
	AvgScore   float64
	TotalTicks int64
}

// Open creates an empty in-memory ledger and runs migrations.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every connection to :memory: is a separate database, so keep exactly one
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection, discarding the ledger.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores a finished run and returns its generated run ID.
func (s *Store) RecordRun(player string, score, ticks int) (string, error) {
	runID := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO runs (run_id, player, score, ticks) VALUES (?, ?, ?, ?)",
		runID, player, score, ticks,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot record run: %w", err)
	}
	return runID, nil
}

// TopRuns retrieves the best N runs, highest score first.
// Equal scores keep the order in which they were recorded.
func (s *Store) TopRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, player, score, ticks, created_at
		 FROM runs
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.Player, &e.Score, &e.Ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the best score recorded by anyone.
// Returns 0 if no runs exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM runs").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// PlayerBest returns the best score recorded by player.
// Returns 0 if the player has no runs.
func (s *Store) PlayerBest(player string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE player = ?",
		player,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query player best: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats returns aggregated statistics over every recorded run.
func (s *Store) Stats() (RunStats, error) {
	var stats RunStats
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT player), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(ticks), 0)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.Players, &stats.HighScore, &stats.AvgScore, &stats.TotalTicks)
	if err != nil {
		return RunStats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
// SQLite stores CURRENT_TIMESTAMP in UTC; the result is in local time.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.Local()
	case string:
		if parsed, err := time.Parse(time.DateTime, t); err == nil {
			return parsed.Local()
		}
	}
	return time.Time{}
}
