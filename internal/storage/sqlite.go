// Package storage provides SQLite-based persistence for completed maze runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run records.
type Store struct {
	db *sql.DB
}

// Run is one completed maze: from reset to reaching the goal.
type Run struct {
	ID         int64         `json:"id"`
	Player     string        `json:"player"`
	Difficulty string        `json:"difficulty"`
	Moves      int           `json:"moves"`
	Duration   time.Duration `json:"duration"`
	Cols       int           `json:"cols"`
	Rows       int           `json:"rows"`
	Seed       int64         `json:"seed"`
	CreatedAt  time.Time     `json:"created_at"`
}

// DifficultyStats contains aggregated statistics for one difficulty.
type DifficultyStats struct {
	Difficulty   string        `json:"difficulty"`
	Wins         int           `json:"wins"`
	BestMoves    int           `json:"best_moves"`
	AvgMoves     float64       `json:"avg_moves"`
	BestDuration time.Duration `json:"best_duration"`
	LastPlayed   time.Time     `json:"last_played"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

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
			player TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL,
			moves INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			cols INTEGER NOT NULL,
			rows INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_difficulty ON runs(difficulty);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(difficulty, moves, duration_ms);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a completed run and returns its ID.
func (s *Store) SaveRun(run Run) (int64, error) {
	if run.Difficulty == "" {
		return 0, errors.New("storage: run difficulty is required")
	}
	if run.Moves < 0 {
		return 0, fmt.Errorf("storage: negative move count %d", run.Moves)
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (player, difficulty, moves, duration_ms, cols, rows, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.Player, run.Difficulty, run.Moves, run.Duration.Milliseconds(),
		run.Cols, run.Rows, run.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the best runs, fewest moves first, ties broken by time.
// An empty difficulty selects runs of every difficulty.
func (s *Store) TopRuns(difficulty string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, difficulty, moves, duration_ms, cols, rows, seed, created_at
		 FROM runs
		 WHERE ? = '' OR difficulty = ?
		 ORDER BY moves ASC, duration_ms ASC, id ASC
		 LIMIT ?`,
		difficulty, difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestRun returns the top run for the given difficulty, or nil if none exist.
func (s *Store) BestRun(difficulty string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, player, difficulty, moves, duration_ms, cols, rows, seed, created_at
		 FROM runs
		 WHERE difficulty = ?
		 ORDER BY moves ASC, duration_ms ASC, id ASC
		 LIMIT 1`,
		difficulty,
	)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// DifficultyStats retrieves win statistics for every difficulty that has runs.
func (s *Store) DifficultyStats() (map[string]*DifficultyStats, error) {
	rows, err := s.db.Query(
		`SELECT difficulty, COUNT(*), MIN(moves), AVG(moves), MIN(duration_ms), MAX(created_at)
		 FROM runs
		 GROUP BY difficulty`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get difficulty stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*DifficultyStats)
	for rows.Next() {
		var st DifficultyStats
		var bestMs int64
		var lastPlayed any
		if err := rows.Scan(&st.Difficulty, &st.Wins, &st.BestMoves, &st.AvgMoves, &bestMs, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.BestDuration = time.Duration(bestMs) * time.Millisecond
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Difficulty] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearRuns deletes the runs of one difficulty, or every run when difficulty
// is empty. It returns the number of deleted runs.
func (s *Store) ClearRuns(difficulty string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR difficulty = ?", difficulty, difficulty)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared runs: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var durationMs int64
	var createdAt any

	err := row.Scan(
		&run.ID,
		&run.Player,
		&run.Difficulty,
		&run.Moves,
		&durationMs,
		&run.Cols,
		&run.Rows,
		&run.Seed,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return run, err
	}
	if err != nil {
		return run, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	run.Duration = time.Duration(durationMs) * time.Millisecond
	run.CreatedAt = parseTime(createdAt)
	return run, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
