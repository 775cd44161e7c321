package experiment

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// Store persists records in a SQLite database.
type Store struct {
	conn   *sql.DB
	logger *zap.Logger
	path   string
}

// OpenStore opens or creates the database at path. logger may be nil.
func OpenStore(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open runs database: %w", err)
	}
	// One writer; concurrent runs queue on the pool instead of on SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &Store{conn: conn, logger: logger.Named("store"), path: path}
	if err := s.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize runs schema: %w", err)
	}
	s.logger.Debug("opened runs database", zap.String("path", path))

	return s, nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			run INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			planner TEXT NOT NULL,
			status TEXT NOT NULL,
			goals INTEGER NOT NULL,
			visited TEXT NOT NULL,
			path_length REAL NOT NULL,
			cost REAL NOT NULL,
			planning_seconds REAL NOT NULL,
			started_at TEXT NOT NULL,
			parameters TEXT NOT NULL,
			error TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_runs_planner ON runs(planner);
		CREATE INDEX IF NOT EXISTS idx_runs_run ON runs(run);
	`
	_, err := s.conn.Exec(schema)

	return err
}

// Insert stores r; a record with the same ID is replaced.
func (s *Store) Insert(ctx context.Context, r Record) error {
	if r.Visited == nil {
		r.Visited = []int{}
	}
	visited, err := json.Marshal(r.Visited)
	if err != nil {
		return fmt.Errorf("failed to encode visited goals: %w", err)
	}
	params, err := r.Parameters.JSON()
	if err != nil {
		return fmt.Errorf("failed to encode parameters: %w", err)
	}

	_, err = s.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs
			(id, run, seed, planner, status, goals, visited, path_length, cost, planning_seconds, started_at, parameters, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Run, r.Seed, r.Planner, r.Status, r.Goals, string(visited),
		r.Length, r.Cost, r.Seconds, r.StartedAt.UTC().Format(time.RFC3339Nano),
		string(params), nullString(r.Error),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", r.ID, err)
	}

	return nil
}

// List returns every record ordered by run and planner. An empty planner
// lists all planners.
func (s *Store) List(ctx context.Context, planner string) ([]Record, error) {
	query := `
		SELECT id, run, seed, planner, status, goals, visited, path_length, cost, planning_seconds, started_at, parameters, error
		FROM runs`
	var args []any
	if planner != "" {
		query += " WHERE planner = ?"
		args = append(args, planner)
	}
	query += " ORDER BY run, planner"

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return out, nil
}

// Summary aggregates the stored runs of one planner.
type Summary struct {
	Planner      string
	Runs         int
	MeanCost     float64
	MeanSeconds  float64
	GoalsVisited int
	GoalsTotal   int
}

// Summaries returns one Summary per planner, ordered by name. MeanCost
// covers successful runs only.
func (s *Store) Summaries(ctx context.Context) ([]Summary, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT planner,
			COUNT(*),
			COALESCE(AVG(CASE WHEN status = ? THEN cost END), 0),
			AVG(planning_seconds),
			SUM(json_array_length(visited)),
			SUM(goals)
		FROM runs
		GROUP BY planner
		ORDER BY planner`, StatusOK)
	if err != nil {
		return nil, fmt.Errorf("failed to summarise runs: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.Planner, &sm.Runs, &sm.MeanCost, &sm.MeanSeconds, &sm.GoalsVisited, &sm.GoalsTotal); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		out = append(out, sm)
	}

	return out, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}

	return nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var (
		r               Record
		visited, params string
		started         string
		errText         sql.NullString
	)
	if err := rows.Scan(&r.ID, &r.Run, &r.Seed, &r.Planner, &r.Status, &r.Goals, &visited,
		&r.Length, &r.Cost, &r.Seconds, &started, &params, &errText); err != nil {
		return Record{}, fmt.Errorf("failed to scan run: %w", err)
	}
	if err := json.Unmarshal([]byte(visited), &r.Visited); err != nil {
		return Record{}, fmt.Errorf("run %s: visited: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(params), &r.Parameters); err != nil {
		return Record{}, fmt.Errorf("run %s: parameters: %w", r.ID, err)
	}
	t, err := time.Parse(time.RFC3339Nano, started)
	if err != nil {
		return Record{}, fmt.Errorf("run %s: started_at: %w", r.ID, err)
	}
	r.StartedAt = t
	r.Error = errText.String

	return r, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
