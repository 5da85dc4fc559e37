package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"content_plan_bot/internal/model"
	"content_plan_bot/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// SQLite implements Storage backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := migrations.Run(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// RecordRun inserts a finished run and populates its ID.
func (s *SQLite) RecordRun(ctx context.Context, run *model.Run) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (trigger, day, outcome, posts, chunks, urgent, error, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(run.Trigger), run.Day, string(run.Outcome), run.Posts, run.Chunks, boolToInt(run.Urgent),
		run.Error, run.StartedAt.UTC().Format(timeLayout), run.FinishedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	run.ID = id
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLite) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trigger, day, outcome, posts, chunks, urgent, error, started_at, finished_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// HasRun reports whether a run with the given trigger was recorded for day.
func (s *SQLite) HasRun(ctx context.Context, day string, trigger model.Trigger) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM runs WHERE day = ? AND trigger = ?`, day, string(trigger),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count runs: %w", err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (model.Run, error) {
	var r model.Run
	var trigger, outcome, started, finished string
	var urgent int
	err := row.Scan(&r.ID, &trigger, &r.Day, &outcome, &r.Posts, &r.Chunks, &urgent, &r.Error, &started, &finished)
	if err != nil {
		return model.Run{}, fmt.Errorf("scan run: %w", err)
	}
	r.Trigger = model.Trigger(trigger)
	r.Outcome = model.Outcome(outcome)
	r.Urgent = urgent != 0
	if r.StartedAt, err = time.Parse(timeLayout, started); err != nil {
		return model.Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	if r.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
		return model.Run{}, fmt.Errorf("parse finished_at: %w", err)
	}
	return r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
