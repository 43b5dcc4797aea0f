package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"pomo/internal/modules/history/domain"
	historyout "pomo/internal/modules/history/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteIndexProjector struct {
	db *sql.DB
}

func NewSQLiteIndexProjector(dbPath string) (historyout.IndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteIndexProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteIndexProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  path TEXT PRIMARY KEY,
  minutes INTEGER NOT NULL,
  note TEXT,
  started_at TEXT NOT NULL,
  ends_at TEXT NOT NULL,
  completed INTEGER NOT NULL,
  completed_at TEXT,
  canceled INTEGER NOT NULL,
  canceled_at TEXT
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteIndexProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	return nil
}

func (s *SQLiteIndexProjector) Upsert(ctx context.Context, record domain.Record) error {
	const stmt = `
INSERT INTO sessions (path, minutes, note, started_at, ends_at, completed, completed_at, canceled, canceled_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
  minutes=excluded.minutes,
  note=excluded.note,
  started_at=excluded.started_at,
  ends_at=excluded.ends_at,
  completed=excluded.completed,
  completed_at=excluded.completed_at,
  canceled=excluded.canceled,
  canceled_at=excluded.canceled_at;
`
	_, err := s.db.ExecContext(ctx, stmt,
		record.Path,
		record.Minutes,
		record.Note,
		record.StartedAt,
		record.EndsAt,
		record.Completed,
		record.CompletedAt,
		record.Canceled,
		record.CanceledAt,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *SQLiteIndexProjector) List(ctx context.Context, limit int) ([]domain.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
SELECT path, minutes, note, started_at, ends_at, completed, completed_at, canceled, canceled_at
FROM sessions ORDER BY started_at DESC LIMIT ?;
`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	records := []domain.Record{}
	for rows.Next() {
		record := domain.Record{}
		if err := rows.Scan(
			&record.Path,
			&record.Minutes,
			&record.Note,
			&record.StartedAt,
			&record.EndsAt,
			&record.Completed,
			&record.CompletedAt,
			&record.Canceled,
			&record.CanceledAt,
		); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *SQLiteIndexProjector) Stats(ctx context.Context) (domain.Stats, error) {
	const query = `
SELECT
  COUNT(*),
  COALESCE(SUM(completed), 0),
  COALESCE(SUM(canceled), 0),
  COALESCE(SUM(CASE WHEN completed = 0 AND canceled = 0 THEN 1 ELSE 0 END), 0),
  COALESCE(SUM(CASE WHEN completed = 1 THEN minutes ELSE 0 END), 0)
FROM sessions;
`
	stats := domain.Stats{}
	err := s.db.QueryRowContext(ctx, query).Scan(
		&stats.Total,
		&stats.Completed,
		&stats.Canceled,
		&stats.Open,
		&stats.FocusMinutes,
	)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("session stats: %w", err)
	}
	return stats, nil
}
