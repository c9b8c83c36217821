package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"colcat/internal/models"
	"colcat/internal/store"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id             TEXT PRIMARY KEY,
	file_path      TEXT NOT NULL,
	column_name    TEXT NOT NULL,
	provider       TEXT NOT NULL,
	model          TEXT NOT NULL,
	item_count     INTEGER NOT NULL,
	chunk_count    INTEGER NOT NULL,
	fallback_count INTEGER NOT NULL,
	category_count INTEGER NOT NULL,
	cost_usd       REAL NOT NULL,
	created_at     TIMESTAMP NOT NULL
);`

// StoreImpl implements store.RunStore on a local SQLite database.
type StoreImpl struct {
	db *sql.DB
}

// NewRunStore opens (creating if needed) the SQLite run-history database at
// the given path. ":memory:" is accepted for tests.
func NewRunStore(ctx context.Context, path string) (*StoreImpl, error) {
	if path == "" {
		return nil, errors.New("history database path cannot be empty")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open history database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping history database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to initialize history schema: %w", err)
	}
	return &StoreImpl{db: db}, nil
}

func (s *StoreImpl) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *StoreImpl) Close() error {
	return s.db.Close()
}

func (s *StoreImpl) RecordRun(ctx context.Context, run *models.Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, file_path, column_name, provider, model,
			item_count, chunk_count, fallback_count, category_count, cost_usd, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.FilePath, run.Column, run.Provider, run.Model,
		run.ItemCount, run.ChunkCount, run.FallbackCount, run.CategoryCount, run.CostUSD, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

func (s *StoreImpl) ListRuns(ctx context.Context, limit int) ([]*models.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_path, column_name, provider, model,
			item_count, chunk_count, fallback_count, category_count, cost_usd, created_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		r := &models.Run{}
		if err := rows.Scan(&r.ID, &r.FilePath, &r.Column, &r.Provider, &r.Model,
			&r.ItemCount, &r.ChunkCount, &r.FallbackCount, &r.CategoryCount, &r.CostUSD, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w", err)
	}
	return runs, nil
}

var _ store.RunStore = (*StoreImpl)(nil)
