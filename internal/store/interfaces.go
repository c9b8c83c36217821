package store

import (
	"context"

	"colcat/internal/models"
)

// RunStore persists categorization run history.
type RunStore interface {
	RecordRun(ctx context.Context, run *models.Run) error
	ListRuns(ctx context.Context, limit int) ([]*models.Run, error)
	Ping(ctx context.Context) error
	Close() error
}
