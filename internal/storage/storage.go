// Package storage defines the persistence interface and its implementations.
package storage

import (
	"context"

	"content_plan_bot/internal/model"
)

// Storage is the interface for run history persistence.
type Storage interface {
	RecordRun(ctx context.Context, run *model.Run) error
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)
	HasRun(ctx context.Context, day string, trigger model.Trigger) (bool, error)

	Close() error
}
