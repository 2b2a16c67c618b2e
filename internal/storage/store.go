package storage

import (
	"context"

	"qubench/internal/model"
)

// Store persists run records and per-challenge summaries.
type Store interface {
	Init(ctx context.Context) error
	Reset(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]model.RunRecord, error)
	SaveChallengeSummary(ctx context.Context, summary model.ChallengeSummary) error
	GetChallengeSummary(ctx context.Context, name string) (model.ChallengeSummary, bool, error)
	ListChallengeSummaries(ctx context.Context) ([]model.ChallengeSummary, error)
}

// DefaultStoreKind is the backend used when none is requested.
func DefaultStoreKind() string { return "memory" }

// CloseIfSupported closes backends that hold external resources.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
