package storage

import (
	"context"

	"snpgen/internal/model"
)

// Store records generation runs and the fixtures each run wrote.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	// ListRuns returns runs newest first.
	ListRuns(ctx context.Context) ([]model.RunRecord, error)
	// SaveFixture upserts by (run id, path).
	SaveFixture(ctx context.Context, fixture model.FixtureRecord) error
	// ListFixtures returns a run's fixtures in the order they were first saved.
	ListFixtures(ctx context.Context, runID string) ([]model.FixtureRecord, error)
}
