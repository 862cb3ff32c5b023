// Package batch runs a complete fixture generation pass and records what it
// wrote. A failed write aborts the pass; files written before the failure stay
// on disk and the run is recorded as failed.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"snpgen/internal/config"
	"snpgen/internal/export"
	"snpgen/internal/model"
	"snpgen/internal/storage"
	"snpgen/internal/topology"
)

type Config struct {
	Settings *config.Config
	// Store must already be initialized.
	Store  storage.Store
	Sink   export.Sink
	Logger *slog.Logger
	Now    func() time.Time
	NewID  func() string
	// SkipPrepare leaves directory creation to the caller.
	SkipPrepare bool
}

type Runner struct {
	settings    *config.Config
	store       storage.Store
	sink        export.Sink
	logger      *slog.Logger
	now         func() time.Time
	newID       func() string
	skipPrepare bool
}

func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Settings == nil {
		cfg.Settings = config.DefaultConfig()
	}
	if err := cfg.Settings.Validate(); err != nil {
		return nil, err
	}
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	if cfg.Sink == nil {
		cfg.Sink = export.FileSink{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	return &Runner{
		settings:    cfg.Settings,
		store:       cfg.Store,
		sink:        cfg.Sink,
		logger:      cfg.Logger,
		now:         cfg.Now,
		newID:       cfg.NewID,
		skipPrepare: cfg.SkipPrepare,
	}, nil
}

// Run generates every family and returns the final run record. The record is
// returned together with the error when generation fails part way.
func (r *Runner) Run(ctx context.Context) (model.RunRecord, error) {
	layout := export.Layout{Root: r.settings.Output.Root}
	run := model.RunRecord{
		VersionedRecord: storage.CurrentVersion(),
		ID:              r.newID(),
		OutputRoot:      layout.Root,
		StartedAtUTC:    r.timestamp(),
		Status:          model.RunStatusRunning,
	}
	logger := r.logger.With("run_id", run.ID)

	if !r.skipPrepare {
		if err := layout.Prepare(); err != nil {
			return run, fmt.Errorf("prepare output directories: %w", err)
		}
	}
	if err := r.store.SaveRun(ctx, run); err != nil {
		return run, fmt.Errorf("save run %s: %w", run.ID, err)
	}
	logger.Info("generation started", "output", layout.Root)

	emitter := &topology.FileEmitter{
		Sink:   r.sink,
		Layout: layout,
		OnWrite: func(ctx context.Context, f topology.Fixture) error {
			run.Fixtures++
			logger.Debug("fixture written", "path", f.Path, "bytes", f.Bytes)
			return r.store.SaveFixture(ctx, model.FixtureRecord{
				VersionedRecord: storage.CurrentVersion(),
				RunID:           run.ID,
				Family:          string(f.Family),
				Format:          string(f.Format),
				Path:            f.Path,
				Neurons:         f.Neurons,
				Synapses:        f.Synapses,
				Bytes:           f.Bytes,
			})
		},
	}
	gen, err := topology.New(r.settings.Params(), emitter, topology.WithLogger(logger))
	if err != nil {
		return run, err
	}

	genErr := gen.Run(ctx)

	run.FinishedAtUTC = r.timestamp()
	run.Status = model.RunStatusCompleted
	if genErr != nil {
		run.Status = model.RunStatusFailed
		run.Error = genErr.Error()
	}
	// Record the outcome even if ctx was cancelled mid-run.
	if err := r.store.SaveRun(context.WithoutCancel(ctx), run); err != nil {
		return run, errors.Join(genErr, fmt.Errorf("save run %s: %w", run.ID, err))
	}
	if genErr != nil {
		logger.Error("generation failed", "fixtures", run.Fixtures, "error", genErr)
		return run, genErr
	}
	logger.Info("generation finished", "fixtures", run.Fixtures)
	return run, nil
}

func (r *Runner) timestamp() string {
	return r.now().UTC().Format(time.RFC3339)
}
