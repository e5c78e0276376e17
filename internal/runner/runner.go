// Package runner executes placement requests end to end: the engine run,
// persistence, metrics and lifecycle events.
package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MikeSquared-Agency/Placement/internal/hermes"
	"github.com/MikeSquared-Agency/Placement/internal/metrics"
	"github.com/MikeSquared-Agency/Placement/internal/store"
	"github.com/MikeSquared-Agency/Placement/internal/vikor"
)

type Runner struct {
	engine   *vikor.Engine
	store    store.Store
	hermes   hermes.Client
	metrics  *metrics.Metrics
	defaults Defaults
	logger   *slog.Logger
}

// New wires a Runner. hermes and metrics may be nil.
func New(engine *vikor.Engine, s store.Store, h hermes.Client, m *metrics.Metrics, d Defaults, logger *slog.Logger) *Runner {
	return &Runner{engine: engine, store: s, hermes: h, metrics: m, defaults: d, logger: logger}
}

func (r *Runner) Defaults() Defaults { return r.defaults }

// IsInvalidInput reports whether err came from rejecting the caller's data
// rather than from the system.
func IsInvalidInput(err error) bool {
	return errors.Is(err, vikor.ErrInvalidWeights) ||
		errors.Is(err, vikor.ErrEmptyInput) ||
		errors.Is(err, vikor.ErrValidation)
}

// Execute runs req and stores the result. Nothing is stored when the engine
// rejects the input.
func (r *Runner) Execute(ctx context.Context, source store.RunSource, req Request) (*store.Run, error) {
	start := time.Now()

	in, err := req.Input(r.defaults)
	if err != nil {
		r.fail(source, err)
		return nil, err
	}
	res, err := r.engine.Run(ctx, in)
	if err != nil {
		r.fail(source, err)
		return nil, err
	}

	raw, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	run := store.NewRun(source, raw, res)
	if err := r.store.SaveRun(ctx, run); err != nil {
		r.fail(source, err)
		return nil, fmt.Errorf("save run: %w", err)
	}

	elapsed := time.Since(start)
	r.metrics.ObserveRun(res, elapsed)
	r.publish(hermes.SubjectRunCompleted(run.ID.String()), hermes.RunCompletedEvent{
		RunID:             run.ID.String(),
		Source:            string(source),
		TotalIndividuals:  run.TotalIndividuals,
		QualifiedCount:    run.QualifiedCount,
		DisqualifiedCount: run.DisqualifiedCount,
		AlternativeCount:  run.AlternativeCount,
		DisplacedCount:    run.DisplacedCount,
		OverCapacityCount: res.Metadata.OverCapacityCount,
		DurationMs:        elapsed.Milliseconds(),
		Timestamp:         time.Now().UTC(),
	})
	r.logger.Info("run stored", "run_id", run.ID, "source", source, "duration_ms", elapsed.Milliseconds())
	return run, nil
}

// HandleRequest is a hermes subscription handler for run requests.
func (r *Runner) HandleRequest(subject string, data []byte) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		r.logger.Warn("discarding malformed run request", "subject", subject, "error", err)
		r.fail(store.SourceEvents, fmt.Errorf("decode run request: %w", err))
		return
	}
	if _, err := r.Execute(context.Background(), store.SourceEvents, req); err != nil {
		r.logger.Warn("run request failed", "subject", subject, "error", err)
	}
}

func (r *Runner) fail(source store.RunSource, err error) {
	outcome := metrics.OutcomeFailed
	if IsInvalidInput(err) {
		outcome = metrics.OutcomeInvalid
	}
	r.metrics.ObserveFailure(outcome)
	r.publish(hermes.SubjectRunFailed, hermes.RunFailedEvent{
		Source:    string(source),
		Error:     err.Error(),
		Problems:  vikor.Problems(err),
		Timestamp: time.Now().UTC(),
	})
}

func (r *Runner) publish(subject string, event interface{}) {
	if r.hermes == nil {
		return
	}
	if err := r.hermes.Publish(subject, event); err != nil {
		r.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
