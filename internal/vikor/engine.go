// Package vikor ranks placement alternatives for individuals with the VIKOR
// multi-criteria method and allocates them under capacity limits.
package vikor

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Options configures an Engine.
type Options struct {
	Thresholds      Thresholds
	PriorityWeights PriorityWeights
	Key             KeyFunc

	// Parallelism bounds concurrent per-individual scoring. Zero uses GOMAXPROCS.
	Parallelism int
}

// DefaultOptions returns the stock engine configuration.
func DefaultOptions() Options {
	return Options{
		Thresholds:      DefaultThresholds(),
		PriorityWeights: DefaultPriorityWeights(),
		Key:             NameKey,
	}
}

// Engine runs the full placement pipeline.
type Engine struct {
	opts   Options
	logger *slog.Logger
}

// NewEngine creates an Engine with the given options.
func NewEngine(opts Options, logger *slog.Logger) *Engine {
	if opts.Key == nil {
		opts.Key = NameKey
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{opts: opts, logger: logger}
}

// Options returns the engine's configuration.
func (e *Engine) Options() Options { return e.opts }

// Run validates in, filters, scores and allocates every individual and
// assembles the result. Either the whole run succeeds or an error is returned
// before any scoring happens; ctx only cuts concurrent scoring short.
func (e *Engine) Run(ctx context.Context, in Input) (*Result, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	thresholds := e.opts.Thresholds
	if in.Thresholds != nil {
		thresholds = *in.Thresholds
	}

	e.logger.Info("vikor run started",
		"individuals", len(in.Individuals),
		"alternatives", len(in.Alternatives),
		"v", in.V,
	)

	qualified, disqualified := FilterEligible(in.Individuals, thresholds)

	scored := make([]ScoredIndividual, len(qualified))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Parallelism)
	for i, ind := range qualified {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			alts := ResolveDistances(ind, in.Alternatives, in.DistanceOverrides, e.opts.Key)
			scoring, err := Score(ind, alts, in.Weights, in.V)
			if err != nil {
				return err
			}
			scored[i] = ScoredIndividual{
				Individual: ind,
				Scoring:    scoring,
				Compromise: ValidateCompromise(scoring.Ranking),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, len(scored))
	for i, si := range scored {
		candidates[i] = Candidate{Individual: si.Individual, Ranking: si.Scoring.Ranking}
	}
	allocations, tracker := Allocate(candidates, in.Alternatives, e.opts.PriorityWeights)
	for _, a := range allocations {
		if a.Displaced || a.OverCapacity {
			e.logger.Debug("placement moved off top choice",
				"individual", a.Name,
				"top_choice", a.TopChoice.Code,
				"assigned", a.Assigned.Code,
				"over_capacity", a.OverCapacity,
			)
		}
	}

	res := Assemble(AssembleParams{
		Input:           in,
		Thresholds:      thresholds,
		PriorityWeights: e.opts.PriorityWeights,
		Scored:          scored,
		Disqualified:    disqualified,
		Allocations:     allocations,
		Tracker:         tracker,
	})

	e.logger.Info("vikor run finished",
		"qualified", res.Metadata.QualifiedCount,
		"disqualified", res.Metadata.DisqualifiedCount,
		"displaced", res.Metadata.DisplacedCount,
	)
	return res, nil
}
