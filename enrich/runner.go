// Copyright 2025 The aihacks Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package enrich

import (
	"context"
	"log/slog"
	"time"

	"github.com/ltejedor/aihacks/ai"
	"github.com/ltejedor/aihacks/core"
)

const (
	// defaultMaxAttempts bounds each external call.
	defaultMaxAttempts = 3

	// defaultRetryDelay is the fixed delay between retry attempts.
	defaultRetryDelay = 5 * time.Second

	// defaultPacing is the delay between clusters, applied regardless of
	// outcome to respect external rate limits.
	defaultPacing = 3 * time.Second

	// defaultSaveEvery is the number of processed clusters between
	// checkpoint saves.
	defaultSaveEvery = 10
)

// Stats summarizes a runner invocation.
type Stats struct {
	Succeeded int // resources enriched and added to the output
	Failed    int // resources dropped after exhausting retries
	Skipped   int // resources already present in the checkpoint
	Discarded int // resources rated below the evergreen threshold
}

// Runner drives the rate-and-enrich stage across all organized resources.
// Per-resource failures are contained: no single resource aborts the batch.
type Runner struct {
	rater       ai.Rater
	enricher    ai.Enricher
	checkpoint  CheckpointStore
	maxAttempts int
	retryDelay  time.Duration
	pacing      time.Duration
	saveEvery   int
	logger      *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithMaxAttempts sets the retry bound for external calls. Default is 3.
func WithMaxAttempts(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithRetryDelay sets the fixed delay between retry attempts. Default is
// 5 seconds.
func WithRetryDelay(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d >= 0 {
			r.retryDelay = d
		}
	}
}

// WithPacing sets the delay applied between clusters. A non-positive value
// disables pacing. Default is 3 seconds.
func WithPacing(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.pacing = d
	}
}

// WithSaveEvery sets how many processed clusters elapse between checkpoint
// saves. Default is 10.
func WithSaveEvery(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.saveEvery = n
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a batch runner.
func NewRunner(rater ai.Rater, enricher ai.Enricher, checkpoint CheckpointStore, opts ...RunnerOption) (*Runner, error) {
	if rater == nil {
		return nil, ErrRaterRequired
	}
	if enricher == nil {
		return nil, ErrEnricherRequired
	}
	if checkpoint == nil {
		return nil, ErrCheckpointRequired
	}

	r := &Runner{
		rater:       rater,
		enricher:    enricher,
		checkpoint:  checkpoint,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
		pacing:      defaultPacing,
		saveEvery:   defaultSaveEvery,
		logger:      slog.Default().With("component", "enrich.runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run rates and enriches the given resources, resuming from the checkpoint.
// Resources already present in the checkpoint are skipped entirely, so a
// rerun never duplicates or reprocesses completed work. The accumulated
// result list is saved periodically and once more, unconditionally, at the
// end of the run.
func (r *Runner) Run(ctx context.Context, resources []*core.Resource) (Stats, error) {
	results, err := r.checkpoint.Load()
	if err != nil {
		return Stats{}, err
	}

	completed := make(map[string]struct{}, len(results))
	for _, res := range results {
		completed[res.ResourceID] = struct{}{}
	}
	if len(results) > 0 {
		r.logger.Info("resuming from checkpoint", "completed", len(results))
	}

	var stats Stats
	processed := 0

	for i, resource := range resources {
		if err := ctx.Err(); err != nil {
			// Preserve partial output before bailing out.
			if saveErr := r.checkpoint.Save(results); saveErr != nil {
				r.logger.Error("error saving checkpoint", "err", saveErr)
			}
			return stats, err
		}

		if _, done := completed[resource.ResourceID]; done {
			stats.Skipped++
			continue
		}

		r.logger.Info("processing resource",
			"index", i+1, "total", len(resources), "resource_id", resource.ResourceID)

		web, outcome := r.processOne(ctx, resource)
		switch outcome {
		case outcomeSucceeded:
			results = append(results, *web)
			stats.Succeeded++
		case outcomeFailed:
			stats.Failed++
		case outcomeDiscarded:
			stats.Discarded++
		}

		processed++
		if processed%r.saveEvery == 0 {
			if err := r.checkpoint.Save(results); err != nil {
				r.logger.Error("error saving checkpoint", "err", err)
			} else {
				r.logger.Info("saved progress",
					"succeeded", stats.Succeeded, "failed", stats.Failed)
			}
		}

		if err := r.pace(ctx); err != nil {
			if saveErr := r.checkpoint.Save(results); saveErr != nil {
				r.logger.Error("error saving checkpoint", "err", saveErr)
			}
			return stats, err
		}
	}

	// Final save happens even if zero new resources were added.
	if err := r.checkpoint.Save(results); err != nil {
		return stats, err
	}

	r.logger.Info("enrichment completed",
		"succeeded", stats.Succeeded, "failed", stats.Failed,
		"skipped", stats.Skipped, "discarded", stats.Discarded,
		"total", len(results))

	return stats, nil
}

type outcome int

const (
	outcomeSucceeded outcome = iota
	outcomeFailed
	outcomeDiscarded
)

// processOne rates one resource and, if it passes the evergreen threshold,
// enriches it. Both calls use the bounded fixed-delay retry policy.
func (r *Runner) processOne(ctx context.Context, resource *core.Resource) (*core.WebResource, outcome) {
	var rating int
	err := Retry(ctx, func() error {
		var rateErr error
		rating, rateErr = r.rater.RateResource(ctx, resource)
		return rateErr
	}, r.maxAttempts, r.retryDelay)
	if err != nil {
		r.logger.Warn("failed to rate resource",
			"resource_id", resource.ResourceID, "attempts", r.maxAttempts, "err", err)
		return nil, outcomeFailed
	}

	if rating < core.EvergreenThreshold {
		r.logger.Info("discarding resource with low evergreen rating",
			"resource_id", resource.ResourceID, "rating", rating)
		return nil, outcomeDiscarded
	}

	var enrichment *ai.Enrichment
	err = Retry(ctx, func() error {
		var enrichErr error
		enrichment, enrichErr = r.enricher.EnrichResource(ctx, resource, rating)
		return enrichErr
	}, r.maxAttempts, r.retryDelay)
	if err != nil {
		r.logger.Warn("failed to enrich resource",
			"resource_id", resource.ResourceID, "attempts", r.maxAttempts, "err", err)
		return nil, outcomeFailed
	}

	web := &core.WebResource{
		ResourceID:          resource.ResourceID,
		OriginalDescription: resource.ResourceDescription,
		Date:                resource.EarliestDate(),
		ReactionCount:       resource.TotalReactions(),
		EvergreenRating:     rating,
		Summary:             enrichment.Summary,
		Documentation:       enrichment.Documentation,
		Tags:                enrichment.Tags,
		Messages:            resource.Messages,
	}
	return web, outcomeSucceeded
}

func (r *Runner) pace(ctx context.Context) error {
	if r.pacing <= 0 {
		return nil
	}
	timer := time.NewTimer(r.pacing)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
