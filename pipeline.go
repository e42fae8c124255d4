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


package aihacks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ltejedor/aihacks/ai"
	"github.com/ltejedor/aihacks/core"
	"github.com/ltejedor/aihacks/enrich"
	"github.com/ltejedor/aihacks/organize"
	"github.com/ltejedor/aihacks/vectorize"
)

// Pipeline runs the full curation flow over a batch of exported messages:
// organize clusters them into resources, enrich rates and summarizes the
// clusters, and vectorize uploads the results into the row store.
type Pipeline struct {
	db         *Database
	judge      ai.Judge
	rater      ai.Rater
	enricher   ai.Enricher
	embedder   ai.Embedder
	checkpoint enrich.CheckpointStore
	merger     *organize.Merger
	pacing     time.Duration
	logger     *slog.Logger
}

// PipelineStats aggregates per-stage statistics for one Run.
type PipelineStats struct {
	Organize  organize.Stats
	Enrich    enrich.Stats
	Vectorize vectorize.Stats
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithPipelinePacing overrides the inter-call delay used by every stage.
// Mostly useful for tests, where a zero pacing keeps runs fast.
func WithPipelinePacing(d time.Duration) PipelineOption {
	return func(p *Pipeline) {
		p.pacing = d
	}
}

// WithPipelineLogger sets the logger for pipeline-level events.
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline wires the three stages over an open Database. The checkpoint
// store carries enrichment state between runs, so an interrupted pipeline
// resumes instead of repeating paid API calls.
func NewPipeline(db *Database, judge ai.Judge, rater ai.Rater, enricher ai.Enricher,
	embedder ai.Embedder, checkpoint enrich.CheckpointStore, opts ...PipelineOption) (*Pipeline, error) {
	if db == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}
	if judge == nil {
		return nil, organize.ErrJudgeRequired
	}
	if rater == nil {
		return nil, enrich.ErrRaterRequired
	}
	if enricher == nil {
		return nil, enrich.ErrEnricherRequired
	}
	if embedder == nil {
		return nil, vectorize.ErrEmbedderRequired
	}
	if checkpoint == nil {
		return nil, enrich.ErrCheckpointRequired
	}

	p := &Pipeline{
		db:         db,
		judge:      judge,
		rater:      rater,
		enricher:   enricher,
		embedder:   embedder,
		checkpoint: checkpoint,
		pacing:     -1,
		logger:     slog.Default().With("component", "pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}

	// The merger lives for the lifetime of the pipeline so its processed
	// set carries across runs over a growing export.
	mergerOpts := []organize.MergerOption{organize.WithLogger(p.logger)}
	if p.pacing >= 0 {
		mergerOpts = append(mergerOpts, organize.WithPacing(p.pacing))
	}
	merger, err := organize.NewMerger(p.judge, mergerOpts...)
	if err != nil {
		return nil, err
	}
	p.merger = merger

	return p, nil
}

// Run executes organize, enrich, and vectorize in order and returns the
// combined statistics. A stage error aborts the run; statistics for the
// stages that completed are still returned.
func (p *Pipeline) Run(ctx context.Context, messages []core.Message) (PipelineStats, error) {
	var stats PipelineStats

	runnerOpts := []enrich.RunnerOption{enrich.WithLogger(p.logger)}
	uploaderOpts := []vectorize.UploaderOption{vectorize.WithUploaderLogger(p.logger)}
	if p.pacing >= 0 {
		runnerOpts = append(runnerOpts, enrich.WithPacing(p.pacing))
		uploaderOpts = append(uploaderOpts,
			vectorize.WithEmbedPacing(p.pacing), vectorize.WithInsertPacing(p.pacing))
	}

	resources, organizeStats, err := p.merger.Run(ctx, messages)
	stats.Organize = organizeStats
	if err != nil {
		return stats, fmt.Errorf("organize stage: %w", err)
	}
	p.logger.Info("organize stage complete",
		"resources", len(resources), "judged", organizeStats.Judged)

	runner, err := enrich.NewRunner(p.rater, p.enricher, p.checkpoint, runnerOpts...)
	if err != nil {
		return stats, err
	}

	enrichStats, err := runner.Run(ctx, resources)
	stats.Enrich = enrichStats
	if err != nil {
		return stats, fmt.Errorf("enrich stage: %w", err)
	}
	p.logger.Info("enrich stage complete",
		"succeeded", enrichStats.Succeeded, "discarded", enrichStats.Discarded)

	webResources, err := p.checkpoint.Load()
	if err != nil {
		return stats, fmt.Errorf("loading enriched resources: %w", err)
	}

	uploader, err := p.db.NewUploader(p.embedder, uploaderOpts...)
	if err != nil {
		return stats, err
	}

	vectorizeStats, err := uploader.Run(ctx, webResources)
	stats.Vectorize = vectorizeStats
	if err != nil {
		return stats, fmt.Errorf("vectorize stage: %w", err)
	}
	p.logger.Info("vectorize stage complete",
		"uploaded", vectorizeStats.Uploaded, "skipped", vectorizeStats.Skipped)

	return stats, nil
}
