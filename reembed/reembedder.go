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

package reembed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ltejedor/aihacks/ai"
	"github.com/ltejedor/aihacks/core"
	"github.com/ltejedor/aihacks/storage"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of rows to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of rows)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder orchestrates the reembedding of all resource rows in a database.
type Reembedder struct {
	repo      storage.RowRepository
	embedder  ai.Embedder
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *RowIterator
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(repo storage.RowRepository, embedder ai.Embedder, config *Config, progress io.Writer) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}

	processor := NewBatchProcessor(repo, embedder, config.MaxRetries, config.RetryDelay)
	iterator := NewRowIterator(repo, config.BatchSize)

	return &Reembedder{
		repo:      repo,
		embedder:  embedder,
		config:    config,
		progress:  progress,
		processor: processor,
		iterator:  iterator,
	}
}

// Run executes the reembedding operation.
// All resource rows in the database will be reembedded with the configured
// embedder. Progress is reported to the configured writer.
func (r *Reembedder) Run(ctx context.Context) error {
	allRows, err := r.repo.GetRowsByDateRange(ctx, "", "~")
	if err != nil {
		return fmt.Errorf("failed to query rows: %w", err)
	}

	totalRows := len(allRows)
	if totalRows == 0 {
		fmt.Fprintf(r.progress, "No rows found in database (0 rows)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d rows (batch size: %d)\n",
		totalRows, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, totalRows, r.config.ReportInterval)
	tracker.Start()

	processed := 0

	err = r.iterator.ForEach(ctx, func(rows []*core.ResourceRow) error {
		if err := r.processor.Process(ctx, rows); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		processed += len(rows)
		tracker.Update(processed)

		return nil
	})

	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d rows in %v (%.1f rows/sec)\n",
		totalRows, elapsed.Round(time.Second), float64(totalRows)/elapsed.Seconds())

	return nil
}
