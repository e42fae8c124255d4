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

package vectorize

import (
	"context"
	"log/slog"
	"time"

	"github.com/ltejedor/aihacks/ai"
	"github.com/ltejedor/aihacks/core"
	"github.com/ltejedor/aihacks/storage"
)

const (
	// defaultEmbedBatchSize is the number of texts per embedding request.
	defaultEmbedBatchSize = 100

	// defaultInsertChunk is the buffer flush threshold and the number of
	// rows per insert.
	defaultInsertChunk = 200

	// defaultEmbedPacing is the delay between embedding batches.
	defaultEmbedPacing = 1 * time.Second

	// defaultInsertPacing is the delay between inserts.
	defaultInsertPacing = 500 * time.Millisecond
)

// Stats summarizes an upload run.
type Stats struct {
	Chunks   int // chunks built from the input resources
	Uploaded int // rows actually inserted
	Skipped  int // rows already present in the store
	Failed   int // chunks lost to embedding or insert failures
}

// Uploader embeds resource chunks and persists the resulting rows.
type Uploader struct {
	embedder     ai.Embedder
	repo         storage.RowRepository
	batchSize    int
	insertChunk  int
	embedPacing  time.Duration
	insertPacing time.Duration
	logger       *slog.Logger
}

// UploaderOption configures an Uploader.
type UploaderOption func(*Uploader)

// WithBatchSize sets the number of texts per embedding request.
// Default is 100.
func WithBatchSize(n int) UploaderOption {
	return func(u *Uploader) {
		if n > 0 {
			u.batchSize = n
		}
	}
}

// WithInsertChunk sets the rows-per-insert size, which is also the buffer
// flush threshold. Default is 200.
func WithInsertChunk(n int) UploaderOption {
	return func(u *Uploader) {
		if n > 0 {
			u.insertChunk = n
		}
	}
}

// WithEmbedPacing sets the delay between embedding batches. A non-positive
// value disables pacing. Default is 1 second.
func WithEmbedPacing(d time.Duration) UploaderOption {
	return func(u *Uploader) {
		u.embedPacing = d
	}
}

// WithInsertPacing sets the delay between inserts. A non-positive value
// disables pacing. Default is 500 milliseconds.
func WithInsertPacing(d time.Duration) UploaderOption {
	return func(u *Uploader) {
		u.insertPacing = d
	}
}

// WithUploaderLogger sets a custom logger. Default is slog.Default().
func WithUploaderLogger(logger *slog.Logger) UploaderOption {
	return func(u *Uploader) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// NewUploader creates an embedding and upload pipeline.
func NewUploader(embedder ai.Embedder, repo storage.RowRepository, opts ...UploaderOption) (*Uploader, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	u := &Uploader{
		embedder:     embedder,
		repo:         repo,
		batchSize:    defaultEmbedBatchSize,
		insertChunk:  defaultInsertChunk,
		embedPacing:  defaultEmbedPacing,
		insertPacing: defaultInsertPacing,
		logger:       slog.Default().With("component", "vectorize.uploader"),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u, nil
}

// Run builds chunks from the resources, embeds them in batches, and inserts
// the rows. Embedding failures drop the affected batch; insert failures drop
// the affected sub-batch. Neither stops the run.
func (u *Uploader) Run(ctx context.Context, resources []core.WebResource) (Stats, error) {
	rows := BuildRows(resources)

	var stats Stats
	stats.Chunks = len(rows)
	if len(rows) == 0 {
		u.logger.Info("no text chunks to embed")
		return stats, nil
	}

	u.logger.Info("embedding and uploading chunks", "chunks", len(rows))

	var buffer []*core.ResourceRow
	for start := 0; start < len(rows); start += u.batchSize {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		end := start + u.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]

		texts := make([]string, len(batch))
		for i, row := range batch {
			texts[i] = row.Content
		}

		vectors, err := u.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			u.logger.Error("embedding batch failed, dropping batch",
				"batch_start", start, "size", len(batch), "err", err)
			stats.Failed += len(batch)
			continue
		}
		if len(vectors) != len(texts) {
			// Ordering correspondence cannot be trusted.
			u.logger.Error("embedding batch dropped",
				"batch_start", start, "want", len(texts), "got", len(vectors),
				"err", ErrEmbeddingCountMismatch)
			stats.Failed += len(batch)
			continue
		}

		for i, row := range batch {
			row.Vector = core.NormalizeVector(vectors[i])
			buffer = append(buffer, row)
		}

		if len(buffer) >= u.insertChunk {
			u.flush(ctx, buffer, &stats)
			buffer = buffer[:0]
		}

		if err := u.pace(ctx, u.embedPacing); err != nil {
			return stats, err
		}
	}

	if len(buffer) > 0 {
		u.flush(ctx, buffer, &stats)
	}

	u.logger.Info("upload complete",
		"chunks", stats.Chunks, "uploaded", stats.Uploaded,
		"skipped", stats.Skipped, "failed", stats.Failed)

	return stats, nil
}

// flush inserts buffered rows in sub-batches. Insert failures are logged
// and skipped, not retried.
func (u *Uploader) flush(ctx context.Context, rows []*core.ResourceRow, stats *Stats) {
	for start := 0; start < len(rows); start += u.insertChunk {
		end := start + u.insertChunk
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		added, err := u.repo.AddRows(ctx, chunk...)
		if err != nil {
			u.logger.Error("insert failed, dropping rows", "rows", len(chunk), "err", err)
			stats.Failed += len(chunk)
		} else {
			stats.Uploaded += len(added)
			stats.Skipped += len(chunk) - len(added)
		}

		if err := u.pace(ctx, u.insertPacing); err != nil {
			return
		}
	}
}

func (u *Uploader) pace(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
