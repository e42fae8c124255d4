package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/ltejedor/aihacks/ai"
	"github.com/ltejedor/aihacks/core"
	"github.com/ltejedor/aihacks/storage"
)

// BatchProcessor handles embedding generation for batches of resource rows.
type BatchProcessor struct {
	repo           storage.RowRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.RowRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of rows and updates them in the
// database. Vectors are normalized after embedding to ensure compatibility
// with cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, rows []*core.ResourceRow) error {
	if len(rows) == 0 {
		return nil
	}

	texts := make([]string, len(rows))
	for i, row := range rows {
		texts[i] = row.Content
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(rows) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(rows), len(embeddings))
	}

	for i := range rows {
		rows[i].Vector = core.NormalizeVector(embeddings[i])
	}

	_, err = bp.repo.UpdateRows(ctx, rows...)
	if err != nil {
		return fmt.Errorf("failed to update rows: %w", err)
	}

	return nil
}
