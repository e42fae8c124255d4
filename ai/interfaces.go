package ai

import (
	"context"

	"github.com/ltejedor/aihacks/core"
)

// Judge classifies a focal chat message against its surrounding context and
// identifies which context messages belong to the same resource.
// Implementations are backed by an LLM and are inherently noisy: callers must
// treat a failed or malformed call as "not a resource" and move on.
type Judge interface {
	// JudgeMessage evaluates the focal message within its context window.
	// The window is ordered by timestamp and includes the focal message.
	// Returns an error for transport failures or unparseable model output.
	JudgeMessage(ctx context.Context, focal core.Message, window []core.Message) (*Verdict, error)
}

// Rater assigns a discrete evergreen-quality score to a finalized resource.
type Rater interface {
	// RateResource returns a rating on the 0-3 scale.
	// Returns an error for transport failures, empty responses, or ratings
	// outside the valid range.
	RateResource(ctx context.Context, resource *core.Resource) (int, error)
}

// Enricher derives structured content (summary, documentation, tags) from a
// finalized resource and its prior rating.
type Enricher interface {
	// EnrichResource returns the derived content for a resource.
	// Returns an error for transport failures or malformed model output.
	EnrichResource(ctx context.Context, resource *core.Resource, rating int) (*Enrichment, error)
}

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as the
	// input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
