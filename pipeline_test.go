package aihacks

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ltejedor/aihacks/ai"
	"github.com/ltejedor/aihacks/ai/mock"
	"github.com/ltejedor/aihacks/core"
	"github.com/ltejedor/aihacks/enrich"
	"github.com/ltejedor/aihacks/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipelineMessages() []core.Message {
	return []core.Message{
		{
			ID:        "m1",
			Timestamp: 100,
			Date:      "2025-03-01T09:00:00Z",
			Author:    "maya",
			Body:      "Found a great fine-tuning walkthrough: https://example.com/guide",
			Reactions: []core.Reaction{{Emoji: "🔥", Count: 2}},
		},
		{
			ID:        "m2",
			Timestamp: 200,
			Date:      "2025-03-01T09:05:00Z",
			Author:    "alex",
			Body:      "what time is standup?",
		},
		{
			ID:        "m3",
			Timestamp: 300,
			Date:      "2025-03-01T09:10:00Z",
			Author:    "priya",
			Body:      "the guide also covers LoRA configs, worth a read",
		},
	}
}

// resourceJudge clusters m1 and m3 together and ignores the chatter.
func resourceJudge() *mock.MockJudge {
	judge := mock.NewMockJudge()
	judge.JudgeMessageFunc = func(ctx context.Context, focal core.Message, window []core.Message) (*ai.Verdict, error) {
		if strings.Contains(focal.Body, "guide") {
			return &ai.Verdict{
				IsResource:          true,
				RelatedMessageIDs:   []string{"m1", "m3"},
				ResourceDescription: "Fine-tuning walkthrough with LoRA configs",
			}, nil
		}
		return &ai.Verdict{IsResource: false}, nil
	}
	return judge
}

func newTestPipeline(t *testing.T) (*Pipeline, *Database) {
	t.Helper()

	db, err := NewDatabase(filepath.Join(t.TempDir(), "pipeline_db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	enricher := mock.NewMockEnricher()
	checkpoint := enrich.NewFileCheckpoint(filepath.Join(t.TempDir(), "checkpoint.json"))

	p, err := NewPipeline(db, resourceJudge(), mock.NewMockRater(), enricher,
		mock.NewMockEmbedder(), checkpoint, WithPipelinePacing(0))
	require.NoError(t, err)
	return p, db
}

func TestNewPipeline_Validation(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)
	defer db.Close()

	judge := mock.NewMockJudge()
	rater := mock.NewMockRater()
	enricher := mock.NewMockEnricher()
	embedder := mock.NewMockEmbedder()
	checkpoint := enrich.NewFileCheckpoint(filepath.Join(t.TempDir(), "cp.json"))

	t.Run("nil database", func(t *testing.T) {
		_, err := NewPipeline(nil, judge, rater, enricher, embedder, checkpoint)
		assert.Error(t, err)
	})

	t.Run("nil judge", func(t *testing.T) {
		_, err := NewPipeline(db, nil, rater, enricher, embedder, checkpoint)
		assert.Error(t, err)
	})

	t.Run("nil checkpoint", func(t *testing.T) {
		_, err := NewPipeline(db, judge, rater, enricher, embedder, nil)
		assert.Error(t, err)
	})

	t.Run("all collaborators present", func(t *testing.T) {
		p, err := NewPipeline(db, judge, rater, enricher, embedder, checkpoint)
		require.NoError(t, err)
		assert.NotNil(t, p)
	})
}

func TestPipeline_EndToEnd(t *testing.T) {
	p, db := newTestPipeline(t)
	ctx := context.Background()

	stats, err := p.Run(ctx, pipelineMessages())
	require.NoError(t, err)

	// One cluster from m1+m3, chatter judged but not kept.
	assert.Equal(t, 1, stats.Organize.Created)
	assert.Equal(t, 1, stats.Enrich.Succeeded)
	assert.Equal(t, 1, stats.Vectorize.Uploaded)

	// The uploaded row is searchable.
	searcher, err := db.NewSearcher(mock.NewMockEmbedder())
	require.NoError(t, err)

	matches, err := searcher.Search(ctx, search.Query{Text: "fine-tuning walkthrough"})
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.Equal(t, 2, matches[0].Row.EvergreenRating)
}

func TestPipeline_RatingGate(t *testing.T) {
	p, _ := newTestPipeline(t)
	p.rater.(*mock.MockRater).RateResourceFunc = func(ctx context.Context, resource *core.Resource) (int, error) {
		return 1, nil
	}

	stats, err := p.Run(context.Background(), pipelineMessages())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Organize.Created)
	assert.Equal(t, 1, stats.Enrich.Discarded)
	assert.Equal(t, 0, stats.Vectorize.Uploaded)
}

func TestPipeline_RerunUploadsNothingNew(t *testing.T) {
	p, _ := newTestPipeline(t)
	ctx := context.Background()

	_, err := p.Run(ctx, pipelineMessages())
	require.NoError(t, err)

	stats, err := p.Run(ctx, pipelineMessages())
	require.NoError(t, err)

	// The merger remembers processed messages, the checkpoint skips the
	// enriched cluster, and the content-hash row IDs dedupe the upload.
	// Organize counters are cumulative: still one cluster, no new ones.
	assert.Equal(t, 1, stats.Organize.Created)
	assert.Equal(t, 1, stats.Enrich.Skipped)
	assert.Equal(t, 0, stats.Vectorize.Uploaded)
	assert.Equal(t, 1, stats.Vectorize.Skipped)
}
