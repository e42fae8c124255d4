package enrich

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ltejedor/aihacks/ai"
	"github.com/ltejedor/aihacks/ai/mock"
	"github.com/ltejedor/aihacks/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResource(id string) *core.Resource {
	return &core.Resource{
		ResourceID:          id,
		ResourceDescription: "a discussion about " + id,
		Messages: []core.Message{
			{ID: id + "-m1", Timestamp: 100, Date: "2025-04-01T00:00:00Z", Author: "alice", Body: "first", ReactionCount: 2},
			{ID: id + "-m2", Timestamp: 200, Date: "2025-04-02T00:00:00Z", Author: "bob", Body: "second", ReactionCount: 1},
		},
	}
}

func newTestRunner(t *testing.T, rater ai.Rater, enricher ai.Enricher, cp CheckpointStore, opts ...RunnerOption) *Runner {
	t.Helper()
	opts = append([]RunnerOption{WithRetryDelay(0), WithPacing(0)}, opts...)
	runner, err := NewRunner(rater, enricher, cp, opts...)
	require.NoError(t, err)
	return runner
}

func TestNewRunnerValidation(t *testing.T) {
	cp := NewFileCheckpoint(filepath.Join(t.TempDir(), "cp.json"))

	_, err := NewRunner(nil, mock.NewMockEnricher(), cp)
	assert.ErrorIs(t, err, ErrRaterRequired)

	_, err = NewRunner(mock.NewMockRater(), nil, cp)
	assert.ErrorIs(t, err, ErrEnricherRequired)

	_, err = NewRunner(mock.NewMockRater(), mock.NewMockEnricher(), nil)
	assert.ErrorIs(t, err, ErrCheckpointRequired)
}

func TestRunnerEnrichesResources(t *testing.T) {
	cp := NewFileCheckpoint(filepath.Join(t.TempDir(), "cp.json"))
	runner := newTestRunner(t, mock.NewMockRater(), mock.NewMockEnricher(), cp)

	stats, err := runner.Run(context.Background(), []*core.Resource{testResource("r1"), testResource("r2")})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Succeeded)
	assert.Equal(t, 0, stats.Failed)

	results, err := cp.Load()
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Derived fields come from the member messages.
	assert.Equal(t, "2025-04-01T00:00:00Z", results[0].Date)
	assert.Equal(t, 3, results[0].ReactionCount)
	assert.Equal(t, 2, results[0].EvergreenRating)
	assert.NotEmpty(t, results[0].Summary.Title)
}

func TestRunnerResumeSkipsCompleted(t *testing.T) {
	cp := NewFileCheckpoint(filepath.Join(t.TempDir(), "cp.json"))

	// First run completes r1.
	rater := mock.NewMockRater()
	runner := newTestRunner(t, rater, mock.NewMockEnricher(), cp)
	_, err := runner.Run(context.Background(), []*core.Resource{testResource("r1")})
	require.NoError(t, err)
	callsAfterFirst := rater.CallCount()

	// Second run sees r1 plus a new r2. r1 must not be reprocessed.
	stats, err := runner.Run(context.Background(), []*core.Resource{testResource("r1"), testResource("r2")})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.Succeeded)
	assert.Equal(t, callsAfterFirst+1, rater.CallCount())

	results, err := cp.Load()
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "r1", results[0].ResourceID)
	assert.Equal(t, "r2", results[1].ResourceID)
}

func TestRunnerRatingGate(t *testing.T) {
	cp := NewFileCheckpoint(filepath.Join(t.TempDir(), "cp.json"))

	ratings := map[string]int{"low": 1, "kept": 2, "high": 3}
	rater := mock.NewMockRater()
	rater.RateResourceFunc = func(ctx context.Context, resource *core.Resource) (int, error) {
		return ratings[resource.ResourceID], nil
	}
	enricher := mock.NewMockEnricher()
	runner := newTestRunner(t, rater, enricher, cp)

	stats, err := runner.Run(context.Background(), []*core.Resource{
		testResource("low"), testResource("kept"), testResource("high"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Succeeded)
	assert.Equal(t, 1, stats.Discarded)
	assert.Equal(t, 0, stats.Failed)
	// The discarded resource is never enriched.
	assert.Equal(t, 2, enricher.CallCount())

	results, err := cp.Load()
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NotEqual(t, "low", r.ResourceID)
	}
}

func TestRunnerRetriesRatingFailures(t *testing.T) {
	cp := NewFileCheckpoint(filepath.Join(t.TempDir(), "cp.json"))

	rater := mock.NewMockRater()
	rater.RateResourceFunc = func(ctx context.Context, resource *core.Resource) (int, error) {
		if rater.CallCount() < 3 {
			return 0, errors.New("overloaded")
		}
		return 3, nil
	}
	runner := newTestRunner(t, rater, mock.NewMockEnricher(), cp)

	stats, err := runner.Run(context.Background(), []*core.Resource{testResource("r1")})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Succeeded)
	assert.Equal(t, 3, rater.CallCount())
}

func TestRunnerRecordsTerminalFailureAndContinues(t *testing.T) {
	cp := NewFileCheckpoint(filepath.Join(t.TempDir(), "cp.json"))

	rater := mock.NewMockRater()
	rater.RateResourceFunc = func(ctx context.Context, resource *core.Resource) (int, error) {
		if resource.ResourceID == "broken" {
			return 0, errors.New("always fails")
		}
		return 2, nil
	}
	runner := newTestRunner(t, rater, mock.NewMockEnricher(), cp)

	stats, err := runner.Run(context.Background(), []*core.Resource{testResource("broken"), testResource("ok")})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.Succeeded)

	results, err := cp.Load()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ok", results[0].ResourceID)
}

func TestRunnerEnrichmentFailureCountsAsFailed(t *testing.T) {
	cp := NewFileCheckpoint(filepath.Join(t.TempDir(), "cp.json"))

	enricher := mock.NewMockEnricher()
	enricher.EnrichResourceFunc = func(ctx context.Context, resource *core.Resource, rating int) (*ai.Enrichment, error) {
		return nil, errors.New("malformed response")
	}
	runner := newTestRunner(t, mock.NewMockRater(), enricher, cp)

	stats, err := runner.Run(context.Background(), []*core.Resource{testResource("r1")})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 0, stats.Succeeded)
	// All three attempts were spent.
	assert.Equal(t, 3, enricher.CallCount())
}

func TestRunnerFinalSaveAlwaysHappens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cp.json")
	cp := NewFileCheckpoint(path)
	runner := newTestRunner(t, mock.NewMockRater(), mock.NewMockEnricher(), cp)

	// Zero resources still produces a checkpoint file.
	_, err := runner.Run(context.Background(), nil)
	require.NoError(t, err)

	loaded, err := cp.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
