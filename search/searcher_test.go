package search

import (
	"context"
	"testing"

	"github.com/ltejedor/aihacks/ai/mock"
	"github.com/ltejedor/aihacks/core"
	"github.com/ltejedor/aihacks/storage"
	badgerstore "github.com/ltejedor/aihacks/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRows(t *testing.T, repo storage.RowRepository, rows ...*core.ResourceRow) {
	t.Helper()
	_, err := repo.AddRows(context.Background(), rows...)
	require.NoError(t, err)
}

func newTestSearcher(t *testing.T, embedder *mock.MockEmbedder) (*Searcher, storage.RowRepository) {
	t.Helper()
	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	searcher, err := NewSearcher(repo, embedder)
	require.NoError(t, err)
	return searcher, repo
}

func TestNewSearcherValidation(t *testing.T) {
	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewSearcher(nil, mock.NewMockEmbedder())
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewSearcher(repo, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestSearchEmptyQuery(t *testing.T) {
	searcher, _ := newTestSearcher(t, mock.NewMockEmbedder())

	_, err := searcher.Search(context.Background(), Query{Text: "   "})
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearchRanksBySimilarity(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}
	searcher, repo := newTestSearcher(t, embedder)

	seedRows(t, repo,
		&core.ResourceRow{Content: "exact", Vector: []float32{1, 0}, Date: "2025-04-01", Tags: []string{"llms"}},
		&core.ResourceRow{Content: "close", Vector: []float32{0.8, 0.6}, Date: "2025-04-02", Tags: []string{"agents"}},
		&core.ResourceRow{Content: "unrelated", Vector: []float32{0, 1}, Date: "2025-04-03", Tags: []string{"llms"}},
	)

	matches, err := searcher.Search(context.Background(), Query{Text: "agent frameworks"})
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "exact", matches[0].Row.Content)
	assert.Equal(t, "close", matches[1].Row.Content)
}

func TestSearchTagFilter(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}
	searcher, repo := newTestSearcher(t, embedder)

	seedRows(t, repo,
		&core.ResourceRow{Content: "tagged", Vector: []float32{1, 0}, Date: "2025-04-01", Tags: []string{"voice-ai"}},
		&core.ResourceRow{Content: "other", Vector: []float32{0.9, 0.43}, Date: "2025-04-02", Tags: []string{"llms"}},
	)

	matches, err := searcher.Search(context.Background(), Query{Text: "voice", Tag: "voice-ai"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "tagged", matches[0].Row.Content)
}

func TestSearchMaxHits(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}
	searcher, repo := newTestSearcher(t, embedder)

	seedRows(t, repo,
		&core.ResourceRow{Content: "a", Vector: []float32{1, 0}, Date: "2025-04-01"},
		&core.ResourceRow{Content: "b", Vector: []float32{0.99, 0.14}, Date: "2025-04-02"},
		&core.ResourceRow{Content: "c", Vector: []float32{0.95, 0.31}, Date: "2025-04-03"},
	)

	matches, err := searcher.Search(context.Background(), Query{Text: "anything", MaxHits: 2})
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

type recordingMonitor struct {
	started  bool
	embedded bool
	searched bool
	finished int
}

func (m *recordingMonitor) Start(string)                           { m.started = true }
func (m *recordingMonitor) AfterEmbedding([]float32)               { m.embedded = true }
func (m *recordingMonitor) AfterSimilaritySearch([]*core.RowMatch) { m.searched = true }
func (m *recordingMonitor) Finish(results []*core.RowMatch)        { m.finished = len(results) }

func TestSearchWithMonitor(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}
	searcher, repo := newTestSearcher(t, embedder)

	seedRows(t, repo, &core.ResourceRow{Content: "only", Vector: []float32{1, 0}, Date: "2025-04-01"})

	monitor := &recordingMonitor{}
	matches, err := searcher.SearchWithMonitor(context.Background(), Query{Text: "q"}, monitor)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.True(t, monitor.started)
	assert.True(t, monitor.embedded)
	assert.True(t, monitor.searched)
	assert.Equal(t, 1, monitor.finished)
}
