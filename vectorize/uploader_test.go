package vectorize

import (
	"context"
	"errors"
	"testing"

	"github.com/ltejedor/aihacks/ai/mock"
	"github.com/ltejedor/aihacks/core"
	"github.com/ltejedor/aihacks/storage"
	badgerstore "github.com/ltejedor/aihacks/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWebResource(id, title string) core.WebResource {
	return core.WebResource{
		ResourceID:      id,
		Date:            "2025-04-01T00:00:00Z",
		EvergreenRating: 2,
		Summary:         core.Summary{Title: title, SummaryText: "Problem: " + title},
		Tags:            []string{"llms"},
	}
}

func newTestUploader(t *testing.T, embedder *mock.MockEmbedder, opts ...UploaderOption) (*Uploader, storage.RowRepository) {
	t.Helper()
	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	opts = append([]UploaderOption{WithEmbedPacing(0), WithInsertPacing(0)}, opts...)
	uploader, err := NewUploader(embedder, repo, opts...)
	require.NoError(t, err)
	return uploader, repo
}

func TestNewUploaderValidation(t *testing.T) {
	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewUploader(nil, repo)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewUploader(mock.NewMockEmbedder(), nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)
}

func TestUploaderRun(t *testing.T) {
	uploader, repo := newTestUploader(t, mock.NewMockEmbedder())

	stats, err := uploader.Run(context.Background(), []core.WebResource{
		testWebResource("r1", "First Resource"),
		testWebResource("r2", "Second Resource"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Chunks)
	assert.Equal(t, 2, stats.Uploaded)
	assert.Equal(t, 0, stats.Failed)

	rows, err := repo.GetRowsByDateRange(context.Background(), "", "~")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.NotEmpty(t, row.Vector)
	}
}

func TestUploaderRerunSkipsExistingRows(t *testing.T) {
	uploader, _ := newTestUploader(t, mock.NewMockEmbedder())
	resources := []core.WebResource{testWebResource("r1", "Stable Content")}

	stats, err := uploader.Run(context.Background(), resources)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Uploaded)

	// Same content hashes to the same row ID, so the rerun adds nothing.
	stats, err = uploader.Run(context.Background(), resources)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Uploaded)
	assert.Equal(t, 1, stats.Skipped)
}

func TestUploaderNormalizesVectors(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{3, 4}
		}
		return vectors, nil
	}
	uploader, repo := newTestUploader(t, embedder)

	_, err := uploader.Run(context.Background(), []core.WebResource{testWebResource("r1", "Some Title")})
	require.NoError(t, err)

	rows, err := repo.GetRowsByDateRange(context.Background(), "", "~")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, 0.6, rows[0].Vector[0], 0.0001)
	assert.InDelta(t, 0.8, rows[0].Vector[1], 0.0001)
}

func TestUploaderDropsBatchOnCountMismatch(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		// One vector short: ordering correspondence is broken.
		vectors := make([][]float32, len(texts)-1)
		for i := range vectors {
			vectors[i] = []float32{1, 0}
		}
		return vectors, nil
	}
	uploader, repo := newTestUploader(t, embedder)

	stats, err := uploader.Run(context.Background(), []core.WebResource{
		testWebResource("r1", "First"),
		testWebResource("r2", "Second"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Failed)
	assert.Equal(t, 0, stats.Uploaded)

	rows, err := repo.GetRowsByDateRange(context.Background(), "", "~")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestUploaderContinuesAfterEmbeddingFailure(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	calls := 0
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("rate limited")
		}
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{1, 0}
		}
		return vectors, nil
	}
	// Batch size 1 so the two resources go out in separate batches.
	uploader, _ := newTestUploader(t, embedder, WithBatchSize(1))

	stats, err := uploader.Run(context.Background(), []core.WebResource{
		testWebResource("r1", "Lost"),
		testWebResource("r2", "Kept"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.Uploaded)
}

func TestUploaderEmptyInput(t *testing.T) {
	uploader, _ := newTestUploader(t, mock.NewMockEmbedder())

	stats, err := uploader.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Chunks)
}
