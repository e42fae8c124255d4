package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ltejedor/aihacks/ai"
	"github.com/ltejedor/aihacks/core"
	"github.com/ltejedor/aihacks/storage"
)

const (
	// DefaultMinSimilarity is the similarity threshold for matches. It is
	// deliberately permissive; ranking does the real work.
	DefaultMinSimilarity = 0.01

	// DefaultMaxHits is the default result count.
	DefaultMaxHits = 10
)

// Searcher provides semantic search over resource rows.
type Searcher struct {
	repository    storage.RowRepository
	embedder      ai.Embedder
	minSimilarity float32
	logger        *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMinSimilarity sets the similarity threshold for matches.
// Default is DefaultMinSimilarity.
func WithMinSimilarity(min float32) Option {
	return func(s *Searcher) error {
		s.minSimilarity = min
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(repository storage.RowRepository, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		repository:    repository,
		embedder:      embedder,
		minSimilarity: DefaultMinSimilarity,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Query holds search parameters.
type Query struct {
	Text    string
	Tag     string // optional; restricts results to rows carrying this tag
	MaxHits int    // defaults to DefaultMaxHits when <= 0
}

// Search finds resource rows relevant to the query, ranked by similarity.
func (s *Searcher) Search(ctx context.Context, query Query) ([]*core.RowMatch, error) {
	return s.SearchWithMonitor(ctx, query, nil)
}

// SearchWithMonitor finds resource rows relevant to the query with
// monitoring. The monitor receives callbacks at each stage of the search.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query Query, monitor Monitor) ([]*core.RowMatch, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if strings.TrimSpace(query.Text) == "" {
		return nil, ErrEmptyQuery
	}

	maxHits := query.MaxHits
	if maxHits <= 0 {
		maxHits = DefaultMaxHits
	}

	monitor.Start(query.Text)

	embedding, err := s.embedder.EmbedText(ctx, query.Text)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query.Text, "err", err)
		return nil, err
	}
	embedding = core.NormalizeVector(embedding)
	monitor.AfterEmbedding(embedding)

	// Over-fetch when a tag filter is set, since filtering happens after
	// the similarity pass.
	fetch := maxHits
	if query.Tag != "" {
		fetch = maxHits * 4
	}

	matches, err := s.repository.FindSimilar(ctx, embedding, s.minSimilarity, fetch)
	if err != nil {
		s.logger.Error("error querying for similar rows", "err", err)
		return nil, err
	}
	monitor.AfterSimilaritySearch(matches)

	if query.Tag != "" {
		filtered := matches[:0]
		for _, match := range matches {
			if hasTag(match.Row, query.Tag) {
				filtered = append(filtered, match)
			}
		}
		matches = filtered
	}

	if len(matches) > maxHits {
		matches = matches[:maxHits]
	}

	monitor.Finish(matches)
	return matches, nil
}

func hasTag(row *core.ResourceRow, tag string) bool {
	for _, t := range row.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
