package mock

import (
	"context"
	"strings"

	"github.com/ltejedor/aihacks/ai"
	"github.com/ltejedor/aihacks/core"
)

// MockEnricher is a test double for ai.Enricher.
// It allows custom behavior injection via function fields.
type MockEnricher struct {
	// EnrichResourceFunc is called by EnrichResource if set.
	// If nil, a deterministic enrichment is derived from the description.
	EnrichResourceFunc func(ctx context.Context, resource *core.Resource, rating int) (*ai.Enrichment, error)

	callCount int
}

// NewMockEnricher creates a mock enricher with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockEnricher() *MockEnricher {
	return &MockEnricher{}
}

// EnrichResource derives content for the resource.
// Default behavior: title from the first words of the description, a
// "Problem:" summary, no documentation, one tag.
func (m *MockEnricher) EnrichResource(ctx context.Context, resource *core.Resource, rating int) (*ai.Enrichment, error) {
	m.callCount++

	if m.EnrichResourceFunc != nil {
		return m.EnrichResourceFunc(ctx, resource, rating)
	}

	title := resource.ResourceDescription
	if words := strings.Fields(title); len(words) > 8 {
		title = strings.Join(words[:8], " ")
	}
	if title == "" {
		title = "Untitled Resource"
	}

	return &ai.Enrichment{
		Summary: core.Summary{
			Title:       title,
			SummaryText: "Problem: " + resource.ResourceDescription,
		},
		Documentation: "",
		Tags:          []string{"resources"},
	}, nil
}

// CallCount returns the number of times EnrichResource was called.
func (m *MockEnricher) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockEnricher) Reset() {
	m.callCount = 0
	m.EnrichResourceFunc = nil
}
