package mock

import (
	"context"

	"github.com/ltejedor/aihacks/core"
)

// MockRater is a test double for ai.Rater.
// It allows custom behavior injection via function fields.
type MockRater struct {
	// RateResourceFunc is called by RateResource if set.
	// If nil, every resource is rated 2 (evergreen).
	RateResourceFunc func(ctx context.Context, resource *core.Resource) (int, error)

	callCount int
}

// NewMockRater creates a mock rater with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockRater() *MockRater {
	return &MockRater{}
}

// RateResource scores the resource.
// Default behavior: rating 2.
func (m *MockRater) RateResource(ctx context.Context, resource *core.Resource) (int, error) {
	m.callCount++

	if m.RateResourceFunc != nil {
		return m.RateResourceFunc(ctx, resource)
	}

	return 2, nil
}

// CallCount returns the number of times RateResource was called.
func (m *MockRater) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockRater) Reset() {
	m.callCount = 0
	m.RateResourceFunc = nil
}
