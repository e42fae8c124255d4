package mock

import (
	"context"

	"github.com/ltejedor/aihacks/ai"
	"github.com/ltejedor/aihacks/core"
)

// MockJudge is a test double for ai.Judge.
// It allows custom behavior injection via function fields.
type MockJudge struct {
	// JudgeMessageFunc is called by JudgeMessage if set.
	// If nil, every message is classified as "not a resource".
	JudgeMessageFunc func(ctx context.Context, focal core.Message, window []core.Message) (*ai.Verdict, error)

	callCount int
}

// NewMockJudge creates a mock judge with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockJudge() *MockJudge {
	return &MockJudge{}
}

// JudgeMessage classifies the focal message.
// Default behavior: not a resource.
func (m *MockJudge) JudgeMessage(ctx context.Context, focal core.Message, window []core.Message) (*ai.Verdict, error) {
	m.callCount++

	if m.JudgeMessageFunc != nil {
		return m.JudgeMessageFunc(ctx, focal, window)
	}

	return &ai.Verdict{IsResource: false}, nil
}

// CallCount returns the number of times JudgeMessage was called.
func (m *MockJudge) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockJudge) Reset() {
	m.callCount = 0
	m.JudgeMessageFunc = nil
}
