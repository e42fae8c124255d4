// Package mock provides test double implementations of the AI collaborator
// interfaces.
//
// This package contains mock implementations of ai.Judge, ai.Rater,
// ai.Enricher, and ai.Embedder for use in unit tests. The mocks allow tests
// to run without external AI services and enable controlled, deterministic
// behavior.
//
// # Usage in Tests
//
//	// Custom behavior injection
//	judge := mock.NewMockJudge()
//	judge.JudgeMessageFunc = func(ctx context.Context, focal core.Message, window []core.Message) (*ai.Verdict, error) {
//	    return &ai.Verdict{IsResource: true, RelatedMessageIDs: []string{focal.ID}}, nil
//	}
//
//	// Check call counts
//	count := judge.CallCount()
//
// # Default Behavior
//
//   - MockJudge: classifies every message as "not a resource"
//   - MockRater: returns rating 2 for every resource
//   - MockEnricher: derives a deterministic summary from the description
//   - MockEmbedder: returns deterministic vectors based on text hash
package mock
