// Copyright 2025 The aihacks Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package organize

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ltejedor/aihacks/ai"
	"github.com/ltejedor/aihacks/core"
)

const (
	// defaultWindowSize is the number of context messages included on each
	// side of the focal message.
	defaultWindowSize = 10

	// defaultPacing is the delay between judge calls.
	defaultPacing = 1 * time.Second

	// mergeThreshold is the Jaccard index above which a verdict is folded
	// into an existing cluster. The comparison is strict: exactly 0.5 does
	// not merge.
	mergeThreshold = 0.5
)

// Stats summarizes a merger run.
type Stats struct {
	Judged     int // messages presented to the judge
	Created    int // new clusters created
	Merged     int // verdicts folded into an existing cluster
	Failures   int // failed or malformed judge calls, skipped
	MissingIDs int // ids named by the judge that do not exist
}

// Merger consumes judge verdicts sequentially and maintains the evolving
// partition of messages into resources. It is stateful: feeding the same
// messages through an already-built partition is a no-op, because every
// member id is marked processed.
//
// Merger is not safe for concurrent use. All calls are sequential, with one
// judge call in flight at a time.
type Merger struct {
	judge      ai.Judge
	windowSize int
	pacing     time.Duration
	logger     *slog.Logger

	resources []*core.Resource
	processed map[string]struct{}
	stats     Stats
}

// MergerOption configures a Merger.
type MergerOption func(*Merger)

// WithWindowSize sets the context window half-width. Default is 10.
func WithWindowSize(size int) MergerOption {
	return func(m *Merger) {
		if size >= 0 {
			m.windowSize = size
		}
	}
}

// WithPacing sets the delay applied after each judge call. A non-positive
// value disables pacing. Default is 1 second.
func WithPacing(d time.Duration) MergerOption {
	return func(m *Merger) {
		m.pacing = d
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) MergerOption {
	return func(m *Merger) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMerger creates a cluster merger driven by the given judge.
func NewMerger(judge ai.Judge, opts ...MergerOption) (*Merger, error) {
	if judge == nil {
		return nil, ErrJudgeRequired
	}

	m := &Merger{
		judge:      judge,
		windowSize: defaultWindowSize,
		pacing:     defaultPacing,
		logger:     slog.Default().With("component", "organize.merger"),
		processed:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Run processes the messages in order and returns the resulting partition.
// Messages must already be sorted by timestamp ascending (see LoadMessages).
// A failed judge call skips the focal message; it does not abort the run.
// On context cancellation the partition built so far is returned along with
// the context error.
func (m *Merger) Run(ctx context.Context, messages []core.Message) ([]*core.Resource, Stats, error) {
	byID := make(map[string]core.Message, len(messages))
	for _, msg := range messages {
		byID[msg.ID] = msg
	}

	for i, msg := range messages {
		if err := ctx.Err(); err != nil {
			return m.resources, m.stats, err
		}
		if _, done := m.processed[msg.ID]; done {
			continue
		}

		m.logger.Info("judging message", "index", i+1, "total", len(messages), "id", msg.ID)

		verdict, err := m.judge.JudgeMessage(ctx, msg, contextWindow(messages, i, m.windowSize))
		m.stats.Judged++
		if err != nil {
			// Treated as "not a resource". Strongly-evidenced resources
			// tend to be flagged again from neighboring candidates.
			m.logger.Warn("judge call failed, skipping message", "id", msg.ID, "err", err)
			m.stats.Failures++
		} else if verdict.IsResource {
			m.apply(verdict, byID)
		}

		if err := m.pace(ctx); err != nil {
			return m.resources, m.stats, err
		}
	}

	return m.resources, m.stats, nil
}

// Resources returns the current partition.
func (m *Merger) Resources() []*core.Resource {
	return m.resources
}

// Stats returns the counters accumulated so far.
func (m *Merger) Stats() Stats {
	return m.stats
}

// apply folds a positive verdict into the partition.
func (m *Merger) apply(verdict *ai.Verdict, byID map[string]core.Message) {
	if len(verdict.RelatedMessageIDs) == 0 {
		m.logger.Warn("verdict has no related message ids, skipping")
		return
	}

	validIDs := make([]string, 0, len(verdict.RelatedMessageIDs))
	for _, id := range verdict.RelatedMessageIDs {
		if _, ok := byID[id]; ok {
			validIDs = append(validIDs, id)
		}
	}
	if missing := len(verdict.RelatedMessageIDs) - len(validIDs); missing > 0 {
		m.logger.Warn("verdict names unknown message ids", "missing", missing)
		m.stats.MissingIDs += missing
	}
	if len(validIDs) == 0 {
		m.logger.Warn("verdict has no valid message ids, skipping")
		return
	}

	newSet := make(map[string]struct{}, len(validIDs))
	for _, id := range validIDs {
		newSet[id] = struct{}{}
	}

	best, overlap := m.bestMatch(newSet)
	if best != nil && overlap > mergeThreshold {
		existing := best.MemberIDs()
		union := make(map[string]struct{}, len(existing)+len(newSet))
		for id := range existing {
			union[id] = struct{}{}
		}
		for id := range newSet {
			union[id] = struct{}{}
		}

		best.Messages = materialize(union, byID)
		// The description of the bigger contributing batch wins. Ties keep
		// the existing description.
		if len(newSet) > len(existing) {
			best.ResourceDescription = verdict.ResourceDescription
		}
		m.markProcessed(newSet)
		m.stats.Merged++
		m.logger.Info("merged into existing resource",
			"resource_id", best.ResourceID, "overlap", overlap, "members", len(best.Messages))
		return
	}

	resource := &core.Resource{
		ResourceID:          uuid.NewString(),
		ResourceDescription: verdict.ResourceDescription,
		Messages:            materialize(newSet, byID),
	}
	m.resources = append(m.resources, resource)
	m.markProcessed(newSet)
	m.stats.Created++
	m.logger.Info("created new resource",
		"resource_id", resource.ResourceID, "members", len(resource.Messages))
}

// bestMatch returns the existing cluster with the greatest Jaccard index
// against ids, considering only clusters with a non-empty intersection.
// Ties keep the first cluster found, in creation order.
func (m *Merger) bestMatch(ids map[string]struct{}) (*core.Resource, float64) {
	var best *core.Resource
	maxOverlap := 0.0

	for _, resource := range m.resources {
		existing := resource.MemberIDs()

		intersection := 0
		for id := range ids {
			if _, ok := existing[id]; ok {
				intersection++
			}
		}
		if intersection == 0 {
			continue
		}

		union := len(ids) + len(existing) - intersection
		overlap := float64(intersection) / float64(union)
		if overlap > maxOverlap {
			maxOverlap = overlap
			best = resource
		}
	}

	return best, maxOverlap
}

func (m *Merger) markProcessed(ids map[string]struct{}) {
	for id := range ids {
		m.processed[id] = struct{}{}
	}
}

// pace sleeps for the configured delay, honoring context cancellation.
func (m *Merger) pace(ctx context.Context) error {
	if m.pacing <= 0 {
		return nil
	}
	timer := time.NewTimer(m.pacing)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// materialize resolves an id set into messages with collapsed reaction data,
// sorted by timestamp ascending.
func materialize(ids map[string]struct{}, byID map[string]core.Message) []core.Message {
	messages := make([]core.Message, 0, len(ids))
	for id := range ids {
		messages = append(messages, byID[id].CollapseReactions())
	}
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].Timestamp != messages[j].Timestamp {
			return messages[i].Timestamp < messages[j].Timestamp
		}
		return messages[i].ID < messages[j].ID
	})
	return messages
}
