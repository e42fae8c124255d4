package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for persisted rows.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

const (
	// RatingMin and RatingMax bound the discrete evergreen rating scale.
	RatingMin = 0
	RatingMax = 3

	// EvergreenThreshold is the minimum rating for a resource to be kept.
	// Resources rated below it are discarded during enrichment.
	EvergreenThreshold = 2

	// MaxTags is the maximum number of tags attached to a web resource.
	MaxTags = 5
)

// Reaction is an emoji reaction attached to an exported chat message.
type Reaction struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// Message represents a single exported chat message.
// The JSON field names mirror the exporter output, so an export file can be
// decoded directly into []Message. Messages are immutable once loaded.
type Message struct {
	ID        string     `json:"id"`
	Timestamp int64      `json:"timestamp"` // Unix seconds, defines the processing order
	Date      string     `json:"date"`      // ISO 8601, as written by the exporter
	Author    string     `json:"author"`
	Body      string     `json:"body"`
	Reactions []Reaction `json:"reactions,omitempty"`

	// HasReaction and ReactionCount are the collapsed form of Reactions,
	// populated when a message is materialized into a Resource.
	HasReaction   bool `json:"hasReaction,omitempty"`
	ReactionCount int  `json:"reactionCount,omitempty"`
}

// CollapseReactions returns a copy of the message with reaction data reduced
// to a boolean flag and a total count. The detailed reaction list is dropped
// before the message is persisted as part of a resource.
func (m Message) CollapseReactions() Message {
	total := 0
	for _, r := range m.Reactions {
		total += r.Count
	}
	m.HasReaction = total > 0
	m.ReactionCount = total
	m.Reactions = nil
	return m
}

// Resource is a cluster of related chat messages judged to have lasting
// reference value. Members are kept sorted by timestamp ascending.
// A resource only ever grows; it is never deleted.
type Resource struct {
	ResourceID          string    `json:"resource_id"`
	ResourceDescription string    `json:"resource_description"`
	Messages            []Message `json:"messages"`
}

// MemberIDs returns the set of member message identifiers.
func (r *Resource) MemberIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(r.Messages))
	for _, m := range r.Messages {
		ids[m.ID] = struct{}{}
	}
	return ids
}

// EarliestDate returns the date of the earliest member message, or "" for an
// empty resource. Members are sorted by timestamp, so this is the first one.
func (r *Resource) EarliestDate() string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[0].Date
}

// TotalReactions sums the collapsed reaction counts over all members.
func (r *Resource) TotalReactions() int {
	total := 0
	for _, m := range r.Messages {
		total += m.ReactionCount
	}
	return total
}

// Summary is the structured summary produced for a web resource.
type Summary struct {
	Title       string `json:"title"`
	SummaryText string `json:"summary_text"`
}

// WebResource is a finalized resource enriched with a rating, summary,
// optional documentation, and tags. Instances are immutable once created;
// they are only accumulated into the enrichment checkpoint.
type WebResource struct {
	ResourceID          string    `json:"resource_id"`
	OriginalDescription string    `json:"original_description"`
	Date                string    `json:"date"`
	ReactionCount       int       `json:"reaction_count"`
	EvergreenRating     int       `json:"evergreen_rating"`
	Summary             Summary   `json:"summary"`
	Documentation       string    `json:"documentation"`
	Tags                []string  `json:"tags"`
	Messages            []Message `json:"messages"`
}

// ResourceRow is one persisted, searchable row derived from a web resource.
// Rows are created once and never mutated by the upload pipeline.
type ResourceRow struct {
	Id              ID
	ResourceID      string
	Content         string
	Vector          []float32
	Title           string
	Tags            []string
	Date            string
	EvergreenRating int
	ReactionCount   int
	ContentType     string
}

// RowMatch is a resource row matched by vector similarity search.
type RowMatch struct {
	Row   *ResourceRow
	Score float32
}
