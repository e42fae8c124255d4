package ai

import "github.com/ltejedor/aihacks/core"

// Verdict is the Judge's assessment of a focal message.
// The JSON field names match the wire format the model is instructed to emit.
type Verdict struct {
	// IsResource reports whether the focal message starts a useful resource.
	IsResource bool `json:"is_resource"`

	// RelatedMessageIDs lists the messages that are part of the same focused
	// discussion, including the focal message itself. Empty when IsResource
	// is false. IDs are not guaranteed to exist: callers must validate them.
	RelatedMessageIDs []string `json:"related_message_ids"`

	// ResourceDescription is a one-sentence description of the resource
	// topic. Empty when IsResource is false.
	ResourceDescription string `json:"resource_description"`
}

// Enrichment is the Enricher's derived content for a resource.
type Enrichment struct {
	Summary       core.Summary `json:"summary"`
	Documentation string       `json:"documentation"`
	Tags          []string     `json:"tags"`
}
