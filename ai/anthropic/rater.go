package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ltejedor/aihacks/ai"
	"github.com/ltejedor/aihacks/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
)

// Rater implements ai.Rater using the Anthropic API.
type Rater struct {
	client llms.Model
	logger *slog.Logger
}

// ratingResponse is the wire structure the model is instructed to emit.
// Only the rating is consumed programmatically; the reason is logged.
type ratingResponse struct {
	Rating int    `json:"rating"`
	Reason string `json:"reason"`
}

// newRater is an internal constructor that returns the concrete type.
func newRater(config *ai.Config) (*Rater, error) {
	if err := config.ValidateAnthropic(); err != nil {
		return nil, err
	}

	client, err := anthropic.New(
		anthropic.WithToken(config.AnthropicToken),
		anthropic.WithModel(config.RaterModel),
	)
	if err != nil {
		return nil, err
	}

	return &Rater{
		client: client,
		logger: slog.Default().With("component", "anthropic-rater"),
	}, nil
}

// NewRater creates a new evergreen rater using the provided configuration.
//
// Returns ai.Rater interface to enforce abstraction.
func NewRater(config *ai.Config) (ai.Rater, error) {
	return newRater(config)
}

// RateResource scores a resource on the 0-3 evergreen scale.
// An empty response, unparseable output, or an out-of-range rating is an
// error; the caller decides whether to retry.
func (r *Rater) RateResource(ctx context.Context, resource *core.Resource) (int, error) {
	prompt := buildRaterPrompt(resource)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := r.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.2),
		llms.WithMaxTokens(512))
	if err != nil {
		r.logger.Error("failed to generate rating", "resourceID", resource.ResourceID, "err", err)
		return 0, err
	}

	if len(response.Choices) < 1 {
		r.logger.Warn("empty rating response", "resourceID", resource.ResourceID)
		return 0, fmt.Errorf("rater: empty response for resource %s", resource.ResourceID)
	}

	responseText := ai.SanitizeJSONResponse(response.Choices[0].Content)

	var parsed ratingResponse
	if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
		r.logger.Warn("error parsing rating response",
			"resourceID", resource.ResourceID,
			"response", responseText,
			"err", err)
		return 0, fmt.Errorf("rater: malformed response for resource %s: %w", resource.ResourceID, err)
	}

	if !core.IsValidRating(parsed.Rating) {
		r.logger.Warn("rating out of range",
			"resourceID", resource.ResourceID,
			"rating", parsed.Rating)
		return 0, fmt.Errorf("rater: %w: %d", core.ErrRatingOutOfRange, parsed.Rating)
	}

	r.logger.Debug("rated resource",
		"resourceID", resource.ResourceID,
		"rating", parsed.Rating,
		"reason", parsed.Reason)

	return parsed.Rating, nil
}
