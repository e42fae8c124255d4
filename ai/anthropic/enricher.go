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

// Enricher implements ai.Enricher using the Anthropic API.
type Enricher struct {
	client llms.Model
	logger *slog.Logger
}

// newEnricher is an internal constructor that returns the concrete type.
func newEnricher(config *ai.Config) (*Enricher, error) {
	if err := config.ValidateAnthropic(); err != nil {
		return nil, err
	}

	client, err := anthropic.New(
		anthropic.WithToken(config.AnthropicToken),
		anthropic.WithModel(config.EnricherModel),
	)
	if err != nil {
		return nil, err
	}

	return &Enricher{
		client: client,
		logger: slog.Default().With("component", "anthropic-enricher"),
	}, nil
}

// NewEnricher creates a new resource enricher using the provided configuration.
//
// Returns ai.Enricher interface to enforce abstraction.
func NewEnricher(config *ai.Config) (ai.Enricher, error) {
	return newEnricher(config)
}

// EnrichResource derives summary, documentation, and tags for a resource.
// The prior rating is included in the prompt so the model is aware of the
// earlier assessment. A response without a summary title is an error; the
// caller decides whether to retry. Tags beyond the allowed maximum are
// truncated, not rejected.
func (e *Enricher) EnrichResource(ctx context.Context, resource *core.Resource, rating int) (*ai.Enrichment, error) {
	prompt := buildEnricherPrompt(resource, rating)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.2),
		llms.WithMaxTokens(2048))
	if err != nil {
		e.logger.Error("failed to generate enrichment", "resourceID", resource.ResourceID, "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		e.logger.Warn("empty enrichment response", "resourceID", resource.ResourceID)
		return nil, fmt.Errorf("enricher: empty response for resource %s", resource.ResourceID)
	}

	responseText := ai.SanitizeJSONResponse(response.Choices[0].Content)

	var enrichment ai.Enrichment
	if err := json.Unmarshal([]byte(responseText), &enrichment); err != nil {
		e.logger.Warn("error parsing enrichment response",
			"resourceID", resource.ResourceID,
			"response", responseText,
			"err", err)
		return nil, fmt.Errorf("enricher: malformed response for resource %s: %w", resource.ResourceID, err)
	}

	if enrichment.Summary.Title == "" {
		return nil, fmt.Errorf("enricher: %w for resource %s", core.ErrEmptyTitle, resource.ResourceID)
	}

	if len(enrichment.Tags) > core.MaxTags {
		e.logger.Warn("model returned too many tags, truncating",
			"resourceID", resource.ResourceID,
			"tags", len(enrichment.Tags))
		enrichment.Tags = enrichment.Tags[:core.MaxTags]
	}

	e.logger.Debug("enriched resource",
		"resourceID", resource.ResourceID,
		"title", enrichment.Summary.Title,
		"tags", len(enrichment.Tags))

	return &enrichment, nil
}
