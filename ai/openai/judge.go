package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ltejedor/aihacks/ai"
	"github.com/ltejedor/aihacks/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Judge implements ai.Judge using OpenAI-compatible chat APIs.
type Judge struct {
	client llms.Model
	logger *slog.Logger
}

// newJudge is an internal constructor that returns the concrete type.
func newJudge(config *ai.Config) (*Judge, error) {
	if err := config.ValidateOpenAI(); err != nil {
		return nil, err
	}

	opts := []openai.Option{
		openai.WithToken(config.OpenAIToken),
		openai.WithModel(config.JudgeModel),
	}
	if config.OpenAIBaseURL != "" {
		opts = append(opts, openai.WithBaseURL(config.OpenAIBaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}

	return &Judge{
		client: client,
		logger: slog.Default().With("component", "openai-judge"),
	}, nil
}

// NewJudge creates a new resource judge using the provided configuration.
//
// Returns ai.Judge interface to enforce abstraction.
func NewJudge(config *ai.Config) (ai.Judge, error) {
	return newJudge(config)
}

// JudgeMessage evaluates whether the focal message starts a useful resource
// and which context messages belong to the same discussion.
//
// There is no internal retry: the cluster engine deliberately treats any
// failure here as "not a resource" and moves to the next candidate.
func (j *Judge) JudgeMessage(ctx context.Context, focal core.Message, window []core.Message) (*ai.Verdict, error) {
	prompt := buildJudgePrompt(focal, window)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(judgeSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := j.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		j.logger.Error("failed to generate content", "messageID", focal.ID, "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		j.logger.Warn("no choices returned from model", "messageID", focal.ID)
		return nil, fmt.Errorf("judge: empty response for message %s", focal.ID)
	}

	responseText := ai.SanitizeJSONResponse(response.Choices[0].Content)
	responseText = repairJSON(responseText)

	var verdict ai.Verdict
	if err := json.Unmarshal([]byte(responseText), &verdict); err != nil {
		j.logger.Warn("error parsing judge response",
			"messageID", focal.ID,
			"response", responseText,
			"err", err)
		return nil, fmt.Errorf("judge: malformed response for message %s: %w", focal.ID, err)
	}

	j.logger.Debug("judged message",
		"messageID", focal.ID,
		"isResource", verdict.IsResource,
		"related", len(verdict.RelatedMessageIDs))

	return &verdict, nil
}
