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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for the AI service clients.
// Credentials are validated fail-fast: a missing token is a startup error,
// never a mid-run surprise.
type Config struct {
	// OpenAIToken authenticates the judge and embedding clients.
	OpenAIToken string

	// AnthropicToken authenticates the rater and enricher clients.
	AnthropicToken string

	// OpenAIBaseURL overrides the OpenAI API endpoint.
	// Empty means the public API. Example: "http://localhost:11434/v1"
	// for a local OpenAI-compatible server.
	OpenAIBaseURL string

	// JudgeModel is the chat model used for resource classification.
	// Default: "gpt-4o-mini"
	JudgeModel string

	// RaterModel is the model used for evergreen rating.
	// Default: "claude-3-haiku-20240307"
	RaterModel string

	// EnricherModel is the model used for summary/documentation/tag
	// generation. Default: "claude-sonnet-4-20250514"
	EnricherModel string

	// EmbeddingModel is the model identifier used for text embeddings.
	// Default: "text-embedding-3-small"
	EmbeddingModel string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithOpenAIToken sets the OpenAI API token.
func WithOpenAIToken(token string) ConfigOption {
	return func(c *Config) {
		c.OpenAIToken = token
	}
}

// WithAnthropicToken sets the Anthropic API token.
func WithAnthropicToken(token string) ConfigOption {
	return func(c *Config) {
		c.AnthropicToken = token
	}
}

// WithOpenAIBaseURL sets an alternate OpenAI-compatible endpoint.
func WithOpenAIBaseURL(url string) ConfigOption {
	return func(c *Config) {
		c.OpenAIBaseURL = url
	}
}

// WithJudgeModel sets the judge model identifier.
func WithJudgeModel(model string) ConfigOption {
	return func(c *Config) {
		c.JudgeModel = model
	}
}

// WithRaterModel sets the rater model identifier.
func WithRaterModel(model string) ConfigOption {
	return func(c *Config) {
		c.RaterModel = model
	}
}

// WithEnricherModel sets the enricher model identifier.
func WithEnricherModel(model string) ConfigOption {
	return func(c *Config) {
		c.EnricherModel = model
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// DefaultConfig returns a Config with the default model choices.
// Tokens are left empty; they must be supplied by the caller.
func DefaultConfig() *Config {
	return &Config{
		JudgeModel:     "gpt-4o-mini",
		RaterModel:     "claude-3-haiku-20240307",
		EnricherModel:  "claude-sonnet-4-20250514",
		EmbeddingModel: "text-embedding-3-small",
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithOpenAIToken(os.Getenv("OPENAI_API_KEY")),
//	    ai.WithAnthropicToken(os.Getenv("ANTHROPIC_API_KEY")),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// A custom base URL gets the /v1 suffix required by OpenAI-compatible APIs.
func (c *Config) Normalize() {
	if c.OpenAIBaseURL != "" && !strings.HasSuffix(c.OpenAIBaseURL, "/v1") {
		c.OpenAIBaseURL = strings.TrimSuffix(c.OpenAIBaseURL, "/")
		c.OpenAIBaseURL = c.OpenAIBaseURL + "/v1"
	}
}

// ValidateOpenAI checks the fields used by the OpenAI-backed clients
// (judge and embedder). A stage that never talks to Anthropic must not
// demand an Anthropic token, so each provider validates only its own
// credentials. Normalizes before validating.
func (c *Config) ValidateOpenAI() error {
	c.Normalize()

	if c.OpenAIToken == "" {
		return errors.New("ai config: OpenAIToken is required")
	}
	if c.JudgeModel == "" {
		return errors.New("ai config: JudgeModel is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	return nil
}

// ValidateAnthropic checks the fields used by the Anthropic-backed clients
// (rater and enricher).
func (c *Config) ValidateAnthropic() error {
	if c.AnthropicToken == "" {
		return errors.New("ai config: AnthropicToken is required")
	}
	if c.RaterModel == "" {
		return errors.New("ai config: RaterModel is required")
	}
	if c.EnricherModel == "" {
		return errors.New("ai config: EnricherModel is required")
	}
	return nil
}

// Validate checks that the configuration is complete for both providers.
// Use it for configs that drive the whole pipeline; single-stage callers
// go through the per-provider methods.
func (c *Config) Validate() error {
	if err := c.ValidateOpenAI(); err != nil {
		return err
	}
	return c.ValidateAnthropic()
}
