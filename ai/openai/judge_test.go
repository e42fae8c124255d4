package openai

import (
	"strings"
	"testing"

	"github.com/ltejedor/aihacks/ai"
)

func TestNewJudge_OpenAITokenOnly(t *testing.T) {
	// The judge never talks to Anthropic, so an OpenAI-only config
	// must construct cleanly.
	cfg := ai.NewConfig(ai.WithOpenAIToken("sk-test"))

	judge, err := NewJudge(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if judge == nil {
		t.Fatal("expected a judge")
	}
}

func TestNewJudge_MissingOpenAIToken(t *testing.T) {
	cfg := ai.NewConfig(ai.WithAnthropicToken("sk-ant-test"))

	_, err := NewJudge(cfg)
	if err == nil || !strings.Contains(err.Error(), "OpenAIToken") {
		t.Errorf("expected error mentioning OpenAIToken, got %v", err)
	}
}

func TestNewEmbedder_OpenAITokenOnly(t *testing.T) {
	cfg := ai.NewConfig(ai.WithOpenAIToken("sk-test"))

	embedder, err := NewEmbedder(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embedder == nil {
		t.Fatal("expected an embedder")
	}
}
