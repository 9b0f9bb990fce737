package judge

import (
	"context"
	"errors"
	"testing"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/config"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/providers"
)

// fakeProvider returns a canned completion and counts calls.
type fakeProvider struct {
	content string
	err     error
	calls   int
}

func (f *fakeProvider) SendCompletion(_ context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &providers.CompletionResponse{
		ID:      "resp-1",
		Model:   req.Model,
		Content: f.content,
	}, nil
}

func (f *fakeProvider) GetName() string { return "fake" }
func (f *fakeProvider) GetType() string { return "openai" }
func (f *fakeProvider) GetConfig() providers.ProviderConfig { return providers.ProviderConfig{} }
func (f *fakeProvider) IsHealthy() bool { return true }
func (f *fakeProvider) GetHealth() providers.ProviderHealth {
	return providers.ProviderHealth{IsHealthy: true}
}
func (f *fakeProvider) Close() error { return nil }

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"yes", true},
		{"Yes", true},
		{"YES", true},
		{" yes \n", true},
		{"yes.", true},
		{"\"yes\"", true},
		{"no", false},
		{"No.", false},
		{"maybe", false},
		{"probably yes", false},
		{"yes, because the text is polite", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := ParseAnswer(tt.raw); got != tt.want {
				t.Errorf("ParseAnswer(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestProviderJudgeEvaluate(t *testing.T) {
	provider := &fakeProvider{content: "yes"}
	j := NewProviderJudge(provider, config.JudgeConfig{Model: "gpt-4o-mini", MaxTokens: 8}, nil)

	verdict, err := j.Evaluate(context.Background(), "hello there", "Is the text a greeting?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !verdict {
		t.Error("expected verdict true for answer \"yes\"")
	}
	if provider.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", provider.calls)
	}
}

func TestProviderJudgeFailClosed(t *testing.T) {
	provider := &fakeProvider{content: "maybe"}
	j := NewProviderJudge(provider, config.JudgeConfig{Model: "gpt-4o-mini"}, nil)

	verdict, err := j.Evaluate(context.Background(), "some value", "Is it fine?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict {
		t.Error("hedged answer should produce verdict false")
	}
}

func TestProviderJudgeError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	j := NewProviderJudge(provider, config.JudgeConfig{Model: "gpt-4o-mini"}, nil)

	verdict, err := j.Evaluate(context.Background(), "v", "q")
	if err == nil {
		t.Fatal("expected error from failing provider")
	}
	if verdict {
		t.Error("verdict must be false when the call fails")
	}
}

func TestProviderJudgeRequestShape(t *testing.T) {
	var captured *providers.CompletionRequest
	provider := &capturingProvider{fakeProvider: fakeProvider{content: "no"}, captured: &captured}

	j := NewProviderJudge(provider, config.JudgeConfig{Model: "gpt-4o-mini", MaxTokens: 8}, nil)
	if _, err := j.Evaluate(context.Background(), "v", "q"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.Temperature != 0 {
		t.Errorf("temperature = %v, want 0", captured.Temperature)
	}
	if captured.MaxTokens != 8 {
		t.Errorf("max tokens = %d, want 8", captured.MaxTokens)
	}
	if captured.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", captured.Model)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != providers.RoleSystem {
		t.Errorf("expected system + user messages, got %+v", captured.Messages)
	}
}

type capturingProvider struct {
	fakeProvider
	captured **providers.CompletionRequest
}

func (c *capturingProvider) SendCompletion(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
	*c.captured = req
	return c.fakeProvider.SendCompletion(ctx, req)
}

func TestCacheKeyDistinguishesFields(t *testing.T) {
	base := CacheKey("value", "question", "openai", "gpt-4o-mini")

	if CacheKey("value", "question", "openai", "gpt-4o-mini") != base {
		t.Error("identical inputs must produce identical keys")
	}

	variants := []string{
		CacheKey("value2", "question", "openai", "gpt-4o-mini"),
		CacheKey("value", "question2", "openai", "gpt-4o-mini"),
		CacheKey("value", "question", "anthropic", "gpt-4o-mini"),
		CacheKey("value", "question", "openai", "gpt-4o"),
		// Shifting bytes between fields must not collide.
		CacheKey("valueq", "uestion", "openai", "gpt-4o-mini"),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collides with base key", i)
		}
	}
}
