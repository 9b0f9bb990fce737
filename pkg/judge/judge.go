package judge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/config"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/providers"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/telemetry/metrics"
)

// Judge answers a yes/no question about a value.
//
// Implementations must be fail-closed: any answer that is not an unambiguous
// "yes" is reported as false, and errors are returned rather than guessed
// around.
type Judge interface {
	// Evaluate asks the question about the value and returns the boolean
	// verdict. The value is the already-resolved content being judged, not a
	// variable name.
	Evaluate(ctx context.Context, value, question string) (bool, error)
}

// systemPrompt instructs the model to answer with a single word. The answer
// parsing below depends on this framing.
const systemPrompt = `You are a strict classifier. You will be shown a VALUE and a QUESTION about it.
Answer with exactly one word: "yes" or "no". Do not explain.`

// ProviderJudge is a Judge backed by an LLM completion provider.
type ProviderJudge struct {
	provider providers.Provider
	config   config.JudgeConfig
	metrics  *metrics.Collector
	logger   *slog.Logger
}

// NewProviderJudge creates a Judge that submits questions through the given
// completion provider. The collector may be nil when metrics are not wired.
func NewProviderJudge(provider providers.Provider, cfg config.JudgeConfig, collector *metrics.Collector) *ProviderJudge {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = config.DefaultJudgeMaxTokens
	}
	return &ProviderJudge{
		provider: provider,
		config:   cfg,
		metrics:  collector,
		logger:   slog.Default().With("component", "judge"),
	}
}

// Evaluate submits the value and question to the provider and maps the reply
// to a boolean. Temperature is pinned to zero so repeated calls with the same
// inputs are as deterministic as the provider allows.
func (j *ProviderJudge) Evaluate(ctx context.Context, value, question string) (bool, error) {
	req := &providers.CompletionRequest{
		Model: j.config.Model,
		Messages: []providers.Message{
			{Role: providers.RoleSystem, Content: systemPrompt},
			{Role: providers.RoleUser, Content: fmt.Sprintf("VALUE:\n%s\n\nQUESTION: %s", value, question)},
		},
		Temperature: 0,
		MaxTokens:   j.config.MaxTokens,
	}

	start := time.Now()
	resp, err := j.provider.SendCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		if j.metrics != nil {
			j.metrics.RecordJudgeCall(j.provider.GetType(), j.config.Model, "error", duration)
		}
		return false, fmt.Errorf("judge call failed: %w", err)
	}

	verdict := ParseAnswer(resp.Content)

	outcome := "no"
	if verdict {
		outcome = "yes"
	}
	if j.metrics != nil {
		j.metrics.RecordJudgeCall(j.provider.GetType(), j.config.Model, outcome, duration)
	}

	j.logger.Debug("judge verdict",
		"question", question,
		"verdict", verdict,
		"duration_ms", duration.Milliseconds(),
		"tokens", resp.Usage.TotalTokens,
	)

	return verdict, nil
}

// ParseAnswer maps a raw model reply to a boolean verdict. The reply is
// trimmed of whitespace and surrounding punctuation and lower-cased; only an
// exact "yes" counts as true. Anything else, including "maybe", "probably",
// and empty replies, is false.
func ParseAnswer(raw string) bool {
	answer := strings.ToLower(strings.TrimSpace(raw))
	answer = strings.Trim(answer, ".!\"' ")
	return answer == "yes"
}
