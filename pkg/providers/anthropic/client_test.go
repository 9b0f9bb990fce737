package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/providers"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewProvider(providers.ProviderConfig{
		Name:    "anthropic-test",
		Type:    "anthropic",
		BaseURL: server.URL,
		APIKey:  "test-key",
	})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	return p
}

func TestSendCompletion(t *testing.T) {
	var gotReq AnthropicRequest
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %q, want /v1/messages", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Error("missing x-api-key header")
		}
		if r.Header.Get("anthropic-version") != DefaultAnthropicVersion {
			t.Error("missing anthropic-version header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}

		json.NewEncoder(w).Encode(AnthropicResponse{
			ID:         "msg_123",
			Model:      "claude-sonnet-4-20250514",
			Content:    []ContentBlock{{Type: "text", Text: "yes"}},
			StopReason: "end_turn",
			Usage:      AnthropicUsage{InputTokens: 20, OutputTokens: 1},
		})
	})

	resp, err := p.SendCompletion(context.Background(), &providers.CompletionRequest{
		Model: "claude-sonnet-4-20250514",
		Messages: []providers.Message{
			{Role: providers.RoleSystem, Content: "Answer yes or no."},
			{Role: providers.RoleUser, Content: "Is water wet?"},
		},
		MaxTokens: 8,
	})
	if err != nil {
		t.Fatalf("SendCompletion failed: %v", err)
	}

	if gotReq.System != "Answer yes or no." {
		t.Errorf("system = %q, want system message extracted", gotReq.System)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != providers.RoleUser {
		t.Errorf("messages = %+v, want single user message", gotReq.Messages)
	}
	if gotReq.MaxTokens != 8 {
		t.Errorf("max_tokens = %d, want 8", gotReq.MaxTokens)
	}

	if resp.Content != "yes" {
		t.Errorf("Content = %q, want %q", resp.Content, "yes")
	}
	if resp.FinishReason != providers.FinishReasonStop {
		t.Errorf("FinishReason = %q, want %q", resp.FinishReason, providers.FinishReasonStop)
	}
	if resp.Usage.TotalTokens != 21 {
		t.Errorf("TotalTokens = %d, want 21", resp.Usage.TotalTokens)
	}
}

func TestSendCompletionAuthError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := p.SendCompletion(context.Background(), &providers.CompletionRequest{
		Model:    "claude-sonnet-4-20250514",
		Messages: []providers.Message{{Role: providers.RoleUser, Content: "hi"}},
	})
	if _, ok := err.(*providers.AuthError); !ok {
		t.Errorf("expected AuthError, got %T: %v", err, err)
	}
}

func TestTransformRequestRejectsBadSequence(t *testing.T) {
	tests := []struct {
		name     string
		messages []providers.Message
		wantErr  bool
	}{
		{
			"user only",
			[]providers.Message{{Role: providers.RoleUser, Content: "a"}},
			false,
		},
		{
			"alternating",
			[]providers.Message{
				{Role: providers.RoleUser, Content: "a"},
				{Role: providers.RoleAssistant, Content: "b"},
				{Role: providers.RoleUser, Content: "c"},
			},
			false,
		},
		{
			"assistant first",
			[]providers.Message{{Role: providers.RoleAssistant, Content: "a"}},
			true,
		},
		{
			"consecutive user",
			[]providers.Message{
				{Role: providers.RoleUser, Content: "a"},
				{Role: providers.RoleUser, Content: "b"},
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := transformRequest(&providers.CompletionRequest{
				Model:    "claude-sonnet-4-20250514",
				Messages: tt.messages,
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("transformRequest error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewProviderRequiresAPIKey(t *testing.T) {
	_, err := NewProvider(providers.ProviderConfig{Name: "a", Type: "anthropic"})
	if _, ok := err.(*providers.ConfigError); !ok {
		t.Errorf("expected ConfigError, got %T", err)
	}
}
