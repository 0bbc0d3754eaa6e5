package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: "first", Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: "second"},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "a"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Content != "first" {
		t.Fatalf("expected first, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "b"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Content != "second" {
		t.Fatalf("expected second, got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_FallbackAfterQueue(t *testing.T) {
	mock := NewMockText("queued")
	mock.Fallback = "offline"

	for i, want := range []string{"queued", "offline", "offline"} {
		resp, err := mock.Generate(context.Background(), Request{})
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if resp.Content != want {
			t.Fatalf("call %d: expected %q, got %q", i, want, resp.Content)
		}
	}
}

func TestNewProvider_MockAnswersWithoutKey(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	for i := 0; i < 2; i++ {
		resp, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hello"}}})
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if resp.Content != offlineReply {
			t.Fatalf("call %d: expected offline reply, got %q", i, resp.Content)
		}
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockText("hi")

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	last, ok := mock.LastCall()
	if !ok || last.System != "sys" {
		t.Fatalf("expected system 'sys', got %q", last.System)
	}
}

func TestMockProvider_ModelID(t *testing.T) {
	if NewMockProvider().ModelID() != "mock" {
		t.Fatal("expected 'mock'")
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, PurposeMCQ)
	if p := PurposeFrom(ctx); p != PurposeMCQ {
		t.Fatalf("expected %q, got %q", PurposeMCQ, p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"openrouter with key", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "sk-or"}}, false},
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"negative timeout", Config{Provider: "mock", Timeout: -time.Second}, true},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("EDUBOT_LLM_PROVIDER", "anthropic")
	t.Setenv("EDUBOT_ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("EDUBOT_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "anthropic" || cfg.Anthropic.APIKey != "sk-ant" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("timeout = %s, want 5s", cfg.Timeout)
	}
	if cfg.OpenRouter.Model != "anthropic/claude-3-haiku" {
		t.Fatalf("default openrouter model changed: %q", cfg.OpenRouter.Model)
	}
}

func TestDiscoverConfig_BareAPIKeyIsOpenRouter(t *testing.T) {
	for _, k := range []string{"OPENROUTER_API_KEY", "ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY"} {
		t.Setenv(k, "")
	}
	t.Setenv("API_KEY", "sk-or-legacy")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected a config")
	}
	if cfg.Provider != "openrouter" || cfg.OpenRouter.APIKey != "sk-or-legacy" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"rate limit", &ErrRateLimit{}, http.StatusTooManyRequests},
		{"timeout", &ErrTimeout{After: time.Second}, http.StatusGatewayTimeout},
		{"upstream status", &ErrProviderUnavailable{Status: http.StatusServiceUnavailable}, http.StatusServiceUnavailable},
		{"no upstream status", &ErrProviderUnavailable{}, http.StatusBadGateway},
		{"invalid response", &ErrInvalidResponse{Err: errors.New("empty")}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Fatalf("HTTPStatus = %d, want %d", got, tt.want)
			}
		})
	}
}
