package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"gemini with key", func(c *Config) { c.Gemini.APIKey = "k" }, ""},
		{"gemini without key", func(c *Config) {}, "LITTLEMATH_LLM_GEMINI_API_KEY"},
		{"openrouter without key", func(c *Config) { c.Provider = ProviderOpenRouter }, "LITTLEMATH_LLM_OPENROUTER_API_KEY"},
		{"mock needs nothing", func(c *Config) { c.Provider = ProviderMock }, ""},
		{"unknown provider", func(c *Config) { c.Provider = "cohere" }, "unknown LLM provider"},
		{"zero attempts", func(c *Config) {
			c.Provider = ProviderMock
			c.Retry.MaxAttempts = 0
		}, "max_attempts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDiscoverConfig_PriorityOrder(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENAI_API_KEY", "sk-oai")

	cfg, ok := DiscoverConfig(DefaultConfig())
	require.True(t, ok)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk-oai", cfg.OpenAI.APIKey)
	assert.Empty(t, cfg.Anthropic.APIKey)
}

func TestDiscoverConfig_NoKeys(t *testing.T) {
	clearKeyEnv(t)

	base := DefaultConfig()
	cfg, ok := DiscoverConfig(base)
	assert.False(t, ok)
	assert.Equal(t, base, cfg)
}

func TestNewProviderFromEnv_NoKeys(t *testing.T) {
	clearKeyEnv(t)

	_, err := NewProviderFromEnv(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock

	p, err := NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	// An empty mock queue surfaces as a provider failure through the stack.
	_, err = p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestNewProvider_MissingKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderAnthropic

	_, err := NewProvider(context.Background(), cfg, nil, nil)
	assert.ErrorContains(t, err, "LITTLEMATH_LLM_ANTHROPIC_API_KEY")
}

func TestPurposeContext(t *testing.T) {
	assert.Equal(t, "unknown", PurposeFrom(context.Background()))

	ctx := WithPurpose(context.Background(), "problem-gen")
	assert.Equal(t, "problem-gen", PurposeFrom(ctx))
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		input  string
		models map[string]string
		want   string
	}{
		{"gemini-flash", geminiModels, "gemini-2.5-flash"},
		{"gemini-pro", geminiModels, "gemini-2.5-pro"},
		{"gemini-2.0-flash", geminiModels, "gemini-2.0-flash"},
		{"claude-haiku", anthropicModels, "claude-haiku-4-5-20251001"},
		{"gpt-mini", openaiModels, "gpt-4.1-mini"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, tt.models); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-2.5-flash")
	require.NotNil(t, c)
	assert.InDelta(t, 0.3+2.5, c.Cost(1_000_000, 1_000_000), 1e-9)

	routed := LookupCost("google/gemini-2.5-flash")
	require.NotNil(t, routed)
	assert.Equal(t, *c, *routed)

	assert.Nil(t, LookupCost("no-such-model"))
}

func TestMockProvider_FIFO(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"n":1}`)},
		MockResponse{Content: json.RawMessage(`{"n":2}`)},
	)

	first, err := mock.Generate(context.Background(), Request{System: "a"})
	require.NoError(t, err)
	second, err := mock.Generate(context.Background(), Request{System: "b"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"n":1}`, string(first.Content))
	assert.JSONEq(t, `{"n":2}`, string(second.Content))
	assert.Equal(t, 2, mock.CallCount())
	assert.Equal(t, "b", mock.Calls[1].System)
}
