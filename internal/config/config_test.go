package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears keys for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { _ = os.Setenv(k, v) })
		}
		_ = os.Unsetenv(k)
	}
}

func TestNew_Defaults(t *testing.T) {
	unsetenv(t, "LLM_PROVIDER", "GEMINI_API_KEY", "API_KEY", "CHAT_GREETING", "ASSISTANT_NAME", "REPORT_SCHEDULE")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-6)
	assert.Equal(t, 300, cfg.MaxOutputTokens)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 20*time.Millisecond, cfg.RevealInterval)
	assert.Equal(t, 1, cfg.RevealCharsPerTick)
	assert.Equal(t, "ManitAI", cfg.AssistantName)
	assert.Empty(t, cfg.Greeting, "greeting default lives in the session")
	assert.Empty(t, cfg.ReportSchedule, "schedule default lives in the scheduler")
	assert.False(t, cfg.CredentialsPresent())
}

func TestNew_LegacyAPIKeyFallback(t *testing.T) {
	unsetenv(t, "LLM_PROVIDER", "GEMINI_API_KEY")
	t.Setenv("API_KEY", "legacy")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.GeminiKey())
	assert.True(t, cfg.CredentialsPresent())
}

func TestNew_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "anthropic")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown llm provider")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			LLMProvider:        ProviderOpenAI,
			Temperature:        0.7,
			MaxOutputTokens:    300,
			RequestTimeout:     time.Second,
			RevealInterval:     time.Millisecond,
			RevealCharsPerTick: 1,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }},
		{"negative temperature", func(c *Config) { c.Temperature = -0.1 }},
		{"zero max tokens", func(c *Config) { c.MaxOutputTokens = 0 }},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"zero reveal interval", func(c *Config) { c.RevealInterval = 0 }},
		{"zero chars per tick", func(c *Config) { c.RevealCharsPerTick = 0 }},
	}

	require.NoError(t, base().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestCredentialsPresent_Yandex(t *testing.T) {
	c := &Config{LLMProvider: ProviderYandex, YandexOAuthToken: "tok"}
	assert.False(t, c.CredentialsPresent(), "folder id is required too")

	c.YandexFolderID = "folder"
	assert.True(t, c.CredentialsPresent())
}

func TestNew_JournalDriver(t *testing.T) {
	unsetenv(t, "LLM_PROVIDER")
	t.Setenv("JOURNAL_DRIVER", "sqlite")
	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.JournalDriver)

	t.Setenv("JOURNAL_DRIVER", "postgres")
	_, err = New()
	assert.ErrorContains(t, err, "unknown journal driver")
}
