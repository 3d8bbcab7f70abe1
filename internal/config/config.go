package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderGemini LLMProvider = "gemini"
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	// LLM settings
	LLMProvider  LLMProvider `env:"LLM_PROVIDER" envDefault:"gemini"`
	GeminiAPIKey string      `env:"GEMINI_API_KEY"`
	// APIKey is the legacy variable name accepted as a Gemini key.
	APIKey           string `env:"API_KEY"`
	GeminiModel      string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiBaseURL    string `env:"GEMINI_BASE_URL"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL"`
	OpenAIModel      string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	YandexOAuthToken string `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string `env:"YANDEX_FOLDER_ID"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	// Generation
	Temperature     float32       `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	MaxOutputTokens int           `env:"LLM_MAX_OUTPUT_TOKENS" envDefault:"300"`
	RequestTimeout  time.Duration `env:"LLM_REQUEST_TIMEOUT" envDefault:"30s"`

	// Prompts
	SystemPromptPath string `env:"SYSTEM_PROMPT_PATH" envDefault:"prompts/system_prompt.txt"`
	AssistantName    string `env:"ASSISTANT_NAME" envDefault:"ManitAI"`
	// Greeting overrides the session's built-in greeting when set.
	Greeting string `env:"CHAT_GREETING"`

	// Typewriter
	RevealInterval     time.Duration `env:"REVEAL_INTERVAL" envDefault:"20ms"`
	RevealCharsPerTick int           `env:"REVEAL_CHARS_PER_TICK" envDefault:"1"`

	// Diagnostics
	LogFilePath     string `env:"LOG_FILE_PATH" envDefault:"logs/uplink.log"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string `env:"LOG_FORMAT" envDefault:"text"`
	JournalFilePath string `env:"JOURNAL_FILE_PATH" envDefault:"logs/journal.jsonl"`
	// ReportSchedule is a cron spec; empty means the scheduler default.
	ReportSchedule string `env:"REPORT_SCHEDULE"`
	// JournalDriver is jsonl or sqlite; empty picks by file extension.
	JournalDriver string `env:"JOURNAL_DRIVER"`
}

// New parses the process environment into a validated Config.
func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderGemini, ProviderOpenAI, ProviderYandex:
	default:
		return fmt.Errorf("unknown llm provider: %s", c.LLMProvider)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature %.2f out of range [0, 2]", c.Temperature)
	}
	if c.MaxOutputTokens <= 0 {
		return fmt.Errorf("max output tokens must be positive, got %d", c.MaxOutputTokens)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.RevealInterval <= 0 {
		return fmt.Errorf("reveal interval must be positive, got %s", c.RevealInterval)
	}
	if c.RevealCharsPerTick <= 0 {
		return fmt.Errorf("reveal chars per tick must be positive, got %d", c.RevealCharsPerTick)
	}
	switch c.JournalDriver {
	case "", "jsonl", "sqlite":
	default:
		return fmt.Errorf("unknown journal driver: %s", c.JournalDriver)
	}
	return nil
}

// GeminiKey returns GEMINI_API_KEY, falling back to API_KEY.
func (c *Config) GeminiKey() string {
	if c.GeminiAPIKey != "" {
		return c.GeminiAPIKey
	}
	return c.APIKey
}

// CredentialsPresent reports whether the selected provider has what it needs
// to make a request.
func (c *Config) CredentialsPresent() bool {
	switch c.LLMProvider {
	case ProviderGemini:
		return c.GeminiKey() != ""
	case ProviderOpenAI:
		return c.OpenAIAPIKey != ""
	case ProviderYandex:
		return c.YandexOAuthToken != "" && c.YandexFolderID != ""
	}
	return false
}

// Model returns the model name used for the selected provider.
func (c *Config) Model() string {
	switch c.LLMProvider {
	case ProviderGemini:
		return c.GeminiModel
	case ProviderOpenAI:
		return c.OpenAIModel
	case ProviderYandex:
		return "yandexgpt-lite"
	}
	return ""
}
