package llm

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"neural-uplink/internal/config"
)

// Factory creates LLM clients with consistent logic
type Factory struct {
	Provider           config.LLMProvider
	GeminiAPIKey       string
	GeminiBaseURL      string
	GeminiModel        string
	OpenaiAPIKey       string
	OpenaiBaseURL      string
	OpenaiModel        string
	OpenRouterReferrer string
	OpenRouterTitle    string
	YandexOAuthToken   string
	YandexFolderID     string
	Sampling           Sampling
	// Log receives provider warnings; nil means the logrus standard logger.
	Log logrus.FieldLogger
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		Provider:           cfg.LLMProvider,
		GeminiAPIKey:       cfg.GeminiKey(),
		GeminiBaseURL:      cfg.GeminiBaseURL,
		GeminiModel:        cfg.GeminiModel,
		OpenaiAPIKey:       cfg.OpenAIAPIKey,
		OpenaiBaseURL:      cfg.OpenAIBaseURL,
		OpenaiModel:        cfg.OpenAIModel,
		OpenRouterReferrer: cfg.OpenRouterReferrer,
		OpenRouterTitle:    cfg.OpenRouterTitle,
		YandexOAuthToken:   cfg.YandexOAuthToken,
		YandexFolderID:     cfg.YandexFolderID,
		Sampling: Sampling{
			Temperature:     cfg.Temperature,
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
	}
}

// CreateClient builds the client for the configured provider. It returns
// ErrMissingCredentials without touching the network when the provider's
// credentials are absent.
func (f *Factory) CreateClient(ctx context.Context) (Client, error) {
	switch f.Provider {
	case config.ProviderGemini:
		if f.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini: %w", ErrMissingCredentials)
		}
		return NewGemini(ctx, f.GeminiAPIKey, f.GeminiBaseURL, f.GeminiModel, f.Sampling)
	case config.ProviderOpenAI:
		if f.OpenaiAPIKey == "" {
			return nil, fmt.Errorf("openai: %w", ErrMissingCredentials)
		}
		return NewOpenAI(f.OpenaiAPIKey, f.OpenaiBaseURL, f.OpenaiModel, f.OpenRouterReferrer, f.OpenRouterTitle, f.Sampling), nil
	case config.ProviderYandex:
		if f.YandexOAuthToken == "" || f.YandexFolderID == "" {
			return nil, fmt.Errorf("yandex: %w", ErrMissingCredentials)
		}
		f.warnYandexSampling()
		return NewYandex(f.YandexOAuthToken, f.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", f.Provider)
	}
}

// warnYandexSampling reports configured sampling that yagpt will not send.
func (f *Factory) warnYandexSampling() {
	if f.Sampling == YandexSampling {
		return
	}
	log := f.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log.WithFields(logrus.Fields{
		"provider":               config.ProviderYandex,
		"configured_temperature": f.Sampling.Temperature,
		"configured_max_tokens":  f.Sampling.MaxOutputTokens,
		"effective_temperature":  YandexSampling.Temperature,
		"effective_max_tokens":   YandexSampling.MaxOutputTokens,
	}).Warn("yandex ignores LLM_TEMPERATURE and LLM_MAX_OUTPUT_TOKENS")
}
