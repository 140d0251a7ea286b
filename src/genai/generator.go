// Package genai sends single-shot prompts to a hosted text-generation model.
package genai

import (
	"context"
	"net/http"

	"finpal-server/src/apperr"
	"finpal-server/src/config"
)

// Generator turns a prompt into generated text. Failures are always
// *apperr.Error of kind Generation.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts ...Option) (string, error)
}

type options struct {
	model string
}

type Option func(*options)

// WithModel overrides the provider's configured model for one call.
func WithModel(model string) Option {
	return func(o *options) {
		o.model = model
	}
}

func applyOptions(defaultModel string, opts []Option) options {
	o := options{model: defaultModel}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

const (
	errNotConfigured = "not configured"
	errRequestFailed = "request failed"
	errEmptyResponse = "empty response"
)

// Unconfigured fails every call. It stands in when no provider key is set so
// the rest of the API keeps working.
type Unconfigured struct{}

func (Unconfigured) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	return "", apperr.Generation(errNotConfigured, nil)
}

// New picks the provider named in cfg. A nil client means the default
// transport with no overall request timeout.
func New(cfg config.Config, client *http.Client) Generator {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return Unconfigured{}
		}
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, client)
	default:
		if cfg.GeminiAPIKey == "" {
			return Unconfigured{}
		}
		return NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, client)
	}
}
