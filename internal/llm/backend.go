package llm

import (
	"context"
	"net/http"
)

// Generator submits a single prompt to a generative model and returns its text.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorOptions carries transport overrides, mostly for tests.
type GeneratorOptions struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewGenerator(ctx context.Context, ref ModelRef, apiKey string, opts GeneratorOptions) (Generator, error) {
	if apiKey == "" {
		return nil, MissingCredentialError(CredentialEnv(ref.Backend))
	}
	switch ref.Backend {
	case BackendGemini:
		return newGeminiBackend(ctx, ref.Model, apiKey, opts)
	case BackendOpenAI:
		return newOpenAIBackend(ref.Model, apiKey, opts), nil
	case BackendAnthropic:
		return newAnthropicBackend(ref.Model, apiKey, opts), nil
	default:
		return nil, NewConfigError("unsupported backend %q", ref.Backend)
	}
}
