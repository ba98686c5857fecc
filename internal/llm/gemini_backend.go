package llm

import (
	"context"
	"fmt"
	"slices"

	"google.golang.org/genai"
)

const geminiGenerateContentAction = "generateContent"

type geminiBackend struct {
	client *genai.Client
	model  string
}

func newGeminiBackend(ctx context.Context, model, apiKey string, opts GeneratorOptions) (*geminiBackend, error) {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, NewConfigError("gemini: create client: %v", err)
	}
	return &geminiBackend{client: client, model: model}, nil
}

func (b *geminiBackend) Name() string {
	return fmt.Sprintf("gemini (%s)", b.model)
}

func (b *geminiBackend) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(prompt), nil)
	if err != nil {
		return "", ClassifyGeminiError(err)
	}
	return resp.Text(), nil
}

// ListGenerateContentModels returns the names of the models the key can
// reach that support generateContent. Only the first page is read.
func (b *geminiBackend) ListGenerateContentModels(ctx context.Context) ([]string, error) {
	page, err := b.client.Models.List(ctx, nil)
	if err != nil {
		return nil, ClassifyGeminiError(err)
	}

	var names []string
	for _, m := range page.Items {
		if slices.Contains(m.SupportedActions, geminiGenerateContentAction) {
			names = append(names, m.Name)
		}
	}
	return names, nil
}

// ModelLister is implemented by generators that can enumerate their models.
type ModelLister interface {
	ListGenerateContentModels(ctx context.Context) ([]string, error)
}
