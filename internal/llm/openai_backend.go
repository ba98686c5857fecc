package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

type openAIBackend struct {
	client openai.Client
	model  string
}

func newOpenAIBackend(model, apiKey string, opts GeneratorOptions) *openAIBackend {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}
	return &openAIBackend{client: openai.NewClient(reqOpts...), model: model}
}

func (b *openAIBackend) Name() string {
	return fmt.Sprintf("openai (%s)", b.model)
}

func (b *openAIBackend) Generate(ctx context.Context, prompt string) (string, error) {
	params := responses.ResponseNewParams{
		Input: responses.ResponseNewParamsInputUnion{OfString: openai.String(prompt)},
		Model: b.model,
		Store: openai.Bool(false),
	}

	resp, err := b.client.Responses.New(ctx, params)
	if err != nil {
		return "", ClassifyOpenAIError(err)
	}
	return resp.OutputText(), nil
}
