package llm

import (
	"context"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicDefaultMaxTokens int64 = 8192

type anthropicBackend struct {
	client anthropic.Client
	model  string
}

func newAnthropicBackend(model, apiKey string, opts GeneratorOptions) *anthropicBackend {
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
	return &anthropicBackend{client: anthropic.NewClient(reqOpts...), model: model}
}

func (b *anthropicBackend) Name() string {
	return fmt.Sprintf("anthropic (%s)", b.model)
}

func (b *anthropicBackend) Generate(ctx context.Context, prompt string) (string, error) {
	message, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(b.model),
		MaxTokens: anthropicDefaultMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", ClassifyAnthropicError(err)
	}
	if message == nil {
		return "", &ProviderError{Provider: string(BackendAnthropic), Err: fmt.Errorf("anthropic returned nil message")}
	}

	var output strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			output.WriteString(block.Text)
		}
	}
	return output.String(), nil
}
