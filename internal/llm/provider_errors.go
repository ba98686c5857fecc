package llm

import (
	"errors"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

func ClassifyOpenAIError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &ProviderError{Provider: string(BackendOpenAI), StatusCode: apiErr.StatusCode, Err: err}
	}
	return &ProviderError{Provider: string(BackendOpenAI), Err: err}
}

func ClassifyAnthropicError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &ProviderError{Provider: string(BackendAnthropic), StatusCode: apiErr.StatusCode, Err: err}
	}
	return &ProviderError{Provider: string(BackendAnthropic), Err: err}
}

func ClassifyGeminiError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{Provider: string(BackendGemini), StatusCode: apiErr.Code, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &ProviderError{Provider: string(BackendGemini), StatusCode: apiErrPtr.Code, Err: err}
	}
	return &ProviderError{Provider: string(BackendGemini), Err: err}
}

// ClassifyProviderError converts an SDK error into a *ProviderError.
// ConfigErrors and errors that are already classified pass through.
func ClassifyProviderError(provider string, err error) error {
	if err == nil || IsConfigError(err) || IsProviderError(err) {
		return err
	}
	switch provider {
	case string(BackendOpenAI):
		return ClassifyOpenAIError(err)
	case string(BackendAnthropic):
		return ClassifyAnthropicError(err)
	case string(BackendGemini):
		return ClassifyGeminiError(err)
	default:
		return &ProviderError{Provider: provider, Err: err}
	}
}
