// Package assistant drives the OpenAI Assistants API: personas, threads,
// messages and asynchronous runs. It stores nothing locally.
package assistant

import (
	"os"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/ansg191/devassist/internal/llm"
)

// DefaultCredentialEnv holds the API key used when a ClientFactory has no EnvVar.
const DefaultCredentialEnv = "OPENAI_API_KEY"

// ClientFactory builds authenticated OpenAI clients on demand.
// Handles are not cached; the environment is read on every call.
type ClientFactory struct {
	// EnvVar is the credential variable name. Empty means OPENAI_API_KEY.
	EnvVar string
	// Options are appended after the credential, e.g. option.WithBaseURL.
	Options []option.RequestOption
}

func NewClientFactory(opts ...option.RequestOption) *ClientFactory {
	return &ClientFactory{Options: opts}
}

func (f *ClientFactory) envVar() string {
	if f == nil || f.EnvVar == "" {
		return DefaultCredentialEnv
	}
	return f.EnvVar
}

// Client returns a fresh client, or a *llm.ConfigError if the credential is
// unset. No request is made.
func (f *ClientFactory) Client() (openai.Client, error) {
	envVar := f.envVar()
	apiKey := os.Getenv(envVar)
	if apiKey == "" {
		return openai.Client{}, llm.NewConfigError("%s is missing", envVar)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if f != nil {
		opts = append(opts, f.Options...)
	}
	return openai.NewClient(opts...), nil
}

// GetClient is ClientFactory.Client with default settings.
func GetClient() (openai.Client, error) {
	return (*ClientFactory)(nil).Client()
}
