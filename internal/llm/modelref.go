package llm

import (
	"fmt"
	"strings"
)

type BackendType string

const (
	BackendOpenAI    BackendType = "openai"
	BackendAnthropic BackendType = "anthropic"
	BackendGemini    BackendType = "gemini"
)

type ModelRef struct {
	Raw      string
	Backend  BackendType
	Provider string
	Model    string
}

func (r ModelRef) String() string {
	return r.Raw
}

func ParseModelRef(model string) (ModelRef, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return ModelRef{}, fmt.Errorf("model is empty")
	}

	parts := strings.Split(model, "/")
	switch len(parts) {
	case 2:
		if parts[1] == "" {
			return ModelRef{}, fmt.Errorf("model id is empty in %q", model)
		}
		switch BackendType(parts[0]) {
		case BackendOpenAI, BackendAnthropic, BackendGemini:
			return ModelRef{Raw: model, Backend: BackendType(parts[0]), Provider: parts[0], Model: parts[1]}, nil
		default:
			return ModelRef{}, fmt.Errorf("unsupported model backend %q", parts[0])
		}
	default:
		return ModelRef{}, fmt.Errorf("invalid model format %q: expected gemini/<model>, openai/<model> or anthropic/<model>", model)
	}
}

// CredentialEnv names the environment variable holding the API key for a backend.
func CredentialEnv(backend BackendType) string {
	switch backend {
	case BackendOpenAI:
		return "OPENAI_API_KEY"
	case BackendAnthropic:
		return "ANTHROPIC_API_KEY"
	case BackendGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}
