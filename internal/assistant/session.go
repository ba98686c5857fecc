package assistant

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/openai/openai-go/v3"

	"github.com/ansg191/devassist/internal/config"
	"github.com/ansg191/devassist/internal/llm"
)

// Manager runs the assistant conversation lifecycle against the remote API.
// Errors from the provider are returned as *llm.ProviderError, never retried.
type Manager struct {
	factory *ClientFactory
	persona config.AgentConfig
}

func NewManager(factory *ClientFactory, persona config.AgentConfig) *Manager {
	return &Manager{factory: factory, persona: persona}
}

// Persona returns the assistant configuration used by CreateAssistant and RunAssistant.
func (m *Manager) Persona() config.AgentConfig {
	return m.persona
}

// CreateAssistant registers a new remote assistant every time it is called.
func (m *Manager) CreateAssistant(ctx context.Context) (string, error) {
	client, err := m.factory.Client()
	if err != nil {
		return "", err
	}

	params := openai.BetaAssistantNewParams{
		Model:        openai.ChatModel(m.persona.Model),
		Name:         openai.String(m.persona.Name),
		Instructions: openai.String(m.persona.Instructions),
	}
	if m.persona.Temperature != nil {
		params.Temperature = openai.Float(*m.persona.Temperature)
	}

	asst, err := client.Beta.Assistants.New(ctx, params)
	if err != nil {
		return "", llm.ClassifyOpenAIError(err)
	}

	slog.Info("assistant created", "assistant_id", asst.ID, "model", m.persona.Model)
	return asst.ID, nil
}

// CreateThread opens a new, empty conversation thread.
func (m *Manager) CreateThread(ctx context.Context) (string, error) {
	client, err := m.factory.Client()
	if err != nil {
		return "", err
	}

	thread, err := client.Beta.Threads.New(ctx, openai.BetaThreadNewParams{})
	if err != nil {
		return "", llm.ClassifyOpenAIError(err)
	}
	return thread.ID, nil
}

// AddMessage appends a user message to threadID. The thread id is not
// validated locally; unknown ids surface as provider errors.
func (m *Manager) AddMessage(ctx context.Context, threadID, content string) error {
	client, err := m.factory.Client()
	if err != nil {
		return err
	}

	_, err = client.Beta.Threads.Messages.New(ctx, threadID, openai.BetaThreadMessageNewParams{
		Role: openai.BetaThreadMessageNewParamsRoleUser,
		Content: openai.BetaThreadMessageNewParamsContentUnion{
			OfString: openai.String(content),
		},
	})
	if err != nil {
		return llm.ClassifyOpenAIError(err)
	}
	return nil
}

// RunAssistant starts an asynchronous run and returns its id without waiting.
func (m *Manager) RunAssistant(ctx context.Context, threadID, assistantID string) (string, error) {
	client, err := m.factory.Client()
	if err != nil {
		return "", err
	}

	params := openai.BetaThreadRunNewParams{
		AssistantID: assistantID,
	}
	if m.persona.RunInstructions != "" {
		params.AdditionalInstructions = openai.String(m.persona.RunInstructions)
	}

	run, err := client.Beta.Threads.Runs.New(ctx, threadID, params)
	if err != nil {
		return "", llm.ClassifyOpenAIError(err)
	}
	return run.ID, nil
}

// RunResult is the outcome of a single status check.
// Messages is only populated once the run has left queued/in_progress.
type RunResult struct {
	Status   string   `json:"status"`
	Messages []string `json:"messages"`
}

// Pending reports whether the run is still queued or in progress.
func (r RunResult) Pending() bool {
	return IsPendingStatus(r.Status)
}

// MarshalJSON omits "messages" while the run is pending and always emits it
// afterwards, even when no text was found.
func (r RunResult) MarshalJSON() ([]byte, error) {
	if r.Pending() {
		return json.Marshal(struct {
			Status string `json:"status"`
		}{r.Status})
	}

	messages := r.Messages
	if messages == nil {
		messages = []string{}
	}
	return json.Marshal(struct {
		Status   string   `json:"status"`
		Messages []string `json:"messages"`
	}{r.Status, messages})
}

// IsPendingStatus reports whether a run status means "poll again later".
func IsPendingStatus(status string) bool {
	switch openai.RunStatus(status) {
	case openai.RunStatusQueued, openai.RunStatusInProgress:
		return true
	default:
		return false
	}
}

// GetRunResult checks a run once. While the run is pending only the status
// is returned. Otherwise every text block of every message in the thread is
// collected in provider order, whatever the message's role.
func (m *Manager) GetRunResult(ctx context.Context, threadID, runID string) (*RunResult, error) {
	client, err := m.factory.Client()
	if err != nil {
		return nil, err
	}

	run, err := client.Beta.Threads.Runs.Get(ctx, threadID, runID)
	if err != nil {
		return nil, llm.ClassifyOpenAIError(err)
	}

	result := &RunResult{Status: string(run.Status)}
	if result.Pending() {
		return result, nil
	}

	page, err := client.Beta.Threads.Messages.List(ctx, threadID, openai.BetaThreadMessageListParams{})
	if err != nil {
		return nil, llm.ClassifyOpenAIError(err)
	}

	result.Messages = textBlocks(page.Data)
	return result, nil
}

func textBlocks(messages []openai.Message) []string {
	texts := make([]string, 0, len(messages))
	for _, msg := range messages {
		for _, block := range msg.Content {
			if block.Type == "text" {
				texts = append(texts, block.Text.Value)
			}
		}
	}
	return texts
}
