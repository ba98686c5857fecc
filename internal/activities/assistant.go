package activities

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/ansg191/devassist/internal/assistant"
	"github.com/ansg191/devassist/internal/llm"
)

// AssistantActivities exposes the assistant session operations to Temporal.
// Register the struct pointer with the worker; every exported method becomes
// an activity.
type AssistantActivities struct {
	Manager *assistant.Manager
}

func NewAssistantActivities(m *assistant.Manager) *AssistantActivities {
	return &AssistantActivities{Manager: m}
}

type AddMessageRequest struct {
	ThreadID string `json:"thread_id"`
	Content  string `json:"content"`
}

type RunAssistantRequest struct {
	ThreadID    string `json:"thread_id"`
	AssistantID string `json:"assistant_id"`
}

type GetRunResultRequest struct {
	ThreadID string `json:"thread_id"`
	RunID    string `json:"run_id"`
}

func (a *AssistantActivities) CreateAssistant(ctx context.Context) (string, error) {
	id, err := a.Manager.CreateAssistant(ctx)
	if err != nil {
		return "", classifyActivityError(err)
	}
	activity.GetLogger(ctx).Info("Created assistant", "AssistantID", id)
	return id, nil
}

func (a *AssistantActivities) CreateThread(ctx context.Context) (string, error) {
	id, err := a.Manager.CreateThread(ctx)
	if err != nil {
		return "", classifyActivityError(err)
	}
	return id, nil
}

func (a *AssistantActivities) AddMessage(ctx context.Context, req AddMessageRequest) error {
	return classifyActivityError(a.Manager.AddMessage(ctx, req.ThreadID, req.Content))
}

func (a *AssistantActivities) RunAssistant(ctx context.Context, req RunAssistantRequest) (string, error) {
	id, err := a.Manager.RunAssistant(ctx, req.ThreadID, req.AssistantID)
	if err != nil {
		return "", classifyActivityError(err)
	}
	return id, nil
}

func (a *AssistantActivities) GetRunResult(ctx context.Context, req GetRunResultRequest) (*assistant.RunResult, error) {
	res, err := a.Manager.GetRunResult(ctx, req.ThreadID, req.RunID)
	if err != nil {
		return nil, classifyActivityError(err)
	}
	return res, nil
}

// classifyActivityError stops Temporal from retrying failures that cannot
// succeed on a second attempt: missing configuration and provider 4xx
// responses other than rate limiting.
func classifyActivityError(err error) error {
	if err == nil {
		return nil
	}
	if llm.IsConfigError(err) {
		return temporal.NewNonRetryableApplicationError(err.Error(), "ConfigError", err)
	}
	var provErr *llm.ProviderError
	if errors.As(err, &provErr) && provErr.ClientError() {
		return temporal.NewNonRetryableApplicationError(err.Error(), "ProviderClientError", err)
	}
	return err
}
