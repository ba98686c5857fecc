package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/ansg191/devassist/internal/activities"
	"github.com/ansg191/devassist/internal/assistant"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultMaxWait      = 2 * time.Minute
)

type ConversationTurnRequest struct {
	// AssistantID and ThreadID are reused when set; empty means create one.
	AssistantID  string        `json:"assistant_id,omitempty"`
	ThreadID     string        `json:"thread_id,omitempty"`
	Message      string        `json:"message"`
	PollInterval time.Duration `json:"poll_interval,omitempty"`
	MaxWait      time.Duration `json:"max_wait,omitempty"`
}

type ConversationTurnResult struct {
	AssistantID string   `json:"assistant_id"`
	ThreadID    string   `json:"thread_id"`
	RunID       string   `json:"run_id"`
	Status      string   `json:"status"`
	Messages    []string `json:"messages,omitempty"`
	// TimedOut is set when MaxWait elapsed while the run was still pending.
	TimedOut bool `json:"timed_out,omitempty"`
}

// ConversationTurnWorkflow posts one user message, starts a run and polls it
// until it leaves queued/in_progress or MaxWait elapses.
func ConversationTurnWorkflow(ctx workflow.Context, req ConversationTurnRequest) (*ConversationTurnResult, error) {
	logger := workflow.GetLogger(ctx)

	pollInterval := req.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	maxWait := req.MaxWait
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}

	// Creates and posts are not idempotent on the provider side, so each is
	// attempted once. Only the status poll retries.
	createCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Second * 30,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})
	pollCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Second * 30,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: time.Second,
			MaximumAttempts: 5,
		},
	})

	var a *activities.AssistantActivities
	result := &ConversationTurnResult{
		AssistantID: req.AssistantID,
		ThreadID:    req.ThreadID,
	}

	if result.AssistantID == "" {
		if err := workflow.ExecuteActivity(createCtx, a.CreateAssistant).Get(createCtx, &result.AssistantID); err != nil {
			return nil, err
		}
	}
	if result.ThreadID == "" {
		if err := workflow.ExecuteActivity(createCtx, a.CreateThread).Get(createCtx, &result.ThreadID); err != nil {
			return nil, err
		}
	}

	err := workflow.ExecuteActivity(createCtx, a.AddMessage, activities.AddMessageRequest{
		ThreadID: result.ThreadID,
		Content:  req.Message,
	}).Get(createCtx, nil)
	if err != nil {
		return nil, err
	}

	err = workflow.ExecuteActivity(createCtx, a.RunAssistant, activities.RunAssistantRequest{
		ThreadID:    result.ThreadID,
		AssistantID: result.AssistantID,
	}).Get(createCtx, &result.RunID)
	if err != nil {
		return nil, err
	}
	logger.Info("Started run", "ThreadID", result.ThreadID, "RunID", result.RunID)

	deadline := workflow.Now(ctx).Add(maxWait)
	for {
		var status assistant.RunResult
		err = workflow.ExecuteActivity(pollCtx, a.GetRunResult, activities.GetRunResultRequest{
			ThreadID: result.ThreadID,
			RunID:    result.RunID,
		}).Get(pollCtx, &status)
		if err != nil {
			return nil, err
		}
		result.Status = status.Status

		if !status.Pending() {
			result.Messages = status.Messages
			return result, nil
		}
		if !workflow.Now(ctx).Before(deadline) {
			logger.Warn("Run still pending after max wait", "RunID", result.RunID, "Status", status.Status, "MaxWait", maxWait)
			result.TimedOut = true
			return result, nil
		}
		if err := workflow.Sleep(ctx, pollInterval); err != nil {
			return nil, err
		}
	}
}
