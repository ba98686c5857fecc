// Package mcpserver exposes the assistant session operations as MCP tools.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ansg191/devassist/internal/assistant"
)

// Sessions is implemented by *assistant.Manager.
type Sessions interface {
	CreateAssistant(ctx context.Context) (string, error)
	CreateThread(ctx context.Context) (string, error)
	AddMessage(ctx context.Context, threadID, content string) error
	RunAssistant(ctx context.Context, threadID, assistantID string) (string, error)
	GetRunResult(ctx context.Context, threadID, runID string) (*assistant.RunResult, error)
}

type CreateAssistantInput struct{}

type CreateAssistantOutput struct {
	AssistantID string `json:"assistant_id" jsonschema:"id of the newly created assistant"`
}

type CreateThreadInput struct{}

type CreateThreadOutput struct {
	ThreadID string `json:"thread_id" jsonschema:"id of the new, empty thread"`
}

type AddMessageInput struct {
	ThreadID string `json:"thread_id" jsonschema:"thread to append to"`
	Content  string `json:"content" jsonschema:"user message text"`
}

type AddMessageOutput struct {
	OK bool `json:"ok"`
}

type RunAssistantInput struct {
	ThreadID    string `json:"thread_id" jsonschema:"thread to run"`
	AssistantID string `json:"assistant_id" jsonschema:"assistant that processes the thread"`
}

type RunAssistantOutput struct {
	RunID string `json:"run_id" jsonschema:"id of the asynchronous run"`
}

type GetRunResultInput struct {
	ThreadID string `json:"thread_id"`
	RunID    string `json:"run_id"`
}

type GetRunResultOutput struct {
	Status   string   `json:"status" jsonschema:"current run status"`
	// Messages is nil while pending and non-nil (possibly empty) afterwards.
	Messages *[]string `json:"messages,omitempty" jsonschema:"text blocks of the thread, set once the run is no longer queued or in_progress"`
}

// NewServer registers the five session tools on a new MCP server.
func NewServer(sessions Sessions, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "devassist", Version: version}, nil)
	h := &handlers{sessions: sessions}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_assistant",
		Description: "Create a new developer debugging assistant. Every call allocates a new remote assistant.",
	}, h.createAssistant)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_thread",
		Description: "Open a new, empty conversation thread.",
	}, h.createThread)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_message",
		Description: "Append a user message to a thread.",
	}, h.addMessage)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_assistant",
		Description: "Start an asynchronous run of an assistant against a thread. Returns immediately.",
	}, h.runAssistant)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_run_result",
		Description: "Check a run once. While queued or in_progress only the status is returned; poll again later.",
	}, h.getRunResult)

	return server
}

type handlers struct {
	sessions Sessions
}

func (h *handlers) createAssistant(ctx context.Context, _ *mcp.CallToolRequest, _ CreateAssistantInput) (*mcp.CallToolResult, CreateAssistantOutput, error) {
	id, err := h.sessions.CreateAssistant(ctx)
	if err != nil {
		return toolError(err), CreateAssistantOutput{}, nil
	}
	return nil, CreateAssistantOutput{AssistantID: id}, nil
}

func (h *handlers) createThread(ctx context.Context, _ *mcp.CallToolRequest, _ CreateThreadInput) (*mcp.CallToolResult, CreateThreadOutput, error) {
	id, err := h.sessions.CreateThread(ctx)
	if err != nil {
		return toolError(err), CreateThreadOutput{}, nil
	}
	return nil, CreateThreadOutput{ThreadID: id}, nil
}

func (h *handlers) addMessage(ctx context.Context, _ *mcp.CallToolRequest, in AddMessageInput) (*mcp.CallToolResult, AddMessageOutput, error) {
	if err := h.sessions.AddMessage(ctx, in.ThreadID, in.Content); err != nil {
		return toolError(err), AddMessageOutput{}, nil
	}
	return nil, AddMessageOutput{OK: true}, nil
}

func (h *handlers) runAssistant(ctx context.Context, _ *mcp.CallToolRequest, in RunAssistantInput) (*mcp.CallToolResult, RunAssistantOutput, error) {
	id, err := h.sessions.RunAssistant(ctx, in.ThreadID, in.AssistantID)
	if err != nil {
		return toolError(err), RunAssistantOutput{}, nil
	}
	return nil, RunAssistantOutput{RunID: id}, nil
}

func (h *handlers) getRunResult(ctx context.Context, _ *mcp.CallToolRequest, in GetRunResultInput) (*mcp.CallToolResult, GetRunResultOutput, error) {
	res, err := h.sessions.GetRunResult(ctx, in.ThreadID, in.RunID)
	if err != nil {
		return toolError(err), GetRunResultOutput{}, nil
	}
	out := GetRunResultOutput{Status: res.Status}
	if !res.Pending() {
		messages := res.Messages
		if messages == nil {
			messages = []string{}
		}
		out.Messages = &messages
	}
	return nil, out, nil
}

// toolError reports a failed operation to the model instead of as a protocol error.
func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
