package assistant

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/openai/openai-go/v3/option"
)

const testCredentialEnv = "DEVASSIST_TEST_OPENAI_API_KEY"

// fakeAssistantsAPI is an in-memory stand-in for the Assistants endpoints.
type fakeAssistantsAPI struct {
	mu sync.Mutex

	requests   int
	nextID     int
	assistants []map[string]any
	threads    map[string][]map[string]any
	runs       map[string]map[string]any

	// runStatus is reported for every run; defaults to "completed".
	runStatus string
}

func newFakeAssistantsAPI(t *testing.T) (*fakeAssistantsAPI, *httptest.Server) {
	t.Helper()

	f := &fakeAssistantsAPI{
		threads: make(map[string][]map[string]any),
		runs:    make(map[string]map[string]any),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /assistants", f.createAssistant)
	mux.HandleFunc("POST /threads", f.createThread)
	mux.HandleFunc("POST /threads/{thread}/messages", f.createMessage)
	mux.HandleFunc("GET /threads/{thread}/messages", f.listMessages)
	mux.HandleFunc("POST /threads/{thread}/runs", f.createRun)
	mux.HandleFunc("GET /threads/{thread}/runs/{run}", f.getRun)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests++
		f.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)
	return f, ts
}

func (f *fakeAssistantsAPI) factory(ts *httptest.Server) *ClientFactory {
	return &ClientFactory{
		EnvVar:  testCredentialEnv,
		Options: []option.RequestOption{option.WithBaseURL(ts.URL + "/")},
	}
}

func (f *fakeAssistantsAPI) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

func (f *fakeAssistantsAPI) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s_%d", prefix, f.nextID)
}

// appendMessage adds a message with the given role and raw content blocks.
func (f *fakeAssistantsAPI) appendMessage(threadID, role string, blocks ...map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threads[threadID] = append(f.threads[threadID], map[string]any{
		"id":        f.id("msg"),
		"object":    "thread.message",
		"thread_id": threadID,
		"role":      role,
		"content":   blocks,
	})
}

func textBlock(value string) map[string]any {
	return map[string]any{
		"type": "text",
		"text": map[string]any{"value": value, "annotations": []any{}},
	}
}

func imageBlock(fileID string) map[string]any {
	return map[string]any{
		"type":       "image_file",
		"image_file": map[string]any{"file_id": fileID},
	}
}

func (f *fakeAssistantsAPI) createAssistant(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid body")
		return
	}

	f.mu.Lock()
	body["id"] = f.id("asst")
	body["object"] = "assistant"
	f.assistants = append(f.assistants, body)
	f.mu.Unlock()

	writeJSON(w, body)
}

func (f *fakeAssistantsAPI) createThread(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	id := f.id("thread")
	f.threads[id] = nil
	f.mu.Unlock()

	writeJSON(w, map[string]any{"id": id, "object": "thread", "created_at": 0, "metadata": map[string]any{}})
}

func (f *fakeAssistantsAPI) createMessage(w http.ResponseWriter, r *http.Request) {
	threadID := r.PathValue("thread")
	if !f.threadExists(threadID) {
		writeAPIError(w, http.StatusNotFound, fmt.Sprintf("No thread found with id '%s'.", threadID))
		return
	}

	var body struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid body")
		return
	}
	f.appendMessage(threadID, body.Role, textBlock(body.Content))

	writeJSON(w, map[string]any{"id": "msg_created", "object": "thread.message", "thread_id": threadID, "role": body.Role})
}

func (f *fakeAssistantsAPI) listMessages(w http.ResponseWriter, r *http.Request) {
	threadID := r.PathValue("thread")
	if !f.threadExists(threadID) {
		writeAPIError(w, http.StatusNotFound, fmt.Sprintf("No thread found with id '%s'.", threadID))
		return
	}

	f.mu.Lock()
	msgs := f.threads[threadID]
	// The API lists newest first by default.
	data := make([]map[string]any, 0, len(msgs))
	for i := len(msgs) - 1; i >= 0; i-- {
		data = append(data, msgs[i])
	}
	f.mu.Unlock()

	writeJSON(w, map[string]any{"object": "list", "data": data, "has_more": false})
}

func (f *fakeAssistantsAPI) createRun(w http.ResponseWriter, r *http.Request) {
	threadID := r.PathValue("thread")
	if !f.threadExists(threadID) {
		writeAPIError(w, http.StatusNotFound, fmt.Sprintf("No thread found with id '%s'.", threadID))
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid body")
		return
	}

	f.mu.Lock()
	id := f.id("run")
	body["id"] = id
	body["object"] = "thread.run"
	body["thread_id"] = threadID
	body["status"] = "queued"
	f.runs[id] = body
	f.mu.Unlock()

	writeJSON(w, body)
}

func (f *fakeAssistantsAPI) getRun(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	run, ok := f.runs[r.PathValue("run")]
	status := f.runStatus
	f.mu.Unlock()
	if !ok || run["thread_id"] != r.PathValue("thread") {
		writeAPIError(w, http.StatusNotFound, "No run found.")
		return
	}
	if status == "" {
		status = "completed"
	}

	writeJSON(w, map[string]any{
		"id":           run["id"],
		"object":       "thread.run",
		"thread_id":    run["thread_id"],
		"assistant_id": run["assistant_id"],
		"status":       status,
	})
}

func (f *fakeAssistantsAPI) setRunStatus(status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runStatus = status
}

func (f *fakeAssistantsAPI) threadExists(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.threads[id]
	return ok
}

func (f *fakeAssistantsAPI) lastAssistant() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.assistants) == 0 {
		return nil
	}
	return f.assistants[len(f.assistants)-1]
}

func (f *fakeAssistantsAPI) run(id string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runs[id]
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    "invalid_request_error",
			"param":   nil,
			"code":    nil,
		},
	})
}
