package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// promptRecorder captures the last request body a fake provider received.
type promptRecorder struct {
	body string
}

func newFakeProvider(t *testing.T, rec *promptRecorder, pathSuffix string, status int, response string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, pathSuffix) {
			http.NotFound(w, r)
			return
		}
		data, _ := io.ReadAll(r.Body)
		if rec != nil {
			rec.body = string(data)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestNewGenerator_MissingKeyIsConfigError(t *testing.T) {
	t.Parallel()

	ref, err := ParseModelRef("gemini/gemini-2.5-flash")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	_, err = NewGenerator(context.Background(), ref, "", GeneratorOptions{})
	if !IsConfigError(err) {
		t.Fatalf("expected config error, got %v", err)
	}
	if err.Error() != "GEMINI_API_KEY missing" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestGeminiBackend_Generate(t *testing.T) {
	t.Parallel()

	rec := &promptRecorder{}
	ts := newFakeProvider(t, rec, ":generateContent", http.StatusOK,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":"4"}]},"finishReason":"STOP"}]}`)

	gen, err := NewGenerator(context.Background(), ModelRef{Backend: BackendGemini, Model: "gemini-2.5-flash"}, "test-key", GeneratorOptions{BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	got, err := gen.Generate(context.Background(), "2+2")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "4" {
		t.Fatalf("expected reply %q, got %q", "4", got)
	}
	if !strings.Contains(rec.body, "2+2") {
		t.Fatalf("expected prompt in request body, got %s", rec.body)
	}
}

func TestOpenAIBackend_Generate(t *testing.T) {
	t.Parallel()

	rec := &promptRecorder{}
	ts := newFakeProvider(t, rec, "/responses", http.StatusOK, `{
		"id": "resp_1",
		"object": "response",
		"status": "completed",
		"model": "gpt-4.1-mini",
		"output": [{
			"type": "message",
			"id": "msg_1",
			"role": "assistant",
			"status": "completed",
			"content": [{"type": "output_text", "text": "4", "annotations": []}]
		}]
	}`)

	gen, err := NewGenerator(context.Background(), ModelRef{Backend: BackendOpenAI, Model: "gpt-4.1-mini"}, "sk-test", GeneratorOptions{BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	got, err := gen.Generate(context.Background(), "2+2")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "4" {
		t.Fatalf("expected reply %q, got %q", "4", got)
	}

	var sent map[string]any
	if err := json.Unmarshal([]byte(rec.body), &sent); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	if sent["input"] != "2+2" {
		t.Fatalf("expected verbatim input, got %v", sent["input"])
	}
}

func TestAnthropicBackend_Generate(t *testing.T) {
	t.Parallel()

	ts := newFakeProvider(t, nil, "/v1/messages", http.StatusOK, `{
		"id": "msg_1",
		"type": "message",
		"role": "assistant",
		"model": "claude-sonnet-4-5",
		"content": [{"type": "text", "text": "fo"}, {"type": "text", "text": "ur"}],
		"stop_reason": "end_turn",
		"usage": {"input_tokens": 3, "output_tokens": 1}
	}`)

	gen, err := NewGenerator(context.Background(), ModelRef{Backend: BackendAnthropic, Model: "claude-sonnet-4-5"}, "sk-ant", GeneratorOptions{BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	got, err := gen.Generate(context.Background(), "2+2")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "four" {
		t.Fatalf("expected joined text blocks, got %q", got)
	}
}

func TestOpenAIBackend_ErrorIsProviderError(t *testing.T) {
	t.Parallel()

	ts := newFakeProvider(t, nil, "/responses", http.StatusUnauthorized,
		`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`)

	gen, err := NewGenerator(context.Background(), ModelRef{Backend: BackendOpenAI, Model: "gpt-4.1-mini"}, "sk-bad", GeneratorOptions{BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	_, err = gen.Generate(context.Background(), "2+2")
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected provider error, got %T (%v)", err, err)
	}
	if provErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", provErr.StatusCode)
	}
	if !provErr.ClientError() {
		t.Fatalf("expected 401 to be a client error")
	}
}

func TestGeminiBackend_ListGenerateContentModels(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || !strings.HasSuffix(r.URL.Path, "/models") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"models":[
			{"name":"models/gemini-2.5-flash","supportedGenerationMethods":["generateContent","countTokens"],"supportedActions":["generateContent","countTokens"]},
			{"name":"models/text-embedding-004","supportedGenerationMethods":["embedContent"],"supportedActions":["embedContent"]}
		]}`)
	}))
	t.Cleanup(ts.Close)

	gen, err := NewGenerator(context.Background(), ModelRef{Backend: BackendGemini, Model: "gemini-2.5-flash"}, "test-key", GeneratorOptions{BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	lister, ok := gen.(ModelLister)
	if !ok {
		t.Fatalf("expected gemini generator to list models")
	}

	names, err := lister.ListGenerateContentModels(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 1 || names[0] != "models/gemini-2.5-flash" {
		t.Fatalf("unexpected model names %v", names)
	}
}
