// Package gateway relays stateless prompts to a generative-content model.
package gateway

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/ansg191/devassist/internal/llm"
	"github.com/ansg191/devassist/internal/metrics"
)

// Kind names the payload key a successful Result is reported under.
type Kind string

const (
	KindReply    Kind = "reply"
	KindAnalysis Kind = "analysis"
)

// Result is the outcome of one gateway call: Text on success, Err otherwise.
type Result struct {
	Kind Kind
	Text string
	Err  error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Payload renders the result as the wire map: {kind: text} or {"error": msg}.
func (r Result) Payload() map[string]string {
	if r.Err != nil {
		return map[string]string{"error": r.Err.Error()}
	}
	return map[string]string{string(r.Kind): r.Text}
}

// Config is resolved once at startup and handed to New.
type Config struct {
	Model llm.ModelRef
	// APIKey overrides the credential; empty means read CredentialEnv(Model.Backend).
	APIKey    string
	Generator llm.GeneratorOptions
}

// Gateway serves chat and analyze requests with a single generator.
type Gateway struct {
	model     llm.ModelRef
	envVar    string
	generator llm.Generator
	initErr   error
}

// New builds the gateway. A missing credential or client failure is logged
// and retained; the gateway is still returned and each call reports the
// error in its Result.
func New(ctx context.Context, cfg Config) *Gateway {
	g := &Gateway{
		model:  cfg.Model,
		envVar: llm.CredentialEnv(cfg.Model.Backend),
	}

	apiKey := cfg.APIKey
	if apiKey == "" && g.envVar != "" {
		apiKey = os.Getenv(g.envVar)
	}

	gen, err := llm.NewGenerator(ctx, cfg.Model, apiKey, cfg.Generator)
	if err != nil {
		slog.Error("gateway generator unavailable", "model", cfg.Model.Raw, "error", err)
		g.initErr = err
		metrics.GatewayAvailable.WithLabelValues(cfg.Model.Raw).Set(0)
		return g
	}
	g.generator = gen
	metrics.GatewayAvailable.WithLabelValues(cfg.Model.Raw).Set(1)
	return g
}

// NewWithGenerator wires an existing generator, bypassing credential lookup.
func NewWithGenerator(model llm.ModelRef, gen llm.Generator) *Gateway {
	return &Gateway{model: model, envVar: llm.CredentialEnv(model.Backend), generator: gen}
}

// Available reports whether a generator was configured.
func (g *Gateway) Available() bool {
	return g.generator != nil
}

// Generator exposes the configured generator, or nil.
func (g *Gateway) Generator() llm.Generator {
	return g.generator
}

// Model returns the configured model reference.
func (g *Gateway) Model() llm.ModelRef {
	return g.model
}

// precondition is applied identically by every handler.
func (g *Gateway) precondition() error {
	if g.generator != nil {
		return nil
	}
	if g.initErr != nil {
		return g.initErr
	}
	return llm.MissingCredentialError(g.envVar)
}

// Chat submits message verbatim.
func (g *Gateway) Chat(ctx context.Context, message string) Result {
	return g.generate(ctx, KindReply, message)
}

// Analyze wraps message in the code-analysis template before submitting it.
// The model's markdown is returned untouched.
func (g *Gateway) Analyze(ctx context.Context, message string) Result {
	return g.generate(ctx, KindAnalysis, AnalysisPrompt(message))
}

func (g *Gateway) generate(ctx context.Context, kind Kind, prompt string) Result {
	if err := g.precondition(); err != nil {
		metrics.GenerationErrors.WithLabelValues(string(kind), errorClass(err)).Inc()
		return Result{Kind: kind, Err: err}
	}

	start := time.Now()
	text, err := g.generator.Generate(ctx, prompt)
	metrics.GenerationDuration.WithLabelValues(string(kind), g.model.Raw).Observe(time.Since(start).Seconds())
	if err != nil {
		err = llm.ClassifyProviderError(g.model.Provider, err)
		metrics.GenerationErrors.WithLabelValues(string(kind), errorClass(err)).Inc()
		slog.Error("error during generation", "kind", kind, "model", g.model.Raw, "error", err)
		return Result{Kind: kind, Err: err}
	}
	return Result{Kind: kind, Text: text}
}

func errorClass(err error) string {
	switch {
	case llm.IsConfigError(err):
		return "config"
	case llm.IsProviderError(err):
		return "provider"
	default:
		return "other"
	}
}
