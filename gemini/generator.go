// Package gemini implements brandctx.Generator using Google Gemini.
package gemini

import (
	"context"
	"time"

	"github.com/fwojciec/brandctx"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultTimeout bounds a single generation request.
const DefaultTimeout = 60 * time.Second

// Ensure Generator implements brandctx.Generator at compile time.
var _ brandctx.Generator = (*Generator)(nil)

// Generator implements brandctx.Generator using Google Gemini.
type Generator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel sets the Gemini model name.
func WithModel(model string) Option {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		g.timeout = d
	}
}

// NewGenerator creates a new Generator.
func NewGenerator(client *genai.Client, opts ...Option) *Generator {
	g := &Generator{client: client, model: DefaultModel, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate sends a single self-contained request and returns the reply text.
func (g *Generator) Generate(ctx context.Context, req brandctx.GenerateRequest) (string, error) {
	if req.User == "" {
		return "", brandctx.Errorf(brandctx.EINVALID, "prompt required")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: req.User}},
		}},
		BuildConfig(req),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", brandctx.Errorf(brandctx.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// Close is a no-op; the Gemini client holds no resources that need releasing.
func (g *Generator) Close() error {
	return nil
}

// BuildConfig returns the GenerateContentConfig for a request: the system
// instruction, deterministic sampling and a JSON response.
func BuildConfig(req brandctx.GenerateRequest) *genai.GenerateContentConfig {
	temp := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	return config
}
