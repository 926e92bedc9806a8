// Package anthropic implements brandctx.Generator using the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/brandctx"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "claude-haiku-4-5-20251001"

	// DefaultTimeout bounds a single generation request.
	DefaultTimeout = 60 * time.Second
)

var _ brandctx.Generator = (*Generator)(nil)

// Generator implements brandctx.Generator with the Messages API.
type Generator struct {
	client  sdk.Client
	model   string
	timeout time.Duration
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel sets the model name.
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

// NewGenerator creates a Generator. Request options such as
// option.WithBaseURL are passed to the SDK client.
func NewGenerator(apiKey string, reqOpts []option.RequestOption, opts ...Option) *Generator {
	reqOpts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, reqOpts...)
	g := &Generator{
		client:  sdk.NewClient(reqOpts...),
		model:   DefaultModel,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate sends one message and concatenates the text blocks of the reply.
func (g *Generator) Generate(ctx context.Context, req brandctx.GenerateRequest) (string, error) {
	if req.User == "" {
		return "", brandctx.Errorf(brandctx.EINVALID, "prompt required")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	msg, err := g.client.Messages.New(ctx, BuildParams(g.model, req))
	if err != nil {
		return "", fmt.Errorf("anthropic: create message: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", brandctx.Errorf(brandctx.EINTERNAL, "anthropic returned no text")
	}
	return sb.String(), nil
}

// Close is a no-op; the SDK client holds no per-generator resources.
func (g *Generator) Close() error {
	return nil
}

// BuildParams builds the Messages API parameters for req.
func BuildParams(model string, req brandctx.GenerateRequest) sdk.MessageNewParams {
	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 512
	}
	params := sdk.MessageNewParams{
		Model:       sdk.Model(model),
		MaxTokens:   maxTokens,
		Messages:    []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(req.User))},
		Temperature: sdk.Float(0),
	}
	if req.System != "" {
		params.System = []sdk.TextBlockParam{{Text: req.System}}
	}
	return params
}
