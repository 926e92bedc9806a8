// Package openai implements brandctx.Generator against any OpenAI-compatible
// chat completion endpoint, including local llama.cpp servers.
package openai

import (
	"context"
	"math"
	"time"

	"github.com/fwojciec/brandctx"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultBaseURL points at a local llama.cpp server.
	DefaultBaseURL = "http://localhost:8080/v1"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o-mini"

	// DefaultTimeout bounds a single generation request.
	DefaultTimeout = 60 * time.Second
)

// Client is the subset of *openai.Client used by Generator.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewClient builds an OpenAI-compatible client for baseURL, or
// DefaultBaseURL when baseURL is empty.
func NewClient(apiKey, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = DefaultBaseURL
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config)
}

var _ brandctx.Generator = (*Generator)(nil)

// Generator implements brandctx.Generator with chat completions.
type Generator struct {
	client  Client
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

// NewGenerator creates a new Generator.
func NewGenerator(client Client, opts ...Option) *Generator {
	g := &Generator{client: client, model: DefaultModel, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate sends one system/user exchange and returns the first choice.
func (g *Generator) Generate(ctx context.Context, req brandctx.GenerateRequest) (string, error) {
	if req.User == "" {
		return "", brandctx.Errorf(brandctx.EINVALID, "prompt required")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, BuildRequest(g.model, req))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", brandctx.Errorf(brandctx.EINTERNAL, "chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Close is a no-op; the HTTP client holds no per-generator resources.
func (g *Generator) Close() error {
	return nil
}

// BuildRequest builds the chat completion request for req. A zero
// temperature is dropped from the wire format, so the smallest positive
// value stands in for deterministic sampling.
func BuildRequest(model string, req brandctx.GenerateRequest) openai.ChatCompletionRequest {
	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.User})

	return openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: math.SmallestNonzeroFloat32,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
}
