package brandctx

import "context"

// GenerateRequest is a single, self-contained request to a text-generation
// backend. No conversation state is carried between requests.
type GenerateRequest struct {
	System    string
	User      string
	MaxTokens int
}

// Generator produces text from instructions. Replies are expected to
// contain JSON, possibly wrapped in a fenced code block.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
