package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/brandctx"
	"github.com/fwojciec/brandctx/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Analyzer brandctx.Analyzer
	Insights brandctx.InsightService
	Metrics  *prometheus.Metrics

	// Backend is the lazily initialized generator, warmed by serve.
	Backend warmer
}

// warmer is satisfied by backends that can be initialized ahead of use.
type warmer interface {
	Warm(ctx context.Context) error
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB        string `name:"db" env:"BRANDCTX_DB" default:"${default_db}" help:"SQLite database path"`
	OutputDir string `name:"output-dir" env:"BRANDCTX_OUTPUT_DIR" default:"shopify_insights_output" help:"Directory for per-site JSON output"`

	Backend         string        `enum:"gemini,openai,anthropic,none" env:"BRANDCTX_BACKEND" default:"openai" help:"Generative backend (gemini|openai|anthropic|none)"`
	Model           string        `env:"BRANDCTX_MODEL" help:"Backend model name; each backend has its own default"`
	GeminiAPIKey    string        `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	OpenAIAPIKey    string        `name:"openai-api-key" env:"OPENAI_API_KEY" help:"OpenAI-compatible API key"`
	OpenAIBaseURL   string        `name:"openai-base-url" env:"OPENAI_BASE_URL" help:"OpenAI-compatible endpoint"`
	AnthropicAPIKey string        `name:"anthropic-api-key" env:"ANTHROPIC_API_KEY" help:"Anthropic API key"`
	MaxTokens       int           `name:"max-tokens" default:"512" help:"Maximum reply tokens per generation"`
	NoReplyCache    bool          `name:"no-reply-cache" help:"Do not cache generator replies in SQLite"`
	RedisAddr       string        `name:"redis-addr" env:"REDIS_ADDR" help:"Redis address for the insight cache; disabled when empty"`
	CacheTTL        time.Duration `name:"cache-ttl" env:"BRANDCTX_CACHE_TTL" default:"1h" help:"Insight cache TTL"`

	Render        bool          `help:"Render pages in headless Chrome before extraction"`
	RenderRecycle int           `name:"render-recycle" default:"75" help:"Pages rendered per Chrome process before it is replaced"`
	Metadata      string        `enum:"trafilatura,readability,none" default:"trafilatura" help:"Page metadata engine (trafilatura|readability|none)"`
	FetchTimeout  time.Duration `name:"fetch-timeout" default:"15s" help:"Page fetch timeout"`
	RateLimit     float64       `name:"rate-limit" default:"2" help:"Requests per second per storefront domain"`
	NoRetry       bool          `name:"no-retry" help:"Do not retry transient page fetch failures"`

	LogLevel  string `name:"log-level" env:"BRANDCTX_LOG_LEVEL" enum:"debug,info,warn,error" default:"info" help:"Log level"`
	LogFormat string `name:"log-format" enum:"text,json" default:"text" help:"Log format"`

	Analyze AnalyzeCmd `cmd:"" help:"Analyze a storefront and print its brand context"`
	Serve   ServeCmd   `cmd:"" help:"Serve the HTTP API"`
	History HistoryCmd `cmd:"" help:"List stored analyses, newest first"`
	Show    ShowCmd    `cmd:"" help:"Show a stored analysis"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URL string `arg:"" help:"Storefront URL"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `env:"BRANDCTX_ADDR" default:":8000" help:"Listen address"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL    string `arg:"" optional:"" help:"Only show analyses of this storefront"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of analyses"`
	Offset int    `help:"Number of analyses to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Analysis ID"`
}
