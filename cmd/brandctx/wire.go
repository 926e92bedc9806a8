package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/brandctx"
	"github.com/fwojciec/brandctx/anthropic"
	"github.com/fwojciec/brandctx/extract"
	"github.com/fwojciec/brandctx/fs"
	"github.com/fwojciec/brandctx/gemini"
	"github.com/fwojciec/brandctx/goquery"
	brandhttp "github.com/fwojciec/brandctx/http"
	"github.com/fwojciec/brandctx/llm"
	"github.com/fwojciec/brandctx/openai"
	"github.com/fwojciec/brandctx/pipeline"
	"github.com/fwojciec/brandctx/prometheus"
	"github.com/fwojciec/brandctx/readability"
	"github.com/fwojciec/brandctx/redis"
	"github.com/fwojciec/brandctx/rod"
	brandslog "github.com/fwojciec/brandctx/slog"
	"github.com/fwojciec/brandctx/sqlite"
	"github.com/fwojciec/brandctx/trafilatura"
	"google.golang.org/genai"
)

// buildAnalyzer wires the pipeline and its decorators from flags. It returns
// the lazily initialized backend (nil when disabled) and the resources the
// caller must close.
func (m *Main) buildAnalyzer(cli *CLI, deps *Dependencies) (brandctx.Analyzer, warmer, []io.Closer, error) {
	logger := deps.Logger
	var closers []io.Closer

	parser := goquery.NewParser()
	limiter := brandhttp.NewDomainLimiter(cli.RateLimit, 1)

	var fetcher brandctx.Fetcher
	if cli.Render {
		browsers, err := rod.NewBrowsers(rod.WithRecycleEvery(cli.RenderRecycle))
		if err != nil {
			if brandctx.ErrorCode(err) == brandctx.EUNAVAILABLE {
				fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --render")
			}
			return nil, nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rod.NewFetcher(browsers, rod.WithFetchTimeout(cli.FetchTimeout))
	} else {
		fetcher = brandhttp.NewFetcher(
			brandhttp.WithTimeout(cli.FetchTimeout),
			brandhttp.WithLimiter(limiter),
		)
	}
	fetcher = brandslog.NewLoggingFetcher(fetcher, logger)
	if !cli.NoRetry {
		fetcher = brandhttp.NewRetryFetcher(fetcher, brandhttp.DefaultRetryDelays(), logger)
	}
	closers = append(closers, fetcher)

	p := &pipeline.Pipeline{
		Fetcher: fetcher,
		Parser:  parser,
		Catalog: brandslog.NewLoggingCatalogService(
			brandhttp.NewCatalogService(parser, brandhttp.WithCatalogLimiter(limiter)),
			logger,
		),
		Hero:     extract.NewHeroExtractor(),
		Links:    extract.NewLinkExtractor(),
		Social:   extract.NewSocialExtractor(),
		Metadata: newMetadataExtractor(cli.Metadata),
		Logger:   logger,
	}

	lazy, model, err := newBackend(cli, logger)
	if err != nil {
		return nil, nil, closers, err
	}
	var backend warmer
	if lazy != nil {
		closers = append(closers, lazy)
		backend = lazy

		var gen brandctx.Generator = llm.NewSerial(brandslog.NewLoggingGenerator(lazy, logger))
		if !cli.NoReplyCache {
			gen = sqlite.NewCachingGenerator(m.DB, gen, cli.Backend+"/"+model)
		}
		ext := llm.NewExtractor(gen, llm.WithMaxTokens(cli.MaxTokens))
		p.Policies = ext
		p.Narrative = ext
	}

	var analyzer brandctx.Analyzer = &pipeline.Recorder{
		Analyzer: p,
		Writers:  []brandctx.InsightWriter{deps.Insights, fs.NewWriter(cli.OutputDir)},
		Logger:   logger,
	}
	if cli.RedisAddr != "" {
		client := redis.NewClient(cli.RedisAddr)
		closers = append(closers, client)
		analyzer = &pipeline.Cached{
			Analyzer: analyzer,
			Cache:    redis.NewCache(client, cli.CacheTTL),
			Logger:   logger,
		}
	}
	analyzer = brandslog.NewLoggingAnalyzer(analyzer, logger)
	if deps.Metrics != nil {
		analyzer = prometheus.NewInstrumentedAnalyzer(analyzer, deps.Metrics)
	}

	return analyzer, backend, closers, nil
}

// newBackend returns the lazily initialized generator for the configured
// backend and the model it uses, or a nil generator for "none".
func newBackend(cli *CLI, logger *slog.Logger) (*llm.Lazy, string, error) {
	switch cli.Backend {
	case "none":
		return nil, "", nil

	case "gemini":
		model := cli.Model
		if model == "" {
			model = gemini.DefaultModel
		}
		apiKey := cli.GeminiAPIKey
		return llm.NewLazy(func(ctx context.Context) (llm.Backend, error) {
			if apiKey == "" {
				return nil, brandctx.Errorf(brandctx.EUNAVAILABLE, "GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
			}
			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
			}
			logger.Info("backend ready", "backend", "gemini", "model", model)
			return gemini.NewGenerator(client, gemini.WithModel(model)), nil
		}), model, nil

	case "openai":
		model := cli.Model
		if model == "" {
			model = openai.DefaultModel
		}
		apiKey, baseURL := cli.OpenAIAPIKey, cli.OpenAIBaseURL
		return llm.NewLazy(func(_ context.Context) (llm.Backend, error) {
			logger.Info("backend ready", "backend", "openai", "model", model)
			return openai.NewGenerator(openai.NewClient(apiKey, baseURL), openai.WithModel(model)), nil
		}), model, nil

	case "anthropic":
		model := cli.Model
		if model == "" {
			model = anthropic.DefaultModel
		}
		apiKey := cli.AnthropicAPIKey
		return llm.NewLazy(func(_ context.Context) (llm.Backend, error) {
			if apiKey == "" {
				return nil, brandctx.Errorf(brandctx.EUNAVAILABLE, "ANTHROPIC_API_KEY not set")
			}
			logger.Info("backend ready", "backend", "anthropic", "model", model)
			return anthropic.NewGenerator(apiKey, []option.RequestOption{}, anthropic.WithModel(model)), nil
		}), model, nil
	}
	return nil, "", brandctx.Errorf(brandctx.EINVALID, "unknown backend %q", cli.Backend)
}

func newMetadataExtractor(engine string) brandctx.MetadataExtractor {
	switch engine {
	case "readability":
		return readability.NewExtractor()
	case "none":
		return nil
	default:
		return trafilatura.NewExtractor()
	}
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, brandctx.Errorf(brandctx.EINVALID, "invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return nil, brandctx.Errorf(brandctx.EINVALID, "invalid log format %q", format)
}
