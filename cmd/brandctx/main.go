package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/brandctx"
	"github.com/fwojciec/brandctx/prometheus"
	"github.com/fwojciec/brandctx/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the insight history and the reply cache.
	DB *sqlite.DB

	// Services for end-to-end testing. When Analyzer is set it replaces the
	// pipeline built from flags.
	Analyzer brandctx.Analyzer
	Insights brandctx.InsightService

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		errs = append(errs, m.closers[i].Close())
	}
	m.closers = nil
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
		m.DB = nil
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("brandctx"),
		kong.Description("Extract brand context from Shopify storefronts."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
		kong.Vars{"default_db": defaultDBPath()},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'brandctx --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(stderr, cli.LogLevel, cli.LogFormat)
	if err != nil {
		return err
	}
	deps.Logger = logger

	if err := os.MkdirAll(filepath.Dir(cli.DB), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set BRANDCTX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
	}
	defer m.Close()

	if m.Insights == nil {
		m.Insights = sqlite.NewInsightService(m.DB)
	}
	deps.Insights = m.Insights

	switch kongCtx.Command() {
	case "analyze <url>", "serve":
		if kongCtx.Command() == "serve" {
			deps.Metrics = prometheus.NewMetrics()
		}
		if m.Analyzer == nil {
			analyzer, backend, closers, err := m.buildAnalyzer(cli, deps)
			m.closers = append(m.closers, closers...)
			if err != nil {
				return err
			}
			m.Analyzer = analyzer
			deps.Backend = backend
		}
		deps.Analyzer = m.Analyzer
	}

	return kongCtx.Run(deps)
}

// defaultDBPath returns ~/.brandctx/brandctx.db, falling back to the working
// directory when there is no home directory.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "brandctx.db"
	}
	return filepath.Join(home, ".brandctx", "brandctx.db")
}
