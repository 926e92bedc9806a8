package main

import (
	"fmt"

	"github.com/fwojciec/brandctx/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if deps.Backend != nil {
		if err := deps.Backend.Warm(deps.Ctx); err != nil {
			deps.Logger.Warn("backend warm-up failed; will retry on first request", "err", err)
		}
	}

	s := http.NewServer()
	s.Addr = c.Addr
	s.Analyzer = deps.Analyzer
	s.Insights = deps.Insights
	s.Logger = deps.Logger
	if deps.Metrics != nil {
		s.Metrics = deps.Metrics.Handler()
		s.Middleware = append(s.Middleware, deps.Metrics.Middleware)
	}

	if err := s.Open(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())

	<-deps.Ctx.Done()
	return s.Close()
}
