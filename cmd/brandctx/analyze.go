package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/brandctx"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	insight, err := deps.Analyzer.Analyze(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brandctx.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "    ")
	return enc.Encode(insight.Context)
}
