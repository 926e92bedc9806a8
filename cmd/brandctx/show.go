package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/brandctx"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	insight, err := deps.Insights.FindInsightByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brandctx.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "    ")
	return enc.Encode(insight)
}
