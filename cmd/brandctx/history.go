package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/brandctx"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := brandctx.InsightFilter{Limit: c.Limit, Offset: c.Offset}
	if c.URL != "" {
		filter.WebsiteURL = &c.URL
	}

	insights, err := deps.Insights.FindInsights(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brandctx.ErrorMessage(err))
		return err
	}

	if len(insights) == 0 {
		fmt.Fprintln(deps.Stdout, "No analyses found. Use 'brandctx analyze' to create one.")
		return nil
	}

	for _, i := range insights {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d products\n",
			i.ID, i.CreatedAt.Format(time.RFC3339), i.WebsiteURL, len(i.Context.ProductCatalog))
	}

	return nil
}
