package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bondbook/renderer"
	"github.com/google/subcommands"
)

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct {
	reportFlags
	json bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "display the bonds, their income, the monthly chart and recommendations" }
func (*listCmd) Usage() string {
	return `bbk list [-on <date>] [-month <month>] [-hover-month <month> | -hover-row <id>] [-json]

  Displays every bond of the book in order, with its annual income and the
  total, the chart of the income of each month and the recommended bonds.

  The -hover flags highlight what a pointer over a chart bar, a row or a
  recommendation would.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	c.reportFlags.SetFlags(f, true)
	f.BoolVar(&c.json, "json", false, "print the report as JSON, as served by the HTTP API")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := OpenSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := c.report(session.Book())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RenderReport(report, renderer.ReportOptions{}))
	return subcommands.ExitSuccess
}
