package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bondbook/renderer"
	"github.com/google/subcommands"
)

type chartCmd struct {
	reportFlags
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "display the income of each month as a bar chart" }
func (*chartCmd) Usage() string {
	return `bbk chart [-hover-month <month> | -hover-row <id>]

  Displays the income of each month of the year as a bar chart. Highlighted
  months are marked with '>', the current month with '*'.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) { c.reportFlags.SetFlags(f, true) }

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.RenderChart(report))
	return subcommands.ExitSuccess
}
