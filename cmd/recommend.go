package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bondbook/renderer"
	"github.com/google/subcommands"
)

type recommendCmd struct {
	reportFlags
}

func (*recommendCmd) Name() string     { return "recommend" }
func (*recommendCmd) Synopsis() string { return "recommend bonds paying in the weakest months" }
func (*recommendCmd) Usage() string {
	return `bbk recommend [-on <date>] [-month <month>]

  Lists up to three bonds paying in the months with the lowest income, best
  coupon first, then soonest payout. See 'bbk topic recommend'.
`
}

func (c *recommendCmd) SetFlags(f *flag.FlagSet) { c.reportFlags.SetFlags(f, false) }

func (c *recommendCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.RenderRecommendations(report))
	return subcommands.ExitSuccess
}
