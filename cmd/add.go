package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bondbook"
	"github.com/etnz/bondbook/renderer"
	"github.com/google/subcommands"
)

type addCmd struct {
	draftFlags
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a bond to the book" }
func (*addCmd) Usage() string {
	return `bbk add -n <name> -q <quantity> -m <months> -c <coupon>

  Adds a bond at the end of the book. Every field is required. Without any
  flag, an empty row is added, to be completed later with 'bbk edit'.

Usage Examples:
$ bbk add -n "OFZ 26238" -q 10 -m jan,jul -c 35,4
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) { c.draftFlags.SetFlags(f) }

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	draft, err := c.apply(f, bondbook.Draft{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.anySet(f) {
		// check before adding, so that a rejected bond leaves no empty row.
		if err := draft.Validate(); err != nil {
			return printMutationError(err)
		}
	}

	session, err := OpenSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}

	i, err := session.Add(ctx)
	if err != nil {
		return printMutationError(err)
	}
	if c.anySet(f) {
		if i, err = session.Edit(ctx, i.ID, draft); err != nil {
			return printMutationError(err)
		}
	} else {
		session.Cancel()
		fmt.Fprintf(os.Stderr, "Added an empty row, complete it with: bbk edit -id %s -n <name> -q <quantity> -m <months> -c <coupon>\n", i.ID)
	}

	printMarkdown(renderer.RenderInstrument(i, *currency))
	return subcommands.ExitSuccess
}
