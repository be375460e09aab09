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

type editCmd struct {
	draftFlags
	id string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change the fields of a bond" }
func (*editCmd) Usage() string {
	return `bbk edit -id <id|#row> [-n <name>] [-q <quantity>] [-m <months>] [-c <coupon>]

  Replaces the given fields of a bond, the others are kept. The bond is
  designated by its id or by its row number as shown by 'bbk list' (#2).
  The result must have every field set.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id or #row of the bond to edit")
	c.draftFlags.SetFlags(f)
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	session, err := OpenSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}

	id, err := resolveID(session.Book(), c.id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	current, err := session.BeginEdit(id)
	if err != nil {
		return printMutationError(err)
	}
	draft, err := c.apply(f, bondbook.DraftOf(current))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	i, err := session.Edit(ctx, id, draft)
	if err != nil {
		return printMutationError(err)
	}

	printMarkdown(renderer.RenderInstrument(i, *currency))
	return subcommands.ExitSuccess
}
