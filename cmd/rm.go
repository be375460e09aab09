package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type rmCmd struct {
	id string
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove a bond from the book" }
func (*rmCmd) Usage() string {
	return `bbk rm -id <id|#row>

  Removes a bond from the book. There is no confirmation.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id or #row of the bond to remove")
}

func (c *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	i, found := session.Book().Get(id)
	if !found {
		fmt.Fprintf(os.Stderr, "Warning: no bond %q, nothing removed\n", id)
		return subcommands.ExitSuccess
	}
	if err := session.Delete(ctx, id); err != nil {
		return printMutationError(err)
	}
	fmt.Printf("Removed %q (%s)\n", i.Name, i.ID)
	return subcommands.ExitSuccess
}
