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

// stepCmd moves a bond one row up or down.
type stepCmd struct {
	id string
}

func (c *stepCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id or #row of the bond to move")
}

func (c *stepCmd) execute(ctx context.Context, move func(*bondbook.Session, context.Context, bondbook.ID) error) subcommands.ExitStatus {
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
	if err := move(session, ctx, id); err != nil {
		return printMutationError(err)
	}
	return printOrder(session)
}

// printOrder prints the table of the book.
func printOrder(session *bondbook.Session) subcommands.ExitStatus {
	var r reportFlags
	r.SetFlags(flag.NewFlagSet("order", flag.ContinueOnError), false)
	report, err := r.report(session.Book())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderReport(report, renderer.ReportOptions{SkipChart: true, SkipRecommendations: true}))
	return subcommands.ExitSuccess
}

type upCmd struct{ stepCmd }

func (*upCmd) Name() string     { return "up" }
func (*upCmd) Synopsis() string { return "move a bond one row up" }
func (*upCmd) Usage() string {
	return `bbk up -id <id|#row>

  Moves a bond one row up. The first row stays in place.
`
}

func (c *upCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(ctx, (*bondbook.Session).MoveUp)
}

type downCmd struct{ stepCmd }

func (*downCmd) Name() string     { return "down" }
func (*downCmd) Synopsis() string { return "move a bond one row down" }
func (*downCmd) Usage() string {
	return `bbk down -id <id|#row>

  Moves a bond one row down. The last row stays in place.
`
}

func (c *downCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(ctx, (*bondbook.Session).MoveDown)
}

type mvCmd struct {
	from, to int
}

func (*mvCmd) Name() string     { return "mv" }
func (*mvCmd) Synopsis() string { return "move a bond to another row" }
func (*mvCmd) Usage() string {
	return `bbk mv -from <row> -to <row>

  Moves the bond at row 'from' to row 'to', rows numbered from 1 as shown by
  'bbk list'. Rows out of the book leave it unchanged.
`
}

func (c *mvCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.from, "from", 0, "row of the bond to move")
	f.IntVar(&c.to, "to", 0, "row to move it to")
}

func (c *mvCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := OpenSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}
	if n := session.Book().Len(); c.from < 1 || c.from > n || c.to < 1 || c.to > n {
		fmt.Fprintf(os.Stderr, "Warning: rows must be between 1 and %d, nothing moved\n", n)
	}
	if err := session.Move(ctx, c.from-1, c.to-1); err != nil {
		return printMutationError(err)
	}
	return printOrder(session)
}
