package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/bondbook"
	"github.com/google/subcommands"
)

type exportCmd struct {
	legacy bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the book to a file" }
func (*exportCmd) Usage() string {
	return `bbk export [-legacy] [<file>]

  Writes the whole book to file, or to stdout. With -legacy it is written in
  the format of the browser version, to be pasted as the value of its
  'bondsData' localStorage key.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.legacy, "legacy", false, "write in the browser version format")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := OpenSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}

	var w io.Writer = os.Stdout
	if name := f.Arg(0); name != "" && name != "-" {
		file, err := os.Create(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", name, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}

	instruments := session.Book().Instruments()
	if c.legacy {
		err = bondbook.ExportLegacy(w, instruments)
	} else {
		err = bondbook.EncodeInstruments(w, instruments)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing bonds: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
