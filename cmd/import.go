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

type importCmd struct {
	path   string
	format string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the book with bonds read from a file" }
func (*importCmd) Usage() string {
	return `bbk import [-format legacy|slot] [-path <jsonpath>] <file>

  Replaces the whole book with the bonds read from file ('-' for stdin).

  The legacy format is the one of the browser version: either the value of
  its 'bondsData' localStorage key, or a JSON dump of the whole localStorage
  in which -path selects the key. See 'bbk topic legacy'.
  The slot format is the one written by 'bbk export'.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.path, "path", bondbook.DefaultLegacyPath, "JSONPath of the bonds in a legacy dump")
	f.StringVar(&c.format, "format", "legacy", "format of the file: legacy or slot")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: import requires exactly one file")
		return subcommands.ExitUsageError
	}

	var r io.Reader = os.Stdin
	if name := f.Arg(0); name != "-" {
		file, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", name, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	}

	var instruments []bondbook.Instrument
	var err error
	switch c.format {
	case "legacy":
		instruments, err = bondbook.ImportLegacy(r, c.path)
	case "slot":
		instruments, err = bondbook.DecodeInstruments(r)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading bonds: %v\n", err)
		return subcommands.ExitFailure
	}

	session, err := OpenSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}
	if n := session.Book().Len(); n > 0 {
		fmt.Fprintf(os.Stderr, "Replacing %d bonds\n", n)
	}
	if err := session.Replace(ctx, instruments); err != nil {
		return printMutationError(err)
	}
	fmt.Printf("Imported %d bonds into %s\n", len(instruments), *storeURL)
	return subcommands.ExitSuccess
}
