// Package cmd implements the bbk command line tool, to keep a book of bonds
// and see the income they pay month by month.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/bondbook"
	"github.com/etnz/bondbook/logging"
	"github.com/etnz/bondbook/storage"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// commands lists every bbk subcommand with its group.
var commands = []struct {
	cmd   subcommands.Command
	group string
}{
	{&listCmd{}, "book"},
	{&addCmd{}, "book"},
	{&editCmd{}, "book"},
	{&rmCmd{}, "book"},
	{&upCmd{}, "book"},
	{&downCmd{}, "book"},
	{&mvCmd{}, "book"},

	{&chartCmd{}, "income"},
	{&recommendCmd{}, "income"},
	{&adviseCmd{}, "income"},

	{&importCmd{}, "data"},
	{&exportCmd{}, "data"},
	{&serveCmd{}, "data"},

	{&topicCmd{}, "help"},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, e := range commands {
		c.Register(e.cmd, e.group)
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var config = LoadConfig()

var storeURL = flag.String("store", config.Store, "Where the book is stored: a file, memory:, redis://, postgres:// or s3:// URL (see topic storage)")
var currency = flag.String("currency", config.Currency, "Currency of the incomes, for display")
var Verbose = flag.Bool("v", config.verbose(), "Log debug information to stderr")

var (
	loggerOnce sync.Once
	logger     *zap.Logger
)

// Logger returns the logger of the command line, built on first use.
func Logger() *zap.Logger {
	loggerOnce.Do(func() { logger = logging.New(*Verbose) })
	return logger
}

// OpenSession loads the book from the storage selected by the -store flag.
func OpenSession(ctx context.Context) (*bondbook.Session, error) {
	st, err := storage.Open(ctx, *storeURL, Logger())
	if err != nil {
		return nil, err
	}
	return bondbook.Open(ctx, st, Logger())
}

// renderMarkdown writes md to w, styled for the terminal when possible.
func renderMarkdown(w io.Writer, md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(w, out)
			return
		}
	}
	Logger().Debug("cannot render markdown", zap.Error(err))
	fmt.Fprint(w, md)
}

// printMarkdown prints md to stdout.
func printMarkdown(md string) { renderMarkdown(os.Stdout, md) }
