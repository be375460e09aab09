package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/bondbook/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// adviseCmd is the subcommand for the AI advisor.
type adviseCmd struct{}

// Name returns the name of the command.
func (*adviseCmd) Name() string { return "advise" }

// Synopsis returns a short-one line synopsis of the command.
func (*adviseCmd) Synopsis() string { return "Start an interactive session with the AI income advisor." }

// Usage returns a long-form usage string.
func (*adviseCmd) Usage() string {
	return `bbk advise [<question>...]:
  Start an interactive session with the AI income advisor. It reads the book
  and can search for news about the issuers. Requires a Gemini API key in
  GEMINI_API_KEY or GOOGLE_API_KEY.
`
}

// SetFlags sets the flags for the command.
func (*adviseCmd) SetFlags(_ *flag.FlagSet) {}

// Execute executes the command.
func (c *adviseCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	session, err := OpenSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst := agent.NewAnalyst()
	bookkeeper := agent.NewBookkeeper(session, *currency)
	bookkeeper.Log = Logger()
	a := agent.New(os.Stdout, os.Stdin, analyst, bookkeeper)
	a.Render = renderMarkdown

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
