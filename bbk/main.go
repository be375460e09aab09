// Command bbk keeps a book of coupon bonds and shows the income they pay
// month by month.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/bondbook/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Answers the shell completion requests, and exits, when COMP_LINE is set.
	cmd.Completion(flag.CommandLine).Complete("bbk")

	commander := subcommands.NewCommander(flag.CommandLine, "bbk")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	if name := flag.Arg(0); name != "" && !isCommand(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// isCommand reports whether name is a registered subcommand.
func isCommand(commander *subcommands.Commander, name string) bool {
	found := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}
