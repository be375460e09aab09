package cmd

import (
	"flag"
	"strings"

	"github.com/etnz/bondbook"
	"github.com/etnz/bondbook/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// monthNames predicts the values of the month flags.
func monthNames() predict.Set {
	var names []string
	for _, m := range bondbook.AllMonths() {
		names = append(names, strings.ToLower(m.String()))
	}
	return predict.Set(names)
}

// flagPredictor returns the completion of the value of flag fl.
func flagPredictor(fl *flag.Flag) complete.Predictor {
	if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch fl.Name {
	case "month", "hover-month":
		return monthNames()
	case "format":
		return predict.Set{"legacy", "slot"}
	case "store":
		return predict.Files("*.json")
	}
	return predict.Something
}

// flagPredictors returns the predictors of every flag in f.
func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		flags[fl.Name] = flagPredictor(fl)
	})
	return flags
}

// argsPredictor returns the completion of the positional arguments of command name.
func argsPredictor(name string) complete.Predictor {
	switch name {
	case "import", "export":
		return predict.Files("*.json")
	case "topic":
		topics, err := docs.GetAllTopics()
		if err != nil {
			return predict.Nothing
		}
		return predict.Set(append(topics, "readme"))
	case "advise":
		return predict.Something
	}
	return predict.Nothing
}

// Completion returns the shell completion of bbk, with the global flags of
// global.
func Completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(global),
	}
	for _, e := range commands {
		f := flag.NewFlagSet(e.cmd.Name(), flag.ContinueOnError)
		e.cmd.SetFlags(f)
		root.Sub[e.cmd.Name()] = &complete.Command{
			Flags: flagPredictors(f),
			Args:  argsPredictor(e.cmd.Name()),
		}
	}
	root.Sub["help"] = &complete.Command{Args: predict.Set(commandNames())}
	return root
}

// commandNames returns the names of the registered subcommands.
func commandNames() []string {
	names := make([]string, 0, len(commands))
	for _, e := range commands {
		names = append(names, e.cmd.Name())
	}
	return names
}
