package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// ExtensionPrefix is the prefix of the external binaries run as bbk subcommands.
const ExtensionPrefix = "bbk-"

// extensionEnv returns the environment of an extension: the current one, plus
// the global flags as the variables LoadConfig reads.
func extensionEnv() []string {
	c := config
	c.Store = *storeURL
	c.Currency = *currency
	c.Verbose = strconv.FormatBool(*Verbose)
	return append(os.Environ(), c.environ()...)
}

// extensionCommand returns the command running the bbk-<subcommand> binary
// found in PATH.
func extensionCommand(subcommand string, args []string) (*exec.Cmd, error) {
	lp, err := exec.LookPath(ExtensionPrefix + subcommand)
	if err != nil {
		return nil, err
	}
	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv()
	return cmd, nil
}

// RunExtension attempts to find and execute an external bbk-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	cmd, err := extensionCommand(subcommand, args)
	if err != nil {
		Logger().Sugar().Debugf("no extension %s%s: %v", ExtensionPrefix, subcommand, err)
		return false, 0
	}

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", cmd.Path, err)
		return true, 1
	}
	return true, 0
}
