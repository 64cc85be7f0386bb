// Command cbs computes the cost basis and realized PnL of positions from a
// ledger of transactions.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/costbasis/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Handles shell completion requests and exits, when run by the shell.
	cmd.Completion().Complete("cbs")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
