package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/costbasis/renderer"
	"github.com/google/subcommands"
)

type checkCmd struct {
	replayFlags
	outputFlags
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "list the transactions that cannot be applied" }
func (*checkCmd) Usage() string {
	return `cbs check [-method <method>] [-d <date>] [-p <portfolio>] [-a <asset>]

  Replays the ledger and lists every skipped transaction: invalid ones and
  disposals of more than the open quantity. Exits with a non zero status when
  any transaction is skipped.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	c.replayFlags.SetFlags(f)
	c.outputFlags.SetFlags(f)
}

func (c *checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reports, err := c.replay(ctx)
	if err != nil {
		return fail(err)
	}

	view := renderer.NewCheck(reports)
	errs := view.Errors
	if errs == nil {
		errs = []string{}
	}
	if err := c.print(errs, func() string { return renderer.RenderCheck(view) }); err != nil {
		return fail(err)
	}
	if len(view.Errors) > 0 {
		fmt.Fprintf(os.Stderr, "%d transaction(s) skipped in %s\n", len(view.Errors), *ledgerFile)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
