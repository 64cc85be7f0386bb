package cmd

import (
	"context"
	"flag"

	"github.com/etnz/costbasis/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	replayFlags
	outputFlags
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the position after each transaction" }
func (*historyCmd) Usage() string {
	return `cbs history [-method <method>] [-fees] [-d <date>] [-p <portfolio>] [-a <asset>]

  Replays the ledger and displays, after each transaction, the realized PnL
  of the transaction, the open quantity, the average entry price and the
  cumulative realized PnL. Skipped transactions are marked.

  With -json each pair is written with its position, its results, its errors
  and its open lots.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	c.replayFlags.SetFlags(f)
	c.outputFlags.SetFlags(f)
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reports, err := c.replay(ctx)
	if err != nil {
		return fail(err)
	}

	err = c.print(reports, func() string {
		return renderer.RenderHistory(renderer.NewHistory(reports))
	})
	if err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
