package cmd

import (
	"context"
	"flag"

	"github.com/etnz/costbasis"
	"github.com/etnz/costbasis/renderer"
	"github.com/google/subcommands"
)

type positionCmd struct {
	replayFlags
	outputFlags
}

func (*positionCmd) Name() string     { return "position" }
func (*positionCmd) Synopsis() string { return "display the cost basis position of every asset" }
func (*positionCmd) Usage() string {
	return `cbs position [-method <method>] [-fees] [-d <date>] [-p <portfolio>] [-a <asset>]

  Replays the ledger and displays, for each (portfolio, asset), the open
  quantity, the average entry price and the realized PnL.

Usage Examples:
# Positions at the end of 2024, with fees, using LIFO for the "trading" portfolio.
$ cbs position -fees -d 2024-12-31 -portfolio-method trading=lifo

# Realized PnL of a single position.
$ cbs position -p main -a BTC -q '$[0].realized_pnl'
`
}

func (c *positionCmd) SetFlags(f *flag.FlagSet) {
	c.replayFlags.SetFlags(f)
	c.outputFlags.SetFlags(f)
}

func (c *positionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reports, err := c.replay(ctx)
	if err != nil {
		return fail(err)
	}

	positions := make([]costbasis.Position, 0, len(reports))
	for _, rep := range reports {
		positions = append(positions, rep.Position)
	}
	err = c.print(positions, func() string {
		return renderer.RenderPositions(renderer.NewPositions(reports, c.on))
	})
	if err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
