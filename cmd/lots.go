package cmd

import (
	"context"
	"flag"

	"github.com/etnz/costbasis"
	"github.com/etnz/costbasis/renderer"
	"github.com/google/subcommands"
)

type lotsCmd struct {
	replayFlags
	outputFlags
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "display the open lots of every asset" }
func (*lotsCmd) Usage() string {
	return `cbs lots [-method <method>] [-fees] [-d <date>] [-p <portfolio>] [-a <asset>]

  Replays the ledger and displays the lots still open, in acquisition order.
  With -method avg there is a single lot per position.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	c.replayFlags.SetFlags(f)
	c.outputFlags.SetFlags(f)
}

type pairLots struct {
	Portfolio string          `json:"portfolio_id"`
	Asset     string          `json:"asset_id"`
	Lots      []costbasis.Lot `json:"lots"`
}

func (c *lotsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reports, err := c.replay(ctx)
	if err != nil {
		return fail(err)
	}

	out := make([]pairLots, 0, len(reports))
	for _, rep := range reports {
		lots := rep.Lots
		if lots == nil {
			lots = []costbasis.Lot{}
		}
		out = append(out, pairLots{rep.Position.Portfolio, rep.Position.Asset, lots})
	}
	err = c.print(out, func() string {
		return renderer.RenderLots(renderer.NewLots(reports))
	})
	if err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
