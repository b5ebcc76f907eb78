package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/patrimoine"
	"github.com/etnz/patrimoine/renderer"
	"github.com/google/subcommands"
)

type drawdownCmd struct {
	simulateCmd
	capital float64
}

func (*drawdownCmd) Name() string     { return "drawdown" }
func (*drawdownCmd) Synopsis() string { return "project retirement withdrawals until depletion" }
func (*drawdownCmd) Usage() string {
	return `pat drawdown [-capital <cash>] [-rate <frac>] [-inflation <frac>]

  Projects the decumulation phase: a fixed real withdrawal is taken every
  year from a capital that keeps earning a 5% nominal yield, until the
  capital is depleted or the horizon ends.

  Without -capital, the starting figure is the inflation-adjusted outcome of
  the accumulation projection (see "pat simulate").
`
}

func (c *drawdownCmd) SetFlags(f *flag.FlagSet) {
	c.simulateCmd.SetFlags(f)
	f.Float64Var(&c.capital, "capital", -1, "Starting retirement capital in today's money.")
}

func (c *drawdownCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := c.seededParams()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	capital := c.capital
	if capital < 0 {
		capital = patrimoine.SimulateWealth(p).FinalReal
	}

	result := patrimoine.SimulateDrawdown(capital, p)
	printMarkdown(renderer.DrawdownMarkdown(p, capital, result))
	return subcommands.ExitSuccess
}
