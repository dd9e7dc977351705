package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/ledger/journal"
)

type PricesCmd struct {
	From string `help:"Commodity to convert from." arg:""`
	To   string `help:"Commodity to convert to." arg:""`
	File string `help:"Ledger journal with price directives." arg:"" optional:"" type:"existingfile"`
	Date string `help:"Valuation date (YYYY-MM-DD), defaults to now." optional:""`
}

func (cmd *PricesCmd) Run(ctx *kong.Context, globals *Globals) error {
	filename, err := journalFile(globals, cmd.File)
	if err != nil {
		return err
	}

	moment := time.Now()
	if cmd.Date != "" {
		moment, err = journal.ParseDate(cmd.Date)
		if err != nil {
			return err
		}
		// Prices recorded during the requested day count as well.
		moment = moment.Add(24*time.Hour - time.Nanosecond)
	}

	var point journal.PricePoint
	var found bool
	err = run(ctx.Stderr, globals, "prices", filename, func(runCtx context.Context) error {
		j, err := load(runCtx, globals, filename)
		if err != nil {
			return err
		}

		from, ok := j.Commodities.Find(cmd.From)
		if !ok {
			return fmt.Errorf("unknown commodity %q", cmd.From)
		}
		to, ok := j.Commodities.Find(cmd.To)
		if !ok {
			return fmt.Errorf("unknown commodity %q", cmd.To)
		}

		point, found = j.Commodities.History.FindPrice(from, to, moment)
		return nil
	})
	if err != nil {
		return err
	}

	if !found {
		printError(ctx.Stderr, fmt.Sprintf("no conversion from %s to %s", cmd.From, cmd.To))
		return NewCommandError(1)
	}

	printInfof(ctx.Stdout, "1 %s = %s %s (as of %s)",
		cmd.From, point.Rate.String(), cmd.To, point.When.Format(journal.ISODateFormat))
	return nil
}
