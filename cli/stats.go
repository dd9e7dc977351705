package cli

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/ledger/journal"
)

type StatsCmd struct {
	File string `help:"Ledger journal to inspect." arg:"" optional:"" type:"existingfile"`
	Dump bool   `help:"Dump the raw statistics structure."`
}

// JournalStats summarizes the entities a journal holds.
type JournalStats struct {
	Accounts     int
	Transactions int
	Postings     int
	Commodities  int
	PricePoints  int
}

func collectStats(j *journal.Journal) JournalStats {
	return JournalStats{
		Accounts:     j.AccountCount(),
		Transactions: len(j.Xacts()),
		Postings:     len(j.Posts()),
		Commodities:  j.Commodities.Len(),
		PricePoints:  j.Commodities.History.EdgeCount(),
	}
}

func (cmd *StatsCmd) Run(ctx *kong.Context, globals *Globals) error {
	filename, err := journalFile(globals, cmd.File)
	if err != nil {
		return err
	}

	var stats JournalStats
	err = run(ctx.Stderr, globals, "stats", filename, func(runCtx context.Context) error {
		j, err := load(runCtx, globals, filename)
		if err != nil {
			return err
		}
		stats = collectStats(j)
		return nil
	})
	if err != nil {
		return err
	}

	if cmd.Dump {
		repr.Println(stats)
		return nil
	}

	printInfof(ctx.Stdout, "%d accounts", stats.Accounts)
	printInfof(ctx.Stdout, "%d transactions", stats.Transactions)
	printInfof(ctx.Stdout, "%d postings", stats.Postings)
	printInfof(ctx.Stdout, "%d commodities", stats.Commodities)
	printInfof(ctx.Stdout, "%d price series", stats.PricePoints)
	return nil
}
