package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/robinvdvleuten/ledger/journal"
	"github.com/robinvdvleuten/ledger/loader"
	"github.com/robinvdvleuten/ledger/telemetry"
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool   `help:"Show timing telemetry for operations."`
	Config    string `help:"Path to a YAML config file." type:"existingfile" optional:""`

	// config is loaded lazily from the Config flag or the default location.
	config     *Config
	configOnce sync.Once
	configErr  error
}

// LoadConfig returns the CLI config, reading it on first use.
func (g *Globals) LoadConfig() (*Config, error) {
	g.configOnce.Do(func() {
		g.config, g.configErr = LoadConfig(g.Config)
	})
	return g.config, g.configErr
}

type Commands struct {
	Globals

	Check  CheckCmd  `cmd:"" help:"Parse and balance-check a ledger journal."`
	Stats  StatsCmd  `cmd:"" help:"Show statistics about a ledger journal."`
	Prices PricesCmd `cmd:"" help:"Look up an exchange rate from a journal's price history."`
}

// run wraps a command body with the shared telemetry plumbing: when enabled,
// a collector is attached to the context and its report lands on stderr
// after the body returns.
func run(stderr io.Writer, globals *Globals, name, filename string, body func(ctx context.Context) error) error {
	cfg, err := globals.LoadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	var collector telemetry.Collector
	if globals.Telemetry || cfg.Telemetry {
		collector = telemetry.NewTimingCollector()
		ctx = telemetry.WithCollector(ctx, collector)
	}

	timer := telemetry.StartTimer(ctx, fmt.Sprintf("%s %s", name, filepath.Base(filename)))
	bodyErr := body(ctx)
	timer.End()

	if collector != nil {
		_, _ = fmt.Fprintln(stderr)
		collector.Report(stderr)
	}
	return bodyErr
}

// load reads a journal honoring the config's recover setting.
func load(ctx context.Context, globals *Globals, filename string) (*journal.Journal, error) {
	cfg, err := globals.LoadConfig()
	if err != nil {
		return nil, err
	}

	var opts []loader.Option
	if cfg.Recover {
		opts = append(opts, loader.WithRecover())
	}
	return loader.New(opts...).Load(ctx, filename)
}

// journalFile picks the journal path: the argument when given, otherwise the
// config file default.
func journalFile(globals *Globals, arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	cfg, err := globals.LoadConfig()
	if err != nil {
		return "", err
	}
	if cfg.File == "" {
		return "", fmt.Errorf("no journal file given and none configured")
	}
	return cfg.File, nil
}
