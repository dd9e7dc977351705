package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/robinvdvleuten/ledger/errors"
)

type CheckCmd struct {
	File  string `help:"Ledger journal to check." arg:"" optional:"" type:"existingfile"`
	Watch bool   `help:"Re-run the check whenever the journal changes."`
	JSON  bool   `help:"Report errors as JSON."`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	filename, err := journalFile(globals, cmd.File)
	if err != nil {
		return err
	}

	if cmd.Watch {
		return cmd.watch(ctx, globals, filename)
	}

	if !cmd.check(ctx, globals, filename) {
		return NewCommandError(1)
	}
	return nil
}

// check runs one parse-and-balance pass and reports the outcome. It returns
// whether the journal is clean.
func (cmd *CheckCmd) check(ctx *kong.Context, globals *Globals, filename string) bool {
	var formatter errors.Formatter = errors.NewTextFormatter()
	if cmd.JSON {
		formatter = errors.NewJSONFormatter()
	}

	err := run(ctx.Stderr, globals, "check", filename, func(runCtx context.Context) error {
		_, err := load(runCtx, globals, filename)
		return err
	})
	if err != nil {
		_, _ = fmt.Fprintln(ctx.Stderr, formatter.FormatAll([]error{err}))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, "check failed")
		return false
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("%s: check passed", filepath.Base(filename)))
	return true
}

// watch re-checks the journal on every write to it. The watch is placed on
// the directory because editors typically replace the file on save, which
// drops a watch set on the file itself.
func (cmd *CheckCmd) watch(ctx *kong.Context, globals *Globals, filename string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	cmd.check(ctx, globals, filename)
	printInfof(ctx.Stdout, "watching %s", filename)
	if isTerminal() {
		printInfof(ctx.Stdout, "press ctrl+c to stop")
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			cmd.check(ctx, globals, filename)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(ctx.Stderr, err.Error())
		}
	}
}
