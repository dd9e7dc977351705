// Package loader reads ledger journals from the filesystem, wiring the
// parser to an OS-backed include resolver. Include directives resolve
// relative to the directory of the file containing them; a file included
// more than once is parsed only the first time.
//
// Example usage:
//
//	j, err := loader.New().Load(ctx, "main.ledger")
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"context"

	"github.com/robinvdvleuten/ledger/journal"
	"github.com/robinvdvleuten/ledger/parser"
	"github.com/robinvdvleuten/ledger/telemetry"
)

// Loader loads and parses journal files.
type Loader struct {
	// Recover switches the parser to its lenient mode: errors are collected
	// instead of aborting the parse.
	Recover bool
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithRecover makes the loader collect parse errors and keep going.
func WithRecover() Option {
	return func(l *Loader) {
		l.Recover = true
	}
}

// New creates a Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses a journal file, following its include directives.
func (l *Loader) Load(ctx context.Context, filename string) (*journal.Journal, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("loader.load (%s)", filepath.Base(filename)))
	defer timer.End()

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	opts := []parser.Option{parser.WithResolver(osResolver{})}
	if l.Recover {
		opts = append(opts, parser.WithRecover())
	}

	return parser.New(opts...).Parse(ctx, filename, f)
}

// Load parses a journal file with a default Loader.
func Load(ctx context.Context, filename string) (*journal.Journal, error) {
	return New().Load(ctx, filename)
}

// osResolver opens include targets on the filesystem. A leading "~" expands
// to the user's home directory; everything else is opened as-is (the parser
// already resolved relative paths against the including file).
type osResolver struct{}

func (osResolver) Open(path string) (io.ReadCloser, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot expand %q: %w", path, err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return os.Open(path)
}
