// Package ledger parses plain-text double-entry accounting journals into an
// in-memory model of accounts, transactions, postings, and commodity prices.
// It is the convenience facade over the parser, loader, and journal
// packages.
//
// Example usage:
//
//	j, err := ledger.ParseString(ctx, source)
//	if err != nil {
//		return err
//	}
//	for _, x := range j.Xacts() {
//		fmt.Println(x.Payee)
//	}
package ledger

import (
	"context"
	"io"

	"github.com/robinvdvleuten/ledger/journal"
	"github.com/robinvdvleuten/ledger/loader"
	"github.com/robinvdvleuten/ledger/parser"
)

// Parse reads a journal from a reader. Include directives are not supported
// for in-memory sources; use LoadFile for journals that include other files.
func Parse(ctx context.Context, r io.Reader) (*journal.Journal, error) {
	return parser.New().Parse(ctx, "", r)
}

// ParseString parses a journal from a string.
func ParseString(ctx context.Context, source string) (*journal.Journal, error) {
	return parser.ParseString(ctx, source)
}

// ParseBytes parses a journal from bytes.
func ParseBytes(ctx context.Context, data []byte) (*journal.Journal, error) {
	return parser.ParseBytes(ctx, data)
}

// LoadFile parses a journal file from the filesystem, following its include
// directives.
func LoadFile(ctx context.Context, filename string) (*journal.Journal, error) {
	return loader.Load(ctx, filename)
}
