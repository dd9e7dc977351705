// Package parser reads the line-oriented ledger journal format and populates
// a journal.Journal. It is a single-pass state machine: top-level lines
// dispatch on their first character (comment, transaction header, directive)
// and indented lines inside a transaction body become postings. Completed
// transactions are finalized as soon as their body ends.
//
// Parsing is strict by default: the first structural error aborts the whole
// parse. WithRecover switches to a lenient mode that records every error,
// skips the offending line or transaction, and keeps going.
package parser

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/robinvdvleuten/ledger/journal"
	"github.com/robinvdvleuten/ledger/scanner"
	"github.com/robinvdvleuten/ledger/telemetry"
)

// Resolver opens the target of an include directive. The parser hands it the
// already-resolved path; implementations decide what a path means (the
// loader package maps paths onto the filesystem).
type Resolver interface {
	Open(path string) (io.ReadCloser, error)
}

// Option configures a Parser.
type Option func(*Parser)

// WithResolver sets the resolver used for include directives. Without one,
// any include directive fails the parse.
func WithResolver(r Resolver) Option {
	return func(p *Parser) {
		p.resolver = r
	}
}

// WithRecover makes the parser collect errors and continue instead of
// aborting on the first one. The returned journal then contains everything
// that parsed cleanly, and the error is a ParseErrors aggregate.
func WithRecover() Option {
	return func(p *Parser) {
		p.recover = true
	}
}

// Parser parses journal sources. A Parser is stateless between calls; all
// per-parse state lives on the call stack so included files nest safely.
type Parser struct {
	resolver Resolver
	recover  bool
}

// New creates a Parser with the given options.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads one source into a fresh journal. The filename is used for
// error positions and for resolving relative include paths; it may be empty
// for in-memory sources.
func (p *Parser) Parse(ctx context.Context, filename string, r io.Reader) (*journal.Journal, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("parser.parse (%s)", displayName(filename)))
	defer timer.End()

	run := &parseRun{
		parser:   p,
		journal:  journal.New(),
		interner: NewInterner(256),
		visited:  make(map[string]bool),
	}
	if filename != "" {
		run.visited[filepath.Clean(filename)] = true
	}

	if err := run.parseSource(ctx, filename, r); err != nil {
		return nil, err
	}
	if len(run.errs) > 0 {
		return run.journal, run.errs
	}
	return run.journal, nil
}

// ParseString parses a journal from a string.
func ParseString(ctx context.Context, source string) (*journal.Journal, error) {
	return New().Parse(ctx, "", strings.NewReader(source))
}

// ParseBytes parses a journal from bytes.
func ParseBytes(ctx context.Context, data []byte) (*journal.Journal, error) {
	return New().Parse(ctx, "", bytes.NewReader(data))
}

func displayName(filename string) string {
	if filename == "" {
		return "<memory>"
	}
	return filepath.Base(filename)
}

// parseRun is the mutable state of one Parse call, shared across included
// sources so they all populate the same journal.
type parseRun struct {
	parser   *Parser
	journal  *journal.Journal
	interner *Interner

	// visited holds cleaned include paths to break inclusion cycles and
	// skip files included more than once.
	visited map[string]bool

	// errs accumulates errors in recover mode.
	errs ParseErrors
}

// lineState is the per-source cursor: the file being read, the current line,
// and the in-progress transaction when inside a body.
type lineState struct {
	filename string
	lineno   int
	line     string

	inBody   bool
	xact     journal.XactIndex
	xactPos  Position
	xactLine string
	lastPost journal.PostIndex
}

func (s *lineState) pos() Position {
	return Position{Filename: s.filename, Line: s.lineno}
}

// fail routes an error according to the parse mode: recover mode records it
// and continues, strict mode aborts.
func (r *parseRun) fail(perr *ParseError) error {
	if r.parser.recover {
		r.errs = append(r.errs, perr)
		return nil
	}
	return perr
}

func (r *parseRun) parseSource(ctx context.Context, filename string, src io.Reader) error {
	st := &lineState{filename: filename, lastPost: -1}

	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		st.lineno++
		st.line = sc.Text()

		if err := r.parseLine(ctx, st); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", displayName(filename), err)
	}

	// EOF terminates an open transaction body like a blank line does.
	if st.inBody {
		return r.finishXact(st)
	}
	return nil
}

func (r *parseRun) parseLine(ctx context.Context, st *lineState) error {
	if st.inBody {
		trimmed := strings.TrimSpace(st.line)
		if trimmed == "" {
			return r.finishXact(st)
		}
		if st.line[0] == ' ' || st.line[0] == '\t' {
			return r.parseBodyLine(st, trimmed)
		}
		// An unindented line ends the body; it is handled again below as a
		// fresh top-level line.
		if err := r.finishXact(st); err != nil {
			return err
		}
	}
	return r.parseTopLevel(ctx, st)
}

func (r *parseRun) parseTopLevel(ctx context.Context, st *lineState) error {
	trimmed := strings.TrimSpace(st.line)
	if trimmed == "" {
		return nil
	}

	switch c := trimmed[0]; {
	case c == ';' || c == '#' || c == '*' || c == '|':
		return nil

	case st.line[0] == ' ' || st.line[0] == '\t':
		// Postings are only legal inside a transaction body.
		return r.fail(&ParseError{
			Kind:     MalformedHeader,
			Pos:      st.pos(),
			LineText: st.line,
			Message:  "unexpected indented line outside a transaction",
		})

	case c >= '0' && c <= '9':
		return r.startXact(st, trimmed)

	default:
		return r.parseDirective(ctx, st, trimmed)
	}
}

func (r *parseRun) startXact(st *lineState, trimmed string) error {
	tokens := scanner.TokenizeXactHeader(trimmed)

	x, err := journal.NewXact(tokens.Date, tokens.AuxDate, r.interner.Intern(tokens.Payee), tokens.Note)
	if err != nil {
		return r.fail(&ParseError{
			Kind:       MalformedHeader,
			Pos:        st.pos(),
			LineText:   st.line,
			Message:    err.Error(),
			Underlying: err,
		})
	}

	st.xact = r.journal.AddXact(x)
	st.xactPos = st.pos()
	st.xactLine = st.line
	st.lastPost = -1
	st.inBody = true
	return nil
}

func (r *parseRun) parseBodyLine(st *lineState, trimmed string) error {
	if trimmed[0] == ';' {
		// Trailing note: on the latest posting when one exists, otherwise on
		// the transaction itself.
		note := strings.TrimSpace(trimmed[1:])
		if st.lastPost >= 0 {
			r.journal.Post(st.lastPost).AddNote(note)
		} else {
			r.journal.Xact(st.xact).AddNote(note)
		}
		return nil
	}

	tokens := scanner.ScanPosting(st.line)
	account, _ := r.journal.ResolveAccount(r.interner.Intern(tokens.Account), true)

	post := &journal.Post{Account: account, Xact: st.xact}

	if tokens.Quantity != "" || tokens.Symbol != "" {
		amount, perr := r.buildAmount(st, tokens.Quantity, tokens.Symbol)
		if perr != nil {
			return r.fail(perr)
		}
		post.Amount = amount
	}

	if tokens.CostQuantity != "" || tokens.CostSymbol != "" {
		cost, perr := r.buildCost(st, post.Amount, tokens)
		if perr != nil {
			return r.fail(perr)
		}
		post.Cost = cost
	}

	st.lastPost = r.journal.AddPost(post)
	return nil
}

func (r *parseRun) buildAmount(st *lineState, quantity, symbol string) (*journal.Amount, *ParseError) {
	if quantity == "" {
		return nil, &ParseError{
			Kind:     MalformedDirective,
			Pos:      st.pos(),
			LineText: st.line,
			Message:  "posting amount has a symbol but no quantity",
		}
	}
	q, err := journal.ParseQuantity(quantity)
	if err != nil {
		return nil, &ParseError{
			Kind:       MalformedDirective,
			Pos:        st.pos(),
			LineText:   st.line,
			Message:    err.Error(),
			Underlying: err,
		}
	}
	amount := journal.NewAmount(q, r.journal.Commodities.FindOrCreate(r.interner.Intern(symbol)))
	return &amount, nil
}

// buildCost turns a cost clause into the posting's total cost. A per-unit
// cost (@) is multiplied by the posting quantity; a total cost (@@) is taken
// as written, with its sign following the posting amount.
func (r *parseRun) buildCost(st *lineState, amount *journal.Amount, tokens scanner.PostingTokens) (*journal.Amount, *ParseError) {
	if amount == nil {
		return nil, &ParseError{
			Kind:     MalformedDirective,
			Pos:      st.pos(),
			LineText: st.line,
			Message:  "cost clause requires a posting amount",
		}
	}

	q, err := journal.ParseQuantity(tokens.CostQuantity)
	if err != nil {
		return nil, &ParseError{
			Kind:       MalformedDirective,
			Pos:        st.pos(),
			LineText:   st.line,
			Message:    err.Error(),
			Underlying: err,
		}
	}

	if tokens.PerUnit {
		q = amount.Quantity.Mul(q)
	} else if amount.Quantity.IsNegative() {
		q = q.Neg()
	}

	cost := journal.NewAmount(q, r.journal.Commodities.FindOrCreate(r.interner.Intern(tokens.CostSymbol)))
	return &cost, nil
}

func (r *parseRun) finishXact(st *lineState) error {
	st.inBody = false

	err := r.journal.Finalize(st.xact)
	if err == nil {
		return nil
	}

	kind := UnbalancedTransaction
	var delErr *journal.DoubleElisionError
	if errors.As(err, &delErr) {
		kind = DoubleElision
	}

	return r.fail(&ParseError{
		Kind:       kind,
		Pos:        st.xactPos,
		LineText:   st.xactLine,
		Message:    err.Error(),
		Underlying: err,
	})
}

func (r *parseRun) parseDirective(ctx context.Context, st *lineState, trimmed string) error {
	word, rest := trimmed, ""
	if i := strings.IndexAny(trimmed, " \t"); i >= 0 {
		word, rest = trimmed[:i], strings.TrimSpace(trimmed[i+1:])
	}

	switch word {
	case "P":
		return r.parsePrice(st, trimmed)

	case "include":
		return r.parseInclude(ctx, st, rest)

	case "account":
		if rest == "" {
			return r.fail(&ParseError{
				Kind:     MalformedDirective,
				Pos:      st.pos(),
				LineText: st.line,
				Message:  "account directive requires a name",
			})
		}
		r.journal.ResolveAccount(r.interner.Intern(rest), true)
		return nil

	case "commodity":
		if rest == "" {
			return r.fail(&ParseError{
				Kind:     MalformedDirective,
				Pos:      st.pos(),
				LineText: st.line,
				Message:  "commodity directive requires a symbol",
			})
		}
		r.journal.Commodities.FindOrCreate(r.interner.Intern(rest))
		return nil

	default:
		return r.fail(&ParseError{
			Kind:     UnknownDirective,
			Pos:      st.pos(),
			LineText: st.line,
			Message:  fmt.Sprintf("unknown directive %q", word),
		})
	}
}

func (r *parseRun) parsePrice(st *lineState, trimmed string) error {
	tokens := scanner.ScanPriceDirective(trimmed)

	malformed := func(err error) error {
		return r.fail(&ParseError{
			Kind:       MalformedDirective,
			Pos:        st.pos(),
			LineText:   st.line,
			Message:    err.Error(),
			Underlying: err,
		})
	}

	var when time.Time
	var err error
	if tokens.Time != "" {
		when, err = time.Parse(journal.ISODateFormat+" "+journal.ISOTimeFormat, tokens.Date+" "+tokens.Time)
	} else {
		when, err = journal.ParseDate(tokens.Date)
	}
	if err != nil {
		return malformed(fmt.Errorf("invalid price date: %w", err))
	}

	q, err := journal.ParseQuantity(tokens.Rate)
	if err != nil {
		return malformed(fmt.Errorf("invalid price rate: %w", err))
	}

	rate := journal.NewAmount(q, r.journal.Commodities.FindOrCreate(r.interner.Intern(tokens.RateSymbol)))
	if err := r.journal.Commodities.AddPrice(r.interner.Intern(tokens.Symbol), when, rate); err != nil {
		return malformed(err)
	}
	return nil
}

func (r *parseRun) parseInclude(ctx context.Context, st *lineState, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	includeErr := func(msg string, err error) error {
		return r.fail(&ParseError{
			Kind:       IncludeNotFound,
			Pos:        st.pos(),
			LineText:   st.line,
			Message:    msg,
			Underlying: err,
		})
	}

	if path == "" {
		return includeErr("include directive requires a path", nil)
	}
	if r.parser.resolver == nil {
		return includeErr("include directives need a resolver; parse from a file instead of memory", nil)
	}

	// Relative paths resolve against the including file's directory;
	// absolute and home-relative paths are taken as-is.
	resolved := path
	if !filepath.IsAbs(path) && !strings.HasPrefix(path, "~") {
		resolved = filepath.Join(filepath.Dir(st.filename), path)
	}
	resolved = filepath.Clean(resolved)

	if r.visited[resolved] {
		return nil
	}
	r.visited[resolved] = true

	src, err := r.parser.resolver.Open(resolved)
	if err != nil {
		return includeErr(fmt.Sprintf("cannot include %q: %v", path, err), err)
	}
	defer src.Close()

	return r.parseSource(ctx, resolved, src)
}
