package parser

import (
	"fmt"
	"strings"
)

// ErrorKind classifies parse failures so callers can react to the category
// without matching on message text.
type ErrorKind int

const (
	// MalformedHeader marks an unparseable transaction header.
	MalformedHeader ErrorKind = iota
	// MalformedDirective marks a recognized directive with unusable fields,
	// such as a price line with a bad date or rate.
	MalformedDirective
	// UnbalancedTransaction marks a nonzero residual with no elided posting.
	UnbalancedTransaction
	// DoubleElision marks two postings without amounts in one transaction.
	DoubleElision
	// UnknownDirective marks an unrecognized top-level keyword.
	UnknownDirective
	// IncludeNotFound marks an include whose target cannot be opened.
	IncludeNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedHeader:
		return "malformed header"
	case MalformedDirective:
		return "malformed directive"
	case UnbalancedTransaction:
		return "unbalanced transaction"
	case DoubleElision:
		return "double elision"
	case UnknownDirective:
		return "unknown directive"
	case IncludeNotFound:
		return "include not found"
	default:
		return "unknown error"
	}
}

// ParseError represents a fatal problem with one line of a journal source.
// It carries the position and raw line text so formatters can show the
// offending input.
type ParseError struct {
	Kind       ErrorKind
	Pos        Position
	LineText   string
	Message    string
	Underlying error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// GetPosition exposes the error position for error formatters.
func (e *ParseError) GetPosition() Position {
	return e.Pos
}

func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// ParseErrors aggregates the errors collected during a recovering parse.
type ParseErrors []*ParseError

func (e ParseErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors:", len(e))
	for _, err := range e {
		b.WriteString("\n\t")
		b.WriteString(err.Error())
	}
	return b.String()
}
