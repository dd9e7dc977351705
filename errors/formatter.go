// Package errors provides error formatting for ledger parse and balance
// errors. It separates presentation from the parser's domain errors so the
// same error values can be rendered as plain text for the CLI or as
// structured JSON for other consumers.
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/ledger/parser"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// TextFormatter formats errors for command-line output: the message,
// followed by the offending source line with an underline beneath it.
type TextFormatter struct{}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format formats a single error.
func (tf *TextFormatter) Format(err error) string {
	var perr *parser.ParseError
	if e, ok := err.(*parser.ParseError); ok {
		perr = e
	}
	if perr != nil && perr.LineText != "" {
		return tf.formatWithLine(perr)
	}
	return err.Error()
}

// FormatAll formats multiple errors, separated by blank lines. A
// parser.ParseErrors aggregate is flattened into its individual errors.
func (tf *TextFormatter) FormatAll(errs []error) string {
	var buf bytes.Buffer
	for i, err := range flatten(errs) {
		if i > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(tf.Format(err))
	}
	return buf.String()
}

// formatWithLine shows the error message above the offending line, with an
// underline spanning the line's content. Widths are computed with runewidth
// so payees and symbols outside ASCII underline correctly.
func (tf *TextFormatter) formatWithLine(perr *parser.ParseError) string {
	var buf bytes.Buffer

	buf.WriteString(perr.Error())
	buf.WriteString("\n\n")

	line := strings.ReplaceAll(perr.LineText, "\t", "    ")
	trimmed := strings.TrimLeft(line, " ")
	indent := runewidth.StringWidth(line) - runewidth.StringWidth(trimmed)

	buf.WriteString("   ")
	buf.WriteString(line)
	buf.WriteString("\n   ")
	buf.WriteString(strings.Repeat(" ", indent))

	width := runewidth.StringWidth(strings.TrimRight(trimmed, " "))
	if width < 1 {
		width = 1
	}
	buf.WriteString("^")
	buf.WriteString(strings.Repeat("~", width-1))
	buf.WriteByte('\n')

	return buf.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Kind     string        `json:"kind"`
	Message  string        `json:"message"`
	Position *PositionJSON `json:"position,omitempty"`
	Line     string        `json:"line,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	flat := flatten(errs)
	jsonErrors := make([]ErrorJSON, 0, len(flat))
	for _, err := range flat {
		jsonErrors = append(jsonErrors, jf.toJSON(err))
	}
	data, _ := json.MarshalIndent(jsonErrors, "", "  ")
	return string(data)
}

func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Kind:    fmt.Sprintf("%T", err),
		Message: err.Error(),
	}

	if perr, ok := err.(*parser.ParseError); ok {
		errJSON.Kind = perr.Kind.String()
		errJSON.Line = perr.LineText
	}

	if e, ok := err.(interface{ GetPosition() parser.Position }); ok {
		pos := e.GetPosition()
		errJSON.Position = &PositionJSON{
			Filename: pos.Filename,
			Line:     pos.Line,
		}
	}

	return errJSON
}

// flatten expands parser.ParseErrors aggregates so each contained error is
// formatted on its own.
func flatten(errs []error) []error {
	out := make([]error, 0, len(errs))
	for _, err := range errs {
		if perrs, ok := err.(parser.ParseErrors); ok {
			for _, perr := range perrs {
				out = append(out, perr)
			}
			continue
		}
		out = append(out, err)
	}
	return out
}
