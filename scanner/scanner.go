// Package scanner tokenizes single lines of the ledger journal format. Every
// function works on trimmed line slices and returns substrings of the input,
// never allocating intermediate copies.
//
// Scanning never fails on well-formed-but-unusual input: missing optional
// fields come back as empty strings and callers treat empty as "not
// specified". Only programming-contract violations (an empty line handed to
// the transaction-header tokenizer, a posting line with no account) panic.
package scanner

import "strings"

// HeaderTokens holds the fields of a transaction header line:
//
//	DATE[=AUX_DATE] [PAYEE]  [; NOTE]
type HeaderTokens struct {
	Date    string
	AuxDate string
	Payee   string
	Note    string
}

// PostingTokens holds the fields of a posting line:
//
//	ACCOUNT  [AMOUNT [@ COST | @@ COST]]
//
// PerUnit distinguishes a per-unit cost (@) from a total cost (@@); it is
// meaningful only when CostQuantity or CostSymbol is non-empty.
type PostingTokens struct {
	Account      string
	Quantity     string
	Symbol       string
	CostQuantity string
	CostSymbol   string
	PerUnit      bool
}

// PriceTokens holds the fields of a price directive:
//
//	P DATE [TIME] SYMBOL RATE RATE_SYMBOL
type PriceTokens struct {
	Date       string
	Time       string
	Symbol     string
	Rate       string
	RateSymbol string
}

// TokenizeXactHeader splits a transaction header into its four fields. The
// date runs up to the first "=" or space; an aux date follows "="; the payee
// runs up to the two-spaces-then-semicolon note marker; the note is whatever
// follows the marker, trimmed. An empty input is a contract violation and
// panics: callers dispatch on the first character, so a header line is never
// blank.
func TokenizeXactHeader(line string) HeaderTokens {
	if line == "" {
		panic("scanner: empty transaction header")
	}

	date, rest := scanDate(line)
	auxDate, rest := scanAuxDate(rest)
	payee, rest := scanPayee(rest)

	return HeaderTokens{
		Date:    date,
		AuxDate: auxDate,
		Payee:   payee,
		Note:    scanNote(rest),
	}
}

func scanDate(input string) (date, rest string) {
	if i := strings.IndexAny(input, "= "); i >= 0 {
		return input[:i], input[i:]
	}
	return input, ""
}

func scanAuxDate(input string) (auxDate, rest string) {
	if !strings.HasPrefix(input, "=") {
		return "", input
	}
	input = input[1:]
	if i := strings.IndexByte(input, ' '); i >= 0 {
		return input[:i], input[i:]
	}
	return input, ""
}

// noteMarker separates the payee from the trailing note on a header line.
const noteMarker = "  ;"

func scanPayee(input string) (payee, rest string) {
	if i := strings.Index(input, noteMarker); i >= 0 {
		return strings.TrimSpace(input[:i]), input[i:]
	}
	return strings.TrimSpace(input), ""
}

func scanNote(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(input[len(noteMarker):])
}

// ScanPosting splits a posting line into account, amount, and cost tokens.
// The account and the amount are separated by the first run of two spaces; a
// line without the separator is an account-only posting (elided amount). A
// posting without an account is a contract violation and panics.
func ScanPosting(line string) PostingTokens {
	input := strings.TrimLeft(line, " \t")
	if input == "" || input[0] == ';' {
		panic("scanner: posting has no account")
	}

	sep := strings.Index(input, "  ")
	if sep < 0 {
		return PostingTokens{Account: strings.TrimRight(input, " \t")}
	}

	tokens := PostingTokens{Account: input[:sep]}
	quantity, symbol, rest := scanAmount(input[sep+2:])
	tokens.Quantity = quantity
	tokens.Symbol = symbol

	if strings.HasPrefix(rest, "@") {
		rest = rest[1:]
		tokens.PerUnit = true
		if strings.HasPrefix(rest, "@") {
			rest = rest[1:]
			tokens.PerUnit = false
		}
		tokens.CostQuantity, tokens.CostSymbol, _ = scanAmount(rest)
	}
	return tokens
}

// scanAmount reads one amount, classifying it as quantity-first or
// symbol-first by its first non-space character.
func scanAmount(input string) (quantity, symbol, rest string) {
	input = strings.TrimLeft(input, " \t")
	if input == "" {
		return "", "", ""
	}

	if isQuantityChar(rune(input[0])) {
		quantity, input = scanQuantity(input)
		symbol, input = scanSymbol(input)
	} else {
		symbol, input = scanSymbol(input)
		quantity, input = scanQuantity(input)
	}
	return quantity, symbol, input
}

// isQuantityChar reports whether a rune may start or continue a quantity
// token. Separators are not normalized here; ParseQuantity handles that.
func isQuantityChar(c rune) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == '.' || c == ','
}

func scanQuantity(input string) (quantity, rest string) {
	for i, c := range input {
		if !isQuantityChar(c) {
			return input[:i], strings.TrimLeft(input[i:], " \t")
		}
	}
	return input, ""
}

// scanSymbol reads a commodity symbol, stopping at whitespace, "@", or the
// start of a number. A double-quoted symbol runs to the matching quote and
// keeps embedded spaces; the quotes stay on the token and are stripped when
// the symbol is interned.
func scanSymbol(input string) (symbol, rest string) {
	input = strings.TrimLeft(input, " \t")

	if strings.HasPrefix(input, `"`) {
		if end := strings.IndexByte(input[1:], '"'); end >= 0 {
			return input[:end+2], strings.TrimLeft(input[end+2:], " \t")
		}
		return input, ""
	}

	for i, c := range input {
		if c == ' ' || c == '\t' || c == '@' || (c >= '0' && c <= '9') || c == '-' {
			return input[:i], strings.TrimLeft(input[i:], " \t")
		}
	}
	return input, ""
}

// ScanPriceDirective splits a price line into its elements. The line must
// start with "P"; the TIME element is optional and recognized by its leading
// digit (symbols never start with one).
func ScanPriceDirective(line string) PriceTokens {
	input := strings.TrimLeft(line[1:], " \t")

	var tokens PriceTokens
	tokens.Date, input = scanPriceElement(input)

	if input != "" && input[0] >= '0' && input[0] <= '9' {
		tokens.Time, input = scanPriceElement(input)
	}

	tokens.Symbol, input = scanPriceElement(input)
	tokens.Rate, input = scanPriceElement(input)
	tokens.RateSymbol, _ = scanPriceElement(input)

	return tokens
}

func scanPriceElement(input string) (element, rest string) {
	if i := strings.IndexAny(input, " \t"); i >= 0 {
		return input[:i], strings.TrimLeft(input[i:], " \t")
	}
	return input, ""
}
