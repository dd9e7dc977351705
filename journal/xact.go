package journal

import (
	"fmt"
	"time"
)

// ISODateFormat is the date layout used throughout journal files.
const ISODateFormat = "2006-01-02"

// ISOTimeFormat is the time layout accepted by the price directive.
const ISOTimeFormat = "15:04:05"

// UnknownPayee substitutes for an elided payee; the payee is mandatory in
// the model but not in the input.
const UnknownPayee = "Unknown Payee"

// ParseDate parses an ISO-formatted date, like 2023-07-23.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(ISODateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// XactState tracks a transaction through its lifecycle: postings are
// accumulated while Open; finalization settles the balance and moves the
// transaction to Finalized, or Rejected when balancing fails.
type XactState uint8

const (
	XactOpen XactState = iota
	XactFinalized
	XactRejected
)

// Xact is a dated, named group of postings that must net to zero per
// commodity. Posting order is significant: display and elided-posting
// inference use first-seen order.
type Xact struct {
	Date    time.Time
	AuxDate *time.Time
	Payee   string
	Note    string
	Posts   []PostIndex

	state XactState
}

// NewXact builds a transaction from scanned header tokens. Empty tokens mean
// "not specified": the payee falls back to UnknownPayee, aux date and note
// stay unset. An unparseable date is the caller's MalformedHeader condition.
func NewXact(date, auxDate, payee, note string) (*Xact, error) {
	x := &Xact{}

	var err error
	if x.Date, err = ParseDate(date); err != nil {
		return nil, err
	}

	if auxDate != "" {
		aux, err := ParseDate(auxDate)
		if err != nil {
			return nil, err
		}
		x.AuxDate = &aux
	}

	x.Payee = payee
	if x.Payee == "" {
		x.Payee = UnknownPayee
	}
	x.Note = note

	return x, nil
}

// State returns the transaction's lifecycle state.
func (x *Xact) State() XactState {
	return x.state
}

// AddNote appends a trailing note line to the transaction.
func (x *Xact) AddNote(note string) {
	if x.Note == "" {
		x.Note = note
		return
	}
	x.Note += "\n" + note
}
