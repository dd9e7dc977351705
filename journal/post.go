package journal

// Post is one line item within a transaction, debiting or crediting one
// account. Amount is nil for an elided posting whose value is inferred when
// the transaction is finalized. Cost carries the total acquisition cost
// (already multiplied out for per-unit "@" clauses).
type Post struct {
	Account AccountIndex
	Xact    XactIndex
	Amount  *Amount
	Cost    *Amount
	Note    string
}

// AddNote appends a trailing note line to the posting.
func (p *Post) AddNote(note string) {
	if p.Note == "" {
		p.Note = note
		return
	}
	p.Note += "\n" + note
}
