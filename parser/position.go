package parser

import "fmt"

// Position locates a line in a journal source. Column tracking is not
// needed; every directive is line-oriented.
type Position struct {
	Filename string
	Line     int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}
