package parser

// Interner deduplicates strings that repeat throughout a journal: account
// names, commodity symbols, and common payees. Reusing one canonical
// instance per distinct string keeps large journals cheap to hold in memory.
type Interner struct {
	pool map[string]string
}

// NewInterner creates a string interner with the given initial capacity.
func NewInterner(capacity int) *Interner {
	return &Interner{
		pool: make(map[string]string, capacity),
	}
}

// Intern returns the canonical instance of s, adding it on first sight.
func (i *Interner) Intern(s string) string {
	if interned, ok := i.pool[s]; ok {
		return interned
	}
	i.pool[s] = s
	return s
}

// Size returns the number of unique strings in the pool.
func (i *Interner) Size() int {
	return len(i.pool)
}
