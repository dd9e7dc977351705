package journal

// AccountIndex identifies an account in the journal's account arena.
type AccountIndex int

// PostIndex identifies a posting in the journal's posting arena.
type PostIndex int

// XactIndex identifies a transaction in the journal's transaction arena.
type XactIndex int

// Account is one node in the account hierarchy. The tree is rooted at the
// journal's master account (empty name, parent -1); every other account is
// auto-created the first time its full name is referenced.
//
// Relationships are stored as arena indices, not pointers, so the parent and
// child links form no ownership cycle.
type Account struct {
	Name     string
	Parent   AccountIndex
	Children map[string]AccountIndex
	Posts    []PostIndex
}

func newAccount(name string, parent AccountIndex) *Account {
	return &Account{
		Name:     name,
		Parent:   parent,
		Children: make(map[string]AccountIndex),
	}
}

// IsMaster reports whether this is the root of the account tree.
func (a *Account) IsMaster() bool {
	return a.Parent < 0 && a.Name == ""
}
