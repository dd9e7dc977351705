// Package journal implements the in-memory financial model a ledger file is
// parsed into: the account hierarchy, transactions and postings, amounts and
// balances in arbitrary-precision decimals, and the commodity pool with its
// price history graph.
//
// All entities live in append-only arenas owned by the Journal and reference
// each other by integer index. Indices stay valid for the journal's
// lifetime; entities are never deleted. The journal is built by a single
// writer (the parser) and handed off as a read-only snapshot afterwards.
//
// Example usage:
//
//	j := journal.New()
//	idx, _ := j.ResolveAccount("Assets:Cash", true)
//	fmt.Println(j.Fullname(idx)) // "Assets:Cash"
package journal

import "strings"

// Journal owns the arenas for accounts, postings, and transactions, plus the
// commodity pool. The master account (index 0, empty name) roots the account
// tree and is created once per journal.
type Journal struct {
	accounts []*Account
	posts    []*Post
	xacts    []*Xact

	// Commodities is the pool of commodity symbols and their price history.
	Commodities *Pool
}

// New creates an empty journal with a master account and a commodity pool.
func New() *Journal {
	return &Journal{
		accounts:    []*Account{newAccount("", -1)},
		Commodities: NewPool(),
	}
}

// Master returns the index of the root account.
func (j *Journal) Master() AccountIndex {
	return 0
}

// Account returns the account at the given arena index.
func (j *Journal) Account(i AccountIndex) *Account {
	return j.accounts[i]
}

// Post returns the posting at the given arena index.
func (j *Journal) Post(i PostIndex) *Post {
	return j.posts[i]
}

// Xact returns the transaction at the given arena index.
func (j *Journal) Xact(i XactIndex) *Xact {
	return j.xacts[i]
}

// Xacts returns all transactions in parse order.
func (j *Journal) Xacts() []*Xact {
	return j.xacts
}

// Posts returns all postings in parse order.
func (j *Journal) Posts() []*Post {
	return j.posts
}

// AccountCount returns the number of accounts, including the master.
func (j *Journal) AccountCount() int {
	return len(j.accounts)
}

// XactPosts returns a transaction's postings in first-seen order.
func (j *Journal) XactPosts(i XactIndex) []*Post {
	x := j.xacts[i]
	posts := make([]*Post, len(x.Posts))
	for n, pi := range x.Posts {
		posts[n] = j.posts[pi]
	}
	return posts
}

// AddXact appends a transaction to the arena and returns its index.
func (j *Journal) AddXact(x *Xact) XactIndex {
	j.xacts = append(j.xacts, x)
	return XactIndex(len(j.xacts) - 1)
}

// AddPost appends a posting to the arena and cross-links it: the index is
// recorded on both the owning transaction and the posted account.
func (j *Journal) AddPost(p *Post) PostIndex {
	j.posts = append(j.posts, p)
	pi := PostIndex(len(j.posts) - 1)

	j.xacts[p.Xact].Posts = append(j.xacts[p.Xact].Posts, pi)
	j.accounts[p.Account].Posts = append(j.accounts[p.Account].Posts, pi)

	return pi
}

// ResolveAccount resolves a full account name like "Assets:Cash" against the
// master account, descending segment by segment. Missing segments are
// auto-created when autoCreate is true (auto-vivification); otherwise the
// lookup reports absence. Resolution is case- and whitespace-sensitive
// exactly as written; the same full name always resolves to the same index.
func (j *Journal) ResolveAccount(name string, autoCreate bool) (AccountIndex, bool) {
	if name == "" {
		return 0, false
	}
	return j.resolveIn(j.Master(), name, autoCreate)
}

func (j *Journal) resolveIn(root AccountIndex, name string, autoCreate bool) (AccountIndex, bool) {
	head, rest, _ := strings.Cut(name, ":")

	child, ok := j.accounts[root].Children[head]
	if !ok {
		if !autoCreate {
			return 0, false
		}
		j.accounts = append(j.accounts, newAccount(head, root))
		child = AccountIndex(len(j.accounts) - 1)
		j.accounts[root].Children[head] = child
	}

	if rest == "" {
		return child, true
	}
	return j.resolveIn(child, rest, autoCreate)
}

// Fullname reconstructs an account's colon-separated full name by walking
// its parent links up to the master account.
func (j *Journal) Fullname(i AccountIndex) string {
	a := j.accounts[i]
	name := a.Name
	for a.Parent >= 0 {
		a = j.accounts[a.Parent]
		if a.Name != "" {
			name = a.Name + ":" + name
		}
	}
	return name
}
