package journal

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestResolveAccountAutoCreate(t *testing.T) {
	j := New()

	checking, ok := j.ResolveAccount("Assets:Bank:Checking", true)
	assert.True(t, ok)
	assert.Equal(t, "Assets:Bank:Checking", j.Fullname(checking))

	// Intermediate accounts were created along the way.
	assert.Equal(t, 4, j.AccountCount()) // master + Assets + Bank + Checking

	// Resolving again returns the same index without creating anything.
	again, ok := j.ResolveAccount("Assets:Bank:Checking", true)
	assert.True(t, ok)
	assert.Equal(t, checking, again)
	assert.Equal(t, 4, j.AccountCount())

	// Siblings share the created prefix.
	savings, ok := j.ResolveAccount("Assets:Bank:Savings", true)
	assert.True(t, ok)
	assert.NotEqual(t, checking, savings)
	assert.Equal(t, j.Account(checking).Parent, j.Account(savings).Parent)
	assert.Equal(t, 5, j.AccountCount())
}

func TestResolveAccountLookupOnly(t *testing.T) {
	j := New()

	_, ok := j.ResolveAccount("Expenses:Food", false)
	assert.False(t, ok)
	assert.Equal(t, 1, j.AccountCount())

	created, _ := j.ResolveAccount("Expenses:Food", true)
	found, ok := j.ResolveAccount("Expenses:Food", false)
	assert.True(t, ok)
	assert.Equal(t, created, found)
}

func TestResolveAccountIsCaseSensitive(t *testing.T) {
	j := New()

	a, _ := j.ResolveAccount("Assets:Cash", true)
	b, _ := j.ResolveAccount("assets:cash", true)
	assert.NotEqual(t, a, b)
}

func TestAddPostLinksBothWays(t *testing.T) {
	j := New()

	xi := j.AddXact(mustXact(t, "2023-04-01", "", "Grocery store", ""))
	acct, _ := j.ResolveAccount("Expenses:Food", true)

	amt := NewAmount(decimal.NewFromInt(20), j.Commodities.FindOrCreate("EUR"))
	pi := j.AddPost(&Post{Account: acct, Xact: xi, Amount: &amt})

	assert.Equal(t, []PostIndex{pi}, j.Xact(xi).Posts)
	assert.Equal(t, []PostIndex{pi}, j.Account(acct).Posts)

	posts := j.XactPosts(xi)
	assert.Equal(t, 1, len(posts))
	assert.Equal(t, "20", posts[0].Amount.Quantity.String())
}

func mustXact(t *testing.T, date, auxDate, payee, note string) *Xact {
	t.Helper()
	x, err := NewXact(date, auxDate, payee, note)
	assert.NoError(t, err)
	return x
}
