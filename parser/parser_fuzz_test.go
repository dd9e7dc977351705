package parser

import (
	"context"
	"testing"
)

func FuzzParser(f *testing.F) {
	seeds := []string{
		// Headers
		"2023-05-01 Payee",
		"2023-05-02=2023-05-01 Payee  ; Note",
		"2023-05-01",

		// Transactions
		"2023-04-10 Supermarket\n    Expenses  20\n    Assets\n",
		"2023-05-05 Payee\n    Assets:Cash EUR  -25 EUR\n    Assets:Cash USD  30 USD\n",
		"2023-05-01 Broker\n    Assets:Stocks  10 VEUR @ 25.6 EUR\n    Assets:Cash  -256 EUR\n",
		"2023-05-01 Broker\n    Assets:Stocks  10 VEUR @@ 256 EUR\n    Assets:Cash  -256 EUR\n",

		// Directives
		"P 2022-03-03 13:00:00 EUR 1.12 USD",
		"P 2022-03-03 EUR 1.12 USD",
		"include other.ledger",
		"account Assets:Bank:Checking",
		"commodity EUR",

		// Comments
		"; comment",
		"# comment",
		"* comment",
		"| comment",

		// Edge cases
		"",
		"\n\n\n",
		"   \t  ",
		"2023-05-01 Payee\n    Assets\n",
		"2023-05-01 Payee\n    ; only a note\n",
		"0",
		"P",
		"include",
		`2023-05-01 Fund\n    Assets  5 "MUTF 2020"\n    Assets:Cash  -5 "MUTF 2020"\n`,
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		// The parser must never panic on arbitrary input; the scanner's
		// contract panics are unreachable through the directive dispatch.
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("parser panicked on input %q: %v", data, r)
			}
		}()

		j, err := ParseBytes(context.Background(), data)
		if err == nil && j == nil {
			t.Error("ParseBytes returned nil journal with nil error")
		}
	})
}
