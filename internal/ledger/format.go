package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bank2ledger/internal/model"
)

const (
	// DefaultOffsetAccount is the placeholder that balances every entry.
	DefaultOffsetAccount = "Expenses:Unknown"
	// DefaultDateFormat renders dates as 2023-01-05.
	DefaultDateFormat = "2006-01-02"
	// DefaultPrecision is the number of decimal places written for amounts.
	DefaultPrecision = 2

	indent    = "    "
	separator = "  " // ledger needs at least two spaces between account and amount
)

// Format controls how entries are rendered.
type Format struct {
	DateFormat     string
	OffsetAccount  string
	Commodity      string // prefixed to amounts, e.g. "$"
	Precision      int32
	ExplicitOffset bool // write the negated amount on the offset posting
	AssertBalance  bool // add "= <balance>" to the account posting when known
}

// DefaultFormat returns the plain ledger layout with an elided offset amount.
func DefaultFormat() Format {
	return Format{
		DateFormat:    DefaultDateFormat,
		OffsetAccount: DefaultOffsetAccount,
		Precision:     DefaultPrecision,
	}
}

// MarshalEntry renders a single entry: a header line followed by two
// indented postings. The result ends in a newline.
func MarshalEntry(e model.LedgerEntry, f Format) string {
	var sb strings.Builder

	sb.WriteString(e.Date.Format(f.DateFormat))
	if payee := cleanPayee(e.Payee); payee != "" {
		sb.WriteString(" ")
		sb.WriteString(payee)
	}
	sb.WriteString("\n")

	sb.WriteString(indent)
	sb.WriteString(e.Account)
	sb.WriteString(separator)
	sb.WriteString(f.amount(e.Amount))
	if f.AssertBalance && e.Balance.Valid {
		sb.WriteString(" = ")
		sb.WriteString(f.amount(e.Balance.Decimal))
	}
	sb.WriteString("\n")

	sb.WriteString(indent)
	sb.WriteString(f.offsetAccount())
	if f.ExplicitOffset {
		sb.WriteString(separator)
		sb.WriteString(f.amount(e.Amount.Neg()))
	}
	sb.WriteString("\n")

	return sb.String()
}

// amount renders d with at least f.Precision places and never fewer than d
// carries, so a source value like 1.234 is not rounded.
func (f Format) amount(d decimal.Decimal) string {
	places := f.Precision
	if exp := -d.Exponent(); exp > places {
		places = exp
	}
	return f.Commodity + d.StringFixed(places)
}

func (f Format) offsetAccount() string {
	if f.OffsetAccount == "" {
		return DefaultOffsetAccount
	}
	return f.OffsetAccount
}

// cleanPayee collapses whitespace so a description can never break the
// one-line header. Ledger reads a leading "*" or "!" as the entry state and
// a leading "(...)" as its code, so markers are dropped and a leading
// parenthesised word is rewritten with brackets.
func cleanPayee(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimLeft(s, "*! ")
	if rest, ok := strings.CutPrefix(s, "("); ok {
		s = "[" + strings.Replace(rest, ")", "]", 1)
	}
	return s
}
