package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one transaction in the output journal: a posting to Account
// for Amount, balanced against the offset account chosen at write time.
type LedgerEntry struct {
	Date    time.Time
	Account string
	Amount  decimal.Decimal
	Payee   string
	Balance decimal.NullDecimal
}

// IsDebit reports whether the entry takes money out of Account.
func (e LedgerEntry) IsDebit() bool {
	return e.Amount.IsNegative()
}
