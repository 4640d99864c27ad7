package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction represents a parsed bank CSV row.
type BankTransaction struct {
	Date        time.Time
	Amount      decimal.Decimal // negative = debit, positive = credit
	Description string
	Balance     decimal.NullDecimal // running balance; Valid is false when the cell was empty
	Line        int                 // 1-based line in the source file
}
