package ledger

import "github.com/cleared-dev/bank2ledger/internal/model"

// Map converts one bank transaction into a ledger entry posted to account.
func Map(txn model.BankTransaction, account string) model.LedgerEntry {
	return model.LedgerEntry{
		Date:    txn.Date,
		Account: account,
		Amount:  txn.Amount,
		Payee:   txn.Description,
		Balance: txn.Balance,
	}
}

// MapAll maps every transaction, preserving order.
func MapAll(txns []model.BankTransaction, account string) []model.LedgerEntry {
	entries := make([]model.LedgerEntry, len(txns))
	for i, txn := range txns {
		entries[i] = Map(txn, account)
	}
	return entries
}
