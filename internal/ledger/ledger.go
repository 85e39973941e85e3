// Package ledger computes running balances, savings outcomes and goal
// projections. Every function is pure: callers supply all inputs, including
// the reference time, and nothing here reads the clock or performs I/O.
package ledger

import "github.com/pointbank/passbook/internal/model"

// Compute returns the running ledger for txs in the order given.
// The input is not modified and is never re-sorted. Rows with both sides
// set (or neither) are still computed as deposit - withdraw.
func Compute(txs []model.Transaction) []model.LedgerRow {
	rows := make([]model.LedgerRow, len(txs))
	var balance int64
	for i, tx := range txs {
		net := tx.Deposit - tx.Withdraw
		balance += net
		rows[i] = model.LedgerRow{
			Transaction: tx,
			Net:         net,
			Balance:     balance,
		}
	}
	return rows
}

// CurrentBalance returns the balance after the last row, or 0 for an empty ledger.
func CurrentBalance(rows []model.LedgerRow) int64 {
	if len(rows) == 0 {
		return 0
	}
	return rows[len(rows)-1].Balance
}

// Totals sums deposits and withdrawals across rows.
func Totals(rows []model.LedgerRow) (deposits, withdrawals int64) {
	for _, r := range rows {
		deposits += r.Deposit
		withdrawals += r.Withdraw
	}
	return deposits, withdrawals
}
