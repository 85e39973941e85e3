package model

import "time"

// Transaction is one passbook entry as returned by the ledger service.
// Exactly one of Deposit/Withdraw is expected to be nonzero.
type Transaction struct {
	ID        string
	Timestamp time.Time // zero if the service sent something unparsable
	Memo      string
	Deposit   int64
	Withdraw  int64
}

// HasTimestamp reports whether the timestamp was parsed.
func (t Transaction) HasTimestamp() bool {
	return !t.Timestamp.IsZero()
}

// LedgerRow is a Transaction with its net change and the running balance
// after it has been applied.
type LedgerRow struct {
	Transaction
	Net     int64
	Balance int64
}
