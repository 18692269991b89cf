package models

import (
	"time"
)

// TransactionKind represents the type of ledger entry
type TransactionKind string

const (
	TransactionKindDeposit  TransactionKind = "deposit"
	TransactionKindPrize    TransactionKind = "prize"
	TransactionKindEntryFee TransactionKind = "entry_fee"
	TransactionKindRefund   TransactionKind = "refund"
)

// IsCredit returns true if the kind increases the balance
func (k TransactionKind) IsCredit() bool {
	return k != TransactionKindEntryFee
}

// TransactionStatus represents the status of a ledger entry
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusRejected  TransactionStatus = "rejected"
)

// Transaction represents a single immutable ledger entry. Entries are only
// ever appended; the wallet balance equals the sum of completed credits
// minus completed debits.
type Transaction struct {
	ID            int64             `db:"id"`
	UserID        int64             `db:"user_id"`
	Amount        int64             `db:"amount"`
	Kind          TransactionKind   `db:"kind"`
	Status        TransactionStatus `db:"status"`
	BalanceBefore int64             `db:"balance_before"`
	BalanceAfter  int64             `db:"balance_after"`
	TournamentID  *int64            `db:"tournament_id"`
	ExternalRef   *string           `db:"external_ref"`
	Metadata      map[string]any    `db:"metadata"`
	CreatedAt     time.Time         `db:"created_at"`
}
