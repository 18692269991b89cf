package models

import (
	"time"
)

// DepositStatus represents the state of a deposit request
type DepositStatus string

const (
	DepositStatusPending  DepositStatus = "pending"
	DepositStatusApproved DepositStatus = "approved"
	DepositStatusRejected DepositStatus = "rejected"
)

// DepositRequest represents a user-submitted deposit claim awaiting an
// administrator decision. A request transitions out of pending exactly once.
type DepositRequest struct {
	ID          int64         `db:"id"`
	UserID      int64         `db:"user_id"`
	Amount      int64         `db:"amount"`
	Status      DepositStatus `db:"status"`
	ExternalRef *string       `db:"external_ref"`
	CreatedAt   time.Time     `db:"created_at"`
	ResolvedAt  *time.Time    `db:"resolved_at"`
}
