package service

import (
	"errors"
)

// Typed failures returned by the workflow entry points. Callers match with
// errors.Is; everything else surfacing from a service is an internal error.
var (
	// ErrNotFound indicates a missing wallet, tournament or deposit request
	ErrNotFound = errors.New("not found")

	// ErrAlreadyRegistered indicates the user already holds a slot in the tournament
	ErrAlreadyRegistered = errors.New("already registered for tournament")

	// ErrCapacityExhausted indicates the tournament has no remaining slots
	ErrCapacityExhausted = errors.New("tournament capacity exhausted")

	// ErrInsufficientFunds indicates the wallet balance cannot cover the amount
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount indicates a non-positive or inconsistent amount
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAlreadyResolved indicates the deposit request left pending earlier
	ErrAlreadyResolved = errors.New("deposit request already resolved")

	// ErrAlreadyDistributed indicates the tournament prize pool was paid out earlier
	ErrAlreadyDistributed = errors.New("prizes already distributed")

	// ErrConcurrencyConflict indicates transient contention that survived retries
	ErrConcurrencyConflict = errors.New("concurrent update conflict")
)
