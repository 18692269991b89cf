package service

import (
	"context"
	"fmt"

	"tourney/events"
	"tourney/models"
)

// EntryDetails carries the optional tags on a ledger entry
type EntryDetails struct {
	TournamentID *int64
	ExternalRef  *string
	Metadata     map[string]any
}

// Credit increases a wallet balance and appends the matching completed
// transaction. The wallet is created lazily on first credit. This is one of
// the two entry points for all balance changes; it only runs inside a unit
// of work so the balance and the ledger entry commit together.
func Credit(ctx context.Context, uow UnitOfWork, userID, amount int64, kind models.TransactionKind, details EntryDetails) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("credit of %d: %w", amount, ErrInvalidAmount)
	}

	wallet, err := uow.WalletRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet == nil {
		wallet, err = uow.WalletRepository().Create(ctx, userID, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to create wallet: %w", err)
		}
	}

	if err := uow.WalletRepository().AddBalance(ctx, userID, amount); err != nil {
		return nil, fmt.Errorf("failed to add balance: %w", err)
	}

	tx := &models.Transaction{
		UserID:        userID,
		Amount:        amount,
		Kind:          kind,
		Status:        models.TransactionStatusCompleted,
		BalanceBefore: wallet.Balance,
		BalanceAfter:  wallet.Balance + amount,
		TournamentID:  details.TournamentID,
		ExternalRef:   details.ExternalRef,
		Metadata:      details.Metadata,
	}
	if err := recordTransaction(ctx, uow, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// Debit decreases a wallet balance and appends the matching completed
// transaction. It fails with ErrNotFound for a missing wallet and
// ErrInsufficientFunds when the balance cannot cover the amount. Like
// Credit it is only ever composed into a larger unit of work.
func Debit(ctx context.Context, uow UnitOfWork, userID, amount int64, kind models.TransactionKind, details EntryDetails) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("debit of %d: %w", amount, ErrInvalidAmount)
	}

	wallet, err := uow.WalletRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet == nil {
		return nil, fmt.Errorf("wallet for user %d: %w", userID, ErrNotFound)
	}

	if err := uow.WalletRepository().DeductBalance(ctx, userID, amount); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		UserID:        userID,
		Amount:        amount,
		Kind:          kind,
		Status:        models.TransactionStatusCompleted,
		BalanceBefore: wallet.Balance,
		BalanceAfter:  wallet.Balance - amount,
		TournamentID:  details.TournamentID,
		ExternalRef:   details.ExternalRef,
		Metadata:      details.Metadata,
	}
	if err := recordTransaction(ctx, uow, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// recordTransaction appends a ledger entry and queues the balance change
// event for emission after commit.
func recordTransaction(ctx context.Context, uow UnitOfWork, tx *models.Transaction) error {
	if err := uow.LedgerRepository().Record(ctx, tx); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	if tx.Status == models.TransactionStatusCompleted {
		change := tx.Amount
		if !tx.Kind.IsCredit() {
			change = -tx.Amount
		}
		uow.EventBus().Publish(events.BalanceChangeEvent{
			UserID:       tx.UserID,
			OldBalance:   tx.BalanceBefore,
			NewBalance:   tx.BalanceAfter,
			Kind:         tx.Kind,
			ChangeAmount: change,
		})
	}

	return nil
}
