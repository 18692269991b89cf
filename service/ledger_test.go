package service

import (
	"context"
	"testing"

	"tourney/events"
	"tourney/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCredit_ExistingWallet(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()

	m.wallet.On("GetByUserID", ctx, int64(42)).Return(&models.Wallet{UserID: 42, Balance: 100}, nil)
	m.wallet.On("AddBalance", ctx, int64(42), int64(250)).Return(nil)
	m.ledger.On("Record", ctx, mock.AnythingOfType("*models.Transaction")).Return(nil)

	tx, err := Credit(ctx, m.uow, 42, 250, models.TransactionKindDeposit, EntryDetails{})

	require.NoError(t, err)
	assert.Equal(t, int64(100), tx.BalanceBefore)
	assert.Equal(t, int64(350), tx.BalanceAfter)
	assert.Equal(t, models.TransactionStatusCompleted, tx.Status)
	m.wallet.AssertExpectations(t)
	m.events.AssertCalled(t, "Publish", mock.MatchedBy(func(e events.Event) bool {
		change, ok := e.(events.BalanceChangeEvent)
		return ok && change.ChangeAmount == 250 && change.NewBalance == 350
	}))
}

func TestCredit_InvalidAmount(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()

	tx, err := Credit(ctx, m.uow, 42, 0, models.TransactionKindDeposit, EntryDetails{})

	assert.Nil(t, tx)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	m.wallet.AssertNotCalled(t, "AddBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestDebit_PublishesNegativeChange(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()

	m.wallet.On("GetByUserID", ctx, int64(42)).Return(&models.Wallet{UserID: 42, Balance: 400}, nil)
	m.wallet.On("DeductBalance", ctx, int64(42), int64(150)).Return(nil)
	m.ledger.On("Record", ctx, mock.AnythingOfType("*models.Transaction")).Return(nil)

	tx, err := Debit(ctx, m.uow, 42, 150, models.TransactionKindEntryFee, EntryDetails{})

	require.NoError(t, err)
	assert.Equal(t, int64(250), tx.BalanceAfter)
	m.events.AssertCalled(t, "Publish", mock.MatchedBy(func(e events.Event) bool {
		change, ok := e.(events.BalanceChangeEvent)
		return ok && change.ChangeAmount == -150
	}))
}

func TestDebit_MissingWallet(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()

	m.wallet.On("GetByUserID", ctx, int64(42)).Return(nil, nil)

	tx, err := Debit(ctx, m.uow, 42, 150, models.TransactionKindEntryFee, EntryDetails{})

	assert.Nil(t, tx)
	assert.ErrorIs(t, err, ErrNotFound)
	m.wallet.AssertNotCalled(t, "DeductBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestDebit_InsufficientFundsFromRepository(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()

	m.wallet.On("GetByUserID", ctx, int64(42)).Return(&models.Wallet{UserID: 42, Balance: 100}, nil)
	m.wallet.On("DeductBalance", ctx, int64(42), int64(150)).Return(ErrInsufficientFunds)

	tx, err := Debit(ctx, m.uow, 42, 150, models.TransactionKindEntryFee, EntryDetails{})

	assert.Nil(t, tx)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	m.ledger.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}
