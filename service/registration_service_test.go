package service

import (
	"context"
	"testing"

	"tourney/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func openTournament(id int64, entryFee int64, capacity models.Capacity) *models.Tournament {
	return &models.Tournament{
		ID:       id,
		Name:     "Friday Clash",
		EntryFee: entryFee,
		Capacity: capacity,
		Status:   models.TournamentStatusOpen,
	}
}

func TestRegisterForTournament_Success(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	svc := NewRegistrationService(m.factory)

	m.tournament.On("GetByID", ctx, int64(1)).Return(openTournament(1, 100, models.LimitedCapacity(3)), nil)
	m.wallet.On("GetByUserID", ctx, int64(42)).Return(&models.Wallet{UserID: 42, Balance: 250}, nil)
	m.joinHistory.On("HasJoined", ctx, int64(42), int64(1)).Return(false, nil)
	m.wallet.On("DeductBalance", ctx, int64(42), int64(100)).Return(nil)
	m.ledger.On("Record", ctx, mock.AnythingOfType("*models.Transaction")).Return(nil)
	m.joinHistory.On("Record", ctx, mock.AnythingOfType("*models.JoinRecord")).Return(nil)
	m.tournament.On("AddParticipant", ctx, mock.AnythingOfType("*models.Participant")).Return(nil)
	m.tournament.On("ReserveSlot", ctx, int64(1)).Return(int32(2), nil)
	m.expectCommit()

	result, err := svc.RegisterForTournament(ctx, 1, 42, 100, "zara")

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TournamentID)
	assert.Equal(t, int64(42), result.UserID)
	assert.Equal(t, int64(100), result.EntryFeePaid)
	assert.Equal(t, int64(150), result.NewBalance)
	assert.Equal(t, models.LimitedCapacity(2), result.RemainingCapacity)
	m.tournament.AssertExpectations(t)
	m.wallet.AssertExpectations(t)
	m.uow.AssertExpectations(t)
}

func TestRegisterForTournament_LastSlotMarksFull(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	svc := NewRegistrationService(m.factory)

	m.tournament.On("GetByID", ctx, int64(1)).Return(openTournament(1, 100, models.LimitedCapacity(1)), nil)
	m.wallet.On("GetByUserID", ctx, int64(42)).Return(&models.Wallet{UserID: 42, Balance: 100}, nil)
	m.joinHistory.On("HasJoined", ctx, int64(42), int64(1)).Return(false, nil)
	m.wallet.On("DeductBalance", ctx, int64(42), int64(100)).Return(nil)
	m.ledger.On("Record", ctx, mock.AnythingOfType("*models.Transaction")).Return(nil)
	m.joinHistory.On("Record", ctx, mock.AnythingOfType("*models.JoinRecord")).Return(nil)
	m.tournament.On("AddParticipant", ctx, mock.AnythingOfType("*models.Participant")).Return(nil)
	m.tournament.On("ReserveSlot", ctx, int64(1)).Return(int32(0), nil)
	m.tournament.On("MarkFull", ctx, int64(1)).Return(nil)
	m.expectCommit()

	result, err := svc.RegisterForTournament(ctx, 1, 42, 100, "zara")

	require.NoError(t, err)
	assert.True(t, result.RemainingCapacity.Exhausted())
	m.tournament.AssertExpectations(t)
}

func TestRegisterForTournament_UnlimitedCapacitySkipsReservation(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	svc := NewRegistrationService(m.factory)

	m.tournament.On("GetByID", ctx, int64(7)).Return(openTournament(7, 100, models.UnlimitedCapacity()), nil)
	m.wallet.On("GetByUserID", ctx, int64(42)).Return(&models.Wallet{UserID: 42, Balance: 500}, nil)
	m.joinHistory.On("HasJoined", ctx, int64(42), int64(7)).Return(false, nil)
	m.wallet.On("DeductBalance", ctx, int64(42), int64(100)).Return(nil)
	m.ledger.On("Record", ctx, mock.AnythingOfType("*models.Transaction")).Return(nil)
	m.joinHistory.On("Record", ctx, mock.AnythingOfType("*models.JoinRecord")).Return(nil)
	m.tournament.On("AddParticipant", ctx, mock.AnythingOfType("*models.Participant")).Return(nil)
	m.expectCommit()

	result, err := svc.RegisterForTournament(ctx, 7, 42, 100, "zara")

	require.NoError(t, err)
	assert.True(t, result.RemainingCapacity.Unlimited)
	m.tournament.AssertNotCalled(t, "ReserveSlot", mock.Anything, mock.Anything)
	m.tournament.AssertNotCalled(t, "MarkFull", mock.Anything, mock.Anything)
}

func TestRegisterForTournament_FreeEntrySkipsDebit(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	svc := NewRegistrationService(m.factory)

	m.tournament.On("GetByID", ctx, int64(1)).Return(openTournament(1, 0, models.LimitedCapacity(8)), nil)
	m.wallet.On("GetByUserID", ctx, int64(42)).Return(&models.Wallet{UserID: 42, Balance: 0}, nil)
	m.joinHistory.On("HasJoined", ctx, int64(42), int64(1)).Return(false, nil)
	m.joinHistory.On("Record", ctx, mock.AnythingOfType("*models.JoinRecord")).Return(nil)
	m.tournament.On("AddParticipant", ctx, mock.AnythingOfType("*models.Participant")).Return(nil)
	m.tournament.On("ReserveSlot", ctx, int64(1)).Return(int32(7), nil)
	m.expectCommit()

	result, err := svc.RegisterForTournament(ctx, 1, 42, 0, "zara")

	require.NoError(t, err)
	assert.Equal(t, int64(0), result.EntryFeePaid)
	assert.Equal(t, int64(0), result.NewBalance)
	m.wallet.AssertNotCalled(t, "DeductBalance", mock.Anything, mock.Anything, mock.Anything)
	m.ledger.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestRegisterForTournament_TournamentNotFound(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	svc := NewRegistrationService(m.factory)

	m.tournament.On("GetByID", ctx, int64(99)).Return(nil, nil)

	result, err := svc.RegisterForTournament(ctx, 99, 42, 100, "zara")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNotFound)
	m.uow.AssertNotCalled(t, "Commit")
}

func TestRegisterForTournament_WalletNotFound(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	svc := NewRegistrationService(m.factory)

	m.tournament.On("GetByID", ctx, int64(1)).Return(openTournament(1, 100, models.LimitedCapacity(3)), nil)
	m.wallet.On("GetByUserID", ctx, int64(42)).Return(nil, nil)

	result, err := svc.RegisterForTournament(ctx, 1, 42, 100, "zara")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterForTournament_AlreadyRegistered(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	svc := NewRegistrationService(m.factory)

	m.tournament.On("GetByID", ctx, int64(1)).Return(openTournament(1, 100, models.LimitedCapacity(3)), nil)
	m.wallet.On("GetByUserID", ctx, int64(42)).Return(&models.Wallet{UserID: 42, Balance: 250}, nil)
	m.joinHistory.On("HasJoined", ctx, int64(42), int64(1)).Return(true, nil)

	result, err := svc.RegisterForTournament(ctx, 1, 42, 100, "zara")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	m.wallet.AssertNotCalled(t, "DeductBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterForTournament_CapacityExhausted(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	svc := NewRegistrationService(m.factory)

	m.tournament.On("GetByID", ctx, int64(1)).Return(openTournament(1, 100, models.LimitedCapacity(0)), nil)
	m.wallet.On("GetByUserID", ctx, int64(42)).Return(&models.Wallet{UserID: 42, Balance: 250}, nil)
	m.joinHistory.On("HasJoined", ctx, int64(42), int64(1)).Return(false, nil)

	result, err := svc.RegisterForTournament(ctx, 1, 42, 100, "zara")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrCapacityExhausted)
	m.wallet.AssertNotCalled(t, "DeductBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterForTournament_EntryFeeMismatch(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	svc := NewRegistrationService(m.factory)

	m.tournament.On("GetByID", ctx, int64(1)).Return(openTournament(1, 100, models.LimitedCapacity(3)), nil)
	m.wallet.On("GetByUserID", ctx, int64(42)).Return(&models.Wallet{UserID: 42, Balance: 250}, nil)
	m.joinHistory.On("HasJoined", ctx, int64(42), int64(1)).Return(false, nil)

	result, err := svc.RegisterForTournament(ctx, 1, 42, 50, "zara")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestRegisterForTournament_NegativeFeeRejectedUpFront(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	svc := NewRegistrationService(m.factory)

	result, err := svc.RegisterForTournament(ctx, 1, 42, -5, "zara")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	m.factory.AssertNotCalled(t, "Create")
}

func TestRegisterForTournament_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	svc := NewRegistrationService(m.factory)

	m.tournament.On("GetByID", ctx, int64(1)).Return(openTournament(1, 100, models.LimitedCapacity(3)), nil)
	m.wallet.On("GetByUserID", ctx, int64(42)).Return(&models.Wallet{UserID: 42, Balance: 60}, nil)
	m.joinHistory.On("HasJoined", ctx, int64(42), int64(1)).Return(false, nil)

	result, err := svc.RegisterForTournament(ctx, 1, 42, 100, "zara")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	m.wallet.AssertNotCalled(t, "DeductBalance", mock.Anything, mock.Anything, mock.Anything)
	m.uow.AssertNotCalled(t, "Commit")
}

func TestRegisterForTournament_RaceLostOnSlotReservation(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks()
	svc := NewRegistrationService(m.factory)

	// Snapshot still shows a free slot but the guarded decrement loses the race
	m.tournament.On("GetByID", ctx, int64(1)).Return(openTournament(1, 100, models.LimitedCapacity(1)), nil)
	m.wallet.On("GetByUserID", ctx, int64(42)).Return(&models.Wallet{UserID: 42, Balance: 250}, nil)
	m.joinHistory.On("HasJoined", ctx, int64(42), int64(1)).Return(false, nil)
	m.wallet.On("DeductBalance", ctx, int64(42), int64(100)).Return(nil)
	m.ledger.On("Record", ctx, mock.AnythingOfType("*models.Transaction")).Return(nil)
	m.joinHistory.On("Record", ctx, mock.AnythingOfType("*models.JoinRecord")).Return(nil)
	m.tournament.On("AddParticipant", ctx, mock.AnythingOfType("*models.Participant")).Return(nil)
	m.tournament.On("ReserveSlot", ctx, int64(1)).Return(int32(0), ErrCapacityExhausted)

	result, err := svc.RegisterForTournament(ctx, 1, 42, 100, "zara")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrCapacityExhausted)
	m.uow.AssertNotCalled(t, "Commit")
}
