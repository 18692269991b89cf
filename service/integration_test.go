package service_test

import (
	"context"
	"sync"
	"testing"

	"tourney/events"
	"tourney/models"
	"tourney/repository"
	"tourney/repository/testutil"
	"tourney/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServices(t *testing.T) (*testutil.TestDatabase, service.UnitOfWorkFactory) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testDB := testutil.SetupTestDatabase(t)
	factory := repository.NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	return testDB, factory
}

func TestRegistrationFlow_EndToEnd(t *testing.T) {
	t.Parallel()
	testDB, factory := setupServices(t)
	ctx := context.Background()

	tournaments := service.NewTournamentService(factory)
	deposits := service.NewDepositService(factory)
	registration := service.NewRegistrationService(factory)
	wallets := service.NewWalletService(factory)

	tournament, err := tournaments.CreateTournament(ctx, "Friday Clash", 100, 1000, models.LimitedCapacity(2))
	require.NoError(t, err)

	// Fund the player through the deposit workflow
	request, err := deposits.Submit(ctx, 42, 500, "bank-ref-778")
	require.NoError(t, err)
	_, err = deposits.Approve(ctx, request.ID)
	require.NoError(t, err)

	result, err := registration.RegisterForTournament(ctx, tournament.ID, 42, 100, "zara")
	require.NoError(t, err)
	assert.Equal(t, int64(400), result.NewBalance)
	assert.Equal(t, models.LimitedCapacity(1), result.RemainingCapacity)

	// Registering twice fails and changes nothing
	_, err = registration.RegisterForTournament(ctx, tournament.ID, 42, 100, "zara")
	assert.ErrorIs(t, err, service.ErrAlreadyRegistered)

	wallet, err := wallets.GetWallet(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(400), wallet.Balance)

	// The ledger replays to the wallet balance
	ledger := repository.NewLedgerRepository(testDB.DB)
	sum, err := ledger.SumCompleted(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, wallet.Balance, sum)
}

func TestRegistrationFlow_FailedRegistrationLeavesNoTrace(t *testing.T) {
	t.Parallel()
	testDB, factory := setupServices(t)
	ctx := context.Background()

	tournaments := service.NewTournamentService(factory)
	deposits := service.NewDepositService(factory)
	registration := service.NewRegistrationService(factory)

	tournament, err := tournaments.CreateTournament(ctx, "Friday Clash", 100, 1000, models.LimitedCapacity(8))
	require.NoError(t, err)

	request, err := deposits.Submit(ctx, 42, 50, "")
	require.NoError(t, err)
	_, err = deposits.Approve(ctx, request.ID)
	require.NoError(t, err)

	_, err = registration.RegisterForTournament(ctx, tournament.ID, 42, 100, "zara")
	assert.ErrorIs(t, err, service.ErrInsufficientFunds)

	wallets := repository.NewWalletRepository(testDB.DB)
	wallet, err := wallets.GetByUserID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(50), wallet.Balance)

	participants, err := service.NewTournamentService(factory).ListParticipants(ctx, tournament.ID)
	require.NoError(t, err)
	assert.Empty(t, participants)
}

func TestRegistrationFlow_ConcurrentContention(t *testing.T) {
	t.Parallel()
	_, factory := setupServices(t)
	ctx := context.Background()

	const slots, players = 3, 8

	tournaments := service.NewTournamentService(factory)
	deposits := service.NewDepositService(factory)
	registration := service.NewRegistrationService(factory)

	tournament, err := tournaments.CreateTournament(ctx, "Contended Cup", 100, 1000, models.LimitedCapacity(slots))
	require.NoError(t, err)

	for userID := int64(1); userID <= players; userID++ {
		request, err := deposits.Submit(ctx, userID, 500, "")
		require.NoError(t, err)
		_, err = deposits.Approve(ctx, request.ID)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, players)
	for userID := int64(1); userID <= players; userID++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := registration.RegisterForTournament(ctx, tournament.ID, userID, 100, "player")
			errs <- err
		}(userID)
	}
	wg.Wait()
	close(errs)

	var succeeded int
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, service.ErrCapacityExhausted)
		}
	}
	assert.Equal(t, slots, succeeded)

	final, err := tournaments.GetTournament(ctx, tournament.ID)
	require.NoError(t, err)
	assert.True(t, final.Capacity.Exhausted())
	assert.Equal(t, models.TournamentStatusFull, final.Status)

	participants, err := tournaments.ListParticipants(ctx, tournament.ID)
	require.NoError(t, err)
	assert.Len(t, participants, slots)
}

func TestPrizeDistribution_EndToEnd(t *testing.T) {
	t.Parallel()
	testDB, factory := setupServices(t)
	ctx := context.Background()

	tournaments := service.NewTournamentService(factory)
	prizes := service.NewPrizeService(factory)

	tournament, err := tournaments.CreateTournament(ctx, "Friday Clash", 0, 1000, models.LimitedCapacity(8))
	require.NoError(t, err)

	result, err := prizes.DistributePrizes(ctx, tournament.ID, models.Winners{First: 10, Second: 11, Third: 12})
	require.NoError(t, err)
	require.Len(t, result.Payouts, 3)

	wallets := repository.NewWalletRepository(testDB.DB)
	for _, expected := range []struct{ userID, balance int64 }{{10, 500}, {11, 300}, {12, 200}} {
		wallet, err := wallets.GetByUserID(ctx, expected.userID)
		require.NoError(t, err)
		require.NotNil(t, wallet)
		assert.Equal(t, expected.balance, wallet.Balance)
	}

	// A second distribution fails and pays nothing out again
	_, err = prizes.DistributePrizes(ctx, tournament.ID, models.Winners{First: 10, Second: 11, Third: 12})
	assert.ErrorIs(t, err, service.ErrAlreadyDistributed)

	wallet, err := wallets.GetByUserID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(500), wallet.Balance)

	final, err := tournaments.GetTournament(ctx, tournament.ID)
	require.NoError(t, err)
	assert.True(t, final.PrizeDistributed)
	assert.Equal(t, models.TournamentStatusCompleted, final.Status)
}
