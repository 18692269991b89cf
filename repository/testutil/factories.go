package testutil

import (
	"tourney/models"
)

// CreateTestTournament builds an open tournament with sensible defaults
func CreateTestTournament(name string, entryFee int64, capacity models.Capacity) *models.Tournament {
	return &models.Tournament{
		Name:      name,
		EntryFee:  entryFee,
		PrizePool: entryFee * 10,
		Capacity:  capacity,
		Status:    models.TournamentStatusOpen,
	}
}

// CreateTestTransaction builds a completed deposit ledger entry
func CreateTestTransaction(userID, amount int64) *models.Transaction {
	return &models.Transaction{
		UserID:        userID,
		Amount:        amount,
		Kind:          models.TransactionKindDeposit,
		Status:        models.TransactionStatusCompleted,
		BalanceBefore: 0,
		BalanceAfter:  amount,
	}
}

// CreateTestDepositRequest builds a pending deposit request
func CreateTestDepositRequest(userID, amount int64) *models.DepositRequest {
	return &models.DepositRequest{
		UserID: userID,
		Amount: amount,
		Status: models.DepositStatusPending,
	}
}
