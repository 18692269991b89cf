package service

import (
	"context"
	"fmt"

	"tourney/events"
	"tourney/models"

	log "github.com/sirupsen/logrus"
)

type registrationService struct {
	uowFactory UnitOfWorkFactory
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(uowFactory UnitOfWorkFactory) RegistrationService {
	return &registrationService{
		uowFactory: uowFactory,
	}
}

// RegisterForTournament reserves a slot and debits the entry fee as one
// atomic unit. The unique constraints on join_history and participants plus
// the guarded slot decrement and balance deduction make the whole sequence
// safe under concurrent callers: of N racing for the last K slots exactly K
// commit, and no balance ever goes negative.
func (s *registrationService) RegisterForTournament(ctx context.Context, tournamentID, userID int64, entryFee int64, displayName string) (*models.RegistrationResult, error) {
	if entryFee < 0 {
		return nil, fmt.Errorf("entry fee %d: %w", entryFee, ErrInvalidAmount)
	}

	var result *models.RegistrationResult
	err := withConflictRetry(ctx, "register_for_tournament", func() error {
		var err error
		result, err = s.register(ctx, tournamentID, userID, entryFee, displayName)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"tournamentID": tournamentID,
		"userID":       userID,
		"entryFee":     entryFee,
	}).Info("User registered for tournament")

	return result, nil
}

func (s *registrationService) register(ctx context.Context, tournamentID, userID int64, entryFee int64, displayName string) (*models.RegistrationResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	// Load tournament and wallet snapshots
	tournament, err := uow.TournamentRepository().GetByID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	if tournament == nil {
		return nil, fmt.Errorf("tournament %d: %w", tournamentID, ErrNotFound)
	}

	wallet, err := uow.WalletRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet == nil {
		return nil, fmt.Errorf("wallet for user %d: %w", userID, ErrNotFound)
	}

	// The join history is the authoritative already-joined signal
	joined, err := uow.JoinHistoryRepository().HasJoined(ctx, userID, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check join history: %w", err)
	}
	if joined {
		return nil, fmt.Errorf("user %d in tournament %d: %w", userID, tournamentID, ErrAlreadyRegistered)
	}

	if tournament.Capacity.Exhausted() {
		return nil, fmt.Errorf("tournament %d: %w", tournamentID, ErrCapacityExhausted)
	}

	// The fee is part of the public contract; a stale value from the caller
	// must not silently charge something else
	if entryFee != tournament.EntryFee {
		return nil, fmt.Errorf("entry fee %d does not match tournament fee %d: %w", entryFee, tournament.EntryFee, ErrInvalidAmount)
	}
	if entryFee > 0 && wallet.Balance < entryFee {
		return nil, fmt.Errorf("have %d, need %d: %w", wallet.Balance, entryFee, ErrInsufficientFunds)
	}

	// Apply all effects inside the same transaction
	newBalance := wallet.Balance
	if entryFee > 0 {
		tx, err := Debit(ctx, uow, userID, entryFee, models.TransactionKindEntryFee, EntryDetails{
			TournamentID: &tournamentID,
			Metadata:     map[string]any{"display_name": displayName},
		})
		if err != nil {
			return nil, err
		}
		newBalance = tx.BalanceAfter
	}

	if err := uow.JoinHistoryRepository().Record(ctx, &models.JoinRecord{
		UserID:       userID,
		TournamentID: tournamentID,
		EntryFee:     entryFee,
	}); err != nil {
		return nil, err
	}

	if err := uow.TournamentRepository().AddParticipant(ctx, &models.Participant{
		TournamentID: tournamentID,
		UserID:       userID,
		DisplayName:  displayName,
	}); err != nil {
		return nil, err
	}

	remaining := tournament.Capacity
	if !tournament.Capacity.Unlimited {
		left, err := uow.TournamentRepository().ReserveSlot(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		remaining = models.LimitedCapacity(left)
		if remaining.Exhausted() {
			if err := uow.TournamentRepository().MarkFull(ctx, tournamentID); err != nil {
				return nil, err
			}
		}
	}

	uow.EventBus().Publish(events.RegistrationCompletedEvent{
		TournamentID:      tournamentID,
		UserID:            userID,
		DisplayName:       displayName,
		EntryFee:          entryFee,
		RemainingCapacity: remaining,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.RegistrationResult{
		TournamentID:      tournamentID,
		UserID:            userID,
		EntryFeePaid:      entryFee,
		NewBalance:        newBalance,
		RemainingCapacity: remaining,
	}, nil
}
