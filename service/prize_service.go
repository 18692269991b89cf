package service

import (
	"context"
	"fmt"

	"tourney/events"
	"tourney/models"

	log "github.com/sirupsen/logrus"
)

type prizeService struct {
	uowFactory UnitOfWorkFactory
}

// NewPrizeService creates a new prize service
func NewPrizeService(uowFactory UnitOfWorkFactory) PrizeService {
	return &prizeService{
		uowFactory: uowFactory,
	}
}

// SplitPrizePool computes the 50/30/20 winner shares in integer minor units.
// Each share is floored; the rounding remainder goes to first place, so the
// three shares always sum to the pool. Deterministic by construction.
func SplitPrizePool(pool int64) (first, second, third int64) {
	first = pool * 50 / 100
	second = pool * 30 / 100
	third = pool * 20 / 100
	first += pool - (first + second + third)
	return first, second, third
}

// DistributePrizes credits the ranked winners' wallets and completes the
// tournament as one atomic unit. The guarded prize_distributed flip is the
// idempotency gate: it happens inside the same transaction as the credits,
// so a retry after any partial failure starts from a clean slate, and a
// duplicate call fails with ErrAlreadyDistributed having changed nothing.
func (s *prizeService) DistributePrizes(ctx context.Context, tournamentID int64, winners models.Winners) (*models.PrizeDistributionResult, error) {
	var result *models.PrizeDistributionResult
	err := withConflictRetry(ctx, "distribute_prizes", func() error {
		var err error
		result, err = s.distribute(ctx, tournamentID, winners)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"tournamentID": tournamentID,
		"payouts":      len(result.Payouts),
		"prizePool":    result.PrizePool,
	}).Info("Prize pool distributed")

	return result, nil
}

func (s *prizeService) distribute(ctx context.Context, tournamentID int64, winners models.Winners) (*models.PrizeDistributionResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	tournament, err := uow.TournamentRepository().GetByID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	if tournament == nil {
		return nil, fmt.Errorf("tournament %d: %w", tournamentID, ErrNotFound)
	}
	if tournament.PrizeDistributed {
		return nil, fmt.Errorf("tournament %d: %w", tournamentID, ErrAlreadyDistributed)
	}

	// Flip the flag first; the guard catches a racing distribution before
	// any credit is applied
	if err := uow.TournamentRepository().MarkPrizeDistributed(ctx, tournamentID); err != nil {
		return nil, err
	}

	firstShare, secondShare, thirdShare := SplitPrizePool(tournament.PrizePool)

	shares := []struct {
		placement models.Placement
		userID    int64
		amount    int64
	}{
		{models.PlacementFirst, winners.First, firstShare},
		{models.PlacementSecond, winners.Second, secondShare},
		{models.PlacementThird, winners.Third, thirdShare},
	}

	var payouts []models.PrizePayout
	for _, share := range shares {
		// Empty slots forfeit their share
		if share.userID == 0 || share.amount <= 0 {
			continue
		}
		if _, err := Credit(ctx, uow, share.userID, share.amount, models.TransactionKindPrize, EntryDetails{
			TournamentID: &tournamentID,
			Metadata:     map[string]any{"placement": string(share.placement)},
		}); err != nil {
			return nil, fmt.Errorf("failed to credit %s place: %w", share.placement, err)
		}
		payouts = append(payouts, models.PrizePayout{
			Placement: share.placement,
			UserID:    share.userID,
			Amount:    share.amount,
		})
	}

	uow.EventBus().Publish(events.PrizeDistributedEvent{
		TournamentID: tournamentID,
		PrizePool:    tournament.PrizePool,
		Payouts:      payouts,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.PrizeDistributionResult{
		TournamentID: tournamentID,
		PrizePool:    tournament.PrizePool,
		Payouts:      payouts,
	}, nil
}
