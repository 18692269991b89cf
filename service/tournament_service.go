package service

import (
	"context"
	"fmt"

	"tourney/models"
)

type tournamentService struct {
	uowFactory UnitOfWorkFactory
}

// NewTournamentService creates a new tournament service
func NewTournamentService(uowFactory UnitOfWorkFactory) TournamentService {
	return &tournamentService{
		uowFactory: uowFactory,
	}
}

// CreateTournament creates a tournament with the given capacity. This is the
// only place capacity comes into existence; registration can only shrink it.
func (s *tournamentService) CreateTournament(ctx context.Context, name string, entryFee, prizePool int64, capacity models.Capacity) (*models.Tournament, error) {
	if name == "" {
		return nil, fmt.Errorf("tournament name is required")
	}
	if entryFee < 0 || prizePool < 0 {
		return nil, fmt.Errorf("entry fee and prize pool must be non-negative: %w", ErrInvalidAmount)
	}
	if !capacity.Unlimited && capacity.Remaining <= 0 {
		return nil, fmt.Errorf("limited capacity must be positive: %w", ErrInvalidAmount)
	}

	tournament := &models.Tournament{
		Name:      name,
		EntryFee:  entryFee,
		PrizePool: prizePool,
		Capacity:  capacity,
		Status:    models.TournamentStatusOpen,
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.TournamentRepository().Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return tournament, nil
}

// GetTournament returns a tournament, or ErrNotFound
func (s *tournamentService) GetTournament(ctx context.Context, id int64) (*models.Tournament, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tournament, err := uow.TournamentRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	if tournament == nil {
		return nil, fmt.Errorf("tournament %d: %w", id, ErrNotFound)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return tournament, nil
}

// ListTournaments returns tournaments, optionally filtered by status
func (s *tournamentService) ListTournaments(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tournaments, err := uow.TournamentRepository().List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return tournaments, nil
}

// ListParticipants returns a tournament's participants in join order
func (s *tournamentService) ListParticipants(ctx context.Context, tournamentID int64) ([]*models.Participant, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tournament, err := uow.TournamentRepository().GetByID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	if tournament == nil {
		return nil, fmt.Errorf("tournament %d: %w", tournamentID, ErrNotFound)
	}

	participants, err := uow.TournamentRepository().ListParticipants(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return participants, nil
}
