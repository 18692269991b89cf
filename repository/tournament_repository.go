package repository

import (
	"context"
	"fmt"

	"tourney/database"
	"tourney/models"
	"tourney/service"

	"github.com/jackc/pgx/v5"
)

// TournamentRepository implements the service.TournamentRepository interface
type TournamentRepository struct {
	q queryable
}

// NewTournamentRepository creates a new tournament repository
func NewTournamentRepository(db *database.DB) *TournamentRepository {
	return &TournamentRepository{q: db.Pool}
}

// newTournamentRepositoryWithTx creates a new tournament repository with a transaction
func newTournamentRepositoryWithTx(tx queryable) *TournamentRepository {
	return &TournamentRepository{q: tx}
}

// remainingSlotsValue maps the Capacity variant to the nullable column
func remainingSlotsValue(c models.Capacity) *int32 {
	if c.Unlimited {
		return nil
	}
	n := c.Remaining
	return &n
}

// capacityFromColumn maps the nullable column back to the Capacity variant
func capacityFromColumn(remaining *int32) models.Capacity {
	if remaining == nil {
		return models.UnlimitedCapacity()
	}
	return models.LimitedCapacity(*remaining)
}

// Create creates a new tournament
func (r *TournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, entry_fee, prize_pool, remaining_slots, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	if tournament.Status == "" {
		tournament.Status = models.TournamentStatusOpen
	}

	err := r.q.QueryRow(ctx, query,
		tournament.Name,
		tournament.EntryFee,
		tournament.PrizePool,
		remainingSlotsValue(tournament.Capacity),
		tournament.Status,
	).Scan(&tournament.ID, &tournament.CreatedAt, &tournament.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create tournament %q: %w", tournament.Name, err)
	}

	return nil
}

// GetByID retrieves a tournament, or nil if it does not exist
func (r *TournamentRepository) GetByID(ctx context.Context, id int64) (*models.Tournament, error) {
	query := `
		SELECT id, name, entry_fee, prize_pool, remaining_slots, status, prize_distributed, created_at, updated_at
		FROM tournaments
		WHERE id = $1
	`

	tournament, err := scanTournament(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}

	return tournament, nil
}

func scanTournament(row pgx.Row) (*models.Tournament, error) {
	var t models.Tournament
	var remaining *int32
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.EntryFee,
		&t.PrizePool,
		&remaining,
		&t.Status,
		&t.PrizeDistributed,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Capacity = capacityFromColumn(remaining)
	return &t, nil
}

// List returns tournaments, optionally filtered by status, newest first
func (r *TournamentRepository) List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error) {
	query := `
		SELECT id, name, entry_fee, prize_pool, remaining_slots, status, prize_distributed, created_at, updated_at
		FROM tournaments
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
	`

	rows, err := r.q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	var tournaments []*models.Tournament
	for rows.Next() {
		var t models.Tournament
		var remaining *int32
		err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.EntryFee,
			&t.PrizePool,
			&remaining,
			&t.Status,
			&t.PrizeDistributed,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tournament: %w", err)
		}
		t.Capacity = capacityFromColumn(remaining)
		tournaments = append(tournaments, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tournaments: %w", err)
	}

	return tournaments, nil
}

// ReserveSlot decrements remaining_slots if one is available. The guard
// clause is what makes the last-slot race safe: of N concurrent callers
// contending for K slots, exactly K see a row updated. The returned count
// comes from the update itself, never from a possibly stale snapshot.
func (r *TournamentRepository) ReserveSlot(ctx context.Context, tournamentID int64) (int32, error) {
	query := `
		UPDATE tournaments
		SET remaining_slots = remaining_slots - 1, updated_at = NOW()
		WHERE id = $1 AND remaining_slots > 0
		RETURNING remaining_slots
	`

	var remaining int32
	err := r.q.QueryRow(ctx, query, tournamentID).Scan(&remaining)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("tournament %d: %w", tournamentID, service.ErrCapacityExhausted)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to reserve slot in tournament %d: %w", tournamentID, err)
	}

	return remaining, nil
}

// AddParticipant inserts a membership row
func (r *TournamentRepository) AddParticipant(ctx context.Context, participant *models.Participant) error {
	query := `
		INSERT INTO tournament_participants (tournament_id, user_id, display_name)
		VALUES ($1, $2, $3)
		RETURNING joined_at
	`

	err := r.q.QueryRow(ctx, query,
		participant.TournamentID,
		participant.UserID,
		participant.DisplayName,
	).Scan(&participant.JoinedAt)

	if isUniqueViolation(err) {
		return fmt.Errorf("user %d in tournament %d: %w", participant.UserID, participant.TournamentID, service.ErrAlreadyRegistered)
	}
	if err != nil {
		return fmt.Errorf("failed to add participant to tournament %d: %w", participant.TournamentID, err)
	}

	return nil
}

// ListParticipants returns participants in join order
func (r *TournamentRepository) ListParticipants(ctx context.Context, tournamentID int64) ([]*models.Participant, error) {
	query := `
		SELECT tournament_id, user_id, display_name, joined_at
		FROM tournament_participants
		WHERE tournament_id = $1
		ORDER BY joined_at, user_id
	`

	rows, err := r.q.Query(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.TournamentID, &p.UserID, &p.DisplayName, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}

// MarkFull flips an open tournament to full
func (r *TournamentRepository) MarkFull(ctx context.Context, tournamentID int64) error {
	query := `
		UPDATE tournaments
		SET status = 'full', updated_at = NOW()
		WHERE id = $1 AND status = 'open'
	`

	if _, err := r.q.Exec(ctx, query, tournamentID); err != nil {
		return fmt.Errorf("failed to mark tournament %d full: %w", tournamentID, err)
	}

	return nil
}

// MarkPrizeDistributed flips the one-way prize_distributed flag and completes
// the tournament. The guard on the flag makes duplicate distributions
// impossible regardless of how many administrators race on it.
func (r *TournamentRepository) MarkPrizeDistributed(ctx context.Context, tournamentID int64) error {
	query := `
		UPDATE tournaments
		SET prize_distributed = TRUE, status = 'completed', updated_at = NOW()
		WHERE id = $1 AND NOT prize_distributed
	`

	result, err := r.q.Exec(ctx, query, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to mark prizes distributed for tournament %d: %w", tournamentID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tournament %d: %w", tournamentID, service.ErrAlreadyDistributed)
	}

	return nil
}
