package repository

import (
	"context"
	"fmt"

	"tourney/database"
	"tourney/models"
	"tourney/service"
)

// JoinHistoryRepository implements the service.JoinHistoryRepository interface
type JoinHistoryRepository struct {
	q queryable
}

// NewJoinHistoryRepository creates a new join history repository
func NewJoinHistoryRepository(db *database.DB) *JoinHistoryRepository {
	return &JoinHistoryRepository{q: db.Pool}
}

// newJoinHistoryRepositoryWithTx creates a new join history repository with a transaction
func newJoinHistoryRepositoryWithTx(tx queryable) *JoinHistoryRepository {
	return &JoinHistoryRepository{q: tx}
}

// Record appends a write-once join record
func (r *JoinHistoryRepository) Record(ctx context.Context, record *models.JoinRecord) error {
	query := `
		INSERT INTO join_history (user_id, tournament_id, entry_fee)
		VALUES ($1, $2, $3)
		RETURNING id, joined_at
	`

	err := r.q.QueryRow(ctx, query,
		record.UserID,
		record.TournamentID,
		record.EntryFee,
	).Scan(&record.ID, &record.JoinedAt)

	if isUniqueViolation(err) {
		return fmt.Errorf("user %d in tournament %d: %w", record.UserID, record.TournamentID, service.ErrAlreadyRegistered)
	}
	if err != nil {
		return fmt.Errorf("failed to record join for user %d: %w", record.UserID, err)
	}

	return nil
}

// HasJoined reports whether the user has a join record for the tournament
func (r *JoinHistoryRepository) HasJoined(ctx context.Context, userID, tournamentID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM join_history
			WHERE user_id = $1 AND tournament_id = $2
		)
	`

	var joined bool
	if err := r.q.QueryRow(ctx, query, userID, tournamentID).Scan(&joined); err != nil {
		return false, fmt.Errorf("failed to check join history for user %d: %w", userID, err)
	}

	return joined, nil
}

// GetByUser returns a user's join history, newest first
func (r *JoinHistoryRepository) GetByUser(ctx context.Context, userID int64) ([]*models.JoinRecord, error) {
	query := `
		SELECT id, user_id, tournament_id, entry_fee, joined_at
		FROM join_history
		WHERE user_id = $1
		ORDER BY joined_at DESC, id DESC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get join history for user %d: %w", userID, err)
	}
	defer rows.Close()

	var records []*models.JoinRecord
	for rows.Next() {
		var rec models.JoinRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.TournamentID, &rec.EntryFee, &rec.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan join record: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate join records: %w", err)
	}

	return records, nil
}
