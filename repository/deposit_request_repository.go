package repository

import (
	"context"
	"fmt"

	"tourney/database"
	"tourney/models"
	"tourney/service"

	"github.com/jackc/pgx/v5"
)

// DepositRequestRepository implements the service.DepositRequestRepository interface
type DepositRequestRepository struct {
	q queryable
}

// NewDepositRequestRepository creates a new deposit request repository
func NewDepositRequestRepository(db *database.DB) *DepositRequestRepository {
	return &DepositRequestRepository{q: db.Pool}
}

// newDepositRequestRepositoryWithTx creates a new deposit request repository with a transaction
func newDepositRequestRepositoryWithTx(tx queryable) *DepositRequestRepository {
	return &DepositRequestRepository{q: tx}
}

// Create creates a pending deposit request
func (r *DepositRequestRepository) Create(ctx context.Context, request *models.DepositRequest) error {
	query := `
		INSERT INTO deposit_requests (user_id, amount, status, external_ref)
		VALUES ($1, $2, 'pending', $3)
		RETURNING id, status, created_at
	`

	err := r.q.QueryRow(ctx, query,
		request.UserID,
		request.Amount,
		request.ExternalRef,
	).Scan(&request.ID, &request.Status, &request.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create deposit request for user %d: %w", request.UserID, err)
	}

	return nil
}

// GetByID retrieves a request, or nil if it does not exist
func (r *DepositRequestRepository) GetByID(ctx context.Context, id int64) (*models.DepositRequest, error) {
	query := `
		SELECT id, user_id, amount, status, external_ref, created_at, resolved_at
		FROM deposit_requests
		WHERE id = $1
	`

	var req models.DepositRequest
	err := r.q.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.UserID,
		&req.Amount,
		&req.Status,
		&req.ExternalRef,
		&req.CreatedAt,
		&req.ResolvedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deposit request %d: %w", id, err)
	}

	return &req, nil
}

// Resolve transitions a pending request to a terminal status. The guard on
// the current status is the idempotency check: a second resolution attempt
// updates zero rows and fails with ErrAlreadyResolved.
func (r *DepositRequestRepository) Resolve(ctx context.Context, id int64, status models.DepositStatus) error {
	query := `
		UPDATE deposit_requests
		SET status = $2, resolved_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to resolve deposit request %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("deposit request %d: %w", id, service.ErrAlreadyResolved)
	}

	return nil
}

// ListPending returns all pending requests, oldest first
func (r *DepositRequestRepository) ListPending(ctx context.Context) ([]*models.DepositRequest, error) {
	query := `
		SELECT id, user_id, amount, status, external_ref, created_at, resolved_at
		FROM deposit_requests
		WHERE status = 'pending'
		ORDER BY created_at, id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending deposit requests: %w", err)
	}
	defer rows.Close()

	return scanDepositRequests(rows)
}

// ListByUser returns a user's requests, newest first
func (r *DepositRequestRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*models.DepositRequest, error) {
	query := `
		SELECT id, user_id, amount, status, external_ref, created_at, resolved_at
		FROM deposit_requests
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list deposit requests for user %d: %w", userID, err)
	}
	defer rows.Close()

	return scanDepositRequests(rows)
}

func scanDepositRequests(rows pgx.Rows) ([]*models.DepositRequest, error) {
	var requests []*models.DepositRequest
	for rows.Next() {
		var req models.DepositRequest
		err := rows.Scan(
			&req.ID,
			&req.UserID,
			&req.Amount,
			&req.Status,
			&req.ExternalRef,
			&req.CreatedAt,
			&req.ResolvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deposit request: %w", err)
		}
		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deposit requests: %w", err)
	}

	return requests, nil
}
