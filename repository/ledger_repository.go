package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"tourney/database"
	"tourney/models"
)

// LedgerRepository implements the service.LedgerRepository interface
type LedgerRepository struct {
	q queryable
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *database.DB) *LedgerRepository {
	return &LedgerRepository{q: db.Pool}
}

// newLedgerRepositoryWithTx creates a new ledger repository with a transaction
func newLedgerRepositoryWithTx(tx queryable) *LedgerRepository {
	return &LedgerRepository{q: tx}
}

// Record appends a transaction to the ledger
func (r *LedgerRepository) Record(ctx context.Context, tx *models.Transaction) error {
	metadataJSON, err := json.Marshal(tx.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction metadata: %w", err)
	}
	if tx.Metadata == nil {
		metadataJSON = []byte("{}")
	}

	query := `
		INSERT INTO transactions
		(user_id, amount, kind, status, balance_before, balance_after, tournament_id, external_ref, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query,
		tx.UserID,
		tx.Amount,
		tx.Kind,
		tx.Status,
		tx.BalanceBefore,
		tx.BalanceAfter,
		tx.TournamentID,
		tx.ExternalRef,
		metadataJSON,
	).Scan(&tx.ID, &tx.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record transaction for user %d: %w", tx.UserID, err)
	}

	return nil
}

// GetByUser returns a user's transactions, newest first
func (r *LedgerRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.Transaction, error) {
	query := `
		SELECT id, user_id, amount, kind, status, balance_before, balance_after,
		       tournament_id, external_ref, metadata, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var metadataJSON []byte
		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.Amount,
			&tx.Kind,
			&tx.Status,
			&tx.BalanceBefore,
			&tx.BalanceAfter,
			&tx.TournamentID,
			&tx.ExternalRef,
			&metadataJSON,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &tx.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal transaction metadata: %w", err)
			}
		}
		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

// SumCompleted returns completed credits minus completed debits for a user.
// The result must always equal the wallet balance.
func (r *LedgerRepository) SumCompleted(ctx context.Context, userID int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE WHEN kind = 'entry_fee' THEN -amount ELSE amount END
		), 0)
		FROM transactions
		WHERE user_id = $1 AND status = 'completed'
	`

	var sum int64
	if err := r.q.QueryRow(ctx, query, userID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum transactions for user %d: %w", userID, err)
	}

	return sum, nil
}
