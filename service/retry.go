package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

// maxConflictAttempts bounds automatic retries of serialization conflicts
const maxConflictAttempts = 3

// isSerializationFailure reports whether err is a transient conflict the
// database asks us to retry: serialization_failure or deadlock_detected.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// withConflictRetry runs fn, retrying on serialization failures with a short
// backoff. After the attempts are exhausted the caller sees
// ErrConcurrencyConflict; all other errors pass through untouched.
func withConflictRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxConflictAttempts; attempt++ {
		err = fn()
		if err == nil || !isSerializationFailure(err) {
			return err
		}

		log.WithFields(log.Fields{
			"operation": op,
			"attempt":   attempt,
		}).Warn("Retrying after serialization conflict")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 10 * time.Millisecond):
		}
	}
	return fmt.Errorf("%s: %w", op, ErrConcurrencyConflict)
}
