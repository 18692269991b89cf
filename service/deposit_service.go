package service

import (
	"context"
	"fmt"

	"tourney/events"
	"tourney/models"

	log "github.com/sirupsen/logrus"
)

type depositService struct {
	uowFactory UnitOfWorkFactory
}

// NewDepositService creates a new deposit service
func NewDepositService(uowFactory UnitOfWorkFactory) DepositService {
	return &depositService{
		uowFactory: uowFactory,
	}
}

// Submit creates a pending deposit request
func (s *depositService) Submit(ctx context.Context, userID int64, amount int64, externalRef string) (*models.DepositRequest, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("deposit of %d: %w", amount, ErrInvalidAmount)
	}

	request := &models.DepositRequest{
		UserID: userID,
		Amount: amount,
	}
	if externalRef != "" {
		request.ExternalRef = &externalRef
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if err := uow.DepositRequestRepository().Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create deposit request: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return request, nil
}

// Approve resolves a pending request and credits the wallet. The status
// flip and the credit commit together; a duplicate approval sees
// ErrAlreadyResolved from the guarded status transition and changes nothing.
func (s *depositService) Approve(ctx context.Context, requestID int64) (*models.DepositRequest, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	request, err := uow.DepositRequestRepository().GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deposit request: %w", err)
	}
	if request == nil {
		return nil, fmt.Errorf("deposit request %d: %w", requestID, ErrNotFound)
	}

	if err := uow.DepositRequestRepository().Resolve(ctx, requestID, models.DepositStatusApproved); err != nil {
		return nil, err
	}
	request.Status = models.DepositStatusApproved

	if _, err := Credit(ctx, uow, request.UserID, request.Amount, models.TransactionKindDeposit, EntryDetails{
		ExternalRef: request.ExternalRef,
		Metadata:    map[string]any{"deposit_request_id": requestID},
	}); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.DepositResolvedEvent{
		RequestID: requestID,
		UserID:    request.UserID,
		Amount:    request.Amount,
		Approved:  true,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"requestID": requestID,
		"userID":    request.UserID,
		"amount":    request.Amount,
	}).Info("Deposit request approved")

	return request, nil
}

// Reject resolves a pending request without touching the balance. A
// rejected-status ledger entry is still appended for audit.
func (s *depositService) Reject(ctx context.Context, requestID int64) (*models.DepositRequest, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	request, err := uow.DepositRequestRepository().GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deposit request: %w", err)
	}
	if request == nil {
		return nil, fmt.Errorf("deposit request %d: %w", requestID, ErrNotFound)
	}

	if err := uow.DepositRequestRepository().Resolve(ctx, requestID, models.DepositStatusRejected); err != nil {
		return nil, err
	}
	request.Status = models.DepositStatusRejected

	// Audit entry only; balance before and after are equal
	wallet, err := uow.WalletRepository().GetByUserID(ctx, request.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	var balance int64
	if wallet != nil {
		balance = wallet.Balance
	}
	if err := recordTransaction(ctx, uow, &models.Transaction{
		UserID:        request.UserID,
		Amount:        request.Amount,
		Kind:          models.TransactionKindDeposit,
		Status:        models.TransactionStatusRejected,
		BalanceBefore: balance,
		BalanceAfter:  balance,
		ExternalRef:   request.ExternalRef,
		Metadata:      map[string]any{"deposit_request_id": requestID},
	}); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.DepositResolvedEvent{
		RequestID: requestID,
		UserID:    request.UserID,
		Amount:    request.Amount,
		Approved:  false,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"requestID": requestID,
		"userID":    request.UserID,
	}).Info("Deposit request rejected")

	return request, nil
}

// ListPending returns all pending requests for the admin surface
func (s *depositService) ListPending(ctx context.Context) ([]*models.DepositRequest, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	requests, err := uow.DepositRequestRepository().ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending deposit requests: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return requests, nil
}

// ListByUser returns a user's deposit requests, newest first
func (s *depositService) ListByUser(ctx context.Context, userID int64, limit int) ([]*models.DepositRequest, error) {
	if limit <= 0 {
		limit = 50
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	requests, err := uow.DepositRequestRepository().ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list deposit requests: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return requests, nil
}
