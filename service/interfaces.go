package service

import (
	"context"

	"tourney/events"
	"tourney/models"
)

// WalletRepository defines the interface for wallet data access
type WalletRepository interface {
	// GetByUserID retrieves a wallet, or nil if the user has none yet
	GetByUserID(ctx context.Context, userID int64) (*models.Wallet, error)

	// Create creates a wallet with the given initial balance
	Create(ctx context.Context, userID int64, initialBalance int64) (*models.Wallet, error)

	// AddBalance increases a wallet's balance atomically
	AddBalance(ctx context.Context, userID int64, amount int64) error

	// DeductBalance decreases a wallet's balance atomically, failing with
	// ErrInsufficientFunds when the balance cannot cover the amount
	DeductBalance(ctx context.Context, userID int64, amount int64) error
}

// LedgerRepository defines the interface for the append-only transaction log
type LedgerRepository interface {
	// Record appends a transaction; entries are immutable once written
	Record(ctx context.Context, tx *models.Transaction) error

	// GetByUser returns a user's transactions, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.Transaction, error)

	// SumCompleted returns completed credits minus completed debits for a user
	SumCompleted(ctx context.Context, userID int64) (int64, error)
}

// TournamentRepository defines the interface for tournament data access
type TournamentRepository interface {
	// Create creates a new tournament and fills in its generated fields
	Create(ctx context.Context, tournament *models.Tournament) error

	// GetByID retrieves a tournament, or nil if it does not exist
	GetByID(ctx context.Context, id int64) (*models.Tournament, error)

	// List returns tournaments, optionally filtered by status
	List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error)

	// ReserveSlot decrements remaining_slots if one is available and
	// returns the new remaining count, failing with ErrCapacityExhausted
	// otherwise. Never called for unlimited tournaments.
	ReserveSlot(ctx context.Context, tournamentID int64) (int32, error)

	// AddParticipant inserts a membership row, failing with
	// ErrAlreadyRegistered when the user already holds a slot
	AddParticipant(ctx context.Context, participant *models.Participant) error

	// ListParticipants returns participants in join order
	ListParticipants(ctx context.Context, tournamentID int64) ([]*models.Participant, error)

	// MarkFull flips an open tournament to full
	MarkFull(ctx context.Context, tournamentID int64) error

	// MarkPrizeDistributed flips prize_distributed and completes the
	// tournament, failing with ErrAlreadyDistributed if the flag was
	// already set. This is the idempotency guard for prize payouts.
	MarkPrizeDistributed(ctx context.Context, tournamentID int64) error
}

// JoinHistoryRepository defines the interface for per-user join records
type JoinHistoryRepository interface {
	// Record appends a write-once join record, failing with
	// ErrAlreadyRegistered on a duplicate (user, tournament) pair
	Record(ctx context.Context, record *models.JoinRecord) error

	// HasJoined reports whether the user has a join record for the tournament
	HasJoined(ctx context.Context, userID, tournamentID int64) (bool, error)

	// GetByUser returns a user's join history, newest first
	GetByUser(ctx context.Context, userID int64) ([]*models.JoinRecord, error)
}

// DepositRequestRepository defines the interface for deposit request data access
type DepositRequestRepository interface {
	// Create creates a pending deposit request
	Create(ctx context.Context, request *models.DepositRequest) error

	// GetByID retrieves a request, or nil if it does not exist
	GetByID(ctx context.Context, id int64) (*models.DepositRequest, error)

	// Resolve transitions a pending request to a terminal status, failing
	// with ErrAlreadyResolved if it is no longer pending
	Resolve(ctx context.Context, id int64, status models.DepositStatus) error

	// ListPending returns all pending requests, oldest first
	ListPending(ctx context.Context) ([]*models.DepositRequest, error)

	// ListByUser returns a user's requests, newest first
	ListByUser(ctx context.Context, userID int64, limit int) ([]*models.DepositRequest, error)
}

// WalletService defines read access to a user's ledger
type WalletService interface {
	// GetWallet returns the user's wallet, or ErrNotFound
	GetWallet(ctx context.Context, userID int64) (*models.Wallet, error)

	// GetTransactions returns the user's transaction history, newest first
	GetTransactions(ctx context.Context, userID int64, limit int) ([]*models.Transaction, error)
}

// TournamentService defines tournament administration and queries
type TournamentService interface {
	// CreateTournament creates a tournament with the given capacity
	CreateTournament(ctx context.Context, name string, entryFee, prizePool int64, capacity models.Capacity) (*models.Tournament, error)

	// GetTournament returns a tournament, or ErrNotFound
	GetTournament(ctx context.Context, id int64) (*models.Tournament, error)

	// ListTournaments returns tournaments, optionally filtered by status
	ListTournaments(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error)

	// ListParticipants returns a tournament's participants in join order
	ListParticipants(ctx context.Context, tournamentID int64) ([]*models.Participant, error)
}

// RegistrationService defines the tournament registration entry point
type RegistrationService interface {
	// RegisterForTournament reserves a slot and debits the entry fee as one
	// atomic unit. Exactly one of the documented failures or a fully
	// applied registration is observed, never a partial state.
	RegisterForTournament(ctx context.Context, tournamentID, userID int64, entryFee int64, displayName string) (*models.RegistrationResult, error)
}

// DepositService defines the deposit request workflow
type DepositService interface {
	// Submit creates a pending deposit request
	Submit(ctx context.Context, userID int64, amount int64, externalRef string) (*models.DepositRequest, error)

	// Approve resolves a pending request and credits the wallet atomically
	Approve(ctx context.Context, requestID int64) (*models.DepositRequest, error)

	// Reject resolves a pending request without any balance change
	Reject(ctx context.Context, requestID int64) (*models.DepositRequest, error)

	// ListPending returns all pending requests for the admin surface
	ListPending(ctx context.Context) ([]*models.DepositRequest, error)

	// ListByUser returns a user's deposit requests, newest first
	ListByUser(ctx context.Context, userID int64, limit int) ([]*models.DepositRequest, error)
}

// PrizeService defines the prize distribution entry point
type PrizeService interface {
	// DistributePrizes splits the pool 50/30/20 across the ranked winners
	// and credits each wallet, all-or-nothing and exactly once
	DistributePrizes(ctx context.Context, tournamentID int64, winners models.Winners) (*models.PrizeDistributionResult, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events
	Rollback() error

	// Repository getters
	WalletRepository() WalletRepository
	LedgerRepository() LedgerRepository
	TournamentRepository() TournamentRepository
	JoinHistoryRepository() JoinHistoryRepository
	DepositRequestRepository() DepositRequestRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
