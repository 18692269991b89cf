package service

import (
	"context"

	"tourney/events"
	"tourney/models"

	"github.com/stretchr/testify/mock"
)

// MockWalletRepository is a mock implementation of WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, userID int64) (*models.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepository) Create(ctx context.Context, userID int64, initialBalance int64) (*models.Wallet, error) {
	args := m.Called(ctx, userID, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepository) AddBalance(ctx context.Context, userID int64, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockWalletRepository) DeductBalance(ctx context.Context, userID int64, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Record(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) SumCompleted(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockTournamentRepository is a mock implementation of TournamentRepository
type MockTournamentRepository struct {
	mock.Mock
}

func (m *MockTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	args := m.Called(ctx, tournament)
	return args.Error(0)
}

func (m *MockTournamentRepository) GetByID(ctx context.Context, id int64) (*models.Tournament, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tournament), args.Error(1)
}

func (m *MockTournamentRepository) List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tournament), args.Error(1)
}

func (m *MockTournamentRepository) ReserveSlot(ctx context.Context, tournamentID int64) (int32, error) {
	args := m.Called(ctx, tournamentID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockTournamentRepository) AddParticipant(ctx context.Context, participant *models.Participant) error {
	args := m.Called(ctx, participant)
	return args.Error(0)
}

func (m *MockTournamentRepository) ListParticipants(ctx context.Context, tournamentID int64) ([]*models.Participant, error) {
	args := m.Called(ctx, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Participant), args.Error(1)
}

func (m *MockTournamentRepository) MarkFull(ctx context.Context, tournamentID int64) error {
	args := m.Called(ctx, tournamentID)
	return args.Error(0)
}

func (m *MockTournamentRepository) MarkPrizeDistributed(ctx context.Context, tournamentID int64) error {
	args := m.Called(ctx, tournamentID)
	return args.Error(0)
}

// MockJoinHistoryRepository is a mock implementation of JoinHistoryRepository
type MockJoinHistoryRepository struct {
	mock.Mock
}

func (m *MockJoinHistoryRepository) Record(ctx context.Context, record *models.JoinRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockJoinHistoryRepository) HasJoined(ctx context.Context, userID, tournamentID int64) (bool, error) {
	args := m.Called(ctx, userID, tournamentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockJoinHistoryRepository) GetByUser(ctx context.Context, userID int64) ([]*models.JoinRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.JoinRecord), args.Error(1)
}

// MockDepositRequestRepository is a mock implementation of DepositRequestRepository
type MockDepositRequestRepository struct {
	mock.Mock
}

func (m *MockDepositRequestRepository) Create(ctx context.Context, request *models.DepositRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockDepositRequestRepository) GetByID(ctx context.Context, id int64) (*models.DepositRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DepositRequest), args.Error(1)
}

func (m *MockDepositRequestRepository) Resolve(ctx context.Context, id int64, status models.DepositStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockDepositRequestRepository) ListPending(ctx context.Context) ([]*models.DepositRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DepositRequest), args.Error(1)
}

func (m *MockDepositRequestRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*models.DepositRequest, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DepositRequest), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// plain fields so tests can hand in whichever mocks the case needs.
type MockUnitOfWork struct {
	mock.Mock
	walletRepo      WalletRepository
	ledgerRepo      LedgerRepository
	tournamentRepo  TournamentRepository
	joinHistoryRepo JoinHistoryRepository
	depositRepo     DepositRequestRepository
	eventBus        EventPublisher
}

// SetRepositories wires the mock repositories into the unit of work
func (m *MockUnitOfWork) SetRepositories(
	wallet WalletRepository,
	ledger LedgerRepository,
	tournament TournamentRepository,
	joinHistory JoinHistoryRepository,
	deposit DepositRequestRepository,
	eventBus EventPublisher,
) {
	m.walletRepo = wallet
	m.ledgerRepo = ledger
	m.tournamentRepo = tournament
	m.joinHistoryRepo = joinHistory
	m.depositRepo = deposit
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) WalletRepository() WalletRepository {
	return m.walletRepo
}

func (m *MockUnitOfWork) LedgerRepository() LedgerRepository {
	return m.ledgerRepo
}

func (m *MockUnitOfWork) TournamentRepository() TournamentRepository {
	return m.tournamentRepo
}

func (m *MockUnitOfWork) JoinHistoryRepository() JoinHistoryRepository {
	return m.joinHistoryRepo
}

func (m *MockUnitOfWork) DepositRequestRepository() DepositRequestRepository {
	return m.depositRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
