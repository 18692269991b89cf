package service

import (
	"github.com/stretchr/testify/mock"
)

// testMocks bundles the full mock set a workflow service touches
type testMocks struct {
	factory     *MockUnitOfWorkFactory
	uow         *MockUnitOfWork
	wallet      *MockWalletRepository
	ledger      *MockLedgerRepository
	tournament  *MockTournamentRepository
	joinHistory *MockJoinHistoryRepository
	deposit     *MockDepositRequestRepository
	events      *MockEventPublisher
}

// newTestMocks wires a unit of work whose Begin/Commit/Rollback succeed and
// whose event bus accepts anything. Individual tests add the repository
// expectations they need; an unexpected repository call fails the test.
func newTestMocks() *testMocks {
	m := &testMocks{
		factory:     new(MockUnitOfWorkFactory),
		uow:         new(MockUnitOfWork),
		wallet:      new(MockWalletRepository),
		ledger:      new(MockLedgerRepository),
		tournament:  new(MockTournamentRepository),
		joinHistory: new(MockJoinHistoryRepository),
		deposit:     new(MockDepositRequestRepository),
		events:      new(MockEventPublisher),
	}
	m.uow.SetRepositories(m.wallet, m.ledger, m.tournament, m.joinHistory, m.deposit, m.events)
	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", mock.Anything).Return(nil)
	m.uow.On("Rollback").Return(nil)
	m.events.On("Publish", mock.Anything).Return()
	return m
}

// expectCommit marks the unit of work as expected to commit
func (m *testMocks) expectCommit() {
	m.uow.On("Commit").Return(nil)
}
