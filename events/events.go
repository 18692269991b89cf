package events

import (
	"context"
	"sync"

	"tourney/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange         EventType = "balance_change"
	EventTypeRegistrationCompleted EventType = "registration_completed"
	EventTypeDepositResolved       EventType = "deposit_resolved"
	EventTypePrizeDistributed      EventType = "prize_distributed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a committed wallet balance change
type BalanceChangeEvent struct {
	UserID       int64
	OldBalance   int64
	NewBalance   int64
	Kind         models.TransactionKind
	ChangeAmount int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// RegistrationCompletedEvent represents a successful tournament registration
type RegistrationCompletedEvent struct {
	TournamentID      int64
	UserID            int64
	DisplayName       string
	EntryFee          int64
	RemainingCapacity models.Capacity
}

func (e RegistrationCompletedEvent) Type() EventType {
	return EventTypeRegistrationCompleted
}

// DepositResolvedEvent represents an administrator decision on a deposit request
type DepositResolvedEvent struct {
	RequestID int64
	UserID    int64
	Amount    int64
	Approved  bool
}

func (e DepositResolvedEvent) Type() EventType {
	return EventTypeDepositResolved
}

// PrizeDistributedEvent represents a completed prize pool distribution
type PrizeDistributedEvent struct {
	TournamentID int64
	PrizePool    int64
	Payouts      []models.PrizePayout
}

func (e PrizeDistributedEvent) Type() EventType {
	return EventTypePrizeDistributed
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching. Delivery is
// fire-and-forget: a failing or panicking handler never affects the
// state change that produced the event.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the caller
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds pending events coupled to a unit of work.
// Events are flushed to the underlying bus only after the database
// transaction commits, and discarded on rollback.
type TransactionalBus struct {
	real    *Bus
	pending []Event // stashed until Flush
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events; called after a successful commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing pending events to main event bus")

	// Events outlive the transaction context
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events; called after rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
