package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"tourney/models"

	"github.com/stretchr/testify/assert"
)

func TestBus_EmitDeliversToSubscribers(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	var received []Event
	done := make(chan struct{}, 1)

	bus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, e Event) {
		mu.Lock()
		received = append(received, e)
		mu.Unlock()
		done <- struct{}{}
	})

	bus.Emit(context.Background(), BalanceChangeEvent{
		UserID:       42,
		OldBalance:   100,
		NewBalance:   150,
		Kind:         models.TransactionKindDeposit,
		ChangeAmount: 50,
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler was not called")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, received, 1)
	event := received[0].(BalanceChangeEvent)
	assert.Equal(t, int64(42), event.UserID)
	assert.Equal(t, int64(150), event.NewBalance)
}

func TestBus_EmitIgnoresUnsubscribedTypes(t *testing.T) {
	bus := NewBus()

	called := make(chan struct{}, 1)
	bus.Subscribe(EventTypeDepositResolved, func(ctx context.Context, e Event) {
		called <- struct{}{}
	})

	bus.Emit(context.Background(), PrizeDistributedEvent{TournamentID: 1})

	select {
	case <-called:
		t.Fatal("handler for unrelated event type was called")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTransactionalBus_FlushDeliversPending(t *testing.T) {
	bus := NewBus()
	received := make(chan Event, 2)
	bus.Subscribe(EventTypeRegistrationCompleted, func(ctx context.Context, e Event) {
		received <- e
	})

	txBus := NewTransactionalBus(bus)
	txBus.Publish(RegistrationCompletedEvent{TournamentID: 7, UserID: 1})
	txBus.Publish(RegistrationCompletedEvent{TournamentID: 7, UserID: 2})

	// Nothing delivered before flush
	select {
	case <-received:
		t.Fatal("event delivered before Flush")
	case <-time.After(50 * time.Millisecond):
	}

	assert.NoError(t, txBus.Flush(context.Background()))

	for i := 0; i < 2; i++ {
		select {
		case <-received:
		case <-time.After(time.Second):
			t.Fatal("pending event not delivered after Flush")
		}
	}
}

func TestTransactionalBus_DiscardDropsPending(t *testing.T) {
	bus := NewBus()
	received := make(chan Event, 1)
	bus.Subscribe(EventTypeRegistrationCompleted, func(ctx context.Context, e Event) {
		received <- e
	})

	txBus := NewTransactionalBus(bus)
	txBus.Publish(RegistrationCompletedEvent{TournamentID: 7, UserID: 1})
	txBus.Discard()

	assert.NoError(t, txBus.Flush(context.Background()))

	select {
	case <-received:
		t.Fatal("discarded event was delivered")
	case <-time.After(50 * time.Millisecond):
	}
}
