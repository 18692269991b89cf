package metrics

import (
	"context"

	"tourney/events"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the engine's Prometheus metrics, fed from the event bus
type Collector struct {
	registrations  prometheus.Counter
	depositsByKind *prometheus.CounterVec
	prizePayouts   prometheus.Counter
	prizeAmount    prometheus.Counter
	balanceChanges *prometheus.CounterVec
}

// NewCollector creates and registers the metric set
func NewCollector(registerer prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_registrations_total",
			Help: "Completed tournament registrations",
		}),
		depositsByKind: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tourney_deposits_resolved_total",
			Help: "Resolved deposit requests by outcome",
		}, []string{"outcome"}),
		prizePayouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_prize_payouts_total",
			Help: "Individual prize payouts credited",
		}),
		prizeAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_prize_amount_total",
			Help: "Total prize amount credited in minor units",
		}),
		balanceChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tourney_balance_changes_total",
			Help: "Wallet balance changes by transaction kind",
		}, []string{"kind"}),
	}
	registerer.MustRegister(c.registrations, c.depositsByKind, c.prizePayouts, c.prizeAmount, c.balanceChanges)
	return c
}

// Observe subscribes the collector to the event bus
func (c *Collector) Observe(bus *events.Bus) {
	bus.Subscribe(events.EventTypeRegistrationCompleted, func(ctx context.Context, event events.Event) {
		c.registrations.Inc()
	})
	bus.Subscribe(events.EventTypeDepositResolved, func(ctx context.Context, event events.Event) {
		resolved, ok := event.(events.DepositResolvedEvent)
		if !ok {
			return
		}
		outcome := "rejected"
		if resolved.Approved {
			outcome = "approved"
		}
		c.depositsByKind.WithLabelValues(outcome).Inc()
	})
	bus.Subscribe(events.EventTypePrizeDistributed, func(ctx context.Context, event events.Event) {
		distributed, ok := event.(events.PrizeDistributedEvent)
		if !ok {
			return
		}
		for _, payout := range distributed.Payouts {
			c.prizePayouts.Inc()
			c.prizeAmount.Add(float64(payout.Amount))
		}
	})
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		change, ok := event.(events.BalanceChangeEvent)
		if !ok {
			return
		}
		c.balanceChanges.WithLabelValues(string(change.Kind)).Inc()
	})
}
