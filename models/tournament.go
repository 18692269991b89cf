package models

import (
	"time"
)

// TournamentStatus represents the lifecycle state of a tournament
type TournamentStatus string

const (
	TournamentStatusOpen      TournamentStatus = "open"
	TournamentStatusFull      TournamentStatus = "full"
	TournamentStatusCompleted TournamentStatus = "completed"
)

// Capacity is the remaining-slot count of a tournament. The unlimited
// variant is explicit so that no sentinel value ever reaches arithmetic.
type Capacity struct {
	Unlimited bool
	Remaining int32
}

// UnlimitedCapacity returns a capacity that never exhausts
func UnlimitedCapacity() Capacity {
	return Capacity{Unlimited: true}
}

// LimitedCapacity returns a capacity with n remaining slots
func LimitedCapacity(n int32) Capacity {
	return Capacity{Remaining: n}
}

// Exhausted returns true when no slot can be reserved
func (c Capacity) Exhausted() bool {
	return !c.Unlimited && c.Remaining <= 0
}

// Tournament represents a tournament with finite or unlimited capacity
type Tournament struct {
	ID               int64            `db:"id"`
	Name             string           `db:"name"`
	EntryFee         int64            `db:"entry_fee"`
	PrizePool        int64            `db:"prize_pool"`
	Capacity         Capacity         `db:"-"` // persisted as nullable remaining_slots
	Status           TournamentStatus `db:"status"`
	PrizeDistributed bool             `db:"prize_distributed"`
	CreatedAt        time.Time        `db:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at"`
}

// Participant represents a user's membership in a tournament. The
// (tournament_id, user_id) pair is unique; insertion order is join order.
type Participant struct {
	TournamentID int64     `db:"tournament_id"`
	UserID       int64     `db:"user_id"`
	DisplayName  string    `db:"display_name"`
	JoinedAt     time.Time `db:"joined_at"`
}

// JoinRecord is the per-user join history entry. Write-once; presence of a
// (user_id, tournament_id) pair is the authoritative already-joined signal.
type JoinRecord struct {
	ID           int64     `db:"id"`
	UserID       int64     `db:"user_id"`
	TournamentID int64     `db:"tournament_id"`
	EntryFee     int64     `db:"entry_fee"`
	JoinedAt     time.Time `db:"joined_at"`
}
