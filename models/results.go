package models

// RegistrationResult is returned after a successful tournament registration
type RegistrationResult struct {
	TournamentID      int64
	UserID            int64
	EntryFeePaid      int64
	NewBalance        int64
	RemainingCapacity Capacity
}

// Placement identifies a winner's rank in a tournament
type Placement string

const (
	PlacementFirst  Placement = "first"
	PlacementSecond Placement = "second"
	PlacementThird  Placement = "third"
)

// Winners holds the ranked winner user IDs for prize distribution.
// A zero value means the slot is empty and its share is forfeited.
type Winners struct {
	First  int64
	Second int64
	Third  int64
}

// PrizePayout is a single winner's credited share
type PrizePayout struct {
	Placement Placement
	UserID    int64
	Amount    int64
}

// PrizeDistributionResult is returned after a successful prize distribution
type PrizeDistributionResult struct {
	TournamentID int64
	PrizePool    int64
	Payouts      []PrizePayout
}
