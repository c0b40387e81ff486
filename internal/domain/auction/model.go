package auction

import "github.com/crichq/auction-tracker/internal/domain/player"

// OverallStats aggregates all sold players. Zero rows yield zeroes, never
// nulls or errors.
type OverallStats struct {
	PlayersSold  int
	TotalSpent   float64
	AveragePrice float64
	HighestPrice float64
	LowestPrice  float64
}

// TeamSpend is a per-team auction breakdown. RemainingPurse and
// PurseUtilization are derived at read time from the sold-price ledger.
type TeamSpend struct {
	TeamID           int64
	TeamName         string
	PlayersBought    int
	TotalSpent       float64
	InitialPurse     float64
	RemainingPurse   float64
	PurseUtilization float64
}

// RoleSpend breaks sold players down by role.
type RoleSpend struct {
	Role         player.Role
	PlayersSold  int
	TotalSpent   float64
	AveragePrice float64
	HighestPrice float64
	LowestPrice  float64
}

// Stats is the full auction statistics payload.
type Stats struct {
	Overall      OverallStats
	Teams        []TeamSpend
	Roles        []RoleSpend
	UnsoldByRole map[player.Role]int
}
