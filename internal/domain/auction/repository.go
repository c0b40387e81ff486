package auction

import (
	"context"

	"github.com/crichq/auction-tracker/internal/domain/player"
)

// Repository owns the player mutations that carry auction invariants.
// Implementations must serialize Purchase and UpdatePlayer per player and
// per team (row locks in Postgres, a store mutex in memory) and re-run
// ValidateAssignment inside that exclusive section, so that two purchases
// racing past request-time validation cannot double-sell a player or
// overspend a purse.
type Repository interface {
	Purchase(ctx context.Context, playerID, teamID int64, price float64) (player.Player, error)
	Reset(ctx context.Context, playerID int64) (player.Player, error)
	UpdatePlayer(ctx context.Context, playerID int64, changes player.Update) (player.Player, error)
}

// StatsRepository serves the read-only auction aggregations. The four
// queries are independent and may run concurrently.
type StatsRepository interface {
	OverallStats(ctx context.Context) (OverallStats, error)
	TeamSpends(ctx context.Context) ([]TeamSpend, error)
	RoleSpends(ctx context.Context) ([]RoleSpend, error)
	UnsoldCountByRole(ctx context.Context) (map[player.Role]int, error)
}
