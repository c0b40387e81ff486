package dashboard

import "context"

// Repository serves the leaderboard and player-stats aggregations. All
// methods are pure reads over current state.
type Repository interface {
	TeamLeaderboard(ctx context.Context) ([]TeamStanding, error)
	TopPlayers(ctx context.Context, filter TopPlayersFilter) ([]TopPlayer, error)
	PlayerAggregate(ctx context.Context, playerID int64) (PlayerAggregate, error)
	RecentPerformances(ctx context.Context, playerID int64, limit int) ([]Performance, error)
}
