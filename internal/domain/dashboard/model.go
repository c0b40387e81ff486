package dashboard

import (
	"time"

	"github.com/crichq/auction-tracker/internal/domain/player"
)

// TeamStanding is one leaderboard row. Ordering is total points
// descending, matches played ascending (fewer matches for the same points
// ranks higher), then team name ascending for determinism.
type TeamStanding struct {
	TeamID          int64
	TeamName        string
	OwnerName       string
	MatchesPlayed   int
	TotalPoints     float64
	AveragePerMatch float64
}

// TopPlayer ranks players by average points per match. Ties break on
// player id ascending.
type TopPlayer struct {
	PlayerID      int64
	Name          string
	Role          player.Role
	SourceTeam    string
	FantasyTeam   *string
	MatchesPlayed int
	TotalPoints   float64
	AveragePoints float64
}

// TopPlayersFilter narrows the top-players ranking.
type TopPlayersFilter struct {
	Role       *player.Role
	MinMatches int
	Limit      int
}

// PlayerAggregate is a single player's career line across all matches.
type PlayerAggregate struct {
	MatchesPlayed int
	TotalPoints   float64
	AveragePoints float64
	HighestScore  float64
	LowestScore   float64
}

// Performance is one match outing, annotated with the opponent pairing
// ("Team1 vs Team2") and the match date.
type Performance struct {
	MatchNumber int
	Pairing     string
	MatchDate   time.Time
	Points      float64
}
