package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/crichq/auction-tracker/internal/domain/dashboard"
	"github.com/crichq/auction-tracker/internal/domain/player"
)

// DashboardRepository answers the leaderboard and player-stats reads with
// single aggregate queries instead of N+1 lookups.
type DashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

const teamLeaderboardQuery = `
SELECT
	t.id AS team_id,
	t.name AS team_name,
	t.owner_name,
	COUNT(DISTINCT s.match_id) AS matches_played,
	COALESCE(SUM(s.points), 0) AS total_points
FROM teams t
LEFT JOIN players p ON p.team_id = t.id
LEFT JOIN player_scores s ON s.player_id = p.id
GROUP BY t.id, t.name, t.owner_name
ORDER BY total_points DESC, matches_played ASC, LOWER(t.name) ASC`

func (r *DashboardRepository) TeamLeaderboard(ctx context.Context) ([]dashboard.TeamStanding, error) {
	var rows []struct {
		TeamID        int64   `db:"team_id"`
		TeamName      string  `db:"team_name"`
		OwnerName     string  `db:"owner_name"`
		MatchesPlayed int     `db:"matches_played"`
		TotalPoints   float64 `db:"total_points"`
	}
	if err := r.db.SelectContext(ctx, &rows, teamLeaderboardQuery); err != nil {
		return nil, fmt.Errorf("load team leaderboard: %w", err)
	}

	out := make([]dashboard.TeamStanding, 0, len(rows))
	for _, row := range rows {
		standing := dashboard.TeamStanding{
			TeamID:        row.TeamID,
			TeamName:      row.TeamName,
			OwnerName:     row.OwnerName,
			MatchesPlayed: row.MatchesPlayed,
			TotalPoints:   row.TotalPoints,
		}
		if row.MatchesPlayed > 0 {
			standing.AveragePerMatch = row.TotalPoints / float64(row.MatchesPlayed)
		}
		out = append(out, standing)
	}

	return out, nil
}

const topPlayersQuery = `
SELECT
	p.id AS player_id,
	p.name,
	p.role,
	p.source_team,
	t.name AS fantasy_team,
	COUNT(s.id) AS matches_played,
	COALESCE(SUM(s.points), 0) AS total_points,
	COALESCE(AVG(s.points), 0) AS average_points
FROM players p
JOIN player_scores s ON s.player_id = p.id
LEFT JOIN teams t ON t.id = p.team_id
WHERE ($1::text IS NULL OR p.role = $1)
GROUP BY p.id, p.name, p.role, p.source_team, t.name
HAVING COUNT(s.id) >= $2
ORDER BY average_points DESC, p.id ASC
LIMIT $3`

func (r *DashboardRepository) TopPlayers(ctx context.Context, filter dashboard.TopPlayersFilter) ([]dashboard.TopPlayer, error) {
	var role *string
	if filter.Role != nil {
		v := string(*filter.Role)
		role = &v
	}

	var rows []struct {
		PlayerID      int64   `db:"player_id"`
		Name          string  `db:"name"`
		Role          string  `db:"role"`
		SourceTeam    string  `db:"source_team"`
		FantasyTeam   *string `db:"fantasy_team"`
		MatchesPlayed int     `db:"matches_played"`
		TotalPoints   float64 `db:"total_points"`
		AveragePoints float64 `db:"average_points"`
	}
	if err := r.db.SelectContext(ctx, &rows, topPlayersQuery, role, filter.MinMatches, filter.Limit); err != nil {
		return nil, fmt.Errorf("load top players: %w", err)
	}

	out := make([]dashboard.TopPlayer, 0, len(rows))
	for _, row := range rows {
		out = append(out, dashboard.TopPlayer{
			PlayerID:      row.PlayerID,
			Name:          row.Name,
			Role:          player.Role(row.Role),
			SourceTeam:    row.SourceTeam,
			FantasyTeam:   row.FantasyTeam,
			MatchesPlayed: row.MatchesPlayed,
			TotalPoints:   row.TotalPoints,
			AveragePoints: row.AveragePoints,
		})
	}

	return out, nil
}

const playerAggregateQuery = `
SELECT
	COUNT(*) AS matches_played,
	COALESCE(SUM(points), 0) AS total_points,
	COALESCE(AVG(points), 0) AS average_points,
	COALESCE(MAX(points), 0) AS highest_score,
	COALESCE(MIN(points), 0) AS lowest_score
FROM player_scores
WHERE player_id = $1`

func (r *DashboardRepository) PlayerAggregate(ctx context.Context, playerID int64) (dashboard.PlayerAggregate, error) {
	var row struct {
		MatchesPlayed int     `db:"matches_played"`
		TotalPoints   float64 `db:"total_points"`
		AveragePoints float64 `db:"average_points"`
		HighestScore  float64 `db:"highest_score"`
		LowestScore   float64 `db:"lowest_score"`
	}
	if err := r.db.GetContext(ctx, &row, playerAggregateQuery, playerID); err != nil {
		return dashboard.PlayerAggregate{}, fmt.Errorf("load player aggregate: %w", err)
	}

	return dashboard.PlayerAggregate{
		MatchesPlayed: row.MatchesPlayed,
		TotalPoints:   row.TotalPoints,
		AveragePoints: row.AveragePoints,
		HighestScore:  row.HighestScore,
		LowestScore:   row.LowestScore,
	}, nil
}

const recentPerformancesQuery = `
SELECT
	m.match_number,
	m.team1,
	m.team2,
	m.match_date,
	s.points
FROM player_scores s
JOIN matches m ON m.id = s.match_id
WHERE s.player_id = $1
ORDER BY m.match_date DESC, m.match_number DESC
LIMIT $2`

func (r *DashboardRepository) RecentPerformances(ctx context.Context, playerID int64, limit int) ([]dashboard.Performance, error) {
	var rows []struct {
		MatchNumber int       `db:"match_number"`
		Team1       string    `db:"team1"`
		Team2       string    `db:"team2"`
		MatchDate   time.Time `db:"match_date"`
		Points      float64   `db:"points"`
	}
	if err := r.db.SelectContext(ctx, &rows, recentPerformancesQuery, playerID, limit); err != nil {
		return nil, fmt.Errorf("load recent performances: %w", err)
	}

	out := make([]dashboard.Performance, 0, len(rows))
	for _, row := range rows {
		out = append(out, dashboard.Performance{
			MatchNumber: row.MatchNumber,
			Pairing:     fmt.Sprintf("%s vs %s", row.Team1, row.Team2),
			MatchDate:   row.MatchDate,
			Points:      row.Points,
		})
	}

	return out, nil
}
