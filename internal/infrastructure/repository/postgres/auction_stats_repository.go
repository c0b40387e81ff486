package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/crichq/auction-tracker/internal/domain/auction"
	"github.com/crichq/auction-tracker/internal/domain/player"
)

// AuctionStatsRepository serves the read-only auction aggregations straight
// from SQL. All aggregates COALESCE to zero so an empty auction returns
// zeroed stats instead of nulls.
type AuctionStatsRepository struct {
	db *sqlx.DB
}

func NewAuctionStatsRepository(db *sqlx.DB) *AuctionStatsRepository {
	return &AuctionStatsRepository{db: db}
}

const overallStatsQuery = `
SELECT
	COUNT(*) AS players_sold,
	COALESCE(SUM(sold_price), 0) AS total_spent,
	COALESCE(AVG(sold_price), 0) AS average_price,
	COALESCE(MAX(sold_price), 0) AS highest_price,
	COALESCE(MIN(sold_price), 0) AS lowest_price
FROM players
WHERE team_id IS NOT NULL AND sold_price IS NOT NULL`

func (r *AuctionStatsRepository) OverallStats(ctx context.Context) (auction.OverallStats, error) {
	var row struct {
		PlayersSold  int     `db:"players_sold"`
		TotalSpent   float64 `db:"total_spent"`
		AveragePrice float64 `db:"average_price"`
		HighestPrice float64 `db:"highest_price"`
		LowestPrice  float64 `db:"lowest_price"`
	}
	if err := r.db.GetContext(ctx, &row, overallStatsQuery); err != nil {
		return auction.OverallStats{}, fmt.Errorf("load overall auction stats: %w", err)
	}

	return auction.OverallStats{
		PlayersSold:  row.PlayersSold,
		TotalSpent:   row.TotalSpent,
		AveragePrice: row.AveragePrice,
		HighestPrice: row.HighestPrice,
		LowestPrice:  row.LowestPrice,
	}, nil
}

const teamSpendsQuery = `
SELECT
	t.id AS team_id,
	t.name AS team_name,
	t.initial_purse,
	COUNT(p.id) AS players_bought,
	COALESCE(SUM(p.sold_price), 0) AS total_spent
FROM teams t
LEFT JOIN players p ON p.team_id = t.id AND p.sold_price IS NOT NULL
GROUP BY t.id, t.name, t.initial_purse
ORDER BY total_spent DESC, LOWER(t.name) ASC`

func (r *AuctionStatsRepository) TeamSpends(ctx context.Context) ([]auction.TeamSpend, error) {
	var rows []struct {
		TeamID        int64   `db:"team_id"`
		TeamName      string  `db:"team_name"`
		InitialPurse  float64 `db:"initial_purse"`
		PlayersBought int     `db:"players_bought"`
		TotalSpent    float64 `db:"total_spent"`
	}
	if err := r.db.SelectContext(ctx, &rows, teamSpendsQuery); err != nil {
		return nil, fmt.Errorf("load team spends: %w", err)
	}

	out := make([]auction.TeamSpend, 0, len(rows))
	for _, row := range rows {
		spend := auction.TeamSpend{
			TeamID:         row.TeamID,
			TeamName:       row.TeamName,
			PlayersBought:  row.PlayersBought,
			TotalSpent:     row.TotalSpent,
			InitialPurse:   row.InitialPurse,
			RemainingPurse: row.InitialPurse - row.TotalSpent,
		}
		if row.InitialPurse > 0 {
			spend.PurseUtilization = row.TotalSpent / row.InitialPurse * 100
		}
		out = append(out, spend)
	}

	return out, nil
}

const roleSpendsQuery = `
SELECT
	role,
	COUNT(*) AS players_sold,
	COALESCE(SUM(sold_price), 0) AS total_spent,
	COALESCE(AVG(sold_price), 0) AS average_price,
	COALESCE(MAX(sold_price), 0) AS highest_price,
	COALESCE(MIN(sold_price), 0) AS lowest_price
FROM players
WHERE team_id IS NOT NULL AND sold_price IS NOT NULL
GROUP BY role
ORDER BY CASE role
	WHEN 'BAT' THEN 1
	WHEN 'BOWL' THEN 2
	WHEN 'AR' THEN 3
	WHEN 'WK' THEN 4
END`

func (r *AuctionStatsRepository) RoleSpends(ctx context.Context) ([]auction.RoleSpend, error) {
	var rows []struct {
		Role         string  `db:"role"`
		PlayersSold  int     `db:"players_sold"`
		TotalSpent   float64 `db:"total_spent"`
		AveragePrice float64 `db:"average_price"`
		HighestPrice float64 `db:"highest_price"`
		LowestPrice  float64 `db:"lowest_price"`
	}
	if err := r.db.SelectContext(ctx, &rows, roleSpendsQuery); err != nil {
		return nil, fmt.Errorf("load role spends: %w", err)
	}

	out := make([]auction.RoleSpend, 0, len(rows))
	for _, row := range rows {
		out = append(out, auction.RoleSpend{
			Role:         player.Role(row.Role),
			PlayersSold:  row.PlayersSold,
			TotalSpent:   row.TotalSpent,
			AveragePrice: row.AveragePrice,
			HighestPrice: row.HighestPrice,
			LowestPrice:  row.LowestPrice,
		})
	}

	return out, nil
}

const unsoldByRoleQuery = `
SELECT role, COUNT(*) AS unsold
FROM players
WHERE team_id IS NULL
GROUP BY role`

func (r *AuctionStatsRepository) UnsoldCountByRole(ctx context.Context) (map[player.Role]int, error) {
	var rows []struct {
		Role   string `db:"role"`
		Unsold int    `db:"unsold"`
	}
	if err := r.db.SelectContext(ctx, &rows, unsoldByRoleQuery); err != nil {
		return nil, fmt.Errorf("load unsold counts: %w", err)
	}

	out := make(map[player.Role]int, len(player.AllRoles))
	for role := range player.AllRoles {
		out[role] = 0
	}
	for _, row := range rows {
		out[player.Role(row.Role)] = row.Unsold
	}

	return out, nil
}
