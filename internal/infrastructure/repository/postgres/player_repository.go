package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/crichq/auction-tracker/internal/domain/player"
	qb "github.com/crichq/auction-tracker/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) (player.Player, error) {
	query, args, err := qb.InsertModel("players", playerInsertModel{
		Name:       p.Name,
		SourceTeam: p.SourceTeam,
		Role:       string(p.Role),
		BasePrice:  p.BasePrice,
	}, "RETURNING "+playerColumns)
	if err != nil {
		return player.Player{}, fmt.Errorf("build insert player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return player.Player{}, fmt.Errorf("insert player: %w", err)
	}

	return row.toDomain(), nil
}

func (r *PlayerRepository) List(ctx context.Context, filter player.ListFilter) ([]player.Player, error) {
	builder := qb.Select(playerColumns).From("players")

	if filter.Role != nil {
		builder = builder.Where(qb.Eq("role", string(*filter.Role)))
	}
	if team := strings.TrimSpace(filter.SourceTeam); team != "" {
		builder = builder.Where(qb.Expr("LOWER(source_team) = LOWER(?)", team))
	}
	if filter.IsSold != nil {
		if *filter.IsSold {
			builder = builder.Where(qb.IsNotNull("team_id"))
		} else {
			builder = builder.Where(qb.IsNull("team_id"))
		}
	}
	if filter.MinBasePrice != nil {
		builder = builder.Where(qb.Gte("base_price", *filter.MinBasePrice))
	}
	if filter.MaxBasePrice != nil {
		builder = builder.Where(qb.Lte("base_price", *filter.MaxBasePrice))
	}

	builder = builder.OrderBy(playerOrderClause(filter.SortBy, filter.SortDesc), "id ASC").
		Offset(filter.Offset)
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	query, args, err := qb.Select(playerColumns).
		From("players").
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID int64) ([]player.Player, error) {
	query, args, err := qb.Select(playerColumns).
		From("players").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players by team query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

// playerOrderClause maps the whitelisted sort field to a SQL clause.
// Unsold players sort as zero on sold_price so ascending order puts
// them first, mirroring the memory implementation.
func playerOrderClause(field player.SortField, desc bool) string {
	column := "id"
	switch field {
	case player.SortByName:
		column = "LOWER(name)"
	case player.SortByBasePrice:
		column = "base_price"
	case player.SortBySoldPrice:
		column = "COALESCE(sold_price, 0)"
	}

	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}
