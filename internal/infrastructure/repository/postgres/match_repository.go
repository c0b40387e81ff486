package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/crichq/auction-tracker/internal/domain/match"
	qb "github.com/crichq/auction-tracker/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) (match.Match, error) {
	query, args, err := qb.InsertModel("matches", matchInsertModel{
		MatchNumber: m.MatchNumber,
		Team1:       m.Team1,
		Team2:       m.Team2,
		MatchDate:   m.MatchDate,
		Venue:       m.Venue,
	}, "RETURNING "+matchColumns)
	if err != nil {
		return match.Match{}, fmt.Errorf("build insert match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err) {
			return match.Match{}, match.ErrNumberTaken
		}
		return match.Match{}, fmt.Errorf("insert match: %w", err)
	}

	return row.toDomain(), nil
}

func (r *MatchRepository) List(ctx context.Context, filter match.ListFilter) ([]match.Match, error) {
	builder := qb.Select(matchColumns).From("matches")

	if filter.IsCompleted != nil {
		builder = builder.Where(qb.Eq("is_completed", *filter.IsCompleted))
	}
	if team := strings.TrimSpace(filter.Team); team != "" {
		builder = builder.Where(qb.Expr("(LOWER(team1) = LOWER(?) OR LOWER(team2) = LOWER(?))", team, team))
	}

	builder = builder.OrderBy("match_number").Offset(filter.Offset)
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Match, bool, error) {
	query, args, err := qb.Select(matchColumns).
		From("matches").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *MatchRepository) Update(ctx context.Context, matchID int64, changes match.Update) (match.Match, bool, error) {
	builder := qb.Update("matches")
	if changes.MatchDate != nil {
		builder = builder.Set("match_date", *changes.MatchDate)
	}
	if changes.Venue != nil {
		builder = builder.Set("venue", *changes.Venue)
	}
	if changes.IsCompleted != nil {
		builder = builder.Set("is_completed", *changes.IsCompleted)
	}
	builder = builder.SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", matchID)).
		Suffix("RETURNING " + matchColumns)

	query, args, err := builder.ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build update match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("update match: %w", err)
	}

	return row.toDomain(), true, nil
}
