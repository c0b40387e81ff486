package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/crichq/auction-tracker/internal/domain/team"
	qb "github.com/crichq/auction-tracker/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	query, args, err := qb.InsertModel("teams", teamInsertModel{
		Name:         t.Name,
		OwnerName:    t.OwnerName,
		InitialPurse: t.InitialPurse,
	}, "RETURNING "+teamColumns)
	if err != nil {
		return team.Team{}, fmt.Errorf("build insert team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err) {
			return team.Team{}, team.ErrNameTaken
		}
		return team.Team{}, fmt.Errorf("insert team: %w", err)
	}

	return row.toDomain(), nil
}

func (r *TeamRepository) List(ctx context.Context, offset, limit int) ([]team.Team, error) {
	builder := qb.Select(teamColumns).
		From("teams").
		OrderBy("id").
		Offset(offset)
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns).
		From("teams").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *TeamRepository) Update(ctx context.Context, teamID int64, changes team.Update) (team.Team, bool, error) {
	builder := qb.Update("teams")
	if changes.Name != nil {
		builder = builder.Set("name", *changes.Name)
	}
	if changes.OwnerName != nil {
		builder = builder.Set("owner_name", *changes.OwnerName)
	}
	if changes.InitialPurse != nil {
		builder = builder.Set("initial_purse", *changes.InitialPurse)
	}
	builder = builder.SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", teamID)).
		Suffix("RETURNING " + teamColumns)

	query, args, err := builder.ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build update team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		if isUniqueViolation(err) {
			return team.Team{}, false, team.ErrNameTaken
		}
		return team.Team{}, false, fmt.Errorf("update team: %w", err)
	}

	return row.toDomain(), true, nil
}
