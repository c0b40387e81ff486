package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/crichq/auction-tracker/internal/domain/player"
	"github.com/crichq/auction-tracker/internal/domain/score"
	qb "github.com/crichq/auction-tracker/internal/platform/querybuilder"
)

type scoreDetailedModel struct {
	ID               int64     `db:"id"`
	PlayerID         int64     `db:"player_id"`
	MatchID          int64     `db:"match_id"`
	Points           float64   `db:"points"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
	PlayerName       string    `db:"player_name"`
	PlayerRole       string    `db:"player_role"`
	PlayerSourceTeam string    `db:"player_source_team"`
	FantasyTeamName  *string   `db:"fantasy_team_name"`
}

func (m scoreDetailedModel) toDomain() score.Detailed {
	return score.Detailed{
		Score: score.Score{
			ID:        m.ID,
			PlayerID:  m.PlayerID,
			MatchID:   m.MatchID,
			Points:    m.Points,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		PlayerName:       m.PlayerName,
		PlayerRole:       player.Role(m.PlayerRole),
		PlayerSourceTeam: m.PlayerSourceTeam,
		FantasyTeamName:  m.FantasyTeamName,
	}
}

const detailedScoreSelect = `
SELECT
	s.id, s.player_id, s.match_id, s.points, s.created_at, s.updated_at,
	p.name AS player_name,
	p.role AS player_role,
	p.source_team AS player_source_team,
	t.name AS fantasy_team_name
FROM player_scores s
JOIN players p ON p.id = s.player_id
LEFT JOIN teams t ON t.id = p.team_id`

// ScoreRepository persists match scores. The batch path runs in a single
// transaction that locks the match row, so a concurrent batch for the same
// match sees the completion flag it is about to race against.
type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) RecordBatch(ctx context.Context, matchID int64, entries []score.Entry) ([]score.Detailed, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin score batch tx: %w", err)
	}
	defer tx.Rollback()

	var m matchTableModel
	err = tx.GetContext(ctx, &m,
		"SELECT "+matchColumns+" FROM matches WHERE id = $1 FOR UPDATE", matchID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: id=%d", score.ErrMatchNotFound, matchID)
		}
		return nil, fmt.Errorf("lock match: %w", err)
	}
	if m.IsCompleted {
		return nil, fmt.Errorf("%w: match=%d", score.ErrMatchCompleted, matchID)
	}

	playerIDs := make([]int64, 0, len(entries))
	for _, e := range entries {
		playerIDs = append(playerIDs, e.PlayerID)
	}

	if err := checkPlayersExist(ctx, tx, playerIDs); err != nil {
		return nil, err
	}
	if err := checkNoExistingScores(ctx, tx, matchID, playerIDs); err != nil {
		return nil, err
	}

	insert := qb.InsertInto("player_scores").Columns("player_id", "match_id", "points")
	for _, e := range entries {
		insert = insert.Values(e.PlayerID, matchID, e.Points)
	}
	query, args, err := insert.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build insert scores query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("insert scores: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE matches SET is_completed = TRUE, updated_at = NOW() WHERE id = $1", matchID)
	if err != nil {
		return nil, fmt.Errorf("mark match completed: %w", err)
	}

	var rows []scoreDetailedModel
	err = tx.SelectContext(ctx, &rows,
		detailedScoreSelect+" WHERE s.match_id = $1 ORDER BY s.points DESC, s.player_id ASC", matchID)
	if err != nil {
		return nil, fmt.Errorf("load recorded scores: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit score batch tx: %w", err)
	}

	return detailedToDomain(rows), nil
}

func (r *ScoreRepository) ListByMatch(ctx context.Context, matchID int64) ([]score.Detailed, error) {
	var rows []scoreDetailedModel
	err := r.db.SelectContext(ctx, &rows,
		detailedScoreSelect+" WHERE s.match_id = $1 ORDER BY s.points DESC, s.player_id ASC", matchID)
	if err != nil {
		return nil, fmt.Errorf("list scores by match: %w", err)
	}

	return detailedToDomain(rows), nil
}

func (r *ScoreRepository) ListByPlayer(ctx context.Context, playerID int64) ([]score.Detailed, error) {
	var rows []scoreDetailedModel
	err := r.db.SelectContext(ctx, &rows,
		detailedScoreSelect+" WHERE s.player_id = $1 ORDER BY s.match_id ASC", playerID)
	if err != nil {
		return nil, fmt.Errorf("list scores by player: %w", err)
	}

	return detailedToDomain(rows), nil
}

func checkPlayersExist(ctx context.Context, tx *sqlx.Tx, playerIDs []int64) error {
	query, args, err := qb.Select("id").
		From("players").
		Where(qb.In("id", idArgs(playerIDs))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build player existence query: %w", err)
	}

	var found []int64
	if err := tx.SelectContext(ctx, &found, query, args...); err != nil {
		return fmt.Errorf("check players exist: %w", err)
	}
	if len(found) == len(playerIDs) {
		return nil
	}

	foundSet := make(map[int64]struct{}, len(found))
	for _, id := range found {
		foundSet[id] = struct{}{}
	}
	missing := make([]int64, 0, len(playerIDs)-len(found))
	for _, id := range playerIDs {
		if _, ok := foundSet[id]; !ok {
			missing = append(missing, id)
		}
	}

	return fmt.Errorf("%w: ids=%v", score.ErrPlayersNotFound, missing)
}

func checkNoExistingScores(ctx context.Context, tx *sqlx.Tx, matchID int64, playerIDs []int64) error {
	query, args, err := qb.Select("player_id").
		From("player_scores").
		Where(qb.Eq("match_id", matchID), qb.In("player_id", idArgs(playerIDs))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build duplicate scores query: %w", err)
	}

	var existing []int64
	if err := tx.SelectContext(ctx, &existing, query, args...); err != nil {
		return fmt.Errorf("check duplicate scores: %w", err)
	}
	if len(existing) > 0 {
		return fmt.Errorf("%w: match=%d players=%v", score.ErrDuplicateScores, matchID, existing)
	}

	return nil
}

func idArgs(ids []int64) []any {
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, id)
	}

	return out
}

func detailedToDomain(rows []scoreDetailedModel) []score.Detailed {
	out := make([]score.Detailed, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out
}
