package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/crichq/auction-tracker/internal/domain/auction"
	"github.com/crichq/auction-tracker/internal/domain/player"
	"github.com/crichq/auction-tracker/internal/domain/team"
)

// AuctionRepository serializes the player mutations that carry auction
// invariants. Every mutation locks the player row and the buying team row
// FOR UPDATE and re-runs the assignment validation inside the transaction,
// so two concurrent purchases cannot double-sell a player or overspend a
// purse.
type AuctionRepository struct {
	db    *sqlx.DB
	rules auction.Rules
}

func NewAuctionRepository(db *sqlx.DB, rules auction.Rules) *AuctionRepository {
	return &AuctionRepository{db: db, rules: rules}
}

func (r *AuctionRepository) Purchase(ctx context.Context, playerID, teamID int64, price float64) (player.Player, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return player.Player{}, fmt.Errorf("begin purchase tx: %w", err)
	}
	defer tx.Rollback()

	p, err := lockPlayer(ctx, tx, playerID)
	if err != nil {
		return player.Player{}, err
	}
	if p.IsSold() {
		return player.Player{}, fmt.Errorf("%w: player=%s", auction.ErrAlreadySold, p.Name)
	}

	t, err := lockTeam(ctx, tx, teamID)
	if err != nil {
		return player.Player{}, err
	}

	size, spent, err := teamRoster(ctx, tx, teamID, 0)
	if err != nil {
		return player.Player{}, err
	}
	if err := auction.ValidateAssignment(t, size, spent, price, r.rules); err != nil {
		return player.Player{}, err
	}

	var row playerTableModel
	err = tx.GetContext(ctx, &row,
		"UPDATE players SET team_id = $1, sold_price = $2, updated_at = NOW() WHERE id = $3 RETURNING "+playerColumns,
		teamID, price, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("apply purchase: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return player.Player{}, fmt.Errorf("commit purchase tx: %w", err)
	}

	return row.toDomain(), nil
}

func (r *AuctionRepository) Reset(ctx context.Context, playerID int64) (player.Player, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return player.Player{}, fmt.Errorf("begin reset tx: %w", err)
	}
	defer tx.Rollback()

	p, err := lockPlayer(ctx, tx, playerID)
	if err != nil {
		return player.Player{}, err
	}
	if !p.IsSold() {
		return player.Player{}, fmt.Errorf("%w: player=%s", auction.ErrNotSold, p.Name)
	}

	var row playerTableModel
	err = tx.GetContext(ctx, &row,
		"UPDATE players SET team_id = NULL, sold_price = NULL, updated_at = NOW() WHERE id = $1 RETURNING "+playerColumns,
		playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("apply reset: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return player.Player{}, fmt.Errorf("commit reset tx: %w", err)
	}

	return row.toDomain(), nil
}

func (r *AuctionRepository) UpdatePlayer(ctx context.Context, playerID int64, changes player.Update) (player.Player, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return player.Player{}, fmt.Errorf("begin update player tx: %w", err)
	}
	defer tx.Rollback()

	p, err := lockPlayer(ctx, tx, playerID)
	if err != nil {
		return player.Player{}, err
	}

	if changes.Name != nil {
		p.Name = *changes.Name
	}
	if changes.SourceTeam != nil {
		p.SourceTeam = *changes.SourceTeam
	}
	if changes.Role != nil {
		p.Role = *changes.Role
	}
	if changes.BasePrice != nil {
		p.BasePrice = *changes.BasePrice
	}

	targetTeamID := p.TeamID
	if changes.TeamIDSet {
		targetTeamID = changes.TeamID
	}
	targetSoldPrice := p.SoldPrice
	if changes.SoldPriceSet {
		targetSoldPrice = changes.SoldPrice
	}

	switch {
	case targetTeamID == nil:
		// Clearing the team always clears the price with it.
		targetSoldPrice = nil
	case targetSoldPrice == nil:
		return player.Player{}, auction.ErrPriceRequired
	default:
		assignmentChanged := p.TeamID == nil || *p.TeamID != *targetTeamID ||
			p.SoldPrice == nil || *p.SoldPrice != *targetSoldPrice
		if assignmentChanged {
			t, err := lockTeam(ctx, tx, *targetTeamID)
			if err != nil {
				return player.Player{}, err
			}

			// Exclude the player's own slot so re-pricing within the
			// same team counts against the limits correctly.
			size, spent, err := teamRoster(ctx, tx, *targetTeamID, playerID)
			if err != nil {
				return player.Player{}, err
			}
			if err := auction.ValidateAssignment(t, size, spent, *targetSoldPrice, r.rules); err != nil {
				return player.Player{}, err
			}
		}
	}

	var row playerTableModel
	err = tx.GetContext(ctx, &row,
		`UPDATE players
		 SET name = $1, source_team = $2, role = $3, base_price = $4,
		     team_id = $5, sold_price = $6, updated_at = NOW()
		 WHERE id = $7
		 RETURNING `+playerColumns,
		p.Name, p.SourceTeam, string(p.Role), p.BasePrice, targetTeamID, targetSoldPrice, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("apply player update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return player.Player{}, fmt.Errorf("commit update player tx: %w", err)
	}

	return row.toDomain(), nil
}

func lockPlayer(ctx context.Context, tx *sqlx.Tx, playerID int64) (player.Player, error) {
	var row playerTableModel
	err := tx.GetContext(ctx, &row,
		"SELECT "+playerColumns+" FROM players WHERE id = $1 FOR UPDATE", playerID)
	if err != nil {
		if isNotFound(err) {
			return player.Player{}, fmt.Errorf("%w: id=%d", auction.ErrPlayerNotFound, playerID)
		}
		return player.Player{}, fmt.Errorf("lock player: %w", err)
	}

	return row.toDomain(), nil
}

func lockTeam(ctx context.Context, tx *sqlx.Tx, teamID int64) (team.Team, error) {
	var row teamTableModel
	err := tx.GetContext(ctx, &row,
		"SELECT "+teamColumns+" FROM teams WHERE id = $1 FOR UPDATE", teamID)
	if err != nil {
		if isNotFound(err) {
			return team.Team{}, fmt.Errorf("%w: id=%d", auction.ErrTeamNotFound, teamID)
		}
		return team.Team{}, fmt.Errorf("lock team: %w", err)
	}

	return row.toDomain(), nil
}

// teamRoster counts the team's owned players and their total sold price,
// skipping excludePlayerID when non-zero.
func teamRoster(ctx context.Context, tx *sqlx.Tx, teamID, excludePlayerID int64) (int, float64, error) {
	var roster struct {
		SquadSize int     `db:"squad_size"`
		Spent     float64 `db:"spent"`
	}
	err := tx.GetContext(ctx, &roster,
		`SELECT COUNT(*) AS squad_size, COALESCE(SUM(sold_price), 0) AS spent
		 FROM players
		 WHERE team_id = $1 AND id <> $2`,
		teamID, excludePlayerID)
	if err != nil {
		return 0, 0, fmt.Errorf("load team roster: %w", err)
	}

	return roster.SquadSize, roster.Spent, nil
}
