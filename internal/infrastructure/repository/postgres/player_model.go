package postgres

import (
	"time"

	"github.com/crichq/auction-tracker/internal/domain/player"
)

type playerTableModel struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`
	SourceTeam string    `db:"source_team"`
	Role       string    `db:"role"`
	BasePrice  float64   `db:"base_price"`
	SoldPrice  *float64  `db:"sold_price"`
	TeamID     *int64    `db:"team_id"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type playerInsertModel struct {
	Name       string  `db:"name"`
	SourceTeam string  `db:"source_team"`
	Role       string  `db:"role"`
	BasePrice  float64 `db:"base_price"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:         m.ID,
		Name:       m.Name,
		SourceTeam: m.SourceTeam,
		Role:       player.Role(m.Role),
		BasePrice:  m.BasePrice,
		SoldPrice:  m.SoldPrice,
		TeamID:     m.TeamID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

const playerColumns = "id, name, source_team, role, base_price, sold_price, team_id, created_at, updated_at"
