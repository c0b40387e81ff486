package postgres

import (
	"time"

	"github.com/crichq/auction-tracker/internal/domain/team"
)

type teamTableModel struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	OwnerName    string    `db:"owner_name"`
	InitialPurse float64   `db:"initial_purse"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	Name         string  `db:"name"`
	OwnerName    string  `db:"owner_name"`
	InitialPurse float64 `db:"initial_purse"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:           m.ID,
		Name:         m.Name,
		OwnerName:    m.OwnerName,
		InitialPurse: m.InitialPurse,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

const teamColumns = "id, name, owner_name, initial_purse, created_at, updated_at"
