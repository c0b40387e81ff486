package postgres

import (
	"time"

	"github.com/crichq/auction-tracker/internal/domain/match"
)

type matchTableModel struct {
	ID          int64     `db:"id"`
	MatchNumber int       `db:"match_number"`
	Team1       string    `db:"team1"`
	Team2       string    `db:"team2"`
	MatchDate   time.Time `db:"match_date"`
	Venue       string    `db:"venue"`
	IsCompleted bool      `db:"is_completed"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type matchInsertModel struct {
	MatchNumber int       `db:"match_number"`
	Team1       string    `db:"team1"`
	Team2       string    `db:"team2"`
	MatchDate   time.Time `db:"match_date"`
	Venue       string    `db:"venue"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:          m.ID,
		MatchNumber: m.MatchNumber,
		Team1:       m.Team1,
		Team2:       m.Team2,
		MatchDate:   m.MatchDate,
		Venue:       m.Venue,
		IsCompleted: m.IsCompleted,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

const matchColumns = "id, match_number, team1, team2, match_date, venue, is_completed, created_at, updated_at"
