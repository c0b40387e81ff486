package match

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrSameTeams rejects a match where both sides are the same club.
	ErrSameTeams = errors.New("a match requires two different teams")
	// ErrNumberTaken reports a duplicate match number.
	ErrNumberTaken = errors.New("match number already exists")
)

// Match is a scheduled fixture between two source teams. MatchNumber,
// Team1 and Team2 are immutable after creation; IsCompleted flips to true
// exactly once, when the match's scores are recorded in one batch.
type Match struct {
	ID          int64
	MatchNumber int
	Team1       string
	Team2       string
	MatchDate   time.Time
	Venue       string
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (m Match) Validate() error {
	if m.MatchNumber <= 0 {
		return fmt.Errorf("match number must be greater than zero")
	}
	team1 := strings.TrimSpace(m.Team1)
	team2 := strings.TrimSpace(m.Team2)
	if team1 == "" || team2 == "" {
		return fmt.Errorf("both match teams are required")
	}
	if strings.EqualFold(team1, team2) {
		return ErrSameTeams
	}
	if m.MatchDate.IsZero() {
		return fmt.Errorf("match date is required")
	}

	return nil
}

// ListFilter narrows match listings.
type ListFilter struct {
	IsCompleted *bool
	Team        string
	Offset      int
	Limit       int
}

// Update carries the mutable match fields. Match number and the two teams
// stay fixed to keep recorded scores meaningful.
type Update struct {
	MatchDate   *time.Time
	Venue       *string
	IsCompleted *bool
}
