package score

import (
	"errors"
	"time"

	"github.com/crichq/auction-tracker/internal/domain/player"
)

var (
	ErrMatchNotFound   = errors.New("match not found")
	ErrMatchCompleted  = errors.New("cannot add scores for completed match")
	ErrPlayersNotFound = errors.New("one or more players not found")
	ErrDuplicateScores = errors.New("scores already exist for some players in this match")
	ErrNoScores        = errors.New("no scores found for this match")
)

// Score is one player's fantasy points in one match. At most one row
// exists per (player, match); rows are written only by the batch path and
// are immutable afterwards.
type Score struct {
	ID        int64
	PlayerID  int64
	MatchID   int64
	Points    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Entry is one (player, points) item in a batch submission.
type Entry struct {
	PlayerID int64
	Points   float64
}

// Detailed is a score enriched with player display fields for responses.
type Detailed struct {
	Score
	PlayerName       string
	PlayerRole       player.Role
	PlayerSourceTeam string
	FantasyTeamName  *string
}
