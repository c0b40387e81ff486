package team

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNameTaken reports a team name collision; names are unique league-wide.
var ErrNameTaken = errors.New("team name is already taken")

// Team is a fantasy franchise bidding in the auction. Remaining purse is
// never stored; it is derived from InitialPurse minus the sold prices of
// the players the team currently owns.
type Team struct {
	ID           int64
	Name         string
	OwnerName    string
	InitialPurse float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if strings.TrimSpace(t.OwnerName) == "" {
		return fmt.Errorf("team owner name is required")
	}
	if t.InitialPurse <= 0 {
		return fmt.Errorf("team initial purse must be greater than zero")
	}

	return nil
}

// Update carries the mutable team fields; nil means leave unchanged.
type Update struct {
	Name         *string
	OwnerName    *string
	InitialPurse *float64
}
