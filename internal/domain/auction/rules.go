package auction

import (
	"errors"
	"fmt"

	"github.com/crichq/auction-tracker/internal/domain/team"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrTeamNotFound      = errors.New("team not found")
	ErrAlreadySold       = errors.New("player is already sold")
	ErrNotSold           = errors.New("player is not sold")
	ErrTeamFull          = errors.New("team has reached maximum squad size")
	ErrInsufficientPurse = errors.New("team does not have sufficient purse")
	ErrInvalidPrice      = errors.New("purchase price must be greater than zero")
	ErrPriceRequired     = errors.New("sold price is required when assigning a player to a team")
)

// Rules stores auction validation parameters.
type Rules struct {
	MaxSquadSize int
}

func DefaultRules() Rules {
	return Rules{MaxSquadSize: 16}
}

// ValidateAssignment checks a prospective purchase against the squad-size
// and purse limits. It is the single validation routine shared by the
// dedicated purchase path and the generic player-update path, so the two
// cannot drift apart. squadSize and spent describe the buying team's
// current roster; spent is the sum of sold prices of its owned players.
func ValidateAssignment(t team.Team, squadSize int, spent, price float64, rules Rules) error {
	if price <= 0 {
		return fmt.Errorf("%w: got %.2f", ErrInvalidPrice, price)
	}
	if squadSize >= rules.MaxSquadSize {
		return fmt.Errorf("%w: team=%s max=%d", ErrTeamFull, t.Name, rules.MaxSquadSize)
	}
	if remaining := t.InitialPurse - spent; remaining < price {
		return fmt.Errorf("%w: team=%s remaining=%.2f price=%.2f", ErrInsufficientPurse, t.Name, remaining, price)
	}

	return nil
}
