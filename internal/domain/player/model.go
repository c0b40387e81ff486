package player

import (
	"fmt"
	"strings"
	"time"
)

// Role is a player's on-field discipline.
type Role string

const (
	RoleBatter       Role = "BAT"
	RoleBowler       Role = "BOWL"
	RoleAllRounder   Role = "AR"
	RoleWicketKeeper Role = "WK"
)

// AllRoles whitelists the valid roles for validation and grouping.
var AllRoles = map[Role]struct{}{
	RoleBatter:       {},
	RoleBowler:       {},
	RoleAllRounder:   {},
	RoleWicketKeeper: {},
}

// Player is an auctionable cricketer. SourceTeam is the real-world club
// the player belongs to, distinct from the fantasy team that buys them.
// A player is sold iff both TeamID and SoldPrice are set; the purchase
// and reset paths always flip the pair together.
type Player struct {
	ID         int64
	Name       string
	SourceTeam string
	Role       Role
	BasePrice  float64
	SoldPrice  *float64
	TeamID     *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p Player) IsSold() bool {
	return p.TeamID != nil && p.SoldPrice != nil
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if strings.TrimSpace(p.SourceTeam) == "" {
		return fmt.Errorf("player source team is required")
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return fmt.Errorf("unknown player role %q", p.Role)
	}
	if p.BasePrice <= 0 {
		return fmt.Errorf("player base price must be greater than zero")
	}

	return nil
}

// SortField enumerates the sortable columns. Sorting is restricted to this
// whitelist instead of accepting arbitrary field names.
type SortField string

const (
	SortByName      SortField = "name"
	SortByBasePrice SortField = "base_price"
	SortBySoldPrice SortField = "sold_price"
)

func ParseSortField(v string) (SortField, error) {
	switch SortField(strings.ToLower(strings.TrimSpace(v))) {
	case SortByName:
		return SortByName, nil
	case SortByBasePrice:
		return SortByBasePrice, nil
	case SortBySoldPrice:
		return SortBySoldPrice, nil
	default:
		return "", fmt.Errorf("unsupported sort field %q", v)
	}
}

// ListFilter narrows and orders player listings.
type ListFilter struct {
	Role         *Role
	SourceTeam   string
	IsSold       *bool
	MinBasePrice *float64
	MaxBasePrice *float64
	SortBy       SortField
	SortDesc     bool
	Offset       int
	Limit        int
}

// Update carries the general player field changes; nil means unchanged.
// TeamIDSet/SoldPriceSet distinguish "clear the value" from "leave it".
type Update struct {
	Name         *string
	SourceTeam   *string
	Role         *Role
	BasePrice    *float64
	SoldPrice    *float64
	SoldPriceSet bool
	TeamID       *int64
	TeamIDSet    bool
}
