package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/crichq/auction-tracker/internal/domain/auction"
	"github.com/crichq/auction-tracker/internal/domain/player"
)

// AuctionRepository implements both the mutation side (purchase, reset,
// update) and the statistics side of the auction. The store mutex stands
// in for the row locks the Postgres implementation takes.
type AuctionRepository struct {
	store *Store
	rules auction.Rules
}

func NewAuctionRepository(store *Store, rules auction.Rules) *AuctionRepository {
	return &AuctionRepository{store: store, rules: rules}
}

func (r *AuctionRepository) Purchase(_ context.Context, playerID, teamID int64, price float64) (player.Player, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.players[playerID]
	if !ok {
		return player.Player{}, fmt.Errorf("%w: id=%d", auction.ErrPlayerNotFound, playerID)
	}
	if p.IsSold() {
		return player.Player{}, fmt.Errorf("%w: player=%s", auction.ErrAlreadySold, p.Name)
	}

	t, ok := r.store.teams[teamID]
	if !ok {
		return player.Player{}, fmt.Errorf("%w: id=%d", auction.ErrTeamNotFound, teamID)
	}

	if err := auction.ValidateAssignment(t, r.store.squadSize(teamID), r.store.spentByTeam(teamID), price, r.rules); err != nil {
		return player.Player{}, err
	}

	p.TeamID = &teamID
	p.SoldPrice = &price
	p.UpdatedAt = r.store.now().UTC()
	r.store.players[playerID] = p

	return p, nil
}

func (r *AuctionRepository) Reset(_ context.Context, playerID int64) (player.Player, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.players[playerID]
	if !ok {
		return player.Player{}, fmt.Errorf("%w: id=%d", auction.ErrPlayerNotFound, playerID)
	}
	if !p.IsSold() {
		return player.Player{}, fmt.Errorf("%w: player=%s", auction.ErrNotSold, p.Name)
	}

	p.TeamID = nil
	p.SoldPrice = nil
	p.UpdatedAt = r.store.now().UTC()
	r.store.players[playerID] = p

	return p, nil
}

func (r *AuctionRepository) UpdatePlayer(_ context.Context, playerID int64, changes player.Update) (player.Player, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.players[playerID]
	if !ok {
		return player.Player{}, fmt.Errorf("%w: id=%d", auction.ErrPlayerNotFound, playerID)
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
			t, ok := r.store.teams[*targetTeamID]
			if !ok {
				return player.Player{}, fmt.Errorf("%w: id=%d", auction.ErrTeamNotFound, *targetTeamID)
			}

			size := r.store.squadSize(*targetTeamID)
			spent := r.store.spentByTeam(*targetTeamID)
			if p.TeamID != nil && *p.TeamID == *targetTeamID {
				// Re-pricing within the same team: exclude the player's
				// own slot and current price from the limits.
				size--
				if p.SoldPrice != nil {
					spent -= *p.SoldPrice
				}
			}
			if err := auction.ValidateAssignment(t, size, spent, *targetSoldPrice, r.rules); err != nil {
				return player.Player{}, err
			}
		}
	}

	p.TeamID = targetTeamID
	p.SoldPrice = targetSoldPrice
	p.UpdatedAt = r.store.now().UTC()
	r.store.players[playerID] = p

	return p, nil
}

func (r *AuctionRepository) OverallStats(_ context.Context) (auction.OverallStats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var stats auction.OverallStats
	for _, p := range r.store.players {
		if !p.IsSold() {
			continue
		}
		price := *p.SoldPrice
		if stats.PlayersSold == 0 || price > stats.HighestPrice {
			stats.HighestPrice = price
		}
		if stats.PlayersSold == 0 || price < stats.LowestPrice {
			stats.LowestPrice = price
		}
		stats.PlayersSold++
		stats.TotalSpent += price
	}
	if stats.PlayersSold > 0 {
		stats.AveragePrice = stats.TotalSpent / float64(stats.PlayersSold)
	}

	return stats, nil
}

func (r *AuctionRepository) TeamSpends(_ context.Context) ([]auction.TeamSpend, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]auction.TeamSpend, 0, len(r.store.teams))
	for _, id := range r.store.sortedTeamIDs() {
		t := r.store.teams[id]
		spend := auction.TeamSpend{
			TeamID:       t.ID,
			TeamName:     t.Name,
			InitialPurse: t.InitialPurse,
		}
		for _, p := range r.store.players {
			if p.TeamID == nil || *p.TeamID != t.ID || p.SoldPrice == nil {
				continue
			}
			spend.PlayersBought++
			spend.TotalSpent += *p.SoldPrice
		}
		spend.RemainingPurse = t.InitialPurse - spend.TotalSpent
		if t.InitialPurse > 0 {
			spend.PurseUtilization = spend.TotalSpent / t.InitialPurse * 100
		}
		out = append(out, spend)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalSpent != out[j].TotalSpent {
			return out[i].TotalSpent > out[j].TotalSpent
		}
		return strings.ToLower(out[i].TeamName) < strings.ToLower(out[j].TeamName)
	})

	return out, nil
}

func (r *AuctionRepository) RoleSpends(_ context.Context) ([]auction.RoleSpend, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]auction.RoleSpend, 0, len(roleOrder))
	for _, role := range roleOrder {
		spend := auction.RoleSpend{Role: role}
		for _, p := range r.store.players {
			if p.Role != role || !p.IsSold() {
				continue
			}
			price := *p.SoldPrice
			if spend.PlayersSold == 0 || price > spend.HighestPrice {
				spend.HighestPrice = price
			}
			if spend.PlayersSold == 0 || price < spend.LowestPrice {
				spend.LowestPrice = price
			}
			spend.PlayersSold++
			spend.TotalSpent += price
		}
		if spend.PlayersSold == 0 {
			continue
		}
		spend.AveragePrice = spend.TotalSpent / float64(spend.PlayersSold)
		out = append(out, spend)
	}

	return out, nil
}

func (r *AuctionRepository) UnsoldCountByRole(_ context.Context) (map[player.Role]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make(map[player.Role]int, len(roleOrder))
	for _, role := range roleOrder {
		out[role] = 0
	}
	for _, p := range r.store.players {
		if p.IsSold() {
			continue
		}
		out[p.Role]++
	}

	return out, nil
}

var roleOrder = []player.Role{
	player.RoleBatter,
	player.RoleBowler,
	player.RoleAllRounder,
	player.RoleWicketKeeper,
}
