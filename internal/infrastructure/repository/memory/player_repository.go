package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/crichq/auction-tracker/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) (player.Player, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextPlayerID++
	now := r.store.now().UTC()
	p.ID = r.store.nextPlayerID
	p.CreatedAt = now
	p.UpdatedAt = now
	r.store.players[p.ID] = p

	return p, nil
}

func (r *PlayerRepository) List(_ context.Context, filter player.ListFilter) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.Player, 0, len(r.store.players))
	for _, id := range r.store.sortedPlayerIDs() {
		p := r.store.players[id]
		if !matchesFilter(p, filter) {
			continue
		}
		out = append(out, p)
	}

	sortPlayers(out, filter.SortBy, filter.SortDesc)

	return paginate(out, filter.Offset, filter.Limit), nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.players[playerID]
	if !ok {
		return player.Player{}, false, nil
	}

	return p, true, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID int64) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, id := range r.store.sortedPlayerIDs() {
		p := r.store.players[id]
		if p.TeamID != nil && *p.TeamID == teamID {
			out = append(out, p)
		}
	}

	return out, nil
}

func matchesFilter(p player.Player, filter player.ListFilter) bool {
	if filter.Role != nil && p.Role != *filter.Role {
		return false
	}
	if team := strings.TrimSpace(filter.SourceTeam); team != "" && !strings.EqualFold(p.SourceTeam, team) {
		return false
	}
	if filter.IsSold != nil && p.IsSold() != *filter.IsSold {
		return false
	}
	if filter.MinBasePrice != nil && p.BasePrice < *filter.MinBasePrice {
		return false
	}
	if filter.MaxBasePrice != nil && p.BasePrice > *filter.MaxBasePrice {
		return false
	}

	return true
}

func sortPlayers(items []player.Player, field player.SortField, desc bool) {
	less := func(a, b player.Player) bool { return a.ID < b.ID }
	switch field {
	case player.SortByName:
		less = func(a, b player.Player) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case player.SortByBasePrice:
		less = func(a, b player.Player) bool { return a.BasePrice < b.BasePrice }
	case player.SortBySoldPrice:
		// Unsold players sort as zero, matching SQL COALESCE ordering.
		less = func(a, b player.Player) bool { return soldOrZero(a) < soldOrZero(b) }
	}

	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func soldOrZero(p player.Player) float64 {
	if p.SoldPrice == nil {
		return 0
	}
	return *p.SoldPrice
}
