package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/crichq/auction-tracker/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) *MatchRepository {
	return &MatchRepository{store: store}
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) (match.Match, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.matches {
		if existing.MatchNumber == m.MatchNumber {
			return match.Match{}, match.ErrNumberTaken
		}
	}

	r.store.nextMatchID++
	now := r.store.now().UTC()
	m.ID = r.store.nextMatchID
	m.CreatedAt = now
	m.UpdatedAt = now
	r.store.matches[m.ID] = m

	return m, nil
}

func (r *MatchRepository) List(_ context.Context, filter match.ListFilter) ([]match.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]match.Match, 0, len(r.store.matches))
	for _, id := range r.store.sortedMatchIDs() {
		m := r.store.matches[id]
		if filter.IsCompleted != nil && m.IsCompleted != *filter.IsCompleted {
			continue
		}
		if team := strings.TrimSpace(filter.Team); team != "" {
			if !strings.EqualFold(m.Team1, team) && !strings.EqualFold(m.Team2, team) {
				continue
			}
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchNumber < out[j].MatchNumber })

	return paginate(out, filter.Offset, filter.Limit), nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID int64) (match.Match, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.matches[matchID]
	if !ok {
		return match.Match{}, false, nil
	}

	return m, true, nil
}

func (r *MatchRepository) Update(_ context.Context, matchID int64, changes match.Update) (match.Match, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	m, ok := r.store.matches[matchID]
	if !ok {
		return match.Match{}, false, nil
	}

	if changes.MatchDate != nil {
		m.MatchDate = *changes.MatchDate
	}
	if changes.Venue != nil {
		m.Venue = *changes.Venue
	}
	if changes.IsCompleted != nil {
		m.IsCompleted = *changes.IsCompleted
	}
	m.UpdatedAt = r.store.now().UTC()
	r.store.matches[matchID] = m

	return m, true, nil
}
