package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/crichq/auction-tracker/internal/domain/match"
	"github.com/crichq/auction-tracker/internal/domain/player"
	"github.com/crichq/auction-tracker/internal/domain/score"
	"github.com/crichq/auction-tracker/internal/domain/team"
)

// Store holds all entities behind one mutex so cross-entity invariants
// (purse checks, squad size, batch scoring) stay atomic without a real
// database. It backs local runs and repository-level tests.
type Store struct {
	mu sync.RWMutex

	teams   map[int64]team.Team
	players map[int64]player.Player
	matches map[int64]match.Match
	scores  map[int64]score.Score

	nextTeamID   int64
	nextPlayerID int64
	nextMatchID  int64
	nextScoreID  int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		teams:   make(map[int64]team.Team),
		players: make(map[int64]player.Player),
		matches: make(map[int64]match.Match),
		scores:  make(map[int64]score.Score),
		now:     time.Now,
	}
}

// SetNow overrides the store clock; tests use it for deterministic
// timestamps.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now == nil {
		now = time.Now
	}
	s.now = now
}

// squadSize counts players owned by the team. Callers must hold the lock.
func (s *Store) squadSize(teamID int64) int {
	count := 0
	for _, p := range s.players {
		if p.TeamID != nil && *p.TeamID == teamID {
			count++
		}
	}

	return count
}

// spentByTeam sums the sold prices of the team's players. Callers must
// hold the lock.
func (s *Store) spentByTeam(teamID int64) float64 {
	total := 0.0
	for _, p := range s.players {
		if p.TeamID != nil && *p.TeamID == teamID && p.SoldPrice != nil {
			total += *p.SoldPrice
		}
	}

	return total
}

func (s *Store) sortedTeamIDs() []int64 {
	ids := make([]int64, 0, len(s.teams))
	for id := range s.teams {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

func (s *Store) sortedPlayerIDs() []int64 {
	ids := make([]int64, 0, len(s.players))
	for id := range s.players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

func (s *Store) sortedMatchIDs() []int64 {
	ids := make([]int64, 0, len(s.matches))
	for id := range s.matches {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

func (s *Store) sortedScoreIDs() []int64 {
	ids := make([]int64, 0, len(s.scores))
	for id := range s.scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	return items
}
