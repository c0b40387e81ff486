package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/crichq/auction-tracker/internal/domain/dashboard"
)

type DashboardRepository struct {
	store *Store
}

func NewDashboardRepository(store *Store) *DashboardRepository {
	return &DashboardRepository{store: store}
}

func (r *DashboardRepository) TeamLeaderboard(_ context.Context) ([]dashboard.TeamStanding, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]dashboard.TeamStanding, 0, len(r.store.teams))
	for _, teamID := range r.store.sortedTeamIDs() {
		t := r.store.teams[teamID]
		standing := dashboard.TeamStanding{
			TeamID:    t.ID,
			TeamName:  t.Name,
			OwnerName: t.OwnerName,
		}

		matchSet := make(map[int64]struct{})
		for _, row := range r.store.scores {
			p, ok := r.store.players[row.PlayerID]
			if !ok || p.TeamID == nil || *p.TeamID != t.ID {
				continue
			}
			standing.TotalPoints += row.Points
			matchSet[row.MatchID] = struct{}{}
		}
		standing.MatchesPlayed = len(matchSet)
		if standing.MatchesPlayed > 0 {
			standing.AveragePerMatch = standing.TotalPoints / float64(standing.MatchesPlayed)
		}
		out = append(out, standing)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		if out[i].MatchesPlayed != out[j].MatchesPlayed {
			return out[i].MatchesPlayed < out[j].MatchesPlayed
		}
		return strings.ToLower(out[i].TeamName) < strings.ToLower(out[j].TeamName)
	})

	return out, nil
}

func (r *DashboardRepository) TopPlayers(_ context.Context, filter dashboard.TopPlayersFilter) ([]dashboard.TopPlayer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]dashboard.TopPlayer, 0)
	for _, playerID := range r.store.sortedPlayerIDs() {
		p := r.store.players[playerID]
		if filter.Role != nil && p.Role != *filter.Role {
			continue
		}

		entry := dashboard.TopPlayer{
			PlayerID:   p.ID,
			Name:       p.Name,
			Role:       p.Role,
			SourceTeam: p.SourceTeam,
		}
		for _, row := range r.store.scores {
			if row.PlayerID != p.ID {
				continue
			}
			entry.MatchesPlayed++
			entry.TotalPoints += row.Points
		}
		if entry.MatchesPlayed < filter.MinMatches || entry.MatchesPlayed == 0 {
			continue
		}
		entry.AveragePoints = entry.TotalPoints / float64(entry.MatchesPlayed)

		if p.TeamID != nil {
			if t, ok := r.store.teams[*p.TeamID]; ok {
				name := t.Name
				entry.FantasyTeam = &name
			}
		}
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AveragePoints != out[j].AveragePoints {
			return out[i].AveragePoints > out[j].AveragePoints
		}
		return out[i].PlayerID < out[j].PlayerID
	})

	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}

	return out, nil
}

func (r *DashboardRepository) PlayerAggregate(_ context.Context, playerID int64) (dashboard.PlayerAggregate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var agg dashboard.PlayerAggregate
	for _, row := range r.store.scores {
		if row.PlayerID != playerID {
			continue
		}
		if agg.MatchesPlayed == 0 || row.Points > agg.HighestScore {
			agg.HighestScore = row.Points
		}
		if agg.MatchesPlayed == 0 || row.Points < agg.LowestScore {
			agg.LowestScore = row.Points
		}
		agg.MatchesPlayed++
		agg.TotalPoints += row.Points
	}
	if agg.MatchesPlayed > 0 {
		agg.AveragePoints = agg.TotalPoints / float64(agg.MatchesPlayed)
	}

	return agg, nil
}

func (r *DashboardRepository) RecentPerformances(_ context.Context, playerID int64, limit int) ([]dashboard.Performance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]dashboard.Performance, 0)
	for _, id := range r.store.sortedScoreIDs() {
		row := r.store.scores[id]
		if row.PlayerID != playerID {
			continue
		}
		m, ok := r.store.matches[row.MatchID]
		if !ok {
			continue
		}
		out = append(out, dashboard.Performance{
			MatchNumber: m.MatchNumber,
			Pairing:     fmt.Sprintf("%s vs %s", m.Team1, m.Team2),
			MatchDate:   m.MatchDate,
			Points:      row.Points,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].MatchDate.Equal(out[j].MatchDate) {
			return out[i].MatchDate.After(out[j].MatchDate)
		}
		return out[i].MatchNumber > out[j].MatchNumber
	})

	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}

	return out, nil
}
