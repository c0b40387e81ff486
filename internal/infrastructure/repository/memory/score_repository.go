package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/crichq/auction-tracker/internal/domain/score"
)

type ScoreRepository struct {
	store *Store
}

func NewScoreRepository(store *Store) *ScoreRepository {
	return &ScoreRepository{store: store}
}

func (r *ScoreRepository) RecordBatch(_ context.Context, matchID int64, entries []score.Entry) ([]score.Detailed, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	m, ok := r.store.matches[matchID]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", score.ErrMatchNotFound, matchID)
	}
	if m.IsCompleted {
		return nil, fmt.Errorf("%w: match_number=%d", score.ErrMatchCompleted, m.MatchNumber)
	}

	missing := make([]int64, 0)
	for _, entry := range entries {
		if _, ok := r.store.players[entry.PlayerID]; !ok {
			missing = append(missing, entry.PlayerID)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: ids=%v", score.ErrPlayersNotFound, missing)
	}

	for _, existing := range r.store.scores {
		if existing.MatchID != matchID {
			continue
		}
		for _, entry := range entries {
			if existing.PlayerID == entry.PlayerID {
				return nil, fmt.Errorf("%w: player_id=%d", score.ErrDuplicateScores, entry.PlayerID)
			}
		}
	}

	now := r.store.now().UTC()
	out := make([]score.Detailed, 0, len(entries))
	for _, entry := range entries {
		r.store.nextScoreID++
		row := score.Score{
			ID:        r.store.nextScoreID,
			PlayerID:  entry.PlayerID,
			MatchID:   matchID,
			Points:    entry.Points,
			CreatedAt: now,
			UpdatedAt: now,
		}
		r.store.scores[row.ID] = row
		out = append(out, r.detail(row))
	}

	m.IsCompleted = true
	m.UpdatedAt = now
	r.store.matches[matchID] = m

	return out, nil
}

func (r *ScoreRepository) ListByMatch(_ context.Context, matchID int64) ([]score.Detailed, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]score.Detailed, 0)
	for _, id := range r.store.sortedScoreIDs() {
		row := r.store.scores[id]
		if row.MatchID != matchID {
			continue
		}
		out = append(out, r.detail(row))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].PlayerID < out[j].PlayerID
	})

	return out, nil
}

func (r *ScoreRepository) ListByPlayer(_ context.Context, playerID int64) ([]score.Detailed, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]score.Detailed, 0)
	for _, id := range r.store.sortedScoreIDs() {
		row := r.store.scores[id]
		if row.PlayerID != playerID {
			continue
		}
		out = append(out, r.detail(row))
	}

	return out, nil
}

// detail enriches a score row with player display fields. Callers must
// hold the lock.
func (r *ScoreRepository) detail(row score.Score) score.Detailed {
	detailed := score.Detailed{Score: row}

	p, ok := r.store.players[row.PlayerID]
	if !ok {
		return detailed
	}
	detailed.PlayerName = p.Name
	detailed.PlayerRole = p.Role
	detailed.PlayerSourceTeam = p.SourceTeam

	if p.TeamID != nil {
		if t, ok := r.store.teams[*p.TeamID]; ok {
			name := t.Name
			detailed.FantasyTeamName = &name
		}
	}

	return detailed
}
