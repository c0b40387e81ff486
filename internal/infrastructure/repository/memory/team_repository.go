package memory

import (
	"context"
	"strings"

	"github.com/crichq/auction-tracker/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) (team.Team, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.teams {
		if strings.EqualFold(existing.Name, t.Name) {
			return team.Team{}, team.ErrNameTaken
		}
	}

	r.store.nextTeamID++
	now := r.store.now().UTC()
	t.ID = r.store.nextTeamID
	t.CreatedAt = now
	t.UpdatedAt = now
	r.store.teams[t.ID] = t

	return t, nil
}

func (r *TeamRepository) List(_ context.Context, offset, limit int) ([]team.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]team.Team, 0, len(r.store.teams))
	for _, id := range r.store.sortedTeamIDs() {
		out = append(out, r.store.teams[id])
	}

	return paginate(out, offset, limit), nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, ok := r.store.teams[teamID]
	if !ok {
		return team.Team{}, false, nil
	}

	return t, true, nil
}

func (r *TeamRepository) Update(_ context.Context, teamID int64, changes team.Update) (team.Team, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t, ok := r.store.teams[teamID]
	if !ok {
		return team.Team{}, false, nil
	}

	if changes.Name != nil {
		for id, existing := range r.store.teams {
			if id != teamID && strings.EqualFold(existing.Name, *changes.Name) {
				return team.Team{}, false, team.ErrNameTaken
			}
		}
		t.Name = *changes.Name
	}
	if changes.OwnerName != nil {
		t.OwnerName = *changes.OwnerName
	}
	if changes.InitialPurse != nil {
		t.InitialPurse = *changes.InitialPurse
	}
	t.UpdatedAt = r.store.now().UTC()
	r.store.teams[teamID] = t

	return t, true, nil
}
