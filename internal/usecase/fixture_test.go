package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/crichq/auction-tracker/internal/domain/auction"
	"github.com/crichq/auction-tracker/internal/domain/match"
	"github.com/crichq/auction-tracker/internal/domain/player"
	"github.com/crichq/auction-tracker/internal/domain/team"
	"github.com/crichq/auction-tracker/internal/infrastructure/repository/memory"
	"github.com/crichq/auction-tracker/internal/platform/logging"
)

// fixture wires the in-memory repositories so service tests exercise the
// same invariant checks the Postgres implementations run.
type fixture struct {
	store      *memory.Store
	teams      *memory.TeamRepository
	players    *memory.PlayerRepository
	matches    *memory.MatchRepository
	scores     *memory.ScoreRepository
	auction    *memory.AuctionRepository
	dashboards *memory.DashboardRepository
	logger     *logging.Logger
}

func newFixture(rules auction.Rules) *fixture {
	store := memory.NewStore()

	return &fixture{
		store:      store,
		teams:      memory.NewTeamRepository(store),
		players:    memory.NewPlayerRepository(store),
		matches:    memory.NewMatchRepository(store),
		scores:     memory.NewScoreRepository(store),
		auction:    memory.NewAuctionRepository(store, rules),
		dashboards: memory.NewDashboardRepository(store),
		logger:     logging.NewNop(),
	}
}

func (f *fixture) addTeam(t *testing.T, name, owner string, purse float64) team.Team {
	t.Helper()

	created, err := f.teams.Create(context.Background(), team.Team{
		Name:         name,
		OwnerName:    owner,
		InitialPurse: purse,
	})
	if err != nil {
		t.Fatalf("create team %s: %v", name, err)
	}

	return created
}

func (f *fixture) addPlayer(t *testing.T, name string, role player.Role, basePrice float64) player.Player {
	t.Helper()

	created, err := f.players.Create(context.Background(), player.Player{
		Name:       name,
		SourceTeam: "Mumbai Indians",
		Role:       role,
		BasePrice:  basePrice,
	})
	if err != nil {
		t.Fatalf("create player %s: %v", name, err)
	}

	return created
}

func (f *fixture) addMatch(t *testing.T, number int, team1, team2 string, date time.Time) match.Match {
	t.Helper()

	created, err := f.matches.Create(context.Background(), match.Match{
		MatchNumber: number,
		Team1:       team1,
		Team2:       team2,
		MatchDate:   date,
		Venue:       "Wankhede Stadium",
	})
	if err != nil {
		t.Fatalf("create match %d: %v", number, err)
	}

	return created
}
