package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/crichq/auction-tracker/internal/domain/match"
	"github.com/crichq/auction-tracker/internal/domain/player"
	"github.com/crichq/auction-tracker/internal/domain/team"
)

// SeedStore fills a store with a small league so local runs without a
// database have data to serve.
func SeedStore(store *Store) error {
	ctx := context.Background()
	teamRepo := NewTeamRepository(store)
	playerRepo := NewPlayerRepository(store)
	matchRepo := NewMatchRepository(store)

	for _, t := range seedTeams() {
		if _, err := teamRepo.Create(ctx, t); err != nil {
			return fmt.Errorf("seed team %s: %w", t.Name, err)
		}
	}
	for _, p := range seedPlayers() {
		if _, err := playerRepo.Create(ctx, p); err != nil {
			return fmt.Errorf("seed player %s: %w", p.Name, err)
		}
	}
	for _, m := range seedMatches() {
		if _, err := matchRepo.Create(ctx, m); err != nil {
			return fmt.Errorf("seed match %d: %w", m.MatchNumber, err)
		}
	}

	return nil
}

func seedTeams() []team.Team {
	return []team.Team{
		{Name: "Thunder Kings", OwnerName: "Arjun Mehta", InitialPurse: 12000},
		{Name: "Coastal Chargers", OwnerName: "Priya Nair", InitialPurse: 12000},
		{Name: "Metro Mavericks", OwnerName: "Dev Patel", InitialPurse: 12000},
		{Name: "Northern Strikers", OwnerName: "Sana Iqbal", InitialPurse: 12000},
	}
}

func seedPlayers() []player.Player {
	return []player.Player{
		{Name: "Rohit Sharma", SourceTeam: "Mumbai Indians", Role: player.RoleBatter, BasePrice: 200},
		{Name: "Virat Kohli", SourceTeam: "Royal Challengers Bengaluru", Role: player.RoleBatter, BasePrice: 200},
		{Name: "Shubman Gill", SourceTeam: "Gujarat Titans", Role: player.RoleBatter, BasePrice: 150},
		{Name: "Jasprit Bumrah", SourceTeam: "Mumbai Indians", Role: player.RoleBowler, BasePrice: 200},
		{Name: "Yuzvendra Chahal", SourceTeam: "Rajasthan Royals", Role: player.RoleBowler, BasePrice: 120},
		{Name: "Mohammed Siraj", SourceTeam: "Royal Challengers Bengaluru", Role: player.RoleBowler, BasePrice: 110},
		{Name: "Ravindra Jadeja", SourceTeam: "Chennai Super Kings", Role: player.RoleAllRounder, BasePrice: 180},
		{Name: "Hardik Pandya", SourceTeam: "Mumbai Indians", Role: player.RoleAllRounder, BasePrice: 170},
		{Name: "Axar Patel", SourceTeam: "Delhi Capitals", Role: player.RoleAllRounder, BasePrice: 130},
		{Name: "MS Dhoni", SourceTeam: "Chennai Super Kings", Role: player.RoleWicketKeeper, BasePrice: 160},
		{Name: "Rishabh Pant", SourceTeam: "Delhi Capitals", Role: player.RoleWicketKeeper, BasePrice: 150},
		{Name: "Sanju Samson", SourceTeam: "Rajasthan Royals", Role: player.RoleWicketKeeper, BasePrice: 140},
	}
}

func seedMatches() []match.Match {
	return []match.Match{
		{
			MatchNumber: 1,
			Team1:       "Mumbai Indians",
			Team2:       "Chennai Super Kings",
			MatchDate:   time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC),
			Venue:       "Wankhede Stadium",
		},
		{
			MatchNumber: 2,
			Team1:       "Royal Challengers Bengaluru",
			Team2:       "Rajasthan Royals",
			MatchDate:   time.Date(2026, 3, 23, 0, 0, 0, 0, time.UTC),
			Venue:       "M. Chinnaswamy Stadium",
		},
		{
			MatchNumber: 3,
			Team1:       "Delhi Capitals",
			Team2:       "Gujarat Titans",
			MatchDate:   time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC),
			Venue:       "Arun Jaitley Stadium",
		},
	}
}
