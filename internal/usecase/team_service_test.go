package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/crichq/auction-tracker/internal/domain/auction"
	"github.com/crichq/auction-tracker/internal/domain/player"
)

func TestTeamServiceCreate(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := NewTeamService(f.teams, f.players, f.logger)

	created, err := svc.Create(context.Background(), CreateTeamInput{
		Name:         "  Thunder Kings  ",
		OwnerName:    "Arjun Mehta",
		InitialPurse: 12000,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if created.Name != "Thunder Kings" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}

	// Names are unique case-insensitively.
	_, err = svc.Create(context.Background(), CreateTeamInput{
		Name:         "thunder kings",
		OwnerName:    "Someone Else",
		InitialPurse: 9000,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for duplicate name, got %v", err)
	}
}

func TestTeamServiceCreateValidation(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := NewTeamService(f.teams, f.players, f.logger)

	tests := []struct {
		name  string
		input CreateTeamInput
	}{
		{"empty name", CreateTeamInput{OwnerName: "Arjun Mehta", InitialPurse: 12000}},
		{"blank name", CreateTeamInput{Name: "   ", OwnerName: "Arjun Mehta", InitialPurse: 12000}},
		{"empty owner", CreateTeamInput{Name: "Thunder Kings", InitialPurse: 12000}},
		{"zero purse", CreateTeamInput{Name: "Thunder Kings", OwnerName: "Arjun Mehta"}},
		{"negative purse", CreateTeamInput{Name: "Thunder Kings", OwnerName: "Arjun Mehta", InitialPurse: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestTeamServiceGetWithStats(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := NewTeamService(f.teams, f.players, f.logger)

	buyer := f.addTeam(t, "Coastal Chargers", "Priya Nair", 12000)
	bat := f.addPlayer(t, "Virat Kohli", player.RoleBatter, 200)
	bowl := f.addPlayer(t, "Yuzvendra Chahal", player.RoleBowler, 120)
	f.addPlayer(t, "Sanju Samson", player.RoleWicketKeeper, 140)

	auctionSvc := NewAuctionService(f.auction, f.auction, f.logger)
	if _, err := auctionSvc.Purchase(context.Background(), PurchaseInput{
		PlayerID: bat.ID, TeamID: buyer.ID, Price: 500,
	}); err != nil {
		t.Fatalf("purchase batter: %v", err)
	}
	if _, err := auctionSvc.Purchase(context.Background(), PurchaseInput{
		PlayerID: bowl.ID, TeamID: buyer.ID, Price: 1200,
	}); err != nil {
		t.Fatalf("purchase bowler: %v", err)
	}

	stats, err := svc.GetWithStats(context.Background(), buyer.ID)
	if err != nil {
		t.Fatalf("get with stats: %v", err)
	}
	if stats.TotalPlayers != 2 {
		t.Fatalf("expected 2 players, got %d", stats.TotalPlayers)
	}
	if stats.TotalSpent != 1700 || stats.RemainingPurse != 10300 {
		t.Fatalf("unexpected purse line: spent=%.2f remaining=%.2f", stats.TotalSpent, stats.RemainingPurse)
	}
	if stats.PlayersByRole[player.RoleBatter] != 1 || stats.PlayersByRole[player.RoleBowler] != 1 {
		t.Fatalf("unexpected role counts: %+v", stats.PlayersByRole)
	}
	// Unused roles are present with zero counts.
	if count, ok := stats.PlayersByRole[player.RoleWicketKeeper]; !ok || count != 0 {
		t.Fatalf("expected zero entry for wicket keepers, got %+v", stats.PlayersByRole)
	}

	if _, err := svc.GetWithStats(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTeamServiceUpdate(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := NewTeamService(f.teams, f.players, f.logger)

	first := f.addTeam(t, "Thunder Kings", "Arjun Mehta", 12000)
	f.addTeam(t, "Coastal Chargers", "Priya Nair", 12000)

	newName := "Thunder Kings XI"
	newPurse := 15000.0
	updated, err := svc.Update(context.Background(), first.ID, UpdateTeamInput{
		Name:         &newName,
		InitialPurse: &newPurse,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != newName || updated.InitialPurse != newPurse {
		t.Fatalf("unexpected updated team: %+v", updated)
	}
	if updated.OwnerName != "Arjun Mehta" {
		t.Fatalf("owner must be untouched, got %q", updated.OwnerName)
	}

	taken := "Coastal Chargers"
	if _, err := svc.Update(context.Background(), first.ID, UpdateTeamInput{Name: &taken}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict renaming onto existing team, got %v", err)
	}

	empty := "  "
	if _, err := svc.Update(context.Background(), first.ID, UpdateTeamInput{Name: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank name, got %v", err)
	}

	zero := 0.0
	if _, err := svc.Update(context.Background(), first.ID, UpdateTeamInput{InitialPurse: &zero}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for zero purse, got %v", err)
	}

	if _, err := svc.Update(context.Background(), 9999, UpdateTeamInput{Name: &newName}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTeamServiceListAndPlayers(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := NewTeamService(f.teams, f.players, f.logger)

	f.addTeam(t, "Thunder Kings", "Arjun Mehta", 12000)
	second := f.addTeam(t, "Coastal Chargers", "Priya Nair", 12000)
	f.addTeam(t, "Metro Mavericks", "Dev Patel", 12000)

	teams, err := svc.List(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(teams) != 1 || teams[0].ID != second.ID {
		t.Fatalf("expected paginated second team, got %+v", teams)
	}

	if _, err := svc.List(context.Background(), -1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for negative offset, got %v", err)
	}

	players, err := svc.ListPlayers(context.Background(), second.ID)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(players) != 0 {
		t.Fatalf("expected empty roster, got %d", len(players))
	}

	if _, err := svc.ListPlayers(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found listing players of unknown team, got %v", err)
	}
}
