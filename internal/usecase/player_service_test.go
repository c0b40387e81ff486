package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/crichq/auction-tracker/internal/domain/auction"
	"github.com/crichq/auction-tracker/internal/domain/player"
)

func newPlayerService(f *fixture) *PlayerService {
	return NewPlayerService(f.players, f.teams, f.auction, f.logger)
}

func TestPlayerServiceCreate(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := newPlayerService(f)

	created, err := svc.Create(context.Background(), CreatePlayerInput{
		Name:       "  Virat Kohli ",
		SourceTeam: "Royal Challengers Bengaluru",
		Role:       "bat",
		BasePrice:  200,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Virat Kohli" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if created.Role != player.RoleBatter {
		t.Fatalf("expected role normalized to BAT, got %q", created.Role)
	}
	if created.IsSold() {
		t.Fatalf("new players must enter the pool unsold")
	}

	tests := []struct {
		name  string
		input CreatePlayerInput
	}{
		{"empty name", CreatePlayerInput{SourceTeam: "Mumbai Indians", Role: "BAT", BasePrice: 100}},
		{"empty source team", CreatePlayerInput{Name: "Rohit Sharma", Role: "BAT", BasePrice: 100}},
		{"unknown role", CreatePlayerInput{Name: "Rohit Sharma", SourceTeam: "Mumbai Indians", Role: "COACH", BasePrice: 100}},
		{"zero base price", CreatePlayerInput{Name: "Rohit Sharma", SourceTeam: "Mumbai Indians", Role: "BAT"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestPlayerServiceList(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := newPlayerService(f)
	ctx := context.Background()

	buyer := f.addTeam(t, "Thunder Kings", "Arjun Mehta", 12000)
	bat := f.addPlayer(t, "Virat Kohli", player.RoleBatter, 200)
	f.addPlayer(t, "Yuzvendra Chahal", player.RoleBowler, 120)
	f.addPlayer(t, "Shubman Gill", player.RoleBatter, 150)

	auctionSvc := NewAuctionService(f.auction, f.auction, f.logger)
	if _, err := auctionSvc.Purchase(ctx, PurchaseInput{
		PlayerID: bat.ID, TeamID: buyer.ID, Price: 500,
	}); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	byRole, err := svc.List(ctx, ListPlayersInput{Role: "BAT"})
	if err != nil {
		t.Fatalf("list by role: %v", err)
	}
	if len(byRole) != 2 {
		t.Fatalf("expected 2 batters, got %d", len(byRole))
	}

	sold := true
	soldOnly, err := svc.List(ctx, ListPlayersInput{IsSold: &sold})
	if err != nil {
		t.Fatalf("list sold: %v", err)
	}
	if len(soldOnly) != 1 || soldOnly[0].Player.ID != bat.ID {
		t.Fatalf("expected only the sold batter, got %+v", soldOnly)
	}
	if soldOnly[0].FantasyTeamName == nil || *soldOnly[0].FantasyTeamName != "Thunder Kings" {
		t.Fatalf("expected fantasy team enrichment, got %v", soldOnly[0].FantasyTeamName)
	}

	minPrice := 140.0
	maxPrice := 180.0
	banded, err := svc.List(ctx, ListPlayersInput{MinBasePrice: &minPrice, MaxBasePrice: &maxPrice})
	if err != nil {
		t.Fatalf("list by price band: %v", err)
	}
	if len(banded) != 1 || banded[0].Player.Name != "Shubman Gill" {
		t.Fatalf("expected only the mid-priced player, got %+v", banded)
	}

	ordered, err := svc.List(ctx, ListPlayersInput{SortBy: "base_price", SortDesc: true})
	if err != nil {
		t.Fatalf("list ordered: %v", err)
	}
	if len(ordered) != 3 || ordered[0].Player.BasePrice != 200 || ordered[2].Player.BasePrice != 120 {
		t.Fatalf("expected base price descending, got %+v", ordered)
	}

	if _, err := svc.List(ctx, ListPlayersInput{SortBy: "updated_at"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for unsupported sort field, got %v", err)
	}
	if _, err := svc.List(ctx, ListPlayersInput{Offset: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for negative offset, got %v", err)
	}
}

func TestPlayerServiceUpdateGeneralFields(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := newPlayerService(f)

	p := f.addPlayer(t, "Hardik Pandya", player.RoleAllRounder, 170)

	newName := "Hardik H Pandya"
	newRole := "BAT"
	newBase := 190.0
	updated, err := svc.Update(context.Background(), p.ID, UpdatePlayerInput{
		Name:      &newName,
		Role:      &newRole,
		BasePrice: &newBase,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Player.Name != newName || updated.Player.Role != player.RoleBatter || updated.Player.BasePrice != newBase {
		t.Fatalf("unexpected updated player: %+v", updated.Player)
	}
	if updated.Player.IsSold() {
		t.Fatalf("general update must not sell the player")
	}

	zero := 0.0
	if _, err := svc.Update(context.Background(), p.ID, UpdatePlayerInput{BasePrice: &zero}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for zero base price, got %v", err)
	}
}

func TestPlayerServiceUpdateAssignment(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := newPlayerService(f)
	ctx := context.Background()

	buyer := f.addTeam(t, "Coastal Chargers", "Priya Nair", 12000)
	p := f.addPlayer(t, "Rishabh Pant", player.RoleWicketKeeper, 150)

	// Assigning a team requires a price in the same payload.
	_, err := svc.Update(ctx, p.ID, UpdatePlayerInput{
		TeamID:    &buyer.ID,
		TeamIDSet: true,
	})
	if !errors.Is(err, auction.ErrPriceRequired) {
		t.Fatalf("expected price required, got %v", err)
	}

	price := 650.0
	updated, err := svc.Update(ctx, p.ID, UpdatePlayerInput{
		TeamID:       &buyer.ID,
		TeamIDSet:    true,
		SoldPrice:    &price,
		SoldPriceSet: true,
	})
	if err != nil {
		t.Fatalf("assign via update: %v", err)
	}
	if !updated.Player.IsSold() || *updated.Player.SoldPrice != price {
		t.Fatalf("expected sold at %.2f, got %+v", price, updated.Player)
	}
	if updated.FantasyTeamName == nil || *updated.FantasyTeamName != "Coastal Chargers" {
		t.Fatalf("expected fantasy team name, got %v", updated.FantasyTeamName)
	}

	// Explicit null on teamId clears both sides of the assignment.
	cleared, err := svc.Update(ctx, p.ID, UpdatePlayerInput{TeamIDSet: true})
	if err != nil {
		t.Fatalf("clear assignment: %v", err)
	}
	if cleared.Player.IsSold() || cleared.Player.TeamID != nil || cleared.Player.SoldPrice != nil {
		t.Fatalf("expected unsold after explicit null, got %+v", cleared.Player)
	}

	// A price on an unsold player has no team to charge it against.
	_, err = svc.Update(ctx, p.ID, UpdatePlayerInput{
		SoldPrice:    &price,
		SoldPriceSet: true,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for price without team, got %v", err)
	}
}

func TestPlayerServiceUpdateRepriceWithinTeam(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := newPlayerService(f)
	ctx := context.Background()

	buyer := f.addTeam(t, "Metro Mavericks", "Dev Patel", 1000)
	p := f.addPlayer(t, "Axar Patel", player.RoleAllRounder, 130)

	auctionSvc := NewAuctionService(f.auction, f.auction, f.logger)
	if _, err := auctionSvc.Purchase(ctx, PurchaseInput{
		PlayerID: p.ID, TeamID: buyer.ID, Price: 900,
	}); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	// Re-pricing within the same team frees the player's own slot and
	// current price first, so raising to the full purse is legal.
	full := 1000.0
	updated, err := svc.Update(ctx, p.ID, UpdatePlayerInput{
		TeamID:       &buyer.ID,
		TeamIDSet:    true,
		SoldPrice:    &full,
		SoldPriceSet: true,
	})
	if err != nil {
		t.Fatalf("reprice: %v", err)
	}
	if *updated.Player.SoldPrice != full {
		t.Fatalf("expected sold price %.2f, got %.2f", full, *updated.Player.SoldPrice)
	}

	over := 1001.0
	_, err = svc.Update(ctx, p.ID, UpdatePlayerInput{
		TeamID:       &buyer.ID,
		TeamIDSet:    true,
		SoldPrice:    &over,
		SoldPriceSet: true,
	})
	if !errors.Is(err, auction.ErrInsufficientPurse) {
		t.Fatalf("expected insufficient purse, got %v", err)
	}

	// A sold player can be re-priced without resending the team id; the
	// current assignment is kept.
	lower := 850.0
	updated, err = svc.Update(ctx, p.ID, UpdatePlayerInput{
		SoldPrice:    &lower,
		SoldPriceSet: true,
	})
	if err != nil {
		t.Fatalf("price-only reprice: %v", err)
	}
	if updated.Player.TeamID == nil || *updated.Player.TeamID != buyer.ID {
		t.Fatalf("expected assignment kept, got %+v", updated.Player)
	}
	if *updated.Player.SoldPrice != lower {
		t.Fatalf("expected sold price %.2f, got %.2f", lower, *updated.Player.SoldPrice)
	}
}

func TestPlayerServiceGet(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := newPlayerService(f)

	p := f.addPlayer(t, "Sanju Samson", player.RoleWicketKeeper, 140)

	got, err := svc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Player.ID != p.ID || got.FantasyTeamName != nil {
		t.Fatalf("unexpected player: %+v", got)
	}

	if _, err := svc.Get(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
