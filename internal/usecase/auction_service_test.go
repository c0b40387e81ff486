package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/crichq/auction-tracker/internal/domain/auction"
	"github.com/crichq/auction-tracker/internal/domain/player"
)

func TestAuctionServicePurchase(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := NewAuctionService(f.auction, f.auction, f.logger)

	buyer := f.addTeam(t, "Thunder Kings", "Arjun Mehta", 12000)
	target := f.addPlayer(t, "Virat Kohli", player.RoleBatter, 200)

	bought, err := svc.Purchase(context.Background(), PurchaseInput{
		PlayerID: target.ID,
		TeamID:   buyer.ID,
		Price:    500,
	})
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if !bought.IsSold() {
		t.Fatalf("expected player to be sold after purchase")
	}
	if bought.TeamID == nil || *bought.TeamID != buyer.ID {
		t.Fatalf("expected team id %d, got %v", buyer.ID, bought.TeamID)
	}
	if bought.SoldPrice == nil || *bought.SoldPrice != 500 {
		t.Fatalf("expected sold price 500, got %v", bought.SoldPrice)
	}

	_, err = svc.Purchase(context.Background(), PurchaseInput{
		PlayerID: target.ID,
		TeamID:   buyer.ID,
		Price:    300,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for double purchase, got %v", err)
	}
}

func TestAuctionServicePurchaseValidation(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := NewAuctionService(f.auction, f.auction, f.logger)

	buyer := f.addTeam(t, "Thunder Kings", "Arjun Mehta", 12000)
	target := f.addPlayer(t, "Rohit Sharma", player.RoleBatter, 200)

	tests := []struct {
		name      string
		input     PurchaseInput
		targetErr error
	}{
		{
			name:      "missing player id",
			input:     PurchaseInput{TeamID: buyer.ID, Price: 100},
			targetErr: ErrInvalidInput,
		},
		{
			name:      "missing team id",
			input:     PurchaseInput{PlayerID: target.ID, Price: 100},
			targetErr: ErrInvalidInput,
		},
		{
			name:      "zero price",
			input:     PurchaseInput{PlayerID: target.ID, TeamID: buyer.ID},
			targetErr: ErrInvalidInput,
		},
		{
			name:      "unknown player",
			input:     PurchaseInput{PlayerID: 9999, TeamID: buyer.ID, Price: 100},
			targetErr: ErrNotFound,
		},
		{
			name:      "unknown team",
			input:     PurchaseInput{PlayerID: target.ID, TeamID: 9999, Price: 100},
			targetErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Purchase(context.Background(), tt.input)
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestAuctionServicePurchasePurseLimit(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := NewAuctionService(f.auction, f.auction, f.logger)

	buyer := f.addTeam(t, "Coastal Chargers", "Priya Nair", 1000)
	first := f.addPlayer(t, "Jasprit Bumrah", player.RoleBowler, 200)
	second := f.addPlayer(t, "Mohammed Siraj", player.RoleBowler, 110)

	if _, err := svc.Purchase(context.Background(), PurchaseInput{
		PlayerID: first.ID, TeamID: buyer.ID, Price: 800,
	}); err != nil {
		t.Fatalf("first purchase: %v", err)
	}

	_, err := svc.Purchase(context.Background(), PurchaseInput{
		PlayerID: second.ID, TeamID: buyer.ID, Price: 300,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict when price exceeds remaining purse, got %v", err)
	}

	// Spending exactly the remainder is allowed.
	if _, err := svc.Purchase(context.Background(), PurchaseInput{
		PlayerID: second.ID, TeamID: buyer.ID, Price: 200,
	}); err != nil {
		t.Fatalf("purchase with exact remaining purse: %v", err)
	}
}

func TestAuctionServicePurchaseSquadLimit(t *testing.T) {
	f := newFixture(auction.Rules{MaxSquadSize: 2})
	svc := NewAuctionService(f.auction, f.auction, f.logger)

	buyer := f.addTeam(t, "Metro Mavericks", "Dev Patel", 12000)
	p1 := f.addPlayer(t, "MS Dhoni", player.RoleWicketKeeper, 160)
	p2 := f.addPlayer(t, "Rishabh Pant", player.RoleWicketKeeper, 150)
	p3 := f.addPlayer(t, "Sanju Samson", player.RoleWicketKeeper, 140)

	for _, id := range []int64{p1.ID, p2.ID} {
		if _, err := svc.Purchase(context.Background(), PurchaseInput{
			PlayerID: id, TeamID: buyer.ID, Price: 100,
		}); err != nil {
			t.Fatalf("purchase player %d: %v", id, err)
		}
	}

	_, err := svc.Purchase(context.Background(), PurchaseInput{
		PlayerID: p3.ID, TeamID: buyer.ID, Price: 100,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict at squad cap, got %v", err)
	}
}

func TestAuctionServiceReset(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := NewAuctionService(f.auction, f.auction, f.logger)

	buyer := f.addTeam(t, "Northern Strikers", "Sana Iqbal", 12000)
	target := f.addPlayer(t, "Hardik Pandya", player.RoleAllRounder, 170)

	_, err := svc.Reset(context.Background(), target.ID)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict resetting unsold player, got %v", err)
	}

	if _, err := svc.Purchase(context.Background(), PurchaseInput{
		PlayerID: target.ID, TeamID: buyer.ID, Price: 900,
	}); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	reset, err := svc.Reset(context.Background(), target.ID)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if reset.IsSold() || reset.TeamID != nil || reset.SoldPrice != nil {
		t.Fatalf("expected cleared assignment after reset, got team=%v price=%v", reset.TeamID, reset.SoldPrice)
	}

	// The purse is derived from the ledger, so the refund is implicit:
	// the full amount is available again.
	another := f.addPlayer(t, "Ravindra Jadeja", player.RoleAllRounder, 180)
	if _, err := svc.Purchase(context.Background(), PurchaseInput{
		PlayerID: another.ID, TeamID: buyer.ID, Price: 12000,
	}); err != nil {
		t.Fatalf("purchase with restored purse: %v", err)
	}

	_, err = svc.Reset(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown player, got %v", err)
	}
}

func TestAuctionServiceStats(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := NewAuctionService(f.auction, f.auction, f.logger)

	kings := f.addTeam(t, "Thunder Kings", "Arjun Mehta", 12000)
	chargers := f.addTeam(t, "Coastal Chargers", "Priya Nair", 12000)

	bat := f.addPlayer(t, "Virat Kohli", player.RoleBatter, 200)
	bowl := f.addPlayer(t, "Yuzvendra Chahal", player.RoleBowler, 120)
	keeper := f.addPlayer(t, "Sanju Samson", player.RoleWicketKeeper, 140)
	f.addPlayer(t, "Shubman Gill", player.RoleBatter, 150)

	purchases := []PurchaseInput{
		{PlayerID: bat.ID, TeamID: kings.ID, Price: 500},
		{PlayerID: bowl.ID, TeamID: kings.ID, Price: 1200},
		{PlayerID: keeper.ID, TeamID: chargers.ID, Price: 700},
	}
	for _, in := range purchases {
		if _, err := svc.Purchase(context.Background(), in); err != nil {
			t.Fatalf("purchase player %d: %v", in.PlayerID, err)
		}
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.Overall.PlayersSold != 3 {
		t.Fatalf("expected 3 players sold, got %d", stats.Overall.PlayersSold)
	}
	if stats.Overall.TotalSpent != 2400 {
		t.Fatalf("expected total spent 2400, got %.2f", stats.Overall.TotalSpent)
	}
	if stats.Overall.HighestPrice != 1200 || stats.Overall.LowestPrice != 500 {
		t.Fatalf("unexpected price bounds: high=%.2f low=%.2f", stats.Overall.HighestPrice, stats.Overall.LowestPrice)
	}
	if stats.Overall.AveragePrice != 800 {
		t.Fatalf("expected average price 800, got %.2f", stats.Overall.AveragePrice)
	}

	if len(stats.Teams) != 2 {
		t.Fatalf("expected 2 team rows, got %d", len(stats.Teams))
	}
	top := stats.Teams[0]
	if top.TeamID != kings.ID {
		t.Fatalf("expected biggest spender first, got team %d", top.TeamID)
	}
	if top.TotalSpent != 1700 || top.RemainingPurse != 10300 {
		t.Fatalf("unexpected spend line: spent=%.2f remaining=%.2f", top.TotalSpent, top.RemainingPurse)
	}
	if math.Abs(top.PurseUtilization-1700.0/12000*100) > 1e-9 {
		t.Fatalf("unexpected purse utilization %.4f", top.PurseUtilization)
	}

	if stats.UnsoldByRole[player.RoleBatter] != 1 {
		t.Fatalf("expected 1 unsold batter, got %d", stats.UnsoldByRole[player.RoleBatter])
	}
	if stats.UnsoldByRole[player.RoleAllRounder] != 0 {
		t.Fatalf("expected 0 unsold all-rounders, got %d", stats.UnsoldByRole[player.RoleAllRounder])
	}
}

func TestAuctionServiceStatsEmpty(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := NewAuctionService(f.auction, f.auction, f.logger)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats on empty store: %v", err)
	}
	if stats.Overall.PlayersSold != 0 || stats.Overall.TotalSpent != 0 || stats.Overall.AveragePrice != 0 {
		t.Fatalf("expected zeroed overall stats, got %+v", stats.Overall)
	}
	if len(stats.Roles) != 0 {
		t.Fatalf("expected no role rows, got %d", len(stats.Roles))
	}
}
