package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crichq/auction-tracker/internal/domain/auction"
)

func TestMatchServiceCreate(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := NewMatchService(f.matches, f.logger)

	created, err := svc.Create(context.Background(), CreateMatchInput{
		MatchNumber: 1,
		Team1:       " Mumbai Indians ",
		Team2:       "Chennai Super Kings",
		MatchDate:   time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC),
		Venue:       "Wankhede Stadium",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Team1 != "Mumbai Indians" {
		t.Fatalf("expected trimmed team name, got %q", created.Team1)
	}
	if created.IsCompleted {
		t.Fatalf("new matches must start incomplete")
	}

	_, err = svc.Create(context.Background(), CreateMatchInput{
		MatchNumber: 1,
		Team1:       "Delhi Capitals",
		Team2:       "Gujarat Titans",
		MatchDate:   time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC),
		Venue:       "Arun Jaitley Stadium",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for duplicate match number, got %v", err)
	}
}

func TestMatchServiceCreateValidation(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := NewMatchService(f.matches, f.logger)

	date := time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		input CreateMatchInput
	}{
		{"zero match number", CreateMatchInput{Team1: "Mumbai Indians", Team2: "Chennai Super Kings", MatchDate: date}},
		{"missing team", CreateMatchInput{MatchNumber: 1, Team1: "Mumbai Indians", MatchDate: date}},
		{"same team both sides", CreateMatchInput{MatchNumber: 1, Team1: "Mumbai Indians", Team2: "mumbai indians", MatchDate: date}},
		{"zero date", CreateMatchInput{MatchNumber: 1, Team1: "Mumbai Indians", Team2: "Chennai Super Kings"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestMatchServiceList(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := NewMatchService(f.matches, f.logger)
	ctx := context.Background()

	f.addMatch(t, 1, "Mumbai Indians", "Chennai Super Kings", time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC))
	f.addMatch(t, 2, "Royal Challengers Bengaluru", "Rajasthan Royals", time.Date(2026, 3, 23, 0, 0, 0, 0, time.UTC))
	third := f.addMatch(t, 3, "Mumbai Indians", "Delhi Capitals", time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC))

	done := true
	if _, err := svc.Update(ctx, third.ID, UpdateMatchInput{IsCompleted: &done}); err != nil {
		t.Fatalf("complete match: %v", err)
	}

	byTeam, err := svc.List(ctx, ListMatchesInput{Team: "mumbai indians"})
	if err != nil {
		t.Fatalf("list by team: %v", err)
	}
	if len(byTeam) != 2 {
		t.Fatalf("expected 2 matches for the club, got %d", len(byTeam))
	}

	completed, err := svc.List(ctx, ListMatchesInput{IsCompleted: &done})
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != third.ID {
		t.Fatalf("expected only the completed match, got %+v", completed)
	}

	page, err := svc.List(ctx, ListMatchesInput{Offset: 1, Limit: 1})
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 1 || page[0].MatchNumber != 2 {
		t.Fatalf("expected second match by number, got %+v", page)
	}
}

func TestMatchServiceUpdate(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := NewMatchService(f.matches, f.logger)
	ctx := context.Background()

	m := f.addMatch(t, 1, "Mumbai Indians", "Chennai Super Kings", time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC))

	newDate := time.Date(2026, 3, 28, 0, 0, 0, 0, time.UTC)
	newVenue := "Brabourne Stadium"
	updated, err := svc.Update(ctx, m.ID, UpdateMatchInput{
		MatchDate: &newDate,
		Venue:     &newVenue,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.MatchDate.Equal(newDate) || updated.Venue != newVenue {
		t.Fatalf("unexpected updated match: %+v", updated)
	}
	if updated.MatchNumber != 1 || updated.Team1 != "Mumbai Indians" {
		t.Fatalf("immutable fields changed: %+v", updated)
	}

	var zero time.Time
	if _, err := svc.Update(ctx, m.ID, UpdateMatchInput{MatchDate: &zero}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for zero date, got %v", err)
	}

	if _, err := svc.Update(ctx, 9999, UpdateMatchInput{Venue: &newVenue}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if _, err := svc.Get(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found getting unknown match, got %v", err)
	}
}
