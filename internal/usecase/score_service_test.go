package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/crichq/auction-tracker/internal/domain/auction"
	"github.com/crichq/auction-tracker/internal/domain/player"
	"github.com/crichq/auction-tracker/internal/domain/score"
)

func TestScoreServiceRecordBatch(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := NewScoreService(f.scores, f.matches, f.players, f.logger)

	m := f.addMatch(t, 1, "Mumbai Indians", "Chennai Super Kings", time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC))
	p1 := f.addPlayer(t, "Rohit Sharma", player.RoleBatter, 200)
	p2 := f.addPlayer(t, "Jasprit Bumrah", player.RoleBowler, 200)
	p3 := f.addPlayer(t, "Hardik Pandya", player.RoleAllRounder, 170)
	p4 := f.addPlayer(t, "MS Dhoni", player.RoleWicketKeeper, 160)

	result, err := svc.RecordBatch(context.Background(), RecordScoresInput{
		MatchID: m.ID,
		Entries: []score.Entry{
			{PlayerID: p1.ID, Points: 72},
			{PlayerID: p2.ID, Points: 31},
			{PlayerID: p3.ID, Points: 44.5},
			{PlayerID: p4.ID, Points: 3.5},
		},
	})
	if err != nil {
		t.Fatalf("record batch: %v", err)
	}
	if result.Count != 4 {
		t.Fatalf("expected 4 scores, got %d", result.Count)
	}
	if math.Abs(result.AveragePoints-37.75) > 1e-9 {
		t.Fatalf("expected average 37.75, got %.4f", result.AveragePoints)
	}

	updated, err := NewMatchService(f.matches, f.logger).Get(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if !updated.IsCompleted {
		t.Fatalf("expected match marked completed after batch")
	}

	// The completed match rejects further submissions.
	_, err = svc.RecordBatch(context.Background(), RecordScoresInput{
		MatchID: m.ID,
		Entries: []score.Entry{{PlayerID: p1.ID, Points: 10}},
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for completed match, got %v", err)
	}
}

func TestScoreServiceRecordBatchValidation(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := NewScoreService(f.scores, f.matches, f.players, f.logger)

	m := f.addMatch(t, 1, "Delhi Capitals", "Gujarat Titans", time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC))
	p := f.addPlayer(t, "Rishabh Pant", player.RoleWicketKeeper, 150)

	tests := []struct {
		name      string
		input     RecordScoresInput
		targetErr error
	}{
		{
			name:      "missing match id",
			input:     RecordScoresInput{Entries: []score.Entry{{PlayerID: p.ID, Points: 10}}},
			targetErr: ErrInvalidInput,
		},
		{
			name:      "empty entries",
			input:     RecordScoresInput{MatchID: m.ID},
			targetErr: ErrInvalidInput,
		},
		{
			name: "negative points",
			input: RecordScoresInput{
				MatchID: m.ID,
				Entries: []score.Entry{{PlayerID: p.ID, Points: -45.5}},
			},
			targetErr: ErrInvalidInput,
		},
		{
			name: "duplicate player in batch",
			input: RecordScoresInput{
				MatchID: m.ID,
				Entries: []score.Entry{
					{PlayerID: p.ID, Points: 10},
					{PlayerID: p.ID, Points: 20},
				},
			},
			targetErr: ErrInvalidInput,
		},
		{
			name: "unknown match",
			input: RecordScoresInput{
				MatchID: 9999,
				Entries: []score.Entry{{PlayerID: p.ID, Points: 10}},
			},
			targetErr: ErrNotFound,
		},
		{
			name: "unknown player",
			input: RecordScoresInput{
				MatchID: m.ID,
				Entries: []score.Entry{{PlayerID: 9999, Points: 10}},
			},
			targetErr: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordBatch(context.Background(), tt.input)
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected %v, got %v", tt.targetErr, err)
			}
		})
	}

	// Every failed batch above must leave the match open and scoreless.
	if _, err := svc.GetByMatch(context.Background(), m.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for scoreless match, got %v", err)
	}
	current, err := NewMatchService(f.matches, f.logger).Get(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if current.IsCompleted {
		t.Fatalf("failed batches must not complete the match")
	}
}

func TestScoreServiceGetByMatchOrdering(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := NewScoreService(f.scores, f.matches, f.players, f.logger)

	m := f.addMatch(t, 1, "Mumbai Indians", "Chennai Super Kings", time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC))
	p1 := f.addPlayer(t, "Ruturaj Gaikwad", player.RoleBatter, 140)
	p2 := f.addPlayer(t, "Ravindra Jadeja", player.RoleAllRounder, 180)
	p3 := f.addPlayer(t, "Shivam Dube", player.RoleAllRounder, 120)

	if _, err := svc.RecordBatch(context.Background(), RecordScoresInput{
		MatchID: m.ID,
		Entries: []score.Entry{
			{PlayerID: p3.ID, Points: 61},
			{PlayerID: p1.ID, Points: 18},
			{PlayerID: p2.ID, Points: 61},
		},
	}); err != nil {
		t.Fatalf("record batch: %v", err)
	}

	scores, err := svc.GetByMatch(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("get by match: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}
	// Tied scores order by player id ascending.
	if scores[0].PlayerID != p2.ID || scores[1].PlayerID != p3.ID {
		t.Fatalf("expected players %d,%d first, got %d,%d", p2.ID, p3.ID, scores[0].PlayerID, scores[1].PlayerID)
	}
	if scores[0].PlayerName != "Ravindra Jadeja" || scores[0].PlayerRole != player.RoleAllRounder {
		t.Fatalf("expected enriched player fields, got %+v", scores[0])
	}
}

func TestScoreServiceGetByPlayer(t *testing.T) {
	f := newFixture(auction.DefaultRules())
	svc := NewScoreService(f.scores, f.matches, f.players, f.logger)

	m1 := f.addMatch(t, 1, "Mumbai Indians", "Chennai Super Kings", time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC))
	m2 := f.addMatch(t, 2, "Mumbai Indians", "Delhi Capitals", time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC))
	p := f.addPlayer(t, "Suryakumar Yadav", player.RoleBatter, 160)

	for _, mid := range []int64{m1.ID, m2.ID} {
		if _, err := svc.RecordBatch(context.Background(), RecordScoresInput{
			MatchID: mid,
			Entries: []score.Entry{{PlayerID: p.ID, Points: 40}},
		}); err != nil {
			t.Fatalf("record batch for match %d: %v", mid, err)
		}
	}

	scores, err := svc.GetByPlayer(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get by player: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(scores))
	}

	// A player with no scores yields an empty history, not an error.
	idle := f.addPlayer(t, "Arshdeep Singh", player.RoleBowler, 100)
	scores, err = svc.GetByPlayer(context.Background(), idle.ID)
	if err != nil {
		t.Fatalf("get by player without scores: %v", err)
	}
	if len(scores) != 0 {
		t.Fatalf("expected empty history, got %d rows", len(scores))
	}

	if _, err := svc.GetByPlayer(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown player, got %v", err)
	}
}
