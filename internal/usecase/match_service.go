package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crichq/auction-tracker/internal/domain/match"
	"github.com/crichq/auction-tracker/internal/platform/logging"
)

// CreateMatchInput is the incoming payload for scheduling a match.
type CreateMatchInput struct {
	MatchNumber int
	Team1       string
	Team2       string
	MatchDate   time.Time
	Venue       string
}

// ListMatchesInput narrows the match listing.
type ListMatchesInput struct {
	IsCompleted *bool
	Team        string
	Offset      int
	Limit       int
}

// UpdateMatchInput carries the mutable match fields. Match number and
// the two sides cannot change once scheduled.
type UpdateMatchInput struct {
	MatchDate   *time.Time
	Venue       *string
	IsCompleted *bool
}

type MatchService struct {
	matchRepo match.Repository
	logger    *logging.Logger
}

func NewMatchService(matchRepo match.Repository, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		matchRepo: matchRepo,
		logger:    logger,
	}
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	m := match.Match{
		MatchNumber: input.MatchNumber,
		Team1:       strings.TrimSpace(input.Team1),
		Team2:       strings.TrimSpace(input.Team2),
		MatchDate:   input.MatchDate,
		Venue:       strings.TrimSpace(input.Venue),
	}
	if err := m.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.matchRepo.Create(ctx, m)
	if err != nil {
		if errors.Is(err, match.ErrNumberTaken) {
			return match.Match{}, fmt.Errorf("%w: match number %d already exists", ErrConflict, m.MatchNumber)
		}
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match scheduled",
		"match_id", created.ID,
		"match_number", created.MatchNumber,
		"pairing", created.Team1+" vs "+created.Team2,
	)

	return created, nil
}

func (s *MatchService) List(ctx context.Context, input ListMatchesInput) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	if input.Offset < 0 || input.Limit < 0 {
		return nil, fmt.Errorf("%w: offset and limit must not be negative", ErrInvalidInput)
	}

	matches, err := s.matchRepo.List(ctx, match.ListFilter{
		IsCompleted: input.IsCompleted,
		Team:        strings.TrimSpace(input.Team),
		Offset:      input.Offset,
		Limit:       input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return matches, nil
}

func (s *MatchService) Get(ctx context.Context, matchID int64) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}

	return m, nil
}

func (s *MatchService) Update(ctx context.Context, matchID int64, input UpdateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Update")
	defer span.End()

	if input.MatchDate != nil && input.MatchDate.IsZero() {
		return match.Match{}, fmt.Errorf("%w: match date cannot be empty", ErrInvalidInput)
	}

	updated, exists, err := s.matchRepo.Update(ctx, matchID, match.Update{
		MatchDate:   input.MatchDate,
		Venue:       input.Venue,
		IsCompleted: input.IsCompleted,
	})
	if err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}

	return updated, nil
}
