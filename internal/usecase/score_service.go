package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/crichq/auction-tracker/internal/domain/match"
	"github.com/crichq/auction-tracker/internal/domain/player"
	"github.com/crichq/auction-tracker/internal/domain/score"
	"github.com/crichq/auction-tracker/internal/platform/logging"
)

// RecordScoresInput is one match's worth of fantasy points, submitted in
// a single batch.
type RecordScoresInput struct {
	MatchID int64
	Entries []score.Entry
}

// BatchResult is the outcome of a batch submission.
type BatchResult struct {
	Scores        []score.Detailed
	Count         int
	AveragePoints float64
}

type ScoreService struct {
	scoreRepo  score.Repository
	matchRepo  match.Repository
	playerRepo player.Repository
	logger     *logging.Logger
}

func NewScoreService(
	scoreRepo score.Repository,
	matchRepo match.Repository,
	playerRepo player.Repository,
	logger *logging.Logger,
) *ScoreService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoreService{
		scoreRepo:  scoreRepo,
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		logger:     logger,
	}
}

func (s *ScoreService) RecordBatch(ctx context.Context, input RecordScoresInput) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.RecordBatch")
	defer span.End()

	if input.MatchID <= 0 {
		return BatchResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if len(input.Entries) == 0 {
		return BatchResult{}, fmt.Errorf("%w: at least one score entry is required", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(input.Entries))
	for _, entry := range input.Entries {
		if entry.PlayerID <= 0 {
			return BatchResult{}, fmt.Errorf("%w: score entry player id is required", ErrInvalidInput)
		}
		if entry.Points < 0 {
			return BatchResult{}, fmt.Errorf("%w: points for player %d must not be negative", ErrInvalidInput, entry.PlayerID)
		}
		if _, ok := seen[entry.PlayerID]; ok {
			return BatchResult{}, fmt.Errorf("%w: duplicate player id %d in batch", ErrInvalidInput, entry.PlayerID)
		}
		seen[entry.PlayerID] = struct{}{}
	}

	recorded, err := s.scoreRepo.RecordBatch(ctx, input.MatchID, input.Entries)
	if err != nil {
		if errors.Is(err, score.ErrMatchNotFound) {
			return BatchResult{}, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		if errors.Is(err, score.ErrMatchCompleted) || errors.Is(err, score.ErrDuplicateScores) || errors.Is(err, score.ErrPlayersNotFound) {
			return BatchResult{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return BatchResult{}, fmt.Errorf("record score batch: %w", err)
	}

	result := BatchResult{
		Scores: recorded,
		Count:  len(recorded),
	}
	for _, row := range recorded {
		result.AveragePoints += row.Points
	}
	if result.Count > 0 {
		result.AveragePoints /= float64(result.Count)
	}

	s.logger.InfoContext(ctx, "match scores recorded",
		"match_id", input.MatchID,
		"count", result.Count,
		"average_points", result.AveragePoints,
	)

	return result, nil
}

func (s *ScoreService) GetByMatch(ctx context.Context, matchID int64) ([]score.Detailed, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.GetByMatch")
	defer span.End()

	_, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}

	scores, err := s.scoreRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list scores by match: %w", err)
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("%w: %v: match=%d", ErrNotFound, score.ErrNoScores, matchID)
	}

	return scores, nil
}

func (s *ScoreService) GetByPlayer(ctx context.Context, playerID int64) ([]score.Detailed, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.GetByPlayer")
	defer span.End()

	_, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}

	scores, err := s.scoreRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list scores by player: %w", err)
	}

	return scores, nil
}
