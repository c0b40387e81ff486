package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/crichq/auction-tracker/internal/domain/auction"
	"github.com/crichq/auction-tracker/internal/domain/player"
	"github.com/crichq/auction-tracker/internal/platform/logging"
)

// PurchaseInput is the incoming payload for an auction purchase.
type PurchaseInput struct {
	PlayerID int64
	TeamID   int64
	Price    float64
}

type AuctionService struct {
	auctionRepo auction.Repository
	statsRepo   auction.StatsRepository
	logger      *logging.Logger
}

func NewAuctionService(
	auctionRepo auction.Repository,
	statsRepo auction.StatsRepository,
	logger *logging.Logger,
) *AuctionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AuctionService{
		auctionRepo: auctionRepo,
		statsRepo:   statsRepo,
		logger:      logger,
	}
}

func (s *AuctionService) Purchase(ctx context.Context, input PurchaseInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.Purchase")
	defer span.End()

	if input.PlayerID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if input.TeamID <= 0 {
		return player.Player{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if input.Price <= 0 {
		return player.Player{}, fmt.Errorf("%w: price must be greater than zero", ErrInvalidInput)
	}

	bought, err := s.auctionRepo.Purchase(ctx, input.PlayerID, input.TeamID, input.Price)
	if err != nil {
		if errors.Is(err, auction.ErrPlayerNotFound) || errors.Is(err, auction.ErrTeamNotFound) {
			return player.Player{}, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		if errors.Is(err, auction.ErrAlreadySold) ||
			errors.Is(err, auction.ErrTeamFull) ||
			errors.Is(err, auction.ErrInsufficientPurse) {
			return player.Player{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		if errors.Is(err, auction.ErrInvalidPrice) {
			return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return player.Player{}, fmt.Errorf("purchase player: %w", err)
	}

	s.logger.InfoContext(ctx, "player purchased",
		"player_id", bought.ID,
		"team_id", input.TeamID,
		"price", input.Price,
	)

	return bought, nil
}

func (s *AuctionService) Reset(ctx context.Context, playerID int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.Reset")
	defer span.End()

	if playerID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	reset, err := s.auctionRepo.Reset(ctx, playerID)
	if err != nil {
		if errors.Is(err, auction.ErrPlayerNotFound) {
			return player.Player{}, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		if errors.Is(err, auction.ErrNotSold) {
			return player.Player{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return player.Player{}, fmt.Errorf("reset player: %w", err)
	}

	s.logger.InfoContext(ctx, "player auction status reset", "player_id", reset.ID)

	return reset, nil
}

// Stats gathers the four independent aggregations concurrently; they are
// pure reads so interleaving cannot observe partial writes.
func (s *AuctionService) Stats(ctx context.Context) (auction.Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.Stats")
	defer span.End()

	var stats auction.Stats

	group := pool.New().WithContext(ctx).WithCancelOnError()
	group.Go(func(ctx context.Context) error {
		overall, err := s.statsRepo.OverallStats(ctx)
		if err != nil {
			return fmt.Errorf("overall auction stats: %w", err)
		}
		stats.Overall = overall
		return nil
	})
	group.Go(func(ctx context.Context) error {
		teams, err := s.statsRepo.TeamSpends(ctx)
		if err != nil {
			return fmt.Errorf("team auction stats: %w", err)
		}
		stats.Teams = teams
		return nil
	})
	group.Go(func(ctx context.Context) error {
		roles, err := s.statsRepo.RoleSpends(ctx)
		if err != nil {
			return fmt.Errorf("role auction stats: %w", err)
		}
		stats.Roles = roles
		return nil
	})
	group.Go(func(ctx context.Context) error {
		unsold, err := s.statsRepo.UnsoldCountByRole(ctx)
		if err != nil {
			return fmt.Errorf("unsold counts by role: %w", err)
		}
		stats.UnsoldByRole = unsold
		return nil
	})

	if err := group.Wait(); err != nil {
		return auction.Stats{}, err
	}

	return stats, nil
}
