package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/crichq/auction-tracker/internal/domain/dashboard"
	"github.com/crichq/auction-tracker/internal/domain/player"
	"github.com/crichq/auction-tracker/internal/domain/team"
	"github.com/crichq/auction-tracker/internal/platform/logging"
	"github.com/crichq/auction-tracker/internal/platform/resilience"
)

const (
	defaultTopPlayersLimit      = 10
	defaultTopPlayersMinMatches = 1
	recentPerformanceCount      = 5
)

// TopPlayersInput narrows the top-players ranking.
type TopPlayersInput struct {
	Role       string
	MinMatches int
	Limit      int
}

// PlayerStats is one player's career line plus the five most recent
// outings.
type PlayerStats struct {
	Player      player.Player
	FantasyTeam *string
	Aggregate   dashboard.PlayerAggregate
	Recent      []dashboard.Performance
}

type DashboardService struct {
	dashboardRepo dashboard.Repository
	playerRepo    player.Repository
	teamRepo      team.Repository
	logger        *logging.Logger

	// leaderboardFlight collapses concurrent identical leaderboard
	// computations into one repository pass.
	leaderboardFlight resilience.SingleFlight
}

func NewDashboardService(
	dashboardRepo dashboard.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	logger *logging.Logger,
) *DashboardService {
	if logger == nil {
		logger = logging.Default()
	}

	return &DashboardService{
		dashboardRepo: dashboardRepo,
		playerRepo:    playerRepo,
		teamRepo:      teamRepo,
		logger:        logger,
	}
}

func (s *DashboardService) Leaderboard(ctx context.Context) ([]dashboard.TeamStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Leaderboard")
	defer span.End()

	value, err, shared := s.leaderboardFlight.Do("dashboard:leaderboard", func() (any, error) {
		return s.dashboardRepo.TeamLeaderboard(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("team leaderboard: %w", err)
	}
	if shared {
		s.logger.DebugContext(ctx, "leaderboard read shared with concurrent caller")
	}

	standings, ok := value.([]dashboard.TeamStanding)
	if !ok {
		return nil, fmt.Errorf("team leaderboard: unexpected result type %T", value)
	}

	return standings, nil
}

func (s *DashboardService) TopPlayers(ctx context.Context, input TopPlayersInput) ([]dashboard.TopPlayer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.TopPlayers")
	defer span.End()

	if input.MinMatches < 0 || input.Limit < 0 {
		return nil, fmt.Errorf("%w: min matches and limit must not be negative", ErrInvalidInput)
	}

	filter := dashboard.TopPlayersFilter{
		MinMatches: input.MinMatches,
		Limit:      input.Limit,
	}
	if filter.MinMatches == 0 {
		filter.MinMatches = defaultTopPlayersMinMatches
	}
	if filter.Limit == 0 {
		filter.Limit = defaultTopPlayersLimit
	}
	if strings.TrimSpace(input.Role) != "" {
		role, err := parseRole(input.Role)
		if err != nil {
			return nil, err
		}
		filter.Role = &role
	}

	players, err := s.dashboardRepo.TopPlayers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("top players: %w", err)
	}

	return players, nil
}

func (s *DashboardService) PlayerStats(ctx context.Context, playerID int64) (PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.PlayerStats")
	defer span.End()

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return PlayerStats{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}

	aggregate, err := s.dashboardRepo.PlayerAggregate(ctx, playerID)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("player aggregate: %w", err)
	}

	recent, err := s.dashboardRepo.RecentPerformances(ctx, playerID, recentPerformanceCount)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("recent performances: %w", err)
	}

	stats := PlayerStats{
		Player:    p,
		Aggregate: aggregate,
		Recent:    recent,
	}
	if p.TeamID != nil {
		t, teamExists, err := s.teamRepo.GetByID(ctx, *p.TeamID)
		if err != nil {
			return PlayerStats{}, fmt.Errorf("get team for player stats: %w", err)
		}
		if teamExists {
			name := t.Name
			stats.FantasyTeam = &name
		}
	}

	return stats, nil
}
