package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/crichq/auction-tracker/internal/domain/player"
	"github.com/crichq/auction-tracker/internal/domain/team"
	"github.com/crichq/auction-tracker/internal/platform/logging"
)

// CreateTeamInput is the incoming payload for team creation.
type CreateTeamInput struct {
	Name         string
	OwnerName    string
	InitialPurse float64
}

// UpdateTeamInput carries optional team changes; nil means unchanged.
type UpdateTeamInput struct {
	Name         *string
	OwnerName    *string
	InitialPurse *float64
}

// TeamStats is a team enriched with its auction position.
type TeamStats struct {
	Team           team.Team
	TotalPlayers   int
	TotalSpent     float64
	RemainingPurse float64
	PlayersByRole  map[player.Role]int
}

type TeamService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	logger     *logging.Logger
}

func NewTeamService(teamRepo team.Repository, playerRepo player.Repository, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		logger:     logger,
	}
}

func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	t := team.Team{
		Name:         strings.TrimSpace(input.Name),
		OwnerName:    strings.TrimSpace(input.OwnerName),
		InitialPurse: input.InitialPurse,
	}
	if err := t.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.teamRepo.Create(ctx, t)
	if err != nil {
		if errors.Is(err, team.ErrNameTaken) {
			return team.Team{}, fmt.Errorf("%w: team name %q is already taken", ErrConflict, t.Name)
		}
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created",
		"team_id", created.ID,
		"name", created.Name,
		"initial_purse", created.InitialPurse,
	)

	return created, nil
}

func (s *TeamService) List(ctx context.Context, offset, limit int) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: offset and limit must not be negative", ErrInvalidInput)
	}

	teams, err := s.teamRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return teams, nil
}

func (s *TeamService) Get(ctx context.Context, teamID int64) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}

	return t, nil
}

func (s *TeamService) GetWithStats(ctx context.Context, teamID int64) (TeamStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetWithStats")
	defer span.End()

	t, err := s.Get(ctx, teamID)
	if err != nil {
		return TeamStats{}, err
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return TeamStats{}, fmt.Errorf("list players by team: %w", err)
	}

	stats := TeamStats{
		Team:          t,
		TotalPlayers:  len(players),
		PlayersByRole: make(map[player.Role]int, len(player.AllRoles)),
	}
	for role := range player.AllRoles {
		stats.PlayersByRole[role] = 0
	}
	for _, p := range players {
		stats.PlayersByRole[p.Role]++
		if p.SoldPrice != nil {
			stats.TotalSpent += *p.SoldPrice
		}
	}
	stats.RemainingPurse = t.InitialPurse - stats.TotalSpent

	return stats, nil
}

func (s *TeamService) Update(ctx context.Context, teamID int64, input UpdateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Update")
	defer span.End()

	changes := team.Update{
		OwnerName:    input.OwnerName,
		InitialPurse: input.InitialPurse,
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return team.Team{}, fmt.Errorf("%w: team name cannot be empty", ErrInvalidInput)
		}
		changes.Name = &name
	}
	if input.OwnerName != nil && strings.TrimSpace(*input.OwnerName) == "" {
		return team.Team{}, fmt.Errorf("%w: team owner name cannot be empty", ErrInvalidInput)
	}
	if input.InitialPurse != nil && *input.InitialPurse <= 0 {
		return team.Team{}, fmt.Errorf("%w: initial purse must be greater than zero", ErrInvalidInput)
	}

	updated, exists, err := s.teamRepo.Update(ctx, teamID, changes)
	if err != nil {
		if errors.Is(err, team.ErrNameTaken) {
			return team.Team{}, fmt.Errorf("%w: team name is already taken", ErrConflict)
		}
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}

	return updated, nil
}

func (s *TeamService) ListPlayers(ctx context.Context, teamID int64) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListPlayers")
	defer span.End()

	if _, err := s.Get(ctx, teamID); err != nil {
		return nil, err
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}

	return players, nil
}
