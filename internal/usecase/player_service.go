package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/crichq/auction-tracker/internal/domain/auction"
	"github.com/crichq/auction-tracker/internal/domain/player"
	"github.com/crichq/auction-tracker/internal/domain/team"
	"github.com/crichq/auction-tracker/internal/platform/logging"
)

// CreatePlayerInput is the incoming payload for player registration.
// Players always enter the auction pool unsold.
type CreatePlayerInput struct {
	Name       string
	SourceTeam string
	Role       string
	BasePrice  float64
}

// ListPlayersInput narrows and orders the player listing.
type ListPlayersInput struct {
	Role         string
	SourceTeam   string
	IsSold       *bool
	MinBasePrice *float64
	MaxBasePrice *float64
	SortBy       string
	SortDesc     bool
	Offset       int
	Limit        int
}

// UpdatePlayerInput carries optional player changes. TeamIDSet and
// SoldPriceSet report whether the payload mentioned the field at all, so
// an explicit null can clear an assignment.
type UpdatePlayerInput struct {
	Name         *string
	SourceTeam   *string
	Role         *string
	BasePrice    *float64
	SoldPrice    *float64
	SoldPriceSet bool
	TeamID       *int64
	TeamIDSet    bool
}

// PlayerWithTeam is a player enriched with the owning fantasy team's
// display fields; both are nil while the player is unsold.
type PlayerWithTeam struct {
	Player           player.Player
	FantasyTeamName  *string
	FantasyTeamOwner *string
}

type PlayerService struct {
	playerRepo  player.Repository
	teamRepo    team.Repository
	auctionRepo auction.Repository
	logger      *logging.Logger
}

func NewPlayerService(
	playerRepo player.Repository,
	teamRepo team.Repository,
	auctionRepo auction.Repository,
	logger *logging.Logger,
) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		playerRepo:  playerRepo,
		teamRepo:    teamRepo,
		auctionRepo: auctionRepo,
		logger:      logger,
	}
}

func (s *PlayerService) Create(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	role, err := parseRole(input.Role)
	if err != nil {
		return player.Player{}, err
	}

	p := player.Player{
		Name:       strings.TrimSpace(input.Name),
		SourceTeam: strings.TrimSpace(input.SourceTeam),
		Role:       role,
		BasePrice:  input.BasePrice,
	}
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.playerRepo.Create(ctx, p)
	if err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player created",
		"player_id", created.ID,
		"name", created.Name,
		"role", string(created.Role),
		"base_price", created.BasePrice,
	)

	return created, nil
}

func (s *PlayerService) List(ctx context.Context, input ListPlayersInput) ([]PlayerWithTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	if input.Offset < 0 || input.Limit < 0 {
		return nil, fmt.Errorf("%w: offset and limit must not be negative", ErrInvalidInput)
	}

	filter := player.ListFilter{
		SourceTeam:   strings.TrimSpace(input.SourceTeam),
		IsSold:       input.IsSold,
		MinBasePrice: input.MinBasePrice,
		MaxBasePrice: input.MaxBasePrice,
		SortDesc:     input.SortDesc,
		Offset:       input.Offset,
		Limit:        input.Limit,
	}
	if strings.TrimSpace(input.Role) != "" {
		role, err := parseRole(input.Role)
		if err != nil {
			return nil, err
		}
		filter.Role = &role
	}
	if strings.TrimSpace(input.SortBy) != "" {
		sortBy, err := player.ParseSortField(input.SortBy)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.SortBy = sortBy
	}

	players, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return s.withTeams(ctx, players)
}

func (s *PlayerService) Get(ctx context.Context, playerID int64) (PlayerWithTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return PlayerWithTeam{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return PlayerWithTeam{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}

	enriched, err := s.withTeams(ctx, []player.Player{p})
	if err != nil {
		return PlayerWithTeam{}, err
	}

	return enriched[0], nil
}

func (s *PlayerService) Update(ctx context.Context, playerID int64, input UpdatePlayerInput) (PlayerWithTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update")
	defer span.End()

	changes := player.Update{
		BasePrice:    input.BasePrice,
		SoldPrice:    input.SoldPrice,
		SoldPriceSet: input.SoldPriceSet,
		TeamID:       input.TeamID,
		TeamIDSet:    input.TeamIDSet,
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return PlayerWithTeam{}, fmt.Errorf("%w: player name cannot be empty", ErrInvalidInput)
		}
		changes.Name = &name
	}
	if input.SourceTeam != nil {
		sourceTeam := strings.TrimSpace(*input.SourceTeam)
		if sourceTeam == "" {
			return PlayerWithTeam{}, fmt.Errorf("%w: player source team cannot be empty", ErrInvalidInput)
		}
		changes.SourceTeam = &sourceTeam
	}
	if input.Role != nil {
		role, err := parseRole(*input.Role)
		if err != nil {
			return PlayerWithTeam{}, err
		}
		changes.Role = &role
	}
	if input.BasePrice != nil && *input.BasePrice <= 0 {
		return PlayerWithTeam{}, fmt.Errorf("%w: base price must be greater than zero", ErrInvalidInput)
	}
	if input.SoldPriceSet && input.SoldPrice != nil && !input.TeamIDSet {
		// A price-only update is a re-price for a sold player; for an
		// unsold player there is no team to charge it against.
		current, exists, err := s.playerRepo.GetByID(ctx, playerID)
		if err != nil {
			return PlayerWithTeam{}, fmt.Errorf("get player by id: %w", err)
		}
		if !exists {
			return PlayerWithTeam{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
		}
		if current.TeamID == nil {
			return PlayerWithTeam{}, fmt.Errorf("%w: sold price cannot be set without a team", ErrInvalidInput)
		}
	}

	updated, err := s.auctionRepo.UpdatePlayer(ctx, playerID, changes)
	if err != nil {
		return PlayerWithTeam{}, fmt.Errorf("update player: %w", err)
	}

	enriched, err := s.withTeams(ctx, []player.Player{updated})
	if err != nil {
		return PlayerWithTeam{}, err
	}

	return enriched[0], nil
}

// withTeams resolves fantasy team names for sold players in one pass.
func (s *PlayerService) withTeams(ctx context.Context, players []player.Player) ([]PlayerWithTeam, error) {
	out := make([]PlayerWithTeam, 0, len(players))
	teamByID := make(map[int64]team.Team)

	for _, p := range players {
		item := PlayerWithTeam{Player: p}
		if p.TeamID != nil {
			t, ok := teamByID[*p.TeamID]
			if !ok {
				loaded, exists, err := s.teamRepo.GetByID(ctx, *p.TeamID)
				if err != nil {
					return nil, fmt.Errorf("get team for player enrichment: %w", err)
				}
				if exists {
					teamByID[*p.TeamID] = loaded
					t, ok = loaded, true
				}
			}
			if ok {
				name := t.Name
				owner := t.OwnerName
				item.FantasyTeamName = &name
				item.FantasyTeamOwner = &owner
			}
		}
		out = append(out, item)
	}

	return out, nil
}

func parseRole(v string) (player.Role, error) {
	role := player.Role(strings.ToUpper(strings.TrimSpace(v)))
	if _, ok := player.AllRoles[role]; !ok {
		return "", fmt.Errorf("%w: unknown player role %q", ErrInvalidInput, v)
	}

	return role, nil
}
