package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/crichq/auction-tracker/internal/domain/team"
	"github.com/crichq/auction-tracker/internal/usecase"
)

type createTeamRequest struct {
	Name         string  `json:"name" validate:"required,max=100"`
	OwnerName    string  `json:"ownerName" validate:"required,max=100"`
	InitialPurse float64 `json:"initialPurse" validate:"required,gt=0"`
}

type updateTeamRequest struct {
	Name         *string  `json:"name" validate:"omitempty,max=100"`
	OwnerName    *string  `json:"ownerName" validate:"omitempty,max=100"`
	InitialPurse *float64 `json:"initialPurse" validate:"omitempty,gt=0"`
}

type teamDTO struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	OwnerName    string  `json:"ownerName"`
	InitialPurse float64 `json:"initialPurse"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

type teamStatsDTO struct {
	teamDTO
	TotalPlayers   int            `json:"totalPlayers"`
	TotalSpent     float64        `json:"totalSpent"`
	RemainingPurse float64        `json:"remainingPurse"`
	PlayersByRole  map[string]int `json:"playersByRole"`
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req createTeamRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.teamService.Create(ctx, usecase.CreateTeamInput{
		Name:         req.Name,
		OwnerName:    req.OwnerName,
		InitialPurse: req.InitialPurse,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(created))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	offset, limit, err := queryPagination(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.teamService.List(ctx, offset, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.teamService.GetWithStats(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	byRole := make(map[string]int, len(stats.PlayersByRole))
	for role, count := range stats.PlayersByRole {
		byRole[string(role)] = count
	}

	writeSuccess(ctx, w, http.StatusOK, teamStatsDTO{
		teamDTO:        teamToDTO(stats.Team),
		TotalPlayers:   stats.TotalPlayers,
		TotalSpent:     stats.TotalSpent,
		RemainingPurse: stats.RemainingPurse,
		PlayersByRole:  byRole,
	})
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateTeamRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.teamService.Update(ctx, teamID, usecase.UpdateTeamInput{
		Name:         req.Name,
		OwnerName:    req.OwnerName,
		InitialPurse: req.InitialPurse,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(updated))
}

func (h *Handler) ListTeamPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamPlayers")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.teamService.ListPlayers(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list team players failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(usecase.PlayerWithTeam{Player: p}))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:           v.ID,
		Name:         v.Name,
		OwnerName:    v.OwnerName,
		InitialPurse: v.InitialPurse,
		CreatedAt:    formatUTC(v.CreatedAt),
		UpdatedAt:    formatUTC(v.UpdatedAt),
	}
}
