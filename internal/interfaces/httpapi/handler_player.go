package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/crichq/auction-tracker/internal/usecase"
)

type createPlayerRequest struct {
	Name       string  `json:"name" validate:"required,max=100"`
	SourceTeam string  `json:"sourceTeam" validate:"required,max=100"`
	Role       string  `json:"role" validate:"required,oneof=BAT BOWL AR WK"`
	BasePrice  float64 `json:"basePrice" validate:"required,gt=0"`
}

// updatePlayerRequest distinguishes "field absent" from "field null":
// an explicit null on teamId clears the assignment, while omitting it
// leaves the assignment untouched.
type updatePlayerRequest struct {
	Name       *string       `json:"name" validate:"omitempty,max=100"`
	SourceTeam *string       `json:"sourceTeam" validate:"omitempty,max=100"`
	Role       *string       `json:"role" validate:"omitempty,oneof=BAT BOWL AR WK"`
	BasePrice  *float64      `json:"basePrice" validate:"omitempty,gt=0"`
	SoldPrice  nullableFloat `json:"soldPrice"`
	TeamID     nullableInt64 `json:"teamId"`
}

type playerDTO struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	SourceTeam       string   `json:"sourceTeam"`
	Role             string   `json:"role"`
	BasePrice        float64  `json:"basePrice"`
	SoldPrice        *float64 `json:"soldPrice"`
	TeamID           *int64   `json:"teamId"`
	IsSold           bool     `json:"isSold"`
	FantasyTeamName  *string  `json:"fantasyTeamName,omitempty"`
	FantasyTeamOwner *string  `json:"fantasyTeamOwner,omitempty"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
}

type nullableFloat struct {
	Set   bool
	Value *float64
}

func (n *nullableFloat) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}

	var v float64
	if err := sonic.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

type nullableInt64 struct {
	Set   bool
	Value *int64
}

func (n *nullableInt64) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}

	var v int64
	if err := sonic.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req createPlayerRequest
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

	created, err := h.playerService.Create(ctx, usecase.CreatePlayerInput{
		Name:       req.Name,
		SourceTeam: req.SourceTeam,
		Role:       req.Role,
		BasePrice:  req.BasePrice,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(usecase.PlayerWithTeam{Player: created}))
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	query := r.URL.Query()

	isSold, err := queryBool(r, "is_sold")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	minBase, err := queryFloat(r, "min_base_price")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	maxBase, err := queryFloat(r, "max_base_price")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	offset, limit, err := queryPagination(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.playerService.List(ctx, usecase.ListPlayersInput{
		Role:         query.Get("role"),
		SourceTeam:   query.Get("source_team"),
		IsSold:       isSold,
		MinBasePrice: minBase,
		MaxBasePrice: maxBase,
		SortBy:       query.Get("sort_by"),
		SortDesc:     query.Get("sort_order") == "desc",
		Offset:       offset,
		Limit:        limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.Get(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updatePlayerRequest
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

	updated, err := h.playerService.Update(ctx, playerID, usecase.UpdatePlayerInput{
		Name:         req.Name,
		SourceTeam:   req.SourceTeam,
		Role:         req.Role,
		BasePrice:    req.BasePrice,
		SoldPrice:    req.SoldPrice.Value,
		SoldPriceSet: req.SoldPrice.Set,
		TeamID:       req.TeamID.Value,
		TeamIDSet:    req.TeamID.Set,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(updated))
}

func playerToDTO(v usecase.PlayerWithTeam) playerDTO {
	return playerDTO{
		ID:               v.Player.ID,
		Name:             v.Player.Name,
		SourceTeam:       v.Player.SourceTeam,
		Role:             string(v.Player.Role),
		BasePrice:        v.Player.BasePrice,
		SoldPrice:        v.Player.SoldPrice,
		TeamID:           v.Player.TeamID,
		IsSold:           v.Player.IsSold(),
		FantasyTeamName:  v.FantasyTeamName,
		FantasyTeamOwner: v.FantasyTeamOwner,
		CreatedAt:        formatUTC(v.Player.CreatedAt),
		UpdatedAt:        formatUTC(v.Player.UpdatedAt),
	}
}
