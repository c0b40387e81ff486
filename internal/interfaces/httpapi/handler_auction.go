package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/crichq/auction-tracker/internal/domain/auction"
	"github.com/crichq/auction-tracker/internal/usecase"
)

type purchaseRequest struct {
	PlayerID int64   `json:"playerId" validate:"required,gt=0"`
	TeamID   int64   `json:"teamId" validate:"required,gt=0"`
	Price    float64 `json:"price" validate:"required,gt=0"`
}

type auctionStatsDTO struct {
	Overall      overallStatsDTO   `json:"overall"`
	Teams        []teamSpendDTO    `json:"teams"`
	Roles        []roleSpendDTO    `json:"roles"`
	UnsoldByRole map[string]int    `json:"unsoldByRole"`
}

type overallStatsDTO struct {
	PlayersSold  int     `json:"playersSold"`
	TotalSpent   float64 `json:"totalSpent"`
	AveragePrice float64 `json:"averagePrice"`
	HighestPrice float64 `json:"highestPrice"`
	LowestPrice  float64 `json:"lowestPrice"`
}

type teamSpendDTO struct {
	TeamID           int64   `json:"teamId"`
	TeamName         string  `json:"teamName"`
	PlayersBought    int     `json:"playersBought"`
	TotalSpent       float64 `json:"totalSpent"`
	InitialPurse     float64 `json:"initialPurse"`
	RemainingPurse   float64 `json:"remainingPurse"`
	PurseUtilization float64 `json:"purseUtilization"`
}

type roleSpendDTO struct {
	Role         string  `json:"role"`
	PlayersSold  int     `json:"playersSold"`
	TotalSpent   float64 `json:"totalSpent"`
	AveragePrice float64 `json:"averagePrice"`
	HighestPrice float64 `json:"highestPrice"`
	LowestPrice  float64 `json:"lowestPrice"`
}

func (h *Handler) PurchasePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PurchasePlayer")
	defer span.End()

	var req purchaseRequest
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

	bought, err := h.auctionService.Purchase(ctx, usecase.PurchaseInput{
		PlayerID: req.PlayerID,
		TeamID:   req.TeamID,
		Price:    req.Price,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "purchase failed",
			"player_id", req.PlayerID,
			"team_id", req.TeamID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(usecase.PlayerWithTeam{Player: bought}))
}

func (h *Handler) ResetPlayerAuction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetPlayerAuction")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	reset, err := h.auctionService.Reset(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "auction reset failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(usecase.PlayerWithTeam{Player: reset}))
}

func (h *Handler) GetAuctionStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAuctionStats")
	defer span.End()

	stats, err := h.auctionService.Stats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "auction stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, auctionStatsToDTO(stats))
}

func auctionStatsToDTO(v auction.Stats) auctionStatsDTO {
	teams := make([]teamSpendDTO, 0, len(v.Teams))
	for _, t := range v.Teams {
		teams = append(teams, teamSpendDTO{
			TeamID:           t.TeamID,
			TeamName:         t.TeamName,
			PlayersBought:    t.PlayersBought,
			TotalSpent:       t.TotalSpent,
			InitialPurse:     t.InitialPurse,
			RemainingPurse:   t.RemainingPurse,
			PurseUtilization: t.PurseUtilization,
		})
	}

	roles := make([]roleSpendDTO, 0, len(v.Roles))
	for _, role := range v.Roles {
		roles = append(roles, roleSpendDTO{
			Role:         string(role.Role),
			PlayersSold:  role.PlayersSold,
			TotalSpent:   role.TotalSpent,
			AveragePrice: role.AveragePrice,
			HighestPrice: role.HighestPrice,
			LowestPrice:  role.LowestPrice,
		})
	}

	unsold := make(map[string]int, len(v.UnsoldByRole))
	for role, count := range v.UnsoldByRole {
		unsold[string(role)] = count
	}

	return auctionStatsDTO{
		Overall: overallStatsDTO{
			PlayersSold:  v.Overall.PlayersSold,
			TotalSpent:   v.Overall.TotalSpent,
			AveragePrice: v.Overall.AveragePrice,
			HighestPrice: v.Overall.HighestPrice,
			LowestPrice:  v.Overall.LowestPrice,
		},
		Teams:        teams,
		Roles:        roles,
		UnsoldByRole: unsold,
	}
}
