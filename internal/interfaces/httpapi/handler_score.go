package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/crichq/auction-tracker/internal/domain/score"
	"github.com/crichq/auction-tracker/internal/usecase"
)

type recordScoresRequest struct {
	MatchID int64               `json:"matchId" validate:"required,gt=0"`
	Scores  []scoreEntryRequest `json:"scores" validate:"required,min=1,dive"`
}

type scoreEntryRequest struct {
	PlayerID int64   `json:"playerId" validate:"required,gt=0"`
	Points   float64 `json:"points" validate:"gte=0"`
}

type scoreDTO struct {
	ID               int64   `json:"id"`
	PlayerID         int64   `json:"playerId"`
	MatchID          int64   `json:"matchId"`
	Points           float64 `json:"points"`
	PlayerName       string  `json:"playerName"`
	PlayerRole       string  `json:"playerRole"`
	PlayerSourceTeam string  `json:"playerSourceTeam"`
	FantasyTeamName  *string `json:"fantasyTeamName,omitempty"`
	CreatedAt        string  `json:"createdAt"`
}

type batchResultDTO struct {
	Scores        []scoreDTO `json:"scores"`
	Count         int        `json:"count"`
	AveragePoints float64    `json:"averagePoints"`
}

func (h *Handler) RecordScoreBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordScoreBatch")
	defer span.End()

	var req recordScoresRequest
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

	entries := make([]score.Entry, 0, len(req.Scores))
	for _, item := range req.Scores {
		entries = append(entries, score.Entry{
			PlayerID: item.PlayerID,
			Points:   item.Points,
		})
	}

	result, err := h.scoreService.RecordBatch(ctx, usecase.RecordScoresInput{
		MatchID: req.MatchID,
		Entries: entries,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record score batch failed", "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, batchResultDTO{
		Scores:        scoresToDTO(result.Scores),
		Count:         result.Count,
		AveragePoints: result.AveragePoints,
	})
}

func (h *Handler) ListScoresByMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListScoresByMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	scores, err := h.scoreService.GetByMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list scores by match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoresToDTO(scores))
}

func (h *Handler) ListScoresByPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListScoresByPlayer")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	scores, err := h.scoreService.GetByPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list scores by player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoresToDTO(scores))
}

func scoresToDTO(scores []score.Detailed) []scoreDTO {
	out := make([]scoreDTO, 0, len(scores))
	for _, s := range scores {
		out = append(out, scoreDTO{
			ID:               s.ID,
			PlayerID:         s.PlayerID,
			MatchID:          s.MatchID,
			Points:           s.Points,
			PlayerName:       s.PlayerName,
			PlayerRole:       string(s.PlayerRole),
			PlayerSourceTeam: s.PlayerSourceTeam,
			FantasyTeamName:  s.FantasyTeamName,
			CreatedAt:        formatUTC(s.CreatedAt),
		})
	}

	return out
}
