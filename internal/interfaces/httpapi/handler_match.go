package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/crichq/auction-tracker/internal/domain/match"
	"github.com/crichq/auction-tracker/internal/usecase"
)

type createMatchRequest struct {
	MatchNumber int    `json:"matchNumber" validate:"required,gt=0"`
	Team1       string `json:"team1" validate:"required,max=100"`
	Team2       string `json:"team2" validate:"required,max=100"`
	MatchDate   string `json:"matchDate" validate:"required"`
	Venue       string `json:"venue" validate:"omitempty,max=200"`
}

type updateMatchRequest struct {
	MatchDate   *string `json:"matchDate"`
	Venue       *string `json:"venue" validate:"omitempty,max=200"`
	IsCompleted *bool   `json:"isCompleted"`
}

type matchDTO struct {
	ID          int64  `json:"id"`
	MatchNumber int    `json:"matchNumber"`
	Team1       string `json:"team1"`
	Team2       string `json:"team2"`
	MatchDate   string `json:"matchDate"`
	Venue       string `json:"venue"`
	IsCompleted bool   `json:"isCompleted"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
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

	matchDate, err := parseMatchDate(req.MatchDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.matchService.Create(ctx, usecase.CreateMatchInput{
		MatchNumber: req.MatchNumber,
		Team1:       req.Team1,
		Team2:       req.Team2,
		MatchDate:   matchDate,
		Venue:       req.Venue,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "match_number", req.MatchNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(created))
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	isCompleted, err := queryBool(r, "is_completed")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	offset, limit, err := queryPagination(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.matchService.List(ctx, usecase.ListMatchesInput{
		IsCompleted: isCompleted,
		Team:        r.URL.Query().Get("team"),
		Offset:      offset,
		Limit:       limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateMatchRequest
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

	input := usecase.UpdateMatchInput{
		Venue:       req.Venue,
		IsCompleted: req.IsCompleted,
	}
	if req.MatchDate != nil {
		matchDate, err := parseMatchDate(*req.MatchDate)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		input.MatchDate = &matchDate
	}

	updated, err := h.matchService.Update(ctx, matchID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(updated))
}

// parseMatchDate accepts both RFC3339 timestamps and plain dates.
func parseMatchDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("%w: matchDate must be RFC3339 or YYYY-MM-DD", usecase.ErrInvalidInput)
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:          v.ID,
		MatchNumber: v.MatchNumber,
		Team1:       v.Team1,
		Team2:       v.Team2,
		MatchDate:   formatUTC(v.MatchDate),
		Venue:       v.Venue,
		IsCompleted: v.IsCompleted,
		CreatedAt:   formatUTC(v.CreatedAt),
		UpdatedAt:   formatUTC(v.UpdatedAt),
	}
}
