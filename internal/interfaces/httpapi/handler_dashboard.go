package httpapi

import (
	"net/http"

	"github.com/crichq/auction-tracker/internal/domain/dashboard"
	"github.com/crichq/auction-tracker/internal/usecase"
)

type teamStandingDTO struct {
	TeamID          int64   `json:"teamId"`
	TeamName        string  `json:"teamName"`
	OwnerName       string  `json:"ownerName"`
	MatchesPlayed   int     `json:"matchesPlayed"`
	TotalPoints     float64 `json:"totalPoints"`
	AveragePerMatch float64 `json:"averagePerMatch"`
}

type topPlayerDTO struct {
	PlayerID      int64   `json:"playerId"`
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	SourceTeam    string  `json:"sourceTeam"`
	FantasyTeam   *string `json:"fantasyTeam,omitempty"`
	MatchesPlayed int     `json:"matchesPlayed"`
	TotalPoints   float64 `json:"totalPoints"`
	AveragePoints float64 `json:"averagePoints"`
}

type playerStatsDTO struct {
	Player      playerDTO           `json:"player"`
	FantasyTeam *string             `json:"fantasyTeam,omitempty"`
	Aggregate   playerAggregateDTO  `json:"aggregate"`
	Recent      []performanceDTO    `json:"recentPerformances"`
}

type playerAggregateDTO struct {
	MatchesPlayed int     `json:"matchesPlayed"`
	TotalPoints   float64 `json:"totalPoints"`
	AveragePoints float64 `json:"averagePoints"`
	HighestScore  float64 `json:"highestScore"`
	LowestScore   float64 `json:"lowestScore"`
}

type performanceDTO struct {
	MatchNumber int     `json:"matchNumber"`
	Pairing     string  `json:"pairing"`
	MatchDate   string  `json:"matchDate"`
	Points      float64 `json:"points"`
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	standings, err := h.dashboardService.Leaderboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamStandingDTO, 0, len(standings))
	for _, s := range standings {
		items = append(items, teamStandingDTO{
			TeamID:          s.TeamID,
			TeamName:        s.TeamName,
			OwnerName:       s.OwnerName,
			MatchesPlayed:   s.MatchesPlayed,
			TotalPoints:     s.TotalPoints,
			AveragePerMatch: s.AveragePerMatch,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTopPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTopPlayers")
	defer span.End()

	minMatches, err := queryInt(r, "min_matches")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.dashboardService.TopPlayers(ctx, usecase.TopPlayersInput{
		Role:       r.URL.Query().Get("role"),
		MinMatches: minMatches,
		Limit:      limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "top players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]topPlayerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, topPlayerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStats")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.dashboardService.PlayerStats(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "player stats failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	recent := make([]performanceDTO, 0, len(stats.Recent))
	for _, p := range stats.Recent {
		recent = append(recent, performanceDTO{
			MatchNumber: p.MatchNumber,
			Pairing:     p.Pairing,
			MatchDate:   formatUTC(p.MatchDate),
			Points:      p.Points,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, playerStatsDTO{
		Player:      playerToDTO(usecase.PlayerWithTeam{Player: stats.Player}),
		FantasyTeam: stats.FantasyTeam,
		Aggregate: playerAggregateDTO{
			MatchesPlayed: stats.Aggregate.MatchesPlayed,
			TotalPoints:   stats.Aggregate.TotalPoints,
			AveragePoints: stats.Aggregate.AveragePoints,
			HighestScore:  stats.Aggregate.HighestScore,
			LowestScore:   stats.Aggregate.LowestScore,
		},
		Recent: recent,
	})
}

func topPlayerToDTO(v dashboard.TopPlayer) topPlayerDTO {
	return topPlayerDTO{
		PlayerID:      v.PlayerID,
		Name:          v.Name,
		Role:          string(v.Role),
		SourceTeam:    v.SourceTeam,
		FantasyTeam:   v.FantasyTeam,
		MatchesPlayed: v.MatchesPlayed,
		TotalPoints:   v.TotalPoints,
		AveragePoints: v.AveragePoints,
	}
}
