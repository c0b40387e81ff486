package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/teams", handler.CreateTeam)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("PUT /v1/teams/{teamID}", handler.UpdateTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListTeamPlayers)

	mux.HandleFunc("POST /v1/players", handler.CreatePlayer)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("PUT /v1/players/{playerID}", handler.UpdatePlayer)

	mux.HandleFunc("POST /v1/auction/purchase", handler.PurchasePlayer)
	mux.HandleFunc("PUT /v1/auction/reset/{playerID}", handler.ResetPlayerAuction)
	mux.HandleFunc("GET /v1/auction/stats", handler.GetAuctionStats)

	mux.HandleFunc("POST /v1/matches", handler.CreateMatch)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("PUT /v1/matches/{matchID}", handler.UpdateMatch)

	mux.HandleFunc("POST /v1/scores/batch", handler.RecordScoreBatch)
	mux.HandleFunc("GET /v1/scores/matches/{matchID}", handler.ListScoresByMatch)
	mux.HandleFunc("GET /v1/scores/players/{playerID}", handler.ListScoresByPlayer)

	mux.HandleFunc("GET /v1/dashboard/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/dashboard/top-players", handler.ListTopPlayers)
	mux.HandleFunc("GET /v1/dashboard/player-stats/{playerID}", handler.GetPlayerStats)
}
