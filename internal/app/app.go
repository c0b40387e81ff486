package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/crichq/auction-tracker/internal/config"
	"github.com/crichq/auction-tracker/internal/domain/auction"
	"github.com/crichq/auction-tracker/internal/domain/dashboard"
	"github.com/crichq/auction-tracker/internal/domain/match"
	"github.com/crichq/auction-tracker/internal/domain/player"
	"github.com/crichq/auction-tracker/internal/domain/score"
	"github.com/crichq/auction-tracker/internal/domain/team"
	"github.com/crichq/auction-tracker/internal/infrastructure/repository/memory"
	"github.com/crichq/auction-tracker/internal/infrastructure/repository/postgres"
	"github.com/crichq/auction-tracker/internal/interfaces/httpapi"
	"github.com/crichq/auction-tracker/internal/platform/logging"
	"github.com/crichq/auction-tracker/internal/usecase"
)

// NewHTTPServer wires repositories, services and the HTTP router into a
// ready-to-run server. With DB_URL set the Postgres repositories back the
// service; without it an in-memory store with demo seed data is used, which
// keeps local development and tests database-free.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	rules := auction.Rules{MaxSquadSize: cfg.MaxSquadSize}

	repos, cleanup, err := buildRepositories(ctx, cfg, rules, logger)
	if err != nil {
		return nil, nil, err
	}

	teamSvc := usecase.NewTeamService(repos.teams, repos.players, logger)
	playerSvc := usecase.NewPlayerService(repos.players, repos.teams, repos.auction, logger)
	auctionSvc := usecase.NewAuctionService(repos.auction, repos.auctionStats, logger)
	matchSvc := usecase.NewMatchService(repos.matches, logger)
	scoreSvc := usecase.NewScoreService(repos.scores, repos.matches, repos.players, logger)
	dashboardSvc := usecase.NewDashboardService(repos.dashboard, repos.players, repos.teams, logger)

	handler := httpapi.NewHandler(teamSvc, playerSvc, auctionSvc, matchSvc, scoreSvc, dashboardSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

type repositories struct {
	teams        team.Repository
	players      player.Repository
	auction      auction.Repository
	auctionStats auction.StatsRepository
	matches      match.Repository
	scores       score.Repository
	dashboard    dashboard.Repository
}

func buildRepositories(ctx context.Context, cfg config.Config, rules auction.Rules, logger *logging.Logger) (repositories, func(), error) {
	if cfg.DBURL == "" {
		logger.Info("DB_URL is empty, using in-memory repositories with seed data")

		store := memory.NewStore()
		memory.SeedStore(store)
		auctionRepo := memory.NewAuctionRepository(store, rules)

		return repositories{
			teams:        memory.NewTeamRepository(store),
			players:      memory.NewPlayerRepository(store),
			auction:      auctionRepo,
			auctionStats: auctionRepo,
			matches:      memory.NewMatchRepository(store),
			scores:       memory.NewScoreRepository(store),
			dashboard:    memory.NewDashboardRepository(store),
		}, func() {}, nil
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("open database: %w", err)
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Warn("close database", "error", err)
		}
	}

	return repositories{
		teams:        postgres.NewTeamRepository(db),
		players:      postgres.NewPlayerRepository(db),
		auction:      postgres.NewAuctionRepository(db, rules),
		auctionStats: postgres.NewAuctionStatsRepository(db),
		matches:      postgres.NewMatchRepository(db),
		scores:       postgres.NewScoreRepository(db),
		dashboard:    postgres.NewDashboardRepository(db),
	}, cleanup, nil
}
