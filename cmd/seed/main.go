// Command seed loads a starter league into the database: fantasy teams,
// the auction player pool, and an opening match schedule. Safe to run on
// an empty schema; reruns fail on the unique constraints.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/panjf2000/ants/v2"

	"github.com/crichq/auction-tracker/internal/domain/match"
	"github.com/crichq/auction-tracker/internal/domain/player"
	"github.com/crichq/auction-tracker/internal/domain/team"
	"github.com/crichq/auction-tracker/internal/infrastructure/repository/postgres"
)

func main() {
	_ = godotenv.Load()

	workers := flag.Int("workers", 4, "concurrent player inserts")
	flag.Parse()

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		log.Fatal("DB_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", dbURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	if err := run(ctx, db, *workers); err != nil {
		log.Fatalf("seed failed: %+v", err)
	}

	log.Printf("seed complete: %d teams, %d players, %d matches", len(seedTeams()), len(seedPlayers()), len(seedMatches()))
}

func run(ctx context.Context, db *sqlx.DB, workers int) error {
	teamRepo := postgres.NewTeamRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	matchRepo := postgres.NewMatchRepository(db)

	for _, t := range seedTeams() {
		if _, err := teamRepo.Create(ctx, t); err != nil {
			return crerr.Wrapf(err, "seed team %q", t.Name)
		}
	}

	if err := seedPlayersConcurrently(ctx, playerRepo, workers); err != nil {
		return err
	}

	for _, m := range seedMatches() {
		if _, err := matchRepo.Create(ctx, m); err != nil {
			return crerr.Wrapf(err, "seed match %d", m.MatchNumber)
		}
	}

	return nil
}

func seedPlayersConcurrently(ctx context.Context, repo *postgres.PlayerRepository, workers int) error {
	players := seedPlayers()
	if workers <= 0 {
		workers = 1
	}
	if workers > len(players) {
		workers = len(players)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return crerr.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, p := range players {
		p := p
		wg.Add(1)
		if submitErr := pool.Submit(func() {
			defer wg.Done()
			if _, err := repo.Create(ctx, p); err != nil {
				mu.Lock()
				errs = append(errs, crerr.Wrapf(err, "seed player %q", p.Name))
				mu.Unlock()
			}
		}); submitErr != nil {
			wg.Done()
			return crerr.Wrap(submitErr, "submit to worker pool")
		}
	}
	wg.Wait()

	if len(errs) > 0 {
		combined := errs[0]
		for _, e := range errs[1:] {
			combined = crerr.CombineErrors(combined, e)
		}
		return combined
	}

	return nil
}

func seedTeams() []team.Team {
	return []team.Team{
		{Name: "Thunder Kings", OwnerName: "Arjun Mehta", InitialPurse: 12000},
		{Name: "Coastal Chargers", OwnerName: "Priya Nair", InitialPurse: 12000},
		{Name: "Metro Mavericks", OwnerName: "Dev Patel", InitialPurse: 12000},
		{Name: "Northern Strikers", OwnerName: "Sana Iqbal", InitialPurse: 12000},
		{Name: "Desert Dynamos", OwnerName: "Kabir Anand", InitialPurse: 12000},
		{Name: "Harbour Hawks", OwnerName: "Meera Joshi", InitialPurse: 12000},
	}
}

func seedPlayers() []player.Player {
	return []player.Player{
		{Name: "Rohit Sharma", SourceTeam: "Mumbai Indians", Role: player.RoleBatter, BasePrice: 200},
		{Name: "Virat Kohli", SourceTeam: "Royal Challengers Bengaluru", Role: player.RoleBatter, BasePrice: 200},
		{Name: "Shubman Gill", SourceTeam: "Gujarat Titans", Role: player.RoleBatter, BasePrice: 150},
		{Name: "Suryakumar Yadav", SourceTeam: "Mumbai Indians", Role: player.RoleBatter, BasePrice: 160},
		{Name: "Ruturaj Gaikwad", SourceTeam: "Chennai Super Kings", Role: player.RoleBatter, BasePrice: 140},
		{Name: "Yashasvi Jaiswal", SourceTeam: "Rajasthan Royals", Role: player.RoleBatter, BasePrice: 130},
		{Name: "Jasprit Bumrah", SourceTeam: "Mumbai Indians", Role: player.RoleBowler, BasePrice: 200},
		{Name: "Yuzvendra Chahal", SourceTeam: "Rajasthan Royals", Role: player.RoleBowler, BasePrice: 120},
		{Name: "Mohammed Siraj", SourceTeam: "Royal Challengers Bengaluru", Role: player.RoleBowler, BasePrice: 110},
		{Name: "Kuldeep Yadav", SourceTeam: "Delhi Capitals", Role: player.RoleBowler, BasePrice: 115},
		{Name: "Arshdeep Singh", SourceTeam: "Punjab Kings", Role: player.RoleBowler, BasePrice: 100},
		{Name: "Mohammed Shami", SourceTeam: "Gujarat Titans", Role: player.RoleBowler, BasePrice: 125},
		{Name: "Ravindra Jadeja", SourceTeam: "Chennai Super Kings", Role: player.RoleAllRounder, BasePrice: 180},
		{Name: "Hardik Pandya", SourceTeam: "Mumbai Indians", Role: player.RoleAllRounder, BasePrice: 170},
		{Name: "Axar Patel", SourceTeam: "Delhi Capitals", Role: player.RoleAllRounder, BasePrice: 130},
		{Name: "Andre Russell", SourceTeam: "Kolkata Knight Riders", Role: player.RoleAllRounder, BasePrice: 175},
		{Name: "Sunil Narine", SourceTeam: "Kolkata Knight Riders", Role: player.RoleAllRounder, BasePrice: 150},
		{Name: "MS Dhoni", SourceTeam: "Chennai Super Kings", Role: player.RoleWicketKeeper, BasePrice: 160},
		{Name: "Rishabh Pant", SourceTeam: "Delhi Capitals", Role: player.RoleWicketKeeper, BasePrice: 150},
		{Name: "Sanju Samson", SourceTeam: "Rajasthan Royals", Role: player.RoleWicketKeeper, BasePrice: 140},
		{Name: "Heinrich Klaasen", SourceTeam: "Sunrisers Hyderabad", Role: player.RoleWicketKeeper, BasePrice: 135},
	}
}

func seedMatches() []match.Match {
	return []match.Match{
		{
			MatchNumber: 1,
			Team1:       "Mumbai Indians",
			Team2:       "Chennai Super Kings",
			MatchDate:   time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC),
			Venue:       "Wankhede Stadium",
		},
		{
			MatchNumber: 2,
			Team1:       "Royal Challengers Bengaluru",
			Team2:       "Rajasthan Royals",
			MatchDate:   time.Date(2026, 3, 23, 0, 0, 0, 0, time.UTC),
			Venue:       "M. Chinnaswamy Stadium",
		},
		{
			MatchNumber: 3,
			Team1:       "Delhi Capitals",
			Team2:       "Gujarat Titans",
			MatchDate:   time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC),
			Venue:       "Arun Jaitley Stadium",
		},
		{
			MatchNumber: 4,
			Team1:       "Kolkata Knight Riders",
			Team2:       "Sunrisers Hyderabad",
			MatchDate:   time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC),
			Venue:       "Eden Gardens",
		},
		{
			MatchNumber: 5,
			Team1:       "Punjab Kings",
			Team2:       "Mumbai Indians",
			MatchDate:   time.Date(2026, 3, 26, 0, 0, 0, 0, time.UTC),
			Venue:       "Maharaja Yadavindra Singh Stadium",
		},
	}
}
