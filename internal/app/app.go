package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/statsrecord/stats-api/internal/config"
	"github.com/statsrecord/stats-api/internal/infrastructure/repository/postgres"
	"github.com/statsrecord/stats-api/internal/interfaces/httpapi"
	"github.com/statsrecord/stats-api/internal/platform/auth"
	idgen "github.com/statsrecord/stats-api/internal/platform/id"
	"github.com/statsrecord/stats-api/internal/platform/logging"
	"github.com/statsrecord/stats-api/internal/usecase"
)

// NewHTTPServer builds the wired HTTP server and a cleanup closing the
// database pool.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Error("close database", "error", err)
		}
	}

	tokens, err := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("new jwt manager: %w", err)
	}
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	idGen := idgen.NewRandomGenerator()

	userRepo := postgres.NewUserRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	leagueRepo := postgres.NewLeagueRepository(db)
	seasonRepo := postgres.NewSeasonRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	playerStatsRepo := postgres.NewPlayerStatsRepository(db)
	teamStatsRepo := postgres.NewTeamStatsRepository(db)

	handler := httpapi.NewHandler(
		usecase.NewAuthService(userRepo, teamRepo, hasher, tokens, idGen, logger),
		usecase.NewUserService(userRepo, teamRepo, hasher, logger),
		usecase.NewTeamService(teamRepo, leagueRepo, idGen, logger),
		usecase.NewLeagueService(leagueRepo, idGen, logger),
		usecase.NewSeasonService(seasonRepo, leagueRepo, idGen, logger),
		usecase.NewMatchService(matchRepo, seasonRepo, teamRepo, idGen, logger),
		usecase.NewPlayerStatsService(playerStatsRepo, userRepo, matchRepo, idGen, logger),
		usecase.NewTeamStatsService(teamStatsRepo, teamRepo, matchRepo, idGen, logger),
		usecase.NewMaintenanceService(teamStatsRepo, logger),
		logger,
	)

	router := httpapi.NewRouter(handler, tokens, userRepo, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

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
