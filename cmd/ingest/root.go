package main

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matchledger/footstats/external/fbref"
	"github.com/matchledger/footstats/internal/config"
	"github.com/matchledger/footstats/internal/infrastructure/repository/postgres"
	"github.com/matchledger/footstats/internal/platform/logging"
	"github.com/matchledger/footstats/internal/usecase"
)

const sourceMaxRetries = 2

type options struct {
	configPath string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "footstats",
		Short:         "Football statistics ingestion pipeline",
		Long:          "Loads match, team, player, and standings statistics from the FBref scraper service into PostgreSQL.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "config.yaml", "path to the YAML configuration file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the log level (debug, info, warn, error)")

	root.AddCommand(
		newMatchesCommand(opts),
		newTeamStatsCommand(opts),
		newPlayerStatsCommand(opts),
		newStandingsCommand(opts),
		newBackfillCommand(opts),
		newDailyCommand(opts),
	)

	return root
}

// app holds the wired pipeline for one command invocation.
type app struct {
	cfg          config.Config
	logger       *logging.Logger
	db           *sqlx.DB
	matches      *usecase.MatchLoader
	teamStats    *usecase.TeamStatsLoader
	playerStats  *usecase.PlayerStatsLoader
	standings    *usecase.StandingsLoader
	orchestrator *usecase.Orchestrator
}

func buildApp(opts *options) (*app, error) {
	_ = godotenv.Load()
	if opts.logLevel != "" {
		if err := os.Setenv("APP_LOG_LEVEL", opts.logLevel); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)

	db, err := postgres.Connect(cfg.Database.URL(), cfg.Database.MaxConns)
	if err != nil {
		return nil, err
	}

	store := postgres.NewStore(db)
	loads := postgres.NewLoadLogRepository(db)
	source := fbref.NewClient(fbref.ClientConfig{
		BaseURL:    cfg.Source.BaseURL,
		Timeout:    cfg.Source.Timeout,
		CacheTTL:   cfg.Source.CacheTTL,
		MaxRetries: sourceMaxRetries,
		Logger:     logger,
	})

	matches := usecase.NewMatchLoader(store, source, loads, logger)
	teamStats := usecase.NewTeamStatsLoader(store, source, loads, logger)
	playerStats := usecase.NewPlayerStatsLoader(store, source, loads, logger)
	standings := usecase.NewStandingsLoader(store, source, loads, logger)

	return &app{
		cfg:         cfg,
		logger:      logger,
		db:          db,
		matches:     matches,
		teamStats:   teamStats,
		playerStats: playerStats,
		standings:   standings,
		orchestrator: usecase.NewOrchestrator(
			matches, teamStats, playerStats, standings,
			cfg.Source.RequestInterval, logger,
		),
	}, nil
}

func (a *app) Close() {
	_ = a.db.Close()
	_ = a.logger.Sync()
}

func (a *app) league(flag string) string {
	if flag != "" {
		return flag
	}

	return a.cfg.Leagues[0]
}

func (a *app) leagues(flag []string) []string {
	if len(flag) > 0 {
		return flag
	}

	return a.cfg.Leagues
}
