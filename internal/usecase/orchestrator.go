package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/matchledger/footstats/internal/domain/league"
	"github.com/matchledger/footstats/internal/platform/logging"
)

// BackfillOptions selects what a historical load covers. Skip flags drop
// whole units; the remaining units still run for every league and season.
type BackfillOptions struct {
	Leagues         []string
	StartYear       int
	EndYear         int
	Refresh         bool
	SkipMatches     bool
	SkipTeamStats   bool
	SkipPlayerStats bool
	SkipStandings   bool
}

// DailyOptions selects what a daily update covers. Daily updates always
// bypass source caching; yesterday's cached schedule has no results in it.
type DailyOptions struct {
	Leagues       []string
	Season        string
	SkipMatches   bool
	SkipStats     bool
	SkipStandings bool
}

// Summary aggregates per-unit results across an orchestrated run.
type Summary struct {
	Matches     Result
	TeamStats   Result
	PlayerStats Result
	Standings   Result
}

// Orchestrator sequences the four loaders over leagues and seasons. Units
// run one at a time, paced by a rate limiter to stay polite to the source;
// a failed season or league is logged and skipped while the run continues.
type Orchestrator struct {
	matches     *MatchLoader
	teamStats   *TeamStatsLoader
	playerStats *PlayerStatsLoader
	standings   *StandingsLoader
	limiter     *rate.Limiter
	logger      *logging.Logger
}

func NewOrchestrator(
	matches *MatchLoader,
	teamStats *TeamStatsLoader,
	playerStats *PlayerStatsLoader,
	standings *StandingsLoader,
	requestInterval time.Duration,
	logger *logging.Logger,
) *Orchestrator {
	if logger == nil {
		logger = logging.Default()
	}

	limit := rate.Inf
	if requestInterval > 0 {
		limit = rate.Every(requestInterval)
	}

	return &Orchestrator{
		matches:     matches,
		teamStats:   teamStats,
		playerStats: playerStats,
		standings:   standings,
		limiter:     rate.NewLimiter(limit, 1),
		logger:      logger,
	}
}

// Backfill loads every selected unit for every league and season in range.
// Only context cancellation aborts the run early.
func (o *Orchestrator) Backfill(ctx context.Context, opts BackfillOptions) (Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Orchestrator.Backfill")
	defer span.End()

	if len(opts.Leagues) == 0 {
		return Summary{}, fmt.Errorf("%w: no leagues configured", ErrInvalidInput)
	}
	seasons := league.SeasonRange(opts.StartYear, opts.EndYear)
	if len(seasons) == 0 {
		return Summary{}, fmt.Errorf("%w: empty season range %d-%d", ErrInvalidInput, opts.StartYear, opts.EndYear)
	}

	o.logger.InfoContext(ctx, "backfill started",
		"leagues", fmt.Sprintf("%v", opts.Leagues),
		"seasons", len(seasons),
		"refresh", opts.Refresh,
	)

	started := time.Now()
	var summary Summary
	for _, leagueCode := range opts.Leagues {
		for _, season := range seasons {
			if err := o.runSeason(ctx, &summary, leagueCode, season, opts); err != nil {
				if ctx.Err() != nil {
					return summary, ctx.Err()
				}
				o.logger.ErrorContext(ctx, "season load failed, continuing",
					"league", leagueCode, "season", season, "error", err.Error())
				continue
			}
		}
	}

	o.logger.InfoContext(ctx, "backfill completed",
		"duration", time.Since(started).String(),
		"matches", summary.Matches.String(),
		"team_stats", summary.TeamStats.String(),
		"player_stats", summary.PlayerStats.String(),
		"standings", summary.Standings.String(),
	)

	return summary, nil
}

func (o *Orchestrator) runSeason(ctx context.Context, summary *Summary, leagueCode, season string, opts BackfillOptions) error {
	if !opts.SkipMatches {
		result, err := o.matches.Load(ctx, leagueCode, season, opts.Refresh)
		if err != nil {
			return err
		}
		summary.Matches.Add(result)
		if err := o.pace(ctx); err != nil {
			return err
		}
	}

	if !opts.SkipTeamStats {
		result, err := o.teamStats.Load(ctx, leagueCode, season, nil, opts.Refresh)
		if err != nil {
			return err
		}
		summary.TeamStats.Add(result)
		if err := o.pace(ctx); err != nil {
			return err
		}
	}

	if !opts.SkipPlayerStats {
		result, err := o.playerStats.Load(ctx, leagueCode, season, nil, opts.Refresh)
		if err != nil {
			return err
		}
		summary.PlayerStats.Add(result)
		if err := o.pace(ctx); err != nil {
			return err
		}
	}

	if !opts.SkipStandings {
		result, err := o.standings.Load(ctx, leagueCode, season, time.Time{}, opts.Refresh)
		if err != nil {
			return err
		}
		summary.Standings.Add(result)
		if err := o.pace(ctx); err != nil {
			return err
		}
	}

	return nil
}

// DailyUpdate refreshes the current season for every league. Failures are
// isolated per league so one broken league never starves the rest.
func (o *Orchestrator) DailyUpdate(ctx context.Context, opts DailyOptions) (Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Orchestrator.DailyUpdate")
	defer span.End()

	if len(opts.Leagues) == 0 {
		return Summary{}, fmt.Errorf("%w: no leagues configured", ErrInvalidInput)
	}
	season := opts.Season
	if season == "" {
		season = league.CurrentSeason(time.Now())
	}

	o.logger.InfoContext(ctx, "daily update started",
		"leagues", fmt.Sprintf("%v", opts.Leagues),
		"season", season,
	)

	started := time.Now()
	var summary Summary
	for _, leagueCode := range opts.Leagues {
		if err := o.updateLeague(ctx, &summary, leagueCode, season, opts); err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			o.logger.ErrorContext(ctx, "league update failed, continuing",
				"league", leagueCode, "error", err.Error())
			continue
		}
	}

	o.logger.InfoContext(ctx, "daily update completed",
		"duration", time.Since(started).String(),
		"matches", summary.Matches.String(),
		"team_stats", summary.TeamStats.String(),
		"player_stats", summary.PlayerStats.String(),
		"standings", summary.Standings.String(),
	)

	return summary, nil
}

func (o *Orchestrator) updateLeague(ctx context.Context, summary *Summary, leagueCode, season string, opts DailyOptions) error {
	if !opts.SkipMatches {
		result, err := o.matches.Load(ctx, leagueCode, season, true)
		if err != nil {
			return err
		}
		summary.Matches.Add(result)
		if err := o.pace(ctx); err != nil {
			return err
		}
	}

	if !opts.SkipStats {
		result, err := o.teamStats.Load(ctx, leagueCode, season, nil, true)
		if err != nil {
			return err
		}
		summary.TeamStats.Add(result)
		if err := o.pace(ctx); err != nil {
			return err
		}

		result, err = o.playerStats.Load(ctx, leagueCode, season, nil, true)
		if err != nil {
			return err
		}
		summary.PlayerStats.Add(result)
		if err := o.pace(ctx); err != nil {
			return err
		}
	}

	if !opts.SkipStandings {
		result, err := o.standings.Load(ctx, leagueCode, season, time.Now(), true)
		if err != nil {
			return err
		}
		summary.Standings.Add(result)
		if err := o.pace(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (o *Orchestrator) pace(ctx context.Context) error {
	return o.limiter.Wait(ctx)
}
