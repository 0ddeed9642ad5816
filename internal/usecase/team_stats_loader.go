package usecase

import (
	"context"
	"fmt"

	"github.com/matchledger/footstats/internal/domain/loadlog"
	"github.com/matchledger/footstats/internal/domain/teamstats"
	"github.com/matchledger/footstats/internal/normalize"
	"github.com/matchledger/footstats/internal/platform/logging"
)

var teamStatColumns = []string{
	"team_id", "league_season_id", "stat_type",
	"matches_played", "wins", "draws", "losses",
	"goals_for", "goals_against",
	"possession_pct", "passes_completed", "passes_attempted",
	"pass_completion_pct", "shots", "shots_on_target",
	"shots_on_target_pct", "tackles", "tackles_won",
	"interceptions", "blocks", "clearances",
	"yellow_cards", "red_cards", "fouls_committed",
	"fouls_drawn", "additional_stats",
}

var teamStatConflictColumns = []string{"team_id", "league_season_id", "stat_type"}

// TeamStatsLoader ingests season-level team statistics, one load log entry
// per category. A category that fails to fetch is recorded and skipped; the
// remaining categories still load.
type TeamStatsLoader struct {
	storage Storage
	source  SourceProvider
	loads   loadlog.Repository
	logger  *logging.Logger
}

func NewTeamStatsLoader(storage Storage, source SourceProvider, loads loadlog.Repository, logger *logging.Logger) *TeamStatsLoader {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamStatsLoader{
		storage: storage,
		source:  source,
		loads:   loads,
		logger:  logger,
	}
}

func (l *TeamStatsLoader) Load(ctx context.Context, leagueCode, season string, statTypes []string, refresh bool) (Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamStatsLoader.Load")
	defer span.End()

	if len(statTypes) == 0 {
		statTypes = normalize.TeamStatTypes()
	}

	l.logger.InfoContext(ctx, "loading team stats", "league", leagueCode, "season", season)

	leagueSeasonID, ok, err := l.storage.GetLeagueSeasonID(ctx, leagueCode, season)
	if err != nil {
		return Result{}, fmt.Errorf("resolve league season %s %s: %w", leagueCode, season, err)
	}
	if !ok {
		l.logger.ErrorContext(ctx, "league season not found", "league", leagueCode, "season", season)
		return Result{}, nil
	}

	var total Result
	for _, statType := range statTypes {
		result, err := l.loadStatType(ctx, leagueCode, season, statType, leagueSeasonID, refresh)
		if err != nil {
			l.logger.ErrorContext(ctx, "team stat category failed",
				"league", leagueCode, "season", season, "stat_type", statType, "error", err.Error())
			continue
		}
		total.Add(result)
	}

	l.logger.InfoContext(ctx, "team stats loaded", "league", leagueCode, "season", season, "result", total.String())

	return total, nil
}

func (l *TeamStatsLoader) loadStatType(ctx context.Context, leagueCode, season, statType string, leagueSeasonID int64, refresh bool) (Result, error) {
	tracker := NewLoadTracker(l.loads, l.logger)
	if err := tracker.Start(ctx, SourceFBref, "team_stats_"+statType, "team_season_stats", &leagueSeasonID); err != nil {
		return Result{}, fmt.Errorf("start load log: %w", err)
	}

	rows, err := l.source.FetchTeamSeasonStats(ctx, leagueCode, season, statType, refresh)
	if err != nil {
		fetchErr := fmt.Errorf("fetch %s team stats %s %s: %w", statType, leagueCode, season, err)
		_ = tracker.Fail(ctx, fetchErr)
		return Result{}, fetchErr
	}
	if len(rows) == 0 {
		l.logger.WarnContext(ctx, "no team stats found", "league", leagueCode, "season", season, "stat_type", statType)
		_ = tracker.Complete(ctx)
		return Result{}, nil
	}

	result := Result{Processed: len(rows)}
	for idx, row := range rows {
		outcome, err := l.processRow(ctx, leagueSeasonID, statType, row)
		if err != nil {
			l.logger.ErrorContext(ctx, "team stat row failed", "stat_type", statType, "row", idx, "error", err.Error())
			result.Failed++
			continue
		}
		result.Inserted += outcome.Inserted
		result.Updated += outcome.Updated
	}

	if err := tracker.Progress(ctx, result); err != nil {
		l.logger.WarnContext(ctx, "load progress update failed", "error", err.Error())
	}
	if err := tracker.Complete(ctx); err != nil {
		return result, fmt.Errorf("close load log: %w", err)
	}

	return result, nil
}

func (l *TeamStatsLoader) processRow(ctx context.Context, leagueSeasonID int64, statType string, row normalize.Row) (UpsertOutcome, error) {
	teamName, ok := row.TeamName()
	if !ok {
		return UpsertOutcome{}, fmt.Errorf("%w: missing team name", ErrInvalidInput)
	}

	teamID, err := l.storage.GetOrCreateTeam(ctx, teamName, nil)
	if err != nil {
		return UpsertOutcome{}, fmt.Errorf("resolve team %s: %w", teamName, err)
	}

	rec := normalize.Extract(row, normalize.TeamFields(statType), normalize.TeamIdentityColumns(), statType)
	additional, err := rec.EncodeAdditional()
	if err != nil {
		return UpsertOutcome{}, err
	}

	stat := teamstats.SeasonStat{
		TeamID:            teamID,
		LeagueSeasonID:    leagueSeasonID,
		StatType:          statType,
		MatchesPlayed:     rec.Int("matches_played"),
		Wins:              rec.Int("wins"),
		Draws:             rec.Int("draws"),
		Losses:            rec.Int("losses"),
		GoalsFor:          rec.Int("goals_for"),
		GoalsAgainst:      rec.Int("goals_against"),
		PossessionPct:     rec.Float("possession_pct"),
		PassesCompleted:   rec.Int("passes_completed"),
		PassesAttempted:   rec.Int("passes_attempted"),
		PassCompletionPct: rec.Float("pass_completion_pct"),
		Shots:             rec.Int("shots"),
		ShotsOnTarget:     rec.Int("shots_on_target"),
		ShotsOnTargetPct:  rec.Float("shots_on_target_pct"),
		Tackles:           rec.Int("tackles"),
		TacklesWon:        rec.Int("tackles_won"),
		Interceptions:     rec.Int("interceptions"),
		Blocks:            rec.Int("blocks"),
		Clearances:        rec.Int("clearances"),
		YellowCards:       rec.Int("yellow_cards"),
		RedCards:          rec.Int("red_cards"),
		FoulsCommitted:    rec.Int("fouls_committed"),
		FoulsDrawn:        rec.Int("fouls_drawn"),
		AdditionalStats:   additional,
	}
	if err := stat.Validate(); err != nil {
		return UpsertOutcome{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	values := []any{
		stat.TeamID, stat.LeagueSeasonID, stat.StatType,
		stat.MatchesPlayed, stat.Wins, stat.Draws, stat.Losses,
		stat.GoalsFor, stat.GoalsAgainst,
		stat.PossessionPct, stat.PassesCompleted, stat.PassesAttempted,
		stat.PassCompletionPct, stat.Shots, stat.ShotsOnTarget,
		stat.ShotsOnTargetPct, stat.Tackles, stat.TacklesWon,
		stat.Interceptions, stat.Blocks, stat.Clearances,
		stat.YellowCards, stat.RedCards, stat.FoulsCommitted,
		stat.FoulsDrawn, stat.AdditionalStats,
	}

	return l.storage.Upsert(ctx, "team_season_stats", teamStatColumns, [][]any{values}, teamStatConflictColumns, nil)
}
