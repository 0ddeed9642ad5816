package usecase

import (
	"context"
	"fmt"

	"github.com/matchledger/footstats/internal/domain/loadlog"
	"github.com/matchledger/footstats/internal/domain/player"
	"github.com/matchledger/footstats/internal/domain/playerstats"
	"github.com/matchledger/footstats/internal/normalize"
	"github.com/matchledger/footstats/internal/platform/logging"
)

var playerStatColumns = []string{
	"player_id", "team_id", "league_season_id", "stat_type",
	"matches_played", "starts", "minutes_played",
	"goals", "assists", "penalty_goals", "penalty_attempts",
	"shots", "shots_on_target", "shots_on_target_pct",
	"goals_per_shot", "passes_completed", "passes_attempted",
	"pass_completion_pct", "key_passes", "tackles",
	"tackles_won", "interceptions", "blocks", "clearances",
	"yellow_cards", "red_cards", "fouls_committed",
	"fouls_drawn", "saves", "saves_pct", "clean_sheets",
	"goals_against", "additional_stats",
}

var playerStatConflictColumns = []string{"player_id", "team_id", "league_season_id", "stat_type"}

// PlayerStatsLoader ingests season-level player statistics per category.
// Goalkeeping is excluded from default runs; its upstream table has a
// different shape and must be requested explicitly.
type PlayerStatsLoader struct {
	storage Storage
	source  SourceProvider
	loads   loadlog.Repository
	logger  *logging.Logger
}

func NewPlayerStatsLoader(storage Storage, source SourceProvider, loads loadlog.Repository, logger *logging.Logger) *PlayerStatsLoader {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerStatsLoader{
		storage: storage,
		source:  source,
		loads:   loads,
		logger:  logger,
	}
}

func (l *PlayerStatsLoader) Load(ctx context.Context, leagueCode, season string, statTypes []string, refresh bool) (Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsLoader.Load")
	defer span.End()

	if len(statTypes) == 0 {
		statTypes = normalize.DefaultPlayerStatTypes()
	}

	l.logger.InfoContext(ctx, "loading player stats", "league", leagueCode, "season", season)

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
			l.logger.ErrorContext(ctx, "player stat category failed",
				"league", leagueCode, "season", season, "stat_type", statType, "error", err.Error())
			continue
		}
		total.Add(result)
	}

	l.logger.InfoContext(ctx, "player stats loaded", "league", leagueCode, "season", season, "result", total.String())

	return total, nil
}

func (l *PlayerStatsLoader) loadStatType(ctx context.Context, leagueCode, season, statType string, leagueSeasonID int64, refresh bool) (Result, error) {
	tracker := NewLoadTracker(l.loads, l.logger)
	if err := tracker.Start(ctx, SourceFBref, "player_stats_"+statType, "player_season_stats", &leagueSeasonID); err != nil {
		return Result{}, fmt.Errorf("start load log: %w", err)
	}

	rows, err := l.source.FetchPlayerSeasonStats(ctx, leagueCode, season, statType, refresh)
	if err != nil {
		fetchErr := fmt.Errorf("fetch %s player stats %s %s: %w", statType, leagueCode, season, err)
		_ = tracker.Fail(ctx, fetchErr)
		return Result{}, fetchErr
	}
	if len(rows) == 0 {
		l.logger.WarnContext(ctx, "no player stats found", "league", leagueCode, "season", season, "stat_type", statType)
		_ = tracker.Complete(ctx)
		return Result{}, nil
	}

	result := Result{Processed: len(rows)}
	for idx, row := range rows {
		outcome, err := l.processRow(ctx, leagueSeasonID, statType, row)
		if err != nil {
			l.logger.ErrorContext(ctx, "player stat row failed", "stat_type", statType, "row", idx, "error", err.Error())
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

func (l *PlayerStatsLoader) processRow(ctx context.Context, leagueSeasonID int64, statType string, row normalize.Row) (UpsertOutcome, error) {
	playerName, playerOK := row.PlayerName()
	teamName, teamOK := row.TeamName()
	if !playerOK || !teamOK {
		return UpsertOutcome{}, fmt.Errorf("%w: missing player or team name", ErrInvalidInput)
	}

	var attrs player.Attributes
	if nationality, ok := row.String("nationality", "Nation"); ok {
		attrs.Nationality = player.CleanNationality(nationality)
	}
	if position, ok := row.String("position", "Pos"); ok {
		attrs.Position = player.CleanPosition(position)
	}

	playerID, err := l.storage.GetOrCreatePlayer(ctx, playerName, attrs)
	if err != nil {
		return UpsertOutcome{}, fmt.Errorf("resolve player %s: %w", playerName, err)
	}
	teamID, err := l.storage.GetOrCreateTeam(ctx, teamName, nil)
	if err != nil {
		return UpsertOutcome{}, fmt.Errorf("resolve team %s: %w", teamName, err)
	}

	rec := normalize.Extract(row, normalize.PlayerFields(statType), normalize.PlayerIdentityColumns(), statType)
	additional, err := rec.EncodeAdditional()
	if err != nil {
		return UpsertOutcome{}, err
	}

	stat := playerstats.SeasonStat{
		PlayerID:          playerID,
		TeamID:            teamID,
		LeagueSeasonID:    leagueSeasonID,
		StatType:          statType,
		MatchesPlayed:     rec.Int("matches_played"),
		Starts:            rec.Int("starts"),
		MinutesPlayed:     rec.Int("minutes_played"),
		Goals:             rec.Int("goals"),
		Assists:           rec.Int("assists"),
		PenaltyGoals:      rec.Int("penalty_goals"),
		PenaltyAttempts:   rec.Int("penalty_attempts"),
		Shots:             rec.Int("shots"),
		ShotsOnTarget:     rec.Int("shots_on_target"),
		ShotsOnTargetPct:  rec.Float("shots_on_target_pct"),
		GoalsPerShot:      rec.Float("goals_per_shot"),
		PassesCompleted:   rec.Int("passes_completed"),
		PassesAttempted:   rec.Int("passes_attempted"),
		PassCompletionPct: rec.Float("pass_completion_pct"),
		KeyPasses:         rec.Int("key_passes"),
		Tackles:           rec.Int("tackles"),
		TacklesWon:        rec.Int("tackles_won"),
		Interceptions:     rec.Int("interceptions"),
		Blocks:            rec.Int("blocks"),
		Clearances:        rec.Int("clearances"),
		YellowCards:       rec.Int("yellow_cards"),
		RedCards:          rec.Int("red_cards"),
		FoulsCommitted:    rec.Int("fouls_committed"),
		FoulsDrawn:        rec.Int("fouls_drawn"),
		Saves:             rec.Int("saves"),
		SavesPct:          rec.Float("saves_pct"),
		CleanSheets:       rec.Int("clean_sheets"),
		GoalsAgainst:      rec.Int("goals_against"),
		AdditionalStats:   additional,
	}
	if err := stat.Validate(); err != nil {
		return UpsertOutcome{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	values := []any{
		stat.PlayerID, stat.TeamID, stat.LeagueSeasonID, stat.StatType,
		stat.MatchesPlayed, stat.Starts, stat.MinutesPlayed,
		stat.Goals, stat.Assists, stat.PenaltyGoals, stat.PenaltyAttempts,
		stat.Shots, stat.ShotsOnTarget, stat.ShotsOnTargetPct,
		stat.GoalsPerShot, stat.PassesCompleted, stat.PassesAttempted,
		stat.PassCompletionPct, stat.KeyPasses, stat.Tackles,
		stat.TacklesWon, stat.Interceptions, stat.Blocks, stat.Clearances,
		stat.YellowCards, stat.RedCards, stat.FoulsCommitted,
		stat.FoulsDrawn, stat.Saves, stat.SavesPct, stat.CleanSheets,
		stat.GoalsAgainst, stat.AdditionalStats,
	}

	return l.storage.Upsert(ctx, "player_season_stats", playerStatColumns, [][]any{values}, playerStatConflictColumns, nil)
}
