package usecase

import (
	"context"
	"fmt"

	"github.com/matchledger/footstats/internal/domain/loadlog"
	"github.com/matchledger/footstats/internal/domain/match"
	"github.com/matchledger/footstats/internal/normalize"
	"github.com/matchledger/footstats/internal/platform/logging"
)

var matchColumns = []string{
	"league_season_id", "home_team_id", "away_team_id",
	"match_date", "matchweek", "home_score", "away_score",
	"home_halftime_score", "away_halftime_score",
	"attendance", "venue", "referee", "match_status",
	"external_match_id",
}

var matchConflictColumns = []string{"league_season_id", "home_team_id", "away_team_id", "match_date"}

// Only the mutable result fields are reconciled on rerun; a refreshed
// schedule must not null out halftime scores or the external id.
var matchUpdateColumns = []string{
	"matchweek", "home_score", "away_score",
	"attendance", "venue", "referee", "match_status",
}

// MatchLoader ingests the fixture schedule of one league season. Fixtures
// are keyed by season, teams, and date, so a rerun after matchday refreshes
// scores in place instead of duplicating rows.
type MatchLoader struct {
	storage Storage
	source  SourceProvider
	loads   loadlog.Repository
	logger  *logging.Logger
}

func NewMatchLoader(storage Storage, source SourceProvider, loads loadlog.Repository, logger *logging.Logger) *MatchLoader {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchLoader{
		storage: storage,
		source:  source,
		loads:   loads,
		logger:  logger,
	}
}

func (l *MatchLoader) Load(ctx context.Context, leagueCode, season string, refresh bool) (Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchLoader.Load")
	defer span.End()

	l.logger.InfoContext(ctx, "loading matches", "league", leagueCode, "season", season)

	leagueSeasonID, ok, err := l.storage.GetLeagueSeasonID(ctx, leagueCode, season)
	if err != nil {
		return Result{}, fmt.Errorf("resolve league season %s %s: %w", leagueCode, season, err)
	}
	if !ok {
		l.logger.ErrorContext(ctx, "league season not found", "league", leagueCode, "season", season)
		return Result{}, nil
	}

	tracker := NewLoadTracker(l.loads, l.logger)
	if err := tracker.Start(ctx, SourceFBref, "matches_load", "matches", &leagueSeasonID); err != nil {
		return Result{}, fmt.Errorf("start load log: %w", err)
	}

	rows, err := l.source.FetchSchedule(ctx, leagueCode, season, refresh)
	if err != nil {
		fetchErr := fmt.Errorf("fetch schedule %s %s: %w", leagueCode, season, err)
		_ = tracker.Fail(ctx, fetchErr)
		return Result{}, fetchErr
	}
	if len(rows) == 0 {
		l.logger.WarnContext(ctx, "no matches found", "league", leagueCode, "season", season)
		_ = tracker.Complete(ctx)
		return Result{}, nil
	}

	result := Result{Processed: len(rows)}
	for idx, row := range rows {
		outcome, err := l.processRow(ctx, leagueSeasonID, row)
		if err != nil {
			l.logger.ErrorContext(ctx, "match row failed", "row", idx, "error", err.Error())
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

	l.logger.InfoContext(ctx, "matches loaded", "league", leagueCode, "season", season, "result", result.String())

	return result, nil
}

func (l *MatchLoader) processRow(ctx context.Context, leagueSeasonID int64, row normalize.Row) (UpsertOutcome, error) {
	homeTeam, homeOK := row.String("home_team", "Home")
	awayTeam, awayOK := row.String("away_team", "Away")
	if !homeOK || !awayOK {
		return UpsertOutcome{}, fmt.Errorf("%w: missing team names", ErrInvalidInput)
	}

	matchDate, ok := row.MatchDate()
	if !ok {
		return UpsertOutcome{}, fmt.Errorf("%w: missing match date", ErrInvalidInput)
	}

	homeTeamID, err := l.storage.GetOrCreateTeam(ctx, homeTeam, nil)
	if err != nil {
		return UpsertOutcome{}, fmt.Errorf("resolve home team %s: %w", homeTeam, err)
	}
	awayTeamID, err := l.storage.GetOrCreateTeam(ctx, awayTeam, nil)
	if err != nil {
		return UpsertOutcome{}, fmt.Errorf("resolve away team %s: %w", awayTeam, err)
	}

	homeScore, awayScore := row.Score()

	m := match.Match{
		LeagueSeasonID: leagueSeasonID,
		HomeTeamID:     homeTeamID,
		AwayTeamID:     awayTeamID,
		MatchDate:      matchDate,
		Matchweek:      row.Matchweek(),
		HomeScore:      homeScore,
		AwayScore:      awayScore,
		Attendance:     row.Attendance(),
		Venue:          row.Venue(),
		Referee:        row.Referee(),
		Status:         match.StatusForScore(homeScore),
		ExternalID:     match.ExternalID(leagueSeasonID, homeTeam, awayTeam, matchDate),
	}
	if err := m.Validate(); err != nil {
		return UpsertOutcome{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	values := []any{
		m.LeagueSeasonID, m.HomeTeamID, m.AwayTeamID,
		m.MatchDate, m.Matchweek, m.HomeScore, m.AwayScore,
		m.HomeHalftimeScore, m.AwayHalftimeScore,
		m.Attendance, m.Venue, m.Referee, m.Status,
		m.ExternalID,
	}

	return l.storage.Upsert(ctx, "matches", matchColumns, [][]any{values}, matchConflictColumns, matchUpdateColumns)
}
