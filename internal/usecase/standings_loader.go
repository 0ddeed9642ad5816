package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/matchledger/footstats/internal/domain/loadlog"
	"github.com/matchledger/footstats/internal/domain/standing"
	"github.com/matchledger/footstats/internal/normalize"
	"github.com/matchledger/footstats/internal/platform/logging"
)

var standingColumns = []string{
	"league_season_id", "team_id", "position",
	"matches_played", "wins", "draws", "losses",
	"goals_for", "goals_against", "goal_difference",
	"points", "home_wins", "home_draws", "home_losses",
	"away_wins", "away_draws", "away_losses",
	"standing_date",
}

var standingConflictColumns = []string{"league_season_id", "team_id", "standing_date"}

// StandingsLoader ingests a dated snapshot of the league table. Snapshots
// are keyed by date, so reloading the same day reconciles while a new day
// appends history.
type StandingsLoader struct {
	storage Storage
	source  SourceProvider
	loads   loadlog.Repository
	logger  *logging.Logger
}

func NewStandingsLoader(storage Storage, source SourceProvider, loads loadlog.Repository, logger *logging.Logger) *StandingsLoader {
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingsLoader{
		storage: storage,
		source:  source,
		loads:   loads,
		logger:  logger,
	}
}

// Load fetches and stores the league table. A zero standingDate snapshots
// as of today.
func (l *StandingsLoader) Load(ctx context.Context, leagueCode, season string, standingDate time.Time, refresh bool) (Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsLoader.Load")
	defer span.End()

	if standingDate.IsZero() {
		standingDate = time.Now()
	}
	// Snapshot on the calendar day in the caller's zone, not the UTC day.
	year, month, day := standingDate.Date()
	standingDate = time.Date(year, month, day, 0, 0, 0, 0, standingDate.Location())

	l.logger.InfoContext(ctx, "loading standings", "league", leagueCode, "season", season)

	leagueSeasonID, ok, err := l.storage.GetLeagueSeasonID(ctx, leagueCode, season)
	if err != nil {
		return Result{}, fmt.Errorf("resolve league season %s %s: %w", leagueCode, season, err)
	}
	if !ok {
		l.logger.ErrorContext(ctx, "league season not found", "league", leagueCode, "season", season)
		return Result{}, nil
	}

	tracker := NewLoadTracker(l.loads, l.logger)
	if err := tracker.Start(ctx, SourceFBref, "standings_load", "league_standings", &leagueSeasonID); err != nil {
		return Result{}, fmt.Errorf("start load log: %w", err)
	}

	rows, err := l.source.FetchLeagueTable(ctx, leagueCode, season, refresh)
	if err != nil {
		fetchErr := fmt.Errorf("fetch league table %s %s: %w", leagueCode, season, err)
		_ = tracker.Fail(ctx, fetchErr)
		return Result{}, fetchErr
	}
	if len(rows) == 0 {
		l.logger.WarnContext(ctx, "no standings found", "league", leagueCode, "season", season)
		_ = tracker.Complete(ctx)
		return Result{}, nil
	}

	result := Result{Processed: len(rows)}
	for idx, row := range rows {
		outcome, err := l.processRow(ctx, leagueSeasonID, standingDate, idx, row)
		if err != nil {
			l.logger.ErrorContext(ctx, "standing row failed", "row", idx, "error", err.Error())
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

	l.logger.InfoContext(ctx, "standings loaded", "league", leagueCode, "season", season, "result", result.String())

	return result, nil
}

func (l *StandingsLoader) processRow(ctx context.Context, leagueSeasonID int64, standingDate time.Time, idx int, row normalize.Row) (UpsertOutcome, error) {
	teamName, ok := row.TeamName()
	if !ok {
		return UpsertOutcome{}, fmt.Errorf("%w: missing team name", ErrInvalidInput)
	}

	teamID, err := l.storage.GetOrCreateTeam(ctx, teamName, nil)
	if err != nil {
		return UpsertOutcome{}, fmt.Errorf("resolve team %s: %w", teamName, err)
	}

	// Table order is the position unless the source publishes a rank column.
	position := row.IntDefault(idx+1, "Rk")

	goalsFor := row.IntDefault(0, "GF", "Goals For", "F")
	goalsAgainst := row.IntDefault(0, "GA", "Goals Against", "A")

	s := standing.Snapshot{
		LeagueSeasonID: leagueSeasonID,
		TeamID:         teamID,
		Position:       position,
		MatchesPlayed:  row.IntDefault(0, "MP", "Matches", "Pld"),
		Wins:           row.IntDefault(0, "W", "Wins"),
		Draws:          row.IntDefault(0, "D", "Draws"),
		Losses:         row.IntDefault(0, "L", "Losses"),
		GoalsFor:       goalsFor,
		GoalsAgainst:   goalsAgainst,
		GoalDifference: row.IntDefault(goalsFor-goalsAgainst, "GD", "Goal Difference"),
		Points:         row.IntDefault(0, "Pts", "Points"),
		HomeWins:       row.Int("Home W"),
		HomeDraws:      row.Int("Home D"),
		HomeLosses:     row.Int("Home L"),
		AwayWins:       row.Int("Away W"),
		AwayDraws:      row.Int("Away D"),
		AwayLosses:     row.Int("Away L"),
		StandingDate:   standingDate,
	}
	if err := s.Validate(); err != nil {
		return UpsertOutcome{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	values := []any{
		s.LeagueSeasonID, s.TeamID, s.Position,
		s.MatchesPlayed, s.Wins, s.Draws, s.Losses,
		s.GoalsFor, s.GoalsAgainst, s.GoalDifference,
		s.Points, s.HomeWins, s.HomeDraws, s.HomeLosses,
		s.AwayWins, s.AwayDraws, s.AwayLosses,
		s.StandingDate,
	}

	return l.storage.Upsert(ctx, "league_standings", standingColumns, [][]any{values}, standingConflictColumns, nil)
}
