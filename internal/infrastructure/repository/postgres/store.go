package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/matchledger/footstats/internal/domain/player"
	qb "github.com/matchledger/footstats/internal/platform/querybuilder"
	"github.com/matchledger/footstats/internal/usecase"
)

// Store implements usecase.Storage on PostgreSQL. The connection's
// search_path carries the schema, so queries use bare table names.
// Identity registration is select-then-insert and assumes a single writer;
// the pipeline runs one load at a time.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Connect opens and pings the database.
func Connect(url string, maxConns int) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
		db.SetMaxIdleConns(maxConns)
	}

	return db, nil
}

func (s *Store) GetLeagueSeasonID(ctx context.Context, leagueCode, season string) (int64, bool, error) {
	query, args, err := qb.Select("ls.league_season_id").
		From("league_seasons ls").
		Join("leagues l ON ls.league_id = l.league_id").
		Join("seasons s ON ls.season_id = s.season_id").
		Where(qb.Eq("l.league_code", leagueCode), qb.Eq("s.season_name", season)).
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build league season query: %w", err)
	}

	var id int64
	if err := s.db.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("select league season: %w", err)
	}

	return id, true, nil
}

func (s *Store) GetOrCreateTeam(ctx context.Context, name string, country *string) (int64, error) {
	query, args, err := qb.Select("team_id").From("teams").
		Where(qb.Eq("team_name", name)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build select team query: %w", err)
	}

	var id int64
	err = s.db.GetContext(ctx, &id, query, args...)
	if err == nil {
		return id, nil
	}
	if !isNotFound(err) {
		return 0, fmt.Errorf("select team: %w", err)
	}

	insert, insertArgs, err := qb.InsertInto("teams").
		Columns("team_name", "country").
		Values(name, country).
		Suffix("RETURNING team_id").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert team query: %w", err)
	}
	if err := s.db.GetContext(ctx, &id, insert, insertArgs...); err != nil {
		return 0, fmt.Errorf("insert team %s: %w", name, err)
	}

	return id, nil
}

func (s *Store) GetOrCreatePlayer(ctx context.Context, name string, attrs player.Attributes) (int64, error) {
	query, args, err := qb.Select("player_id").From("players").
		Where(qb.Eq("player_name", name)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build select player query: %w", err)
	}

	var id int64
	err = s.db.GetContext(ctx, &id, query, args...)
	if err == nil {
		return id, nil
	}
	if !isNotFound(err) {
		return 0, fmt.Errorf("select player: %w", err)
	}

	columns := []string{"player_name"}
	values := []any{name}
	if attrs.Nationality != nil {
		columns = append(columns, "nationality")
		values = append(values, *attrs.Nationality)
	}
	if attrs.Position != nil {
		columns = append(columns, "position")
		values = append(values, *attrs.Position)
	}

	insert, insertArgs, err := qb.InsertInto("players").
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING player_id").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert player query: %w", err)
	}
	if err := s.db.GetContext(ctx, &id, insert, insertArgs...); err != nil {
		return 0, fmt.Errorf("insert player %s: %w", name, err)
	}

	return id, nil
}

// Upsert writes rows with ON CONFLICT reconciliation and reports, via the
// statement's RETURNING clause, how many rows were created versus updated.
func (s *Store) Upsert(ctx context.Context, table string, columns []string, rows [][]any, conflictColumns, updateColumns []string) (usecase.UpsertOutcome, error) {
	if len(rows) == 0 {
		return usecase.UpsertOutcome{}, nil
	}

	builder := qb.Upsert(table).
		Columns(columns...).
		OnConflict(conflictColumns...).
		UpdateColumns(updateColumns...)
	for _, row := range rows {
		builder = builder.Values(row...)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return usecase.UpsertOutcome{}, fmt.Errorf("build upsert query for %s: %w", table, err)
	}

	result, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return usecase.UpsertOutcome{}, fmt.Errorf("upsert into %s: %w", table, err)
	}
	defer result.Close()

	var outcome usecase.UpsertOutcome
	for result.Next() {
		var inserted bool
		if err := result.Scan(&inserted); err != nil {
			return outcome, fmt.Errorf("scan upsert outcome for %s: %w", table, err)
		}
		if inserted {
			outcome.Inserted++
		} else {
			outcome.Updated++
		}
	}
	if err := result.Err(); err != nil {
		return outcome, fmt.Errorf("iterate upsert outcomes for %s: %w", table, err)
	}

	return outcome, nil
}
