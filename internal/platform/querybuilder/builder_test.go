package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectToSQL(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id", "name").
		From("football.teams").
		Where(Eq("team_name", "Arsenal")).
		OrderBy("id ASC").
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}

	want := "SELECT id, name FROM football.teams WHERE team_name = $1 ORDER BY id ASC LIMIT 1"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"Arsenal"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestSelectJoin(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("ls.id").
		From("football.league_seasons ls").
		Join("football.leagues l ON l.id = ls.league_id").
		Where(Eq("l.league_code", "EPL"), Eq("ls.season", "2023-2024")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}

	want := "SELECT ls.id FROM football.league_seasons ls JOIN football.leagues l ON l.id = ls.league_id WHERE l.league_code = $1 AND ls.season = $2"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if len(args) != 2 {
		t.Fatalf("len(args) = %d, want 2", len(args))
	}
}

func TestSelectMissingTable(t *testing.T) {
	t.Parallel()

	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestInsertToSQL(t *testing.T) {
	t.Parallel()

	sql, args, err := InsertInto("football.teams").
		Columns("team_name", "country").
		Values("Arsenal", "England").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}

	want := "INSERT INTO football.teams (team_name, country) VALUES ($1, $2) RETURNING id"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"Arsenal", "England"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestInsertRowArity(t *testing.T) {
	t.Parallel()

	_, _, err := InsertInto("football.teams").
		Columns("team_name", "country").
		Values("Arsenal").
		ToSQL()
	if err == nil {
		t.Fatal("expected error for mismatched row arity")
	}
}

func TestUpsertToSQL(t *testing.T) {
	t.Parallel()

	sql, args, err := Upsert("football.league_standings").
		Columns("league_season_id", "team_id", "standing_date", "position", "points").
		Values(int64(7), int64(3), "2024-05-19", 1, 89).
		OnConflict("league_season_id", "team_id", "standing_date").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}

	want := "INSERT INTO football.league_standings (league_season_id, team_id, standing_date, position, points) " +
		"VALUES ($1, $2, $3, $4, $5) " +
		"ON CONFLICT (league_season_id, team_id, standing_date) " +
		"DO UPDATE SET position = EXCLUDED.position, points = EXCLUDED.points " +
		"RETURNING (xmax = 0) AS inserted"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if len(args) != 5 {
		t.Fatalf("len(args) = %d, want 5", len(args))
	}
}

func TestUpsertMultiRow(t *testing.T) {
	t.Parallel()

	sql, args, err := Upsert("football.teams").
		Columns("team_name", "country").
		Values("Arsenal", "England").
		Values("Chelsea", "England").
		OnConflict("team_name").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}

	want := "INSERT INTO football.teams (team_name, country) VALUES ($1, $2), ($3, $4) " +
		"ON CONFLICT (team_name) DO UPDATE SET country = EXCLUDED.country " +
		"RETURNING (xmax = 0) AS inserted"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if len(args) != 4 {
		t.Fatalf("len(args) = %d, want 4", len(args))
	}
}

func TestUpsertExplicitUpdateColumns(t *testing.T) {
	t.Parallel()

	sql, _, err := Upsert("football.matches").
		Columns("league_season_id", "home_team_id", "away_team_id", "match_date", "home_score", "away_score", "match_status").
		Values(int64(1), int64(2), int64(3), "2024-01-06", 2, 1, "completed").
		OnConflict("league_season_id", "home_team_id", "away_team_id", "match_date").
		UpdateColumns("home_score", "away_score", "match_status").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}

	wantSuffix := "DO UPDATE SET home_score = EXCLUDED.home_score, away_score = EXCLUDED.away_score, match_status = EXCLUDED.match_status RETURNING (xmax = 0) AS inserted"
	if got := sql[len(sql)-len(wantSuffix):]; got != wantSuffix {
		t.Fatalf("sql suffix = %q, want %q", got, wantSuffix)
	}
}

func TestUpsertConflictColumnNotInserted(t *testing.T) {
	t.Parallel()

	_, _, err := Upsert("football.teams").
		Columns("team_name").
		Values("Arsenal").
		OnConflict("id").
		ToSQL()
	if err == nil {
		t.Fatal("expected error for conflict column outside insert columns")
	}
}

func TestUpsertNoUpdatableColumns(t *testing.T) {
	t.Parallel()

	_, _, err := Upsert("football.teams").
		Columns("team_name").
		Values("Arsenal").
		OnConflict("team_name").
		ToSQL()
	if err == nil {
		t.Fatal("expected error when every column is a conflict column")
	}
}

func TestUpdateToSQL(t *testing.T) {
	t.Parallel()

	sql, args, err := Update("football.data_load_log").
		Set("load_status", "completed").
		Set("records_processed", 380).
		Where(Eq("id", int64(11))).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL() error = %v", err)
	}

	want := "UPDATE football.data_load_log SET load_status = $1, records_processed = $2 WHERE id = $3"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"completed", 380, int64(11)}) {
		t.Fatalf("args = %v", args)
	}
}

func TestUpdateMissingSet(t *testing.T) {
	t.Parallel()

	if _, _, err := Update("football.teams").ToSQL(); err == nil {
		t.Fatal("expected error for update without set clauses")
	}
}
