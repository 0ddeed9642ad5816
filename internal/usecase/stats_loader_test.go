package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/matchledger/footstats/internal/domain/loadlog"
	"github.com/matchledger/footstats/internal/infrastructure/repository/memory"
	"github.com/matchledger/footstats/internal/normalize"
	"github.com/matchledger/footstats/internal/platform/logging"
	"github.com/matchledger/footstats/internal/usecase"
)

func TestTeamStatsLoaderLoad(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	store.AddLeagueSeason("EPL", "2023-2024")
	source := &stubSource{teamStats: map[string][]normalize.Row{
		normalize.StatStandard: {
			{"Squad": "Arsenal", "MP": float64(38), "W": float64(26), "Gls": float64(88), "xG": float64(84.2)},
		},
		normalize.StatShooting: {
			{"Squad": "Arsenal", "Sh": float64(610), "SoT": float64(221), "Dist": float64(15.8)},
		},
	}}

	loader := usecase.NewTeamStatsLoader(store, source, store, logging.NewNop())
	result, err := loader.Load(context.Background(), "EPL", "2023-2024", []string{normalize.StatStandard, normalize.StatShooting}, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Processed != 2 || result.Inserted != 2 {
		t.Fatalf("unexpected result %s", result.String())
	}

	rows := store.Rows("team_season_stats")
	if len(rows) != 2 {
		t.Fatalf("stored rows = %d, want 2", len(rows))
	}
	for _, row := range rows {
		additional := map[string]any{}
		if err := sonic.UnmarshalString(row["additional_stats"].(string), &additional); err != nil {
			t.Fatalf("decode additional stats: %v", err)
		}
		switch row["stat_type"] {
		case normalize.StatStandard:
			if got := row["matches_played"].(*int); got == nil || *got != 38 {
				t.Fatalf("matches_played = %v, want 38", got)
			}
			if _, ok := additional["xG"]; !ok {
				t.Fatalf("unmapped xG column should land in additional stats, got %v", additional)
			}
		case normalize.StatShooting:
			if got := row["shots"].(*int); got == nil || *got != 610 {
				t.Fatalf("shots = %v, want 610", got)
			}
			if _, ok := additional["Dist"]; !ok {
				t.Fatalf("unmapped Dist column should land in additional stats, got %v", additional)
			}
		}
	}

	loads := store.Loads()
	if len(loads) != 2 {
		t.Fatalf("loads recorded = %d, want one per category", len(loads))
	}
	types := map[string]bool{}
	for _, load := range loads {
		types[load.LoadType] = true
		if load.TargetTable != "team_season_stats" || load.Status != loadlog.StatusCompleted {
			t.Fatalf("load %+v not completed against team_season_stats", load)
		}
	}
	if !types["team_stats_standard"] || !types["team_stats_shooting"] {
		t.Fatalf("load types = %v", types)
	}
}

func TestTeamStatsLoaderCategoryIsolation(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	store.AddLeagueSeason("EPL", "2023-2024")
	source := &stubSource{
		teamStats: map[string][]normalize.Row{
			normalize.StatShooting: {{"Squad": "Arsenal", "Sh": float64(610)}},
		},
		teamStatsErr: map[string]error{
			normalize.StatStandard: errors.New("upstream unavailable"),
		},
	}

	loader := usecase.NewTeamStatsLoader(store, source, store, logging.NewNop())
	result, err := loader.Load(context.Background(), "EPL", "2023-2024", []string{normalize.StatStandard, normalize.StatShooting}, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Inserted != 1 {
		t.Fatalf("result %s, want the healthy category loaded", result.String())
	}

	byType := map[string]string{}
	for _, load := range store.Loads() {
		byType[load.LoadType] = load.Status
	}
	if byType["team_stats_standard"] != loadlog.StatusFailed {
		t.Fatalf("failed category status = %q", byType["team_stats_standard"])
	}
	if byType["team_stats_shooting"] != loadlog.StatusCompleted {
		t.Fatalf("healthy category status = %q", byType["team_stats_shooting"])
	}
}

func TestTeamStatsLoaderRerunReconciles(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	store.AddLeagueSeason("EPL", "2023-2024")
	source := &stubSource{teamStats: map[string][]normalize.Row{
		normalize.StatStandard: {{"Squad": "Arsenal", "MP": float64(20), "W": float64(14)}},
	}}
	loader := usecase.NewTeamStatsLoader(store, source, store, logging.NewNop())

	if _, err := loader.Load(context.Background(), "EPL", "2023-2024", []string{normalize.StatStandard}, false); err != nil {
		t.Fatalf("first load: %v", err)
	}
	source.teamStats[normalize.StatStandard] = []normalize.Row{
		{"Squad": "Arsenal", "MP": float64(38), "W": float64(26)},
	}
	result, err := loader.Load(context.Background(), "EPL", "2023-2024", []string{normalize.StatStandard}, true)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if result.Inserted != 0 || result.Updated != 1 {
		t.Fatalf("rerun result %s, want one update", result.String())
	}

	rows := store.Rows("team_season_stats")
	if len(rows) != 1 {
		t.Fatalf("stored rows = %d, want 1", len(rows))
	}
	if got := rows[0]["matches_played"].(*int); got == nil || *got != 38 {
		t.Fatalf("matches_played = %v, want reconciled 38", got)
	}
}

func TestPlayerStatsLoaderLoad(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	store.AddLeagueSeason("EPL", "2023-2024")
	source := &stubSource{playerStats: map[string][]normalize.Row{
		normalize.StatStandard: {
			{"Player": "Bukayo Saka", "Squad": "Arsenal", "Nation": "eng ENG", "Pos": "FW,MF", "games": float64(35), "Gls": float64(16)},
			{"Squad": "Arsenal", "games": float64(10)}, // no player name
		},
	}}

	loader := usecase.NewPlayerStatsLoader(store, source, store, logging.NewNop())
	result, err := loader.Load(context.Background(), "EPL", "2023-2024", []string{normalize.StatStandard}, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Inserted != 1 || result.Failed != 1 {
		t.Fatalf("result %s, want one insert and one rejected row", result.String())
	}

	attrs, ok := store.PlayerAttributes("Bukayo Saka")
	if !ok {
		t.Fatal("player was not registered")
	}
	if attrs.Position == nil || *attrs.Position != "FW" {
		t.Fatalf("position = %v, want first listed position", attrs.Position)
	}
	if attrs.Nationality == nil || *attrs.Nationality != "eng ENG" {
		t.Fatalf("nationality = %v", attrs.Nationality)
	}

	rows := store.Rows("player_season_stats")
	if len(rows) != 1 {
		t.Fatalf("stored rows = %d, want 1", len(rows))
	}
	if got := rows[0]["goals"].(*int); got == nil || *got != 16 {
		t.Fatalf("goals = %v, want 16", got)
	}
	if rows[0]["stat_type"] != normalize.StatStandard {
		t.Fatalf("stat_type = %v", rows[0]["stat_type"])
	}
}

func TestPlayerStatsLoaderDefaultCategoriesSkipGoalkeeping(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	store.AddLeagueSeason("EPL", "2023-2024")
	source := &stubSource{playerStats: map[string][]normalize.Row{}}

	loader := usecase.NewPlayerStatsLoader(store, source, store, logging.NewNop())
	if _, err := loader.Load(context.Background(), "EPL", "2023-2024", nil, false); err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, load := range store.Loads() {
		if load.LoadType == "player_stats_"+normalize.StatGoalkeeping {
			t.Fatal("goalkeeping must be opt-in")
		}
	}
	if got, want := len(store.Loads()), len(normalize.DefaultPlayerStatTypes()); got != want {
		t.Fatalf("loads recorded = %d, want %d", got, want)
	}
}
