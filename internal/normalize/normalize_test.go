package normalize

import (
	"strings"
	"testing"

	"github.com/bytedance/sonic"
)

func TestExtractAliasEquivalence(t *testing.T) {
	t.Parallel()

	abbreviated := Row{"Squad": "Arsenal", "MP": float64(38), "W": float64(28)}
	spelled := Row{"team": "Arsenal", "Matches": float64(38), "Wins": float64(28)}

	specs := TeamFields(StatStandard)
	a := Extract(abbreviated, specs, TeamIdentityColumns(), StatStandard)
	b := Extract(spelled, specs, TeamIdentityColumns(), StatStandard)

	if got := a.Int("matches_played"); got == nil || *got != 38 {
		t.Fatalf("matches_played = %v", got)
	}
	if got := b.Int("matches_played"); got == nil || *got != 38 {
		t.Fatalf("matches_played via spelled alias = %v", got)
	}
	if got := a.Int("wins"); got == nil || *got != 28 {
		t.Fatalf("wins = %v", got)
	}
	if got := b.Int("wins"); got == nil || *got != 28 {
		t.Fatalf("wins via spelled alias = %v", got)
	}
}

func TestExtractAliasOrder(t *testing.T) {
	t.Parallel()

	// "# Pl" outranks "MP" for team standard stats.
	row := Row{"team": "Chelsea", "# Pl": float64(25), "MP": float64(38)}
	rec := Extract(row, TeamFields(StatStandard), TeamIdentityColumns(), StatStandard)

	if got := rec.Int("matches_played"); got == nil || *got != 25 {
		t.Fatalf("matches_played = %v, want 25", got)
	}
}

func TestExtractUnparseableValueIsAbsent(t *testing.T) {
	t.Parallel()

	row := Row{"team": "Everton", "W": "n/a"}
	rec := Extract(row, TeamFields(StatStandard), TeamIdentityColumns(), StatStandard)

	if got := rec.Int("wins"); got != nil {
		t.Fatalf("wins = %v, want nil", got)
	}
}

func TestExtractOverflow(t *testing.T) {
	t.Parallel()

	row := Row{
		"Squad":   "Arsenal",
		"Sh":      float64(600),
		"SoT":     float64(220),
		"SoT%":    36.7,
		"G/Sh":    0.15,
		"npxG":    55.2,
		"Matches": "Matches",
	}
	rec := Extract(row, TeamFields(StatShooting), TeamIdentityColumns(), StatShooting)

	if got := rec.Int("shots"); got == nil || *got != 600 {
		t.Fatalf("shots = %v", got)
	}
	if got := rec.Float("shots_on_target_pct"); got == nil || *got != 36.7 {
		t.Fatalf("shots_on_target_pct = %v", got)
	}

	// Named extras land under their target name.
	if got, ok := rec.Additional["goals_per_shot"]; !ok || got != 0.15 {
		t.Fatalf("Additional[goals_per_shot] = %v", got)
	}
	// Unmapped columns flow through under their source name.
	if got, ok := rec.Additional["npxG"]; !ok || got != 55.2 {
		t.Fatalf("Additional[npxG] = %v", got)
	}
	// Source columns consumed via alias still appear in the overflow under
	// their raw name; only exact column-name matches are excluded.
	if _, ok := rec.Additional["Sh"]; !ok {
		t.Fatal("Additional missing raw Sh column")
	}
	// Identity columns never leak into the overflow.
	if _, ok := rec.Additional["Squad"]; ok {
		t.Fatal("Additional contains identity column")
	}
}

func TestExtractPlayerCommonFields(t *testing.T) {
	t.Parallel()

	row := Row{
		"player":  "Bukayo Saka",
		"Squad":   "Arsenal",
		"games":   float64(35),
		"minutes": float64(2980),
		"tackles": float64(40),
		"fouls":   float64(12),
		"fouled":  float64(48),
	}
	rec := Extract(row, PlayerFields(StatDefense), PlayerIdentityColumns(), StatDefense)

	if got := rec.Int("matches_played"); got == nil || *got != 35 {
		t.Fatalf("matches_played = %v", got)
	}
	if got := rec.Int("tackles"); got == nil || *got != 40 {
		t.Fatalf("tackles = %v", got)
	}
	if got := rec.Int("fouls_committed"); got == nil || *got != 12 {
		t.Fatalf("fouls_committed = %v", got)
	}
	if got := rec.Int("fouls_drawn"); got == nil || *got != 48 {
		t.Fatalf("fouls_drawn = %v", got)
	}
}

func TestExtractPassingTypesAllOverflow(t *testing.T) {
	t.Parallel()

	row := Row{"Squad": "Spurs", "Live": float64(18000), "Dead": float64(2800)}
	rec := Extract(row, TeamFields(StatPassingTypes), TeamIdentityColumns(), StatPassingTypes)

	if len(rec.Fields) != 0 {
		t.Fatalf("Fields = %v, want empty", rec.Fields)
	}
	if len(rec.Additional) != 2 {
		t.Fatalf("Additional = %v, want both columns", rec.Additional)
	}
}

func TestEncodeAdditional(t *testing.T) {
	t.Parallel()

	empty := Record{}
	if got, err := empty.EncodeAdditional(); err != nil || got != "{}" {
		t.Fatalf("EncodeAdditional() = %q, %v", got, err)
	}

	rec := Record{Additional: map[string]any{"touches": 23000, "note": "high press"}}
	encoded, err := rec.EncodeAdditional()
	if err != nil {
		t.Fatalf("EncodeAdditional() error = %v", err)
	}

	var decoded map[string]any
	if err := sonic.UnmarshalString(encoded, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["note"] != "high press" {
		t.Fatalf("decoded = %v", decoded)
	}
}

func TestRowScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		row        Row
		home, away int
		played     bool
	}{
		{name: "composite en dash", row: Row{"Score": "2–1"}, home: 2, away: 1, played: true},
		{name: "composite hyphen", row: Row{"Score": "0-0"}, home: 0, away: 0, played: true},
		{name: "separate columns", row: Row{"home_score": float64(3), "away_score": float64(2)}, home: 3, away: 2, played: true},
		{name: "not played", row: Row{"Venue": "Anfield"}},
		{name: "only one column", row: Row{"home_score": float64(3)}},
		{name: "missing away half", row: Row{"score": "2–"}},
		{name: "missing home half", row: Row{"Score": "–1"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			home, away := tt.row.Score()
			if !tt.played {
				if home != nil || away != nil {
					t.Fatalf("Score() = %v, %v, want nil, nil", home, away)
				}
				return
			}
			if home == nil || away == nil {
				t.Fatalf("Score() = %v, %v", home, away)
			}
			if *home != tt.home || *away != tt.away {
				t.Fatalf("Score() = %d-%d, want %d-%d", *home, *away, tt.home, tt.away)
			}
		})
	}
}

func TestRowAttendance(t *testing.T) {
	t.Parallel()

	row := Row{"Attendance": "60,232"}
	if got := row.Attendance(); got == nil || *got != 60232 {
		t.Fatalf("Attendance() = %v", got)
	}

	bad := Row{"attendance": "sold out"}
	if got := bad.Attendance(); got != nil {
		t.Fatalf("Attendance() = %v, want nil", got)
	}
}

func TestRowMatchDate(t *testing.T) {
	t.Parallel()

	row := Row{"date": "2024-01-06"}
	got, ok := row.MatchDate()
	if !ok {
		t.Fatal("MatchDate() not found")
	}
	if got.Format("2006-01-02") != "2024-01-06" {
		t.Fatalf("MatchDate() = %v", got)
	}

	if _, ok := (Row{}).MatchDate(); ok {
		t.Fatal("MatchDate() on empty row reported ok")
	}
}

func TestRowTruncation(t *testing.T) {
	t.Parallel()

	row := Row{"Venue": strings.Repeat("a", 150), "Referee": "Michael Oliver"}
	if got := row.Venue(); got == nil || len(*got) != 100 {
		t.Fatalf("Venue() = %v", got)
	}
	if got := row.Referee(); got == nil || *got != "Michael Oliver" {
		t.Fatalf("Referee() = %v", got)
	}
}

func TestRowIdentity(t *testing.T) {
	t.Parallel()

	row := Row{"Squad": " Arsenal "}
	name, ok := row.TeamName()
	if !ok || name != "Arsenal" {
		t.Fatalf("TeamName() = %q, %v", name, ok)
	}

	if _, ok := (Row{"Squad": "   "}).TeamName(); ok {
		t.Fatal("TeamName() accepted blank name")
	}
	if _, ok := (Row{"player": nil}).PlayerName(); ok {
		t.Fatal("PlayerName() accepted null name")
	}
}

func TestStatTypeLists(t *testing.T) {
	t.Parallel()

	if got := len(TeamStatTypes()); got != 7 {
		t.Fatalf("TeamStatTypes() len = %d", got)
	}
	for _, st := range DefaultPlayerStatTypes() {
		if st == StatGoalkeeping {
			t.Fatal("default player stat types include goalkeeping")
		}
	}
}
