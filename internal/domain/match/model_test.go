package match

import (
	"testing"
	"time"
)

func TestStatusForScore(t *testing.T) {
	t.Parallel()

	score := 2
	if got := StatusForScore(&score); got != StatusCompleted {
		t.Fatalf("StatusForScore(&2) = %q, want %q", got, StatusCompleted)
	}
	if got := StatusForScore(nil); got != StatusScheduled {
		t.Fatalf("StatusForScore(nil) = %q, want %q", got, StatusScheduled)
	}
}

func TestExternalID(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, time.January, 6, 15, 0, 0, 0, time.UTC)
	got := ExternalID(7, "Arsenal", "Chelsea", date)
	want := "fbref_7_Arsenal_Chelsea_2024-01-06"
	if got != want {
		t.Fatalf("ExternalID() = %q, want %q", got, want)
	}
}

func TestMatchValidate(t *testing.T) {
	t.Parallel()

	valid := Match{
		LeagueSeasonID: 1,
		HomeTeamID:     2,
		AwayTeamID:     3,
		MatchDate:      time.Date(2024, time.January, 6, 0, 0, 0, 0, time.UTC),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	for name, m := range map[string]Match{
		"missing league season": {HomeTeamID: 2, AwayTeamID: 3, MatchDate: valid.MatchDate},
		"missing teams":         {LeagueSeasonID: 1, MatchDate: valid.MatchDate},
		"missing date":          {LeagueSeasonID: 1, HomeTeamID: 2, AwayTeamID: 3},
	} {
		if err := m.Validate(); err == nil {
			t.Fatalf("Validate() for %s expected error", name)
		}
	}
}
