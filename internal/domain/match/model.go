package match

import (
	"fmt"
	"time"
)

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
)

// Match represents one fixture. A match is identified by its league season,
// the two teams, and the date; every other field may be filled in later as
// the fixture is played.
type Match struct {
	LeagueSeasonID    int64
	HomeTeamID        int64
	AwayTeamID        int64
	MatchDate         time.Time
	Matchweek         *int
	HomeScore         *int
	AwayScore         *int
	HomeHalftimeScore *int
	AwayHalftimeScore *int
	Attendance        *int
	Venue             *string
	Referee           *string
	Status            string
	ExternalID        string
}

func (m Match) Validate() error {
	if m.LeagueSeasonID <= 0 {
		return fmt.Errorf("match league season id is required")
	}
	if m.HomeTeamID <= 0 || m.AwayTeamID <= 0 {
		return fmt.Errorf("match team ids are required")
	}
	if m.MatchDate.IsZero() {
		return fmt.Errorf("match date is required")
	}

	return nil
}

// StatusForScore derives the fixture status from score presence: a recorded
// score means the match has been played.
func StatusForScore(homeScore *int) string {
	if homeScore != nil {
		return StatusCompleted
	}

	return StatusScheduled
}

// ExternalID builds the source-scoped dedup key for a fixture.
func ExternalID(leagueSeasonID int64, homeTeam, awayTeam string, matchDate time.Time) string {
	return fmt.Sprintf("fbref_%d_%s_%s_%s", leagueSeasonID, homeTeam, awayTeam, matchDate.Format("2006-01-02"))
}
