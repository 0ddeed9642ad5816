package standing

import (
	"fmt"
	"time"
)

// Snapshot is one team's league table row as of a given date. Home and away
// splits are optional; sources rarely carry them.
type Snapshot struct {
	LeagueSeasonID int64
	TeamID         int64
	Position       int
	MatchesPlayed  int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	HomeWins       *int
	HomeDraws      *int
	HomeLosses     *int
	AwayWins       *int
	AwayDraws      *int
	AwayLosses     *int
	StandingDate   time.Time
}

func (s Snapshot) Validate() error {
	if s.LeagueSeasonID <= 0 {
		return fmt.Errorf("standing league season id is required")
	}
	if s.TeamID <= 0 {
		return fmt.Errorf("standing team id is required")
	}
	if s.Position <= 0 {
		return fmt.Errorf("standing position is required")
	}
	if s.StandingDate.IsZero() {
		return fmt.Errorf("standing date is required")
	}

	return nil
}
