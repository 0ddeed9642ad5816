package teamstats

import "fmt"

// SeasonStat is one team's accumulated numbers of one statistical category
// for a league season. Category-specific leftovers ride in AdditionalStats
// as JSON.
type SeasonStat struct {
	TeamID            int64
	LeagueSeasonID    int64
	StatType          string
	MatchesPlayed     *int
	Wins              *int
	Draws             *int
	Losses            *int
	GoalsFor          *int
	GoalsAgainst      *int
	PossessionPct     *float64
	PassesCompleted   *int
	PassesAttempted   *int
	PassCompletionPct *float64
	Shots             *int
	ShotsOnTarget     *int
	ShotsOnTargetPct  *float64
	Tackles           *int
	TacklesWon        *int
	Interceptions     *int
	Blocks            *int
	Clearances        *int
	YellowCards       *int
	RedCards          *int
	FoulsCommitted    *int
	FoulsDrawn        *int
	AdditionalStats   string
}

func (s SeasonStat) Validate() error {
	if s.TeamID <= 0 {
		return fmt.Errorf("team stat team id is required")
	}
	if s.LeagueSeasonID <= 0 {
		return fmt.Errorf("team stat league season id is required")
	}
	if s.StatType == "" {
		return fmt.Errorf("team stat type is required")
	}

	return nil
}
