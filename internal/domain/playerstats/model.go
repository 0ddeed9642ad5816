package playerstats

import "fmt"

// SeasonStat is one player's accumulated numbers of one statistical category
// for a team and league season. Goalkeeping fields stay nil for outfield
// categories; leftovers ride in AdditionalStats as JSON.
type SeasonStat struct {
	PlayerID          int64
	TeamID            int64
	LeagueSeasonID    int64
	StatType          string
	MatchesPlayed     *int
	Starts            *int
	MinutesPlayed     *int
	Goals             *int
	Assists           *int
	PenaltyGoals      *int
	PenaltyAttempts   *int
	Shots             *int
	ShotsOnTarget     *int
	ShotsOnTargetPct  *float64
	GoalsPerShot      *float64
	PassesCompleted   *int
	PassesAttempted   *int
	PassCompletionPct *float64
	KeyPasses         *int
	Tackles           *int
	TacklesWon        *int
	Interceptions     *int
	Blocks            *int
	Clearances        *int
	YellowCards       *int
	RedCards          *int
	FoulsCommitted    *int
	FoulsDrawn        *int
	Saves             *int
	SavesPct          *float64
	CleanSheets       *int
	GoalsAgainst      *int
	AdditionalStats   string
}

func (s SeasonStat) Validate() error {
	if s.PlayerID <= 0 {
		return fmt.Errorf("player stat player id is required")
	}
	if s.TeamID <= 0 {
		return fmt.Errorf("player stat team id is required")
	}
	if s.LeagueSeasonID <= 0 {
		return fmt.Errorf("player stat league season id is required")
	}
	if s.StatType == "" {
		return fmt.Errorf("player stat type is required")
	}

	return nil
}
