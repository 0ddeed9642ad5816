package team

import "fmt"

// Team is a football club referenced by matches, stats, and standings.
// Name is the natural key; clubs keep their identity across seasons.
type Team struct {
	ID      int64
	Name    string
	Country *string
}

func (t Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
