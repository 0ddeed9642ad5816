package league

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Seasons in European football are written "2023-2024": the calendar year the
// season starts in, then the year it ends in.

// ParseSeason validates a season string and returns its start year.
func ParseSeason(season string) (int, error) {
	parts := strings.Split(season, "-")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid season %q, expected YYYY-YYYY", season)
	}

	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid season %q: %w", season, err)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid season %q: %w", season, err)
	}
	if end != start+1 {
		return 0, fmt.Errorf("invalid season %q: years must be consecutive", season)
	}

	return start, nil
}

// FormatSeason renders the season starting in the given year.
func FormatSeason(startYear int) string {
	return fmt.Sprintf("%d-%d", startYear, startYear+1)
}

// SeasonRange lists every season starting between startYear and endYear
// inclusive.
func SeasonRange(startYear, endYear int) []string {
	if endYear < startYear {
		return nil
	}

	seasons := make([]string, 0, endYear-startYear+1)
	for year := startYear; year <= endYear; year++ {
		seasons = append(seasons, FormatSeason(year))
	}

	return seasons
}

// CurrentSeason determines the season in progress at the given time. Seasons
// run August to May, so January through July belong to the season that
// started the previous year.
func CurrentSeason(now time.Time) string {
	year := now.Year()
	if now.Month() < time.August {
		year--
	}

	return FormatSeason(year)
}
