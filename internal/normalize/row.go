package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	maxVenueLen   = 100
	maxRefereeLen = 100
)

// Row is one record as decoded from a source response. Values arrive as JSON
// scalars; coercion to the target type happens here, and anything that will
// not coerce is treated as absent.
type Row map[string]any

// First returns the first present, non-null value among the aliases.
func (r Row) First(aliases ...string) (any, bool) {
	for _, alias := range aliases {
		value, ok := r[alias]
		if !ok || isNull(value) {
			continue
		}
		return value, true
	}

	return nil, false
}

func (r Row) Int(aliases ...string) *int {
	value, ok := r.First(aliases...)
	if !ok {
		return nil
	}

	return coerceInt(value)
}

// IntDefault coerces like Int but falls back to a default, matching how
// standings treat absent counters as zero.
func (r Row) IntDefault(def int, aliases ...string) int {
	if v := r.Int(aliases...); v != nil {
		return *v
	}

	return def
}

func (r Row) Float(aliases ...string) *float64 {
	value, ok := r.First(aliases...)
	if !ok {
		return nil
	}

	return coerceFloat(value)
}

func (r Row) String(aliases ...string) (string, bool) {
	value, ok := r.First(aliases...)
	if !ok {
		return "", false
	}

	s := strings.TrimSpace(stringify(value))
	if s == "" {
		return "", false
	}

	return s, true
}

// TeamName resolves the team identity column. Rows without one cannot be
// attributed and must be rejected by the caller.
func (r Row) TeamName() (string, bool) {
	return r.String("team", "Team", "Squad")
}

func (r Row) PlayerName() (string, bool) {
	return r.String("player", "Player")
}

// MatchDate parses the fixture date column.
func (r Row) MatchDate() (time.Time, bool) {
	raw, ok := r.String("date", "Date")
	if !ok {
		return time.Time{}, false
	}

	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// Score extracts home and away goals. Sources either publish a composite
// "2–1" column (en dash or hyphen) or separate numeric columns; a fixture
// not yet played has neither.
func (r Row) Score() (home, away *int) {
	homeRaw, homeOK := r.First("home_score", "score", "Score")
	awayRaw, awayOK := r.First("away_score", "score", "Score")

	if homeOK {
		if s, isString := homeRaw.(string); isString {
			if h, a, ok := splitScore(s); ok {
				return h, a
			}
		}
	}
	if homeOK && awayOK {
		return coerceInt(homeRaw), coerceInt(awayRaw)
	}

	return nil, nil
}

func splitScore(s string) (home, away *int, ok bool) {
	sep := ""
	switch {
	case strings.Contains(s, "–"):
		sep = "–"
	case strings.Contains(s, "-"):
		sep = "-"
	default:
		return nil, nil, false
	}

	// Both halves must parse; a half score is no score.
	parts := strings.SplitN(s, sep, 2)
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, nil, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, nil, false
	}

	return &h, &a, true
}

// Attendance parses the crowd figure, which sources format with thousands
// separators.
func (r Row) Attendance() *int {
	raw, ok := r.String("attendance", "Attendance")
	if !ok {
		return nil
	}

	value, err := strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return nil
	}

	return &value
}

func (r Row) Matchweek() *int {
	return r.Int("matchweek", "Week")
}

func (r Row) Venue() *string {
	return r.truncated(maxVenueLen, "venue", "Venue")
}

func (r Row) Referee() *string {
	return r.truncated(maxRefereeLen, "referee", "Referee")
}

func (r Row) truncated(maxLen int, aliases ...string) *string {
	value, ok := r.String(aliases...)
	if !ok {
		return nil
	}
	if len(value) > maxLen {
		value = value[:maxLen]
	}

	return &value
}

func isNull(value any) bool {
	if value == nil {
		return true
	}
	if f, ok := value.(float64); ok && math.IsNaN(f) {
		return true
	}

	return false
}

func coerceInt(value any) *int {
	switch v := value.(type) {
	case int:
		return &v
	case int64:
		out := int(v)
		return &out
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		out := int(v)
		return &out
	case string:
		out, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil
		}
		return &out
	default:
		return nil
	}
}

func coerceFloat(value any) *float64 {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return &v
	case int:
		out := float64(v)
		return &out
	case int64:
		out := float64(v)
		return &out
	case string:
		out, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		return &out
	default:
		return nil
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
