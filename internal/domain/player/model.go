package player

import (
	"fmt"
	"strings"
)

const (
	maxNationalityLen = 50
	maxPositionLen    = 20
)

// Player is identified by name; descriptive attributes are captured only at
// creation time and never overwritten afterwards.
type Player struct {
	ID          int64
	Name        string
	Nationality *string
	Position    *string
}

// Attributes carries the optional descriptive fields supplied when a player
// is first seen.
type Attributes struct {
	Nationality *string
	Position    *string
}

func (p Player) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}

// CleanNationality trims and truncates a raw nationality value. Empty input
// yields nil.
func CleanNationality(raw string) *string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	if len(value) > maxNationalityLen {
		value = value[:maxNationalityLen]
	}

	return &value
}

// CleanPosition keeps the first entry of a composite position such as
// "FW,MF" and truncates it. Empty input yields nil.
func CleanPosition(raw string) *string {
	value := strings.TrimSpace(strings.SplitN(raw, ",", 2)[0])
	if value == "" {
		return nil
	}
	if len(value) > maxPositionLen {
		value = value[:maxPositionLen]
	}

	return &value
}
