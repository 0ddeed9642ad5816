package loadlog

import (
	"context"
	"fmt"
	"time"
)

const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusPartial   = "partial"
)

// Load is one row of the data load audit trail. A load opens in the running
// state and moves exactly once to a terminal state.
type Load struct {
	ID               int64
	SourceID         *int64
	LoadType         string
	TargetTable      string
	LeagueSeasonID   *int64
	LoadStart        time.Time
	LoadEnd          *time.Time
	Status           string
	ErrorMessage     *string
	RecordsProcessed int
	RecordsInserted  int
	RecordsUpdated   int
	RecordsFailed    int
}

func (l Load) Validate() error {
	if l.LoadType == "" {
		return fmt.Errorf("load type is required")
	}
	if l.TargetTable == "" {
		return fmt.Errorf("load target table is required")
	}

	return nil
}

// IsTerminal reports whether a status ends a load.
func IsTerminal(status string) bool {
	switch status {
	case StatusCompleted, StatusFailed, StatusPartial:
		return true
	default:
		return false
	}
}

// Repository describes load log persistence needs from use cases.
type Repository interface {
	LookupSource(ctx context.Context, sourceName string) (int64, bool, error)
	Create(ctx context.Context, load Load) (int64, error)
	UpdateProgress(ctx context.Context, loadID int64, processed, inserted, updated, failed int) error
	// Close stamps load_end and records the final status, which must
	// satisfy IsTerminal.
	Close(ctx context.Context, loadID int64, status string, errorMessage *string) error
}
