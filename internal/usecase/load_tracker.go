package usecase

import (
	"context"
	"time"

	"github.com/matchledger/footstats/internal/domain/loadlog"
	"github.com/matchledger/footstats/internal/platform/logging"
)

// SourceFBref is the registered name of the statistics source.
const SourceFBref = "FBref"

// LoadTracker maintains the provenance record for the load currently in
// flight. A tracker holds at most one open load; closing it, successfully or
// not, releases the id so the next load starts clean.
type LoadTracker struct {
	repo   loadlog.Repository
	logger *logging.Logger
	loadID int64
}

func NewLoadTracker(repo loadlog.Repository, logger *logging.Logger) *LoadTracker {
	if logger == nil {
		logger = logging.Default()
	}

	return &LoadTracker{repo: repo, logger: logger}
}

// Start opens a running load log entry. An unknown source name is recorded
// with a null source id rather than failing the load.
func (t *LoadTracker) Start(ctx context.Context, sourceName, loadType, targetTable string, leagueSeasonID *int64) error {
	var sourceID *int64
	id, ok, err := t.repo.LookupSource(ctx, sourceName)
	if err != nil {
		return err
	}
	if ok {
		sourceID = &id
	}

	load := loadlog.Load{
		SourceID:       sourceID,
		LoadType:       loadType,
		TargetTable:    targetTable,
		LeagueSeasonID: leagueSeasonID,
		LoadStart:      time.Now(),
		Status:         loadlog.StatusRunning,
	}
	if err := load.Validate(); err != nil {
		return err
	}

	loadID, err := t.repo.Create(ctx, load)
	if err != nil {
		return err
	}
	t.loadID = loadID

	t.logger.InfoContext(ctx, "load started",
		"load_id", loadID,
		"load_type", loadType,
		"target_table", targetTable,
		"source", sourceName,
	)

	return nil
}

// Progress overwrites the running counters with the latest totals.
func (t *LoadTracker) Progress(ctx context.Context, result Result) error {
	if t.loadID == 0 {
		return nil
	}

	return t.repo.UpdateProgress(ctx, t.loadID, result.Processed, result.Inserted, result.Updated, result.Failed)
}

// Complete closes the open load as completed.
func (t *LoadTracker) Complete(ctx context.Context) error {
	return t.close(ctx, loadlog.StatusCompleted, nil)
}

// Fail closes the open load as failed, recording the error message.
func (t *LoadTracker) Fail(ctx context.Context, loadErr error) error {
	msg := loadErr.Error()
	t.logger.ErrorContext(ctx, "load failed", "load_id", t.loadID, "error", msg)

	return t.close(ctx, loadlog.StatusFailed, &msg)
}

func (t *LoadTracker) close(ctx context.Context, status string, errorMessage *string) error {
	if t.loadID == 0 {
		return nil
	}

	err := t.repo.Close(ctx, t.loadID, status, errorMessage)
	t.loadID = 0
	if err != nil {
		return err
	}

	if status == loadlog.StatusCompleted {
		t.logger.InfoContext(ctx, "load completed")
	}

	return nil
}
