package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchledger/footstats/internal/domain/loadlog"
	qb "github.com/matchledger/footstats/internal/platform/querybuilder"
)

// LoadLogRepository persists load provenance in data_load_log.
type LoadLogRepository struct {
	db *sqlx.DB
}

func NewLoadLogRepository(db *sqlx.DB) *LoadLogRepository {
	return &LoadLogRepository{db: db}
}

func (r *LoadLogRepository) LookupSource(ctx context.Context, sourceName string) (int64, bool, error) {
	query, args, err := qb.Select("source_id").From("data_sources").
		Where(qb.Eq("source_name", sourceName)).
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build select source query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("select source: %w", err)
	}

	return id, true, nil
}

func (r *LoadLogRepository) Create(ctx context.Context, load loadlog.Load) (int64, error) {
	if err := load.Validate(); err != nil {
		return 0, err
	}

	query, args, err := qb.InsertInto("data_load_log").
		Columns("source_id", "load_type", "target_table", "league_season_id", "load_start", "status").
		Values(load.SourceID, load.LoadType, load.TargetTable, load.LeagueSeasonID, load.LoadStart, load.Status).
		Suffix("RETURNING load_id").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert load query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert load: %w", err)
	}

	return id, nil
}

func (r *LoadLogRepository) UpdateProgress(ctx context.Context, loadID int64, processed, inserted, updated, failed int) error {
	query, args, err := qb.Update("data_load_log").
		Set("records_processed", processed).
		Set("records_inserted", inserted).
		Set("records_updated", updated).
		Set("records_failed", failed).
		Where(qb.Eq("load_id", loadID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update load progress query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update load progress: %w", err)
	}

	return nil
}

func (r *LoadLogRepository) Close(ctx context.Context, loadID int64, status string, errorMessage *string) error {
	if !loadlog.IsTerminal(status) {
		return fmt.Errorf("close load %d: status %q is not terminal", loadID, status)
	}

	query, args, err := qb.Update("data_load_log").
		Set("load_end", time.Now().UTC()).
		Set("status", status).
		Set("error_message", errorMessage).
		Where(qb.Eq("load_id", loadID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build close load query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("close load: %w", err)
	}

	return nil
}
