package usecase

import (
	"context"

	"github.com/matchledger/footstats/internal/domain/player"
	"github.com/matchledger/footstats/internal/normalize"
)

// UpsertOutcome reports how many rows of one upsert were created versus
// reconciled in place.
type UpsertOutcome struct {
	Inserted int
	Updated  int
}

// Storage describes the persistence needs of the loaders. Identity lookups
// are name-based: the same team or player name always resolves to the same
// id, and unseen names are created on first reference.
type Storage interface {
	GetLeagueSeasonID(ctx context.Context, leagueCode, season string) (int64, bool, error)
	GetOrCreateTeam(ctx context.Context, name string, country *string) (int64, error)
	GetOrCreatePlayer(ctx context.Context, name string, attrs player.Attributes) (int64, error)
	Upsert(ctx context.Context, table string, columns []string, rows [][]any, conflictColumns, updateColumns []string) (UpsertOutcome, error)
}

// SourceProvider fetches raw statistics rows from the upstream source.
// refresh bypasses any response caching so a rerun observes current data.
type SourceProvider interface {
	FetchSchedule(ctx context.Context, leagueCode, season string, refresh bool) ([]normalize.Row, error)
	FetchTeamSeasonStats(ctx context.Context, leagueCode, season, statType string, refresh bool) ([]normalize.Row, error)
	FetchPlayerSeasonStats(ctx context.Context, leagueCode, season, statType string, refresh bool) ([]normalize.Row, error)
	FetchLeagueTable(ctx context.Context, leagueCode, season string, refresh bool) ([]normalize.Row, error)
}
