package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/matchledger/footstats/internal/domain/loadlog"
	"github.com/matchledger/footstats/internal/domain/player"
	"github.com/matchledger/footstats/internal/usecase"
)

// Store is an in-memory implementation of usecase.Storage and
// loadlog.Repository, mirroring the reconciliation behavior of the
// PostgreSQL store for tests and local runs.
type Store struct {
	mu sync.Mutex

	nextID        int64
	leagueSeasons map[string]int64
	teams         map[string]int64
	players       map[string]int64
	playerAttrs   map[int64]player.Attributes

	tables map[string]map[string]map[string]any

	sources map[string]int64
	loads   []loadlog.Load
}

func NewStore() *Store {
	return &Store{
		leagueSeasons: make(map[string]int64),
		teams:         make(map[string]int64),
		players:       make(map[string]int64),
		playerAttrs:   make(map[int64]player.Attributes),
		tables:        make(map[string]map[string]map[string]any),
		sources:       map[string]int64{"FBref": 1},
	}
}

// AddLeagueSeason registers a league season unit and returns its id.
func (s *Store) AddLeagueSeason(leagueCode, season string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := leagueCode + "|" + season
	if id, ok := s.leagueSeasons[key]; ok {
		return id
	}
	s.nextID++
	s.leagueSeasons[key] = s.nextID

	return s.nextID
}

func (s *Store) GetLeagueSeasonID(_ context.Context, leagueCode, season string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.leagueSeasons[leagueCode+"|"+season]
	return id, ok, nil
}

func (s *Store) GetOrCreateTeam(_ context.Context, name string, _ *string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.teams[name]; ok {
		return id, nil
	}
	s.nextID++
	s.teams[name] = s.nextID

	return s.nextID, nil
}

func (s *Store) GetOrCreatePlayer(_ context.Context, name string, attrs player.Attributes) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.players[name]; ok {
		return id, nil
	}
	s.nextID++
	s.players[name] = s.nextID
	s.playerAttrs[s.nextID] = attrs

	return s.nextID, nil
}

func (s *Store) Upsert(_ context.Context, table string, columns []string, rows [][]any, conflictColumns, updateColumns []string) (usecase.UpsertOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.tables[table]
	if !ok {
		stored = make(map[string]map[string]any)
		s.tables[table] = stored
	}

	if len(updateColumns) == 0 {
		for _, col := range columns {
			if containsColumn(conflictColumns, col) {
				continue
			}
			updateColumns = append(updateColumns, col)
		}
	}

	var outcome usecase.UpsertOutcome
	for _, row := range rows {
		if len(row) != len(columns) {
			return outcome, fmt.Errorf("row has %d values, expected %d", len(row), len(columns))
		}
		values := make(map[string]any, len(columns))
		for i, col := range columns {
			values[col] = row[i]
		}

		key := conflictKey(values, conflictColumns)
		if existing, ok := stored[key]; ok {
			for _, col := range updateColumns {
				existing[col] = values[col]
			}
			outcome.Updated++
			continue
		}
		stored[key] = values
		outcome.Inserted++
	}

	return outcome, nil
}

// Rows returns the stored rows of a table, for assertions.
func (s *Store) Rows(table string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []map[string]any
	for _, row := range s.tables[table] {
		copied := make(map[string]any, len(row))
		for col, value := range row {
			copied[col] = value
		}
		rows = append(rows, copied)
	}

	return rows
}

// PlayerAttributes returns the attributes recorded when a player was created.
func (s *Store) PlayerAttributes(name string) (player.Attributes, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.players[name]
	if !ok {
		return player.Attributes{}, false
	}

	return s.playerAttrs[id], true
}

func (s *Store) LookupSource(_ context.Context, sourceName string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.sources[sourceName]
	return id, ok, nil
}

func (s *Store) Create(_ context.Context, load loadlog.Load) (int64, error) {
	if err := load.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	load.ID = s.nextID
	s.loads = append(s.loads, load)

	return load.ID, nil
}

func (s *Store) UpdateProgress(_ context.Context, loadID int64, processed, inserted, updated, failed int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	load := s.findLoad(loadID)
	if load == nil {
		return fmt.Errorf("load %d not found", loadID)
	}
	load.RecordsProcessed = processed
	load.RecordsInserted = inserted
	load.RecordsUpdated = updated
	load.RecordsFailed = failed

	return nil
}

func (s *Store) Close(_ context.Context, loadID int64, status string, errorMessage *string) error {
	if !loadlog.IsTerminal(status) {
		return fmt.Errorf("close load %d: status %q is not terminal", loadID, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	load := s.findLoad(loadID)
	if load == nil {
		return fmt.Errorf("load %d not found", loadID)
	}
	now := time.Now()
	load.LoadEnd = &now
	load.Status = status
	load.ErrorMessage = errorMessage

	return nil
}

// Loads returns a copy of every recorded load, in creation order.
func (s *Store) Loads() []loadlog.Load {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]loadlog.Load(nil), s.loads...)
}

func (s *Store) findLoad(loadID int64) *loadlog.Load {
	for i := range s.loads {
		if s.loads[i].ID == loadID {
			return &s.loads[i]
		}
	}

	return nil
}

func conflictKey(values map[string]any, conflictColumns []string) string {
	parts := make([]string, 0, len(conflictColumns))
	for _, col := range conflictColumns {
		parts = append(parts, fmt.Sprintf("%v", values[col]))
	}

	return strings.Join(parts, "|")
}

func containsColumn(columns []string, column string) bool {
	for _, c := range columns {
		if c == column {
			return true
		}
	}

	return false
}
