package usecase_test

import (
	"context"

	"github.com/matchledger/footstats/internal/normalize"
)

// stubSource serves canned rows per endpoint and records refresh requests.
type stubSource struct {
	schedule    []normalize.Row
	scheduleErr error

	teamStats    map[string][]normalize.Row
	teamStatsErr map[string]error

	playerStats    map[string][]normalize.Row
	playerStatsErr map[string]error

	table    []normalize.Row
	tableErr error

	refreshes int
}

func (s *stubSource) FetchSchedule(_ context.Context, _, _ string, refresh bool) ([]normalize.Row, error) {
	s.countRefresh(refresh)
	return s.schedule, s.scheduleErr
}

func (s *stubSource) FetchTeamSeasonStats(_ context.Context, _, _, statType string, refresh bool) ([]normalize.Row, error) {
	s.countRefresh(refresh)
	if err := s.teamStatsErr[statType]; err != nil {
		return nil, err
	}
	return s.teamStats[statType], nil
}

func (s *stubSource) FetchPlayerSeasonStats(_ context.Context, _, _, statType string, refresh bool) ([]normalize.Row, error) {
	s.countRefresh(refresh)
	if err := s.playerStatsErr[statType]; err != nil {
		return nil, err
	}
	return s.playerStats[statType], nil
}

func (s *stubSource) FetchLeagueTable(_ context.Context, _, _ string, refresh bool) ([]normalize.Row, error) {
	s.countRefresh(refresh)
	return s.table, s.tableErr
}

func (s *stubSource) countRefresh(refresh bool) {
	if refresh {
		s.refreshes++
	}
}
