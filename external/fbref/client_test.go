package fbref

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/matchledger/footstats/internal/platform/logging"
)

func TestClientFetchScheduleCaching(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/schedule" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("league") != "EPL" || r.URL.Query().Get("season") != "2023-2024" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"home_team":"Arsenal","away_team":"Chelsea","date":"2023-08-12"}]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: logging.NewNop()})

	rows, err := client.FetchSchedule(context.Background(), "EPL", "2023-2024", false)
	if err != nil {
		t.Fatalf("FetchSchedule: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if name, _ := rows[0].String("home_team"); name != "Arsenal" {
		t.Fatalf("home_team = %q", name)
	}

	if _, err := client.FetchSchedule(context.Background(), "EPL", "2023-2024", false); err != nil {
		t.Fatalf("cached fetch: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("server hits = %d, want cached second fetch", hits.Load())
	}

	if _, err := client.FetchSchedule(context.Background(), "EPL", "2023-2024", true); err != nil {
		t.Fatalf("refresh fetch: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("server hits = %d, want refresh to bypass cache", hits.Load())
	}
}

func TestClientDistinctCacheKeys(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: logging.NewNop()})

	if _, err := client.FetchTeamSeasonStats(context.Background(), "EPL", "2023-2024", "standard", false); err != nil {
		t.Fatalf("standard fetch: %v", err)
	}
	if _, err := client.FetchTeamSeasonStats(context.Background(), "EPL", "2023-2024", "shooting", false); err != nil {
		t.Fatalf("shooting fetch: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("server hits = %d, want distinct categories fetched separately", hits.Load())
	}
}

func TestClientNonRetryableStatus(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.Error(w, "no such league", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, MaxRetries: 3, Logger: logging.NewNop()})

	if _, err := client.FetchLeagueTable(context.Background(), "XXX", "2023-2024", false); err == nil {
		t.Fatal("expected error for 404 response")
	}
	if hits.Load() != 1 {
		t.Fatalf("server hits = %d, want no retries on a client error", hits.Load())
	}
}

func TestClientDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: logging.NewNop()})

	if _, err := client.FetchSchedule(context.Background(), "EPL", "2023-2024", false); err == nil {
		t.Fatal("expected decode error")
	}
}
