package fbref

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/matchledger/footstats/internal/normalize"
	"github.com/matchledger/footstats/internal/platform/cache"
	"github.com/matchledger/footstats/internal/platform/logging"
)

const (
	defaultBaseURL  = "http://localhost:8017"
	defaultTimeout  = 30 * time.Second
	defaultCacheTTL = 6 * time.Hour
	maxResponseSize = 16 << 20
)

var errTransient = crerr.New("fbref transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	CacheTTL   time.Duration
	MaxRetries int
	Logger     *logging.Logger
}

// Client fetches statistics rows from the FBref scraper service. Responses
// are cached in memory so a backfill over many categories does not refetch
// the same table; refresh requests bypass and replace the cached copy.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	store      *cache.Store
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		maxRetries: max(cfg.MaxRetries, 0),
		store:      cache.NewStore(ttl),
		logger:     logger,
	}
}

func (c *Client) FetchSchedule(ctx context.Context, leagueCode, season string, refresh bool) ([]normalize.Row, error) {
	return c.fetchRows(ctx, "/schedule", map[string]string{
		"league": leagueCode,
		"season": season,
	}, refresh)
}

func (c *Client) FetchTeamSeasonStats(ctx context.Context, leagueCode, season, statType string, refresh bool) ([]normalize.Row, error) {
	return c.fetchRows(ctx, "/team-stats", map[string]string{
		"league":    leagueCode,
		"season":    season,
		"stat_type": statType,
	}, refresh)
}

func (c *Client) FetchPlayerSeasonStats(ctx context.Context, leagueCode, season, statType string, refresh bool) ([]normalize.Row, error) {
	return c.fetchRows(ctx, "/player-stats", map[string]string{
		"league":    leagueCode,
		"season":    season,
		"stat_type": statType,
	}, refresh)
}

func (c *Client) FetchLeagueTable(ctx context.Context, leagueCode, season string, refresh bool) ([]normalize.Row, error) {
	return c.fetchRows(ctx, "/league-table", map[string]string{
		"league": leagueCode,
		"season": season,
	}, refresh)
}

func (c *Client) fetchRows(ctx context.Context, path string, query map[string]string, refresh bool) ([]normalize.Row, error) {
	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	fullURL := c.baseURL + path + "?" + values.Encode()
	key := path + "?" + values.Encode()

	if refresh {
		c.store.Delete(ctx, key)
	}

	out, err := c.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		raw, err := c.executeRequest(ctx, fullURL)
		if err != nil {
			return nil, err
		}

		var rows []normalize.Row
		if err := sonic.Unmarshal(raw, &rows); err != nil {
			return nil, fmt.Errorf("decode source payload: %w", err)
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	rows, ok := out.([]normalize.Row)
	if !ok {
		return nil, fmt.Errorf("unexpected cached payload type %T", out)
	}

	return rows, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: source status=%d", errTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("source status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("source request failed")
	}
	c.logger.WarnContext(ctx, "fbref request failed", "url", fullURL, "error", lastErr.Error())

	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func abbreviateBody(raw []byte) string {
	const maxLen = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > maxLen {
		return body[:maxLen] + "..."
	}

	return body
}
