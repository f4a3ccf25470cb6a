// Package wca fetches competitor and competition records from the unofficial
// WCA REST API and person candidates from the official WCA search endpoint.
//
// Requests are rate-limited with a token bucket. Competition fetches for one
// competitor fan out across a bounded worker pool and fan in before the
// series is built; individual competition failures are tolerated silently.
package wca

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/roowus/graphisizer/internal/config"
	"github.com/roowus/graphisizer/internal/series"
)

// ErrNotFound is returned when a competitor ID does not resolve. It is the
// only fetch failure that propagates to the caller; everything else degrades
// to missing data.
var ErrNotFound = errors.New("not found")

// Client is the rate-limited HTTP client for the WCA data source.
type Client struct {
	httpClient *http.Client
	baseURL    string
	searchURL  string
	limiter    *rate.Limiter
	workers    int
	logger     *slog.Logger
}

// NewClient creates a WCA client from configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	workers := cfg.FetchWorkers
	if workers < 1 {
		workers = 1
	}
	rps := float64(cfg.WCARequestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: cfg.FetchTimeout},
		baseURL:    cfg.WCABaseURL,
		searchURL:  cfg.WCASearchURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), workers),
		workers:    workers,
		logger:     logger,
	}
}

// GetPerson fetches one competitor record. A 404 maps to ErrNotFound.
func (c *Client) GetPerson(ctx context.Context, wcaID string) (*series.CompetitorRecord, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/api/persons/%s.json", c.baseURL, wcaID))
	if err != nil {
		return nil, fmt.Errorf("fetch person %s: %w", wcaID, err)
	}
	var person series.CompetitorRecord
	if err := json.Unmarshal(body, &person); err != nil {
		return nil, fmt.Errorf("decode person %s: %w", wcaID, err)
	}
	if person.WCAID == "" {
		person.WCAID = wcaID
	}
	return &person, nil
}

// GetCompetition fetches one competition record.
func (c *Client) GetCompetition(ctx context.Context, compID string) (*series.CompetitionRecord, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/api/competitions/%s.json", c.baseURL, compID))
	if err != nil {
		return nil, fmt.Errorf("fetch competition %s: %w", compID, err)
	}
	var comp series.CompetitionRecord
	if err := json.Unmarshal(body, &comp); err != nil {
		return nil, fmt.Errorf("decode competition %s: %w", compID, err)
	}
	return &comp, nil
}

// GetCompetitions fetches a set of competitions concurrently. Failed fetches
// are logged and omitted from the result — the series is built from whatever
// arrived.
func (c *Client) GetCompetitions(ctx context.Context, compIDs []string) map[string]*series.CompetitionRecord {
	out := make(map[string]*series.CompetitionRecord, len(compIDs))
	if len(compIDs) == 0 {
		return out
	}

	workers := c.workers
	if workers > len(compIDs) {
		workers = len(compIDs)
	}

	ch := make(chan string, len(compIDs))
	for _, id := range compIDs {
		ch <- id
	}
	close(ch)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range ch {
				comp, err := c.GetCompetition(ctx, id)
				if err != nil {
					c.logger.Debug("competition fetch failed", "competition", id, "error", err)
					continue
				}
				mu.Lock()
				out[comp.ID] = comp
				if comp.ID != id {
					out[id] = comp
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return out
}

// LoadSeries fetches everything needed for one graph selection and runs the
// normalizer: competitor record, then all referenced competitions, then the
// per-result-type extraction and DNF estimation.
func (c *Client) LoadSeries(ctx context.Context, spec series.GraphSpec) (*series.Series, error) {
	person, err := c.GetPerson(ctx, spec.WCAID)
	if err != nil {
		return nil, err
	}
	comps := c.GetCompetitions(ctx, person.CompetitionIDs)

	points, err := series.Build(person, comps, spec.Event, spec.ResultType)
	if err != nil {
		return nil, err
	}
	return &series.Series{
		WCAID:      spec.WCAID,
		PersonName: person.Name,
		Event:      spec.Event,
		ResultType: spec.ResultType,
		Points:     points,
	}, nil
}

// get performs a rate-limited GET request and returns the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned %d: %s", resp.StatusCode, truncate(body, 200))
	}
	return body, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
