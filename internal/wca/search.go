package wca

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

const searchLimit = 10

// wcaIDPattern matches a well-formed WCA ID: year, four letters, counter.
var wcaIDPattern = regexp.MustCompile(`^\d{4}[A-Z]{4}\d{2}$`)

// Candidate is one autocomplete suggestion.
type Candidate struct {
	WCAID string `json:"wca_id"`
	Name  string `json:"name"`
}

// searchResponse is the official WCA search envelope. Result entries mix
// persons and competitions; only class=="person" is kept.
type searchResponse struct {
	Result []struct {
		Class string `json:"class"`
		WCAID string `json:"wca_id"`
		Name  string `json:"name"`
	} `json:"result"`
}

// Search returns ranked person candidates for a free-text query. A query
// shaped like a WCA ID is probed directly first; otherwise (or when the
// probe misses) the official search API is consulted and its person results
// are re-ranked: exact match, then prefix match, then name substring, then
// ID substring.
func (c *Client) Search(ctx context.Context, query string) ([]Candidate, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, nil
	}

	if upper := strings.ToUpper(query); wcaIDPattern.MatchString(upper) {
		if person, err := c.GetPerson(ctx, upper); err == nil {
			return []Candidate{{WCAID: person.WCAID, Name: person.Name}}, nil
		}
	}

	body, err := c.get(ctx, fmt.Sprintf("%s?q=%s", c.searchURL, url.QueryEscape(query)))
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	var candidates []Candidate
	for _, item := range resp.Result {
		if item.Class != "person" {
			continue
		}
		candidates = append(candidates, Candidate{WCAID: item.WCAID, Name: item.Name})
	}

	rankCandidates(candidates, query)
	if len(candidates) > searchLimit {
		candidates = candidates[:searchLimit]
	}
	return candidates, nil
}

// rankCandidates sorts by relevance tier, preserving upstream order within a
// tier.
func rankCandidates(candidates []Candidate, query string) {
	q := strings.ToLower(query)
	sort.SliceStable(candidates, func(i, j int) bool {
		return relevance(candidates[i], q) < relevance(candidates[j], q)
	})
}

// relevance returns the tier for a candidate: lower is better.
func relevance(c Candidate, q string) int {
	name := strings.ToLower(c.Name)
	id := strings.ToLower(c.WCAID)
	switch {
	case name == q || id == q:
		return 0
	case strings.HasPrefix(name, q) || strings.HasPrefix(id, q):
		return 1
	case strings.Contains(name, q):
		return 2
	case strings.Contains(id, q):
		return 3
	}
	return 4
}
