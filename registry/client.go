// Package registry provides the ClinicalTrials.gov search client used to
// surface recruiting trials for a cancer type and location.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/malecare/trialbot/domain"
	"github.com/malecare/trialbot/metrics"
)

// pageSize bounds every result set returned from a single search.
const pageSize = 10

// Searcher is the trial search capability consumed by the orchestrator.
// degraded is true when the registry could not be reached at all, so an
// empty result set must not be presented as "zero trials exist".
type Searcher interface {
	Search(ctx context.Context, cancerType, location string) (trials []domain.Trial, degraded bool)
}

// Client queries the ClinicalTrials.gov v2 API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration // per attempt
}

// NewClient creates a registry client. The timeout bounds each attempt
// against the upstream API.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
	}
}

// Ensure Client implements Searcher.
var _ Searcher = (*Client)(nil)

// Search looks for recruiting trials near the given location, falling back to
// a single nationwide query when the local attempt finds nothing or fails.
// IsNationwide is uniform across the returned set.
func (c *Client) Search(ctx context.Context, cancerType, location string) ([]domain.Trial, bool) {
	locn := NormalizeLocation(location)

	trials, err := c.query(ctx, cancerType, locn)
	if err == nil && len(trials) > 0 {
		metrics.SearchesTotal.WithLabelValues("local").Inc()
		return trials, false
	}
	if err != nil {
		log.Printf("WARN: local trial search failed: %v", err)
	}

	if locn == "" {
		if err != nil {
			metrics.SearchesTotal.WithLabelValues("degraded").Inc()
			return nil, true
		}
		metrics.SearchesTotal.WithLabelValues("empty").Inc()
		return trials, false
	}

	// One unfiltered attempt, not a retry: the query shape changes.
	nationwide, err := c.query(ctx, cancerType, "")
	if err != nil {
		log.Printf("ERROR: nationwide trial search failed: %v", err)
		metrics.SearchesTotal.WithLabelValues("degraded").Inc()
		return nil, true
	}
	for i := range nationwide {
		nationwide[i].IsNationwide = true
	}
	if len(nationwide) == 0 {
		metrics.SearchesTotal.WithLabelValues("empty").Inc()
	} else {
		metrics.SearchesTotal.WithLabelValues("nationwide").Inc()
	}
	return nationwide, false
}

// query performs one round trip against {base}/studies.
func (c *Client) query(ctx context.Context, cancerType, locn string) ([]domain.Trial, error) {
	qctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("query.cond", cancerType)
	if locn != "" {
		params.Set("query.locn", locn)
	}
	params.Set("filter.overallStatus", "RECRUITING")
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("format", "json")

	reqURL := c.baseURL + "/studies?" + params.Encode()
	req, err := http.NewRequestWithContext(qctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RegistryDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("registry request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("registry returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var data studiesResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode registry response: %w", err)
	}

	return parseStudies(data, locn), nil
}
