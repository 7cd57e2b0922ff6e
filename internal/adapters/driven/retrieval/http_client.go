package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nyaya-labs/firtag-core/internal/core/domain"
	"github.com/nyaya-labs/firtag-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Retriever = (*Client)(nil)

// Client implements driven.Retriever against the retrieval service's HTTP
// API. The service is a black box: only the ranked case ids matter here,
// scores and snippets are ignored.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds retrieval service connection configuration
type Config struct {
	// BaseURL is the retrieval endpoint (e.g., http://localhost:8100)
	BaseURL string

	// Timeout for HTTP requests
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: 30 * time.Second,
	}
}

// NewClient creates a new retrieval service client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type searchResponse struct {
	Results []searchHit `json:"results"`
}

type searchHit struct {
	CaseID string  `json:"case_id"`
	Score  float64 `json:"score"`
}

// Retrieve sends one query and returns the ranked case ids, best first
func (c *Client) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	body, err := json.Marshal(searchRequest{Query: query, TopK: k})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRetrieverUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("retrieval search failed: %s - %s", resp.Status, string(respBody))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	ranked := make([]string, 0, len(result.Results))
	for _, hit := range result.Results {
		ranked = append(ranked, hit.CaseID)
	}
	return ranked, nil
}

// HealthCheck verifies the retrieval service is reachable
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRetrieverUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: health check returned %s", domain.ErrRetrieverUnavailable, resp.Status)
	}
	return nil
}
