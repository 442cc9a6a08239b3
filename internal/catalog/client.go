// Package catalog fetches product metadata from the remote product-listing
// service and exposes it as an insertion-ordered mapping.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/quillium/salescope/internal/common"
)

// Product is one catalog entry as returned by the listing endpoint.
type Product struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
}

type productList struct {
	Products []Product `json:"products"`
}

// Client is a read-only product catalog client. The catalog is queried
// exactly once per run with no retries; callers treat any failure as an
// empty catalog.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limit      int
}

// NewClient creates a catalog client for the given listing endpoint.
func NewClient(baseURL string, limit int, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		limit:   limit,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchProducts requests up to the configured number of products from the
// catalog, preserving the response order.
func (c *Client) FetchProducts(ctx context.Context) ([]Product, error) {
	reqURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog URL %q: %w", c.baseURL, err)
	}

	query := reqURL.Query()
	query.Set("limit", strconv.Itoa(c.limit))
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCatalogUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", common.ErrCatalogUnavailable, resp.StatusCode)
	}

	var payload productList
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return payload.Products, nil
}
