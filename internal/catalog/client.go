package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/djglaser/spookymart-ecommerce/internal/domain"
	"github.com/djglaser/spookymart-ecommerce/internal/ports"
	"github.com/djglaser/spookymart-ecommerce/pkg/metrics"
)

// Client satisfies the outbound catalog port.
var _ ports.Catalog = (*Client)(nil)

// ErrCatalogUnavailable — the catalog could not be consulted: transport
// failure, timeout, non-success status, or a malformed success envelope.
// A 404 is NOT this error; absence is reported as (nil, nil).
var ErrCatalogUnavailable = errors.New("catalog unavailable")

const defaultTimeout = 5 * time.Second

// productEnvelope — the catalog's response wrapper for product fetches.
type productEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Product *domain.Product `json:"product"`
	} `json:"data"`
}

// Client — HTTP client for the product catalog service. One fixed
// timeout applies uniformly to every outbound call.
type Client struct {
	baseURL string
	http    *http.Client
	log     ports.Logger
}

func NewClient(baseURL string, timeout time.Duration, log ports.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Product — GET /api/products/{id}. Returns (nil, nil) when the catalog
// reports not-found; wraps ErrCatalogUnavailable on everything else that
// is not a clean success.
func (c *Client) Product(ctx context.Context, productID string) (*domain.Product, error) {
	url := fmt.Sprintf("%s/api/products/%s", c.baseURL, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %v", ErrCatalogUnavailable, productID, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.CatalogRequests.WithLabelValues("product", "error").Inc()
		c.log.Errorf(ctx, "catalog request failed product_id=%s err=%v", productID, err)
		return nil, fmt.Errorf("%w: request for %s: %v", ErrCatalogUnavailable, productID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		metrics.CatalogRequests.WithLabelValues("product", "not_found").Inc()
		c.log.Warnf(ctx, "product not found product_id=%s", productID)
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		metrics.CatalogRequests.WithLabelValues("product", "error").Inc()
		c.log.Errorf(ctx, "catalog error product_id=%s status=%d", productID, resp.StatusCode)
		return nil, fmt.Errorf("%w: catalog returned %d for %s", ErrCatalogUnavailable, resp.StatusCode, productID)
	}

	var env productEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		metrics.CatalogRequests.WithLabelValues("product", "error").Inc()
		return nil, fmt.Errorf("%w: decode response for %s: %v", ErrCatalogUnavailable, productID, err)
	}
	if !env.Success {
		metrics.CatalogRequests.WithLabelValues("product", "error").Inc()
		c.log.Errorf(ctx, "catalog unsuccessful envelope product_id=%s", productID)
		return nil, fmt.Errorf("%w: unsuccessful response for %s", ErrCatalogUnavailable, productID)
	}

	metrics.CatalogRequests.WithLabelValues("product", "ok").Inc()
	// A success envelope without a product body counts as absence.
	return env.Data.Product, nil
}

// Health — GET /health; any 200 is healthy. Never returns an error:
// transport failures and bad statuses all collapse to false.
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.CatalogRequests.WithLabelValues("health", "error").Inc()
		c.log.Warnf(ctx, "catalog health check failed err=%v", err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	healthy := resp.StatusCode == http.StatusOK
	if healthy {
		metrics.CatalogRequests.WithLabelValues("health", "ok").Inc()
	} else {
		metrics.CatalogRequests.WithLabelValues("health", "error").Inc()
	}
	return healthy
}

// BaseURL — configured catalog address (reported by /health).
func (c *Client) BaseURL() string { return c.baseURL }
