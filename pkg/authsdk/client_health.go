package authsdk

import (
	"context"
	"net/http"
)

// Health calls the liveness probe.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	return c.probe(ctx, "/livez")
}

// Ready calls the readiness probe. A degraded service answers 503 with the
// failing checks, which is returned together with an *APIError.
func (c *Client) Ready(ctx context.Context) (*HealthResponse, error) {
	return c.probe(ctx, "/readyz")
}

func (c *Client) probe(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	status := resp.StatusCode

	var health HealthResponse
	if err := decodeJSON(resp, &health); err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return &health, &APIError{StatusCode: status, Message: health.Status}
	}
	return &health, nil
}
