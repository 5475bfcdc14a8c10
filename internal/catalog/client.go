package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/MikeSquared-Agency/Verdict/internal/vehicle"
)

// Client resolves vehicle records by id.
type Client interface {
	GetVehicle(ctx context.Context, id string) (*vehicle.Vehicle, error)
	GetVehicles(ctx context.Context, ids []string) ([]vehicle.Vehicle, error)
}

// HTTPClient fetches vehicles from an upstream catalog service. Transient
// failures (transport errors, 5xx) are retried with exponential backoff;
// client errors are not.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	maxTries   uint
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		maxTries:   3,
	}
}

func (c *HTTPClient) doReq(ctx context.Context, path string) ([]byte, error) {
	op := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("catalog GET %s: %d %s", path, resp.StatusCode, string(body))
		}
		if resp.StatusCode >= 400 {
			return nil, backoff.Permanent(fmt.Errorf("catalog GET %s: %d %s", path, resp.StatusCode, string(body)))
		}
		return body, nil
	}
	return backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.maxTries),
	)
}

func (c *HTTPClient) GetVehicle(ctx context.Context, id string) (*vehicle.Vehicle, error) {
	data, err := c.doReq(ctx, "/api/v1/vehicles/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	var v vehicle.Vehicle
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *HTTPClient) GetVehicles(ctx context.Context, ids []string) ([]vehicle.Vehicle, error) {
	if len(ids) == 0 {
		return []vehicle.Vehicle{}, nil
	}
	data, err := c.doReq(ctx, "/api/v1/vehicles?ids="+url.QueryEscape(strings.Join(ids, ",")))
	if err != nil {
		return nil, err
	}
	var vehicles []vehicle.Vehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}
