package verdict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/Verdict/internal/scoring"
	"github.com/MikeSquared-Agency/Verdict/internal/vehicle"
)

// RemoteVerdict is the authoritative compute endpoint's response.
type RemoteVerdict struct {
	Verdict  string                 `json:"verdict"`
	WinnerID string                 `json:"winner_id"`
	Scores   []scoring.VehicleScore `json:"scores,omitempty"`
}

// RemoteClient computes a verdict on the server-authoritative path. Any
// error is a fallback trigger, never surfaced to the caller as a failure.
type RemoteClient interface {
	ComputeVerdict(ctx context.Context, vehicles []vehicle.Vehicle) (*RemoteVerdict, error)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type computeRequest struct {
	Vehicles []vehicle.Vehicle `json:"vehicles"`
}

func (c *HTTPClient) ComputeVerdict(ctx context.Context, vehicles []vehicle.Vehicle) (*RemoteVerdict, error) {
	payload, err := json.Marshal(computeRequest{Vehicles: vehicles})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/v1/compare/verdict", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("verdict POST /api/v1/compare/verdict: %d %s", resp.StatusCode, string(body))
	}

	var verdict RemoteVerdict
	if err := json.Unmarshal(body, &verdict); err != nil {
		return nil, err
	}
	return &verdict, nil
}
