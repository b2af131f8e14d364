package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"catfacts/internal/config"
)

// PlaceholderFact is returned in place of a fact when the upstream answers with valid JSON
// that carries no usable fact text.
const PlaceholderFact = "No fact available right now."

var (
	// ErrUnreachable covers transport failures, timeouts and non-2xx responses.
	ErrUnreachable = errors.New("upstream unreachable")
	// ErrInvalidResponse is returned when a 2xx body is not the expected JSON document.
	ErrInvalidResponse = errors.New("upstream returned invalid response")
)

// maxBodyBytes bounds how much of the upstream body is read.
const maxBodyBytes = 1 << 20

// FactSource fetches a single fact from an external service.
type FactSource interface {
	FetchFact(ctx context.Context) (string, error)
}

// Client calls the fact API over HTTP. It holds no state between calls,
// is safe for concurrent use, and never retries.
type Client struct {
	url  string
	http *http.Client
}

var _ FactSource = (*Client)(nil)

// NewClient builds a Client whose requests are traced and bounded by cfg.Timeout.
func NewClient(cfg config.UpstreamConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		url: cfg.URL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type factPayload struct {
	Fact *string `json:"fact"`
}

// FetchFact performs one GET against the configured URL.
func (c *Client) FetchFact(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrUnreachable, err)
	}

	var p factPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if p.Fact == nil || *p.Fact == "" {
		return PlaceholderFact, nil
	}
	return *p.Fact, nil
}
