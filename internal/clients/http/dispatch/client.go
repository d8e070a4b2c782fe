// Package dispatch is the HTTP client for the field dispatch service.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrNotFound is returned when the dispatch service has no value for the key.
var ErrNotFound = errors.New("dispatch value not found")

// DefaultTimeout bounds each dispatch call when no http.Client is supplied.
const DefaultTimeout = 2 * time.Second

// Client calls GET {base}/{field}/{action}/{key} and reads {"value": "..."}.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

type valueResponse struct {
	Value string `json:"value"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// NewClient instantiates the dispatch client. A nil httpClient gets an otelhttp-instrumented default.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("dispatch base URL is required")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse dispatch base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("dispatch base URL %q must be absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{baseURL: parsed, httpClient: httpClient}, nil
}

// Fetch asks the dispatch service for the value of field under action for key.
func (c *Client) Fetch(ctx context.Context, field, action string, key int64) (string, error) {
	if c == nil || c.httpClient == nil {
		return "", errors.New("dispatch client not configured")
	}
	endpoint := c.baseURL.JoinPath(field, action, strconv.FormatInt(key, 10))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build dispatch request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call dispatch service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read dispatch response: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusOK:
		var payload valueResponse
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", fmt.Errorf("decode dispatch response: %w", err)
		}
		return payload.Value, nil
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrNotFound
	default:
		return "", fmt.Errorf("dispatch service error: %s", errorMessage(body, resp.Status))
	}
}

func errorMessage(body []byte, fallback string) string {
	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
	}
	return fallback
}
