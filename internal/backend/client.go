package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/quill/internal/form"
)

// Client saves snapshots to an HTTP backend.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	savePath         = "/api/form"
	defaultUserAgent = "quill/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client for endpoint, a host:port or base URL.
func NewClient(endpoint string) (*Client, error) {
	base, err := parseBaseURL(endpoint)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Save PUTs the snapshot as JSON. Responses with status >= 400 become a
// *StatusError carrying that status; transport and decode failures are
// returned wrapped and classify as Unrecognized.
func (c *Client) Save(ctx context.Context, snapshot form.Snapshot) (form.Snapshot, error) {
	if c == nil {
		return form.Snapshot{}, fmt.Errorf("client is nil")
	}
	body, err := json.Marshal(snapshot)
	if err != nil {
		return form.Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}

	reqURL := c.baseURL.ResolveReference(&url.URL{Path: savePath})
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, reqURL.String(), bytes.NewReader(body))
	if err != nil {
		return form.Snapshot{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return form.Snapshot{}, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return form.Snapshot{}, &StatusError{Code: StatusCode(resp.StatusCode)}
	}

	var saved form.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		return form.Snapshot{}, fmt.Errorf("decode response: %w", err)
	}
	return saved, nil
}

func parseBaseURL(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, fmt.Errorf("endpoint is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
