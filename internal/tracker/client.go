package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client is a thin HTTP client for the Yandex Tracker REST API v2.
// It attaches OAuth and organization headers to every request and
// decodes Tracker error bodies into *StatusError values. The client
// holds no mutable state and is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	orgID      string
	httpClient *http.Client
}

// NewClient creates a Tracker client. The baseURL should be the API
// root (e.g. https://api.tracker.yandex.net), token a Yandex OAuth
// token, and orgID the Tracker organization identifier. A timeout of
// zero or less selects the default of 30s.
func NewClient(baseURL, token, orgID string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		orgID:   orgID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Issue retrieves a single issue by its key (e.g. "QUEUE-123") and
// returns the decoded JSON object exactly as the API produced it. No
// local schema is imposed on the payload.
func (c *Client) Issue(ctx context.Context, key string) (map[string]any, error) {
	if key == "" {
		return nil, errors.New("issue key must not be empty")
	}

	var issue map[string]any
	path := "/v2/issues/" + url.PathEscape(key)
	if err := c.get(ctx, path, &issue); err != nil {
		return nil, err
	}
	return issue, nil
}

// Myself retrieves the account the configured token belongs to. It is
// used to verify connectivity and credentials.
func (c *Client) Myself(ctx context.Context) (*Myself, error) {
	var me Myself
	if err := c.get(ctx, "/v2/myself", &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// get performs an authenticated GET and unmarshals the JSON response
// into result.
func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+path, nil,
	)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("X-Org-ID", c.orgID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf(
			"unmarshaling response from GET %s: %w", path, err,
		)
	}

	return nil
}

// statusError builds a *StatusError from a non-2xx response, decoding
// the Tracker error body when one is present.
func statusError(code int, body []byte) error {
	var apiErr errorResponse
	if json.Unmarshal(body, &apiErr) == nil && len(apiErr.ErrorMessages) > 0 {
		return &StatusError{
			StatusCode: code,
			Messages:   apiErr.ErrorMessages,
		}
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(code)
	}
	return &StatusError{
		StatusCode: code,
		Messages:   []string{msg},
	}
}
