package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/lazypower/growthlog/internal/report"
)

const (
	defaultServerURL = "http://127.0.0.1:37780"
	httpTimeout      = 5 * time.Second
	maxRetryTime     = 10 * time.Second
)

// ErrNotFound is returned when the server reports an unknown user.
var ErrNotFound = errors.New("not found")

// StatusError is a non-2xx response.
type StatusError struct {
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d: %s", e.Path, e.Status, e.Body)
}

// Client talks to a running growthlog server.
type Client struct {
	http      *http.Client
	serverURL string

	// MaxRetryTime bounds retries of connection failures and 5xx responses.
	MaxRetryTime time.Duration
}

// New creates a client for serverURL. An empty URL falls back to the
// GROWTHLOG_URL env var, then http://127.0.0.1:37780.
func New(serverURL string) *Client {
	if serverURL == "" {
		serverURL = os.Getenv("GROWTHLOG_URL")
	}
	if serverURL == "" {
		serverURL = defaultServerURL
	}
	return &Client{
		http:         &http.Client{Timeout: httpTimeout},
		serverURL:    strings.TrimRight(serverURL, "/"),
		MaxRetryTime: maxRetryTime,
	}
}

// Get sends a GET request and returns the response body. Connection
// failures and 5xx responses are retried; 4xx responses are not.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	var data []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+path, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("GET %s: %w", path, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response %s: %w", path, err)
		}
		if resp.StatusCode >= 400 {
			serr := &StatusError{Path: path, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
			if resp.StatusCode < 500 {
				return backoff.Permanent(serr)
			}
			return serr
		}
		data = body
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxElapsedTime = c.MaxRetryTime
	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		var serr *StatusError
		if errors.As(err, &serr) && serr.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, serr.Body)
		}
		return nil, err
	}
	return data, nil
}

// Healthy checks if the server is reachable, without retrying.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// FeedbackList fetches a user's feedback list.
func (c *Client) FeedbackList(ctx context.Context, userID int64, order report.SortOrder) (report.FeedbackList, error) {
	q := url.Values{"sort": {string(order)}}
	path := "/api/users/" + strconv.FormatInt(userID, 10) + "/reports?" + q.Encode()

	var list report.FeedbackList
	if err := c.getJSON(ctx, path, &list); err != nil {
		return report.FeedbackList{}, err
	}
	return list, nil
}

// PeriodDetail fetches a user's weekly/monthly report.
func (c *Client) PeriodDetail(ctx context.Context, userID int64, withPeers bool) (report.PeriodDetail, error) {
	q := url.Values{"peers": {strconv.FormatBool(withPeers)}}
	path := "/api/users/" + strconv.FormatInt(userID, 10) + "/reports/details?" + q.Encode()

	var detail report.PeriodDetail
	if err := c.getJSON(ctx, path, &detail); err != nil {
		return report.PeriodDetail{}, err
	}
	return detail, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	data, err := c.Get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
