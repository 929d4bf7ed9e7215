// Package api is the HTTP client for the news aggregation backend.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/matheuskafuri/newsdesk/internal/logger"
	"github.com/sirupsen/logrus"
)

// Client calls the /search, /trending and /history endpoints. It never
// retries and sets no timeout of its own.
type Client struct {
	baseURL string
	http    *http.Client
	log     logrus.FieldLogger
}

type Option func(*Client)

// WithHTTPClient replaces the transport, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client for the backend rooted at baseURL, e.g.
// "http://localhost:8000/api/v1".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search looks up articles for topic. The topic is sent as given; trimming is
// the caller's job.
func (c *Client) Search(ctx context.Context, topic string) (SearchResult, error) {
	var out SearchResult
	err := c.get(ctx, OpSearch, "/search", url.Values{"topic": {topic}}, &out)
	return out, err
}

// Trending returns the backend's currently popular articles.
func (c *Client) Trending(ctx context.Context) (TrendingResult, error) {
	var out TrendingResult
	err := c.get(ctx, OpTrending, "/trending", nil, &out)
	return out, err
}

// History returns the most recent searches, newest first. The backend caps the
// list at 10.
func (c *Client) History(ctx context.Context) ([]HistoryEntry, error) {
	var out []HistoryEntry
	if err := c.get(ctx, OpHistory, "/history", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []HistoryEntry{}
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, op Op, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	log := c.log.WithFields(logrus.Fields{"op": op, "url": endpoint})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		return &Error{Op: op, Err: fmt.Errorf("requesting %s: %w", path, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Warn("reading response failed")
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("reading %s: %w", path, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			Op:     op,
			Status: resp.StatusCode,
			Detail: parseDetail(body),
			Err:    fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode),
		}
		log.WithField("status", resp.StatusCode).Warn(apiErr.Error())
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		log.WithError(err).Warn("decoding response failed")
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decoding %s: %w", path, err)}
	}

	log.WithField("status", resp.StatusCode).Debug("request ok")
	return nil
}
