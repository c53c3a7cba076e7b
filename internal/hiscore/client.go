// Package hiscore is a small client for the public hiscores lite endpoint and the
// game wiki's MediaWiki API.
//
// Requests that fail with a retryable status (429 or 5xx) are retried with
// capped exponential backoff.
package hiscore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL   = "https://secure.runescape.com/m=hiscore_oldschool"
	DefaultWikiURL   = "https://oldschool.runescape.wiki"
	DefaultUserAgent = "SoloLevelingPlugin/1.0"
)

type Config struct {
	// BaseURL is the hiscores root; index_lite.ws is appended.
	BaseURL string

	// WikiURL is the wiki root; api.php and /w/ pages hang off it.
	WikiURL string

	UserAgent string

	// MaxRetries defaults to 3 if zero. Negative disables retries.
	MaxRetries int

	// BaseRetryDelay defaults to 500ms, MaxRetryDelay to 5s.
	BaseRetryDelay time.Duration
	MaxRetryDelay  time.Duration

	// HTTPClient defaults to a client with a 15s timeout.
	HTTPClient *http.Client

	Logger *zap.Logger
}

type Client struct {
	config Config
	http   *http.Client
	log    *zap.Logger
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.WikiURL == "" {
		cfg.WikiURL = DefaultWikiURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseRetryDelay == 0 {
		cfg.BaseRetryDelay = 500 * time.Millisecond
	}
	if cfg.MaxRetryDelay == 0 {
		cfg.MaxRetryDelay = 5 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.WikiURL = strings.TrimRight(cfg.WikiURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{config: cfg, http: httpClient, log: cfg.Logger}
}

var ErrPlayerNotFound = errors.New("player not found on hiscores")

// HTTPError is a non-200 response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("hiscore: HTTP %d: %s", e.StatusCode, body)
}

// IsRetryable reports whether the request may succeed when repeated.
func (e *HTTPError) IsRetryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// escape encodes a query value with %20 for spaces, which both endpoints accept
// and which keeps player names readable in logs.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// get sends one GET request and returns the body of a 200 response.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("hiscore: create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hiscore: http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("hiscore: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func (c *Client) getWithRetry(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay(attempt)
			c.log.Debug("retrying request",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(lastErr))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, err := c.get(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.IsRetryable() {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("hiscore: max retries exceeded: %w", lastErr)
}

func (c *Client) retryDelay(attempt int) time.Duration {
	delay := c.config.BaseRetryDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > c.config.MaxRetryDelay {
		delay = c.config.MaxRetryDelay
	}
	return delay
}
