// Package freshservice is the outbound helpdesk API collaborator: it pages
// through tickets and lookup resources and hands back raw records. No
// scoring logic lives here.
package freshservice

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/config"
	"github.com/spec-kit/ticket-triage/internal/observability"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util/errorutil"
)

// Client talks to the Freshservice v2 API.
type Client struct {
	// BaseURL is exported so tests can point the client at a local server.
	BaseURL string

	httpClient *http.Client
	authHeader string
	perPage    int
	maxRetries int
	timeWait   time.Duration
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewClient builds a client for the configured subdomain. The API key goes
// into a basic auth header as "key:X", per the upstream convention.
func NewClient(cfg config.FreshserviceConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(cfg.APIKey + ":X"))
	return &Client{
		BaseURL:    fmt.Sprintf("https://%s.freshservice.com", cfg.ActiveSubdomain()),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout()},
		authHeader: "Basic " + credentials,
		perPage:    cfg.PerPage,
		maxRetries: cfg.MaxRetries,
		timeWait:   cfg.TimeWait(),
		logger:     logger,
		metrics:    metrics,
	}
}

// retryBackoff is the fixed pause between retries of a timed-out request.
const retryBackoff = 2 * time.Second

// getJSON performs a GET with a bounded retry budget for transient timeouts
// and decodes the response body into out. 401, 403, and 429 are
// unrecoverable: they terminate the whole fetch rather than being retried.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("timeout encountered, retrying",
				zap.String("path", path),
				zap.Int("attempt", attempt))
			timer := time.NewTimer(retryBackoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		lastErr = c.doRequest(ctx, path, out)
		if lastErr == nil {
			return nil
		}
		if !isTimeout(lastErr) {
			return lastErr
		}
	}
	c.logger.Error("maximum retries reached for timeout", zap.String("path", path))
	return lastErr
}

func (c *Client) doRequest(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return eris.Wrap(err, "freshservice: build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.authHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return eris.Wrap(err, "freshservice: request")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		c.logger.Error("unrecoverable API status",
			zap.Int("status", resp.StatusCode),
			zap.String("path", path))
		return apperrors.NewUpstreamError(
			fmt.Sprintf("helpdesk API returned %d", resp.StatusCode), nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return eris.Errorf("freshservice: unexpected status %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "freshservice: read body")
	}
	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "freshservice: decode body")
	}
	return nil
}

// pausePage waits the configured inter-call delay, honoring cancellation.
func (c *Client) pausePage(ctx context.Context) error {
	if c.timeWait <= 0 {
		return nil
	}
	timer := time.NewTimer(c.timeWait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
