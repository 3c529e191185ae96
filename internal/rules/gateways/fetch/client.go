// Package fetch downloads feed text over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	logpkg "github.com/cinmou/singbox-rules/internal/rules/common/log"
)

// Fetcher resolves a source URL to its text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Client is the plain HTTP implementation of Fetcher.
type Client struct {
	hc        *http.Client
	userAgent string
	logger    logpkg.Logger
}

func NewClient(timeout time.Duration, userAgent string, logger logpkg.Logger) *Client {
	return &Client{
		hc:        &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logger,
	}
}

// Fetch performs a GET and returns the response body as text. Any
// non-2xx status is an error; the caller decides whether that skips the
// source or fails the run.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}

	c.logger.Debug(map[string]any{
		"url":      url,
		"bytes":    len(body),
		"duration": time.Since(start).String(),
	}, "fetch_done")
	return string(body), nil
}
