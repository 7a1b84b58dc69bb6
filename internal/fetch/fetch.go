// Package fetch retrieves remote signature declaration targets over HTTP.
package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// IsRemoteTarget reports whether a load target names a remote resource rather
// than a local path.
func IsRemoteTarget(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

// Client fetches remote targets. Remote loading is best-effort in exactly the
// same way local loading is: no retries, a short timeout, and any transport
// failure surfaces as an ordinary (unfiltered) load error.
type Client struct {
	http *resty.Client
}

// New creates a Client with the default timeout.
func New() *Client {
	client := resty.New()
	client.SetRetryCount(0)
	client.SetTimeout(10 * time.Second)
	return &Client{http: client}
}

// Resolve downloads the target and returns its raw bytes.
func (c *Client) Resolve(ctx context.Context, target string) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).Get(target)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", target, resp.Status())
	}
	return resp.Body(), nil
}
