// Package webdav is a thin client over the WebDAV subset this tool needs:
// PROPFIND to list and stat, GET to fetch, PUT to store, MKCOL to create
// directories. All calls are synchronous; transient failures are retried a
// fixed number of times with a fixed backoff and then degrade to a
// caller-visible failure value instead of escaping the retry boundary.
package webdav

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cdsupina/thetawave-sync/config"
	"github.com/cdsupina/thetawave-sync/logger"
)

// httpDoer is the slice of http.Client the client uses, kept as an
// interface so tests can inject a fake transport.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is an authenticated session against one WebDAV endpoint. It is
// created once per command and holds no mutable state after construction.
type Client struct {
	httpc    httpDoer
	baseURL  string
	username string
	password string
	log      logger.Logger

	maxRetries      int
	listTimeout     time.Duration
	transferTimeout time.Duration
	retryDelay      time.Duration
	statRetryDelay  time.Duration
}

// NewClient opens a session: it validates the configuration and performs a
// single depth 0 PROPFIND against the endpoint root. The probe is not
// retried; a failure here is misconfiguration, not a transient fault.
func NewClient(remote *config.RemoteConfig, transfer *config.TransferConfig, log logger.Logger) (*Client, error) {
	remote.ApplyDefaults()
	transfer.ApplyDefaults()

	if err := remote.Validate(); err != nil {
		return nil, fmt.Errorf("invalid remote config: %w", err)
	}
	if err := transfer.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transfer config: %w", err)
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	c := &Client{
		httpc:           &http.Client{},
		baseURL:         strings.TrimRight(remote.Endpoint, "/"),
		username:        remote.Username,
		password:        remote.Password,
		log:             log,
		maxRetries:      transfer.MaxRetries,
		listTimeout:     time.Duration(transfer.ListTimeoutSeconds) * time.Second,
		transferTimeout: time.Duration(transfer.TransferTimeoutSeconds) * time.Second,
		retryDelay:      time.Duration(transfer.RetryDelaySeconds) * time.Second,
		statRetryDelay:  time.Duration(transfer.StatRetryDelaySeconds) * time.Second,
	}

	if err := c.checkConnection(context.Background()); err != nil {
		return nil, err
	}

	return c, nil
}

// checkConnection probes the service root with a depth 0 PROPFIND.
func (c *Client) checkConnection(ctx context.Context) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.listTimeout)
	defer cancel()

	resp, err := c.propfind(reqCtx, "/", "0")
	if err != nil {
		return fmt.Errorf("failed to connect to WebDAV endpoint: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusMultiStatus {
		return fmt.Errorf("failed to connect to WebDAV endpoint: status %d", resp.StatusCode)
	}

	c.log.Debug("Connected to %s", c.baseURL)
	return nil
}

// newRequest builds an authenticated request for the given logical path.
func (c *Client) newRequest(ctx context.Context, method, remotePath string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+EncodePath(remotePath), body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.password)
	return req, nil
}

// propfind issues a PROPFIND with the given Depth header and no body,
// relying on the server's allprop default.
func (c *Client) propfind(ctx context.Context, remotePath, depth string) (*http.Response, error) {
	req, err := c.newRequest(ctx, "PROPFIND", remotePath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Depth", depth)
	return c.httpc.Do(req)
}

// withRetry runs op up to attempts times, sleeping delay between attempts.
// The backoff is fixed, not exponential. op owns its per-attempt timeout.
func (c *Client) withRetry(ctx context.Context, attempts int, delay time.Duration, op func(ctx context.Context) error) error {
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			c.log.Debug("Retrying in %v... (attempt %d/%d)", delay, attempt+1, attempts)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := op(ctx); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	return fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}

// drainAndClose consumes the rest of a response body so the underlying
// connection can be reused, then closes it.
func drainAndClose(body io.ReadCloser) {
	io.Copy(io.Discard, body)
	body.Close()
}
