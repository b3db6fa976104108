package webdav

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// Download fetches a remote file into localPath, creating parent
// directories as needed. The body is read whole and written with plain
// overwrite semantics; there is no temp-file swap. Only a 200 counts as
// success. Failed attempts are retried with the fixed transfer backoff.
func (c *Client) Download(ctx context.Context, remotePath, localPath string) error {
	return c.withRetry(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context) error {
		reqCtx, cancel := context.WithTimeout(ctx, c.transferTimeout)
		defer cancel()

		req, err := c.newRequest(reqCtx, http.MethodGet, remotePath, nil)
		if err != nil {
			return fmt.Errorf("downloading %s: %w", remotePath, err)
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			return fmt.Errorf("downloading %s: %w", remotePath, err)
		}
		defer drainAndClose(resp.Body)

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("downloading %s: status %d", remotePath, resp.StatusCode)
		}

		if resp.ContentLength > 0 {
			c.log.Debug("    (%.1f MB)", float64(resp.ContentLength)/1024/1024)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("downloading %s: %w", remotePath, err)
		}

		if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", localPath, err)
		}
		if err := os.WriteFile(localPath, body, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", localPath, err)
		}

		return nil
	})
}

// Upload stores a local file at remotePath. The remote parent directory is
// created best-effort first; MKCOL failures are swallowed because the
// protocol does not let us cheaply distinguish "already exists" from a real
// error. Statuses 200, 201 and 204 all count as success.
func (c *Client) Upload(ctx context.Context, localPath, remotePath string) error {
	if dir := path.Dir(remotePath); dir != "/" && dir != "." {
		c.mkcol(ctx, dir)
	}

	return c.withRetry(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context) error {
		f, err := os.Open(localPath)
		if err != nil {
			return fmt.Errorf("opening %s: %w", localPath, err)
		}
		defer f.Close()

		reqCtx, cancel := context.WithTimeout(ctx, c.transferTimeout)
		defer cancel()

		req, err := c.newRequest(reqCtx, http.MethodPut, remotePath, f)
		if err != nil {
			return fmt.Errorf("uploading %s: %w", remotePath, err)
		}
		if fi, err := f.Stat(); err == nil {
			req.ContentLength = fi.Size()
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			return fmt.Errorf("uploading %s: %w", remotePath, err)
		}
		defer drainAndClose(resp.Body)

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusNoContent:
			return nil
		default:
			return fmt.Errorf("uploading %s: status %d", remotePath, resp.StatusCode)
		}
	})
}

// mkcol creates a remote collection, ignoring the outcome entirely.
func (c *Client) mkcol(ctx context.Context, remotePath string) {
	reqCtx, cancel := context.WithTimeout(ctx, c.listTimeout)
	defer cancel()

	req, err := c.newRequest(reqCtx, "MKCOL", remotePath, nil)
	if err != nil {
		return
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Debug("MKCOL %s: %v", remotePath, err)
		return
	}
	drainAndClose(resp.Body)
}
