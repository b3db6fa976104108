package webdav

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cdsupina/thetawave-sync/model"
)

// multistatus mirrors the 207 response body. Field tags carry no namespace
// so the decoder matches D:, lp1: and unprefixed variants alike.
type multistatus struct {
	XMLName   xml.Name      `xml:"multistatus"`
	Responses []davResponse `xml:"response"`
}

type davResponse struct {
	Href     string     `xml:"href"`
	Propstat []propstat `xml:"propstat"`
}

type propstat struct {
	Prop davProp `xml:"prop"`
}

type davProp struct {
	ResourceType  resourceType `xml:"resourcetype"`
	ContentLength string       `xml:"getcontentlength"`
	LastModified  string       `xml:"getlastmodified"`
}

type resourceType struct {
	Collection *struct{} `xml:"collection"`
}

// isCollection reports whether any propstat flags the entry as a directory.
func (r davResponse) isCollection() bool {
	for _, ps := range r.Propstat {
		if ps.Prop.ResourceType.Collection != nil {
			return true
		}
	}
	return false
}

// List performs a shallow (depth 1) query of a remote directory and splits
// the entries into file names and subdirectory names, in response order.
// The queried directory's own entry is excluded. After exhausting retries
// the zero Listing is returned along with the final error; callers treat
// that the same as an empty directory.
func (c *Client) List(ctx context.Context, remotePath string) (model.Listing, error) {
	var listing model.Listing

	err := c.withRetry(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context) error {
		reqCtx, cancel := context.WithTimeout(ctx, c.listTimeout)
		defer cancel()

		resp, err := c.propfind(reqCtx, remotePath, "1")
		if err != nil {
			return fmt.Errorf("listing %s: %w", remotePath, err)
		}
		defer drainAndClose(resp.Body)

		if resp.StatusCode != http.StatusMultiStatus {
			return fmt.Errorf("listing %s: status %d", remotePath, resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("listing %s: %w", remotePath, err)
		}

		parsed, err := parseListing(body, remotePath)
		if err != nil {
			return fmt.Errorf("listing %s: %w", remotePath, err)
		}

		listing = parsed
		return nil
	})
	if err != nil {
		return model.Listing{}, err
	}

	for _, d := range listing.Dirs {
		c.log.Verbose("    Found directory: %s", d)
	}
	for _, f := range listing.Files {
		c.log.Verbose("    Found file: %s", f)
	}

	return listing, nil
}

// parseListing extracts file and directory names from a multi-status body.
func parseListing(body []byte, remotePath string) (model.Listing, error) {
	var ms multistatus
	if err := xml.Unmarshal(body, &ms); err != nil {
		return model.Listing{}, fmt.Errorf("parsing multi-status response: %w", err)
	}

	var listing model.Listing
	for _, entry := range ms.Responses {
		href := decodeHref(entry.Href)

		// Skip the queried directory itself.
		if href == remotePath || href == remotePath+"/" {
			continue
		}

		if entry.isCollection() {
			name := lastSegment(strings.TrimSuffix(href, "/"))
			if name != "" {
				listing.Dirs = append(listing.Dirs, name)
			}
		} else {
			name := lastSegment(href)
			if name != "" && !strings.HasSuffix(href, "/") {
				listing.Files = append(listing.Files, name)
			}
		}
	}

	return listing, nil
}

// Stat fetches size and modification time for a single remote path via a
// depth 0 PROPFIND. A 404 means the file does not exist and yields
// (nil, nil) with no retry. Any other failure is retried with a fixed
// backoff and then yields (nil, err); callers fold both nil results into
// "does not exist".
func (c *Client) Stat(ctx context.Context, remotePath string) (*model.RemoteInfo, error) {
	var info *model.RemoteInfo

	err := c.withRetry(ctx, c.maxRetries, c.statRetryDelay, func(ctx context.Context) error {
		reqCtx, cancel := context.WithTimeout(ctx, c.listTimeout)
		defer cancel()

		resp, err := c.propfind(reqCtx, remotePath, "0")
		if err != nil {
			return fmt.Errorf("stat %s: %w", remotePath, err)
		}
		defer drainAndClose(resp.Body)

		switch resp.StatusCode {
		case http.StatusMultiStatus:
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("stat %s: %w", remotePath, err)
			}
			info = parseRemoteInfo(body)
			return nil
		case http.StatusNotFound:
			// Legitimate outcome, not a fault.
			info = nil
			return nil
		default:
			return fmt.Errorf("stat %s: status %d", remotePath, resp.StatusCode)
		}
	})
	if err != nil {
		return nil, err
	}

	return info, nil
}

// parseRemoteInfo pulls size and last-modified out of a depth 0 body.
// Either property may be missing; a missing size stays nil.
func parseRemoteInfo(body []byte) *model.RemoteInfo {
	var ms multistatus
	if err := xml.Unmarshal(body, &ms); err != nil || len(ms.Responses) == 0 {
		return &model.RemoteInfo{}
	}

	info := &model.RemoteInfo{}
	for _, ps := range ms.Responses[0].Propstat {
		if info.Size == nil && ps.Prop.ContentLength != "" {
			if size, err := strconv.ParseInt(ps.Prop.ContentLength, 10, 64); err == nil {
				info.Size = &size
			}
		}
		if info.Modified == "" {
			info.Modified = ps.Prop.LastModified
		}
	}
	return info
}

// decodeHref percent-decodes a response href, falling back to the raw value
// when the server sends something undecodable.
func decodeHref(href string) string {
	decoded, err := url.PathUnescape(href)
	if err != nil {
		return href
	}
	return decoded
}

func lastSegment(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
