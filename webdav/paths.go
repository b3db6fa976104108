package webdav

import (
	"net/url"
	"strings"
)

// EncodePath converts a logical remote path into the path portion of a
// WebDAV URL: exactly one leading slash, each segment percent-encoded,
// separators preserved. Callers always pass logical (unencoded) paths, so
// the result is never fed back in and cannot be double-encoded.
func EncodePath(p string) string {
	p = "/" + strings.TrimLeft(p, "/")

	segments := strings.Split(p, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
