package cli

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeDAV is a minimal WebDAV server backing the end-to-end tests: a fixed
// /thetawave tree with one data file, an empty media tree, and a log of
// every mutating method received.
type fakeDAV struct {
	mu      sync.Mutex
	methods []string
}

func (f *fakeDAV) record(method, path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.methods = append(f.methods, method+" "+path)
}

func (f *fakeDAV) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.methods...)
}

func (f *fakeDAV) handler() http.Handler {
	const davNS = `xmlns:D="DAV:"`

	multistatus := func(entries string) string {
		return `<?xml version="1.0" encoding="utf-8"?><D:multistatus ` + davNS + `>` + entries + `</D:multistatus>`
	}
	dirEntry := func(href string) string {
		return `<D:response><D:href>` + href + `</D:href><D:propstat><D:prop><D:resourcetype><D:collection/></D:resourcetype></D:prop></D:propstat></D:response>`
	}
	fileEntry := func(href string, size int) string {
		return `<D:response><D:href>` + href + `</D:href><D:propstat><D:prop><D:resourcetype/><D:getcontentlength>` +
			fmt.Sprint(size) + `</D:getcontentlength></D:prop></D:propstat></D:response>`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := r.BasicAuth(); !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		switch r.Method {
		case "PROPFIND":
			var body string
			switch r.URL.Path {
			case "/", "/thetawave", "/thetawave/media":
				body = multistatus(dirEntry(r.URL.Path))
			case "/thetawave/data":
				if r.Header.Get("Depth") == "0" {
					body = multistatus(dirEntry("/thetawave/data/"))
				} else {
					body = multistatus(dirEntry("/thetawave/data/") + fileEntry("/thetawave/data/a.json", 9))
				}
			case "/thetawave/data/a.json":
				body = multistatus(fileEntry("/thetawave/data/a.json", 9))
			default:
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusMultiStatus)
			fmt.Fprint(w, body)
		case http.MethodGet:
			if r.URL.Path == "/thetawave/data/a.json" {
				fmt.Fprint(w, `{"hp": 10}`)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut, "MKCOL":
			f.record(r.Method, r.URL.Path)
			w.WriteHeader(http.StatusCreated)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func setupEnv(t *testing.T, endpoint, localRoot string) {
	t.Helper()
	t.Setenv("PCLOUD_USERNAME", "user@example.com")
	t.Setenv("PCLOUD_PASSWORD", "secret")
	t.Setenv("PCLOUD_ENDPOINT", endpoint)
	t.Setenv("SYNC_LOCAL_ROOT", localRoot)
	t.Setenv("SYNC_TRANSFER_PAUSE_MS", "1")
	t.Setenv("LOG_LEVEL", "silent")
}

func TestRun_DownloadEndToEnd(t *testing.T) {
	dav := &fakeDAV{}
	srv := httptest.NewServer(dav.handler())
	defer srv.Close()

	localRoot := filepath.Join(t.TempDir(), "assets")
	setupEnv(t, srv.URL, localRoot)

	err := Run(context.Background(), []string{"thetawave-sync", "--no-color", "download"})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(localRoot, "data", "a.json"))
	require.NoError(t, err)
	require.Equal(t, `{"hp": 10}`, string(got))

	fi, err := os.Stat(filepath.Join(localRoot, "media"))
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestRun_UploadEndToEnd(t *testing.T) {
	dav := &fakeDAV{}
	srv := httptest.NewServer(dav.handler())
	defer srv.Close()

	localRoot := filepath.Join(t.TempDir(), "assets")
	// b.json is absent on the server; a.json matches the remote size.
	require.NoError(t, os.MkdirAll(filepath.Join(localRoot, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(localRoot, "data", "a.json"), make([]byte, 9), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(localRoot, "data", "b.json"), []byte("{}"), 0o644))
	setupEnv(t, srv.URL, localRoot)

	// Dry run: no PUT or MKCOL reaches the server.
	err := Run(context.Background(), []string{"thetawave-sync", "--no-color", "upload"})
	require.NoError(t, err)
	require.Empty(t, dav.recorded())

	// Execute: only the new file is pushed, behind its parent MKCOL.
	err = Run(context.Background(), []string{"thetawave-sync", "--no-color", "upload", "--execute"})
	require.NoError(t, err)
	require.Equal(t, []string{"MKCOL /thetawave/data", "PUT /thetawave/data/b.json"}, dav.recorded())
}

func TestRun_TestCommandEndToEnd(t *testing.T) {
	dav := &fakeDAV{}
	srv := httptest.NewServer(dav.handler())
	defer srv.Close()

	setupEnv(t, srv.URL, filepath.Join(t.TempDir(), "assets"))

	err := Run(context.Background(), []string{"thetawave-sync", "--no-color", "test"})
	require.NoError(t, err)
}
