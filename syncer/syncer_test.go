package syncer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cdsupina/thetawave-sync/config"
	"github.com/cdsupina/thetawave-sync/model"
)

// fakeRemote implements Remote against in-memory state and records every
// transfer call.
type fakeRemote struct {
	listings map[string]model.Listing
	listErr  map[string]error
	infos    map[string]*model.RemoteInfo
	statErr  map[string]error
	contents map[string][]byte

	downloadErr map[string]error
	uploadErr   map[string]error

	downloads []string
	uploads   []string
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		listings:    map[string]model.Listing{},
		listErr:     map[string]error{},
		infos:       map[string]*model.RemoteInfo{},
		statErr:     map[string]error{},
		contents:    map[string][]byte{},
		downloadErr: map[string]error{},
		uploadErr:   map[string]error{},
	}
}

func (f *fakeRemote) List(ctx context.Context, remotePath string) (model.Listing, error) {
	if err := f.listErr[remotePath]; err != nil {
		return model.Listing{}, err
	}
	return f.listings[remotePath], nil
}

func (f *fakeRemote) Stat(ctx context.Context, remotePath string) (*model.RemoteInfo, error) {
	if err := f.statErr[remotePath]; err != nil {
		return nil, err
	}
	return f.infos[remotePath], nil
}

func (f *fakeRemote) Download(ctx context.Context, remotePath, localPath string) error {
	f.downloads = append(f.downloads, remotePath)
	if err := f.downloadErr[remotePath]; err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(localPath, f.contents[remotePath], 0o644)
}

func (f *fakeRemote) Upload(ctx context.Context, localPath, remotePath string) error {
	f.uploads = append(f.uploads, remotePath)
	return f.uploadErr[remotePath]
}

func sizePtr(n int64) *int64 { return &n }

func newTestSyncer(remote Remote, localRoot string) *Syncer {
	cfg := &config.SyncConfig{LocalRoot: localRoot, RemoteRoot: "/thetawave"}
	return NewSyncer(remote, cfg, nil, nil)
}

func writeLocalFile(t *testing.T, root string, rel string, size int) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, make([]byte, size), 0o644))
	return p
}

func TestDownloadAll_MirrorsRemoteTree(t *testing.T) {
	remote := newFakeRemote()
	remote.listings["/thetawave/data"] = model.Listing{
		Files: []string{"a.json"},
		Dirs:  []string{"sub"},
	}
	remote.listings["/thetawave/data/sub"] = model.Listing{
		Files: []string{"b.bin"},
	}
	remote.contents["/thetawave/data/a.json"] = make([]byte, 10)
	remote.contents["/thetawave/data/sub/b.bin"] = make([]byte, 20)

	localRoot := filepath.Join(t.TempDir(), "assets")
	s := newTestSyncer(remote, localRoot)

	stats, err := s.DownloadAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, stats.Downloaded)
	require.Equal(t, 2, stats.Total)

	// Exactly one download attempt per listed file.
	require.Equal(t, []string{"/thetawave/data/a.json", "/thetawave/data/sub/b.bin"}, remote.downloads)

	// The local tree mirrors the remote names and structure.
	a, err := os.Stat(filepath.Join(localRoot, "data", "a.json"))
	require.NoError(t, err)
	require.Equal(t, int64(10), a.Size())

	b, err := os.Stat(filepath.Join(localRoot, "data", "sub", "b.bin"))
	require.NoError(t, err)
	require.Equal(t, int64(20), b.Size())

	// The empty media tree still gets its local directory.
	fi, err := os.Stat(filepath.Join(localRoot, "media"))
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestDownloadAll_CountsFailuresWithoutAborting(t *testing.T) {
	remote := newFakeRemote()
	remote.listings["/thetawave/data"] = model.Listing{
		Files: []string{"bad.json", "good.json"},
	}
	remote.downloadErr["/thetawave/data/bad.json"] = fmt.Errorf("status 502")
	remote.contents["/thetawave/data/good.json"] = []byte("{}")

	s := newTestSyncer(remote, filepath.Join(t.TempDir(), "assets"))

	stats, err := s.DownloadAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, stats.Downloaded)
	require.Equal(t, 2, stats.Total)
	require.Len(t, remote.downloads, 2)
}

func TestDownloadAll_ListFailureDegradesToEmpty(t *testing.T) {
	remote := newFakeRemote()
	remote.listErr["/thetawave/data"] = fmt.Errorf("all 3 attempts failed")
	remote.listings["/thetawave/media"] = model.Listing{Files: []string{"x.png"}}
	remote.contents["/thetawave/media/x.png"] = make([]byte, 4)

	s := newTestSyncer(remote, filepath.Join(t.TempDir(), "assets"))

	stats, err := s.DownloadAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, stats.Downloaded)
	require.Equal(t, 1, stats.Total)
}

func TestDownloadAll_Cancellation(t *testing.T) {
	remote := newFakeRemote()
	remote.listings["/thetawave/data"] = model.Listing{Files: []string{"a.json"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestSyncer(remote, filepath.Join(t.TempDir(), "assets"))
	_, err := s.DownloadAll(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, remote.downloads)
}

func TestShouldUpload_NewFile(t *testing.T) {
	remote := newFakeRemote()
	localRoot := t.TempDir()
	local := writeLocalFile(t, localRoot, "x.png", 500)

	s := newTestSyncer(remote, localRoot)

	upload, reason, err := s.ShouldUpload(context.Background(), local, "/thetawave/media/x.png")
	require.NoError(t, err)
	require.True(t, upload)
	require.Equal(t, "new file", reason)
}

func TestShouldUpload_ProbeFailureTreatedAsMissing(t *testing.T) {
	remote := newFakeRemote()
	remote.statErr["/thetawave/media/x.png"] = fmt.Errorf("all 3 attempts failed")

	localRoot := t.TempDir()
	local := writeLocalFile(t, localRoot, "x.png", 500)

	s := newTestSyncer(remote, localRoot)

	// "Confirmed absent" and "probe failed" both mean upload-as-new.
	upload, reason, err := s.ShouldUpload(context.Background(), local, "/thetawave/media/x.png")
	require.NoError(t, err)
	require.True(t, upload)
	require.Equal(t, "new file", reason)
}

func TestShouldUpload_UnchangedBySizeOnly(t *testing.T) {
	remote := newFakeRemote()
	remote.infos["/thetawave/data/y.txt"] = &model.RemoteInfo{Size: sizePtr(100)}

	localRoot := t.TempDir()
	local := writeLocalFile(t, localRoot, "y.txt", 100)

	s := newTestSyncer(remote, localRoot)

	// Same size means "unchanged" even though content may differ.
	upload, reason, err := s.ShouldUpload(context.Background(), local, "/thetawave/data/y.txt")
	require.NoError(t, err)
	require.False(t, upload)
	require.Equal(t, "unchanged", reason)
}

func TestShouldUpload_SizeChanged(t *testing.T) {
	remote := newFakeRemote()
	remote.infos["/thetawave/data/y.txt"] = &model.RemoteInfo{Size: sizePtr(80)}

	localRoot := t.TempDir()
	local := writeLocalFile(t, localRoot, "y.txt", 120)

	s := newTestSyncer(remote, localRoot)

	upload, reason, err := s.ShouldUpload(context.Background(), local, "/thetawave/data/y.txt")
	require.NoError(t, err)
	require.True(t, upload)
	require.Contains(t, reason, "80")
	require.Contains(t, reason, "120")
}

func TestShouldUpload_UnknownRemoteSize(t *testing.T) {
	remote := newFakeRemote()
	remote.infos["/thetawave/data/y.txt"] = &model.RemoteInfo{}

	localRoot := t.TempDir()
	local := writeLocalFile(t, localRoot, "y.txt", 100)

	s := newTestSyncer(remote, localRoot)

	upload, reason, err := s.ShouldUpload(context.Background(), local, "/thetawave/data/y.txt")
	require.NoError(t, err)
	require.True(t, upload)
	require.Contains(t, reason, "unknown")
}

func TestUploadAll_DryRunMatchesExecute(t *testing.T) {
	setupRemote := func() *fakeRemote {
		remote := newFakeRemote()
		remote.infos["/thetawave/data/y.txt"] = &model.RemoteInfo{Size: sizePtr(100)}
		return remote
	}

	localRoot := filepath.Join(t.TempDir(), "assets")
	writeLocalFile(t, localRoot, "media/x.png", 500)
	writeLocalFile(t, localRoot, "data/y.txt", 100)

	// Dry run: identical counts, no network writes.
	dry := setupRemote()
	stats, err := newTestSyncer(dry, localRoot).UploadAll(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Uploaded)
	require.Equal(t, 2, stats.Total)
	require.Equal(t, 1, stats.Skipped)
	require.Empty(t, dry.uploads)

	// Execute: the same single file is actually transferred.
	exec := setupRemote()
	stats, err = newTestSyncer(exec, localRoot).UploadAll(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Uploaded)
	require.Equal(t, 2, stats.Total)
	require.Equal(t, 1, stats.Skipped)
	require.Equal(t, []string{"/thetawave/media/x.png"}, exec.uploads)
}

func TestUploadAll_RecursesIntoSubdirectories(t *testing.T) {
	remote := newFakeRemote()

	localRoot := filepath.Join(t.TempDir(), "assets")
	writeLocalFile(t, localRoot, "data/mobs/drone.json", 40)

	s := newTestSyncer(remote, localRoot)
	stats, err := s.UploadAll(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Uploaded)
	require.Equal(t, []string{"/thetawave/data/mobs/drone.json"}, remote.uploads)
}

func TestUploadAll_UploadFailureCountedNotFatal(t *testing.T) {
	remote := newFakeRemote()
	remote.uploadErr["/thetawave/data/bad.json"] = fmt.Errorf("status 507")

	localRoot := filepath.Join(t.TempDir(), "assets")
	writeLocalFile(t, localRoot, "data/bad.json", 10)
	writeLocalFile(t, localRoot, "data/good.json", 10)

	s := newTestSyncer(remote, localRoot)
	stats, err := s.UploadAll(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Uploaded)
	require.Equal(t, 2, stats.Total)
	require.Len(t, remote.uploads, 2)
}

func TestUploadAll_MissingLocalRoot(t *testing.T) {
	remote := newFakeRemote()
	s := newTestSyncer(remote, filepath.Join(t.TempDir(), "does-not-exist"))

	stats, err := s.UploadAll(context.Background(), true)
	require.NoError(t, err)
	require.Zero(t, stats.Total)
	require.Empty(t, remote.uploads)
}

func TestUploadAll_MissingTreeSkipped(t *testing.T) {
	remote := newFakeRemote()

	localRoot := filepath.Join(t.TempDir(), "assets")
	writeLocalFile(t, localRoot, "data/a.json", 10)
	// no media/ directory

	s := newTestSyncer(remote, localRoot)
	stats, err := s.UploadAll(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Total)
}
