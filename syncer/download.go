package syncer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cdsupina/thetawave-sync/config"
)

// DownloadAll mirrors every synchronized remote tree into the local root.
// Individual file failures are logged and counted, never fatal; the only
// error returned is context cancellation.
func (s *Syncer) DownloadAll(ctx context.Context) (DownloadStats, error) {
	var total DownloadStats

	if err := os.MkdirAll(s.cfg.LocalRoot, 0o755); err != nil {
		return total, fmt.Errorf("creating %s: %w", s.cfg.LocalRoot, err)
	}

	for _, tree := range config.Trees {
		remotePath := s.cfg.RemoteRoot + "/" + tree
		localPath := filepath.Join(s.cfg.LocalRoot, tree)

		s.log.Info("Downloading %s -> %s (recursive)", remotePath, localPath)

		stats, err := s.downloadTree(ctx, remotePath, localPath)
		total.Add(stats)
		if err != nil {
			return total, err
		}

		if stats.Total > 0 {
			s.log.Info("  Downloaded %d/%d files from %s", stats.Downloaded, stats.Total, tree)
		} else {
			s.log.Info("  No files found in %s", remotePath)
		}
	}

	return total, nil
}

// downloadTree lists one remote directory, fetches every file in it, then
// recurses into each subdirectory. A listing failure degrades to an empty
// directory; the walk continues.
func (s *Syncer) downloadTree(ctx context.Context, remotePath, localPath string) (DownloadStats, error) {
	var stats DownloadStats

	listing, err := s.remote.List(ctx, remotePath)
	if err != nil {
		s.log.Error("Failed to list directory %s: %v", remotePath, err)
	}

	if err := os.MkdirAll(localPath, 0o755); err != nil {
		s.log.Error("Failed to create local directory %s: %v", localPath, err)
		return stats, nil
	}

	for _, name := range listing.Files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		s.pace(ctx)

		s.log.Info("  Downloading %s", name)
		stats.Total++

		remoteFile := remotePath + "/" + name
		localFile := filepath.Join(localPath, name)
		if err := s.remote.Download(ctx, remoteFile, localFile); err != nil {
			s.log.Error("  Failed to download %s: %v", remoteFile, err)
		} else {
			stats.Downloaded++
		}
	}

	for _, name := range listing.Dirs {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		s.log.Info("  Entering directory: %s", name)
		sub, err := s.downloadTree(ctx, remotePath+"/"+name, filepath.Join(localPath, name))
		stats.Add(sub)
		if err != nil {
			return stats, err
		}
	}

	return stats, nil
}
