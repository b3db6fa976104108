package syncer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cdsupina/thetawave-sync/config"
)

// UploadAll walks every synchronized local tree and pushes new or changed
// files to the remote. With execute false (the default) it is a dry run:
// decisions are made and counted exactly as in a real run, but no PUT or
// MKCOL is issued.
func (s *Syncer) UploadAll(ctx context.Context, execute bool) (UploadStats, error) {
	var total UploadStats

	if _, err := os.Stat(s.cfg.LocalRoot); err != nil {
		s.log.Error("%s directory not found", s.cfg.LocalRoot)
		return total, nil
	}

	for _, tree := range config.Trees {
		localPath := filepath.Join(s.cfg.LocalRoot, tree)
		remotePath := s.cfg.RemoteRoot + "/" + tree

		if _, err := os.Stat(localPath); err != nil {
			s.log.Info("Skipping %s - directory not found", tree)
			continue
		}

		if execute {
			s.log.Info("Checking %s -> %s (recursive)", localPath, remotePath)
		} else {
			s.log.Info("Would check %s -> %s (recursive)", localPath, remotePath)
		}

		stats, err := s.uploadTree(ctx, localPath, remotePath, execute)
		total.Add(stats)
		if err != nil {
			return total, err
		}

		switch {
		case execute && stats.Uploaded > 0:
			s.log.Info("  Uploaded %d files from %s", stats.Uploaded, tree)
		case !execute && stats.Uploaded > 0:
			s.log.Info("  Would upload %d files from %s", stats.Uploaded, tree)
		case !execute:
			s.log.Info("  No changes in %s", tree)
		}
	}

	return total, nil
}

// uploadTree examines one local directory. Files run the change policy and
// are uploaded (or counted, in dry-run) when selected; subdirectories
// recurse, reporting the traversal only when something inside them changed.
func (s *Syncer) uploadTree(ctx context.Context, localPath, remotePath string, execute bool) (UploadStats, error) {
	var stats UploadStats

	entries, err := os.ReadDir(localPath)
	if err != nil {
		s.log.Error("Failed to read directory %s: %v", localPath, err)
		return stats, nil
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		name := entry.Name()
		if entry.IsDir() {
			sub, err := s.uploadTree(ctx, filepath.Join(localPath, name), remotePath+"/"+name, execute)
			if sub.Uploaded > 0 {
				if execute {
					s.log.Info("  Entering directory: %s", name)
				} else {
					s.log.Info("  Would enter directory: %s", name)
				}
			}
			stats.Add(sub)
			if err != nil {
				return stats, err
			}
			continue
		}

		stats.Total++
		localFile := filepath.Join(localPath, name)
		remoteFile := remotePath + "/" + name

		upload, reason, err := s.ShouldUpload(ctx, localFile, remoteFile)
		if err != nil {
			s.log.Error("  Failed to check %s: %v", name, err)
			continue
		}
		if !upload {
			stats.Skipped++
			continue
		}

		if execute {
			s.log.Info("  Uploading %s (%s)", name, reason)
			if err := s.remote.Upload(ctx, localFile, remoteFile); err != nil {
				s.log.Error("  Failed to upload %s: %v", name, err)
			} else {
				stats.Uploaded++
			}
		} else {
			s.log.Info("  Would upload: %s (%s)", name, reason)
			stats.Uploaded++
		}
	}

	return stats, nil
}
