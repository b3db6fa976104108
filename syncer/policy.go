package syncer

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// ShouldUpload decides whether a local file needs to be pushed to the
// remote. The decision uses byte sizes only: a missing remote file is "new",
// differing sizes mean "changed", equal sizes are assumed identical even
// when content differs. Modification times and hashes are deliberately not
// consulted; changing that would change sync outcomes.
func (s *Syncer) ShouldUpload(ctx context.Context, localPath, remotePath string) (bool, string, error) {
	info, err := s.remote.Stat(ctx, remotePath)
	if info == nil {
		// A probe that failed after retries lands here too; both cases
		// upload the file as new.
		if err != nil {
			s.log.Debug("Stat %s failed, treating as missing: %v", remotePath, err)
		}
		return true, "new file", nil
	}

	fi, err := os.Stat(localPath)
	if err != nil {
		return false, "", fmt.Errorf("stat %s: %w", localPath, err)
	}
	localSize := fi.Size()

	if info.Size == nil || *info.Size != localSize {
		remoteSize := "unknown"
		if info.Size != nil {
			remoteSize = strconv.FormatInt(*info.Size, 10)
		}
		return true, fmt.Sprintf("size changed (%s -> %d)", remoteSize, localSize), nil
	}

	return false, "unchanged", nil
}
