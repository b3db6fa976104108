package syncer

import "fmt"

// DownloadStats accumulates download walker results for one subtree.
type DownloadStats struct {
	Downloaded int // Files written locally
	Total      int // Files attempted
}

// Add folds a subtree's stats into the receiver.
func (s *DownloadStats) Add(other DownloadStats) {
	s.Downloaded += other.Downloaded
	s.Total += other.Total
}

func (s DownloadStats) String() string {
	return fmt.Sprintf("downloaded=%d/%d", s.Downloaded, s.Total)
}

// UploadStats accumulates upload walker results for one subtree. In dry-run
// mode Uploaded counts files that would be uploaded; no network write
// happens.
type UploadStats struct {
	Uploaded int // Files uploaded (or that would be, in dry-run)
	Total    int // Local files examined
	Skipped  int // Files left alone as unchanged
}

// Add folds a subtree's stats into the receiver.
func (s *UploadStats) Add(other UploadStats) {
	s.Uploaded += other.Uploaded
	s.Total += other.Total
	s.Skipped += other.Skipped
}

func (s UploadStats) String() string {
	return fmt.Sprintf("uploaded=%d, total=%d, skipped=%d", s.Uploaded, s.Total, s.Skipped)
}
