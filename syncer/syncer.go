// Package syncer walks the synchronized trees and drives transfers through
// a Remote. Traversal state is aggregated in return values, never in shared
// counters, so each directory level is testable in isolation.
package syncer

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/cdsupina/thetawave-sync/config"
	"github.com/cdsupina/thetawave-sync/logger"
	"github.com/cdsupina/thetawave-sync/model"
)

// Remote is the slice of the WebDAV client the syncer depends on. Tests
// provide a fake; webdav.Client is the production implementation.
type Remote interface {
	List(ctx context.Context, remotePath string) (model.Listing, error)
	Stat(ctx context.Context, remotePath string) (*model.RemoteInfo, error)
	Download(ctx context.Context, remotePath, localPath string) error
	Upload(ctx context.Context, localPath, remotePath string) error
}

// Syncer performs one-shot synchronization runs between the local assets
// tree and the remote namespace. It holds no state across runs; every run
// re-derives remote state by querying the server.
type Syncer struct {
	remote  Remote
	log     logger.Logger
	cfg     *config.SyncConfig
	limiter *rate.Limiter
}

// NewSyncer creates a Syncer. The transfer pause (if positive) becomes a
// rate limiter that spaces out file downloads so the remote service is not
// overwhelmed.
func NewSyncer(remote Remote, cfg *config.SyncConfig, transfer *config.TransferConfig, log logger.Logger) *Syncer {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	var limiter *rate.Limiter
	if transfer != nil && transfer.TransferPauseMs > 0 {
		pause := time.Duration(transfer.TransferPauseMs) * time.Millisecond
		limiter = rate.NewLimiter(rate.Every(pause), 1)
	}

	return &Syncer{
		remote:  remote,
		log:     log,
		cfg:     cfg,
		limiter: limiter,
	}
}

// pace blocks until the next transfer slot is available.
func (s *Syncer) pace(ctx context.Context) {
	if s.limiter != nil {
		s.limiter.Wait(ctx)
	}
}
