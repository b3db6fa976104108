package config

import (
	"fmt"
	"strings"
)

// Trees lists the subtrees synchronized beneath both roots. Only these two
// directories are ever synced; content below them is walked without
// restriction.
var Trees = []string{"data", "media"}

// SyncConfig holds the local/remote root pairing
type SyncConfig struct {
	LocalRoot  string `json:"local_root" yaml:"local_root" toml:"local_root"`    // Local assets directory
	RemoteRoot string `json:"remote_root" yaml:"remote_root" toml:"remote_root"` // Absolute remote namespace
}

// ApplyDefaults sets default values for sync configuration
func (sc *SyncConfig) ApplyDefaults() {
	if sc.LocalRoot == "" {
		sc.LocalRoot = "assets"
	}
	if sc.RemoteRoot == "" {
		sc.RemoteRoot = "/thetawave"
	}
}

// Validate validates sync configuration
func (sc *SyncConfig) Validate() error {
	if sc.LocalRoot == "" {
		return fmt.Errorf("local root is required")
	}
	if !strings.HasPrefix(sc.RemoteRoot, "/") {
		return fmt.Errorf("remote root must be an absolute path, got %q", sc.RemoteRoot)
	}
	return nil
}
