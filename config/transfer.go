package config

import "fmt"

// TransferConfig contains retry and timeout settings shared by all WebDAV
// operations. Listing and stat calls use the shorter timeout; GET/PUT use the
// longer one so large media files have time to move.
type TransferConfig struct {
	MaxRetries             int `json:"max_retries,omitempty" yaml:"max_retries,omitempty" toml:"max_retries,omitempty"`                                              // optional: total attempts per operation
	ListTimeoutSeconds     int `json:"list_timeout_seconds,omitempty" yaml:"list_timeout_seconds,omitempty" toml:"list_timeout_seconds,omitempty"`                   // optional: PROPFIND timeout
	TransferTimeoutSeconds int `json:"transfer_timeout_seconds,omitempty" yaml:"transfer_timeout_seconds,omitempty" toml:"transfer_timeout_seconds,omitempty"`       // optional: GET/PUT timeout
	RetryDelaySeconds      int `json:"retry_delay_seconds,omitempty" yaml:"retry_delay_seconds,omitempty" toml:"retry_delay_seconds,omitempty"`                      // optional: fixed backoff for listing/transfer retries
	StatRetryDelaySeconds  int `json:"stat_retry_delay_seconds,omitempty" yaml:"stat_retry_delay_seconds,omitempty" toml:"stat_retry_delay_seconds,omitempty"`       // optional: fixed backoff for metadata probe retries
	TransferPauseMs        int `json:"transfer_pause_ms,omitempty" yaml:"transfer_pause_ms,omitempty" toml:"transfer_pause_ms,omitempty"`                            // optional: pause between file downloads
}

// ApplyDefaults sets default values if they are not provided
func (tc *TransferConfig) ApplyDefaults() {
	if tc.MaxRetries <= 0 {
		tc.MaxRetries = 3
	}
	if tc.ListTimeoutSeconds <= 0 {
		tc.ListTimeoutSeconds = 60
	}
	if tc.TransferTimeoutSeconds <= 0 {
		tc.TransferTimeoutSeconds = 120
	}
	if tc.RetryDelaySeconds <= 0 {
		tc.RetryDelaySeconds = 2
	}
	if tc.StatRetryDelaySeconds <= 0 {
		tc.StatRetryDelaySeconds = 1
	}
	if tc.TransferPauseMs <= 0 {
		tc.TransferPauseMs = 500
	}
}

// Validate validates transfer configuration
func (tc *TransferConfig) Validate() error {
	if tc.MaxRetries < 0 {
		return fmt.Errorf("max_retries cannot be negative")
	}
	if tc.ListTimeoutSeconds < 0 || tc.TransferTimeoutSeconds < 0 {
		return fmt.Errorf("timeouts cannot be negative")
	}
	if tc.RetryDelaySeconds < 0 || tc.StatRetryDelaySeconds < 0 {
		return fmt.Errorf("retry delays cannot be negative")
	}
	if tc.TransferPauseMs < 0 {
		return fmt.Errorf("transfer_pause_ms cannot be negative")
	}
	return nil
}
