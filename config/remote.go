// The remote configuration describes the WebDAV endpoint the tool talks to.
// pCloud exposes webdav.pcloud.com (eapi for EU accounts); any server that
// implements PROPFIND/GET/PUT/MKCOL with basic auth works.
package config

import (
	"fmt"
	"net/url"
)

// RemoteConfig holds the WebDAV endpoint and credentials
type RemoteConfig struct {
	Endpoint string `json:"endpoint" yaml:"endpoint" toml:"endpoint"`                               // Base URL of the WebDAV server
	Username string `json:"username" yaml:"username" toml:"username"`                               // Basic-auth username (pCloud email)
	Password string `json:"password,omitempty" yaml:"password,omitempty" toml:"password,omitempty"` // Basic-auth password
}

// Validate ensures the remote configuration is usable
func (rc *RemoteConfig) Validate() error {
	if rc.Username == "" {
		return fmt.Errorf("PCLOUD_USERNAME is required")
	}
	if rc.Password == "" {
		return fmt.Errorf("PCLOUD_PASSWORD is required")
	}
	if rc.Endpoint == "" {
		return fmt.Errorf("webdav endpoint is required")
	}
	u, err := url.Parse(rc.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid webdav endpoint: %s", rc.Endpoint)
	}
	return nil
}

// ApplyDefaults sets default values for remote configuration
func (rc *RemoteConfig) ApplyDefaults() {
	if rc.Endpoint == "" {
		rc.Endpoint = "https://webdav.pcloud.com"
	}
}
