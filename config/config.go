package config

import (
	"fmt"
	"os"
	"strconv"
)

// AppConfig represents the complete application configuration
type AppConfig struct {
	Remote   RemoteConfig   `json:"remote" yaml:"remote" toml:"remote"`
	Transfer TransferConfig `json:"transfer" yaml:"transfer" toml:"transfer"`
	Sync     SyncConfig     `json:"sync" yaml:"sync" toml:"sync"`
	Logger   LoggerConfig   `json:"logger" yaml:"logger" toml:"logger"`
}

// Validate validates the entire configuration
func (ac *AppConfig) Validate() error {
	if err := ac.Remote.Validate(); err != nil {
		return fmt.Errorf("remote config error: %w", err)
	}
	if err := ac.Transfer.Validate(); err != nil {
		return fmt.Errorf("transfer config error: %w", err)
	}
	if err := ac.Sync.Validate(); err != nil {
		return fmt.Errorf("sync config error: %w", err)
	}
	if err := ac.Logger.Validate(); err != nil {
		return fmt.Errorf("logger config error: %w", err)
	}
	return nil
}

// ApplyDefaults applies default values to all components
func (ac *AppConfig) ApplyDefaults() {
	ac.Remote.ApplyDefaults()
	ac.Transfer.ApplyDefaults()
	ac.Sync.ApplyDefaults()
	ac.Logger.ApplyDefaults()
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.Remote = RemoteConfig{
		Endpoint: getEnv("PCLOUD_ENDPOINT", ""),
		Username: getEnv("PCLOUD_USERNAME", ""),
		Password: getEnv("PCLOUD_PASSWORD", ""),
	}

	cfg.Transfer = TransferConfig{
		MaxRetries:             getEnvInt("SYNC_MAX_RETRIES", 0),
		ListTimeoutSeconds:     getEnvInt("SYNC_LIST_TIMEOUT_SECONDS", 0),
		TransferTimeoutSeconds: getEnvInt("SYNC_TRANSFER_TIMEOUT_SECONDS", 0),
		RetryDelaySeconds:      getEnvInt("SYNC_RETRY_DELAY_SECONDS", 0),
		StatRetryDelaySeconds:  getEnvInt("SYNC_STAT_RETRY_DELAY_SECONDS", 0),
		TransferPauseMs:        getEnvInt("SYNC_TRANSFER_PAUSE_MS", 0),
	}

	cfg.Sync = SyncConfig{
		LocalRoot:  getEnv("SYNC_LOCAL_ROOT", ""),
		RemoteRoot: getEnv("SYNC_REMOTE_ROOT", ""),
	}

	cfg.Logger.Level = LogLevel(getEnv("LOG_LEVEL", string(LogLevelInfo)))

	cfg.ApplyDefaults()

	return cfg, nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
