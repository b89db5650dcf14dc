package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/SINO-Proyect/sino-cli/internal/credstore"
)

// LogFormat represents the logging output format.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// CredentialStorageType represents the different storage backends supported
// for the credential record.
type CredentialStorageType string

const (
	CredentialStorageTypeFile    CredentialStorageType = "file"
	CredentialStorageTypeEnv     CredentialStorageType = "env"
	CredentialStorageTypeKeyring CredentialStorageType = "keyring"
)

// Default configuration values
const (
	DefaultConfigLogFormat          = LogFormatText
	DefaultConfigAPIBaseURL         = "https://api.sino-planner.app/v1"
	DefaultConfigAPITimeout         = 2 * time.Minute
	DefaultConfigCredentialStorage  = CredentialStorageTypeFile
	DefaultConfigCredentialEnvPfx   = "SINO_CREDENTIAL_"
	DefaultConfigKeyringServiceName = "sino-cli"
)

// APIConfig holds backend API configuration. There is a single fixed base
// URL per installation; no multi-environment switching.
type APIConfig struct {
	BaseURL string `json:"base_url" validate:"required,url"`

	// Timeout bounds every phase of a call (connect, send, receive),
	// including the refresh and retry legs of the request pipeline.
	Timeout time.Duration `json:"timeout"`
}

// CredentialsConfig describes how to construct the credential Store.
type CredentialsConfig struct {
	// Storage backend for the credential record
	Storage CredentialStorageType `json:"storage" validate:"required,oneof=file env keyring"`

	// Storage-specific settings (mutually exclusive based on Storage type)
	Dir         string `json:"dir,omitempty"`          // For file storage: credentials directory
	EnvPrefix   string `json:"env_prefix,omitempty"`   // For env storage: variable name prefix
	KeyringUser string `json:"keyring_user,omitempty"` // For keyring storage: user identifier
}

// NewStore creates a credential Store from the configuration.
func (c *CredentialsConfig) NewStore() (credstore.Store, error) {
	switch c.Storage {
	case CredentialStorageTypeFile:
		return credstore.NewFileStore(c.Dir)
	case CredentialStorageTypeEnv:
		return credstore.NewEnvStore(c.EnvPrefix)
	case CredentialStorageTypeKeyring:
		return credstore.NewKeyringStore(DefaultConfigKeyringServiceName, c.KeyringUser)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", c.Storage)
	}
}

// Writable reports whether the configured backend supports writes. Session
// management (login, register, logout, token refresh) requires writable
// storage; the env backend only serves pre-provisioned tokens.
func (c *CredentialsConfig) Writable() bool {
	return c.Storage != CredentialStorageTypeEnv
}

// Config holds the application's configuration.
type Config struct {
	// LogLevel for logging output (defaults to Info if unset).
	LogLevel    slog.Level        `json:"log_level"`
	LogFormat   LogFormat         `json:"log_format" validate:"oneof=text json"`
	API         APIConfig         `json:"api"`
	Credentials CredentialsConfig `json:"credentials"`
}

// Default creates a new Config with default values applied.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := cfg.ApplyDefaults(); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills unset config fields with sensible defaults.
func (c *Config) ApplyDefaults() error {
	if c.LogFormat == "" {
		c.LogFormat = DefaultConfigLogFormat
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultConfigAPIBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultConfigAPITimeout
	}
	if c.Credentials.Storage == "" {
		c.Credentials.Storage = DefaultConfigCredentialStorage
	}

	// Dynamic defaults based on storage type
	switch c.Credentials.Storage {
	case CredentialStorageTypeFile:
		if c.Credentials.Dir == "" {
			configDir, err := os.UserConfigDir()
			if err != nil {
				return fmt.Errorf("credentials.dir required (auto-detect failed: %w)", err)
			}
			c.Credentials.Dir = filepath.Join(configDir, "sino", "credentials")
		}
	case CredentialStorageTypeKeyring:
		if c.Credentials.KeyringUser == "" {
			currentUser, err := user.Current()
			if err != nil {
				return fmt.Errorf("credentials.keyring_user required (auto-detect failed: %w)", err)
			}
			c.Credentials.KeyringUser = currentUser.Username
		}
	case CredentialStorageTypeEnv:
		if c.Credentials.EnvPrefix == "" {
			c.Credentials.EnvPrefix = DefaultConfigCredentialEnvPfx
		}
	}

	return nil
}

// Validate validates the configuration using struct tags and enum values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	switch c.Credentials.Storage {
	case CredentialStorageTypeFile:
		if c.Credentials.Dir == "" {
			return errors.New("dir required for file storage")
		}
	case CredentialStorageTypeEnv:
		if c.Credentials.EnvPrefix == "" {
			return errors.New("env_prefix required for env storage")
		}
	case CredentialStorageTypeKeyring:
		if c.Credentials.KeyringUser == "" {
			return errors.New("keyring_user required for keyring storage")
		}
	}

	return nil
}
