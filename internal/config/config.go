package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environment variables recognized by the loader.
const (
	EnvToken   = "YANDEX_TRACKER_TOKEN"
	EnvOrgID   = "YANDEX_TRACKER_ORG_ID"
	EnvBaseURL = "YANDEX_TRACKER_BASE_URL"
	EnvTimeout = "YANDEX_TRACKER_TIMEOUT"
	EnvLogLvl  = "LOG_LEVEL"
)

// Keyring keys consulted when the corresponding env variable is unset.
const (
	KeyringToken = "yandex_tracker_token"
	KeyringOrgID = "yandex_tracker_org_id"
)

const (
	defaultBaseURL = "https://api.tracker.yandex.net"
	defaultTimeout = 30 * time.Second
)

// Config holds the immutable runtime configuration. It is constructed
// once at startup and passed explicitly; nothing mutates it afterwards.
type Config struct {
	// Token is the Yandex OAuth token sent with every API call.
	Token string

	// OrgID is the Yandex Tracker organization (tenant) identifier.
	OrgID string

	// BaseURL is the root URL of the Tracker API.
	BaseURL string

	// HTTPTimeout bounds each outbound API call.
	HTTPTimeout time.Duration

	// LogLevel controls the verbosity of the stderr logger.
	LogLevel slog.Level
}

// Loader resolves configuration from the process environment, an
// optional .env file, and the system keyring, in that order of
// precedence for credentials.
type Loader struct {
	// Dir is the directory searched for a .env file. Empty means the
	// current working directory.
	Dir string

	// Keyring resolves a credential by key when the environment does
	// not provide it. Nil disables the fallback.
	Keyring func(key string) (string, error)
}

// Load resolves the full configuration. It fails with an error naming
// every missing credential so the process can refuse to start.
func (l Loader) Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// Mirror of dotenv loading: values from a .env file fill in for
	// variables the environment leaves unset.
	envFile := filepath.Join(l.Dir, ".env")
	if _, err := os.Stat(envFile); err == nil {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", envFile, err)
		}
	}

	v.SetDefault(EnvBaseURL, defaultBaseURL)
	v.SetDefault(EnvTimeout, defaultTimeout)
	v.SetDefault(EnvLogLvl, "info")

	cfg := &Config{
		Token:       l.credential(v, EnvToken, KeyringToken),
		OrgID:       l.credential(v, EnvOrgID, KeyringOrgID),
		BaseURL:     strings.TrimRight(v.GetString(EnvBaseURL), "/"),
		HTTPTimeout: v.GetDuration(EnvTimeout),
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = defaultTimeout
	}

	level, err := parseLevel(v.GetString(EnvLogLvl))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	var missing []string
	if cfg.Token == "" {
		missing = append(missing, EnvToken)
	}
	if cfg.OrgID == "" {
		missing = append(missing, EnvOrgID)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf(
			"missing required configuration: %s",
			strings.Join(missing, ", "),
		)
	}

	return cfg, nil
}

// credential reads a credential from the environment (or .env file),
// falling back to the keyring when available.
func (l Loader) credential(v *viper.Viper, envKey, ringKey string) string {
	if value := v.GetString(envKey); value != "" {
		return value
	}
	if l.Keyring == nil {
		return ""
	}
	value, err := l.Keyring(ringKey)
	if err != nil {
		// Absence in the keyring is not fatal on its own; the caller
		// reports the missing credential by its env variable name.
		return ""
	}
	return value
}

// parseLevel maps a LOG_LEVEL string onto an slog level.
func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown %s %q", EnvLogLvl, s)
	}
}
