package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable the loader reads so ambient state
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvToken, EnvOrgID, EnvBaseURL, EnvTimeout, EnvLogLvl,
	} {
		t.Setenv(key, "")
	}
}

func writeDotEnv(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600)
	require.NoError(t, err)
}

func Test_Load_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvToken, "env-token")
	t.Setenv(EnvOrgID, "org-42")

	cfg, err := Loader{Dir: t.TempDir()}.Load()
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, "org-42", cfg.OrgID)
	assert.Equal(t, "https://api.tracker.yandex.net", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func Test_Load_MissingCredentials(t *testing.T) {
	clearEnv(t)

	_, err := Loader{Dir: t.TempDir()}.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvToken)
	assert.Contains(t, err.Error(), EnvOrgID)
}

func Test_Load_MissingOrgOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvToken, "env-token")

	_, err := Loader{Dir: t.TempDir()}.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvOrgID)
	assert.NotContains(t, err.Error(), EnvToken)
}

func Test_Load_DotEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeDotEnv(t, dir,
		"YANDEX_TRACKER_TOKEN=file-token\n"+
			"YANDEX_TRACKER_ORG_ID=file-org\n")

	cfg, err := Loader{Dir: dir}.Load()
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, "file-org", cfg.OrgID)
}

func Test_Load_EnvBeatsDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvToken, "env-token")
	dir := t.TempDir()
	writeDotEnv(t, dir,
		"YANDEX_TRACKER_TOKEN=file-token\n"+
			"YANDEX_TRACKER_ORG_ID=file-org\n")

	cfg, err := Loader{Dir: dir}.Load()
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, "file-org", cfg.OrgID)
}

func Test_Load_KeyringFallback(t *testing.T) {
	clearEnv(t)

	ring := map[string]string{
		KeyringToken: "ring-token",
		KeyringOrgID: "ring-org",
	}
	loader := Loader{
		Dir: t.TempDir(),
		Keyring: func(key string) (string, error) {
			value, ok := ring[key]
			if !ok {
				return "", errors.New("not found")
			}
			return value, nil
		},
	}

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "ring-token", cfg.Token)
	assert.Equal(t, "ring-org", cfg.OrgID)
}

func Test_Load_EnvBeatsKeyring(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvToken, "env-token")
	t.Setenv(EnvOrgID, "org-42")

	loader := Loader{
		Dir: t.TempDir(),
		Keyring: func(key string) (string, error) {
			t.Fatalf("keyring consulted for %q despite env being set", key)
			return "", nil
		},
	}

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Token)
}

func Test_Load_KeyringErrorMeansMissing(t *testing.T) {
	clearEnv(t)

	loader := Loader{
		Dir: t.TempDir(),
		Keyring: func(key string) (string, error) {
			return "", errors.New("keyring locked")
		},
	}

	_, err := loader.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvToken)
}

func Test_Load_CustomSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvToken, "env-token")
	t.Setenv(EnvOrgID, "org-42")
	t.Setenv(EnvBaseURL, "https://tracker.example.com/")
	t.Setenv(EnvTimeout, "5s")
	t.Setenv(EnvLogLvl, "debug")

	cfg, err := Loader{Dir: t.TempDir()}.Load()
	require.NoError(t, err)
	assert.Equal(t, "https://tracker.example.com", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func Test_Load_UnknownLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvToken, "env-token")
	t.Setenv(EnvOrgID, "org-42")
	t.Setenv(EnvLogLvl, "chatty")

	_, err := Loader{Dir: t.TempDir()}.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chatty")
}
