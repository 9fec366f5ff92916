package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every per-user directory at temp dirs and returns
// (dataHome, configHome).
func isolate(t *testing.T) (string, string) {
	t.Helper()
	dataHome := t.TempDir()
	configHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("ACTIONLOG_LOG_FILE", "")
	os.Unsetenv("ACTIONLOG_LOG_FILE")
	return dataHome, configHome
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDataDir(t *testing.T) {
	t.Run("XDG_DATA_HOME wins", func(t *testing.T) {
		dataHome, _ := isolate(t)

		dir, err := DataDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dataHome, AppName), dir)

		path, err := DefaultLogPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dataHome, AppName, DefaultLogName), path)
	})

	t.Run("Falls back to local share", func(t *testing.T) {
		if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
			t.Skip("uses the user config dir on this platform")
		}
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("XDG_DATA_HOME", "")

		dir, err := DataDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".local", "share", AppName), dir)
	})
}

func TestLoadConfig_Defaults(t *testing.T) {
	dataHome, _ := isolate(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dataHome, AppName, DefaultLogName), cfg.LogFile)
	assert.Equal(t, "action_log_archive.json", cfg.ArchiveName)
	assert.False(t, cfg.Locking)
	assert.Equal(t, "5s", cfg.LockTimeout)
	assert.Empty(t, cfg.Source)
}

func TestLoadConfig_FileInConfigDir(t *testing.T) {
	_, configHome := isolate(t)
	path := filepath.Join(configHome, AppName, "config.toml")
	writeFile(t, path, "log_file = \"/var/tmp/mylog.json\"\nlocking = true\n")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "/var/tmp/mylog.json", cfg.LogFile)
	assert.True(t, cfg.Locking)
	assert.Equal(t, path, cfg.Source)
}

func TestLoadConfig_ExplicitYAML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "log_file: /srv/log.json\nlock_timeout: 250ms\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/log.json", cfg.LogFile)
	assert.Equal(t, "250ms", cfg.LockTimeout)
	assert.Len(t, cfg.Options(), 3)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	_, configHome := isolate(t)
	writeFile(t, filepath.Join(configHome, AppName, "config.toml"), "log_file = \"/from/file.json\"\n")
	t.Setenv("ACTIONLOG_LOG_FILE", "/from/env.json")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/from/env.json", cfg.LogFile)
}

func TestLoadConfig_ExpandsHome(t *testing.T) {
	isolate(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ACTIONLOG_LOG_FILE", "~/notes/log.json")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes", "log.json"), cfg.LogFile)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("Explicit File Missing", func(t *testing.T) {
		isolate(t)
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})

	t.Run("Malformed File", func(t *testing.T) {
		isolate(t)
		path := filepath.Join(t.TempDir(), "config.toml")
		writeFile(t, path, "log_file = = \n")
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("Bad Lock Timeout", func(t *testing.T) {
		isolate(t)
		path := filepath.Join(t.TempDir(), "config.toml")
		writeFile(t, path, "lock_timeout = \"soon\"\n")
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "lock_timeout")
	})
}

func TestWriteConfig(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Config{LogFile: "/tmp/a.json", ArchiveName: "old.json", Locking: true, LockTimeout: "1s"}

	require.NoError(t, WriteConfig(path, cfg, false))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.LogFile, loaded.LogFile)
	assert.Equal(t, cfg.ArchiveName, loaded.ArchiveName)
	assert.True(t, loaded.Locking)
	assert.Equal(t, "1s", loaded.LockTimeout)

	err = WriteConfig(path, cfg, false)
	assert.ErrorContains(t, err, "already exists")

	assert.NoError(t, WriteConfig(path, cfg, true))
}

func TestConfig_YAML(t *testing.T) {
	out, err := Config{LogFile: "/tmp/a.json", Source: "/etc/x.toml"}.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "log_file: /tmp/a.json")
	assert.NotContains(t, string(out), "/etc/x.toml")
}
