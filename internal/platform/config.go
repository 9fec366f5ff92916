package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/actionlog/pkg/adapters/fs"
)

// EnvPrefix prefixes the environment overrides, e.g. ACTIONLOG_LOG_FILE.
const EnvPrefix = "ACTIONLOG"

// Config is the user-facing configuration.
type Config struct {
	LogFile     string `mapstructure:"log_file" toml:"log_file" yaml:"log_file"`
	ArchiveName string `mapstructure:"archive_name" toml:"archive_name" yaml:"archive_name"`
	Locking     bool   `mapstructure:"locking" toml:"locking" yaml:"locking"`
	LockTimeout string `mapstructure:"lock_timeout" toml:"lock_timeout" yaml:"lock_timeout"`

	// Source is the config file that was read, empty when only defaults and env apply.
	Source string `mapstructure:"-" toml:"-" yaml:"-"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() (Config, error) {
	logFile, err := DefaultLogPath()
	if err != nil {
		return Config{}, err
	}
	return Config{
		LogFile:     logFile,
		ArchiveName: fs.DefaultArchiveName,
		Locking:     false,
		LockTimeout: fs.DefaultLockTimeout.String(),
	}, nil
}

// LoadConfig resolves the configuration.
//
// Precedence (highest to lowest):
//  1. Environment variables (ACTIONLOG_LOG_FILE, ACTIONLOG_LOCKING, ...)
//  2. The config file: configFile when given, otherwise config.{toml,yaml,yml}
//     in the working directory or ConfigDir
//  3. DefaultConfig
//
// A missing config file is only an error when configFile names it explicitly.
func LoadConfig(configFile string) (Config, error) {
	d, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("archive_name", d.ArchiveName)
	v.SetDefault("locking", d.Locking)
	v.SetDefault("lock_timeout", d.LockTimeout)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if configFile != "" || !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()
	cfg.LogFile = expandHome(cfg.LogFile)

	if _, err := cfg.lockTimeout(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Options converts the configuration into factory options.
func (c Config) Options() []Option {
	opts := []Option{
		WithArchiveName(c.ArchiveName),
		WithLocking(c.Locking),
	}
	if d, err := c.lockTimeout(); err == nil && d > 0 {
		opts = append(opts, WithLockTimeout(d))
	}
	return opts
}

// YAML renders the configuration for display.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteConfig stores c as TOML at path, creating parent directories.
// An existing file is only replaced when force is set.
func WriteConfig(path string, c Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return f.Close()
}

func (c Config) lockTimeout() (time.Duration, error) {
	if c.LockTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.LockTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid lock_timeout %q: %w", c.LockTimeout, err)
	}
	return d, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
