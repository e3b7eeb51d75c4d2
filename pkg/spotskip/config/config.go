package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// Config represents the application configuration.
type Config struct {
	// IgnoreNames are the directory names registered as Spotlight
	// exclusions when found during a scan.
	IgnoreNames []string `mapstructure:"ignore_names"`

	// StorePath is the Spotlight volume configuration plist to edit.
	StorePath string `mapstructure:"store_path"`

	// BackupDir is where plist backups are written before any edit.
	// Empty means the user's Desktop (falling back to the home directory).
	BackupDir string `mapstructure:"backup_dir"`

	// Service is the launchd label restarted after a successful write.
	Service string `mapstructure:"service"`

	// Output is the default output format (pretty, plain, json, yaml).
	Output string `mapstructure:"output"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/spotskip/config.yaml
//   - $HOME/.config/spotskip/config.yaml
//
// Environment variables are prefixed with SPOTSKIP_ (e.g. SPOTSKIP_SERVICE).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "spotskip"))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", "spotskip"))

	v.SetEnvPrefix("SPOTSKIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("ignore_names", DefaultIgnoreNames)
	v.SetDefault("store_path", DefaultStorePath)
	v.SetDefault("backup_dir", "")
	v.SetDefault("service", DefaultService)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is acceptable; we use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if strings.HasPrefix(cfg.BackupDir, "~") {
		cfg.BackupDir = filepath.Join(homeDir, cfg.BackupDir[1:])
	}

	return &cfg, nil
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "spotskip"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "spotskip"), nil
}

// DefaultBackupDir returns the directory plist backups are written to when
// none is configured. The Desktop keeps the backup where the operator will
// actually find it; systems without a Desktop user-dir fall back to home.
func DefaultBackupDir() string {
	if xdg.UserDirs.Desktop != "" {
		return xdg.UserDirs.Desktop
	}
	return xdg.Home
}

// ExpandPath expands ~ in a path to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}
