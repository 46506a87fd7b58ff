// Package config loads mealtrack settings from a TOML file, a .env file
// and the environment, in increasing order of precedence.
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/julianstephens/mealtrack/internal/constants"
	"github.com/julianstephens/mealtrack/internal/keyring"
)

type Config struct {
	// ConfigDir holds the config file, .env, logs and backups.
	ConfigDir      string
	ConfigFile     string
	DBPath         string
	Timezone       string
	SeedSampleData bool
	Debug          bool
	// Connection is a PostgreSQL connection string taken from the
	// environment. Empty means use SQLite at DBPath.
	Connection string
}

type fileConfig struct {
	DBPath         string `toml:"db_path"`
	Timezone       string `toml:"timezone"`
	SeedSampleData *bool  `toml:"seed_sample_data"`
	Debug          bool   `toml:"debug"`
}

func Default() *Config {
	return &Config{
		ConfigDir:      ExpandPath(constants.DefaultConfigDir),
		ConfigFile:     ExpandPath(filepath.Join(constants.DefaultConfigDir, constants.DefaultConfigFile)),
		DBPath:         ExpandPath(constants.DefaultDBPath),
		Timezone:       "Local",
		SeedSampleData: true,
	}
}

// Load reads the config file at path (the default location when empty),
// then .env from the config directory, then the environment. A missing
// file is fine; a malformed one is not.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		cfg.ConfigFile = ExpandPath(path)
		cfg.ConfigDir = filepath.Dir(cfg.ConfigFile)
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(cfg.ConfigFile, &fc); err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to parse config file %s: %w", cfg.ConfigFile, err)
		}
	} else {
		if fc.DBPath != "" {
			cfg.DBPath = ExpandPath(fc.DBPath)
		}
		if fc.Timezone != "" {
			cfg.Timezone = fc.Timezone
		}
		if fc.SeedSampleData != nil {
			cfg.SeedSampleData = *fc.SeedSampleData
		}
		cfg.Debug = fc.Debug
	}

	// godotenv never overrides variables that are already set
	if err := godotenv.Load(filepath.Join(cfg.ConfigDir, ".env")); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	applyEnvOverrides(cfg)

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(constants.EnvDBPath); v != "" {
		cfg.DBPath = ExpandPath(v)
	}
	if v := os.Getenv(constants.EnvTimezone); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv(constants.EnvDBConnection); v != "" {
		cfg.Connection = strings.TrimSpace(v)
	}
}

// Location resolves the configured time zone. "Local" and "" mean the
// system zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// BackupDir is where SQLite backups are written.
func (c *Config) BackupDir() string {
	return filepath.Join(filepath.Dir(c.DBPath), constants.BackupDirName)
}

type ConnectionSource string

const (
	SourceNone    ConnectionSource = ""
	SourceFlag    ConnectionSource = "flag"
	SourceEnv     ConnectionSource = "environment"
	SourceKeyring ConnectionSource = "keyring"
)

// ResolveConnection picks the PostgreSQL connection string from the flag,
// then the environment, then the OS keyring. An empty result means SQLite.
func (c *Config) ResolveConnection(flag string) (string, ConnectionSource, error) {
	if s := strings.TrimSpace(flag); s != "" {
		return s, SourceFlag, nil
	}
	if c.Connection != "" {
		return c.Connection, SourceEnv, nil
	}
	s, err := keyring.GetConnectionString()
	switch {
	case err == nil:
		return s, SourceKeyring, nil
	case stderrors.Is(err, keyring.ErrNotFound), stderrors.Is(err, keyring.ErrKeyringUnavailable):
		return "", SourceNone, nil
	default:
		return "", SourceNone, err
	}
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
