// Package config holds parlor-ctl's tool configuration and path layout.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// instanceNameRegex validates instance names. Names are used as directory
// names, compose project names, and container name components, so the
// charset is restrictive: lowercase letters, digits, and hyphens, starting
// with a letter or digit, at most 63 characters.
var instanceNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,62}$`)

// ValidateInstanceName checks if an instance name is valid.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("instance name cannot be empty")
	}

	if !instanceNameRegex.MatchString(name) {
		return fmt.Errorf("invalid instance name %q: must start with a lowercase letter or digit, contain only lowercase letters, digits, or hyphens, and be at most 63 characters", name)
	}

	return nil
}

const (
	DefaultConfigDir = "/etc/parlor"
	DefaultStateDir  = "/var/lib/parlor"

	// ProjectPrefix is prepended to instance names to form compose
	// project names.
	ProjectPrefix = "parlor-"

	// Default port pools. Application ports are allocated upward from
	// 9000, database ports from 5432.
	DefaultAppBasePort = 9000
	DefaultDBBasePort  = 5432

	// DefaultMaxPortAttempts bounds the allocator's linear scan.
	DefaultMaxPortAttempts = 100
)

// Config is the tool configuration loaded from config.toml.
type Config struct {
	RegistryDir     string `toml:"registry_dir"`
	BackupDir       string `toml:"backup_dir"`
	AppBasePort     int    `toml:"app_base_port"`
	DBBasePort      int    `toml:"db_base_port"`
	MaxPortAttempts int    `toml:"max_port_attempts"`
	DockerCommand   string `toml:"docker_command"`
	AppImage        string `toml:"app_image"`
	PostgresImage   string `toml:"postgres_image"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		RegistryDir:     filepath.Join(DefaultStateDir, "instances"),
		BackupDir:       filepath.Join(DefaultStateDir, "backups"),
		AppBasePort:     DefaultAppBasePort,
		DBBasePort:      DefaultDBBasePort,
		MaxPortAttempts: DefaultMaxPortAttempts,
		DockerCommand:   "docker",
		AppImage:        "openparlor/parlor-server:latest",
		PostgresImage:   "postgres:16-alpine",
	}
}

// Load reads config.toml from configDir, layered over the defaults.
// A missing file is not an error; the defaults are returned.
func Load(configDir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the Config is usable.
func (c *Config) Validate() error {
	if c.RegistryDir == "" {
		return fmt.Errorf("registry_dir is required")
	}
	if c.BackupDir == "" {
		return fmt.Errorf("backup_dir is required")
	}
	if c.AppBasePort < 1 || c.AppBasePort > 65535 {
		return fmt.Errorf("app_base_port must be between 1 and 65535 (got %d)", c.AppBasePort)
	}
	if c.DBBasePort < 1 || c.DBBasePort > 65535 {
		return fmt.Errorf("db_base_port must be between 1 and 65535 (got %d)", c.DBBasePort)
	}
	if c.MaxPortAttempts < 1 {
		return fmt.Errorf("max_port_attempts must be positive (got %d)", c.MaxPortAttempts)
	}
	return nil
}

// Paths holds the configured filesystem layout.
type Paths struct {
	ConfigDir   string
	RegistryDir string
	BackupDir   string
	LockFile    string
}

// DefaultPaths returns the default path configuration.
func DefaultPaths() *Paths {
	return PathsFor(DefaultConfigDir, Default())
}

// PathsFor builds a Paths from a config dir and loaded configuration.
func PathsFor(configDir string, cfg *Config) *Paths {
	return &Paths{
		ConfigDir:   configDir,
		RegistryDir: cfg.RegistryDir,
		BackupDir:   cfg.BackupDir,
		LockFile:    filepath.Join(filepath.Dir(cfg.RegistryDir), "deploy.lock"),
	}
}

// InstanceDir resolves the directory for an instance inside the registry
// root. The name is joined with securejoin so a crafted name can never
// escape the registry root.
func InstanceDir(registryDir, name string) (string, error) {
	if err := ValidateInstanceName(name); err != nil {
		return "", err
	}

	path, err := securejoin.SecureJoin(registryDir, name)
	if err != nil {
		return "", fmt.Errorf("invalid instance path for %q: %w", name, err)
	}

	return path, nil
}
