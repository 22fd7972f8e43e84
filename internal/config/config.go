package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the checker configuration. Files may be YAML or TOML; the
// extension decides.
type Config struct {
	LogLevel         string            `yaml:"log_level" toml:"log_level"`
	Format           string            `yaml:"format" toml:"format"`
	Workers          int               `yaml:"workers" toml:"workers"`
	DB               string            `yaml:"db" toml:"db"`
	Disabled         []string          `yaml:"disabled" toml:"disabled"`
	Severities       map[string]string `yaml:"severities" toml:"severities"`
	Exclude          []string          `yaml:"exclude" toml:"exclude"`
	IncludeGenerated bool              `yaml:"include_generated" toml:"include_generated"`
}

// DefaultFiles are looked up in order when no config path is given.
var DefaultFiles = []string{"guidelint.yaml", "guidelint.yml", "guidelint.toml"}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		Format:     "text",
		Severities: map[string]string{},
	}
}

// LoadConfig reads path, or the first of DefaultFiles in dir when path is
// empty, then applies .env and GUIDELINT_* environment overrides. A missing
// file yields the defaults.
func LoadConfig(dir, path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	cfg := Default()

	// 2. Load config file
	if path == "" {
		path = find(dir)
	}
	if path != "" {
		if err := decode(path, cfg); err != nil {
			return nil, err
		}
	}

	// 3. Override with Environment Variables if present
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func find(dir string) string {
	for _, name := range DefaultFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

func decode(path string, cfg *Config) error {
	file, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(file, cfg)
	default:
		err = yaml.Unmarshal(file, cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Severities == nil {
		cfg.Severities = map[string]string{}
	}

	return nil
}

func applyEnv(cfg *Config) error {
	if level := os.Getenv("GUIDELINT_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if format := os.Getenv("GUIDELINT_FORMAT"); format != "" {
		cfg.Format = format
	}
	if db := os.Getenv("GUIDELINT_DB"); db != "" {
		cfg.DB = db
	}
	if workers := os.Getenv("GUIDELINT_WORKERS"); workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil {
			return fmt.Errorf("invalid GUIDELINT_WORKERS %q: %w", workers, err)
		}
		cfg.Workers = n
	}

	return nil
}
