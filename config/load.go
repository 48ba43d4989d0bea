package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Load reads the YAML file at path when it exists and then applies
// environment overrides. An empty path reads the environment only.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}
	path = strings.TrimSpace(path)
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
			return cfg, cfg.Validate()
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c *AppConfig) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.DBDriver)) {
	case DriverSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return errors.New("db_path is required for sqlite")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DBURL) == "" {
			return errors.New("db_url is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported db_driver %q", c.DBDriver)
	}
	if c.Query.MaxLimit < 0 {
		return errors.New("max_limit must not be negative")
	}
	if c.Query.MaxLimit > 0 && c.EffectiveDefaultLimit() > c.Query.MaxLimit {
		return errors.New("default_limit exceeds max_limit")
	}
	return nil
}
