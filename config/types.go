package config

import "strings"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type AppConfig struct {
	DBDriver   string          `yaml:"db_driver" env:"CRIME_DB_DRIVER" env-default:"sqlite"`
	DBPath     string          `yaml:"db_path" env:"CRIME_DB_PATH" env-default:"db/stpaul_crime.sqlite3"`
	DBURL      string          `yaml:"db_url" env:"CRIME_DB_URL"`
	ListenAddr string          `yaml:"listen_addr" env:"CRIME_LISTEN_ADDR" env-default:"0.0.0.0:8000"`
	Migrate    bool            `yaml:"migrate" env:"CRIME_MIGRATE" env-default:"true"`
	Log        LogConfig       `yaml:"log"`
	Query      QueryConfig     `yaml:"query"`
	HTTP       HTTPConfig      `yaml:"http"`
	Scheduler  SchedulerConfig `yaml:"scheduler"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"CRIME_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"CRIME_LOG_FORMAT" env-default:"json"`
}

// QueryConfig bounds row limits. MaxLimit 0 leaves the limit unbounded.
type QueryConfig struct {
	DefaultLimit int `yaml:"default_limit" env:"CRIME_DEFAULT_LIMIT" env-default:"1000"`
	MaxLimit     int `yaml:"max_limit" env:"CRIME_MAX_LIMIT" env-default:"0"`
}

type HTTPConfig struct {
	CORSOrigins      []string `yaml:"cors_origins" env:"CRIME_CORS_ORIGINS" env-separator:"," env-default:"*"`
	RateLimitPerMin  int      `yaml:"rate_limit_per_min" env:"CRIME_RATE_LIMIT_PER_MIN" env-default:"0"`
	MaxBodyBytes     int64    `yaml:"max_body_bytes" env:"CRIME_MAX_BODY_BYTES" env-default:"65536"`
	ShutdownTimeoutS int      `yaml:"shutdown_timeout_sec" env:"CRIME_SHUTDOWN_TIMEOUT_SEC" env-default:"10"`
}

type SchedulerConfig struct {
	Enabled bool   `yaml:"enabled" env:"CRIME_SCHEDULER_ENABLED" env-default:"true"`
	Spec    string `yaml:"spec" env:"CRIME_SCHEDULER_SPEC" env-default:"@daily"`
}

func (c *AppConfig) IsPostgres() bool {
	if c == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(c.DBDriver), DriverPostgres)
}

func (c *AppConfig) EffectiveDefaultLimit() int {
	if c == nil || c.Query.DefaultLimit <= 0 {
		return 1000
	}
	return c.Query.DefaultLimit
}
