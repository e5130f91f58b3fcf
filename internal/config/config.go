package config

import (
	"time"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Genetics GeneticsConfig `yaml:"genetics"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings. An empty DSN runs
// the service without the custom gene catalog.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// Enabled reports whether a database is configured.
func (d DatabaseConfig) Enabled() bool { return d.DSN != "" }

// GeneticsConfig holds odds calculator tuning.
type GeneticsConfig struct {
	ComboCap               int     `yaml:"combo_cap"               env:"GENETICS_COMBO_CAP"               env-default:"1024"`
	MaxCombined            int     `yaml:"max_combined"            env:"GENETICS_MAX_COMBINED"            env-default:"12"`
	SignificantProbability float64 `yaml:"significant_probability" env:"GENETICS_SIGNIFICANT_PROBABILITY" env-default:"0.01"`
	NoiseFloor             float64 `yaml:"noise_floor"             env:"GENETICS_NOISE_FLOOR"             env-default:"0.0001"`
	CertainHetThreshold    float64 `yaml:"certain_het_threshold"   env:"GENETICS_CERTAIN_HET_THRESHOLD"   env-default:"0.999"`
	BatchWorkers           int     `yaml:"batch_workers"           env:"GENETICS_BATCH_WORKERS"           env-default:"4"`
	MaxBatchPairs          int     `yaml:"max_batch_pairs"         env:"GENETICS_MAX_BATCH_PAIRS"         env-default:"256"`
	MaxTextLength          int     `yaml:"max_text_length"         env:"GENETICS_MAX_TEXT_LENGTH"         env-default:"4096"`
	ExtraGenesRaw          string  `yaml:"extra_genes"             env:"GENETICS_EXTRA_GENES"`

	// ExtraGenes is parsed from ExtraGenesRaw during validation.
	ExtraGenes []GeneSpec `yaml:"-" env:"-"`
}

// GeneSpec is a dictionary gene declared in configuration.
type GeneSpec struct {
	Name     string
	Category domain.Category
	Aliases  []string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}
