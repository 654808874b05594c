// Package config provides configuration loading and validation for the
// server and CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// AppName is used for the default config file name and the env prefix.
const AppName = "jobtune"

// EnvPrefix prefixes every environment override, e.g. JOBTUNE_SERVER_PORT.
const EnvPrefix = "JOBTUNE"

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Jobs      JobsConfig      `mapstructure:"jobs"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	UploadDir      string        `mapstructure:"upload_dir" validate:"required"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes" validate:"gt=0"`
}

// JobsConfig configures the job dataset and its refresh schedule.
type JobsConfig struct {
	DatasetPath     string `mapstructure:"dataset_path" validate:"required"`
	RefreshSchedule string `mapstructure:"refresh_schedule" validate:"required"`
	RefreshOnStart  bool   `mapstructure:"refresh_on_start"`
}

// DatabaseConfig enables the Postgres job store when URL is set.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// CacheConfig configures the match-result cache.
type CacheConfig struct {
	RedisURL   string        `mapstructure:"redis_url" validate:"omitempty,url"`
	TTL        time.Duration `mapstructure:"ttl" validate:"gt=0"`
	MaxEntries int           `mapstructure:"max_entries" validate:"gt=0"`
}

// RateLimitConfig configures per-client request throttling.
type RateLimitConfig struct {
	Enabled           bool     `mapstructure:"enabled"`
	RequestsPerMinute int      `mapstructure:"requests_per_minute" validate:"gt=0"`
	Burst             int      `mapstructure:"burst" validate:"gt=0"`
	Whitelist         []string `mapstructure:"whitelist" validate:"dive,ip"`
	Blacklist         []string `mapstructure:"blacklist" validate:"dive,ip"`
}

// LogConfig selects the logger encoding and level.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// Addr returns the listen address for the configured port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// UsesDatabase reports whether the Postgres job store is configured.
func (c *Config) UsesDatabase() bool {
	return c.Database.URL != ""
}

// SetDefaults registers every key with its default so env overrides and
// Unmarshal see the full key set.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.upload_dir", "uploads")
	v.SetDefault("server.max_upload_bytes", 10<<20)

	v.SetDefault("jobs.dataset_path", "datasets/jobs.csv")
	v.SetDefault("jobs.refresh_schedule", "@every 24h")
	v.SetDefault("jobs.refresh_on_start", true)

	v.SetDefault("database.url", "")

	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", 15*time.Minute)
	v.SetDefault("cache.max_entries", 1000)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests_per_minute", 120)
	v.SetDefault("ratelimit.burst", 20)

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// BindEnv enables JOBTUNE_* environment overrides on v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// ReadFile reads the config file at path, or jobtune.yaml in the current
// directory when path is empty. A missing default file is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile builds a fresh viper instance with defaults, env overrides and the
// optional config file, then loads it.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	if err := ReadFile(v, path); err != nil {
		return nil, err
	}
	return Load(v)
}

// Default returns the configuration with every default applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	if err != nil {
		// defaults are static and always valid
		panic(err)
	}
	return cfg
}

// ValidationError lists the invalid configuration keys.
type ValidationError struct {
	Fields []string
	Cause  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config error: invalid values for %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Validate checks value ranges and formats.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config error: %w", err)
		}
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
		}
		return &ValidationError{Fields: fields, Cause: err}
	}
	return nil
}

// EnsureUploadDir creates the upload directory if needed.
func (c *Config) EnsureUploadDir() error {
	if err := os.MkdirAll(c.Server.UploadDir, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}
