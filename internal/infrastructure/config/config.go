package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Calls     CallsConfig     `mapstructure:"calls"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
	MigrateOnStart  bool   `mapstructure:"migrate_on_start"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// RateLimitConfig holds the fixed-window limiter settings
type RateLimitConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	Requests      int  `mapstructure:"requests"`       // Requests allowed per window and client
	WindowSeconds int  `mapstructure:"window_seconds"` // Window length
	MaxClients    int  `mapstructure:"max_clients"`    // Tracked clients before eviction
}

// CallsConfig bounds the days filter of the call listing
type CallsConfig struct {
	DefaultDays int `mapstructure:"default_days"`
	MinDays     int `mapstructure:"min_days"`
	MaxDays     int `mapstructure:"max_days"`
}

var (
	cfg  *Config
	once sync.Once
	mu   sync.RWMutex
)

// Load initializes the configuration from config file
func Load(configPath string) (*Config, error) {
	var loadErr error

	once.Do(func() {
		v := viper.GetViper()

		loaded, err := read(v, configPath)
		if err != nil {
			loadErr = err
			return
		}
		set(loaded)

		// Enable hot reload
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			log.Info().Str("file", e.Name).Msg("Config file changed, reloading...")

			if err := reload(v); err != nil {
				log.Error().Err(err).Msg("Failed to reload config, keeping the previous one")
				return
			}
			log.Info().Msg("Config reloaded successfully")
		})
	})

	return Get(), loadErr
}

// reload replaces the current configuration with the validated content of v
func reload(v *viper.Viper) error {
	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return errors.Wrap(err, "failed to unmarshal config")
	}
	if err := next.Validate(); err != nil {
		return err
	}
	set(next)
	return nil
}

func set(c *Config) {
	mu.Lock()
	cfg = c
	mu.Unlock()
}

// read loads and validates configPath into a fresh Config.
// An empty path reads defaults and environment only.
func read(v *viper.Viper, configPath string) (*Config, error) {
	setDefaults(v)

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "centriq")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 3600)
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.migrate_on_start", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file_path", "")

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 43200)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window_seconds", 60)
	v.SetDefault("rate_limit.max_clients", 10000)

	v.SetDefault("calls.default_days", 7)
	v.SetDefault("calls.min_days", 1)
	v.SetDefault("calls.max_days", 30)
}

// Validate checks the values the application cannot start without
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Newf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Calls.MinDays < 1 || c.Calls.MinDays > c.Calls.MaxDays {
		return errors.Newf("calls.min_days must be between 1 and calls.max_days (%d), got %d", c.Calls.MaxDays, c.Calls.MinDays)
	}
	if c.Calls.DefaultDays < c.Calls.MinDays || c.Calls.DefaultDays > c.Calls.MaxDays {
		return errors.Newf("calls.default_days must be between %d and %d, got %d", c.Calls.MinDays, c.Calls.MaxDays, c.Calls.DefaultDays)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.WindowSeconds <= 0) {
		return errors.New("rate_limit.requests and rate_limit.window_seconds must be positive when rate limiting is enabled")
	}
	return nil
}

// Get returns the current configuration (thread-safe).
// A reload installs a new Config, so the returned value is never mutated.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// CallsLimits returns the current days bounds of the call listing
func CallsLimits() CallsConfig {
	return Get().Calls
}

// RateLimitSettings returns the current rate limit settings
func RateLimitSettings() RateLimitConfig {
	return Get().RateLimit
}

// GetDSN returns the PostgreSQL connection string
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// GetConnMaxLifetime returns the connection max lifetime as time.Duration
func (d *DatabaseConfig) GetConnMaxLifetime() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// GetWindow returns the rate limit window as time.Duration
func (r *RateLimitConfig) GetWindow() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// GetMaxAge returns the CORS preflight cache duration
func (c *CORSConfig) GetMaxAge() time.Duration {
	return time.Duration(c.MaxAge) * time.Second
}

// GetAddress returns the server address
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
