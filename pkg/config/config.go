// Package config loads server configuration from a YAML or TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/hydronet/pkg/validation"
)

// ErrUnsupportedFormat is returned for config files that are neither YAML nor TOML
var ErrUnsupportedFormat = errors.New("unsupported config file format")

// Duration is a time.Duration read from strings such as "15s" in both formats
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the full server configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" toml:"server"`
	Database   DatabaseConfig   `yaml:"database" toml:"database"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
	CORS       CORSConfig       `yaml:"cors" toml:"cors"`
	Tracing    TracingConfig    `yaml:"tracing" toml:"tracing"`
	Simulation SimulationConfig `yaml:"simulation" toml:"simulation"`
	// Seed inserts demo data into empty tables at startup
	Seed bool `yaml:"seed" toml:"seed"`
}

type ServerConfig struct {
	Host            string   `yaml:"host" toml:"host"`
	Port            int      `yaml:"port" toml:"port"`
	ReadTimeout     Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout" toml:"write_timeout"`
	IdleTimeout     Duration `yaml:"idle_timeout" toml:"idle_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
	MaxBodyBytes    int64    `yaml:"max_body_bytes" toml:"max_body_bytes"`
}

// DatabaseConfig selects PostgreSQL when URL is set; otherwise the in-memory store is used
type DatabaseConfig struct {
	URL      string `yaml:"url" toml:"url"`
	MaxConns int32  `yaml:"max_conns" toml:"max_conns"`
	MinConns int32  `yaml:"min_conns" toml:"min_conns"`
}

type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins" toml:"allowed_origins"`
	AllowCredentials bool     `yaml:"allow_credentials" toml:"allow_credentials"`
}

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled" toml:"enabled"`
	Exporter    string  `yaml:"exporter" toml:"exporter"` // stdout | otlp
	Endpoint    string  `yaml:"endpoint" toml:"endpoint"`
	SampleRatio float64 `yaml:"sample_ratio" toml:"sample_ratio"`
	ServiceName string  `yaml:"service_name" toml:"service_name"`
}

type SimulationConfig struct {
	MaxDuration int `yaml:"max_duration" toml:"max_duration"`
	HistorySize int `yaml:"history_size" toml:"history_size"`
	// Seed fixes the synthetic runner's noise; 0 means time-based
	Seed uint64 `yaml:"seed" toml:"seed"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			IdleTimeout:     Duration(60 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
			MaxBodyBytes:    1 << 20,
		},
		Database: DatabaseConfig{
			MaxConns: 10,
			MinConns: 2,
		},
		Logging: LoggingConfig{Level: "info"},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Tracing: TracingConfig{
			Exporter:    "stdout",
			SampleRatio: 1.0,
			ServiceName: "hydronet",
		},
		Simulation: SimulationConfig{
			MaxDuration: 3600,
			HistorySize: 100,
		},
		Seed: true,
	}
}

// Load reads path over the defaults. The format is chosen by extension.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := Decode(cfg, filepath.Ext(path), data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// Decode unmarshals data in the format named by ext (".yaml", ".yml" or ".toml") into cfg
func Decode(cfg *Config, ext string, data []byte) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Validate checks every section and reports all problems at once
func (c *Config) Validate() error {
	server := validation.NewConfigValidator("server").
		RangeInt("port", c.Server.Port, 1, 65535).
		PositiveDuration("read_timeout", c.Server.ReadTimeout.Std()).
		PositiveDuration("write_timeout", c.Server.WriteTimeout.Std()).
		PositiveDuration("shutdown_timeout", c.Server.ShutdownTimeout.Std()).
		Custom("max_body_bytes", func() error {
			if c.Server.MaxBodyBytes <= 0 {
				return fmt.Errorf("value %d must be positive", c.Server.MaxBodyBytes)
			}
			return nil
		})

	database := validation.NewConfigValidator("database").
		When(c.Database.URL != "", func(cv *validation.ConfigValidator) {
			cv.URL("url", c.Database.URL, "postgres", "postgresql").
				Positive("max_conns", int(c.Database.MaxConns)).
				NonNegative("min_conns", int(c.Database.MinConns)).
				Custom("min_conns", func() error {
					if c.Database.MinConns > c.Database.MaxConns {
						return fmt.Errorf("min_conns %d exceeds max_conns %d", c.Database.MinConns, c.Database.MaxConns)
					}
					return nil
				})
		})

	logging := validation.NewConfigValidator("logging").
		OneOf("level", strings.ToLower(c.Logging.Level), []string{"debug", "info", "warn", "warning", "error"})

	tracing := validation.NewConfigValidator("tracing").
		When(c.Tracing.Enabled, func(cv *validation.ConfigValidator) {
			cv.OneOf("exporter", strings.ToLower(c.Tracing.Exporter), []string{"stdout", "otlp", "otlpgrpc"}).
				RangeFloat("sample_ratio", c.Tracing.SampleRatio, 0, 1).
				Required("service_name", c.Tracing.ServiceName)
		})

	simulation := validation.NewConfigValidator("simulation").
		RangeInt("max_duration", c.Simulation.MaxDuration, 1, validation.MaxSimulationSteps).
		Positive("history_size", c.Simulation.HistorySize)

	return errors.Join(
		server.Validate(),
		database.Validate(),
		logging.Validate(),
		tracing.Validate(),
		simulation.Validate(),
	)
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
