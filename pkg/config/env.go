package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables that override file settings
const (
	EnvPort            = "PORT"
	EnvDatabaseURL     = "DATABASE_URL"
	EnvLogLevel        = "LOG_LEVEL"
	EnvCORSOrigins     = "CORS_ALLOWED_ORIGINS"
	EnvCORSCredentials = "CORS_ALLOW_CREDENTIALS"
	EnvTracingEnabled  = "HYDRONET_TRACING_ENABLED"
	EnvTracingExporter = "HYDRONET_TRACING_EXPORTER"
	EnvOTLPEndpoint    = "HYDRONET_OTLP_ENDPOINT"
	EnvSeed            = "HYDRONET_SEED"
)

// ApplyEnv overrides c from the process environment
func (c *Config) ApplyEnv() error {
	return c.ApplyEnvFunc(os.Getenv)
}

// ApplyEnvFunc overrides c using getenv. Unset or empty variables are ignored.
func (c *Config) ApplyEnvFunc(getenv func(string) string) error {
	if v := getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid port %q", EnvPort, v)
		}
		c.Server.Port = port
	}

	if v := getenv(EnvDatabaseURL); v != "" {
		c.Database.URL = v
	}

	if v := getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}

	if v := getenv(EnvCORSOrigins); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORS.AllowedOrigins = origins
	}

	if v := getenv(EnvCORSCredentials); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", EnvCORSCredentials, v)
		}
		c.CORS.AllowCredentials = b
	}

	if v := getenv(EnvTracingEnabled); v != "" {
		c.Tracing.Enabled = strings.EqualFold(v, "true") || v == "1"
	}

	if v := getenv(EnvTracingExporter); v != "" {
		c.Tracing.Exporter = strings.ToLower(v)
	}

	if v := getenv(EnvOTLPEndpoint); v != "" {
		c.Tracing.Endpoint = v
	}

	if v := getenv(EnvSeed); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", EnvSeed, v)
		}
		c.Seed = b
	}

	return nil
}
