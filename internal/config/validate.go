package config

import (
	"fmt"
	"strings"

	"github.com/andreiashu/locode"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Data.validate(); err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if err := c.Server.validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if c.QueryCache.TTL < 0 {
		return fmt.Errorf("query_cache: ttl must be >= 0 (got %s)", c.QueryCache.TTL)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

func (d *DataConfig) validate() error {
	if strings.TrimSpace(d.SourceDir) == "" {
		return fmt.Errorf("source_dir must be set")
	}
	if strings.TrimSpace(d.CacheDir) == "" {
		return fmt.Errorf("cache_dir must be set")
	}
	switch locode.Encoding(d.Encoding) {
	case locode.EncodingUTF8, locode.EncodingLatin1:
	default:
		return fmt.Errorf("encoding must be %q or %q (got %q)", locode.EncodingUTF8, locode.EncodingLatin1, d.Encoding)
	}
	return nil
}

func (s *ServerConfig) validate() error {
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("port must be in 1..65535 (got %d)", s.Port)
	}
	if s.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be > 0 (got %s)", s.ShutdownTimeout)
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(l.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("format must be json or text (got %q)", l.Format)
	}
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of debug, info, warn, error (got %q)", l.Level)
	}
	return nil
}
