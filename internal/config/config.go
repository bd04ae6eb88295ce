package config

import (
	"time"

	"github.com/andreiashu/locode"
)

// Config is the root configuration of the locode binaries.
type Config struct {
	Data       DataConfig       `yaml:"data"`
	Server     ServerConfig     `yaml:"server"`
	QueryCache QueryCacheConfig `yaml:"query_cache"`
	Log        LogConfig        `yaml:"log"`
}

// DataConfig locates the code list files and the cache.
type DataConfig struct {
	SourceDir       string `yaml:"source_dir"       env:"LOCODE_SOURCE_DIR"       env-default:"./locode-data"`
	SubdivisionFile string `yaml:"subdivision_file" env:"LOCODE_SUBDIVISION_FILE"`
	CacheDir        string `yaml:"cache_dir"        env:"LOCODE_CACHE_DIR"        env-default:"./locode-cache"`
	Encoding        string `yaml:"encoding"         env:"LOCODE_SOURCE_ENCODING"  env-default:"latin1"`
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

// QueryCacheConfig controls the in-memory cache of search results.
// A zero TTL disables it.
type QueryCacheConfig struct {
	TTL             time.Duration `yaml:"ttl"              env:"QUERY_CACHE_TTL"              env-default:"5m"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"QUERY_CACHE_CLEANUP_INTERVAL" env-default:"10m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Options converts the data settings into build and load options.
func (d DataConfig) Options() []locode.Option {
	return []locode.Option{
		locode.WithSourceDir(d.SourceDir),
		locode.WithSubdivisionFile(d.SubdivisionFile),
		locode.WithCacheDir(d.CacheDir),
		locode.WithEncoding(locode.Encoding(d.Encoding)),
	}
}
