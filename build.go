package locode

import (
	"fmt"
	"log/slog"
)

// Build reads the code list files of the configured source directory and
// reconciles them into an Index. It does not touch the cache.
//
//	ix, stats, err := locode.Build(locode.WithSourceDir("./locode-data"))
func Build(opts ...Option) (*Index, BuildStats, error) {
	return build(newConfig(opts))
}

func build(cfg *Config) (*Index, BuildStats, error) {
	rows, files, err := readSourceDir(cfg.SourceDir, cfg.Encoding, cfg.Logger)
	if err != nil {
		return nil, BuildStats{}, fmt.Errorf("reading code list: %w", err)
	}

	locations, stats := reconcile(rows, cfg.Logger)
	stats.Files = files

	var subdivisions []Subdivision
	if cfg.SubdivisionFile != "" {
		subdivisions, err = readSubdivisionFile(cfg.SubdivisionFile, cfg.Encoding)
		if err != nil {
			return nil, stats, fmt.Errorf("reading subdivisions: %w", err)
		}
	}

	cfg.Logger.Info("code list reconciled",
		slog.Int("files", stats.Files),
		slog.Int("rows", stats.Rows),
		slog.Int("country_headers", stats.CountryHeaders),
		slog.Int("locations", stats.Locations),
		slog.Int("invalid_locations", stats.InvalidLocations),
		slog.Int("aliases", stats.Aliases),
		slog.Int("unmatched_aliases", stats.UnmatchedAliases),
		slog.Int("subdivisions", len(subdivisions)),
	)
	return newIndex(locations, subdivisions), stats, nil
}

// Open returns the cached Index, building it from the source files and
// storing it when the cache is missing or unreadable.
func Open(opts ...Option) (*Index, error) {
	cfg := newConfig(opts)

	ix, err := load(cfg.CacheDir)
	if err == nil {
		return ix, nil
	}
	cfg.Logger.Info("cache unavailable, building from source", slog.String("error", err.Error()))

	ix, _, err = build(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build index: %w", err)
	}
	if err := ix.Store(cfg.CacheDir); err != nil {
		cfg.Logger.Warn("failed to store cache", slog.String("error", err.Error()))
	}
	return ix, nil
}

// RegenerateCache rebuilds the Index from the source files, ignoring any
// existing cache, and writes a fresh cache.
//
// After running, the cache files may be compressed with bzip2:
//
//	bzip2 -f locode-cache/*.dmp
func RegenerateCache(opts ...Option) (*Index, BuildStats, error) {
	cfg := newConfig(opts)

	ix, stats, err := build(cfg)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to build index: %w", err)
	}
	if err := ix.Store(cfg.CacheDir); err != nil {
		return nil, stats, fmt.Errorf("failed to store cache: %w", err)
	}
	return ix, stats, nil
}
