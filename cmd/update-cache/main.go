// Command update-cache regenerates the locode cache files from the UNECE
// code list CSV files.
//
// Usage:
//
//	go run ./cmd/update-cache [-config config.yaml] [-validate] [-export json -export-path locations.json]
//
// Paths come from the configuration (LOCODE_SOURCE_DIR, LOCODE_CACHE_DIR,
// ...). After running, the cache files may be compressed:
//
//	bzip2 -f locode-cache/*.dmp
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/andreiashu/locode"
	"github.com/andreiashu/locode/internal/config"
	"github.com/andreiashu/locode/internal/logging"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (default $CONFIG_PATH or ./config.yaml)")
		validate   = flag.Bool("validate", false, "sanity-check the regenerated cache")
		export     = flag.String("export", "", "also export all locations as json or yaml")
		exportPath = flag.String("export-path", "", "export destination (default stdout)")
	)
	flag.Parse()

	if err := run(*configPath, *validate, *export, *exportPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, validate bool, export, exportPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := logging.NewLogger(cfg.Log)

	var write func(io.Writer, []locode.Location) error
	switch export {
	case "":
	case "json":
		write = locode.WriteJSON
	case "yaml":
		write = locode.WriteYAML
	default:
		return fmt.Errorf("unknown export format %q (want json or yaml)", export)
	}

	logger.Info("regenerating locode cache",
		slog.String("source_dir", cfg.Data.SourceDir),
		slog.String("cache_dir", cfg.Data.CacheDir),
	)
	ix, stats, err := locode.RegenerateCache(append(cfg.Data.Options(), locode.WithLogger(logger))...)
	if err != nil {
		return err
	}
	if stats.UnmatchedAliases > 0 {
		logger.Warn("some aliases matched no location", slog.Int("unmatched_aliases", stats.UnmatchedAliases))
	}

	if validate {
		vcfg := locode.DefaultValidationConfig
		vcfg.Logger = logger
		if err := locode.Validate(ix, vcfg); err != nil {
			return fmt.Errorf("cache validation failed: %w", err)
		}
	}

	if write != nil {
		if err := exportLocations(ix, write, exportPath); err != nil {
			return err
		}
		logger.Info("locations exported", slog.String("format", export), slog.Int("locations", ix.Len()))
	}

	logger.Info("cache regenerated", slog.Int("locations", ix.Len()))
	return nil
}

func exportLocations(ix *locode.Index, write func(io.Writer, []locode.Location) error, path string) error {
	if path == "" {
		return write(os.Stdout, ix.All())
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := write(f, ix.All()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
