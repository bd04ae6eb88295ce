// Command locode-server serves UN/LOCODE search over HTTP.
//
// The cache is loaded at startup (and built from the source files when
// missing). SIGHUP reloads the cache without restarting; SIGINT and SIGTERM
// shut the server down gracefully.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andreiashu/locode"
	"github.com/andreiashu/locode/internal/config"
	"github.com/andreiashu/locode/internal/logging"
	"github.com/andreiashu/locode/internal/search"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default $CONFIG_PATH or ./config.yaml)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := logging.NewLogger(cfg.Log)

	opts := append(cfg.Data.Options(), locode.WithLogger(logger))
	ix, err := locode.Open(opts...)
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}
	logger.Info("index loaded", slog.Int("locations", ix.Len()))

	var svc search.Service
	svc = search.NewService(ix, func() (*locode.Index, error) {
		return locode.Load(opts...)
	})
	if cfg.QueryCache.TTL > 0 {
		svc = search.NewCachingService(cfg.QueryCache.TTL, cfg.QueryCache.CleanupInterval, svc)
	}
	svc = search.NewLoggingService(logging.NewKitLogger(logger.With(slog.String("component", "search")), "search request"), svc)
	svc = search.NewPrometheusInstrumentingService(svc)

	mux := http.NewServeMux()
	mux.Handle("/locode/v1/", search.MakeHandler(svc, logging.NewKitLogger(logger.With(slog.String("component", "http")), "http transport error")))
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	for {
		select {
		case err, ok := <-errs:
			if ok {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		case sig := <-signals:
			if sig == syscall.SIGHUP {
				if err := svc.Reload(); err != nil {
					logger.Error("reload failed, keeping current index", slog.String("error", err.Error()))
				} else {
					logger.Info("index reloaded")
				}
				continue
			}

			logger.Info("shutting down", slog.String("signal", sig.String()))
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		}
	}
}
