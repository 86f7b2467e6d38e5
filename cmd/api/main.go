package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bebraradar/bebraradar/internal/app"
	"github.com/bebraradar/bebraradar/internal/appconf"
	"github.com/bebraradar/bebraradar/internal/logging"
	"github.com/bebraradar/bebraradar/internal/metrics"
	"github.com/bebraradar/bebraradar/internal/realtime"
	"github.com/bebraradar/bebraradar/internal/restapi"
	"github.com/bebraradar/bebraradar/internal/timetable"
	"github.com/bebraradar/bebraradar/transitdb"
)

func main() {
	// A missing .env file is fine; flags and real env vars still apply.
	_ = godotenv.Load()

	var cfg appconf.Config
	var envFlag string
	var refreshSeconds int

	flag.IntVar(&cfg.Port, "port", envInt("PORT", 4000), "API server port")
	flag.StringVar(&envFlag, "env", envString("APP_ENV", "development"), "Environment (development|test|production)")
	flag.StringVar(&cfg.DBPath, "db-path", envString("DB_PATH", "bebraradar.sqlite"), "Path to the SQLite database file")
	flag.IntVar(&cfg.RateLimit, "rate-limit", envInt("RATE_LIMIT", 100), "Requests per second per client; 0 disables limiting")
	flag.StringVar(&cfg.VehiclePositionsURL, "vehicle-positions-url", envString("VEHICLE_POSITIONS_URL", ""), "GTFS-RT vehicle positions feed URL; empty disables polling")
	flag.IntVar(&refreshSeconds, "realtime-refresh", envInt("REALTIME_REFRESH_SECONDS", 30), "Realtime poll interval in seconds")
	flag.BoolVar(&cfg.EnablePprof, "pprof", envString("ENABLE_PPROF", "") != "", "Expose /debug/pprof handlers")
	flag.Parse()

	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)
	cfg.RealtimeRefreshInterval = time.Duration(refreshSeconds) * time.Second

	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logging.LogError(logger, "server exited", err)
		os.Exit(1)
	}
}

func run(cfg appconf.Config, logger *slog.Logger) error {
	store, err := transitdb.NewClient(transitdb.Config{DBPath: cfg.DBPath, Env: cfg.Env})
	if err != nil {
		return err
	}
	defer logging.SafeCloseWithLogging(store, logger, "database")

	collector := metrics.NewCollector()

	application := &app.Application{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Timetable: timetable.NewService(store.Queries),
		Metrics:   collector,
	}
	api := restapi.NewRestAPI(application)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.VehiclePositionsURL != "" {
		poller := realtime.NewPoller(cfg.VehiclePositionsURL, cfg.RealtimeRefreshInterval, store.Queries, logger, collector)
		go poller.Run(ctx)
		logger.Info("realtime poller started",
			"url", cfg.VehiclePositionsURL,
			"interval", cfg.RealtimeRefreshInterval)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String())
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
