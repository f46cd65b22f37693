package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wsn_dashboard/internal/acquisition"
	"wsn_dashboard/internal/config"
	"wsn_dashboard/internal/display"
	"wsn_dashboard/internal/handlers"
	"wsn_dashboard/internal/logger"
	"wsn_dashboard/internal/metrics"
	"wsn_dashboard/internal/repository"
	"wsn_dashboard/internal/repository/db"
	"wsn_dashboard/internal/server"
	"wsn_dashboard/internal/service"

	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.New(cfg.Log.Level)

	conn, err := openDB(cfg.DB, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	reg := metrics.New()
	backend, err := acquisition.NewClient(cfg.Acquisition.BaseURL, cfg.Acquisition.Timeout)
	if err != nil {
		log.Fatalw("invalid acquisition backend", "base_url", cfg.Acquisition.BaseURL, "err", err)
	}
	backend.WithObserver(reg)

	services := service.NewService(serviceConfig(cfg), service.Deps{
		Repos:     repository.NewRepository(conn),
		Backend:   backend,
		Live:      display.NewLive(dashboardControls(cfg.Monitor)...),
		Scheduler: service.NewScheduler(),
		Metrics:   reg,
		Log:       log,
	})

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 5*time.Second)
	if err := services.Settings.Load(loadCtx); err != nil {
		log.Warnw("settings_load_failed", "err", err)
	}
	cancelLoad()

	apiHandler := handlers.NewHandler(services, reg, log)
	srv := server.New(server.Options{
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("server_started", "port", cfg.Port, "backend", cfg.Acquisition.BaseURL)
		return srv.Run(cfg.Port, apiHandler.InitRoutes())
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Infow("shutting down server...")

		// stop pending poll timers before draining requests
		services.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Errorw("server stopped with error", "err", err)
	}
}

// openDB initializes the SQLite database using configuration.
func openDB(c config.DBConfig, log *logger.Logger) (*sql.DB, error) {
	path := c.Path
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "wsn_dashboard.db")
		path = "wsn_dashboard.db"
	}
	return db.InitDB(path)
}

func serviceConfig(cfg config.Config) service.Config {
	modes := make([]service.ModeConfig, 0, len(cfg.Monitor.Modes))
	for _, m := range cfg.Monitor.Modes {
		modes = append(modes, service.NewModeConfig(m.Name, m.StartControl, m.StopControl))
	}
	return service.Config{
		Modes:           modes,
		Menus:           cfg.Monitor.Menus,
		MobileMenus:     cfg.Monitor.MobileMenus,
		DefaultInterval: cfg.Monitor.DefaultInterval,
		GraphMaxPoints:  cfg.Graph.MaxPoints,
		Auth: service.AuthConfig{
			SigningKey: cfg.Auth.SigningKey,
			TokenTTL:   cfg.Auth.TokenTTL,
		},
	}
}

// dashboardControls lists every control the live display tracks.
func dashboardControls(m config.MonitorConfig) []string {
	out := make([]string, 0, len(m.Menus)+2*len(m.Modes))
	out = append(out, m.Menus...)
	for _, mode := range m.Modes {
		out = append(out, mode.StartControl, mode.StopControl)
	}
	return out
}
