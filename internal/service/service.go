package service

import (
	"context"
	"time"

	"wsn_dashboard/internal/acquisition"
	"wsn_dashboard/internal/display"
	"wsn_dashboard/internal/logger"
	"wsn_dashboard/internal/models"
	"wsn_dashboard/internal/presenter"
	"wsn_dashboard/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Monitor starts and stops the polling loop of each mode.
type Monitor interface {
	Begin(ctx context.Context, mode string, mobile bool) (SessionStatus, error)
	Stop(ctx context.Context, mode string, mobile bool) error
	Status(mode string) (SessionStatus, error)
	Modes() []string
	Shutdown()
}

// Display is the read side of the live dashboard.
type Display interface {
	Snapshot() display.Snapshot
	Subscribe() (<-chan struct{}, func())
}

// Settings holds the operator-editable dashboard settings.
type Settings interface {
	Load(ctx context.Context) error
	Current() models.DashboardSettings
	Interval() time.Duration
	SetInterval(ctx context.Context, seconds float64) (models.DashboardSettings, error)
	SetManual(ctx context.Context, b ScaleBounds) (models.DashboardSettings, error)
	SetAuto(ctx context.Context) (models.DashboardSettings, error)
	Clear(ctx context.Context) (models.DashboardSettings, error)
	SaveBounds(ctx context.Context, b ScaleBounds) (models.DashboardSettings, error)
}

type Graph interface {
	Render(ctx context.Context, req GraphRequest) (GraphResult, error)
}

type Readings interface {
	Recent(ctx context.Context, mode string, limit int) ([]models.Reading, error)
}

// EventLog exposes the session journal with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.SessionEvent, error)
}

// Service aggregates all sub-services.
type Service struct {
	Monitor
	Display
	Settings
	Graph
	Readings
	EventLog
	Authorization
}

// Backend is the acquisition backend: poll endpoints plus recorded series.
type Backend interface {
	Fetcher
	GraphSource
}

// Metrics is everything the services report.
type Metrics interface {
	JournalMetrics
	GraphRecorder
}

// Config carries the settings the services need from configuration.
type Config struct {
	Modes           []ModeConfig
	Menus           []string
	MobileMenus     []string
	DefaultInterval time.Duration
	GraphMaxPoints  int
	Auth            AuthConfig
}

// DefaultModes returns the two monitoring modes of the dashboard.
func DefaultModes() []ModeConfig {
	return []ModeConfig{
		NewModeConfig("mon", "btn_start_mon", "btn_stop_mon"),
		NewModeConfig("monASD", "btn_start_asd", "btn_stop_asd"),
	}
}

// NewModeConfig derives the backend endpoints from the mode name.
func NewModeConfig(name, startControl, stopControl string) ModeConfig {
	return ModeConfig{
		Name:         name,
		StartPath:    acquisition.StartPath(name),
		StopPath:     acquisition.StopPath(name),
		StartControl: startControl,
		StopControl:  stopControl,
	}
}

type Deps struct {
	Repos     *repository.Repository
	Backend   Backend
	Live      *display.Live
	Scheduler Scheduler
	Metrics   Metrics
	Log       *logger.Logger
}

// NewService wires the repository layer, the backend and the live display.
func NewService(cfg Config, deps Deps) *Service {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	var m Metrics = nopMetrics{}
	if deps.Metrics != nil {
		m = deps.Metrics
	}
	if len(cfg.Modes) == 0 {
		cfg.Modes = DefaultModes()
	}
	if cfg.Menus == nil {
		cfg.Menus = display.DefaultMenus()
	}
	if cfg.MobileMenus == nil {
		cfg.MobileMenus = display.DefaultMobileMenus()
	}

	settings := NewSettingsService(deps.Repos.SettingsRepo, cfg.DefaultInterval)
	journal := NewSessionJournal(deps.Repos.EventRepo, deps.Repos.ReadingRepo, m, log)
	board := presenter.NewBoard(deps.Live)

	controllers := make([]*Controller, 0, len(cfg.Modes))
	for _, mode := range cfg.Modes {
		deps.Live.SetControlEnabled(mode.StartControl, true)
		deps.Live.SetControlEnabled(mode.StopControl, false)
		controllers = append(controllers, NewController(mode, ControllerDeps{
			Fetcher:     deps.Backend,
			Port:        deps.Live,
			Apply:       board.Apply,
			Interval:    settings.Interval,
			Scheduler:   deps.Scheduler,
			Journal:     journal,
			Menus:       cfg.Menus,
			MobileMenus: cfg.MobileMenus,
			Log:         log,
		}))
	}

	return &Service{
		Monitor:       NewMonitorService(controllers...),
		Display:       deps.Live,
		Settings:      settings,
		Graph:         NewGraphService(settings, deps.Repos.ReadingRepo, deps.Backend, cfg.GraphMaxPoints, m, log),
		Readings:      NewReadingsService(deps.Repos.ReadingRepo),
		EventLog:      NewEventLogService(deps.Repos.EventRepo),
		Authorization: NewAuthService(deps.Repos.Auth, cfg.Auth),
	}
}

