package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"wsn_dashboard/internal/models"
	"wsn_dashboard/internal/repository"
)

var ErrInvalidInterval = errors.New("interval must be a positive number of seconds")

// ScaleBounds are the four bound inputs as text. Blank means automatic.
type ScaleBounds struct {
	XMin string `json:"x_min"`
	XMax string `json:"x_max"`
	YMin string `json:"y_min"`
	YMax string `json:"y_max"`
}

// SettingsService keeps the dashboard settings in memory and writes every
// change through to the repository.
type SettingsService struct {
	mu              sync.RWMutex
	repo            repository.SettingsRepo
	current         models.DashboardSettings
	defaultInterval time.Duration
	now             func() time.Time
}

func NewSettingsService(repo repository.SettingsRepo, defaultInterval time.Duration) *SettingsService {
	if defaultInterval <= 0 {
		defaultInterval = time.Second
	}
	s := &SettingsService{repo: repo, defaultInterval: defaultInterval, now: time.Now}
	s.current = s.defaults()
	return s
}

func (s *SettingsService) defaults() models.DashboardSettings {
	return models.DashboardSettings{ID: 1, IntervalSeconds: s.defaultInterval.Seconds()}
}

// Load reads the persisted row, seeding defaults on first start.
func (s *SettingsService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if st.ID == 0 {
		st = s.defaults()
		st.UpdatedAt = s.now().UTC()
		if err := s.repo.Save(ctx, st); err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
	}
	if st.IntervalSeconds <= 0 {
		st.IntervalSeconds = s.defaultInterval.Seconds()
	}
	s.current = st
	return nil
}

// Current returns a copy of the settings.
func (s *SettingsService) Current() models.DashboardSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Interval is the delay between two poll iterations, read at arm time.
func (s *SettingsService) Interval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Duration(s.current.IntervalSeconds * float64(time.Second))
}

func (s *SettingsService) SetInterval(ctx context.Context, seconds float64) (models.DashboardSettings, error) {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return models.DashboardSettings{}, ErrInvalidInterval
	}
	return s.update(ctx, func(st *models.DashboardSettings) { st.IntervalSeconds = seconds })
}

// SetManual switches to manual scaling with the given bound texts.
func (s *SettingsService) SetManual(ctx context.Context, b ScaleBounds) (models.DashboardSettings, error) {
	return s.update(ctx, func(st *models.DashboardSettings) {
		st.ScaleManual = true
		st.XMin = strings.TrimSpace(b.XMin)
		st.XMax = strings.TrimSpace(b.XMax)
		st.YMin = strings.TrimSpace(b.YMin)
		st.YMax = strings.TrimSpace(b.YMax)
	})
}

// SetAuto switches to automatic scaling and empties the bound fields.
func (s *SettingsService) SetAuto(ctx context.Context) (models.DashboardSettings, error) {
	return s.update(ctx, func(st *models.DashboardSettings) {
		st.ScaleManual = false
		st.ClearBounds()
	})
}

// Clear empties the bound fields in automatic mode; manual text is kept.
func (s *SettingsService) Clear(ctx context.Context) (models.DashboardSettings, error) {
	return s.update(ctx, func(st *models.DashboardSettings) {
		if !st.ScaleManual {
			st.ClearBounds()
		}
	})
}

// SaveBounds stores the bounds written back by a render.
func (s *SettingsService) SaveBounds(ctx context.Context, b ScaleBounds) (models.DashboardSettings, error) {
	return s.update(ctx, func(st *models.DashboardSettings) {
		st.XMin, st.XMax, st.YMin, st.YMax = b.XMin, b.XMax, b.YMin, b.YMax
	})
}

func (s *SettingsService) update(ctx context.Context, fn func(*models.DashboardSettings)) (models.DashboardSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	fn(&next)
	next.ID = 1
	next.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, next); err != nil {
		return models.DashboardSettings{}, fmt.Errorf("save settings: %w", err)
	}
	s.current = next
	return next, nil
}
