package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"wsn_dashboard/internal/models"
)

func TestSettingsService_LoadSeedsDefaults(t *testing.T) {
	repo := &settingsRepoStub{}
	s := NewSettingsService(repo, 1500*time.Millisecond)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(repo.saved) != 1 || repo.saved[0].ID != 1 || repo.saved[0].IntervalSeconds != 1.5 {
		t.Fatalf("seed = %+v", repo.saved)
	}
	if s.Interval() != 1500*time.Millisecond {
		t.Fatalf("interval = %v", s.Interval())
	}
}

func TestSettingsService_LoadExisting(t *testing.T) {
	repo := &settingsRepoStub{loaded: models.DashboardSettings{ID: 1, ScaleManual: true, YMax: "9", IntervalSeconds: 3}}
	s := NewSettingsService(repo, time.Second)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(repo.saved) != 0 {
		t.Fatalf("existing row must not be re-seeded")
	}
	if cur := s.Current(); !cur.ScaleManual || cur.YMax != "9" || s.Interval() != 3*time.Second {
		t.Fatalf("current = %+v", cur)
	}
}

func TestSettingsService_SetInterval(t *testing.T) {
	s := NewSettingsService(&settingsRepoStub{}, time.Second)

	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := s.SetInterval(context.Background(), bad); !errors.Is(err, ErrInvalidInterval) {
			t.Fatalf("SetInterval(%v) err = %v", bad, err)
		}
	}
	if _, err := s.SetInterval(context.Background(), 0.25); err != nil {
		t.Fatalf("SetInterval: %v", err)
	}
	if s.Interval() != 250*time.Millisecond {
		t.Fatalf("interval = %v", s.Interval())
	}
}

func TestSettingsService_ScaleToggles(t *testing.T) {
	ctx := context.Background()
	s := NewSettingsService(&settingsRepoStub{}, time.Second)

	st, err := s.SetManual(ctx, ScaleBounds{XMin: " 1 ", XMax: "5", YMin: "", YMax: "abc"})
	if err != nil {
		t.Fatalf("SetManual: %v", err)
	}
	if !st.ScaleManual || st.XMin != "1" || st.YMax != "abc" {
		t.Fatalf("manual = %+v", st)
	}

	// clearScale keeps manual text
	st, _ = s.Clear(ctx)
	if st.XMin != "1" || st.XMax != "5" {
		t.Fatalf("Clear in manual mode changed fields: %+v", st)
	}

	st, _ = s.SetAuto(ctx)
	if st.ScaleManual || st.XMin != "" || st.XMax != "" || st.YMax != "" {
		t.Fatalf("auto = %+v", st)
	}

	_, _ = s.SaveBounds(ctx, ScaleBounds{XMin: "0", XMax: "10", YMin: "-1", YMax: "1"})
	st, _ = s.Clear(ctx)
	if st.XMin != "" || st.YMin != "" {
		t.Fatalf("Clear in auto mode must empty fields: %+v", st)
	}
}

func TestSettingsService_SaveFailureKeepsState(t *testing.T) {
	repo := &settingsRepoStub{saveErr: errors.New("readonly")}
	s := NewSettingsService(repo, time.Second)

	if _, err := s.SetInterval(context.Background(), 9); err == nil {
		t.Fatalf("expected save error")
	}
	if s.Interval() != time.Second {
		t.Fatalf("failed save must not change the cached value")
	}
}
