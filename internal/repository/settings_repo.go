package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"wsn_dashboard/internal/models"
)

type SettingsSQLite struct {
	db *sql.DB
}

func NewSettingsSQLite(db *sql.DB) *SettingsSQLite {
	return &SettingsSQLite{db: db}
}

const (
	settingsRowID = 1

	upsertSettingsSQL = `
		INSERT INTO dashboard_settings (id, scale_manual, y_min, y_max, x_min, x_max, interval_s, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			scale_manual=excluded.scale_manual,
			y_min=excluded.y_min,
			y_max=excluded.y_max,
			x_min=excluded.x_min,
			x_max=excluded.x_max,
			interval_s=excluded.interval_s,
			updated_at=excluded.updated_at
	`

	selectSettingsSQL = `
		SELECT id, scale_manual, y_min, y_max, x_min, x_max, interval_s, updated_at
		FROM dashboard_settings WHERE id=?
	`
)

// Save upserts the settings row (id always 1).
func (r *SettingsSQLite) Save(ctx context.Context, s models.DashboardSettings) error {
	ts := s.UpdatedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.ExecContext(ctx, upsertSettingsSQL,
		settingsRowID,
		s.ScaleManual,
		s.YMin, s.YMax, s.XMin, s.XMax,
		s.IntervalSeconds,
		ts.UTC(),
	)
	return err
}

// Load returns a zero value (ID 0) when nothing was saved yet.
func (r *SettingsSQLite) Load(ctx context.Context) (models.DashboardSettings, error) {
	var s models.DashboardSettings
	err := r.db.QueryRowContext(ctx, selectSettingsSQL, settingsRowID).Scan(
		&s.ID,
		&s.ScaleManual,
		&s.YMin, &s.YMax, &s.XMin, &s.XMax,
		&s.IntervalSeconds,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DashboardSettings{}, nil
		}
		return models.DashboardSettings{}, err
	}
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}
