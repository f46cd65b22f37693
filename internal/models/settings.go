package models

import "time"

// DashboardSettings mirrors the operator-editable fields of the dashboard:
// the scale toggle, the four bound inputs and the polling interval.
type DashboardSettings struct {
	ID              int       `json:"id"`
	ScaleManual     bool      `json:"scale_manual"`
	YMin            string    `json:"y_min"`
	YMax            string    `json:"y_max"`
	XMin            string    `json:"x_min"`
	XMax            string    `json:"x_max"`
	IntervalSeconds float64   `json:"interval_seconds"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ClearBounds empties the four bound fields.
func (s *DashboardSettings) ClearBounds() {
	s.YMin, s.YMax, s.XMin, s.XMax = "", "", "", ""
}
