package display

import "wsn_dashboard/internal/models"

// Port is everything the monitoring core is allowed to touch on the dashboard.
// The concrete UI binds it; tests use a recording fake.
type Port interface {
	SetRow(i int, value string)
	SetRowColor(i int, tag models.ColorTag)
	SetStatus(i int, text string, tag models.StatusTag)
	SetControlEnabled(name string, enabled bool)
	// Alert raises a blocking, operator-visible message.
	Alert(message string)
}

// Menu controls of the dashboard shell.
const (
	MenuHome        = "btn_ihome"
	MenuMonitor     = "btn_monit"
	MenuAbout       = "btn_about"
	MenuConfig      = "btn_confi"
	MenuAcquisition = "btn_acqui"
	MenuGraphTime   = "btn_gtime"
	MenuGraphFreq   = "btn_gfreq"
)

// DefaultMenus is the desktop menu set.
func DefaultMenus() []string {
	return []string{MenuHome, MenuMonitor, MenuAbout, MenuConfig, MenuAcquisition, MenuGraphTime, MenuGraphFreq}
}

// DefaultMobileMenus is the reduced set shown on mobile layouts.
func DefaultMobileMenus() []string {
	return []string{MenuHome, MenuMonitor, MenuAbout}
}
