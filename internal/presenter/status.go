package presenter

import "wsn_dashboard/internal/models"

// Status vocabularies of the two channels.
const (
	StatusUnknown   = "UNKNOWN"
	StatusVibration = "VIBRATION" // channel 0
	StatusAbnormal  = "ABNORMAL"  // channel 1
	StatusNormal    = "NORMAL"
)

// PresentStatus maps the latest status text of a channel to its display tag.
func PresentStatus(channel int, status string) models.StatusTag {
	if status == StatusUnknown {
		return models.StatusNeutral
	}
	if alertWord(channel) == status {
		return models.StatusAlert
	}
	return models.StatusNormal
}

func alertWord(channel int) string {
	switch channel {
	case 0:
		return StatusVibration
	case 1:
		return StatusAbnormal
	default:
		return ""
	}
}
