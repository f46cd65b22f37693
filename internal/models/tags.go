package models

// ColorTag is the diff-color of a table row.
type ColorTag string

const (
	ColorUnchanged ColorTag = "unchanged"
	ColorIncrease  ColorTag = "increase"
	ColorDecrease  ColorTag = "decrease"
)

// CSS returns the text color the dashboard uses for the tag.
func (t ColorTag) CSS() string {
	switch t {
	case ColorIncrease:
		return "red"
	case ColorDecrease:
		return "blue"
	default:
		return "black"
	}
}

// StatusTag is the display class of a status cell.
type StatusTag string

const (
	StatusNeutral StatusTag = "neutral"
	StatusAlert   StatusTag = "alert"
	StatusNormal  StatusTag = "normal"
)

// CSS returns the text color of a status cell. Alerts on channel 0 (vibration)
// are blue, alerts on channel 1 (abnormal) are red.
func (t StatusTag) CSS(channel int) string {
	switch t {
	case StatusNeutral:
		return "gray"
	case StatusAlert:
		if channel == 0 {
			return "blue"
		}
		return "red"
	default:
		return "black"
	}
}
