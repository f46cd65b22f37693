package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Shape of an acquisition response.
const (
	RowCount    = 12 // row[0] is the time label, row[1..11] are sensor channels
	StatusCount = 2

	TimerOn  = "on"
	TimerOff = "off"

	// SentinelNoValue marks a row the backend did not refresh in this response.
	SentinelNoValue = "*"
)

// Cell is one table value as sent by the backend. Older backends send plain
// numbers, newer ones send preformatted strings; both decode to text.
type Cell string

// UnmarshalJSON accepts a JSON string, number or null.
func (c *Cell) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*c = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Cell(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("cell: expected string or number, got %s", string(b))
		}
		*c = Cell(n.String())
		return nil
	}
}

// String returns the cell text.
func (c Cell) String() string { return string(c) }

// Float parses the cell strictly; non-numeric text (sentinels, "?", "-") is not a reading.
func (c Cell) Float() (float64, bool) {
	v, err := strconv.ParseFloat(string(c), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// PollResponse is the body returned by /post_<mode>Start and /post_<mode>Stop.
type PollResponse struct {
	Row    []Cell   `json:"row"`
	Status []string `json:"status"`
	Timer  string   `json:"timer"`
}

// TimerActive reports whether the backend wants the client to keep polling.
// A missing timer field counts as off.
func (r PollResponse) TimerActive() bool {
	return r.Timer == TimerOn
}

// RowAt returns row i, or the no-value sentinel when the backend sent fewer rows.
func (r PollResponse) RowAt(i int) Cell {
	if i < 0 || i >= len(r.Row) {
		return SentinelNoValue
	}
	return r.Row[i]
}

// StatusAt returns status i and whether the backend sent it.
func (r PollResponse) StatusAt(i int) (string, bool) {
	if i < 0 || i >= len(r.Status) {
		return "", false
	}
	return r.Status[i], true
}
