package models

import "time"

// Reading is one applied poll response as stored for charting and history.
type Reading struct {
	ID         string    `json:"id"`
	Mode       string    `json:"mode"`
	Iteration  int       `json:"iteration"`  // -1 for the final stop snapshot
	TimeLabel  string    `json:"time_label"` // row[0]
	Values     []Cell    `json:"values"`     // row[1..11]
	Status     []string  `json:"status"`
	Timer      string    `json:"timer"`
	ReceivedAt time.Time `json:"received_at"`
}
