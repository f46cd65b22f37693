package presenter

import (
	"sync"

	"wsn_dashboard/internal/display"
	"wsn_dashboard/internal/models"
)

// RowState is the remembered content of one table row.
type RowState struct {
	Text string
	Tag  models.ColorTag
}

// Board holds the row and status models of the monitoring table and pushes
// every change to the display port. Rows are only ever updated in place.
type Board struct {
	mu     sync.Mutex
	port   display.Port
	rows   [models.RowCount]RowState
	status [models.StatusCount]string
}

func NewBoard(port display.Port) *Board {
	b := &Board{port: port}
	for i := range b.rows {
		b.rows[i].Tag = models.ColorUnchanged
	}
	return b
}

// Apply writes a poll response to the table.
//
// Colors for rows 1..11 are computed against the previous text before any row
// is rewritten. A "*" row keeps its text but still takes the new color. Row 0
// is the time label and is copied verbatim. Missing trailing rows behave like
// "*", missing status entries leave the status cell untouched.
func (b *Board) Apply(resp models.PollResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var tags [models.RowCount]models.ColorTag
	for i := 1; i < models.RowCount; i++ {
		prev := ParseDisplayValue(b.rows[i].Text)
		next := ParseDisplayValue(resp.RowAt(i).String())
		tags[i] = DiffColor(prev, next)
	}

	if len(resp.Row) > 0 {
		b.rows[0].Text = resp.Row[0].String()
		b.port.SetRow(0, b.rows[0].Text)
	}

	for i := 1; i < models.RowCount; i++ {
		if v := resp.RowAt(i).String(); v != models.SentinelNoValue {
			b.rows[i].Text = v
			b.port.SetRow(i, v)
		}
		b.rows[i].Tag = tags[i]
		b.port.SetRowColor(i, tags[i])
	}

	for i := 0; i < models.StatusCount; i++ {
		text, ok := resp.StatusAt(i)
		if !ok {
			continue
		}
		b.status[i] = text
		b.port.SetStatus(i, text, PresentStatus(i, text))
	}
}

// Rows returns a copy of the row model.
func (b *Board) Rows() []RowState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]RowState(nil), b.rows[:]...)
}

// Statuses returns the last status text per channel.
func (b *Board) Statuses() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.status[:]...)
}
