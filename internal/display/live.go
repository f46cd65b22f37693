package display

import (
	"sync"
	"time"

	"wsn_dashboard/internal/models"
)

// RowView is one table row as shown to the operator.
type RowView struct {
	Index int             `json:"index"`
	Text  string          `json:"text"`
	Tag   models.ColorTag `json:"tag"`
	Color string          `json:"color"`
}

// StatusView is one status cell.
type StatusView struct {
	Index int              `json:"index"`
	Text  string           `json:"text"`
	Tag   models.StatusTag `json:"tag"`
	Color string           `json:"color"`
}

// AlertView is the most recent blocking alert. Seq increases with every alert
// so clients can tell a repeated message from one they already acknowledged.
type AlertView struct {
	Seq      uint64    `json:"seq"`
	Message  string    `json:"message"`
	RaisedAt time.Time `json:"raised_at"`
}

// Snapshot is a consistent copy of the whole display.
type Snapshot struct {
	Version   uint64          `json:"version"`
	Rows      []RowView       `json:"rows"`
	Status    []StatusView    `json:"status"`
	Controls  map[string]bool `json:"controls"`
	Alert     *AlertView      `json:"alert,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Live is the in-process display the websocket stream and the REST snapshot
// read from. It implements Port.
type Live struct {
	mu        sync.RWMutex
	rows      [models.RowCount]RowView
	status    [models.StatusCount]StatusView
	controls  map[string]bool
	alert     *AlertView
	version   uint64
	updatedAt time.Time

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int

	now func() time.Time
}

var _ Port = (*Live)(nil)

// NewLive returns an empty display with every known control enabled.
func NewLive(controls ...string) *Live {
	l := &Live{
		controls: make(map[string]bool, len(controls)),
		subs:     make(map[int]chan struct{}),
		now:      time.Now,
	}
	for i := range l.rows {
		l.rows[i] = RowView{Index: i, Tag: models.ColorUnchanged, Color: models.ColorUnchanged.CSS()}
	}
	for i := range l.status {
		l.status[i] = StatusView{Index: i, Tag: models.StatusNeutral, Color: models.StatusNeutral.CSS(i)}
	}
	for _, c := range controls {
		l.controls[c] = true
	}
	return l
}

func (l *Live) SetRow(i int, value string) {
	if i < 0 || i >= len(l.rows) {
		return
	}
	l.mutate(func() { l.rows[i].Text = value })
}

func (l *Live) SetRowColor(i int, tag models.ColorTag) {
	if i < 0 || i >= len(l.rows) {
		return
	}
	l.mutate(func() {
		l.rows[i].Tag = tag
		l.rows[i].Color = tag.CSS()
	})
}

func (l *Live) SetStatus(i int, text string, tag models.StatusTag) {
	if i < 0 || i >= len(l.status) {
		return
	}
	l.mutate(func() {
		l.status[i] = StatusView{Index: i, Text: text, Tag: tag, Color: tag.CSS(i)}
	})
}

func (l *Live) SetControlEnabled(name string, enabled bool) {
	l.mutate(func() { l.controls[name] = enabled })
}

func (l *Live) Alert(message string) {
	l.mutate(func() {
		var seq uint64 = 1
		if l.alert != nil {
			seq = l.alert.Seq + 1
		}
		l.alert = &AlertView{Seq: seq, Message: message, RaisedAt: l.now().UTC()}
	})
}

// Snapshot copies the current display.
func (l *Live) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := Snapshot{
		Version:   l.version,
		Rows:      append([]RowView(nil), l.rows[:]...),
		Status:    append([]StatusView(nil), l.status[:]...),
		Controls:  make(map[string]bool, len(l.controls)),
		UpdatedAt: l.updatedAt,
	}
	for k, v := range l.controls {
		s.Controls[k] = v
	}
	if l.alert != nil {
		a := *l.alert
		s.Alert = &a
	}
	return s
}

// Subscribe returns a channel that receives a signal after display changes.
// Signals coalesce: a slow reader sees one pending signal, then reads a fresh
// Snapshot. The returned func unsubscribes.
func (l *Live) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	l.subMu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = ch
	l.subMu.Unlock()

	return ch, func() {
		l.subMu.Lock()
		delete(l.subs, id)
		l.subMu.Unlock()
	}
}

func (l *Live) mutate(fn func()) {
	l.mu.Lock()
	fn()
	l.version++
	l.updatedAt = l.now().UTC()
	l.mu.Unlock()

	l.notify()
}

func (l *Live) notify() {
	l.subMu.Lock()
	defer l.subMu.Unlock()
	for _, ch := range l.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
