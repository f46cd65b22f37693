package service

import (
	"context"
	"fmt"
	"time"

	"wsn_dashboard/internal/logger"
	"wsn_dashboard/internal/models"
	"wsn_dashboard/internal/repository"
)

const journalTimeout = 2 * time.Second

// JournalMetrics is the metrics surface the journal updates.
type JournalMetrics interface {
	PollDone(mode string, err error)
	SessionStarted(mode string)
	SessionEnded(mode, reason string)
}

// SessionJournal records session events and applied readings. Storage
// failures are logged and never reach the polling loop.
type SessionJournal struct {
	events   repository.EventRepo
	readings repository.ReadingRepo
	metrics  JournalMetrics
	log      *logger.Logger
	now      func() time.Time
}

var _ Journal = (*SessionJournal)(nil)

func NewSessionJournal(events repository.EventRepo, readings repository.ReadingRepo, m JournalMetrics, log *logger.Logger) *SessionJournal {
	if m == nil {
		m = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SessionJournal{events: events, readings: readings, metrics: m, log: log, now: time.Now}
}

func (j *SessionJournal) Started(ctx context.Context, mode, sessionID string, mobile bool) {
	j.metrics.SessionStarted(mode)
	j.append(ctx, models.SessionEvent{
		Mode:        mode,
		SessionID:   sessionID,
		Type:        models.EventStart,
		Description: "monitoring started",
		Metadata:    map[string]any{"mobile": mobile},
	})
}

// Applied stores the response as a reading; n is -1 for the stop snapshot.
func (j *SessionJournal) Applied(ctx context.Context, mode, sessionID string, n int, resp models.PollResponse) {
	ctx, cancel := context.WithTimeout(ctx, journalTimeout)
	defer cancel()

	rd := readingFrom(mode, n, resp, j.now().UTC())
	if err := j.readings.Insert(ctx, rd); err != nil {
		j.log.Warnw("reading_store_failed", "mode", mode, "iteration", n, "err", err)
	}
	if n < 0 {
		return
	}
	j.metrics.PollDone(mode, nil)
	j.append(ctx, models.SessionEvent{
		Mode:        mode,
		SessionID:   sessionID,
		Type:        models.EventIteration,
		Description: fmt.Sprintf("iteration %d applied", n),
		Metadata:    map[string]any{"iteration": n, "timer": resp.Timer, "status": resp.Status},
	})
}

func (j *SessionJournal) FetchFailed(ctx context.Context, mode, sessionID string, n int, err error) {
	if n >= 0 {
		j.metrics.PollDone(mode, err)
	}
	j.append(ctx, models.SessionEvent{
		Mode:        mode,
		SessionID:   sessionID,
		Type:        models.EventFetchError,
		Description: err.Error(),
		Metadata:    map[string]any{"iteration": n},
	})
}

func (j *SessionJournal) Ended(ctx context.Context, mode, sessionID, reason string, lastIteration int) {
	j.metrics.SessionEnded(mode, reason)

	typ, desc := models.EventStop, "monitoring stopped by operator"
	if reason == EndAutoStop {
		typ, desc = models.EventAutoStop, "monitoring completed"
	}
	j.append(ctx, models.SessionEvent{
		Mode:        mode,
		SessionID:   sessionID,
		Type:        typ,
		Description: desc,
		Metadata:    map[string]any{"last_iteration": lastIteration},
	})
}

func (j *SessionJournal) append(ctx context.Context, e models.SessionEvent) {
	ctx, cancel := context.WithTimeout(ctx, journalTimeout)
	defer cancel()

	e.OccurredAt = j.now().UTC()
	if err := j.events.Append(ctx, e); err != nil {
		j.log.Warnw("session_event_store_failed", "type", e.Type, "mode", e.Mode, "err", err)
	}
}

func readingFrom(mode string, n int, resp models.PollResponse, at time.Time) models.Reading {
	rd := models.Reading{
		Mode:       mode,
		Iteration:  n,
		Status:     append([]string(nil), resp.Status...),
		Timer:      resp.Timer,
		ReceivedAt: at,
	}
	if len(resp.Row) > 0 {
		rd.TimeLabel = resp.Row[0].String()
		rd.Values = append([]models.Cell(nil), resp.Row[1:]...)
	}
	return rd
}

type nopMetrics struct{}

func (nopMetrics) PollDone(string, error) {}
func (nopMetrics) SessionStarted(string) {}
func (nopMetrics) SessionEnded(string, string) {}
func (nopMetrics) GraphRendered(string, error) {}
