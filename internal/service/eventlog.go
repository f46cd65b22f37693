package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"wsn_dashboard/internal/models"
	"wsn_dashboard/internal/repository"
)

// LogFilter narrows the session journal. Zero fields match everything.
type LogFilter struct {
	From time.Time // inclusive
	To   time.Time // inclusive
	Type string    // START | ITERATION | FETCH_ERROR | AUTO_STOP | STOP
	Mode string
}

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: from must be <= to")
	errInvalidEventType = errors.New("invalid event type")
)

var knownEventTypes = map[string]bool{
	models.EventStart:      true,
	models.EventIteration:  true,
	models.EventFetchError: true,
	models.EventAutoStop:   true,
	models.EventStop:       true,
}

func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeFilter(f LogFilter) (repository.EventFilter, error) {
	out := repository.EventFilter{
		From: normalizeToUTC(f.From),
		To:   normalizeToUTC(f.To),
		Type: strings.ToUpper(strings.TrimSpace(f.Type)),
		Mode: strings.TrimSpace(f.Mode),
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return repository.EventFilter{}, errInvalidTimeRange
	}
	if out.Type != "" && !knownEventTypes[out.Type] {
		return repository.EventFilter{}, errInvalidEventType
	}
	return out, nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.SessionEvent, error) {
	rf, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, rf)
}

// IsFilterError reports whether err came from filter validation.
func IsFilterError(err error) bool {
	return errors.Is(err, errInvalidTimeRange) || errors.Is(err, errInvalidEventType)
}
