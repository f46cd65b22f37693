package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wsn_dashboard/internal/models"
	"wsn_dashboard/internal/repository"
)

type eventRepoStub struct {
	mu       sync.Mutex
	appended []models.SessionEvent
	appendFn func(models.SessionEvent) error

	gotFilter repository.EventFilter
	listOut   []models.SessionEvent
	listErr   error
	listCalls int
}

func (s *eventRepoStub) Append(_ context.Context, e models.SessionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appended = append(s.appended, e)
	if s.appendFn != nil {
		return s.appendFn(e)
	}
	return nil
}

func (s *eventRepoStub) List(_ context.Context, f repository.EventFilter) ([]models.SessionEvent, error) {
	s.listCalls++
	s.gotFilter = f
	return s.listOut, s.listErr
}

func (s *eventRepoStub) types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.appended))
	for i, e := range s.appended {
		out[i] = e.Type
	}
	return out
}

type readingRepoStub struct {
	mu        sync.Mutex
	inserted  []models.Reading
	insertErr error
	recent    []models.Reading
	recentErr error
	gotLimit  int
}

func (s *readingRepoStub) Insert(_ context.Context, r models.Reading) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserted = append(s.inserted, r)
	return s.insertErr
}

func (s *readingRepoStub) Recent(_ context.Context, _ string, limit int) ([]models.Reading, error) {
	s.gotLimit = limit
	return s.recent, s.recentErr
}

type settingsRepoStub struct {
	loaded  models.DashboardSettings
	loadErr error
	saveErr error
	saved   []models.DashboardSettings
}

func (s *settingsRepoStub) Load(context.Context) (models.DashboardSettings, error) {
	return s.loaded, s.loadErr
}

func (s *settingsRepoStub) Save(_ context.Context, st models.DashboardSettings) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, st)
	return nil
}

// manualScheduler records armed callbacks; tests fire them explicitly.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{delay: d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) pending() []*manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*manualTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// fireNext runs the single pending timer.
func (s *manualScheduler) fireNext() error {
	p := s.pending()
	if len(p) != 1 {
		return fmt.Errorf("want exactly one pending timer, have %d", len(p))
	}
	p[0].fired = true
	p[0].fn()
	return nil
}

// portStub records every display write.
type portStub struct {
	mu       sync.Mutex
	rows     map[int]string
	colors   map[int]models.ColorTag
	status   map[int]string
	controls map[string]bool
	alerts   []string
	log      []string
}

func newPortStub() *portStub {
	return &portStub{
		rows:     map[int]string{},
		colors:   map[int]models.ColorTag{},
		status:   map[int]string{},
		controls: map[string]bool{},
	}
}

func (p *portStub) SetRow(i int, v string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rows[i] = v
}

func (p *portStub) SetRowColor(i int, tag models.ColorTag) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.colors[i] = tag
}

func (p *portStub) SetStatus(i int, text string, _ models.StatusTag) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status[i] = text
}

func (p *portStub) SetControlEnabled(name string, enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.controls[name] = enabled
	p.log = append(p.log, fmt.Sprintf("%s=%v", name, enabled))
}

func (p *portStub) Alert(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, msg)
}

func (p *portStub) control(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.controls[name]
}

func (p *portStub) alertCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.alerts)
}

// fetcherStub answers polls from a script keyed by iteration.
type fetcherStub struct {
	mu        sync.Mutex
	pollFn    func(n int) (models.PollResponse, error)
	stopResp  models.PollResponse
	stopErr   error
	polls     []int
	stops     int
	pollPaths []string
	stopPaths []string
	stopCtxs  []error // ctx.Err() seen by each Stop
	beforeRet func(n int) // runs after recording, before returning a poll
}

func (f *fetcherStub) Poll(_ context.Context, path string, n int) (models.PollResponse, error) {
	f.mu.Lock()
	f.polls = append(f.polls, n)
	f.pollPaths = append(f.pollPaths, path)
	fn, hook := f.pollFn, f.beforeRet
	f.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	return fn(n)
}

func (f *fetcherStub) Stop(ctx context.Context, path string) (models.PollResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	f.stopCtxs = append(f.stopCtxs, ctx.Err())
	f.stopPaths = append(f.stopPaths, path)
	return f.stopResp, f.stopErr
}

func (f *fetcherStub) pollCalls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.polls...)
}

func (f *fetcherStub) stopCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops
}

func pollResp(timer string, values ...string) models.PollResponse {
	row := make([]models.Cell, 0, len(values)+1)
	row = append(row, "2020-12-03 10:00:00")
	for _, v := range values {
		row = append(row, models.Cell(v))
	}
	return models.PollResponse{Row: row, Status: []string{"NORMAL", "NORMAL"}, Timer: timer}
}

// journalStub records journal calls in order.
type journalStub struct {
	mu    sync.Mutex
	calls []string
}

func (j *journalStub) record(s string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = append(j.calls, s)
}

func (j *journalStub) Started(context.Context, string, string, bool) { j.record("started") }
func (j *journalStub) Applied(_ context.Context, _, _ string, n int, _ models.PollResponse) {
	j.record(fmt.Sprintf("applied:%d", n))
}
func (j *journalStub) FetchFailed(_ context.Context, _, _ string, n int, _ error) {
	j.record(fmt.Sprintf("failed:%d", n))
}
func (j *journalStub) Ended(_ context.Context, _, _, reason string, _ int) {
	j.record("ended:" + reason)
}
