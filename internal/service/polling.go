package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"wsn_dashboard/internal/display"
	"wsn_dashboard/internal/logger"
	"wsn_dashboard/internal/models"
)

// MaxIteration is the last iteration index of a session; a session fetches
// at most MaxIteration+1 times.
const MaxIteration = 10

var (
	ErrSessionActive = errors.New("monitoring session already running")
	ErrUnknownMode   = errors.New("unknown monitoring mode")
)

// Session end reasons.
const (
	EndAutoStop = "auto_stop"
	EndStop     = "stop"
)

// ModeConfig names the backend endpoints and dashboard controls of one mode.
type ModeConfig struct {
	Name         string // mon | monASD
	StartPath    string // /post_<mode>Start
	StopPath     string // /post_<mode>Stop
	StartControl string
	StopControl  string
}

// Fetcher is the acquisition backend as seen by the controller.
type Fetcher interface {
	Poll(ctx context.Context, path string, n int) (models.PollResponse, error)
	Stop(ctx context.Context, path string) (models.PollResponse, error)
}

// ApplyFunc writes a response to the display.
type ApplyFunc func(models.PollResponse)

// Journal observes session transitions. Implementations must not block for long;
// they run on the polling path.
type Journal interface {
	Started(ctx context.Context, mode, sessionID string, mobile bool)
	Applied(ctx context.Context, mode, sessionID string, n int, resp models.PollResponse)
	FetchFailed(ctx context.Context, mode, sessionID string, n int, err error)
	Ended(ctx context.Context, mode, sessionID, reason string, lastIteration int)
}

// PollSession is one run of the polling loop, from Begin to Stop or natural
// completion.
type PollSession struct {
	ID        string
	Mobile    bool
	StartedAt time.Time

	ctx       context.Context
	iteration int // last applied iteration, -1 before the first response
	timer     Timer
}

// SessionStatus is a read-only view of a controller.
type SessionStatus struct {
	Mode      string    `json:"mode"`
	Running   bool      `json:"running"`
	SessionID string    `json:"session_id,omitempty"`
	Iteration int       `json:"iteration"`
	Mobile    bool      `json:"mobile"`
	StartedAt time.Time `json:"started_at,omitempty"`
}

// ControllerDeps are the collaborators of a Controller.
type ControllerDeps struct {
	Fetcher     Fetcher
	Port        display.Port
	Apply       ApplyFunc
	Interval    func() time.Duration
	Scheduler   Scheduler
	Journal     Journal
	Menus       []string
	MobileMenus []string
	Log         *logger.Logger
}

// Controller drives the start, repeat, stop loop of one mode.
//
// Every display write, session transition and timer arm happens under mu;
// backend fetches run outside it. A response that arrives for a session that
// is no longer active is still applied but never re-arms the loop.
type Controller struct {
	mu      sync.Mutex
	mode    ModeConfig
	deps    ControllerDeps
	log     *logger.Logger
	session *PollSession
	now     func() time.Time
}

func NewController(mode ModeConfig, deps ControllerDeps) *Controller {
	if deps.Scheduler == nil {
		deps.Scheduler = NewScheduler()
	}
	if deps.Journal == nil {
		deps.Journal = nopJournal{}
	}
	if deps.Interval == nil {
		deps.Interval = func() time.Duration { return time.Second }
	}
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		mode: mode,
		deps: deps,
		log:  log.With("mode", mode.Name),
		now:  time.Now,
	}
}

// Mode returns the controller's mode name.
func (c *Controller) Mode() string { return c.mode.Name }

// Begin starts a session and runs iteration 0 before returning.
// It fails with ErrSessionActive while another session of this mode runs.
// A failed first fetch is returned but leaves the session running.
func (c *Controller) Begin(ctx context.Context, mobile bool) (SessionStatus, error) {
	c.mu.Lock()
	if c.session != nil {
		c.mu.Unlock()
		return SessionStatus{}, ErrSessionActive
	}
	s := &PollSession{
		ID:        uuid.NewString(),
		Mobile:    mobile,
		StartedAt: c.now().UTC(),
		ctx:       context.WithoutCancel(ctx),
		iteration: -1,
	}
	c.session = s
	c.setMenusLocked(mobile, false)
	c.deps.Port.SetControlEnabled(c.mode.StartControl, false)
	c.deps.Port.SetControlEnabled(c.mode.StopControl, true)
	c.mu.Unlock()

	c.log.Infow("session_started", "session_id", s.ID, "mobile", mobile)
	c.deps.Journal.Started(s.ctx, c.mode.Name, s.ID, mobile)

	err := c.RequestIteration(s, 0)
	return c.Status(), err
}

// RequestIteration fetches iteration n of session s. It does nothing when s
// is no longer the active session.
func (c *Controller) RequestIteration(s *PollSession, n int) error {
	c.mu.Lock()
	if c.session != s {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	resp, err := c.deps.Fetcher.Poll(s.ctx, c.mode.StartPath, n)
	if err != nil {
		c.mu.Lock()
		c.deps.Port.Alert(alertText(err))
		c.mu.Unlock()

		c.log.Errorw("poll_fetch_failed", "session_id", s.ID, "iteration", n, "err", err)
		c.deps.Journal.FetchFailed(s.ctx, c.mode.Name, s.ID, n, err)
		return fmt.Errorf("iteration %d: %w", n, err)
	}

	c.mu.Lock()
	c.deps.Apply(resp)
	active := c.session == s
	completed := false
	if active {
		s.iteration = n
		if resp.TimerActive() && n < MaxIteration {
			c.armLocked(s, n+1)
		} else {
			c.detachLocked()
			completed = true
		}
	}
	c.mu.Unlock()

	c.deps.Journal.Applied(s.ctx, c.mode.Name, s.ID, n, resp)
	if !active {
		c.log.Debugw("late_response_applied", "session_id", s.ID, "iteration", n)
		return nil
	}
	if completed {
		c.log.Infow("session_completed", "session_id", s.ID, "iteration", n, "timer", resp.Timer)
		c.deps.Journal.Ended(s.ctx, c.mode.Name, s.ID, EndAutoStop, n)
		return c.finish(s.ctx, s.Mobile)
	}
	return nil
}

// Stop ends the active session, if any, then fetches the final stop snapshot.
// It is safe to call while idle: the stop endpoint is still called and the
// controls are restored. The stop fetch outlives cancellation of ctx: the
// session is already detached and the final snapshot must still be applied.
func (c *Controller) Stop(ctx context.Context, mobile bool) error {
	ctx = context.WithoutCancel(ctx)

	c.mu.Lock()
	s := c.detachLocked()
	c.mu.Unlock()

	if s != nil {
		c.log.Infow("session_stopped", "session_id", s.ID, "iteration", s.iteration)
		c.deps.Journal.Ended(ctx, c.mode.Name, s.ID, EndStop, s.iteration)
	}
	return c.finish(ctx, mobile)
}

// Status reports whether a session runs and how far it got.
func (c *Controller) Status() SessionStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := SessionStatus{Mode: c.mode.Name, Iteration: -1}
	if s := c.session; s != nil {
		st.Running = true
		st.SessionID = s.ID
		st.Iteration = s.iteration
		st.Mobile = s.Mobile
		st.StartedAt = s.StartedAt
	}
	return st
}

// Close cancels a pending timer without calling the backend. Used on shutdown.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detachLocked()
}

// finish is the shared tail of Stop and natural completion.
func (c *Controller) finish(ctx context.Context, mobile bool) error {
	c.mu.Lock()
	c.setMenusLocked(mobile, false)
	c.deps.Port.SetControlEnabled(c.mode.StartControl, true)
	c.deps.Port.SetControlEnabled(c.mode.StopControl, false)
	c.mu.Unlock()

	resp, err := c.deps.Fetcher.Stop(ctx, c.mode.StopPath)

	c.mu.Lock()
	if err != nil {
		c.deps.Port.Alert(alertText(err))
	} else {
		c.deps.Apply(resp)
	}
	c.setMenusLocked(mobile, true)
	c.mu.Unlock()

	if err != nil {
		c.log.Errorw("stop_fetch_failed", "err", err)
		c.deps.Journal.FetchFailed(ctx, c.mode.Name, "", -1, err)
		return fmt.Errorf("stop: %w", err)
	}
	c.deps.Journal.Applied(ctx, c.mode.Name, "", -1, resp)
	return nil
}

// armLocked replaces any pending timer of s with one for iteration next.
func (c *Controller) armLocked(s *PollSession, next int) {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = c.deps.Scheduler.AfterFunc(c.deps.Interval(), func() {
		_ = c.RequestIteration(s, next)
	})
	c.deps.Port.SetControlEnabled(c.mode.StopControl, true)
}

func (c *Controller) detachLocked() *PollSession {
	s := c.session
	if s == nil {
		return nil
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	c.session = nil
	return s
}

func (c *Controller) setMenusLocked(mobile, enabled bool) {
	menus := c.deps.Menus
	if mobile {
		menus = c.deps.MobileMenus
	}
	for _, m := range menus {
		c.deps.Port.SetControlEnabled(m, enabled)
	}
}

func alertText(err error) string {
	return "Error: " + err.Error()
}

type nopJournal struct{}

func (nopJournal) Started(context.Context, string, string, bool) {}
func (nopJournal) Applied(context.Context, string, string, int, models.PollResponse) {}
func (nopJournal) FetchFailed(context.Context, string, string, int, error) {}
func (nopJournal) Ended(context.Context, string, string, string, int) {}
