package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	"wsn_dashboard/internal/chart"
	"wsn_dashboard/internal/models"
	"wsn_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastGenUsername    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockMonitor struct {
	beginStatus service.SessionStatus
	beginErr    error
	stopErr     error
	status      service.SessionStatus
	statusErr   error
	modes       []string

	lastMode   string
	lastMobile bool
	beginCalls int
	stopCalls  int
}

func (m *mockMonitor) Begin(ctx context.Context, mode string, mobile bool) (service.SessionStatus, error) {
	m.beginCalls++
	m.lastMode, m.lastMobile = mode, mobile
	return m.beginStatus, m.beginErr
}
func (m *mockMonitor) Stop(ctx context.Context, mode string, mobile bool) error {
	m.stopCalls++
	m.lastMode, m.lastMobile = mode, mobile
	return m.stopErr
}
func (m *mockMonitor) Status(mode string) (service.SessionStatus, error) {
	m.lastMode = mode
	return m.status, m.statusErr
}
func (m *mockMonitor) Modes() []string { return m.modes }
func (m *mockMonitor) Shutdown()       {}

type mockSettings struct {
	current models.DashboardSettings
	err     error

	lastSeconds float64
	lastBounds  service.ScaleBounds
	calls       []string
}

func (m *mockSettings) record(op string) (models.DashboardSettings, error) {
	m.calls = append(m.calls, op)
	return m.current, m.err
}
func (m *mockSettings) Load(ctx context.Context) error    { return m.err }
func (m *mockSettings) Current() models.DashboardSettings { return m.current }
func (m *mockSettings) Interval() time.Duration           { return time.Second }
func (m *mockSettings) SetAuto(context.Context) (models.DashboardSettings, error) {
	return m.record("auto")
}
func (m *mockSettings) Clear(context.Context) (models.DashboardSettings, error) {
	return m.record("clear")
}
func (m *mockSettings) SetInterval(ctx context.Context, seconds float64) (models.DashboardSettings, error) {
	m.lastSeconds = seconds
	return m.record("interval")
}
func (m *mockSettings) SetManual(ctx context.Context, b service.ScaleBounds) (models.DashboardSettings, error) {
	m.lastBounds = b
	return m.record("manual")
}
func (m *mockSettings) SaveBounds(ctx context.Context, b service.ScaleBounds) (models.DashboardSettings, error) {
	m.lastBounds = b
	return m.record("save")
}

type mockGraph struct {
	res     service.GraphResult
	err     error
	lastReq service.GraphRequest
	calls   int
}

func (m *mockGraph) Render(ctx context.Context, req service.GraphRequest) (service.GraphResult, error) {
	m.calls++
	m.lastReq = req
	return m.res, m.err
}

type mockReadings struct {
	resp      []models.Reading
	err       error
	lastMode  string
	lastLimit int
}

func (m *mockReadings) Recent(ctx context.Context, mode string, limit int) ([]models.Reading, error) {
	m.lastMode, m.lastLimit = mode, limit
	return m.resp, m.err
}

type mockEventLog struct {
	resp       []models.SessionEvent
	err        error
	lastFilter service.LogFilter
	calls      int
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.SessionEvent, error) {
	m.calls++
	m.lastFilter = f
	return m.resp, m.err
}

type mockMetrics struct {
	connected atomic.Int64
}

func (m *mockMetrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("wsn_dashboard_display_stream_clients 0\n"))
	})
}
func (m *mockMetrics) StreamConnected()    { m.connected.Add(1) }
func (m *mockMetrics) StreamDisconnected() { m.connected.Add(-1) }

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, nil)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func withAuth(req *http.Request) *http.Request {
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}

func newTestContext(w *httptest.ResponseRecorder, target string) (*gin.Context, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	c, r := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, r
}

func renderedSVG() *chart.Rendered {
	return &chart.Rendered{Format: chart.FormatSVG, Body: []byte("<svg></svg>")}
}
