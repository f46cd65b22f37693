package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wsn_dashboard/internal/acquisition"
	"wsn_dashboard/internal/display"
	"wsn_dashboard/internal/service"
)

func fetchErr() error {
	return fmt.Errorf("iteration 0: %w", &acquisition.FetchError{
		Op: "start", Endpoint: "/post_monStart", StatusCode: 500, Err: acquisition.ErrUnexpectedStatus,
	})
}

func TestMonitorHandlers_Start(t *testing.T) {
	started := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	running := service.SessionStatus{Mode: "mon", Running: true, SessionID: "s-1", Iteration: 0, StartedAt: started}

	cases := []struct {
		name        string
		path        string
		beginErr    error
		wantCode    int
		wantMobile  bool
		wantSession bool
	}{
		{"started", "/api/v1/monitor/mon/start", nil, http.StatusOK, false, true},
		{"started mobile", "/api/v1/monitor/mon/start?mobile=Y", nil, http.StatusOK, true, true},
		{"already running", "/api/v1/monitor/mon/start", service.ErrSessionActive, http.StatusConflict, false, false},
		{"unknown mode", "/api/v1/monitor/nope/start", fmt.Errorf("%w: %q", service.ErrUnknownMode, "nope"), http.StatusNotFound, false, false},
		{"first fetch failed", "/api/v1/monitor/mon/start", fetchErr(), http.StatusBadGateway, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mon := &mockMonitor{beginStatus: running, beginErr: tc.beginErr}
			s := &service.Service{Authorization: &mockAuth{parseID: 1}, Monitor: mon}
			r := newTestRouter(s)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, withAuth(httptest.NewRequest(http.MethodPost, tc.path, nil)))
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			if mon.beginCalls != 1 {
				t.Fatalf("Begin calls=%d", mon.beginCalls)
			}
			if mon.lastMobile != tc.wantMobile {
				t.Fatalf("mobile=%v, want %v", mon.lastMobile, tc.wantMobile)
			}

			var out struct {
				Error   string                 `json:"error"`
				Session *service.SessionStatus `json:"session"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if (out.Session != nil) != tc.wantSession {
				t.Fatalf("session present=%v, want %v", out.Session != nil, tc.wantSession)
			}
			if out.Session != nil && out.Session.SessionID != "s-1" {
				t.Fatalf("session=%+v", out.Session)
			}
			if tc.wantCode != http.StatusOK && out.Error == "" {
				t.Fatalf("expected an error message")
			}
		})
	}
}

func TestMonitorHandlers_Stop(t *testing.T) {
	mon := &mockMonitor{status: service.SessionStatus{Mode: "monASD", Iteration: -1}}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Monitor: mon}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withAuth(httptest.NewRequest(http.MethodPost, "/api/v1/monitor/monASD/stop?mobile=y", nil)))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if mon.stopCalls != 1 || mon.lastMode != "monASD" || !mon.lastMobile {
		t.Fatalf("unexpected stop call: %+v", mon)
	}
	var out struct {
		Status  string                `json:"status"`
		Session service.SessionStatus `json:"session"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Status != "stopped" || out.Session.Running {
		t.Fatalf("unexpected body: %+v", out)
	}

	// backend failure on the stop endpoint
	mon.stopErr = &acquisition.FetchError{Op: "stop", Endpoint: "/post_monASDStop", Err: fmt.Errorf("connection refused")}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, withAuth(httptest.NewRequest(http.MethodPost, "/api/v1/monitor/monASD/stop", nil)))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status=%d, want 502", w.Code)
	}
}

func TestMonitorHandlers_StatusAndList(t *testing.T) {
	mon := &mockMonitor{
		modes:  []string{"mon", "monASD"},
		status: service.SessionStatus{Mode: "mon", Running: true, Iteration: 4},
	}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Monitor: mon}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withAuth(httptest.NewRequest(http.MethodGet, "/api/v1/monitor/mon", nil)))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var st service.SessionStatus
	_ = json.Unmarshal(w.Body.Bytes(), &st)
	if !st.Running || st.Iteration != 4 {
		t.Fatalf("unexpected status: %+v", st)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, withAuth(httptest.NewRequest(http.MethodGet, "/api/v1/monitor", nil)))
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d", w.Code)
	}
	var list struct {
		Modes    []string                `json:"modes"`
		Sessions []service.SessionStatus `json:"sessions"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list.Modes) != 2 || len(list.Sessions) != 2 {
		t.Fatalf("unexpected list: %+v", list)
	}

	mon.statusErr = fmt.Errorf("%w: %q", service.ErrUnknownMode, "x")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, withAuth(httptest.NewRequest(http.MethodGet, "/api/v1/monitor/x", nil)))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
}

func TestDisplayHandler_Snapshot(t *testing.T) {
	live := display.NewLive("btn_start_mon")
	live.SetRow(3, "4.25")
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Display: live}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withAuth(httptest.NewRequest(http.MethodGet, "/api/v1/display", nil)))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var snap display.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if snap.Rows[3].Text != "4.25" || !snap.Controls["btn_start_mon"] {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestParseMobile(t *testing.T) {
	cases := map[string]bool{"": false, "Y": true, "y": true, "yes": true, "1": true, "true": true, "N": false, "no": false}
	for q, want := range cases {
		w := httptest.NewRecorder()
		c, _ := newTestContext(w, "/x?mobile="+q)
		if got := parseMobile(c); got != want {
			t.Errorf("mobile=%q: got %v, want %v", q, got, want)
		}
	}
}
