package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/launchkit/launchkit/internal/process"
	"github.com/launchkit/launchkit/internal/supervisor"
)

type stubProc struct {
	alive   bool
	tail    string
	started time.Time
	killed  bool
}

func (s *stubProc) PID() int             { return 777 }
func (s *stubProc) StartedAt() time.Time { return s.started }
func (s *stubProc) Alive() bool          { return s.alive }
func (s *stubProc) Terminate() error     { s.alive = false; return nil }
func (s *stubProc) Kill() error          { s.killed = true; s.alive = false; return nil }
func (s *stubProc) WaitExit(time.Duration) bool {
	return !s.alive
}
func (s *stubProc) Tail() string   { return s.tail }
func (s *stubProc) ExitErr() error { return nil }

func newSupWithEntry(tail string) (*supervisor.Supervisor, *stubProc) {
	sup := supervisor.New(supervisor.Config{})
	proc := &stubProc{alive: true, tail: tail, started: time.Now()}
	sup.Registry().Put(supervisor.RoleDevServer, &supervisor.ManagedProcess{
		Proc:    proc,
		Project: "demo",
		Stack:   "Flask (Python)",
	})
	return sup, proc
}

func TestStatusEndpoint(t *testing.T) {
	sup, _ := newSupWithEntry("")
	h := NewRouter(sup, "/api").Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d body=%s", rec.Code, rec.Body.String())
	}
	var info supervisor.StatusInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.PID != 777 || info.Project != "demo" {
		t.Fatalf("info = %+v", info)
	}
}

func TestStatusNotRunning(t *testing.T) {
	sup := supervisor.New(supervisor.Config{})
	h := NewRouter(sup, "").Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status code = %d", rec.Code)
	}
}

func TestLogsEndpoint(t *testing.T) {
	sup, _ := newSupWithEntry("listening on :5000\n")
	h := NewRouter(sup, "/api").Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/logs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "listening") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestStopEndpoint(t *testing.T) {
	sup, proc := newSupWithEntry("")
	h := NewRouter(sup, "/api").Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/stop", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d body=%s", rec.Code, rec.Body.String())
	}
	if proc.alive {
		t.Fatal("process still alive after stop")
	}
	// Second stop: nothing left.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/stop", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second stop code = %d", rec.Code)
	}
}

func TestRestartNotRunning(t *testing.T) {
	sup := supervisor.New(supervisor.Config{})
	h := NewRouter(sup, "/api").Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/restart", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status code = %d", rec.Code)
	}
}

func TestRestartRelaunchesSameSpec(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell required")
	}
	sup := supervisor.New(supervisor.Config{RestartSettle: time.Millisecond})
	proc := &stubProc{alive: true, started: time.Now()}
	sup.Registry().Put(supervisor.RoleDevServer, &supervisor.ManagedProcess{
		Proc:    proc,
		Spec:    process.Spec{Command: []string{"sleep", "2"}, URL: "http://127.0.0.1:1/"},
		Project: "demo",
		Stack:   "custom",
	})
	h := NewRouter(sup, "/api").Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/restart", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d body=%s", rec.Code, rec.Body.String())
	}
	if proc.alive {
		t.Fatal("old process still alive after restart")
	}
	var resp struct {
		OK  bool `json:"ok"`
		PID int  `json:"pid"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.OK || resp.PID <= 0 {
		t.Fatalf("resp = %+v", resp)
	}
	// Do not leave the relaunched child behind.
	sup.CleanupAll()
}

func TestSanitizeBase(t *testing.T) {
	cases := map[string]string{
		"":      "",
		"/api":  "/api",
		"api":   "/api",
		"/api/": "/api",
	}
	for in, want := range cases {
		if got := sanitizeBase(in); got != want {
			t.Fatalf("sanitizeBase(%q) = %q, want %q", in, got, want)
		}
	}
}
