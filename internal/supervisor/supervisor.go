package supervisor

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/launchkit/launchkit/internal/env"
	"github.com/launchkit/launchkit/internal/history"
	"github.com/launchkit/launchkit/internal/logger"
	"github.com/launchkit/launchkit/internal/process"
)

// ErrNotRunning is returned by lifecycle operations when no dev server is
// registered, or when the registered one turned out to be dead.
var ErrNotRunning = errors.New("no development server is running")

// Config carries the supervision timings. Zero values are replaced with
// the defaults below, except RestartSettle where zero means no pause.
type Config struct {
	ReadinessAttempts int           // readiness polls before giving up
	ReadinessInterval time.Duration // delay between polls
	ProbeTimeout      time.Duration // per-probe HTTP timeout
	StopGrace         time.Duration // SIGTERM grace on explicit stop
	CleanupGrace      time.Duration // SIGTERM grace on exit/signal cleanup
	RestartSettle     time.Duration // pause between stop and relaunch
}

func DefaultConfig() Config {
	return Config{
		ReadinessAttempts: 30,
		ReadinessInterval: 500 * time.Millisecond,
		ProbeTimeout:      time.Second,
		StopGrace:         5 * time.Second,
		CleanupGrace:      3 * time.Second,
		RestartSettle:     2 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ReadinessAttempts <= 0 {
		c.ReadinessAttempts = d.ReadinessAttempts
	}
	if c.ReadinessInterval <= 0 {
		c.ReadinessInterval = d.ReadinessInterval
	}
	if c.ProbeTimeout <= 0 {
		c.ProbeTimeout = d.ProbeTimeout
	}
	if c.StopGrace <= 0 {
		c.StopGrace = d.StopGrace
	}
	if c.CleanupGrace <= 0 {
		c.CleanupGrace = d.CleanupGrace
	}
	if c.RestartSettle < 0 {
		c.RestartSettle = d.RestartSettle
	}
	return c
}

// Reporter is the one-way channel to the user. The CLI passes a styled
// terminal reporter; embedders can pass their own or rely on the slog
// default.
type Reporter interface {
	Info(msg string)
	Success(msg string)
	Warn(msg string)
}

// Prompter asks the user yes/no questions. It is optional; without one the
// supervisor never prompts and takes the conservative default.
type Prompter interface {
	Confirm(question string, def bool) bool
}

// Supervisor owns the dev-server lifecycle: launch, readiness monitoring,
// status, stop/restart and exit cleanup. All methods are safe for
// concurrent use.
type Supervisor struct {
	mu     sync.Mutex // serializes launch/stop/restart
	cfg    Config
	reg    *Registry
	env    *env.Env
	logCfg logger.Config
	rep    Reporter
	prompt Prompter
	sinks  []history.Sink
	client *http.Client

	// seams for tests
	startProc func(spec process.Spec, env []string, capture process.Capture) (Proc, error)
	openURL   func(url string) error
	sleep     func(d time.Duration)
}

func New(cfg Config) *Supervisor {
	cfg = cfg.withDefaults()
	return &Supervisor{
		cfg:       cfg,
		reg:       NewRegistry(),
		env:       env.FromOS(),
		rep:       slogReporter{},
		client:    &http.Client{Timeout: cfg.ProbeTimeout},
		startProc: startHandle,
		openURL:   openBrowser,
		sleep:     time.Sleep,
	}
}

// SetRegistry swaps in an externally owned registry.
func (s *Supervisor) SetRegistry(r *Registry) {
	if r != nil {
		s.reg = r
	}
}

// Registry exposes the underlying registry for embedders.
func (s *Supervisor) Registry() *Registry { return s.reg }

func (s *Supervisor) SetEnv(e *env.Env) {
	if e != nil {
		s.env = e
	}
}

func (s *Supervisor) SetReporter(r Reporter) {
	if r != nil {
		s.rep = r
	}
}

// Reporter returns the active reporter.
func (s *Supervisor) Reporter() Reporter { return s.rep }

func (s *Supervisor) SetPrompter(p Prompter) { s.prompt = p }

// SetLogConfig enables rotating file capture of dev-server output.
func (s *Supervisor) SetLogConfig(c logger.Config) { s.logCfg = c }

// SetSinks wires history sinks; every lifecycle transition is exported.
func (s *Supervisor) SetSinks(sinks []history.Sink) { s.sinks = sinks }

// Sinks returns the wired history sinks.
func (s *Supervisor) Sinks() []history.Sink { return s.sinks }

// SetHTTPClient replaces the readiness probe client.
func (s *Supervisor) SetHTTPClient(c *http.Client) {
	if c != nil {
		s.client = c
	}
}

func (s *Supervisor) emit(t history.EventType, mp *ManagedProcess, detail string) {
	if len(s.sinks) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	history.SendAll(ctx, s.sinks, history.Event{
		Type:       t,
		OccurredAt: time.Now().UTC(),
		Record: history.Record{
			Project: mp.Project,
			Stack:   mp.Stack,
			PID:     mp.Proc.PID(),
			URL:     mp.Spec.URL,
			Detail:  detail,
		},
	})
}
