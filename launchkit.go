package launchkit

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	cfg "github.com/launchkit/launchkit/internal/config"
	"github.com/launchkit/launchkit/internal/env"
	"github.com/launchkit/launchkit/internal/history"
	"github.com/launchkit/launchkit/internal/history/factory"
	"github.com/launchkit/launchkit/internal/metrics"
	"github.com/launchkit/launchkit/internal/process"
	iapi "github.com/launchkit/launchkit/internal/server"
	"github.com/launchkit/launchkit/internal/stack"
	"github.com/launchkit/launchkit/internal/supervisor"
)

// Re-export core types for external consumers.
// These are aliases so conversions are zero-cost.

type Spec = process.Spec

type StatusInfo = supervisor.StatusInfo

type LogsInfo = supervisor.LogsInfo

type StackInfo = stack.Info

type HistorySink = history.Sink

type HistoryEvent = history.Event

// Supervisor is a thin facade over internal/supervisor.Supervisor.
// It provides a stable public API for embedding.

type Supervisor struct{ inner *supervisor.Supervisor }

func New() *Supervisor {
	return &Supervisor{inner: supervisor.New(supervisor.DefaultConfig())}
}

func NewWithConfig(c *cfg.Config) *Supervisor {
	s := supervisor.New(c.SupervisorConfig())
	s.SetLogConfig(c.Log)
	return &Supervisor{inner: s}
}

func (s *Supervisor) SetGlobalEnv(key, value string) {
	e := env.FromOS()
	e.SetGlobal(key, value)
	s.inner.SetEnv(e)
}

func (s *Supervisor) SetSinks(sinks []HistorySink) { s.inner.SetSinks(sinks) }

func (s *Supervisor) Launch(spec Spec, project, stackName string) error {
	_, err := s.inner.Launch(spec, project, stackName)
	return err
}

func (s *Supervisor) Status() (*StatusInfo, error) { return s.inner.Status() }

func (s *Supervisor) Logs() (*LogsInfo, error) { return s.inner.Logs() }

func (s *Supervisor) Stop() (forced bool, err error) { return s.inner.Stop() }

func (s *Supervisor) Restart(spec Spec, project, stackName string) error {
	_, err := s.inner.Restart(spec, project, stackName)
	return err
}

func (s *Supervisor) CleanupAll() { s.inner.CleanupAll() }

func (s *Supervisor) InstallSignalHandler() { s.inner.InstallSignalHandler(nil) }

// ErrNotRunning is returned by Status, Logs and Stop when nothing is
// supervised.
var ErrNotRunning = supervisor.ErrNotRunning

// Stack catalog helpers.

func NewCatalog() *stack.Catalog { return stack.NewCatalog() }

func Resolve(c *stack.Catalog, stackName, folder string) (Spec, error) {
	return c.Resolve(stackName, folder)
}

func ManualSpec(command, folder string) (Spec, error) {
	return stack.ManualSpec(command, folder)
}

func LoadConfig(path string) (*cfg.Config, error) {
	return cfg.Load(path)
}

// NewHistorySink builds a history sink from a DSN (sqlite path,
// postgres:// or clickhouse:// URL).
func NewHistorySink(dsn string) (HistorySink, error) {
	return factory.NewSinkFromDSN(dsn)
}

// NewHTTPServer starts an HTTP server exposing the control API using the
// given supervisor.
func NewHTTPServer(addr, basePath string, s *Supervisor) (*http.Server, error) {
	return iapi.NewServer(addr, basePath, s.inner)
}

// Metrics helpers (public facade)

func RegisterMetrics(r prometheus.Registerer) error { return metrics.Register(r) }
func RegisterMetricsDefault() error                 { return metrics.Register(prometheus.DefaultRegisterer) }

// ServeMetrics starts an HTTP server on addr exposing /metrics using the
// default registry. It returns any immediate listen error; otherwise it
// runs the server in the caller goroutine.
func ServeMetrics(addr string) error {
	http.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv.ListenAndServe()
}
