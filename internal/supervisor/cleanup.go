package supervisor

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/launchkit/launchkit/internal/history"
	"github.com/launchkit/launchkit/internal/metrics"
)

// CleanupAll terminates every registered process and empties the
// registry. It runs on normal CLI exit and on SIGINT/SIGTERM, so it must
// never panic; a cleanup failure is logged and the loop moves on.
func (s *Supervisor) CleanupAll() {
	for _, mp := range s.reg.Drain() {
		s.cleanupOne(mp)
	}
	metrics.SetRunning(false)
}

func (s *Supervisor) cleanupOne(mp *ManagedProcess) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("cleanup panic suppressed", "recover", r)
		}
	}()
	if !mp.Proc.Alive() {
		mp.setState(StateStopped)
		return
	}
	slog.Info("stopping dev server", "project", mp.Project, "pid", mp.Proc.PID())
	mp.setState(StateStopped)
	_ = mp.Proc.Terminate()
	if !mp.Proc.WaitExit(s.cfg.CleanupGrace) {
		_ = mp.Proc.Kill()
		if !mp.Proc.WaitExit(s.cfg.CleanupGrace) {
			slog.Warn("dev server did not exit after SIGKILL", "pid", mp.Proc.PID())
		}
	}
	s.emit(history.EventStopped, mp, "cleanup")
}

// InstallSignalHandler arranges for SIGINT/SIGTERM to run CleanupAll and
// exit zero, the "user closed the session" status. exit is injectable for
// tests; nil means os.Exit.
func (s *Supervisor) InstallSignalHandler(exit func(code int)) {
	if exit == nil {
		exit = os.Exit
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ch
		s.rep.Warn("Interrupted; shutting down development server...")
		s.CleanupAll()
		history.CloseAll(s.sinks)
		exit(0)
	}()
}
