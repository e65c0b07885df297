package supervisor

import (
	"fmt"
	"os"

	"github.com/launchkit/launchkit/internal/history"
	"github.com/launchkit/launchkit/internal/metrics"
	"github.com/launchkit/launchkit/internal/process"
)

// Launch starts the dev server described by spec and begins readiness
// monitoring in the background. At most one dev server is supervised at a
// time: when one is already Starting or Ready the existing entry is
// returned unchanged and nothing new is started. The registry entry is
// inserted before Launch returns, so a Status call immediately after
// always sees it.
func (s *Supervisor) Launch(spec process.Spec, project, stackName string) (*ManagedProcess, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.reg.Get(RoleDevServer); ok {
		st := existing.State()
		if existing.Proc.Alive() && (st == StateStarting || st == StateReady) {
			s.rep.Info("Development server is already running!")
			return existing, nil
		}
		// Dead or terminal leftover: clear it out before launching anew.
		s.reapStale(existing)
	}

	file, err := s.logCfg.Writer(project)
	if err != nil {
		return nil, fmt.Errorf("prepare log capture: %w", err)
	}
	proc, err := s.startProc(spec, s.env.Merge(spec.Env), process.Capture{File: file})
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return nil, fmt.Errorf("launch dev server: %w", err)
	}

	mp := &ManagedProcess{
		Proc:        proc,
		Spec:        spec,
		Project:     project,
		Stack:       stackName,
		state:       StateStarting,
		monitorDone: make(chan struct{}),
	}
	s.reg.Put(RoleDevServer, mp)

	metrics.IncLaunch(stackName)
	metrics.SetRunning(true)
	s.emit(history.EventLaunched, mp, "")
	s.rep.Info(fmt.Sprintf("Starting development server (pid %d)...", proc.PID()))

	go s.monitor(mp)
	return mp, nil
}

// reapStale removes a dead or finished registry entry. A still-live
// process behind a terminal state is terminated first; nothing may be
// orphaned by replacing its entry.
func (s *Supervisor) reapStale(mp *ManagedProcess) {
	if mp.Proc.Alive() {
		_ = mp.Proc.Terminate()
		if !mp.Proc.WaitExit(s.cfg.CleanupGrace) {
			_ = mp.Proc.Kill()
			mp.Proc.WaitExit(s.cfg.CleanupGrace)
		}
	}
	s.reg.Remove(RoleDevServer, mp)
	metrics.SetRunning(false)
}

// RunForeground runs the dev server attached to the CLI's own terminal
// and blocks until it exits. Nothing is registered; the child owns the
// session until Ctrl+C.
func (s *Supervisor) RunForeground(spec process.Spec) error {
	cmd, err := spec.BuildCommand()
	if err != nil {
		return err
	}
	cmd.Env = s.env.Merge(spec.Env)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	s.rep.Info("Running in foreground; Ctrl+C stops the server.")
	return cmd.Run()
}
