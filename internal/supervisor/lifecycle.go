package supervisor

import (
	"errors"
	"time"

	gops "github.com/shirou/gopsutil/v4/process"

	"github.com/launchkit/launchkit/internal/history"
	"github.com/launchkit/launchkit/internal/metrics"
	"github.com/launchkit/launchkit/internal/process"
)

// StatusInfo is a snapshot of the supervised dev server for display and
// the HTTP API.
type StatusInfo struct {
	Project    string        `json:"project"`
	Stack      string        `json:"stack"`
	State      string        `json:"state"`
	PID        int           `json:"pid"`
	URL        string        `json:"url"`
	WorkDir    string        `json:"work_dir"`
	Command    []string      `json:"command"`
	Uptime     time.Duration `json:"uptime_ns"`
	CPUPercent float64       `json:"cpu_percent"`
	MemoryRSS  uint64        `json:"memory_rss"`
}

// Status reports on the registered dev server. A dead child behind the
// entry is cleaned up opportunistically and reported as not running.
func (s *Supervisor) Status() (*StatusInfo, error) {
	mp, ok := s.reg.Get(RoleDevServer)
	if !ok {
		return nil, ErrNotRunning
	}
	if !mp.Proc.Alive() {
		s.reg.Remove(RoleDevServer, mp)
		mp.setState(StateStopped)
		metrics.SetRunning(false)
		return nil, ErrNotRunning
	}
	info := &StatusInfo{
		Project: mp.Project,
		Stack:   mp.Stack,
		State:   mp.State().String(),
		PID:     mp.Proc.PID(),
		URL:     mp.Spec.URL,
		WorkDir: mp.Spec.WorkDir,
		Command: mp.Spec.Command,
		Uptime:  time.Since(mp.Proc.StartedAt()),
	}
	// Resource usage is best effort; a vanished /proc entry is not an error.
	if p, err := gops.NewProcess(int32(info.PID)); err == nil {
		if cpu, err := p.CPUPercent(); err == nil {
			info.CPUPercent = cpu
		}
		if mem, err := p.MemoryInfo(); err == nil && mem != nil {
			info.MemoryRSS = mem.RSS
		}
	}
	return info, nil
}

// Stop shuts the dev server down: SIGTERM, a grace window, then SIGKILL
// with an unconditional wait. The forced return says whether escalation
// was needed. ErrNotRunning covers both an empty registry and a stale
// entry, which is removed on the way out.
func (s *Supervisor) Stop() (forced bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopLocked()
}

func (s *Supervisor) stopLocked() (bool, error) {
	mp, ok := s.reg.Get(RoleDevServer)
	if !ok {
		return false, ErrNotRunning
	}
	if !mp.Proc.Alive() {
		s.reg.Remove(RoleDevServer, mp)
		mp.setState(StateStopped)
		metrics.SetRunning(false)
		return false, ErrNotRunning
	}

	mp.setState(StateStopped) // tells the monitor to stand down
	_ = mp.Proc.Terminate()
	forced := false
	if !mp.Proc.WaitExit(s.cfg.StopGrace) {
		_ = mp.Proc.Kill()
		mp.Proc.WaitExit(-1)
		forced = true
	}
	s.reg.Remove(RoleDevServer, mp)
	metrics.IncStop(mp.Stack, forced)
	metrics.SetRunning(false)
	detail := "graceful"
	if forced {
		detail = "forced"
	}
	s.emit(history.EventStopped, mp, detail)
	if forced {
		s.rep.Warn("Development server did not stop in time and was killed.")
	} else {
		s.rep.Success("Development server stopped.")
	}
	return forced, nil
}

// Restart stops the current server if any, lets the port settle, then
// launches the freshly resolved spec.
func (s *Supervisor) Restart(spec process.Spec, project, stackName string) (*ManagedProcess, error) {
	if _, err := s.Stop(); err != nil && !errors.Is(err, ErrNotRunning) {
		return nil, err
	}
	s.sleep(s.cfg.RestartSettle)
	return s.Launch(spec, project, stackName)
}

// LogsInfo carries the captured output of the running dev server.
type LogsInfo struct {
	Tail     string `json:"tail"`
	FilePath string `json:"file_path,omitempty"`
}

// Logs returns the in-memory output tail plus the capture file path when
// file logging is enabled.
func (s *Supervisor) Logs() (*LogsInfo, error) {
	mp, ok := s.reg.Get(RoleDevServer)
	if !ok {
		return nil, ErrNotRunning
	}
	if !mp.Proc.Alive() {
		s.reg.Remove(RoleDevServer, mp)
		mp.setState(StateStopped)
		metrics.SetRunning(false)
		return nil, ErrNotRunning
	}
	return &LogsInfo{
		Tail:     mp.Proc.Tail(),
		FilePath: s.logCfg.Path(mp.Project),
	}, nil
}
